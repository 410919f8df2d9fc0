package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type providerRepository struct{}

func NewProviderRepository() domainRepo.ProviderRepository {
	return &providerRepository{}
}

func (r *providerRepository) Create(ctx context.Context, db *gorm.DB, provider *entity.Provider) error {
	return db.WithContext(ctx).Create(provider).Error
}

func (r *providerRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.WithContext(ctx).Where("id = ?", id).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}
