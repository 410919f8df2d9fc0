package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderRepository interface {
	Create(ctx context.Context, db *gorm.DB, provider *entity.Provider) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Provider, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Provider, error)
}
