package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type signatureRepository struct{}

func NewSignatureRepository() domainRepo.SignatureRepository {
	return &signatureRepository{}
}

func (r *signatureRepository) Create(ctx context.Context, db *gorm.DB, signature *entity.Signature) error {
	return db.WithContext(ctx).Create(signature).Error
}

func (r *signatureRepository) Update(ctx context.Context, db *gorm.DB, signature *entity.Signature) error {
	return db.WithContext(ctx).Save(signature).Error
}

func (r *signatureRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Signature, error) {
	var signature entity.Signature
	err := db.WithContext(ctx).Where("id = ?", id).First(&signature).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &signature, nil
}

func (r *signatureRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) (*entity.Signature, error) {
	var signature entity.Signature
	err := db.WithContext(ctx).Where("patient_id = ?", patientID).First(&signature).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &signature, nil
}

func (r *signatureRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Signature, error) {
	var signatures []entity.Signature
	err := db.WithContext(ctx).Order("id ASC").Find(&signatures).Error
	if err != nil {
		return nil, err
	}
	return signatures, nil
}

func (r *signatureRepository) Delete(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Signature{}).Error
}
