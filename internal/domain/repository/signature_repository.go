package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type SignatureRepository interface {
	Create(ctx context.Context, db *gorm.DB, signature *entity.Signature) error
	Update(ctx context.Context, db *gorm.DB, signature *entity.Signature) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Signature, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) (*entity.Signature, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Signature, error)
	Delete(ctx context.Context, db *gorm.DB, id int) error
}
