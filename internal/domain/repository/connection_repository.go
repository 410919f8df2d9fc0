package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ConnectionRepository interface {
	Create(ctx context.Context, db *gorm.DB, conn *entity.ProviderPatientConnection) error
	FindByProviderAndPatient(ctx context.Context, db *gorm.DB, providerID, patientID int) (*entity.ProviderPatientConnection, error)
	FindByProviderID(ctx context.Context, db *gorm.DB, providerID int) ([]entity.ProviderPatientConnection, error)
	Exists(ctx context.Context, db *gorm.DB, providerID, patientID int) (bool, error)
}
