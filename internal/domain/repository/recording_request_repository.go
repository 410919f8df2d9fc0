package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type RecordingRequestRepository interface {
	Create(ctx context.Context, db *gorm.DB, request *entity.RecordingRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.RecordingRequest, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) ([]entity.RecordingRequest, error)
	FindByProviderID(ctx context.Context, db *gorm.DB, providerID int) ([]entity.RecordingRequest, error)
	Update(ctx context.Context, db *gorm.DB, request *entity.RecordingRequest) error
}
