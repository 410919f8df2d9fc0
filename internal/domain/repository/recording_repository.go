package repository

import (
	"context"

	"clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type RecordingRepository interface {
	Create(ctx context.Context, db *gorm.DB, recording *entity.Recording) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Recording, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) ([]entity.Recording, error)
	FindByPatientIDs(ctx context.Context, db *gorm.DB, patientIDs []int) ([]entity.Recording, error)
	Delete(ctx context.Context, db *gorm.DB, id int) error
}
