package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type connectionRepository struct{}

func NewConnectionRepository() domainRepo.ConnectionRepository {
	return &connectionRepository{}
}

func (r *connectionRepository) Create(ctx context.Context, db *gorm.DB, conn *entity.ProviderPatientConnection) error {
	return db.WithContext(ctx).Create(conn).Error
}

func (r *connectionRepository) FindByProviderAndPatient(ctx context.Context, db *gorm.DB, providerID, patientID int) (*entity.ProviderPatientConnection, error) {
	var conn entity.ProviderPatientConnection
	err := db.WithContext(ctx).
		Where("provider_id = ? AND patient_id = ?", providerID, patientID).
		First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) FindByProviderID(ctx context.Context, db *gorm.DB, providerID int) ([]entity.ProviderPatientConnection, error) {
	var conns []entity.ProviderPatientConnection
	err := db.WithContext(ctx).Preload("Patient").
		Where("provider_id = ?", providerID).
		Order("created_at ASC").
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	return conns, nil
}

func (r *connectionRepository) Exists(ctx context.Context, db *gorm.DB, providerID, patientID int) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.ProviderPatientConnection{}).
		Where("provider_id = ? AND patient_id = ?", providerID, patientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
