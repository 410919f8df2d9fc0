package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type recordingRepository struct{}

func NewRecordingRepository() domainRepo.RecordingRepository {
	return &recordingRepository{}
}

func (r *recordingRepository) Create(ctx context.Context, db *gorm.DB, recording *entity.Recording) error {
	return db.WithContext(ctx).Create(recording).Error
}

func (r *recordingRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Recording, error) {
	var recording entity.Recording
	err := db.WithContext(ctx).Where("id = ?", id).First(&recording).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recording, nil
}

func (r *recordingRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) ([]entity.Recording, error) {
	var recordings []entity.Recording
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&recordings).Error
	if err != nil {
		return nil, err
	}
	return recordings, nil
}

func (r *recordingRepository) FindByPatientIDs(ctx context.Context, db *gorm.DB, patientIDs []int) ([]entity.Recording, error) {
	var recordings []entity.Recording
	if len(patientIDs) == 0 {
		return recordings, nil
	}
	err := db.WithContext(ctx).Preload("Patient").
		Where("patient_id IN ?", patientIDs).
		Order("created_at DESC").
		Find(&recordings).Error
	if err != nil {
		return nil, err
	}
	return recordings, nil
}

func (r *recordingRepository) Delete(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Recording{}).Error
}
