package repository

import (
	"context"
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type recordingRequestRepository struct{}

func NewRecordingRequestRepository() domainRepo.RecordingRequestRepository {
	return &recordingRequestRepository{}
}

func (r *recordingRequestRepository) Create(ctx context.Context, db *gorm.DB, request *entity.RecordingRequest) error {
	return db.WithContext(ctx).Create(request).Error
}

func (r *recordingRequestRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.RecordingRequest, error) {
	var request entity.RecordingRequest
	err := db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *recordingRequestRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int) ([]entity.RecordingRequest, error) {
	var requests []entity.RecordingRequest
	err := db.WithContext(ctx).Preload("Recording").
		Where("patient_id = ?", patientID).
		Order("issue_date DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *recordingRequestRepository) FindByProviderID(ctx context.Context, db *gorm.DB, providerID int) ([]entity.RecordingRequest, error) {
	var requests []entity.RecordingRequest
	err := db.WithContext(ctx).Preload("Recording").Preload("Patient").
		Where("provider_id = ?", providerID).
		Order("issue_date DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *recordingRequestRepository) Update(ctx context.Context, db *gorm.DB, request *entity.RecordingRequest) error {
	return db.WithContext(ctx).Save(request).Error
}
