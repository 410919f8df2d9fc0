package usecase

import (
	"context"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RecordingRequestUsecase interface {
	Create(ctx context.Context, actor *entity.Identity, req *dto.CreateRecordingRequestRequest) (*dto.RecordingRequestResponse, error)
	ListByPatient(ctx context.Context, actor *entity.Identity, patientID int) (*dto.RecordingRequestListResponse, error)
	MyRequests(ctx context.Context, actor *entity.Identity) (*dto.RecordingRequestListResponse, error)
}

type recordingRequestUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	requestRepo    repository.RecordingRequestRepository
	patientRepo    repository.PatientRepository
	connectionRepo repository.ConnectionRepository
	auditService   service.AuditService
}

func NewRecordingRequestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	requestRepo repository.RecordingRequestRepository,
	patientRepo repository.PatientRepository,
	connectionRepo repository.ConnectionRepository,
	auditService service.AuditService,
) RecordingRequestUsecase {
	return &recordingRequestUsecase{
		db:             db,
		log:            log,
		requestRepo:    requestRepo,
		patientRepo:    patientRepo,
		connectionRepo: connectionRepo,
		auditService:   auditService,
	}
}

// Create issues a recording request from the calling provider to a
// connected patient. The request starts in "sent".
func (u *recordingRequestUsecase) Create(ctx context.Context, actor *entity.Identity, req *dto.CreateRecordingRequestRequest) (*dto.RecordingRequestResponse, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	connected, err := u.connectionRepo.Exists(ctx, u.db, actor.Provider.ID, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to check connection: %+v", err)
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request := &entity.RecordingRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.RequestStatusSent,
		ProviderID:  actor.Provider.ID,
		PatientID:   patient.ID,
	}

	if err := u.requestRepo.Create(ctx, tx, request); err != nil {
		u.log.Warnf("Failed to create recording request: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, &actor.User.ID, entity.AuditActionRequestCreate, entity.JSON{
		"request_id": request.ID,
		"patient_id": patient.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RequestToResponse(request), nil
}

// ListByPatient lists every request issued to a patient
func (u *recordingRequestUsecase) ListByPatient(ctx context.Context, actor *entity.Identity, patientID int) (*dto.RecordingRequestListResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.authorizePatientAccess(ctx, actor, patient.ID); err != nil {
		return nil, err
	}

	requests, err := u.requestRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find requests for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.RecordingRequestListResponse{
		Requests: converter.RequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

// MyRequests lists the caller's own requests: issued requests for a
// provider, received ones for a patient.
func (u *recordingRequestUsecase) MyRequests(ctx context.Context, actor *entity.Identity) (*dto.RecordingRequestListResponse, error) {
	var (
		requests []entity.RecordingRequest
		err      error
	)

	switch {
	case actor.IsProvider():
		requests, err = u.requestRepo.FindByProviderID(ctx, u.db, actor.Provider.ID)
	case actor.IsPatient():
		requests, err = u.requestRepo.FindByPatientID(ctx, u.db, actor.Patient.ID)
	default:
		return nil, ErrProfileNotFound
	}
	if err != nil {
		u.log.Warnf("Failed to find recording requests: %+v", err)
		return nil, err
	}

	return &dto.RecordingRequestListResponse{
		Requests: converter.RequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

func (u *recordingRequestUsecase) authorizePatientAccess(ctx context.Context, actor *entity.Identity, patientID int) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsPatient():
		if actor.Patient.ID != patientID {
			return ErrNotConnected
		}
		return nil
	case actor.IsProvider():
		connected, err := u.connectionRepo.Exists(ctx, u.db, actor.Provider.ID, patientID)
		if err != nil {
			return err
		}
		if !connected {
			return ErrNotConnected
		}
		return nil
	default:
		return ErrNotConnected
	}
}
