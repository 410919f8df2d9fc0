package usecase

import (
	"context"
	"errors"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrNotConnected     = errors.New("provider is not connected to this patient")
)

type ProviderUsecase interface {
	SearchPatient(ctx context.Context, req *dto.SearchPatientRequest) (*dto.PatientResponse, error)
	Connect(ctx context.Context, actor *entity.Identity, req *dto.ConnectRequest) (*dto.ConnectResponse, error)
	ListPatients(ctx context.Context, actor *entity.Identity) (*dto.ConnectedPatientsResponse, error)
	GetProviderInfo(ctx context.Context, actor *entity.Identity) (*dto.ProviderResponse, error)
}

type providerUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	patientRepo    repository.PatientRepository
	connectionRepo repository.ConnectionRepository
	auditService   service.AuditService
}

func NewProviderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	connectionRepo repository.ConnectionRepository,
	auditService service.AuditService,
) ProviderUsecase {
	return &providerUsecase{
		db:             db,
		log:            log,
		patientRepo:    patientRepo,
		connectionRepo: connectionRepo,
		auditService:   auditService,
	}
}

// SearchPatient looks up a patient by their unique email
func (u *providerUsecase) SearchPatient(ctx context.Context, req *dto.SearchPatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// Connect links the calling provider to a patient. Idempotent: connecting
// the same pair twice returns the existing row with created=false.
func (u *providerUsecase) Connect(ctx context.Context, actor *entity.Identity, req *dto.ConnectRequest) (*dto.ConnectResponse, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderNotFound
	}

	patient, err := u.patientRepo.FindByEmail(ctx, u.db, req.PatientEmail)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	existing, err := u.connectionRepo.FindByProviderAndPatient(ctx, u.db, actor.Provider.ID, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to check existing connection: %+v", err)
		return nil, err
	}
	if existing != nil {
		return &dto.ConnectResponse{
			ConnectionID: existing.ID,
			PatientID:    patient.ID,
			Created:      false,
		}, nil
	}

	conn := &entity.ProviderPatientConnection{
		ProviderID: actor.Provider.ID,
		PatientID:  patient.ID,
	}

	if err := u.connectionRepo.Create(ctx, u.db, conn); err != nil {
		// A concurrent connect for the same pair can win the insert race;
		// the unique constraint turns that into a duplicate-key error and
		// the existing row is the answer.
		if isDuplicateKeyError(err, "idx_provider_patient") {
			existing, findErr := u.connectionRepo.FindByProviderAndPatient(ctx, u.db, actor.Provider.ID, patient.ID)
			if findErr == nil && existing != nil {
				return &dto.ConnectResponse{
					ConnectionID: existing.ID,
					PatientID:    patient.ID,
					Created:      false,
				}, nil
			}
		}
		u.log.Warnf("Failed to create connection: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, nil, &actor.User.ID, entity.AuditActionConnectionCreate, entity.JSON{
		"provider_id": actor.Provider.ID,
		"patient_id":  patient.ID,
	})

	return &dto.ConnectResponse{
		ConnectionID: conn.ID,
		PatientID:    patient.ID,
		Created:      true,
	}, nil
}

// ListPatients returns every patient reachable through the provider's
// connections, with minimal display fields.
func (u *providerUsecase) ListPatients(ctx context.Context, actor *entity.Identity) (*dto.ConnectedPatientsResponse, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderNotFound
	}

	conns, err := u.connectionRepo.FindByProviderID(ctx, u.db, actor.Provider.ID)
	if err != nil {
		u.log.Warnf("Failed to list connections for provider %d: %+v", actor.Provider.ID, err)
		return nil, err
	}

	patients := make([]dto.PatientSummary, len(conns))
	for i, conn := range conns {
		patients[i] = converter.PatientToSummary(&conn.Patient)
	}

	return &dto.ConnectedPatientsResponse{
		Patients: patients,
		Total:    len(patients),
	}, nil
}

func (u *providerUsecase) GetProviderInfo(ctx context.Context, actor *entity.Identity) (*dto.ProviderResponse, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderNotFound
	}

	return converter.ProviderToResponse(actor.Provider), nil
}
