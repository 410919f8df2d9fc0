package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSignatureNotFound = errors.New("signature not found")
	ErrInvalidDate       = errors.New("date must use the YYYY-MM-DD format")
	ErrConsentNotChecked = errors.New("consent checkbox must be checked")
)

type SignatureUsecase interface {
	ForPatient(ctx context.Context, actor *entity.Identity, req *dto.SignatureForPatientRequest) (*dto.SignatureResponse, error)
	ByPatient(ctx context.Context, patientID int) (*dto.SignatureResponse, error)
	List(ctx context.Context) (*dto.SignatureListResponse, error)
	Get(ctx context.Context, id int) (*dto.SignatureResponse, error)
	Delete(ctx context.Context, id int) error
}

type signatureUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	signatureRepo repository.SignatureRepository
	patientRepo   repository.PatientRepository
	auditService  service.AuditService
}

func NewSignatureUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	signatureRepo repository.SignatureRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) SignatureUsecase {
	return &signatureUsecase{
		db:            db,
		log:           log,
		signatureRepo: signatureRepo,
		patientRepo:   patientRepo,
		auditService:  auditService,
	}
}

// ForPatient upserts the patient's consent signature. A patient holds at
// most one signature row; repeat calls update it in place.
func (u *signatureUsecase) ForPatient(ctx context.Context, actor *entity.Identity, req *dto.SignatureForPatientRequest) (*dto.SignatureResponse, error) {
	if !req.IsChecked {
		return nil, ErrConsentNotChecked
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	signature, err := u.signatureRepo.FindByPatientID(ctx, tx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find signature for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	if signature == nil {
		signature = &entity.Signature{
			PatientID:        &patient.ID,
			IsChecked:        req.IsChecked,
			DigitalSignature: req.DigitalSignature,
			Date:             date,
		}
		if err := u.signatureRepo.Create(ctx, tx, signature); err != nil {
			u.log.Warnf("Failed to create signature: %+v", err)
			return nil, err
		}
	} else {
		signature.IsChecked = req.IsChecked
		signature.DigitalSignature = req.DigitalSignature
		signature.Date = date
		if err := u.signatureRepo.Update(ctx, tx, signature); err != nil {
			u.log.Warnf("Failed to update signature: %+v", err)
			return nil, err
		}
	}

	u.auditService.Log(ctx, tx, &actor.User.ID, entity.AuditActionSignatureUpsert, entity.JSON{
		"signature_id": signature.ID,
		"patient_id":   patient.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SignatureToResponse(signature), nil
}

// ByPatient returns the patient's signature, if one has been recorded
func (u *signatureUsecase) ByPatient(ctx context.Context, patientID int) (*dto.SignatureResponse, error) {
	signature, err := u.signatureRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find signature for patient %d: %+v", patientID, err)
		return nil, err
	}
	if signature == nil {
		return nil, ErrSignatureNotFound
	}

	return converter.SignatureToResponse(signature), nil
}

func (u *signatureUsecase) List(ctx context.Context) (*dto.SignatureListResponse, error) {
	signatures, err := u.signatureRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list signatures: %+v", err)
		return nil, err
	}

	return &dto.SignatureListResponse{
		Signatures: converter.SignaturesToResponses(signatures),
		Total:      len(signatures),
	}, nil
}

func (u *signatureUsecase) Get(ctx context.Context, id int) (*dto.SignatureResponse, error) {
	signature, err := u.signatureRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find signature %d: %+v", id, err)
		return nil, err
	}
	if signature == nil {
		return nil, ErrSignatureNotFound
	}

	return converter.SignatureToResponse(signature), nil
}

func (u *signatureUsecase) Delete(ctx context.Context, id int) error {
	signature, err := u.signatureRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find signature %d: %+v", id, err)
		return err
	}
	if signature == nil {
		return ErrSignatureNotFound
	}

	if err := u.signatureRepo.Delete(ctx, u.db, signature.ID); err != nil {
		u.log.Warnf("Failed to delete signature %d: %+v", signature.ID, err)
		return err
	}

	return nil
}
