package usecase_test

import (
	"context"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/repository"
	"clinic-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSignatureUsecase(db *gorm.DB) usecase.SignatureUsecase {
	return usecase.NewSignatureUsecase(
		db,
		newTestLogger(),
		repository.NewSignatureRepository(),
		repository.NewPatientRepository(),
		newAuditService(db),
	)
}

func TestSignatureUpsert(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSignatureUsecase(db)

	patient := registerPatient(t, auth, "pat@example.com")

	first, err := uc.ForPatient(context.Background(), patient, &dto.SignatureForPatientRequest{
		PatientID:        patient.Patient.ID,
		IsChecked:        true,
		DigitalSignature: "Pat Doe",
		Date:             "2026-08-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pat Doe", first.DigitalSignature)
	assert.Equal(t, "2026-08-01", first.Date)

	// A second call updates the same row in place
	second, err := uc.ForPatient(context.Background(), patient, &dto.SignatureForPatientRequest{
		PatientID:        patient.Patient.ID,
		IsChecked:        true,
		DigitalSignature: "Patricia Doe",
		Date:             "2026-08-15",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Patricia Doe", second.DigitalSignature)

	var count int64
	require.NoError(t, db.Model(&entity.Signature{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := uc.ByPatient(context.Background(), patient.Patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "Patricia Doe", stored.DigitalSignature)
	assert.Equal(t, "2026-08-15", stored.Date)
}

func TestSignatureValidation(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSignatureUsecase(db)

	patient := registerPatient(t, auth, "pat@example.com")

	_, err := uc.ForPatient(context.Background(), patient, &dto.SignatureForPatientRequest{
		PatientID:        patient.Patient.ID,
		IsChecked:        false,
		DigitalSignature: "Pat Doe",
		Date:             "2026-08-01",
	})
	assert.ErrorIs(t, err, usecase.ErrConsentNotChecked)

	_, err = uc.ForPatient(context.Background(), patient, &dto.SignatureForPatientRequest{
		PatientID:        patient.Patient.ID,
		IsChecked:        true,
		DigitalSignature: "Pat Doe",
		Date:             "01/08/2026",
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidDate)

	_, err = uc.ForPatient(context.Background(), patient, &dto.SignatureForPatientRequest{
		PatientID:        9999,
		IsChecked:        true,
		DigitalSignature: "Pat Doe",
		Date:             "2026-08-01",
	})
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}

func TestSignatureDelete(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newSignatureUsecase(db)

	patient := registerPatient(t, auth, "pat@example.com")

	created, err := uc.ForPatient(context.Background(), patient, &dto.SignatureForPatientRequest{
		PatientID:        patient.Patient.ID,
		IsChecked:        true,
		DigitalSignature: "Pat Doe",
		Date:             "2026-08-01",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = uc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, usecase.ErrSignatureNotFound)

	err = uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, usecase.ErrSignatureNotFound)
}
