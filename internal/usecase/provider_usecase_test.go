package usecase_test

import (
	"context"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/repository"
	"clinic-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProviderUsecase(db *gorm.DB) usecase.ProviderUsecase {
	return usecase.NewProviderUsecase(
		db,
		newTestLogger(),
		repository.NewPatientRepository(),
		repository.NewConnectionRepository(),
		newAuditService(db),
	)
}

func TestSearchPatient(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newProviderUsecase(db)

	registerPatient(t, auth, "findme@example.com")

	patient, err := uc.SearchPatient(context.Background(), &dto.SearchPatientRequest{Email: "findme@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "findme@example.com", patient.Email)

	_, err = uc.SearchPatient(context.Background(), &dto.SearchPatientRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}

func TestConnectIdempotent(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newProviderUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")

	first, err := uc.Connect(context.Background(), provider, &dto.ConnectRequest{PatientEmail: "pat@example.com"})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, patient.Patient.ID, first.PatientID)

	// Connecting again reuses the existing edge
	second, err := uc.Connect(context.Background(), provider, &dto.ConnectRequest{PatientEmail: "pat@example.com"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ConnectionID, second.ConnectionID)
}

func TestConnectUnknownPatient(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newProviderUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")

	_, err := uc.Connect(context.Background(), provider, &dto.ConnectRequest{PatientEmail: "nobody@example.com"})
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}

func TestListPatients(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newProviderUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	first := registerPatient(t, auth, "one@example.com")
	second := registerPatient(t, auth, "two@example.com")
	connect(t, db, provider, first)
	connect(t, db, provider, second)

	result, err := uc.ListPatients(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	emails := []string{result.Patients[0].Email, result.Patients[1].Email}
	assert.Contains(t, emails, "one@example.com")
	assert.Contains(t, emails, "two@example.com")
}
