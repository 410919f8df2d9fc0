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

func newRequestUsecase(db *gorm.DB) usecase.RecordingRequestUsecase {
	return usecase.NewRecordingRequestUsecase(
		db,
		newTestLogger(),
		repository.NewRecordingRequestRepository(),
		repository.NewPatientRepository(),
		repository.NewConnectionRepository(),
		newAuditService(db),
	)
}

func TestCreateRecordingRequest(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newRequestUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	result, err := uc.Create(context.Background(), provider, &dto.CreateRecordingRequestRequest{
		PatientID:   patient.Patient.ID,
		Title:       "Read this passage",
		Description: "Two minutes of reading aloud",
	})
	require.NoError(t, err)

	assert.Equal(t, "sent", result.Status)
	assert.Equal(t, provider.Provider.ID, result.ProviderID)
	assert.Equal(t, patient.Patient.ID, result.PatientID)
	assert.Nil(t, result.Recording)
}

func TestCreateRecordingRequestRequiresConnection(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newRequestUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")

	_, err := uc.Create(context.Background(), provider, &dto.CreateRecordingRequestRequest{
		PatientID: patient.Patient.ID,
		Title:     "Unauthorized",
	})
	assert.ErrorIs(t, err, usecase.ErrNotConnected)
}

func TestMyRequests(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc := newRequestUsecase(db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	_, err := uc.Create(context.Background(), provider, &dto.CreateRecordingRequestRequest{
		PatientID: patient.Patient.ID,
		Title:     "First",
	})
	require.NoError(t, err)

	// The provider sees requests they issued
	issued, err := uc.MyRequests(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, 1, issued.Total)

	// The patient sees requests issued to them
	received, err := uc.MyRequests(context.Background(), patient)
	require.NoError(t, err)
	assert.Equal(t, 1, received.Total)
	assert.Equal(t, "First", received.Requests[0].Title)

	byPatient, err := uc.ListByPatient(context.Background(), provider, patient.Patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, byPatient.Total)
}
