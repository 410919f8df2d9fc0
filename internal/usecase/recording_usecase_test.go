package usecase_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"clinic-backend/config"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/infrastructure/storage"
	"clinic-backend/internal/repository"
	"clinic-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecordingUsecase(t *testing.T, db *gorm.DB) (usecase.RecordingUsecase, *storage.MediaStore, string) {
	t.Helper()

	root := t.TempDir()
	store, err := storage.NewMediaStore(root)
	require.NoError(t, err)

	mediaCfg := config.MediaConfig{
		Root:              root,
		UploadMaxBytes:    1 << 20,
		AllowedAudioTypes: []string{"audio/wav", "audio/mpeg"},
	}

	uc := usecase.NewRecordingUsecase(
		db,
		newTestLogger(),
		mediaCfg,
		repository.NewRecordingRepository(),
		repository.NewRecordingRequestRepository(),
		repository.NewPatientRepository(),
		repository.NewConnectionRepository(),
		store,
		nil,
		newAuditService(db),
	)
	return uc, store, root
}

// wavPayload builds a minimal RIFF/WAVE header padded to size bytes
func wavPayload(size int) []byte {
	payload := make([]byte, size)
	copy(payload, "RIFF")
	copy(payload[8:], "WAVEfmt ")
	return payload
}

func TestUploadRecording(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, store, _ := newRecordingUsecase(t, db)

	patient := registerPatient(t, auth, "pat@example.com")

	result, err := uc.Upload(context.Background(), patient, &usecase.UploadRecordingInput{
		Title:    "Morning reading",
		Duration: 12.5,
		File:     bytes.NewReader(wavPayload(2048)),
		Size:     2048,
	})
	require.NoError(t, err)

	assert.Equal(t, "Morning reading", result.Title)
	assert.Equal(t, int64(2048), result.FileSize)
	require.NotNil(t, result.PatientID)
	assert.Equal(t, patient.Patient.ID, *result.PatientID)

	// The file must be on disk under the patient's directory
	var recording entity.Recording
	require.NoError(t, db.First(&recording, result.ID).Error)
	info, err := os.Stat(store.Abs(recording.FilePath))
	require.NoError(t, err)
	assert.Equal(t, int64(2048), info.Size())
	assert.Equal(t, "patients", filepath.Dir(filepath.Dir(recording.FilePath)))
}

func TestUploadRecordingTooLarge(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, _, _ := newRecordingUsecase(t, db)

	patient := registerPatient(t, auth, "pat@example.com")

	_, err := uc.Upload(context.Background(), patient, &usecase.UploadRecordingInput{
		Title: "Too big",
		File:  bytes.NewReader(wavPayload(2 << 20)),
		Size:  2 << 20,
	})
	assert.ErrorIs(t, err, usecase.ErrFileTooLarge)

	// No row may be created for a rejected upload
	var count int64
	require.NoError(t, db.Model(&entity.Recording{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUploadRecordingBadType(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, _, _ := newRecordingUsecase(t, db)

	patient := registerPatient(t, auth, "pat@example.com")

	_, err := uc.Upload(context.Background(), patient, &usecase.UploadRecordingInput{
		Title: "Not audio",
		File:  bytes.NewReader([]byte("plain text, not audio at all")),
		Size:  28,
	})
	assert.ErrorIs(t, err, usecase.ErrUnsupportedAudioType)
}

func TestUploadRecordingProviderNeedsConnection(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, _, _ := newRecordingUsecase(t, db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")

	input := &usecase.UploadRecordingInput{
		Title:     "For patient",
		PatientID: &patient.Patient.ID,
		File:      bytes.NewReader(wavPayload(1024)),
		Size:      1024,
	}

	_, err := uc.Upload(context.Background(), provider, input)
	assert.ErrorIs(t, err, usecase.ErrNotConnected)

	connect(t, db, provider, patient)
	input.File = bytes.NewReader(wavPayload(1024))
	result, err := uc.Upload(context.Background(), provider, input)
	require.NoError(t, err)
	assert.Equal(t, patient.Patient.ID, *result.PatientID)
}

func TestDeleteRecordingRemovesFile(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, store, _ := newRecordingUsecase(t, db)

	patient := registerPatient(t, auth, "pat@example.com")

	result, err := uc.Upload(context.Background(), patient, &usecase.UploadRecordingInput{
		Title: "Ephemeral",
		File:  bytes.NewReader(wavPayload(512)),
		Size:  512,
	})
	require.NoError(t, err)

	var recording entity.Recording
	require.NoError(t, db.First(&recording, result.ID).Error)

	require.NoError(t, uc.Delete(context.Background(), patient, result.ID))

	_, err = os.Stat(store.Abs(recording.FilePath))
	assert.True(t, os.IsNotExist(err))

	var count int64
	require.NoError(t, db.Model(&entity.Recording{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCompleteRequest(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, _, _ := newRecordingUsecase(t, db)

	provider := registerProvider(t, auth, "doc@example.com")
	owner := registerPatient(t, auth, "owner@example.com")
	other := registerPatient(t, auth, "other@example.com")
	connect(t, db, provider, owner)

	request := entity.RecordingRequest{
		Title:      "Please record",
		Status:     entity.RequestStatusSent,
		ProviderID: provider.Provider.ID,
		PatientID:  owner.Patient.ID,
	}
	require.NoError(t, db.Create(&request).Error)

	uploaded, err := uc.Upload(context.Background(), owner, &usecase.UploadRecordingInput{
		Title: "Fulfillment",
		File:  bytes.NewReader(wavPayload(1024)),
		Size:  1024,
	})
	require.NoError(t, err)

	// A different patient may not fulfill someone else's request
	_, err = uc.CompleteRequest(context.Background(), other, uploaded.ID, &dto.CompleteRequestRequest{RequestID: request.ID})
	assert.ErrorIs(t, err, usecase.ErrRequestNotOwned)

	result, err := uc.CompleteRequest(context.Background(), owner, uploaded.ID, &dto.CompleteRequestRequest{RequestID: request.ID})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RequestStatusCompleted), result.Status)
	require.NotNil(t, result.Recording)
	assert.Equal(t, uploaded.ID, result.Recording.ID)
	assert.NotNil(t, result.ResponseDate)

	var stored entity.RecordingRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.True(t, stored.IsCompleted())
	require.NotNil(t, stored.RecordingID)
	assert.Equal(t, uploaded.ID, *stored.RecordingID)
}

func TestCompleteRequestTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, _, _ := newRecordingUsecase(t, db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	request := entity.RecordingRequest{
		Title:      "Please record",
		Status:     entity.RequestStatusSent,
		ProviderID: provider.Provider.ID,
		PatientID:  patient.Patient.ID,
	}
	require.NoError(t, db.Create(&request).Error)

	first, err := uc.Upload(context.Background(), patient, &usecase.UploadRecordingInput{
		Title: "First take",
		File:  bytes.NewReader(wavPayload(512)),
		Size:  512,
	})
	require.NoError(t, err)

	_, err = uc.CompleteRequest(context.Background(), patient, first.ID, &dto.CompleteRequestRequest{RequestID: request.ID})
	require.NoError(t, err)

	second, err := uc.Upload(context.Background(), patient, &usecase.UploadRecordingInput{
		Title: "Second take",
		File:  bytes.NewReader(wavPayload(512)),
		Size:  512,
	})
	require.NoError(t, err)

	_, err = uc.CompleteRequest(context.Background(), patient, second.ID, &dto.CompleteRequestRequest{RequestID: request.ID})
	assert.ErrorIs(t, err, usecase.ErrRequestAlreadyCompleted)

	// The fulfilled request keeps its original recording and response date
	var stored entity.RecordingRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	require.NotNil(t, stored.RecordingID)
	assert.Equal(t, first.ID, *stored.RecordingID)
}

func TestProviderPatientRecordings(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	uc, _, _ := newRecordingUsecase(t, db)

	provider := registerProvider(t, auth, "doc@example.com")
	patient := registerPatient(t, auth, "pat@example.com")
	connect(t, db, provider, patient)

	_, err := uc.Upload(context.Background(), patient, &usecase.UploadRecordingInput{
		Title: "One",
		File:  bytes.NewReader(wavPayload(256)),
		Size:  256,
	})
	require.NoError(t, err)

	groups, err := uc.ProviderPatientRecordings(context.Background(), provider, nil)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, patient.Patient.ID, groups[0].PatientID)
	assert.Len(t, groups[0].Recordings, 1)
}
