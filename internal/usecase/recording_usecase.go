package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"clinic-backend/config"
	"clinic-backend/internal/converter"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/infrastructure/storage"
	"clinic-backend/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRecordingNotFound       = errors.New("recording not found")
	ErrRequestNotFound         = errors.New("recording request not found")
	ErrRequestNotOwned         = errors.New("recording request belongs to another patient")
	ErrRequestAlreadyCompleted = errors.New("recording request has already been completed")
	ErrFileTooLarge            = errors.New("uploaded file exceeds the maximum allowed size")
	ErrUnsupportedAudioType    = errors.New("uploaded file is not an allowed audio type")
)

// UploadRecordingInput carries the multipart upload fields. PatientID is set
// when the caller targets a patient explicitly; providers must set it,
// patients may omit it to target their own profile.
type UploadRecordingInput struct {
	Title       string
	Description string
	Duration    float64
	PatientID   *int
	File        io.Reader
	Size        int64
}

type RecordingUsecase interface {
	Upload(ctx context.Context, actor *entity.Identity, input *UploadRecordingInput) (*dto.RecordingResponse, error)
	ListByPatient(ctx context.Context, actor *entity.Identity, patientID int) (*dto.RecordingListResponse, error)
	MyRecordings(ctx context.Context, actor *entity.Identity) (*dto.RecordingListResponse, error)
	ProviderPatientRecordings(ctx context.Context, actor *entity.Identity, patientID *int) ([]dto.PatientRecordingsGroup, error)
	Get(ctx context.Context, actor *entity.Identity, id int) (*dto.RecordingResponse, error)
	Delete(ctx context.Context, actor *entity.Identity, id int) error
	CompleteRequest(ctx context.Context, actor *entity.Identity, recordingID int, req *dto.CompleteRequestRequest) (*dto.RecordingRequestResponse, error)
}

type recordingUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	mediaCfg       config.MediaConfig
	recordingRepo  repository.RecordingRepository
	requestRepo    repository.RecordingRequestRepository
	patientRepo    repository.PatientRepository
	connectionRepo repository.ConnectionRepository
	store          *storage.MediaStore
	converter      service.AudioConverter
	auditService   service.AuditService
}

func NewRecordingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	mediaCfg config.MediaConfig,
	recordingRepo repository.RecordingRepository,
	requestRepo repository.RecordingRequestRepository,
	patientRepo repository.PatientRepository,
	connectionRepo repository.ConnectionRepository,
	store *storage.MediaStore,
	audioConverter service.AudioConverter,
	auditService service.AuditService,
) RecordingUsecase {
	return &recordingUsecase{
		db:             db,
		log:            log,
		mediaCfg:       mediaCfg,
		recordingRepo:  recordingRepo,
		requestRepo:    requestRepo,
		patientRepo:    patientRepo,
		connectionRepo: connectionRepo,
		store:          store,
		converter:      audioConverter,
		auditService:   auditService,
	}
}

// Upload stores an audio payload under the target patient's directory and
// creates the metadata row. When an audio converter is configured the stored
// payload is replaced with the converted output; conversion failures keep
// the original upload and never leave staging intermediates behind.
func (u *recordingUsecase) Upload(ctx context.Context, actor *entity.Identity, input *UploadRecordingInput) (*dto.RecordingResponse, error) {
	if input.Size > u.mediaCfg.UploadMaxBytes {
		return nil, ErrFileTooLarge
	}

	patientID, err := u.resolveTargetPatient(ctx, actor, input.PatientID)
	if err != nil {
		return nil, err
	}

	// Sniff the MIME type from the head of the stream, then stitch the
	// consumed bytes back in front of the remainder.
	head := make([]byte, 3072)
	n, err := io.ReadFull(input.File, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		u.log.Warnf("Failed to read upload: %+v", err)
		return nil, err
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !u.isAllowedAudioType(mtype) {
		return nil, ErrUnsupportedAudioType
	}

	filename := storage.FileName(input.Title, mtype.Extension())
	payload := io.MultiReader(bytes.NewReader(head), io.LimitReader(input.File, u.mediaCfg.UploadMaxBytes))

	rel, size, err := u.store.Save(patientID, filename, payload)
	if err != nil {
		u.log.Warnf("Failed to store upload: %+v", err)
		return nil, err
	}
	if size > u.mediaCfg.UploadMaxBytes {
		u.store.Remove(rel)
		return nil, ErrFileTooLarge
	}

	contentType := mtype.String()
	if u.converter != nil {
		rel, size, contentType = u.convert(ctx, input.Title, rel, size, contentType)
	}

	recording := &entity.Recording{
		Title:       input.Title,
		Description: input.Description,
		FilePath:    rel,
		FileSize:    size,
		ContentType: contentType,
		Duration:    input.Duration,
		PatientID:   &patientID,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordingRepo.Create(ctx, tx, recording); err != nil {
		u.log.Warnf("Failed to create recording: %+v", err)
		u.store.Remove(rel)
		return nil, err
	}

	u.auditService.Log(ctx, tx, &actor.User.ID, entity.AuditActionRecordingUpload, entity.JSON{
		"recording_id": recording.ID,
		"patient_id":   patientID,
		"file_size":    size,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.store.Remove(rel)
		return nil, err
	}

	return converter.RecordingToResponse(recording), nil
}

// convert runs the external encoder through a staging file and swaps the
// converted output in place of the original. Failures keep the original.
func (u *recordingUsecase) convert(ctx context.Context, title, rel string, size int64, contentType string) (string, int64, string) {
	ext := "." + u.converter.TargetFormat()
	staged := u.store.StagingPath(ext)
	defer os.Remove(staged)

	if err := u.converter.Convert(ctx, u.store.Abs(rel), staged); err != nil {
		u.log.Warnf("Audio conversion failed, keeping original upload: %+v", err)
		return rel, size, contentType
	}

	newRel, newSize, err := u.store.Swap(rel, staged, storage.FileName(title, ext))
	if err != nil {
		u.log.Warnf("Failed to swap converted file, keeping original upload: %+v", err)
		return rel, size, contentType
	}

	return newRel, newSize, u.converter.ContentType()
}

// ListByPatient lists a patient's recordings, subject to connection checks
func (u *recordingUsecase) ListByPatient(ctx context.Context, actor *entity.Identity, patientID int) (*dto.RecordingListResponse, error) {
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

	recordings, err := u.recordingRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find recordings for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.RecordingListResponse{
		Recordings: converter.RecordingsToResponses(recordings),
		Total:      len(recordings),
	}, nil
}

// MyRecordings lists the calling patient's own recordings
func (u *recordingUsecase) MyRecordings(ctx context.Context, actor *entity.Identity) (*dto.RecordingListResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrProfileNotFound
	}
	return u.ListByPatient(ctx, actor, actor.Patient.ID)
}

// ProviderPatientRecordings returns the calling provider's connected
// patients with their recordings, optionally narrowed to one patient.
func (u *recordingUsecase) ProviderPatientRecordings(ctx context.Context, actor *entity.Identity, patientID *int) ([]dto.PatientRecordingsGroup, error) {
	if !actor.IsProvider() {
		return nil, ErrProviderNotFound
	}

	connections, err := u.connectionRepo.FindByProviderID(ctx, u.db, actor.Provider.ID)
	if err != nil {
		u.log.Warnf("Failed to find connections for provider %d: %+v", actor.Provider.ID, err)
		return nil, err
	}

	groups := make([]dto.PatientRecordingsGroup, 0, len(connections))
	for _, conn := range connections {
		if patientID != nil && conn.PatientID != *patientID {
			continue
		}

		recordings, err := u.recordingRepo.FindByPatientID(ctx, u.db, conn.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find recordings for patient %d: %+v", conn.PatientID, err)
			return nil, err
		}

		groups = append(groups, dto.PatientRecordingsGroup{
			PatientID:   conn.PatientID,
			PatientName: conn.Patient.FirstName + " " + conn.Patient.LastName,
			Recordings:  converter.RecordingsToResponses(recordings),
		})
	}

	return groups, nil
}

// Get returns one recording, subject to connection checks
func (u *recordingUsecase) Get(ctx context.Context, actor *entity.Identity, id int) (*dto.RecordingResponse, error) {
	recording, err := u.recordingRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find recording %d: %+v", id, err)
		return nil, err
	}
	if recording == nil {
		return nil, ErrRecordingNotFound
	}

	if recording.PatientID != nil {
		if err := u.authorizePatientAccess(ctx, actor, *recording.PatientID); err != nil {
			return nil, err
		}
	}

	return converter.RecordingToResponse(recording), nil
}

// Delete removes the recording row and its stored file
func (u *recordingUsecase) Delete(ctx context.Context, actor *entity.Identity, id int) error {
	recording, err := u.recordingRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find recording %d: %+v", id, err)
		return err
	}
	if recording == nil {
		return ErrRecordingNotFound
	}

	if recording.PatientID != nil {
		if err := u.authorizePatientAccess(ctx, actor, *recording.PatientID); err != nil {
			return err
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordingRepo.Delete(ctx, tx, recording.ID); err != nil {
		u.log.Warnf("Failed to delete recording %d: %+v", recording.ID, err)
		return err
	}

	u.auditService.Log(ctx, tx, &actor.User.ID, entity.AuditActionRecordingDelete, entity.JSON{
		"recording_id": recording.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.store.Remove(recording.FilePath); err != nil {
		u.log.Warnf("Failed to remove media file %s: %+v", recording.FilePath, err)
	}

	return nil
}

// CompleteRequest attaches a recording to a pending request and marks it
// completed. Patients may only fulfill their own requests.
func (u *recordingUsecase) CompleteRequest(ctx context.Context, actor *entity.Identity, recordingID int, req *dto.CompleteRequestRequest) (*dto.RecordingRequestResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.requestRepo.FindByID(ctx, tx, req.RequestID)
	if err != nil {
		u.log.Warnf("Failed to find recording request %d: %+v", req.RequestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	if actor.IsPatient() && request.PatientID != actor.Patient.ID {
		return nil, ErrRequestNotOwned
	}

	// Completed is terminal, a fulfilled request cannot be re-pointed
	if request.IsCompleted() {
		return nil, ErrRequestAlreadyCompleted
	}

	recording, err := u.recordingRepo.FindByID(ctx, tx, recordingID)
	if err != nil {
		u.log.Warnf("Failed to find recording %d: %+v", recordingID, err)
		return nil, err
	}
	if recording == nil {
		return nil, ErrRecordingNotFound
	}

	request.Fulfill(recording.ID, time.Now())
	if err := u.requestRepo.Update(ctx, tx, request); err != nil {
		u.log.Warnf("Failed to complete recording request %d: %+v", request.ID, err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, &actor.User.ID, entity.AuditActionRequestComplete, entity.JSON{
		"request_id":   request.ID,
		"recording_id": recording.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	request.Recording = recording
	return converter.RequestToResponse(request), nil
}

// resolveTargetPatient maps an upload to its patient row. Providers must
// name a connected patient explicitly; patients default to themselves.
func (u *recordingUsecase) resolveTargetPatient(ctx context.Context, actor *entity.Identity, explicit *int) (int, error) {
	if explicit != nil {
		patient, err := u.patientRepo.FindByID(ctx, u.db, *explicit)
		if err != nil {
			u.log.Warnf("Failed to find patient %d: %+v", *explicit, err)
			return 0, err
		}
		if patient == nil {
			return 0, ErrPatientNotFound
		}
		if err := u.authorizePatientAccess(ctx, actor, patient.ID); err != nil {
			return 0, err
		}
		return patient.ID, nil
	}

	if actor.IsPatient() {
		return actor.Patient.ID, nil
	}
	return 0, ErrPatientNotFound
}

func (u *recordingUsecase) isAllowedAudioType(mtype *mimetype.MIME) bool {
	for _, allowed := range u.mediaCfg.AllowedAudioTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}

func (u *recordingUsecase) authorizePatientAccess(ctx context.Context, actor *entity.Identity, patientID int) error {
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
