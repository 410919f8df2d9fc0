package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clinic-backend/config"
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"
)

type RecordingHandler struct {
	authUsecase      usecase.AuthUsecase
	recordingUsecase usecase.RecordingUsecase
	validator        *validator.CustomValidator
	mediaCfg         config.MediaConfig
}

func NewRecordingHandler(authUsecase usecase.AuthUsecase, recordingUsecase usecase.RecordingUsecase, validator *validator.CustomValidator, mediaCfg config.MediaConfig) *RecordingHandler {
	return &RecordingHandler{
		authUsecase:      authUsecase,
		recordingUsecase: recordingUsecase,
		validator:        validator,
		mediaCfg:         mediaCfg,
	}
}

// Upload stores an uploaded audio recording. Web clients send multipart
// form data; mobile clients send JSON with the payload base64 encoded.
// @Summary Upload recording
// @Description Upload an audio file as multipart form data or base64 JSON
// @Tags Recordings
// @Security BearerAuth
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param file formData file true "Audio file"
// @Param title formData string true "Recording title"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /recordings/upload [post]
func (h *RecordingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		h.uploadJSON(w, r, identity)
		return
	}

	// Cap the whole request a little above the payload limit so the size
	// check in the usecase still sees oversize uploads.
	r.Body = http.MaxBytesReader(w, r.Body, h.mediaCfg.UploadMaxBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		response.BadRequest(w, "Title is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Audio file is required")
		return
	}
	defer file.Close()

	input := &usecase.UploadRecordingInput{
		Title:       title,
		Description: r.FormValue("description"),
		File:        file,
		Size:        header.Size,
	}

	if v := r.FormValue("duration"); v != "" {
		duration, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.BadRequest(w, "Invalid duration")
			return
		}
		input.Duration = duration
	}

	if v := r.FormValue("patient_id"); v != "" {
		patientID, err := strconv.Atoi(v)
		if err != nil || patientID < 1 {
			response.BadRequest(w, "Invalid patient_id")
			return
		}
		input.PatientID = &patientID
	}

	result, err := h.recordingUsecase.Upload(r.Context(), identity, input)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Recording uploaded successfully", result)
}

// uploadJSON handles the base64 JSON upload variant
func (h *RecordingHandler) uploadJSON(w http.ResponseWriter, r *http.Request, identity *entity.Identity) {
	// Base64 inflates the payload by a third, cap the body accordingly
	r.Body = http.MaxBytesReader(w, r.Body, h.mediaCfg.UploadMaxBytes*4/3+1<<20)

	var req dto.UploadRecordingJSONRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	audio, err := decodeAudioData(req.AudioData)
	if err != nil {
		response.BadRequest(w, "Invalid audio data")
		return
	}

	input := &usecase.UploadRecordingInput{
		Title:     req.Name,
		Duration:  req.Duration,
		PatientID: req.PatientID,
		File:      bytes.NewReader(audio),
		Size:      int64(len(audio)),
	}

	result, err := h.recordingUsecase.Upload(r.Context(), identity, input)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Recording uploaded successfully", result)
}

// decodeAudioData accepts plain base64 or a data URL and returns the raw
// audio bytes
func decodeAudioData(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		if i := strings.Index(data, ","); i >= 0 {
			data = data[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(data))
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrFileTooLarge:
		response.BadRequest(w, "Uploaded file exceeds the maximum allowed size")
	case usecase.ErrUnsupportedAudioType:
		response.BadRequest(w, "Uploaded file is not an allowed audio type")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrNotConnected:
		response.Forbidden(w, "You don't have access to this patient")
	default:
		response.InternalServerError(w, "Failed to upload recording")
	}
}

// ByPatient lists recordings of one patient
// @Summary List recordings by patient
// @Description List every recording stored for a patient
// @Tags Recordings
// @Security BearerAuth
// @Produce json
// @Param patient_id query int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recordings/by-patient [get]
func (h *RecordingHandler) ByPatient(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	v := r.URL.Query().Get("patient_id")
	if v == "" {
		// Patients may omit the id to list their own recordings
		result, err := h.recordingUsecase.MyRecordings(r.Context(), identity)
		if err != nil {
			switch err {
			case usecase.ErrProfileNotFound:
				response.BadRequest(w, "patient_id is required")
			default:
				response.InternalServerError(w, "Failed to list recordings")
			}
			return
		}
		response.Success(w, http.StatusOK, "Recordings retrieved successfully", result)
		return
	}

	patientID, err := strconv.Atoi(v)
	if err != nil || patientID < 1 {
		response.BadRequest(w, "Invalid patient_id")
		return
	}

	result, err := h.recordingUsecase.ListByPatient(r.Context(), identity, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "You don't have access to this patient")
		default:
			response.InternalServerError(w, "Failed to list recordings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recordings retrieved successfully", result)
}

// ProviderPatientRecordings lists connected patients with their recordings
// @Summary Provider recordings overview
// @Description List the provider's connected patients with their recordings
// @Tags Recordings
// @Security BearerAuth
// @Produce json
// @Param patient_id query int false "Narrow to one patient"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /recordings/provider-patient-recordings [get]
func (h *RecordingHandler) ProviderPatientRecordings(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	var patientID *int
	if v := r.URL.Query().Get("patient_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 1 {
			response.BadRequest(w, "Invalid patient_id")
			return
		}
		patientID = &id
	}

	result, err := h.recordingUsecase.ProviderPatientRecordings(r.Context(), identity, patientID)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.Forbidden(w, "Caller is not a provider")
		default:
			response.InternalServerError(w, "Failed to list recordings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recordings retrieved successfully", result)
}

// Get returns one recording's metadata
// @Summary Get recording
// @Description Get a recording's metadata by id
// @Tags Recordings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recording ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recordings/{id} [get]
func (h *RecordingHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	result, err := h.recordingUsecase.Get(r.Context(), identity, id)
	if err != nil {
		switch err {
		case usecase.ErrRecordingNotFound:
			response.NotFound(w, "Recording not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "You don't have access to this recording")
		default:
			response.InternalServerError(w, "Failed to get recording")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recording retrieved successfully", result)
}

// Delete removes a recording and its stored file
// @Summary Delete recording
// @Description Delete a recording row and remove its audio file
// @Tags Recordings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recording ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recordings/{id} [delete]
func (h *RecordingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.recordingUsecase.Delete(r.Context(), identity, id); err != nil {
		switch err {
		case usecase.ErrRecordingNotFound:
			response.NotFound(w, "Recording not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "You don't have access to this recording")
		default:
			response.InternalServerError(w, "Failed to delete recording")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recording deleted successfully", nil)
}

// CompleteRequest fulfills a recording request with this recording
// @Summary Complete recording request
// @Description Attach the recording to a pending request and complete it
// @Tags Recordings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recording ID"
// @Param request body dto.CompleteRequestRequest true "Complete Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /recordings/{id}/complete-request [post]
func (h *RecordingHandler) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	recordingID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req dto.CompleteRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.recordingUsecase.CompleteRequest(r.Context(), identity, recordingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRequestNotFound):
			response.NotFound(w, "Recording request not found")
		case errors.Is(err, usecase.ErrRecordingNotFound):
			response.NotFound(w, "Recording not found")
		case errors.Is(err, usecase.ErrRequestNotOwned):
			response.Forbidden(w, "Recording request belongs to another patient")
		case errors.Is(err, usecase.ErrRequestAlreadyCompleted):
			response.Conflict(w, "Recording request has already been completed")
		default:
			response.InternalServerError(w, "Failed to complete recording request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recording request completed successfully", result)
}
