package handler

import (
	"encoding/json"
	"net/http"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"
)

type RecordingRequestHandler struct {
	authUsecase    usecase.AuthUsecase
	requestUsecase usecase.RecordingRequestUsecase
	validator      *validator.CustomValidator
}

func NewRecordingRequestHandler(authUsecase usecase.AuthUsecase, requestUsecase usecase.RecordingRequestUsecase, validator *validator.CustomValidator) *RecordingRequestHandler {
	return &RecordingRequestHandler{
		authUsecase:    authUsecase,
		requestUsecase: requestUsecase,
		validator:      validator,
	}
}

// Create issues a recording request to a connected patient
// @Summary Create recording request
// @Description Ask a connected patient to submit an audio recording
// @Tags RecordingRequests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateRecordingRequestRequest true "Create Recording Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recording-requests/create [post]
func (h *RecordingRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	var req dto.CreateRecordingRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.requestUsecase.Create(r.Context(), identity, &req)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.Forbidden(w, "Caller is not a provider")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "Provider is not connected to this patient")
		default:
			response.InternalServerError(w, "Failed to create recording request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Recording request created successfully", result)
}

// ListByPatient lists every request issued to a patient
// @Summary List requests by patient
// @Description List every recording request issued to a patient
// @Tags RecordingRequests
// @Security BearerAuth
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recording-requests/patient/{patient_id} [get]
func (h *RecordingRequestHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	result, err := h.requestUsecase.ListByPatient(r.Context(), identity, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "You don't have access to this patient")
		default:
			response.InternalServerError(w, "Failed to list recording requests")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recording requests retrieved successfully", result)
}

// MyRequests lists the caller's own recording requests
// @Summary List own requests
// @Description List requests issued by the provider or received by the patient
// @Tags RecordingRequests
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /recording-requests/my-requests [get]
func (h *RecordingRequestHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	result, err := h.requestUsecase.MyRequests(r.Context(), identity)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.Forbidden(w, "Caller has no patient or provider profile")
		default:
			response.InternalServerError(w, "Failed to list recording requests")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recording requests retrieved successfully", result)
}
