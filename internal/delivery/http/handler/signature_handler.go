package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"
)

type SignatureHandler struct {
	authUsecase      usecase.AuthUsecase
	signatureUsecase usecase.SignatureUsecase
	validator        *validator.CustomValidator
}

func NewSignatureHandler(authUsecase usecase.AuthUsecase, signatureUsecase usecase.SignatureUsecase, validator *validator.CustomValidator) *SignatureHandler {
	return &SignatureHandler{
		authUsecase:      authUsecase,
		signatureUsecase: signatureUsecase,
		validator:        validator,
	}
}

// ForPatient upserts a patient's consent signature
// @Summary Upsert signature
// @Description Create or update the single consent signature of a patient
// @Tags Signatures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SignatureForPatientRequest true "Signature Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /signatures/for-patient [post]
func (h *SignatureHandler) ForPatient(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	var req dto.SignatureForPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.signatureUsecase.ForPatient(r.Context(), identity, &req)
	if err != nil {
		switch err {
		case usecase.ErrConsentNotChecked:
			response.BadRequest(w, "Consent checkbox must be checked")
		case usecase.ErrInvalidDate:
			response.BadRequest(w, "Date must use the YYYY-MM-DD format")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to save signature")
		}
		return
	}

	response.Success(w, http.StatusOK, "Signature saved successfully", result)
}

// ByPatient returns a patient's signature
// @Summary Get signature by patient
// @Description Get the consent signature recorded for a patient
// @Tags Signatures
// @Security BearerAuth
// @Produce json
// @Param patient_id query int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /signatures/by-patient [get]
func (h *SignatureHandler) ByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.Atoi(r.URL.Query().Get("patient_id"))
	if err != nil || patientID < 1 {
		response.BadRequest(w, "Invalid patient_id")
		return
	}

	result, err := h.signatureUsecase.ByPatient(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrSignatureNotFound:
			response.NotFound(w, "Signature not found")
		default:
			response.InternalServerError(w, "Failed to get signature")
		}
		return
	}

	response.Success(w, http.StatusOK, "Signature retrieved successfully", result)
}

// List returns every stored signature
// @Summary List signatures
// @Description List every consent signature
// @Tags Signatures
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /signatures [get]
func (h *SignatureHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.signatureUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list signatures")
		return
	}

	response.Success(w, http.StatusOK, "Signatures retrieved successfully", result)
}

// Get returns one signature by id
// @Summary Get signature
// @Description Get a consent signature by id
// @Tags Signatures
// @Security BearerAuth
// @Produce json
// @Param id path int true "Signature ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /signatures/{id} [get]
func (h *SignatureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	result, err := h.signatureUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrSignatureNotFound:
			response.NotFound(w, "Signature not found")
		default:
			response.InternalServerError(w, "Failed to get signature")
		}
		return
	}

	response.Success(w, http.StatusOK, "Signature retrieved successfully", result)
}

// Delete removes a signature
// @Summary Delete signature
// @Description Delete a consent signature by id
// @Tags Signatures
// @Security BearerAuth
// @Produce json
// @Param id path int true "Signature ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /signatures/{id} [delete]
func (h *SignatureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.signatureUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSignatureNotFound:
			response.NotFound(w, "Signature not found")
		default:
			response.InternalServerError(w, "Failed to delete signature")
		}
		return
	}

	response.Success(w, http.StatusOK, "Signature deleted successfully", nil)
}
