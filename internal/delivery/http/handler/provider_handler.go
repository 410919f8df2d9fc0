package handler

import (
	"encoding/json"
	"net/http"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"
)

type ProviderHandler struct {
	authUsecase     usecase.AuthUsecase
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
}

func NewProviderHandler(authUsecase usecase.AuthUsecase, providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator) *ProviderHandler {
	return &ProviderHandler{
		authUsecase:     authUsecase,
		providerUsecase: providerUsecase,
		validator:       validator,
	}
}

// Register handles provider account creation
// @Summary Register a new provider
// @Description Create a provider account with profile and return a token pair
// @Tags Providers
// @Accept json
// @Produce json
// @Param request body dto.RegisterProviderRequest true "Register Provider Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /providers/register [post]
func (h *ProviderHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.authUsecase.RegisterProvider(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to register provider")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Provider registered successfully", result)
}

// Login handles provider login
// @Summary Login provider
// @Description Login with email and password
// @Tags Providers
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /providers/login [post]
func (h *ProviderHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// SearchPatient looks up a patient by email
// @Summary Search patient
// @Description Find a patient profile by email address
// @Tags Providers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SearchPatientRequest true "Search Patient Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /providers/search-patient [post]
func (h *ProviderHandler) SearchPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.providerUsecase.SearchPatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to search patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient found", patient)
}

// Connect links the calling provider to a patient
// @Summary Connect to patient
// @Description Create a provider-patient connection by patient email
// @Tags Providers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConnectRequest true "Connect Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /providers/connect [post]
func (h *ProviderHandler) Connect(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	var req dto.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.providerUsecase.Connect(r.Context(), identity, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrProviderNotFound:
			response.Forbidden(w, "Caller is not a provider")
		default:
			response.InternalServerError(w, "Failed to connect to patient")
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.Success(w, status, "Connection established", result)
}

// MyPatients lists the calling provider's connected patients
// @Summary List connected patients
// @Description List every patient connected to the authenticated provider
// @Tags Providers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /providers/my-patients [get]
func (h *ProviderHandler) MyPatients(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	result, err := h.providerUsecase.ListPatients(r.Context(), identity)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.Forbidden(w, "Caller is not a provider")
		default:
			response.InternalServerError(w, "Failed to list patients")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", result)
}

// GetProviderInfo returns the calling provider's own profile
// @Summary Get provider profile
// @Description Get the authenticated provider's profile
// @Tags Providers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /providers/me [get]
func (h *ProviderHandler) GetProviderInfo(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	result, err := h.providerUsecase.GetProviderInfo(r.Context(), identity)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.Forbidden(w, "Caller is not a provider")
		default:
			response.InternalServerError(w, "Failed to get provider info")
		}
		return
	}

	response.Success(w, http.StatusOK, "Provider retrieved successfully", result)
}
