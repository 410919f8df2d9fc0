package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/response"
	"clinic-backend/pkg/validator"
)

type SurveyHandler struct {
	authUsecase   usecase.AuthUsecase
	surveyUsecase usecase.SurveyUsecase
	validator     *validator.CustomValidator
}

func NewSurveyHandler(authUsecase usecase.AuthUsecase, surveyUsecase usecase.SurveyUsecase, validator *validator.CustomValidator) *SurveyHandler {
	return &SurveyHandler{
		authUsecase:   authUsecase,
		surveyUsecase: surveyUsecase,
		validator:     validator,
	}
}

// CreateSurvey issues a new survey to a connected patient
// @Summary Create survey
// @Description Issue a survey with questions drawn from the shared bank
// @Tags Surveys
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSurveyRequest true "Create Survey Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/create [post]
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	var req dto.CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.surveyUsecase.CreateSurvey(r.Context(), identity, &req)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.Forbidden(w, "Caller is not a provider")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrQuestionNotFound:
			response.NotFound(w, "Question not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "Provider is not connected to this patient")
		default:
			response.InternalServerError(w, "Failed to create survey")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Survey created successfully", result)
}

// GetSurveysByPatient lists a patient's surveys
// @Summary List surveys by patient
// @Description List every survey issued to a patient
// @Tags Surveys
// @Security BearerAuth
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/patient/{patient_id} [get]
func (h *SurveyHandler) GetSurveysByPatient(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	result, err := h.surveyUsecase.GetSurveysByPatient(r.Context(), identity, patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "You don't have access to this patient")
		default:
			response.InternalServerError(w, "Failed to list surveys")
		}
		return
	}

	response.Success(w, http.StatusOK, "Surveys retrieved successfully", result)
}

// GetMySurveys lists the calling patient's surveys
// @Summary List own surveys
// @Description List every survey issued to the authenticated patient
// @Tags Surveys
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /surveys/my-surveys [get]
func (h *SurveyHandler) GetMySurveys(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	result, err := h.surveyUsecase.GetMySurveys(r.Context(), identity)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.Forbidden(w, "Caller is not a patient")
		default:
			response.InternalServerError(w, "Failed to list surveys")
		}
		return
	}

	response.Success(w, http.StatusOK, "Surveys retrieved successfully", result)
}

// GetAllQuestions returns the shared question bank
// @Summary List question bank
// @Description List every open and multiple choice question available
// @Tags Surveys
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /surveys/questions [get]
func (h *SurveyHandler) GetAllQuestions(w http.ResponseWriter, r *http.Request) {
	result, err := h.surveyUsecase.GetAllQuestions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list questions")
		return
	}

	response.Success(w, http.StatusOK, "Questions retrieved successfully", result)
}

// GetSurveyQuestions returns a survey's response rows with question text
// @Summary Get survey questions
// @Description Get every question of a survey with options and stored answers
// @Tags Surveys
// @Security BearerAuth
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /surveys/{survey_id}/questions [get]
func (h *SurveyHandler) GetSurveyQuestions(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	surveyID, ok := pathInt(w, r, "survey_id")
	if !ok {
		return
	}

	result, err := h.surveyUsecase.GetSurveyQuestions(r.Context(), identity, surveyID)
	if err != nil {
		switch err {
		case usecase.ErrSurveyNotFound:
			response.NotFound(w, "Survey not found")
		case usecase.ErrNotConnected:
			response.Forbidden(w, "You don't have access to this survey")
		default:
			response.InternalServerError(w, "Failed to get survey questions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Survey questions retrieved successfully", result)
}

// SubmitSurvey stores a patient's answers and completes the survey
// @Summary Submit survey
// @Description Store the submitted answers and mark the survey completed
// @Tags Surveys
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param survey_id path int true "Survey ID"
// @Param request body dto.SubmitSurveyRequest true "Submit Survey Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /surveys/{survey_id}/submit [post]
func (h *SurveyHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	identity, ok := resolveIdentity(w, r, h.authUsecase)
	if !ok {
		return
	}

	surveyID, ok := pathInt(w, r, "survey_id")
	if !ok {
		return
	}

	var req dto.SubmitSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.surveyUsecase.SubmitSurvey(r.Context(), identity, surveyID, &req); err != nil {
		var invalidAnswer *usecase.InvalidAnswerError
		switch {
		case errors.Is(err, usecase.ErrSurveyNotFound):
			response.NotFound(w, "Survey not found")
		case errors.Is(err, usecase.ErrSurveyAlreadyCompleted):
			response.Conflict(w, "Survey has already been completed")
		case errors.As(err, &invalidAnswer):
			response.BadRequest(w, invalidAnswer.Error())
		default:
			response.InternalServerError(w, "Failed to submit survey")
		}
		return
	}

	response.Success(w, http.StatusOK, "Survey submitted successfully", nil)
}
