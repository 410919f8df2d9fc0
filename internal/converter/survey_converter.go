package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// SurveyToResponse converts a Survey entity to its DTO
func SurveyToResponse(survey *entity.Survey) *dto.SurveyResponse {
	if survey == nil {
		return nil
	}

	return &dto.SurveyResponse{
		ID:           survey.ID,
		Title:        survey.Title,
		IssueDate:    survey.IssueDate,
		ResponseDate: survey.ResponseDate,
		Status:       string(survey.Status),
		PatientID:    survey.PatientID,
		ProviderID:   survey.ProviderID,
	}
}

// SurveysToResponses converts a slice of Survey entities to DTOs
func SurveysToResponses(surveys []entity.Survey) []dto.SurveyResponse {
	responses := make([]dto.SurveyResponse, len(surveys))
	for i, survey := range surveys {
		responses[i] = *SurveyToResponse(&survey)
	}
	return responses
}

// OpenQuestionToResponse converts an OpenQuestion to its DTO
func OpenQuestionToResponse(q *entity.OpenQuestion) dto.OpenQuestionResponse {
	return dto.OpenQuestionResponse{
		ID:          q.ID,
		Description: q.Description,
	}
}

// MCOptionsToResponses converts option entities to DTOs
func MCOptionsToResponses(options []entity.MultipleChoiceOption) []dto.MCOptionResponse {
	out := make([]dto.MCOptionResponse, len(options))
	for i, o := range options {
		out[i] = dto.MCOptionResponse{ID: o.ID, Option: o.Option}
	}
	return out
}

// MCQuestionToResponse converts a MultipleChoiceQuestion with its options
func MCQuestionToResponse(q *entity.MultipleChoiceQuestion) dto.MCQuestionResponse {
	return dto.MCQuestionResponse{
		ID:          q.ID,
		Description: q.Description,
		Options:     MCOptionsToResponses(q.Options),
	}
}
