package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// RecordingToResponse converts a Recording entity to its DTO. The storage
// path stays server-side.
func RecordingToResponse(recording *entity.Recording) *dto.RecordingResponse {
	if recording == nil {
		return nil
	}

	return &dto.RecordingResponse{
		ID:          recording.ID,
		Title:       recording.Title,
		Description: recording.Description,
		FileSize:    recording.FileSize,
		ContentType: recording.ContentType,
		Duration:    recording.Duration,
		PatientID:   recording.PatientID,
		CreatedAt:   recording.CreatedAt,
	}
}

// RecordingsToResponses converts a slice of Recording entities to DTOs
func RecordingsToResponses(recordings []entity.Recording) []dto.RecordingResponse {
	responses := make([]dto.RecordingResponse, len(recordings))
	for i, recording := range recordings {
		responses[i] = *RecordingToResponse(&recording)
	}
	return responses
}

// RequestToResponse converts a RecordingRequest entity to its DTO
func RequestToResponse(request *entity.RecordingRequest) *dto.RecordingRequestResponse {
	if request == nil {
		return nil
	}

	resp := &dto.RecordingRequestResponse{
		ID:           request.ID,
		Title:        request.Title,
		Description:  request.Description,
		Status:       string(request.Status),
		ProviderID:   request.ProviderID,
		PatientID:    request.PatientID,
		IssueDate:    request.IssueDate,
		ResponseDate: request.ResponseDate,
	}

	if request.Recording != nil {
		resp.Recording = RecordingToResponse(request.Recording)
	}

	return resp
}

// RequestsToResponses converts a slice of RecordingRequest entities to DTOs
func RequestsToResponses(requests []entity.RecordingRequest) []dto.RecordingRequestResponse {
	responses := make([]dto.RecordingRequestResponse, len(requests))
	for i, request := range requests {
		responses[i] = *RequestToResponse(&request)
	}
	return responses
}
