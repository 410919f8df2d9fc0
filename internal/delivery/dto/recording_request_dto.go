package dto

import "time"

// Request DTOs

type CreateRecordingRequestRequest struct {
	PatientID   int    `json:"patient_id" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty"`
}

// Response DTOs

type RecordingRequestResponse struct {
	ID           int                `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Status       string             `json:"status"`
	ProviderID   int                `json:"provider_id"`
	PatientID    int                `json:"patient_id"`
	Recording    *RecordingResponse `json:"recording,omitempty"`
	IssueDate    time.Time          `json:"issue_date"`
	ResponseDate *time.Time         `json:"response_date,omitempty"`
}

type RecordingRequestListResponse struct {
	Requests []RecordingRequestResponse `json:"requests"`
	Total    int                        `json:"total"`
}
