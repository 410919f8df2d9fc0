package dto

import "time"

// Request DTOs

type CompleteRequestRequest struct {
	RequestID int `json:"request_id" validate:"required,min=1"`
}

// UploadRecordingJSONRequest is the JSON upload variant used by mobile
// clients. AudioData carries the payload base64 encoded, either plain or
// as a data URL.
type UploadRecordingJSONRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=255"`
	AudioData string  `json:"audio_data" validate:"required"`
	Duration  float64 `json:"duration" validate:"omitempty,min=0"`
	PatientID *int    `json:"patient_id" validate:"omitempty,min=1"`
}

// Response DTOs

type RecordingResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	Duration    float64   `json:"duration"`
	PatientID   *int      `json:"patient_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecordingListResponse struct {
	Recordings []RecordingResponse `json:"recordings"`
	Total      int                 `json:"total"`
}

// PatientRecordingsGroup buckets a connected patient's recordings for the
// provider overview endpoint
type PatientRecordingsGroup struct {
	PatientID   int                 `json:"patient_id"`
	PatientName string              `json:"patient_name"`
	Recordings  []RecordingResponse `json:"recordings"`
}
