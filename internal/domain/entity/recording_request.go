package entity

import "time"

// RequestStatus represents the lifecycle state of a recording request
type RequestStatus string

const (
	RequestStatusSent      RequestStatus = "sent"
	RequestStatusCompleted RequestStatus = "completed"
)

// RecordingRequest is a provider-issued solicitation for an audio recording,
// fulfilled by attaching exactly one Recording.
type RecordingRequest struct {
	ID           int           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string        `gorm:"type:varchar(255);not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description,omitempty"`
	Status       RequestStatus `gorm:"type:varchar(10);not null;default:'sent';index" json:"status"`
	ProviderID   int           `gorm:"not null;index" json:"provider_id"`
	PatientID    int           `gorm:"not null;index" json:"patient_id"`
	RecordingID  *int          `gorm:"uniqueIndex" json:"recording_id,omitempty"`
	IssueDate    time.Time     `gorm:"autoCreateTime" json:"issue_date"`
	ResponseDate *time.Time    `json:"response_date,omitempty"`

	// Relationships
	Provider  Provider   `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Patient   Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Recording *Recording `gorm:"foreignKey:RecordingID" json:"recording,omitempty"`
}

func (RecordingRequest) TableName() string {
	return "recording_requests"
}

// IsCompleted checks if the request has been fulfilled
func (r *RecordingRequest) IsCompleted() bool {
	return r.Status == RequestStatusCompleted
}

// Fulfill attaches a recording and marks the request completed
func (r *RecordingRequest) Fulfill(recordingID int, at time.Time) {
	r.RecordingID = &recordingID
	r.Status = RequestStatusCompleted
	r.ResponseDate = &at
}
