package dto

// Request DTOs

type SignatureForPatientRequest struct {
	PatientID        int    `json:"patient_id" validate:"required,min=1"`
	IsChecked        bool   `json:"is_checked" validate:"required"`
	DigitalSignature string `json:"digital_signature" validate:"required,max=200"`
	Date             string `json:"date" validate:"required"` // Format: YYYY-MM-DD
}

// Response DTOs

type SignatureResponse struct {
	ID               int    `json:"id"`
	PatientID        *int   `json:"patient_id,omitempty"`
	IsChecked        bool   `json:"is_checked"`
	DigitalSignature string `json:"digital_signature"`
	Date             string `json:"date"`
}

type SignatureListResponse struct {
	Signatures []SignatureResponse `json:"signatures"`
	Total      int                 `json:"total"`
}
