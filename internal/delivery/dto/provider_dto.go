package dto

// Request DTOs

type SearchPatientRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConnectRequest struct {
	PatientEmail string `json:"patient_email" validate:"required,email"`
}

// Response DTOs

type ProviderResponse struct {
	ID          int    `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email"`
}

type ConnectResponse struct {
	ConnectionID int  `json:"connection_id"`
	PatientID    int  `json:"patient_id"`
	Created      bool `json:"created"`
}

type ConnectedPatientsResponse struct {
	Patients []PatientSummary `json:"patients"`
	Total    int              `json:"total"`
}
