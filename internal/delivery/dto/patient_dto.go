package dto

// PatientResponse carries the full patient profile
type PatientResponse struct {
	ID             int    `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Age            int    `json:"age"`
	MedicalHistory string `json:"medical_history,omitempty"`
	Address        string `json:"address,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Email          string `json:"email"`
}

// PatientSummary carries the minimal display fields used in connection lists
type PatientSummary struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
