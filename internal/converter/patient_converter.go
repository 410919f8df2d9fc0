package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to the full profile DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:             patient.ID,
		FirstName:      patient.FirstName,
		LastName:       patient.LastName,
		Age:            patient.Age,
		MedicalHistory: patient.MedicalHistory,
		Address:        patient.Address,
		PhoneNumber:    patient.PhoneNumber,
		Email:          patient.Email,
	}
}

// PatientToSummary converts a Patient entity to the minimal display DTO
func PatientToSummary(patient *entity.Patient) dto.PatientSummary {
	return dto.PatientSummary{
		ID:        patient.ID,
		Email:     patient.Email,
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
	}
}
