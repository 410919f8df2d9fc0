package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// SignatureToResponse converts a Signature entity to its DTO
func SignatureToResponse(signature *entity.Signature) *dto.SignatureResponse {
	if signature == nil {
		return nil
	}

	return &dto.SignatureResponse{
		ID:               signature.ID,
		PatientID:        signature.PatientID,
		IsChecked:        signature.IsChecked,
		DigitalSignature: signature.DigitalSignature,
		Date:             signature.Date.Format("2006-01-02"),
	}
}

// SignaturesToResponses converts a slice of Signature entities to DTOs
func SignaturesToResponses(signatures []entity.Signature) []dto.SignatureResponse {
	responses := make([]dto.SignatureResponse, len(signatures))
	for i, signature := range signatures {
		responses[i] = *SignatureToResponse(&signature)
	}
	return responses
}
