package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

// ProviderToResponse converts a Provider entity to its DTO
func ProviderToResponse(provider *entity.Provider) *dto.ProviderResponse {
	if provider == nil {
		return nil
	}

	return &dto.ProviderResponse{
		ID:          provider.ID,
		FirstName:   provider.FirstName,
		LastName:    provider.LastName,
		PhoneNumber: provider.PhoneNumber,
		Email:       provider.Email,
	}
}
