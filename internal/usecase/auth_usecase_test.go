package usecase_test

import (
	"context"
	"testing"

	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
	"clinic-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPatient(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)

	result, err := auth.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:          "alice@example.com",
		Password:       "secret123",
		FirstName:      "Alice",
		LastName:       "Smith",
		Age:            29,
		MedicalHistory: "none",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, entity.RolePatient, result.User.Role)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// A patient profile row must exist alongside the user
	var patient entity.Patient
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&patient).Error)
	assert.Equal(t, "Alice", patient.FirstName)
	assert.Equal(t, 29, patient.Age)
}

func TestRegisterPatientDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)

	registerPatient(t, auth, "dup@example.com")

	_, err := auth.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:     "dup@example.com",
		Password:  "secret123",
		FirstName: "Other",
		LastName:  "Person",
		Age:       40,
	})
	assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

	// The failed registration must not leave a second user behind
	var count int64
	require.NoError(t, db.Model(&entity.User{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterProvider(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)

	result, err := auth.RegisterProvider(context.Background(), &dto.RegisterProviderRequest{
		Email:     "dr@example.com",
		Password:  "secret123",
		FirstName: "Dana",
		LastName:  "Reed",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProvider, result.User.Role)

	var provider entity.Provider
	require.NoError(t, db.Where("email = ?", "dr@example.com").First(&provider).Error)
	assert.Equal(t, "Dana", provider.FirstName)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	registerPatient(t, auth, "bob@example.com")

	tokens, err := auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)
	registerPatient(t, auth, "carol@example.com")

	tokens, err := auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	refreshed, err := auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The consumed refresh token must not work a second time
	_, err = auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, usecase.ErrTokenRevoked)

	_, err = auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not-a-token",
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestResolveIdentity(t *testing.T) {
	db := newTestDB(t)
	auth := newAuthUsecase(t, db)

	patient := registerPatient(t, auth, "pat@example.com")
	assert.True(t, patient.IsPatient())
	assert.False(t, patient.IsProvider())
	assert.False(t, patient.IsAdmin())
	assert.Equal(t, "pat@example.com", patient.Patient.Email)

	provider := registerProvider(t, auth, "doc@example.com")
	assert.True(t, provider.IsProvider())
	assert.False(t, provider.IsPatient())
}
