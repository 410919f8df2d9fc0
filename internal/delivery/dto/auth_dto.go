package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterPatientRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FirstName      string `json:"firstName" validate:"required,min=1,max=255"`
	LastName       string `json:"lastName" validate:"required,min=1,max=255"`
	Age            int    `json:"age" validate:"required,gte=0,lte=150"`
	MedicalHistory string `json:"medical_history" validate:"omitempty"`
	Address        string `json:"address" validate:"omitempty"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
}

type RegisterProviderRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"firstName" validate:"required,min=1,max=255"`
	LastName    string `json:"lastName" validate:"required,min=1,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterResponse carries the new account plus the issued token pair so a
// client is signed in immediately after registration.
type RegisterResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}
