package dto

import (
	"time"

	"github.com/campusgig/campusgig-api/internal/models"
)

// RegisterRequest captures a public registration payload. Campus is
// required for every role except admin; Modes applies to students only.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=campus-authority student"`
	Campus   string `json:"campus" validate:"required,min=2,max=255"`
	Modes    string `json:"modes" validate:"omitempty,oneof=freelancer recruiter both"`
}

// LoginRequest captures a login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the authenticated profile.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

// ChangePasswordRequest rotates the caller's credential.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AccountResponse projects an account for API output. The password hash
// never leaves the model layer.
type AccountResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	Verified        bool      `json:"verified"`
	Campus          string    `json:"campus,omitempty"`
	RegisteredModes string    `json:"registered_modes,omitempty"`
	ActiveMode      string    `json:"active_mode,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewAccountResponse converts an account model into a DTO.
func NewAccountResponse(account models.Account) AccountResponse {
	return AccountResponse{
		ID:              account.ID,
		Name:            account.Name,
		Email:           account.Email,
		Role:            account.Role,
		Status:          account.Status,
		Verified:        account.Verified,
		Campus:          account.Campus,
		RegisteredModes: account.RegisteredModes,
		ActiveMode:      account.ActiveMode,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}
