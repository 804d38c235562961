package dto

import (
	"time"

	"github.com/campusgig/campusgig-api/internal/models"
)

// CampusCreateRequest captures an admin campus creation payload.
type CampusCreateRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Domain     string `json:"domain" validate:"omitempty,max=255"`
	AdminEmail string `json:"admin_email" validate:"omitempty,email"`
}

// CampusUpdateRequest captures partial campus updates.
type CampusUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=255"`
	Domain     *string `json:"domain" validate:"omitempty,max=255"`
	AdminEmail *string `json:"admin_email" validate:"omitempty,email"`
	Status     *string `json:"status" validate:"omitempty,oneof=pending active inactive"`
}

// CampusResponse projects a campus for API output.
type CampusResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Domain     string    `json:"domain"`
	AdminEmail string    `json:"admin_email"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCampusResponse converts a campus model into a DTO.
func NewCampusResponse(campus models.Campus) CampusResponse {
	return CampusResponse{
		ID:         campus.ID,
		Name:       campus.Name,
		Domain:     campus.Domain,
		AdminEmail: campus.AdminEmail,
		Status:     campus.Status,
		CreatedAt:  campus.CreatedAt,
		UpdatedAt:  campus.UpdatedAt,
	}
}

// CampusRequestSubmission captures the public campus join request payload.
type CampusRequestSubmission struct {
	CampusName   string `json:"campus_name" validate:"required,min=2,max=255"`
	Domain       string `json:"domain" validate:"omitempty,max=255"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Note         string `json:"note" validate:"omitempty,max=2000"`
}

// CampusRequestReview carries the admin note for approve/reject.
type CampusRequestReview struct {
	AdminNote string `json:"admin_note" validate:"omitempty,max=2000"`
}

// CampusRequestResponse projects a campus request for API output.
type CampusRequestResponse struct {
	ID           uint      `json:"id"`
	CampusName   string    `json:"campus_name"`
	Domain       string    `json:"domain"`
	ContactEmail string    `json:"contact_email"`
	Note         string    `json:"note"`
	Status       string    `json:"status"`
	AdminNote    string    `json:"admin_note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCampusRequestResponse converts a campus request model into a DTO.
func NewCampusRequestResponse(request models.CampusRequest) CampusRequestResponse {
	return CampusRequestResponse{
		ID:           request.ID,
		CampusName:   request.CampusName,
		Domain:       request.Domain,
		ContactEmail: request.ContactEmail,
		Note:         request.Note,
		Status:       request.Status,
		AdminNote:    request.AdminNote,
		CreatedAt:    request.CreatedAt,
	}
}
