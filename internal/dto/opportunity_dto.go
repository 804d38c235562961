package dto

import (
	"time"

	"github.com/campusgig/campusgig-api/internal/models"
)

// OpportunityCreateRequest captures a posting payload. The campus is never
// part of the payload: it always comes from the actor's identity.
type OpportunityCreateRequest struct {
	Company     string `json:"company" validate:"required,min=2,max=255"`
	Title       string `json:"title" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty,max=4000"`
	Type        string `json:"type" validate:"omitempty,oneof=Internship Full-time Contract Part-time"`
	Status      string `json:"status" validate:"omitempty,oneof=active closed draft"`
	Location    string `json:"location" validate:"omitempty,max=255"`
	Stipend     string `json:"stipend" validate:"omitempty,max=64"`
}

// OpportunityUpdateRequest captures partial opportunity updates.
type OpportunityUpdateRequest struct {
	Company     *string `json:"company" validate:"omitempty,min=2,max=255"`
	Title       *string `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
	Type        *string `json:"type" validate:"omitempty,oneof=Internship Full-time Contract Part-time"`
	Status      *string `json:"status" validate:"omitempty,oneof=active closed draft"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
	Stipend     *string `json:"stipend" validate:"omitempty,max=64"`
}

// OpportunityListRequest defines filters for listing opportunities.
type OpportunityListRequest struct {
	Page     int
	PageSize int
	Status   string
	Type     string
	Search   string
}

// OpportunityResponse projects an opportunity for API output.
type OpportunityResponse struct {
	ID          uint      `json:"id"`
	Campus      string    `json:"campus"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Stipend     string    `json:"stipend,omitempty"`
	PostedBy    uint      `json:"posted_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OpportunityListResponse wraps a paginated opportunity response.
type OpportunityListResponse struct {
	Items      []OpportunityResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// NewOpportunityResponse converts an opportunity model into a DTO.
func NewOpportunityResponse(opportunity models.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:          opportunity.ID,
		Campus:      opportunity.Campus,
		Company:     opportunity.Company,
		Title:       opportunity.Title,
		Description: opportunity.Description,
		Type:        opportunity.Type,
		Status:      opportunity.Status,
		Location:    opportunity.Location,
		Stipend:     opportunity.Stipend,
		PostedBy:    opportunity.PostedBy,
		CreatedAt:   opportunity.CreatedAt,
		UpdatedAt:   opportunity.UpdatedAt,
	}
}

// ApplyRequest captures a student's bid against an opportunity.
type ApplyRequest struct {
	CoverNote    string `json:"cover_note" validate:"omitempty,max=2000"`
	ExpectedRate string `json:"expected_rate" validate:"omitempty,max=64"`
}

// ApplicationStatusRequest moves an application through the pipeline.
type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shortlisted accepted rejected"`
}

// ApplicationResponse projects an application for API output.
type ApplicationResponse struct {
	ID            uint      `json:"id"`
	OpportunityID uint      `json:"opportunity_id"`
	StudentID     uint      `json:"student_id"`
	Status        string    `json:"status"`
	CoverNote     string    `json:"cover_note,omitempty"`
	ExpectedRate  string    `json:"expected_rate,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewApplicationResponse converts an application model into a DTO.
func NewApplicationResponse(application models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            application.ID,
		OpportunityID: application.OpportunityID,
		StudentID:     application.StudentID,
		Status:        application.Status,
		CoverNote:     application.CoverNote,
		ExpectedRate:  application.ExpectedRate,
		CreatedAt:     application.CreatedAt,
		UpdatedAt:     application.UpdatedAt,
	}
}
