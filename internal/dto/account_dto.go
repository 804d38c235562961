package dto

// AccountListRequest defines filters for listing accounts.
type AccountListRequest struct {
	Page     int
	PageSize int
	Role     string
	Status   string
	Search   string
}

// AccountListResponse wraps a paginated account response.
type AccountListResponse struct {
	Items      []AccountResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// ProfileUpdateRequest captures partial profile updates.
type ProfileUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=255"`
}

// SwitchModeRequest switches a student's active marketplace mode.
type SwitchModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=freelancer recruiter"`
}

// InviteStudentRequest creates a pending student account inside the
// inviting authority's campus.
type InviteStudentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Modes    string `json:"modes" validate:"omitempty,oneof=freelancer recruiter both"`
}

// StudentUpdateRequest captures partial updates by a campus authority.
type StudentUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=255"`
	Modes *string `json:"modes" validate:"omitempty,oneof=freelancer recruiter both"`
}
