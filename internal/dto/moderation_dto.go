package dto

import (
	"time"

	"github.com/campusgig/campusgig-api/internal/models"
)

// FileReportRequest captures a moderation report payload.
type FileReportRequest struct {
	Type     string `json:"type" validate:"required,oneof=gig user review"`
	Severity string `json:"severity" validate:"omitempty,oneof=high medium low"`
	Subject  string `json:"subject" validate:"required,min=2,max=255"`
	Details  string `json:"details" validate:"omitempty,max=4000"`
}

// ReportListRequest defines filters for listing reports.
type ReportListRequest struct {
	Page     int
	PageSize int
	Status   string
	Type     string
	Severity string
}

// ReportReview carries admin notes for a triage transition.
type ReportReview struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

// ReportResponse projects a report for API output.
type ReportResponse struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	Severity   string    `json:"severity"`
	Status     string    `json:"status"`
	Subject    string    `json:"subject"`
	Details    string    `json:"details,omitempty"`
	ReporterID uint      `json:"reporter_id"`
	Campus     string    `json:"campus,omitempty"`
	AdminNotes string    `json:"admin_notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReportListResponse wraps a paginated report response.
type ReportListResponse struct {
	Items      []ReportResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// NewReportResponse converts a report model into a DTO.
func NewReportResponse(report models.Report) ReportResponse {
	return ReportResponse{
		ID:         report.ID,
		Type:       report.Type,
		Severity:   report.Severity,
		Status:     report.Status,
		Subject:    report.Subject,
		Details:    report.Details,
		ReporterID: report.ReporterID,
		Campus:     report.Campus,
		AdminNotes: report.AdminNotes,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}
}

// BanRequest resolves its target by case-insensitive email or name.
type BanRequest struct {
	Target string `json:"target" validate:"required,min=2,max=255"`
	Reason string `json:"reason" validate:"required,min=2,max=2000"`
}

// WarnRequest sends a warning without mutating any account state.
type WarnRequest struct {
	Target   string `json:"target" validate:"required,min=2,max=255"`
	Message  string `json:"message" validate:"required,min=2,max=2000"`
	Severity string `json:"severity" validate:"omitempty,oneof=high medium low"`
}

// MessageRequest records a communicative notice against a user.
type MessageRequest struct {
	Target  string `json:"target" validate:"required,min=2,max=255"`
	Message string `json:"message" validate:"required,min=2,max=2000"`
}

// ActionLogListRequest defines filters for listing audit entries.
type ActionLogListRequest struct {
	Page     int
	PageSize int
	Type     string
	ActorID  uint
}

// ActionLogResponse projects an audit entry for API output.
type ActionLogResponse struct {
	ID        uint                   `json:"id"`
	ActorID   uint                   `json:"actor_id"`
	ActorRole string                 `json:"actor_role"`
	Type      string                 `json:"type"`
	Action    string                 `json:"action"`
	Target    string                 `json:"target,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// ActionLogListResponse wraps a paginated audit response.
type ActionLogListResponse struct {
	Items      []ActionLogResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// NewActionLogResponse converts an audit entry model into a DTO.
func NewActionLogResponse(entry models.ActionLog) ActionLogResponse {
	return ActionLogResponse{
		ID:        entry.ID,
		ActorID:   entry.ActorID,
		ActorRole: entry.ActorRole,
		Type:      entry.Type,
		Action:    entry.Action,
		Target:    entry.Target,
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt,
	}
}
