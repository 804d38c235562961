package models

import "time"

// Report types.
const (
	ReportTypeGig    = "gig"
	ReportTypeUser   = "user"
	ReportTypeReview = "review"
)

// Report severities.
const (
	ReportSeverityHigh   = "high"
	ReportSeverityMedium = "medium"
	ReportSeverityLow    = "low"
)

// Report triage statuses. Resolved and dismissed are terminal.
const (
	ReportStatusPending       = "pending"
	ReportStatusInvestigating = "investigating"
	ReportStatusResolved      = "resolved"
	ReportStatusDismissed     = "dismissed"
)

// Report is a moderation ticket filed against a gig, user or review.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Type       string    `gorm:"size:32;not null" json:"type"`
	Severity   string    `gorm:"size:32;not null;default:medium" json:"severity"`
	Status     string    `gorm:"size:32;not null;default:pending;index" json:"status"`
	Subject    string    `gorm:"size:255;not null" json:"subject"`
	Details    string    `gorm:"size:4000" json:"details"`
	ReporterID uint      `gorm:"not null" json:"reporter_id"`
	Campus     string    `gorm:"size:255;index" json:"campus"`
	AdminNotes string    `gorm:"size:2000" json:"admin_notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReportStatusTerminal reports whether a triage status accepts no further
// transitions.
func ReportStatusTerminal(status string) bool {
	return status == ReportStatusResolved || status == ReportStatusDismissed
}
