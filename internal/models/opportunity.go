package models

import "time"

// Opportunity statuses.
const (
	OpportunityStatusActive = "active"
	OpportunityStatusClosed = "closed"
	OpportunityStatusDraft  = "draft"
)

// Opportunity types.
const (
	OpportunityTypeInternship = "Internship"
	OpportunityTypeFullTime   = "Full-time"
	OpportunityTypeContract   = "Contract"
	OpportunityTypePartTime   = "Part-time"
)

// Application pipeline stages.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
)

// Opportunity is a posting owned by exactly one campus partition. Any
// campus authority within that partition may mutate it.
type Opportunity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Campus      string    `gorm:"size:255;not null;index" json:"campus"`
	Company     string    `gorm:"size:255;not null" json:"company"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:4000" json:"description"`
	Type        string    `gorm:"size:32;not null;default:Internship" json:"type"`
	Status      string    `gorm:"size:32;not null;default:active;index" json:"status"`
	Location    string    `gorm:"size:255" json:"location"`
	Stipend     string    `gorm:"size:64" json:"stipend"`
	PostedBy    uint      `gorm:"not null" json:"posted_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Application is a student's bid against one opportunity. The composite
// unique index enforces at most one application per (opportunity, student)
// pair at the store, so concurrent applies cannot both succeed.
type Application struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OpportunityID uint      `gorm:"not null;uniqueIndex:idx_app_opportunity_student" json:"opportunity_id"`
	StudentID     uint      `gorm:"not null;uniqueIndex:idx_app_opportunity_student" json:"student_id"`
	Status        string    `gorm:"size:32;not null;default:pending;index" json:"status"`
	CoverNote     string    `gorm:"size:2000" json:"cover_note"`
	ExpectedRate  string    `gorm:"size:64" json:"expected_rate"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
