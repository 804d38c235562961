package models

import "time"

// Campus statuses.
const (
	CampusStatusPending  = "pending"
	CampusStatusActive   = "active"
	CampusStatusInactive = "inactive"
)

// Campus request statuses. Approved and rejected are terminal.
const (
	CampusRequestPending  = "pending"
	CampusRequestApproved = "approved"
	CampusRequestRejected = "rejected"
)

// Campus is the partition key entity all scoped records reference by name.
// NameKey holds the lowercased name and carries the unique index so
// "MIT" and "mit" resolve to the same record while the display casing of
// the first registration is preserved in Name.
type Campus struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	NameKey    string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Domain     string    `gorm:"size:255" json:"domain"`
	AdminEmail string    `gorm:"size:255" json:"admin_email"`
	Status     string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CampusRequest is an unauthenticated proposal to create or activate a
// campus. Duplicates are allowed at submission time and collapsed at
// approval time.
type CampusRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CampusName   string    `gorm:"size:255;not null" json:"campus_name"`
	Domain       string    `gorm:"size:255" json:"domain"`
	ContactEmail string    `gorm:"size:255;not null" json:"contact_email"`
	Note         string    `gorm:"size:2000" json:"note"`
	Status       string    `gorm:"size:32;not null;default:pending;index" json:"status"`
	AdminNote    string    `gorm:"size:2000" json:"admin_note"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
