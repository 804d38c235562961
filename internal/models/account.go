package models

import "time"

// Account roles.
const (
	RoleAdmin           = "admin"
	RoleCampusAuthority = "campus-authority"
	RoleStudent         = "student"
)

// Admission statuses an account moves through.
const (
	AccountStatusPending   = "pending"
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusRejected  = "rejected"
)

// Student marketplace modes.
const (
	ModeFreelancer = "freelancer"
	ModeRecruiter  = "recruiter"
	ModeBoth       = "both"
)

// Account is an identity that can authenticate against the API.
// Email is stored lowercase so the unique index is case-insensitive.
// Campus is empty for admins; students and campus authorities always
// carry the name of the campus partition they belong to.
type Account struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"size:255;not null" json:"-"`
	Role            string    `gorm:"size:32;not null;index" json:"role"`
	Status          string    `gorm:"size:32;not null;default:pending;index" json:"status"`
	Verified        bool      `gorm:"not null;default:false" json:"verified"`
	Campus          string    `gorm:"size:255;index" json:"campus"`
	RegisteredModes string    `gorm:"size:32" json:"registered_modes"`
	ActiveMode      string    `gorm:"size:32" json:"active_mode"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ModeAllowed reports whether a student may switch to the given active mode.
func ModeAllowed(registered, active string) bool {
	switch active {
	case ModeFreelancer:
		return registered == ModeFreelancer || registered == ModeBoth
	case ModeRecruiter:
		return registered == ModeRecruiter || registered == ModeBoth
	default:
		return false
	}
}
