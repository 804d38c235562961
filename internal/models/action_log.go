package models

import (
	"time"

	"gorm.io/datatypes"
)

// Action log entry types.
const (
	ActionTypeBan     = "ban"
	ActionTypeDelete  = "delete"
	ActionTypeWarning = "warning"
	ActionTypeResolve = "resolve"
	ActionTypeRestore = "restore"
	ActionTypeVerify  = "verify"
	ActionTypeFlag    = "flag"
	ActionTypeConfig  = "config"
)

// ActionLog is the append-only audit record for admin overrides and
// moderation actions. The core never updates or deletes rows.
type ActionLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	ActorID   uint              `gorm:"not null;index" json:"actor_id"`
	ActorRole string            `gorm:"size:32;not null" json:"actor_role"`
	Type      string            `gorm:"size:32;not null;index" json:"type"`
	Action    string            `gorm:"size:255;not null" json:"action"`
	Target    string            `gorm:"size:255" json:"target"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
