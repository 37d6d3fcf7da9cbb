package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCaptureLead = "CAPTURE_LEAD"
	ActionRunNewsSync = "RUN_NEWS_SYNC"
	ActionLogin       = "LOGIN"
)

// AuditLog tracks Who, What, and When for system changes. UserID is null
// for unauthenticated actions (lead capture, scheduled jobs).
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
