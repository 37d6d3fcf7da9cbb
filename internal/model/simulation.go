package model

import (
	"time"

	"github.com/google/uuid"
)

// Simulation kinds
const (
	SimulationKindImpact  = "impact"
	SimulationKindCredits = "credits"
)

// Simulation is a fire-and-forget snapshot of one calculator run, kept for
// the advisory team's follow-up. Input and Result are serialized JSON.
type Simulation struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LeadID *uuid.UUID `gorm:"type:uuid;index" json:"lead_id"`
	Kind   string     `gorm:"type:varchar(20);not null;index" json:"kind"`
	Input  string     `gorm:"type:jsonb" json:"input"`
	Result string     `gorm:"type:jsonb" json:"result"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
