package model

import (
	"time"

	"github.com/google/uuid"
)

// Lead origin tags
const (
	LeadOriginLanding = "landing_page"
	LeadOriginContact = "landing_page_contato"
)

// Lead is one captured contact from the site's forms. TaxID holds a
// digits-only CNPJ when the visitor provides one.
type Lead struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name"`
	Email   string    `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone   string    `gorm:"type:varchar(30)" json:"phone"`
	Company string    `gorm:"type:varchar(255)" json:"company"`
	TaxID   string    `gorm:"column:tax_id;type:varchar(14)" json:"tax_id"`
	Origin  string    `gorm:"type:varchar(50);not null;index" json:"origin"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
