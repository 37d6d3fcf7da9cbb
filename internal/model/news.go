package model

import (
	"time"

	"github.com/google/uuid"
)

// News categories assigned by the summarizer
const (
	CategoryLegislation = "legislacao"
	CategoryRegulation  = "regulamentacao"
	CategorySchedule    = "cronograma"
	CategoryRates       = "aliquotas"
	CategorySector      = "setorial"
	CategoryTechnology  = "tecnologia"
	CategoryGuidance    = "orientacao"
	CategoryOpinion     = "opiniao"
)

// NewsItem is one ingested and AI-summarized article. SourceURL is the
// dedup key: the ingestion job upserts with ON CONFLICT DO NOTHING on it.
type NewsItem struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	OriginalTitle   string `gorm:"type:varchar(500);not null" json:"original_title"`
	OriginalSummary string `gorm:"type:text" json:"original_summary"`
	SourceURL       string `gorm:"column:source_url;type:varchar(1000);not null;uniqueIndex" json:"source_url"`
	Source          string `gorm:"type:varchar(100)" json:"source"`
	PublishedAt     string `gorm:"type:varchar(50)" json:"published_at"` // freeform date from the search API

	SimplifiedTitle   string `gorm:"type:varchar(255)" json:"simplified_title"`
	SimpleExplanation string `gorm:"type:text" json:"simple_explanation"`
	BusinessImpact    string `gorm:"type:text" json:"business_impact"`
	PracticalExamples string `gorm:"type:text" json:"practical_examples"`
	AttentionPoints   string `gorm:"type:jsonb" json:"attention_points"` // JSON array of strings
	Tags              string `gorm:"type:jsonb" json:"tags"`             // JSON array of strings

	Category  string `gorm:"type:varchar(30);index" json:"category"`
	Relevance int    `gorm:"default:5" json:"relevance"`
	Published bool   `gorm:"default:true;index" json:"published"`
	Featured  bool   `gorm:"default:false" json:"featured"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ingestion run statuses
const (
	RunStatusSuccess = "sucesso"
	RunStatusPartial = "parcial"
	RunStatusError   = "erro"
)

// IngestionRun is the audit row written after every news-sync execution.
// The write is best-effort: a failure here never fails the run itself.
type IngestionRun struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JobType      string    `gorm:"type:varchar(50);not null;index" json:"job_type"`
	Status       string    `gorm:"type:varchar(20);not null" json:"status"`
	ItemsFound   int       `json:"items_found"`
	ItemsSaved   int       `json:"items_saved"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	DurationMS   int64     `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
