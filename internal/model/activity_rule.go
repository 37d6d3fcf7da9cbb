package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivityRule tailors reform rates and credit eligibility to an economic
// activity (CNAE) code. Rows are maintained by the advisory team; this
// service only reads them. Rates are percentages (8.8 = 8.8%).
type ActivityRule struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CNAECode      string    `gorm:"column:cnae_code;type:varchar(10);not null;index" json:"cnae_code"`
	ActivityGroup string    `gorm:"type:varchar(100)" json:"activity_group"`
	ActivityName  string    `gorm:"type:varchar(255)" json:"activity_name"`

	ReformTreatment string          `gorm:"type:varchar(50)" json:"reform_treatment"` // padrao, reduzida_30, reduzida_60, ...
	TotalRate       decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"total_rate"`
	CBSRate         decimal.Decimal `gorm:"column:cbs_rate;type:decimal(10,4);not null" json:"cbs_rate"`
	IBSRate         decimal.Decimal `gorm:"column:ibs_rate;type:decimal(10,4);not null" json:"ibs_rate"`
	FullCredit      bool            `gorm:"default:true" json:"full_credit"`

	// Legacy-regime parameters used by the presumed-profit comparison
	PISCumulative       decimal.Decimal `gorm:"column:pis_cumulative;type:decimal(10,4)" json:"pis_cumulative"`
	COFINSCumulative    decimal.Decimal `gorm:"column:cofins_cumulative;type:decimal(10,4)" json:"cofins_cumulative"`
	PISNonCumulative    decimal.Decimal `gorm:"column:pis_non_cumulative;type:decimal(10,4)" json:"pis_non_cumulative"`
	COFINSNonCumulative decimal.Decimal `gorm:"column:cofins_non_cumulative;type:decimal(10,4)" json:"cofins_non_cumulative"`
	IRPJPresumption     decimal.Decimal `gorm:"column:irpj_presumption;type:decimal(10,4)" json:"irpj_presumption"`
	CSLLPresumption     decimal.Decimal `gorm:"column:csll_presumption;type:decimal(10,4)" json:"csll_presumption"`

	// Editorial content surfaced next to the calculator result
	SimpleExplanation string `gorm:"type:text" json:"simple_explanation"`
	ExpectedImpact    string `gorm:"type:varchar(50)" json:"expected_impact"`
	PracticalExamples string `gorm:"type:text" json:"practical_examples"`
	AttentionPoints   string `gorm:"type:jsonb" json:"attention_points"` // JSON array of strings

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
