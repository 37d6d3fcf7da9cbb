package tax

import "github.com/shopspring/decimal"

// Regime enum constants (legacy tax regimes selectable by the user)
const (
	RegimePresumido = "lucro_presumido"
	RegimeReal      = "lucro_real"
	RegimeSimples   = "simples_nacional"
)

// ValidRegime reports whether r is one of the selectable legacy regimes.
func ValidRegime(r string) bool {
	return r == RegimePresumido || r == RegimeReal || r == RegimeSimples
}

// RateSet holds the reform-regime split rates applied to revenue. Rates are
// percentages (8.8 means 8.8%).
type RateSet struct {
	CBS        decimal.Decimal
	IBS        decimal.Decimal
	Total      decimal.Decimal
	FullCredit bool
}

// Default reference rates (LC 214/2025) used when no activity-specific rule
// is found for the company's CNAE.
var (
	DefaultCBSRate   = decimal.RequireFromString("8.8")
	DefaultIBSRate   = decimal.RequireFromString("17.7")
	DefaultTotalRate = decimal.RequireFromString("26.5")
)

// DefaultRates returns the standard rate set with full input credit.
func DefaultRates() RateSet {
	return RateSet{
		CBS:        DefaultCBSRate,
		IBS:        DefaultIBSRate,
		Total:      DefaultTotalRate,
		FullCredit: true,
	}
}
