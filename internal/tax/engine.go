package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Classification buckets for the reform impact. Wire values match the ones
// the frontend renders.
const (
	ClassMuchFavorable   = "muito_favoravel"
	ClassFavorable       = "favoravel"
	ClassNeutral         = "neutro"
	ClassUnfavorable     = "desfavoravel"
	ClassMuchUnfavorable = "muito_desfavoravel"
)

// Legacy-regime rates. Presumed profit: PIS 0.65%, COFINS 3%, IRPJ 15% and
// CSLL 9% over a 32% presumed-profit base. Real profit: PIS 1.65%, COFINS
// 7.6%, with a 9.25% input credit over costs split 17.8/82.2 between them.
var (
	ratePISPresumido    = decimal.RequireFromString("0.0065")
	rateCOFINSPresumido = decimal.RequireFromString("0.03")
	ratePISReal         = decimal.RequireFromString("0.0165")
	rateCOFINSReal      = decimal.RequireFromString("0.076")
	ratePISCOFINSCredit = decimal.RequireFromString("0.0925")
	creditSharePIS      = decimal.RequireFromString("0.178")
	creditShareCOFINS   = decimal.RequireFromString("0.822")
	presumedProfitBase  = decimal.RequireFromString("0.32")
	rateIRPJ            = decimal.RequireFromString("0.15")
	rateCSLL            = decimal.RequireFromString("0.09")

	// Share of the embedded tax on costs effectively recoverable as credit.
	creditRecognition = decimal.RequireFromString("0.8")

	hundred = decimal.NewFromInt(100)
)

// Input is one impact computation request. Revenue must be strictly
// positive; Costs defaults to zero; Rates come from an activity rule or
// DefaultRates().
type Input struct {
	Revenue decimal.Decimal
	Costs   decimal.Decimal
	Regime  string
	Rates   RateSet
}

// LegacyBreakdown holds the current-system monthly liability.
type LegacyBreakdown struct {
	PIS     decimal.Decimal
	COFINS  decimal.Decimal
	IRPJ    decimal.Decimal
	CSLL    decimal.Decimal
	ISS     decimal.Decimal
	Total   decimal.Decimal
	LoadPct decimal.Decimal
}

// ReformBreakdown holds the reform-system monthly liability. Total is the
// raw levies-minus-credit figure and may be negative when credits exceed
// the debit; callers that surface an amount "to pay" must clamp it.
type ReformBreakdown struct {
	CBS       decimal.Decimal
	IBS       decimal.Decimal
	Selective decimal.Decimal
	Credits   decimal.Decimal
	Total     decimal.Decimal
	LoadPct   decimal.Decimal
}

// Result is the immutable snapshot of one computation.
type Result struct {
	Legacy         LegacyBreakdown
	Reform         ReformBreakdown
	Difference     decimal.Decimal
	VariationPct   decimal.Decimal
	Classification string
	Transition     []TransitionYear
}

// Compute runs the full impact calculation: legacy liability under the
// selected regime, reform liability with credit offset, classification and
// the 2026-2033 transition schedule. Pure; no rounding is applied here.
func Compute(in Input) (*Result, error) {
	if in.Revenue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("revenue must be greater than 0")
	}
	if in.Costs.IsNegative() {
		return nil, fmt.Errorf("costs must not be negative")
	}
	if !ValidRegime(in.Regime) {
		return nil, fmt.Errorf("unknown regime %q", in.Regime)
	}

	legacy := computeLegacy(in)
	reform := computeReform(in)

	difference := reform.Total.Sub(legacy.Total)
	variation := difference.Div(legacy.Total).Mul(hundred)

	return &Result{
		Legacy:         legacy,
		Reform:         reform,
		Difference:     difference,
		VariationPct:   variation,
		Classification: Classify(variation),
		Transition:     TransitionSchedule(in.Revenue, legacy),
	}, nil
}

func computeLegacy(in Input) LegacyBreakdown {
	// Simples Nacional has no dedicated branch and is computed as presumed
	// profit, same as the reference engine.
	pis := in.Revenue.Mul(ratePISPresumido)
	cofins := in.Revenue.Mul(rateCOFINSPresumido)
	irpj := in.Revenue.Mul(presumedProfitBase).Mul(rateIRPJ)
	csll := in.Revenue.Mul(presumedProfitBase).Mul(rateCSLL)
	iss := decimal.Zero // service tax placeholder, not modeled

	if in.Regime == RegimeReal {
		pis = in.Revenue.Mul(ratePISReal)
		cofins = in.Revenue.Mul(rateCOFINSReal)
		credit := in.Costs.Mul(ratePISCOFINSCredit)
		pis = floorZero(pis.Sub(credit.Mul(creditSharePIS)))
		cofins = floorZero(cofins.Sub(credit.Mul(creditShareCOFINS)))
	}

	total := pis.Add(cofins).Add(irpj).Add(csll).Add(iss)
	return LegacyBreakdown{
		PIS:     pis,
		COFINS:  cofins,
		IRPJ:    irpj,
		CSLL:    csll,
		ISS:     iss,
		Total:   total,
		LoadPct: total.Div(in.Revenue).Mul(hundred),
	}
}

func computeReform(in Input) ReformBreakdown {
	credits := decimal.Zero
	if in.Rates.FullCredit {
		credits = in.Costs.Mul(in.Rates.Total.Div(hundred)).Mul(creditRecognition)
	}

	cbs := in.Revenue.Mul(in.Rates.CBS.Div(hundred))
	ibs := in.Revenue.Mul(in.Rates.IBS.Div(hundred))
	selective := decimal.Zero // imposto seletivo, only for specific goods

	total := cbs.Add(ibs).Add(selective).Sub(credits)
	return ReformBreakdown{
		CBS:       cbs,
		IBS:       ibs,
		Selective: selective,
		Credits:   credits,
		Total:     total,
		LoadPct:   total.Div(in.Revenue).Mul(hundred),
	}
}

// Classify maps a variation percentage onto the five impact buckets. The
// lower boundary of each bucket is exclusive: exactly -15 is "favoravel",
// exactly -5 and +5 are "neutro", exactly +15 is "desfavoravel".
func Classify(variationPct decimal.Decimal) string {
	switch {
	case variationPct.LessThan(decimal.NewFromInt(-15)):
		return ClassMuchFavorable
	case variationPct.LessThan(decimal.NewFromInt(-5)):
		return ClassFavorable
	case variationPct.LessThanOrEqual(decimal.NewFromInt(5)):
		return ClassNeutral
	case variationPct.LessThanOrEqual(decimal.NewFromInt(15)):
		return ClassUnfavorable
	default:
		return ClassMuchUnfavorable
	}
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
