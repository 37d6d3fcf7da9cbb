package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one entry of the fixed expense enumeration. Rate is
// the embedded IVA percentage recoverable when the category is creditable.
type ExpenseCategory struct {
	Code       string
	Name       string
	Creditable bool
	Rate       decimal.Decimal
	Condition  string
}

// ExpenseCategories is the fixed catalog offered by the credit simulator.
// Payroll generates no credit; health plans carry a 60%-reduced rate.
var ExpenseCategories = []ExpenseCategory{
	{Code: "FOLHA", Name: "Folha de pagamento", Creditable: false},
	{Code: "ALUGUEL", Name: "Aluguel", Creditable: true, Rate: DefaultTotalRate},
	{Code: "ENERGIA", Name: "Energia elétrica", Creditable: true, Rate: DefaultTotalRate},
	{Code: "TELECOM", Name: "Internet e telefonia", Creditable: true, Rate: DefaultTotalRate},
	{Code: "MATERIAL", Name: "Material de escritório", Creditable: true, Rate: DefaultTotalRate},
	{Code: "SOFTWARE", Name: "Softwares e licenças", Creditable: true, Rate: DefaultTotalRate},
	{Code: "MANUTENCAO", Name: "Manutenção", Creditable: true, Rate: DefaultTotalRate},
	{Code: "LIMPEZA", Name: "Limpeza e conservação", Creditable: true, Rate: DefaultTotalRate},
	{Code: "MARKETING", Name: "Marketing", Creditable: true, Rate: DefaultTotalRate},
	{Code: "CAPACITACAO", Name: "Capacitação", Creditable: true, Rate: DefaultTotalRate},
	{Code: "VT", Name: "Vale transporte", Creditable: true, Rate: DefaultTotalRate, Condition: "Acordo coletivo"},
	{Code: "VR", Name: "Vale refeição", Creditable: true, Rate: DefaultTotalRate, Condition: "Acordo coletivo"},
	{Code: "PLANO_SAUDE", Name: "Plano de saúde", Creditable: true, Rate: decimal.RequireFromString("10.6")},
	{Code: "TERCEIRIZADOS", Name: "Serviços terceirizados", Creditable: true, Rate: DefaultTotalRate},
}

// CategoryByCode looks a category up in the fixed catalog.
func CategoryByCode(code string) (ExpenseCategory, bool) {
	for _, c := range ExpenseCategories {
		if c.Code == code {
			return c, true
		}
	}
	return ExpenseCategory{}, false
}

// LineItem is one user-entered expense with its derived fields. Gross is
// tax-inclusive; Net and Credit are derived from the category.
type LineItem struct {
	Category    string
	Description string
	Gross       decimal.Decimal
	Net         decimal.Decimal
	Credit      decimal.Decimal
}

// DeriveLineItem builds a line item from a category code and a gross
// amount. Creditable categories split the gross into net = gross/(1+rate)
// and credit = gross - net; non-creditable categories pass the gross
// through with zero credit.
func DeriveLineItem(categoryCode, description string, gross decimal.Decimal) (LineItem, error) {
	cat, ok := CategoryByCode(categoryCode)
	if !ok {
		return LineItem{}, fmt.Errorf("unknown expense category %q", categoryCode)
	}
	if gross.IsNegative() {
		return LineItem{}, fmt.Errorf("gross amount must not be negative")
	}

	item := LineItem{Category: cat.Code, Description: description, Gross: gross}
	if cat.Creditable {
		item.Net = gross.Div(decimal.NewFromInt(1).Add(cat.Rate.Div(hundred)))
		item.Credit = gross.Sub(item.Net)
	} else {
		item.Net = gross
		item.Credit = decimal.Zero
	}
	return item, nil
}

// Aggregate sums gross and credit over independent line items.
func Aggregate(items []LineItem) (totalGross, totalCredit decimal.Decimal) {
	totalGross, totalCredit = decimal.Zero, decimal.Zero
	for _, it := range items {
		totalGross = totalGross.Add(it.Gross)
		totalCredit = totalCredit.Add(it.Credit)
	}
	return totalGross, totalCredit
}

// CreditInput drives one credit simulation: monthly revenue, the sector
// rate-reduction tier (0, 30 or 60 percent), the presumed-profit base used
// by the legacy comparison and the expense ledger.
type CreditInput struct {
	Revenue       decimal.Decimal
	RateReduction decimal.Decimal
	Presumption   decimal.Decimal
	Items         []LineItem
}

// CreditResult is the outcome of one credit simulation.
type CreditResult struct {
	TotalExpenses    decimal.Decimal
	TotalCredits     decimal.Decimal
	IVADebit         decimal.Decimal
	AmountDue        decimal.Decimal
	EffectiveRatePct decimal.Decimal
	ReductionPct     decimal.Decimal

	// Legacy presumed-profit comparison
	LegacyPISCOFINS decimal.Decimal
	LegacyISS       decimal.Decimal
	LegacyIRPJCSLL  decimal.Decimal
	LegacyTotal     decimal.Decimal
	Increase        decimal.Decimal
	IncreasePct     decimal.Decimal
}

var (
	ratePISCOFINSCumulative = decimal.RequireFromString("0.0365") // 0.65% + 3%
	rateIRPJCSLL            = decimal.RequireFromString("0.24")   // 15% IRPJ + 9% CSLL
)

// SimulateCredits computes the reform IVA debit at the (possibly reduced)
// split rates, offsets the ledger's credits clamping the amount due at
// zero, and compares against the legacy presumed-profit load.
func SimulateCredits(in CreditInput) (*CreditResult, error) {
	if in.Revenue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("revenue must be greater than 0")
	}

	reduction := decimal.NewFromInt(1).Sub(in.RateReduction.Div(hundred))
	totalRate := DefaultIBSRate.Mul(reduction).Add(DefaultCBSRate.Mul(reduction))

	debit := in.Revenue.Mul(totalRate.Div(hundred))
	totalExpenses, totalCredits := Aggregate(in.Items)
	due := floorZero(debit.Sub(totalCredits))

	reductionPct := decimal.Zero
	if debit.IsPositive() {
		reductionPct = debit.Sub(due).Div(debit).Mul(hundred)
	}

	presumption := in.Presumption
	if presumption.IsZero() {
		presumption = presumedProfitBase.Mul(hundred)
	}

	pisCofins := in.Revenue.Mul(ratePISCOFINSCumulative)
	iss := decimal.Zero
	irpjCsll := in.Revenue.Mul(presumption.Div(hundred)).Mul(rateIRPJCSLL)
	legacyTotal := pisCofins.Add(iss).Add(irpjCsll)

	increase := due.Sub(legacyTotal)
	increasePct := decimal.Zero
	if legacyTotal.IsPositive() {
		increasePct = increase.Div(legacyTotal).Mul(hundred)
	}

	return &CreditResult{
		TotalExpenses:    totalExpenses,
		TotalCredits:     totalCredits,
		IVADebit:         debit,
		AmountDue:        due,
		EffectiveRatePct: due.Div(in.Revenue).Mul(hundred),
		ReductionPct:     reductionPct,
		LegacyPISCOFINS:  pisCofins,
		LegacyISS:        iss,
		LegacyIRPJCSLL:   irpjCsll,
		LegacyTotal:      legacyTotal,
		Increase:         increase,
		IncreasePct:      increasePct,
	}, nil
}
