package tax

import "github.com/shopspring/decimal"

// TransitionWeights is one row of the legislated 2026-2033 blend table.
// CBS/IBS are the reform rates charged that year; PISCOFINS/ICMSISS are the
// percentage of the legacy levies still retained.
type TransitionWeights struct {
	Year      int
	CBS       decimal.Decimal
	IBS       decimal.Decimal
	PISCOFINS decimal.Decimal
	ICMSISS   decimal.Decimal
}

// transitionTable is a literal mapping from LC 214/2025. Values are
// policy-legislated constants; intermediate years must not be derived by
// interpolation.
var transitionTable = []TransitionWeights{
	{Year: 2026, CBS: dec("0.9"), IBS: dec("0.1"), PISCOFINS: dec("100"), ICMSISS: dec("100")},
	{Year: 2027, CBS: dec("0.9"), IBS: dec("0.1"), PISCOFINS: dec("100"), ICMSISS: dec("100")},
	{Year: 2028, CBS: dec("0.9"), IBS: dec("0.1"), PISCOFINS: dec("100"), ICMSISS: dec("100")},
	{Year: 2029, CBS: dec("8.8"), IBS: dec("1.77"), PISCOFINS: dec("90"), ICMSISS: dec("90")},
	{Year: 2030, CBS: dec("8.8"), IBS: dec("3.54"), PISCOFINS: dec("80"), ICMSISS: dec("80")},
	{Year: 2031, CBS: dec("8.8"), IBS: dec("7.08"), PISCOFINS: dec("60"), ICMSISS: dec("60")},
	{Year: 2032, CBS: dec("8.8"), IBS: dec("12.39"), PISCOFINS: dec("30"), ICMSISS: dec("30")},
	{Year: 2033, CBS: dec("8.8"), IBS: dec("17.7"), PISCOFINS: dec("0"), ICMSISS: dec("0")},
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// TransitionYear is one year of the blended schedule. Total always includes
// the presumed-profit IRPJ/CSLL regardless of the selected regime, matching
// the reference implementation.
type TransitionYear struct {
	Year      int
	CBS       decimal.Decimal
	IBS       decimal.Decimal
	PISCOFINS decimal.Decimal
	ICMSISS   decimal.Decimal
	Total     decimal.Decimal
}

// TransitionSchedule applies the blend table to the monthly revenue and the
// already-computed legacy breakdown, yielding one row per year 2026-2033.
func TransitionSchedule(revenue decimal.Decimal, legacy LegacyBreakdown) []TransitionYear {
	schedule := make([]TransitionYear, 0, len(transitionTable))
	for _, w := range transitionTable {
		cbs := revenue.Mul(w.CBS.Div(hundred))
		ibs := revenue.Mul(w.IBS.Div(hundred))
		pisCofins := legacy.PIS.Add(legacy.COFINS).Mul(w.PISCOFINS.Div(hundred))
		icmsIss := legacy.ISS.Mul(w.ICMSISS.Div(hundred))

		schedule = append(schedule, TransitionYear{
			Year:      w.Year,
			CBS:       cbs,
			IBS:       ibs,
			PISCOFINS: pisCofins,
			ICMSISS:   icmsIss,
			Total:     cbs.Add(ibs).Add(pisCofins).Add(icmsIss).Add(legacy.IRPJ).Add(legacy.CSLL),
		})
	}
	return schedule
}
