package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputePresumidoZeroCosts(t *testing.T) {
	res, err := Compute(Input{
		Revenue: d("10000"),
		Costs:   decimal.Zero,
		Regime:  RegimePresumido,
		Rates:   DefaultRates(),
	})
	require.NoError(t, err)

	// Legacy: R x (0.0065 + 0.03 + 0.32x0.15 + 0.32x0.09)
	assert.True(t, res.Legacy.PIS.Equal(d("65")))
	assert.True(t, res.Legacy.COFINS.Equal(d("300")))
	assert.True(t, res.Legacy.IRPJ.Equal(d("480")))
	assert.True(t, res.Legacy.CSLL.Equal(d("288")))
	assert.True(t, res.Legacy.ISS.IsZero())
	assert.True(t, res.Legacy.Total.Equal(d("1133")))

	// Reform at default rates with zero costs: R x (0.088 + 0.177)
	assert.True(t, res.Reform.CBS.Equal(d("880")))
	assert.True(t, res.Reform.IBS.Equal(d("1770")))
	assert.True(t, res.Reform.Credits.IsZero())
	assert.True(t, res.Reform.Total.Equal(d("2650")))

	assert.True(t, res.Difference.Equal(d("1517")))
	assert.Equal(t, ClassMuchUnfavorable, res.Classification)
}

func TestComputeSimplesMatchesPresumido(t *testing.T) {
	in := Input{Revenue: d("25000"), Costs: d("4000"), Rates: DefaultRates()}

	in.Regime = RegimePresumido
	presumido, err := Compute(in)
	require.NoError(t, err)

	in.Regime = RegimeSimples
	simples, err := Compute(in)
	require.NoError(t, err)

	assert.True(t, simples.Legacy.Total.Equal(presumido.Legacy.Total))
	assert.True(t, simples.Reform.Total.Equal(presumido.Reform.Total))
}

func TestComputeRealProfitCredits(t *testing.T) {
	res, err := Compute(Input{
		Revenue: d("10000"),
		Costs:   d("2000"),
		Regime:  RegimeReal,
		Rates:   DefaultRates(),
	})
	require.NoError(t, err)

	// PIS 1.65% = 165 less 2000 x 0.0925 x 0.178 = 32.93
	assert.True(t, res.Legacy.PIS.Equal(d("132.07")))
	// COFINS 7.6% = 760 less 2000 x 0.0925 x 0.822 = 152.07
	assert.True(t, res.Legacy.COFINS.Equal(d("607.93")))
}

func TestComputeRealProfitFloorsLevyAtZero(t *testing.T) {
	res, err := Compute(Input{
		Revenue: d("1000"),
		Costs:   d("500000"),
		Regime:  RegimeReal,
		Rates:   DefaultRates(),
	})
	require.NoError(t, err)

	assert.True(t, res.Legacy.PIS.IsZero(), "PIS must not go negative")
	assert.True(t, res.Legacy.COFINS.IsZero(), "COFINS must not go negative")
	// IRPJ/CSLL remain on the presumed base even under lucro real.
	assert.True(t, res.Legacy.IRPJ.IsPositive())
	assert.True(t, res.Legacy.CSLL.IsPositive())
}

func TestReformTotalStrictlyDecreasesWithCosts(t *testing.T) {
	revenue := d("50000")
	prev := decimal.New(1<<30, 0)
	for _, costs := range []string{"0", "1000", "5000", "20000", "80000"} {
		res, err := Compute(Input{
			Revenue: revenue,
			Costs:   d(costs),
			Regime:  RegimePresumido,
			Rates:   DefaultRates(),
		})
		require.NoError(t, err)
		assert.True(t, res.Reform.Total.LessThan(prev),
			"reform total must strictly decrease as costs grow (costs=%s)", costs)
		prev = res.Reform.Total
	}
}

func TestComputeNoCreditWithoutFullCreditRule(t *testing.T) {
	rates := DefaultRates()
	rates.FullCredit = false
	res, err := Compute(Input{
		Revenue: d("10000"),
		Costs:   d("5000"),
		Regime:  RegimePresumido,
		Rates:   rates,
	})
	require.NoError(t, err)
	assert.True(t, res.Reform.Credits.IsZero())
	assert.True(t, res.Reform.Total.Equal(d("2650")))
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		variation string
		want      string
	}{
		{"-15.01", ClassMuchFavorable},
		{"-15", ClassFavorable}, // boundary belongs to the milder bucket
		{"-5.01", ClassFavorable},
		{"-5", ClassNeutral},
		{"0", ClassNeutral},
		{"5", ClassNeutral},
		{"5.01", ClassUnfavorable},
		{"15", ClassUnfavorable},
		{"15.01", ClassMuchUnfavorable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(d(tc.variation)), "variation %s", tc.variation)
	}
}

func TestTransitionScheduleShape(t *testing.T) {
	res, err := Compute(Input{
		Revenue: d("10000"),
		Regime:  RegimePresumido,
		Rates:   DefaultRates(),
	})
	require.NoError(t, err)

	require.Len(t, res.Transition, 8)
	assert.Equal(t, 2026, res.Transition[0].Year)
	assert.Equal(t, 2033, res.Transition[7].Year)

	// Test years keep the full legacy PIS/COFINS at token reform rates.
	first := res.Transition[0]
	assert.True(t, first.CBS.Equal(d("90")))
	assert.True(t, first.IBS.Equal(d("10")))
	assert.True(t, first.PISCOFINS.Equal(d("365")))
}

func TestTransition2033DropsRetainedLevies(t *testing.T) {
	res, err := Compute(Input{
		Revenue: d("10000"),
		Regime:  RegimePresumido,
		Rates:   DefaultRates(),
	})
	require.NoError(t, err)

	last := res.Transition[7]
	assert.True(t, last.PISCOFINS.IsZero())
	assert.True(t, last.ICMSISS.IsZero())
	// 2033 total = cbs(8.8%) + ibs(17.7%) + IRPJ + CSLL, independent of the
	// legacy PIS/COFINS magnitude.
	want := d("880").Add(d("1770")).Add(res.Legacy.IRPJ).Add(res.Legacy.CSLL)
	assert.True(t, last.Total.Equal(want), "2033 total = %s, want %s", last.Total, want)
}

func TestTransitionAlwaysAddsPresumedIRPJCSLL(t *testing.T) {
	// Even under lucro real the schedule carries presumed-basis IRPJ/CSLL in
	// every year. Pinned on purpose; see DESIGN.md.
	res, err := Compute(Input{
		Revenue: d("10000"),
		Costs:   d("100000"),
		Regime:  RegimeReal,
		Rates:   DefaultRates(),
	})
	require.NoError(t, err)

	for _, year := range res.Transition {
		floor := res.Legacy.IRPJ.Add(res.Legacy.CSLL)
		assert.True(t, year.Total.GreaterThanOrEqual(floor),
			"year %d total below the IRPJ/CSLL floor", year.Year)
	}
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	_, err := Compute(Input{Revenue: decimal.Zero, Regime: RegimePresumido, Rates: DefaultRates()})
	assert.Error(t, err, "zero revenue")

	_, err = Compute(Input{Revenue: d("-10"), Regime: RegimePresumido, Rates: DefaultRates()})
	assert.Error(t, err, "negative revenue")

	_, err = Compute(Input{Revenue: d("10"), Costs: d("-1"), Regime: RegimePresumido, Rates: DefaultRates()})
	assert.Error(t, err, "negative costs")

	_, err = Compute(Input{Revenue: d("10"), Regime: "mei", Rates: DefaultRates()})
	assert.Error(t, err, "unknown regime")
}
