package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveLineItemCreditable(t *testing.T) {
	item, err := DeriveLineItem("ALUGUEL", "sala comercial", d("12000"))
	require.NoError(t, err)

	// net = 12000 / 1.265, credit = gross - net
	assert.Equal(t, "9486.17", item.Net.StringFixed(2))
	assert.Equal(t, "2513.83", item.Credit.StringFixed(2))
	assert.True(t, item.Gross.Equal(item.Net.Add(item.Credit)))
}

func TestDeriveLineItemReducedRateCategory(t *testing.T) {
	item, err := DeriveLineItem("PLANO_SAUDE", "", d("1106"))
	require.NoError(t, err)

	// Health plans carry a 10.6% embedded rate: net = 1106 / 1.106 = 1000.
	assert.Equal(t, "1000.00", item.Net.StringFixed(2))
	assert.Equal(t, "106.00", item.Credit.StringFixed(2))
}

func TestDeriveLineItemNonCreditable(t *testing.T) {
	item, err := DeriveLineItem("FOLHA", "salários", d("50000"))
	require.NoError(t, err)

	assert.True(t, item.Net.Equal(d("50000")), "payroll net passes through")
	assert.True(t, item.Credit.IsZero())
}

func TestDeriveLineItemErrors(t *testing.T) {
	_, err := DeriveLineItem("COMBUSTIVEL", "", d("10"))
	assert.Error(t, err, "unknown category")

	_, err = DeriveLineItem("ALUGUEL", "", d("-1"))
	assert.Error(t, err, "negative gross")
}

func TestAggregate(t *testing.T) {
	rent, _ := DeriveLineItem("ALUGUEL", "", d("12650"))
	payroll, _ := DeriveLineItem("FOLHA", "", d("30000"))
	power, _ := DeriveLineItem("ENERGIA", "", d("1265"))

	gross, credit := Aggregate([]LineItem{rent, payroll, power})
	assert.True(t, gross.Equal(d("43915")))
	// 12650/1.265 = 10000 -> credit 2650; 1265/1.265 = 1000 -> credit 265
	assert.Equal(t, "2915.00", credit.StringFixed(2))
}

func TestSimulateCreditsClampsAmountDue(t *testing.T) {
	rent, _ := DeriveLineItem("ALUGUEL", "", d("126500"))
	res, err := SimulateCredits(CreditInput{
		Revenue: d("10000"),
		Items:   []LineItem{rent},
	})
	require.NoError(t, err)

	assert.True(t, res.AmountDue.IsZero(), "credits beyond the debit clamp at zero")
	assert.True(t, res.EffectiveRatePct.IsZero())
	assert.Equal(t, "100.00", res.ReductionPct.StringFixed(2))
}

func TestSimulateCreditsReducedRateTier(t *testing.T) {
	res, err := SimulateCredits(CreditInput{
		Revenue:       d("10000"),
		RateReduction: d("60"),
	})
	require.NoError(t, err)

	// 60% reduction: total rate = 26.5 x 0.4 = 10.6%
	assert.True(t, res.IVADebit.Equal(d("1060")))
	assert.True(t, res.AmountDue.Equal(d("1060")))
}

func TestSimulateCreditsLegacyComparison(t *testing.T) {
	res, err := SimulateCredits(CreditInput{
		Revenue:     d("100000"),
		Presumption: d("32"),
	})
	require.NoError(t, err)

	assert.True(t, res.LegacyPISCOFINS.Equal(d("3650")))
	assert.True(t, res.LegacyIRPJCSLL.Equal(d("7680")))
	assert.True(t, res.LegacyTotal.Equal(d("11330")))
	assert.True(t, res.Increase.Equal(res.AmountDue.Sub(res.LegacyTotal)))
}

func TestSimulateCreditsRequiresRevenue(t *testing.T) {
	_, err := SimulateCredits(CreditInput{Revenue: decimal.Zero})
	assert.Error(t, err)
}
