package service

import (
	"context"
	"testing"

	"reforma-backend/internal/model"
	"reforma-backend/internal/tax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSimRepo struct {
	created []*model.Simulation
	err     error
}

func (f *fakeSimRepo) Create(_ context.Context, sim *model.Simulation) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, sim)
	return nil
}

func (f *fakeSimRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.created)), nil
}

type stubRateService struct {
	res Resolution
}

func (s *stubRateService) Resolve(_ context.Context, _ string) Resolution {
	return s.res
}

func defaultRateStub() *stubRateService {
	return &stubRateService{res: Resolution{Rates: tax.DefaultRates(), Source: RateSourceDefault}}
}

func TestCalculateImpactPresumedProfit(t *testing.T) {
	simRepo := &fakeSimRepo{}
	svc := NewCalculatorService(defaultRateStub(), simRepo)

	resp, err := svc.CalculateImpact(context.Background(), ImpactRequest{
		Regime:         tax.RegimePresumido,
		MonthlyRevenue: "R$ 10.000,00",
	})
	require.NoError(t, err)

	assert.Equal(t, "65.00", resp.Legacy.PIS)
	assert.Equal(t, "300.00", resp.Legacy.COFINS)
	assert.Equal(t, "480.00", resp.Legacy.IRPJ)
	assert.Equal(t, "288.00", resp.Legacy.CSLL)
	assert.Equal(t, "1133.00", resp.Legacy.Total)

	assert.Equal(t, "880.00", resp.Reform.CBS)
	assert.Equal(t, "1770.00", resp.Reform.IBS)
	assert.Equal(t, "2650.00", resp.Reform.Total)

	assert.Equal(t, "1517.00", resp.Difference)
	assert.Equal(t, RateSourceDefault, resp.RateSource)
	assert.Nil(t, resp.Rule)
	require.Len(t, resp.Transition, 8)
	assert.Equal(t, 2026, resp.Transition[0].Year)
	assert.Equal(t, "90.00", resp.Transition[0].CBS)
	assert.Equal(t, "10.00", resp.Transition[0].IBS)
	assert.Equal(t, "365.00", resp.Transition[0].PISCOFINS)
	assert.Equal(t, 2033, resp.Transition[7].Year)
}

func TestCalculateImpactRejectsZeroRevenue(t *testing.T) {
	svc := NewCalculatorService(defaultRateStub(), &fakeSimRepo{})

	_, err := svc.CalculateImpact(context.Background(), ImpactRequest{
		Regime:         tax.RegimePresumido,
		MonthlyRevenue: "R$ 0,00",
	})
	assert.Error(t, err)
}

func TestCalculateImpactSavesSnapshot(t *testing.T) {
	simRepo := &fakeSimRepo{}
	svc := NewCalculatorService(defaultRateStub(), simRepo)

	_, err := svc.CalculateImpact(context.Background(), ImpactRequest{
		Regime:         tax.RegimeReal,
		MonthlyRevenue: "50000,00",
		MonthlyCosts:   "20000,00",
	})
	require.NoError(t, err)

	require.Len(t, simRepo.created, 1)
	assert.Equal(t, model.SimulationKindImpact, simRepo.created[0].Kind)
	assert.Contains(t, simRepo.created[0].Input, tax.RegimeReal)
}

func TestCalculateImpactSurfacesRuleSummary(t *testing.T) {
	rule := healthcareRule()
	stub := &stubRateService{res: ruleResolution(rule)}
	svc := NewCalculatorService(stub, &fakeSimRepo{})

	resp, err := svc.CalculateImpact(context.Background(), ImpactRequest{
		CNAE:           "8650",
		Regime:         tax.RegimePresumido,
		MonthlyRevenue: "10000,00",
	})
	require.NoError(t, err)

	assert.Equal(t, RateSourceRule, resp.RateSource)
	require.NotNil(t, resp.Rule)
	assert.Equal(t, "8650", resp.Rule.CNAECode)
	// Reduced 10.6% rate instead of the standard 26.5%
	assert.Equal(t, "1060.00", resp.Reform.Total)
}

func TestSimulateCreditsEndToEnd(t *testing.T) {
	simRepo := &fakeSimRepo{}
	svc := NewCreditService(simRepo)

	resp, err := svc.Simulate(context.Background(), CreditSimulationRequest{
		MonthlyRevenue: "10.000,00",
		Expenses: []ExpenseItemRequest{
			{Category: "ALUGUEL", GrossAmount: "12.000,00"},
			{Category: "FOLHA", GrossAmount: "30.000,00"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "9486.17", resp.Items[0].Net)
	assert.Equal(t, "2513.83", resp.Items[0].Credit)
	assert.Equal(t, "0.00", resp.Items[1].Credit)
	assert.Equal(t, "2650.00", resp.IVADebit)

	require.Len(t, simRepo.created, 1)
	assert.Equal(t, model.SimulationKindCredits, simRepo.created[0].Kind)
}

func TestSimulateCreditsValidation(t *testing.T) {
	svc := NewCreditService(&fakeSimRepo{})

	_, err := svc.Simulate(context.Background(), CreditSimulationRequest{
		MonthlyRevenue: "10.000,00",
		RateReduction:  45,
	})
	assert.Error(t, err)

	_, err = svc.Simulate(context.Background(), CreditSimulationRequest{
		MonthlyRevenue: "10.000,00",
		Expenses:       []ExpenseItemRequest{{Category: "NAO_EXISTE", GrossAmount: "100,00"}},
	})
	assert.Error(t, err)
}
