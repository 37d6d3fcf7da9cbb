package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"reforma-backend/internal/model"
	"reforma-backend/internal/repository"
	"reforma-backend/internal/tax"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ImpactRequest struct {
	CNAE           string `json:"cnae"`
	Regime         string `json:"regime" binding:"required,oneof=lucro_presumido lucro_real simples_nacional"`
	MonthlyRevenue string `json:"monthly_revenue" binding:"required"` // currency string, e.g. "R$ 50.000,00"
	MonthlyCosts   string `json:"monthly_costs"`
}

type LegacyBreakdownResponse struct {
	PIS     string `json:"pis"`
	COFINS  string `json:"cofins"`
	IRPJ    string `json:"irpj"`
	CSLL    string `json:"csll"`
	ISS     string `json:"iss"`
	Total   string `json:"total"`
	LoadPct string `json:"load_pct"`
}

type ReformBreakdownResponse struct {
	CBS       string `json:"cbs"`
	IBS       string `json:"ibs"`
	Selective string `json:"selective"`
	Credits   string `json:"credits"`
	Total     string `json:"total"`
	LoadPct   string `json:"load_pct"`
}

type TransitionYearResponse struct {
	Year      int    `json:"year"`
	CBS       string `json:"cbs"`
	IBS       string `json:"ibs"`
	PISCOFINS string `json:"pis_cofins"`
	ICMSISS   string `json:"icms_iss"`
	Total     string `json:"total"`
}

type ActivityRuleSummary struct {
	CNAECode          string `json:"cnae_code"`
	ActivityName      string `json:"activity_name"`
	ExpectedImpact    string `json:"expected_impact"`
	SimpleExplanation string `json:"simple_explanation"`
	PracticalExamples string `json:"practical_examples"`
	AttentionPoints   string `json:"attention_points"`
}

type ImpactResponse struct {
	Legacy         LegacyBreakdownResponse  `json:"legacy"`
	Reform         ReformBreakdownResponse  `json:"reform"`
	Difference     string                   `json:"difference"`
	VariationPct   string                   `json:"variation_pct"`
	Classification string                   `json:"classification"`
	Transition     []TransitionYearResponse `json:"transition"`
	RateSource     string                   `json:"rate_source"` // "rule" or "default"
	Rule           *ActivityRuleSummary     `json:"rule,omitempty"`
}

// --- Interface ---

type CalculatorService interface {
	CalculateImpact(ctx context.Context, req ImpactRequest) (ImpactResponse, error)
}

type calculatorService struct {
	rateService RateService
	simRepo     repository.SimulationRepository
}

func NewCalculatorService(rateService RateService, simRepo repository.SimulationRepository) CalculatorService {
	return &calculatorService{rateService: rateService, simRepo: simRepo}
}

// --- Implementation ---

func (s *calculatorService) CalculateImpact(ctx context.Context, req ImpactRequest) (ImpactResponse, error) {
	revenue := tax.ParseAmount(req.MonthlyRevenue)
	if revenue.LessThanOrEqual(decimal.Zero) {
		return ImpactResponse{}, fmt.Errorf("monthly_revenue must be greater than 0")
	}
	costs := tax.ParseAmount(req.MonthlyCosts)

	resolution := s.rateService.Resolve(ctx, req.CNAE)

	result, err := tax.Compute(tax.Input{
		Revenue: revenue,
		Costs:   costs,
		Regime:  req.Regime,
		Rates:   resolution.Rates,
	})
	if err != nil {
		return ImpactResponse{}, err
	}

	resp := toImpactResponse(result, resolution)
	s.saveSnapshot(ctx, req, resp)
	return resp, nil
}

// saveSnapshot persists the run for the advisory team. Fire-and-forget: a
// storage hiccup must not fail the calculation.
func (s *calculatorService) saveSnapshot(ctx context.Context, req ImpactRequest, resp ImpactResponse) {
	input, _ := json.Marshal(req)
	output, _ := json.Marshal(resp)

	sim := &model.Simulation{
		Kind:   model.SimulationKindImpact,
		Input:  string(input),
		Result: string(output),
	}
	if err := s.simRepo.Create(ctx, sim); err != nil {
		log.Printf("failed to save impact simulation: %v", err)
	}
}

func toImpactResponse(r *tax.Result, res Resolution) ImpactResponse {
	transition := make([]TransitionYearResponse, 0, len(r.Transition))
	for _, y := range r.Transition {
		transition = append(transition, TransitionYearResponse{
			Year:      y.Year,
			CBS:       y.CBS.StringFixed(2),
			IBS:       y.IBS.StringFixed(2),
			PISCOFINS: y.PISCOFINS.StringFixed(2),
			ICMSISS:   y.ICMSISS.StringFixed(2),
			Total:     y.Total.StringFixed(2),
		})
	}

	resp := ImpactResponse{
		Legacy: LegacyBreakdownResponse{
			PIS:     r.Legacy.PIS.StringFixed(2),
			COFINS:  r.Legacy.COFINS.StringFixed(2),
			IRPJ:    r.Legacy.IRPJ.StringFixed(2),
			CSLL:    r.Legacy.CSLL.StringFixed(2),
			ISS:     r.Legacy.ISS.StringFixed(2),
			Total:   r.Legacy.Total.StringFixed(2),
			LoadPct: r.Legacy.LoadPct.StringFixed(2),
		},
		Reform: ReformBreakdownResponse{
			CBS:       r.Reform.CBS.StringFixed(2),
			IBS:       r.Reform.IBS.StringFixed(2),
			Selective: r.Reform.Selective.StringFixed(2),
			Credits:   r.Reform.Credits.StringFixed(2),
			Total:     r.Reform.Total.StringFixed(2),
			LoadPct:   r.Reform.LoadPct.StringFixed(2),
		},
		Difference:     r.Difference.StringFixed(2),
		VariationPct:   r.VariationPct.StringFixed(1),
		Classification: r.Classification,
		Transition:     transition,
		RateSource:     res.Source,
	}

	if res.Rule != nil {
		resp.Rule = &ActivityRuleSummary{
			CNAECode:          res.Rule.CNAECode,
			ActivityName:      res.Rule.ActivityName,
			ExpectedImpact:    res.Rule.ExpectedImpact,
			SimpleExplanation: res.Rule.SimpleExplanation,
			PracticalExamples: res.Rule.PracticalExamples,
			AttentionPoints:   res.Rule.AttentionPoints,
		}
	}
	return resp
}
