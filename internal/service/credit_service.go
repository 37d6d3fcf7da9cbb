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

type ExpenseItemRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	GrossAmount string `json:"gross_amount" binding:"required"` // currency string, tax-inclusive
}

type CreditSimulationRequest struct {
	MonthlyRevenue string               `json:"monthly_revenue" binding:"required"`
	RateReduction  int                  `json:"rate_reduction"` // 0, 30 or 60
	Presumption    int                  `json:"presumption"`    // presumed-profit base %, default 32
	Expenses       []ExpenseItemRequest `json:"expenses"`
}

type ExpenseItemResponse struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Gross       string `json:"gross"`
	Net         string `json:"net"`
	Credit      string `json:"credit"`
}

type CreditSimulationResponse struct {
	Items            []ExpenseItemResponse `json:"items"`
	TotalExpenses    string                `json:"total_expenses"`
	TotalCredits     string                `json:"total_credits"`
	IVADebit         string                `json:"iva_debit"`
	AmountDue        string                `json:"amount_due"`
	EffectiveRatePct string                `json:"effective_rate_pct"`
	ReductionPct     string                `json:"reduction_pct"`

	LegacyPISCOFINS string `json:"legacy_pis_cofins"`
	LegacyISS       string `json:"legacy_iss"`
	LegacyIRPJCSLL  string `json:"legacy_irpj_csll"`
	LegacyTotal     string `json:"legacy_total"`
	Increase        string `json:"increase"`
	IncreasePct     string `json:"increase_pct"`
}

type ExpenseCategoryResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Creditable bool   `json:"creditable"`
	Rate       string `json:"rate"`
	Condition  string `json:"condition,omitempty"`
}

// --- Interface ---

type CreditService interface {
	Simulate(ctx context.Context, req CreditSimulationRequest) (CreditSimulationResponse, error)
	Categories() []ExpenseCategoryResponse
}

type creditService struct {
	simRepo repository.SimulationRepository
}

func NewCreditService(simRepo repository.SimulationRepository) CreditService {
	return &creditService{simRepo: simRepo}
}

// --- Implementation ---

func (s *creditService) Simulate(ctx context.Context, req CreditSimulationRequest) (CreditSimulationResponse, error) {
	revenue := tax.ParseAmount(req.MonthlyRevenue)
	if revenue.LessThanOrEqual(decimal.Zero) {
		return CreditSimulationResponse{}, fmt.Errorf("monthly_revenue must be greater than 0")
	}
	if r := req.RateReduction; r != 0 && r != 30 && r != 60 {
		return CreditSimulationResponse{}, fmt.Errorf("rate_reduction must be 0, 30 or 60")
	}

	items := make([]tax.LineItem, 0, len(req.Expenses))
	for i, e := range req.Expenses {
		item, err := tax.DeriveLineItem(e.Category, e.Description, tax.ParseAmount(e.GrossAmount))
		if err != nil {
			return CreditSimulationResponse{}, fmt.Errorf("expense %d: %w", i+1, err)
		}
		items = append(items, item)
	}

	result, err := tax.SimulateCredits(tax.CreditInput{
		Revenue:       revenue,
		RateReduction: decimal.NewFromInt(int64(req.RateReduction)),
		Presumption:   decimal.NewFromInt(int64(req.Presumption)),
		Items:         items,
	})
	if err != nil {
		return CreditSimulationResponse{}, err
	}

	resp := toCreditResponse(items, result)
	s.saveSnapshot(ctx, req, resp)
	return resp, nil
}

func (s *creditService) Categories() []ExpenseCategoryResponse {
	res := make([]ExpenseCategoryResponse, 0, len(tax.ExpenseCategories))
	for _, c := range tax.ExpenseCategories {
		res = append(res, ExpenseCategoryResponse{
			Code:       c.Code,
			Name:       c.Name,
			Creditable: c.Creditable,
			Rate:       c.Rate.StringFixed(1),
			Condition:  c.Condition,
		})
	}
	return res
}

func (s *creditService) saveSnapshot(ctx context.Context, req CreditSimulationRequest, resp CreditSimulationResponse) {
	input, _ := json.Marshal(req)
	output, _ := json.Marshal(resp)

	sim := &model.Simulation{
		Kind:   model.SimulationKindCredits,
		Input:  string(input),
		Result: string(output),
	}
	if err := s.simRepo.Create(ctx, sim); err != nil {
		log.Printf("failed to save credit simulation: %v", err)
	}
}

func toCreditResponse(items []tax.LineItem, r *tax.CreditResult) CreditSimulationResponse {
	itemResponses := make([]ExpenseItemResponse, 0, len(items))
	for _, it := range items {
		itemResponses = append(itemResponses, ExpenseItemResponse{
			Category:    it.Category,
			Description: it.Description,
			Gross:       it.Gross.StringFixed(2),
			Net:         it.Net.StringFixed(2),
			Credit:      it.Credit.StringFixed(2),
		})
	}

	return CreditSimulationResponse{
		Items:            itemResponses,
		TotalExpenses:    r.TotalExpenses.StringFixed(2),
		TotalCredits:     r.TotalCredits.StringFixed(2),
		IVADebit:         r.IVADebit.StringFixed(2),
		AmountDue:        r.AmountDue.StringFixed(2),
		EffectiveRatePct: r.EffectiveRatePct.StringFixed(2),
		ReductionPct:     r.ReductionPct.StringFixed(2),
		LegacyPISCOFINS:  r.LegacyPISCOFINS.StringFixed(2),
		LegacyISS:        r.LegacyISS.StringFixed(2),
		LegacyIRPJCSLL:   r.LegacyIRPJCSLL.StringFixed(2),
		LegacyTotal:      r.LegacyTotal.StringFixed(2),
		Increase:         r.Increase.StringFixed(2),
		IncreasePct:      r.IncreasePct.StringFixed(2),
	}
}
