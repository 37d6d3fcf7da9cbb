package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reforma-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type stubCalculatorService struct {
	resp service.ImpactResponse
	err  error
}

func (s *stubCalculatorService) CalculateImpact(_ context.Context, _ service.ImpactRequest) (service.ImpactResponse, error) {
	return s.resp, s.err
}

type stubCreditService struct {
	resp service.CreditSimulationResponse
	err  error
}

func (s *stubCreditService) Simulate(_ context.Context, _ service.CreditSimulationRequest) (service.CreditSimulationResponse, error) {
	return s.resp, s.err
}

func (s *stubCreditService) Categories() []service.ExpenseCategoryResponse {
	return []service.ExpenseCategoryResponse{{Code: "ALUGUEL", Name: "Aluguel", Creditable: true, Rate: "26.5"}}
}

func newCalculatorRouter(calc service.CalculatorService, credit service.CreditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCalculatorHandler(calc, credit).RegisterRoutes(router.Group(""))
	return router
}

func TestCalculateImpactEndpoint(t *testing.T) {
	router := newCalculatorRouter(
		&stubCalculatorService{resp: service.ImpactResponse{Classification: "desfavoravel"}},
		&stubCreditService{},
	)

	body := `{"regime":"lucro_presumido","monthly_revenue":"10.000,00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculator/impact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Classification string `json:"classification"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("expected success status, got %q", resp.Status)
	}
	if resp.Data.Classification != "desfavoravel" {
		t.Errorf("expected classification desfavoravel, got %q", resp.Data.Classification)
	}
}

func TestCalculateImpactEndpointRejectsBadRegime(t *testing.T) {
	router := newCalculatorRouter(&stubCalculatorService{}, &stubCreditService{})

	body := `{"regime":"mei","monthly_revenue":"10.000,00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculator/impact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSimulateCreditsEndpointError(t *testing.T) {
	router := newCalculatorRouter(
		&stubCalculatorService{},
		&stubCreditService{err: errors.New("rate_reduction must be 0, 30 or 60")},
	)

	body := `{"monthly_revenue":"10.000,00","rate_reduction":45}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculator/credits", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	router := newCalculatorRouter(&stubCalculatorService{}, &stubCreditService{})

	req := httptest.NewRequest(http.MethodGet, "/api/calculator/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ALUGUEL") {
		t.Errorf("expected ALUGUEL category in body: %s", w.Body.String())
	}
}
