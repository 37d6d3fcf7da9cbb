package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"reforma-backend/internal/model"
	"reforma-backend/internal/repository"
	"reforma-backend/internal/tax"
)

// --- DTOs ---

type CaptureLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	TaxID   string `json:"tax_id"` // CNPJ, any formatting accepted
	Origin  string `json:"origin"` // landing_page (default) or landing_page_contato
}

type LeadResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	TaxID     string `json:"tax_id"`
	Origin    string `json:"origin"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type LeadService interface {
	Capture(ctx context.Context, req CaptureLeadRequest) (LeadResponse, error)
	GetLeads(ctx context.Context, page, limit int) ([]LeadResponse, int64, error)
}

type leadService struct {
	leadRepo  repository.LeadRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewLeadService(
	leadRepo repository.LeadRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) LeadService {
	return &leadService{
		leadRepo:  leadRepo,
		auditRepo: auditRepo,
		txManager: txManager,
	}
}

// --- Implementation ---

// normalizeOrigin maps the request tag to a known lead origin. Anything
// outside the catalog falls back to the hero-form tag.
func normalizeOrigin(origin string) string {
	switch origin {
	case model.LeadOriginLanding, model.LeadOriginContact:
		return origin
	default:
		return model.LeadOriginLanding
	}
}

func (s *leadService) Capture(ctx context.Context, req CaptureLeadRequest) (LeadResponse, error) {
	origin := normalizeOrigin(req.Origin)

	taxID := tax.DigitsOnly(req.TaxID)
	if len(taxID) > 14 {
		return LeadResponse{}, fmt.Errorf("tax_id must have at most 14 digits")
	}

	lead := model.Lead{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		TaxID:   taxID,
		Origin:  origin,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.leadRepo.Create(txCtx, &lead); createErr != nil {
			return fmt.Errorf("failed to create lead: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"email":  lead.Email,
			"origin": lead.Origin,
		})
		audit := &model.AuditLog{
			Action:     model.ActionCaptureLead,
			EntityID:   lead.ID.String(),
			EntityName: lead.Name,
			Details:    string(details),
		}
		// Best-effort audit log — don't fail the capture if logging fails
		_ = s.auditRepo.Log(txCtx, audit)

		return nil
	})
	if err != nil {
		return LeadResponse{}, err
	}

	return toLeadResponse(lead), nil
}

func (s *leadService) GetLeads(ctx context.Context, page, limit int) ([]LeadResponse, int64, error) {
	leads, total, err := s.leadRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch leads: %w", err)
	}

	res := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		res = append(res, toLeadResponse(l))
	}
	return res, total, nil
}

func toLeadResponse(l model.Lead) LeadResponse {
	return LeadResponse{
		ID:        l.ID.String(),
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Company:   l.Company,
		TaxID:     l.TaxID,
		Origin:    l.Origin,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}
