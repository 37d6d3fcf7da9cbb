package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"reforma-backend/internal/model"
	"reforma-backend/internal/repository"
	"reforma-backend/internal/tax"
)

// Rate resolution sources
const (
	RateSourceRule    = "rule"
	RateSourceDefault = "default"
)

// Resolution is the outcome of one rate lookup. Source distinguishes an
// activity-specific rule from the default-rates fallback so callers and
// tests can tell the two paths apart.
type Resolution struct {
	Rates  tax.RateSet
	Rule   *model.ActivityRule
	Source string
}

// RateService resolves the reform rate set for a CNAE code. Lookup
// failures of any kind degrade to the default rates; they are never
// propagated to the caller.
type RateService interface {
	Resolve(ctx context.Context, cnae string) Resolution
}

const ruleCacheTTL = time.Hour

type rateService struct {
	ruleRepo repository.ActivityRuleRepository
	cache    repository.Cache
}

func NewRateService(ruleRepo repository.ActivityRuleRepository, cache repository.Cache) RateService {
	return &rateService{ruleRepo: ruleRepo, cache: cache}
}

func (s *rateService) Resolve(ctx context.Context, cnae string) Resolution {
	code := tax.DigitsOnly(cnae)
	if code == "" {
		return defaultResolution()
	}

	if rule := s.cachedRule(ctx, code); rule != nil {
		return ruleResolution(rule)
	}

	rule, err := s.ruleRepo.FindByCode(ctx, code)
	if err != nil {
		// Degrade gracefully: an unavailable rule table must never block a
		// computation.
		if err != repository.ErrRuleNotFound {
			log.Printf("activity rule lookup failed for %s: %v", code, err)
		}
		return defaultResolution()
	}

	s.cacheRule(ctx, code, rule)
	return ruleResolution(rule)
}

func (s *rateService) cachedRule(ctx context.Context, code string) *model.ActivityRule {
	raw, ok := s.cache.Get(ctx, "activity_rule:"+code)
	if !ok {
		return nil
	}
	var rule model.ActivityRule
	if err := json.Unmarshal([]byte(raw), &rule); err != nil {
		return nil
	}
	return &rule
}

func (s *rateService) cacheRule(ctx context.Context, code string, rule *model.ActivityRule) {
	raw, err := json.Marshal(rule)
	if err != nil {
		return
	}
	// Best-effort: a cold cache only costs one extra query.
	_ = s.cache.Set(ctx, "activity_rule:"+code, string(raw), ruleCacheTTL)
}

func ruleResolution(rule *model.ActivityRule) Resolution {
	return Resolution{
		Rates: tax.RateSet{
			CBS:        rule.CBSRate,
			IBS:        rule.IBSRate,
			Total:      rule.TotalRate,
			FullCredit: rule.FullCredit,
		},
		Rule:   rule,
		Source: RateSourceRule,
	}
}

func defaultResolution() Resolution {
	return Resolution{
		Rates:  tax.DefaultRates(),
		Source: RateSourceDefault,
	}
}
