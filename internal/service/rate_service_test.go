package service

import (
	"context"
	"errors"
	"testing"

	"reforma-backend/internal/model"
	"reforma-backend/internal/repository"
	"reforma-backend/internal/tax"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuleRepo struct {
	rules map[string]*model.ActivityRule
	err   error
	calls int
}

func (f *fakeRuleRepo) FindByCode(_ context.Context, code string) (*model.ActivityRule, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if rule, ok := f.rules[code]; ok {
		return rule, nil
	}
	return nil, repository.ErrRuleNotFound
}

func healthcareRule() *model.ActivityRule {
	return &model.ActivityRule{
		CNAECode:        "8650",
		ActivityName:    "Atividades de atenção à saúde humana",
		ReformTreatment: "reduzida_60",
		CBSRate:         decimal.RequireFromString("3.52"),
		IBSRate:         decimal.RequireFromString("7.08"),
		TotalRate:       decimal.RequireFromString("10.6"),
		FullCredit:      false,
	}
}

func TestResolveUsesActivityRule(t *testing.T) {
	repo := &fakeRuleRepo{rules: map[string]*model.ActivityRule{"8650": healthcareRule()}}
	svc := NewRateService(repo, repository.NewMemoryCache())

	res := svc.Resolve(context.Background(), "86.50-0")

	assert.Equal(t, RateSourceRule, res.Source)
	require.NotNil(t, res.Rule)
	assert.Equal(t, "8650", res.Rule.CNAECode)
	assert.True(t, res.Rates.Total.Equal(decimal.RequireFromString("10.6")))
	assert.False(t, res.Rates.FullCredit)
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewRateService(repo, repository.NewMemoryCache())

	res := svc.Resolve(context.Background(), "4711")

	assert.Equal(t, RateSourceDefault, res.Source)
	assert.Nil(t, res.Rule)
	assert.True(t, res.Rates.Total.Equal(tax.DefaultTotalRate))
	assert.True(t, res.Rates.FullCredit)
}

func TestResolveDegradesOnRepositoryError(t *testing.T) {
	repo := &fakeRuleRepo{err: errors.New("connection refused")}
	svc := NewRateService(repo, repository.NewMemoryCache())

	res := svc.Resolve(context.Background(), "8650")

	assert.Equal(t, RateSourceDefault, res.Source)
	assert.True(t, res.Rates.Total.Equal(tax.DefaultTotalRate))
}

func TestResolveEmptyCNAESkipsLookup(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewRateService(repo, repository.NewMemoryCache())

	res := svc.Resolve(context.Background(), "")

	assert.Equal(t, RateSourceDefault, res.Source)
	assert.Zero(t, repo.calls)
}

func TestResolveCachesRuleHits(t *testing.T) {
	repo := &fakeRuleRepo{rules: map[string]*model.ActivityRule{"8650": healthcareRule()}}
	svc := NewRateService(repo, repository.NewMemoryCache())

	first := svc.Resolve(context.Background(), "8650")
	second := svc.Resolve(context.Background(), "8650")

	assert.Equal(t, RateSourceRule, first.Source)
	assert.Equal(t, RateSourceRule, second.Source)
	assert.Equal(t, 1, repo.calls)
}
