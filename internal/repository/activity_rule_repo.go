package repository

import (
	"context"
	"errors"

	"reforma-backend/internal/model"

	"gorm.io/gorm"
)

// ErrRuleNotFound is returned when no activity rule matches a CNAE code,
// neither exactly nor by 4-digit prefix.
var ErrRuleNotFound = errors.New("activity rule not found")

type ActivityRuleRepository interface {
	// FindByCode resolves a rule for a digits-only CNAE code: exact match
	// first, then a 4-digit prefix match, at most one record either way.
	FindByCode(ctx context.Context, code string) (*model.ActivityRule, error)
}

type activityRuleRepository struct {
	db *gorm.DB
}

func NewActivityRuleRepository(db *gorm.DB) ActivityRuleRepository {
	return &activityRuleRepository{db: db}
}

func (r *activityRuleRepository) FindByCode(ctx context.Context, code string) (*model.ActivityRule, error) {
	var rule model.ActivityRule

	err := GetDB(ctx, r.db).First(&rule, "cnae_code = ?", code).Error
	if err == nil {
		return &rule, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if len(code) < 4 {
		return nil, ErrRuleNotFound
	}

	err = GetDB(ctx, r.db).
		Where("cnae_code LIKE ?", code[:4]+"%").
		Order("cnae_code").
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	return &rule, nil
}
