package repository

import (
	"context"

	"reforma-backend/internal/model"

	"gorm.io/gorm"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *model.Lead) error
	List(ctx context.Context, page, limit int) ([]model.Lead, int64, error)
	CountSince(ctx context.Context, days int) (int64, error)
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *model.Lead) error {
	return GetDB(ctx, r.db).Create(lead).Error
}

func (r *leadRepository) List(ctx context.Context, page, limit int) ([]model.Lead, int64, error) {
	var leads []model.Lead
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Lead{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *leadRepository) CountSince(ctx context.Context, days int) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Lead{}).
		Where("created_at >= NOW() - (? || ' days')::interval", days).
		Count(&count).Error
	return count, err
}
