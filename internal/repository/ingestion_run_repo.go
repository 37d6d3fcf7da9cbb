package repository

import (
	"context"

	"reforma-backend/internal/model"

	"gorm.io/gorm"
)

type IngestionRunRepository interface {
	Log(ctx context.Context, run *model.IngestionRun) error
	List(ctx context.Context, page, limit int) ([]model.IngestionRun, int64, error)
	Latest(ctx context.Context) (*model.IngestionRun, error)
}

type ingestionRunRepository struct {
	db *gorm.DB
}

func NewIngestionRunRepository(db *gorm.DB) IngestionRunRepository {
	return &ingestionRunRepository{db: db}
}

func (r *ingestionRunRepository) Log(ctx context.Context, run *model.IngestionRun) error {
	return GetDB(ctx, r.db).Create(run).Error
}

func (r *ingestionRunRepository) List(ctx context.Context, page, limit int) ([]model.IngestionRun, int64, error) {
	var runs []model.IngestionRun
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.IngestionRun{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

func (r *ingestionRunRepository) Latest(ctx context.Context) (*model.IngestionRun, error) {
	var run model.IngestionRun
	err := GetDB(ctx, r.db).Order("created_at desc").First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}
