package repository

import (
	"context"

	"reforma-backend/internal/model"

	"gorm.io/gorm"
)

type SimulationRepository interface {
	Create(ctx context.Context, sim *model.Simulation) error
	Count(ctx context.Context) (int64, error)
}

type simulationRepository struct {
	db *gorm.DB
}

func NewSimulationRepository(db *gorm.DB) SimulationRepository {
	return &simulationRepository{db: db}
}

func (r *simulationRepository) Create(ctx context.Context, sim *model.Simulation) error {
	return GetDB(ctx, r.db).Create(sim).Error
}

func (r *simulationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Simulation{}).Count(&count).Error
	return count, err
}
