package repository

import (
	"context"

	"reforma-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsRepository interface {
	// UpsertIgnoreDuplicates inserts the item, silently skipping it when a
	// row with the same source_url already exists. Reports whether a row
	// was actually written.
	UpsertIgnoreDuplicates(ctx context.Context, item *model.NewsItem) (bool, error)
	ExistingURLs(ctx context.Context) (map[string]struct{}, error)
	ListPublished(ctx context.Context, page, limit int, category string) ([]model.NewsItem, int64, error)
	CountPublished(ctx context.Context) (int64, error)
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) UpsertIgnoreDuplicates(ctx context.Context, item *model.NewsItem) (bool, error) {
	res := GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_url"}},
		DoNothing: true,
	}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *newsRepository) ExistingURLs(ctx context.Context) (map[string]struct{}, error) {
	var urls []string
	if err := GetDB(ctx, r.db).Model(&model.NewsItem{}).Pluck("source_url", &urls).Error; err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}
	return set, nil
}

func (r *newsRepository) ListPublished(ctx context.Context, page, limit int, category string) ([]model.NewsItem, int64, error) {
	var items []model.NewsItem
	var total int64

	db := GetDB(ctx, r.db).Model(&model.NewsItem{}).Where("published = ?", true)
	if category != "" {
		db = db.Where("category = ?", category)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *newsRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.NewsItem{}).Where("published = ?", true).Count(&count).Error
	return count, err
}
