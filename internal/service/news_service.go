package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reforma-backend/internal/model"
	"reforma-backend/internal/repository"

	"gorm.io/gorm"
)

// --- DTOs ---

type NewsItemResponse struct {
	ID                string   `json:"id"`
	SimplifiedTitle   string   `json:"simplified_title"`
	SimpleExplanation string   `json:"simple_explanation"`
	BusinessImpact    string   `json:"business_impact"`
	PracticalExamples string   `json:"practical_examples"`
	AttentionPoints   []string `json:"attention_points"`
	Tags              []string `json:"tags"`
	Category          string   `json:"category"`
	Source            string   `json:"source"`
	SourceURL         string   `json:"source_url"`
	Relevance         int      `json:"relevance"`
	Featured          bool     `json:"featured"`
	CreatedAt         string   `json:"created_at"`
}

type IngestionRunResponse struct {
	ID           string `json:"id"`
	JobType      string `json:"job_type"`
	Status       string `json:"status"`
	ItemsFound   int    `json:"items_found"`
	ItemsSaved   int    `json:"items_saved"`
	ErrorMessage string `json:"error_message,omitempty"`
	DurationMS   int64  `json:"duration_ms"`
	CreatedAt    string `json:"created_at"`
}

type DashboardStats struct {
	TotalLeads    int64                 `json:"total_leads"`
	LeadsLast30d  int64                 `json:"leads_last_30d"`
	PublishedNews int64                 `json:"published_news"`
	Simulations   int64                 `json:"simulations"`
	LastIngestion *IngestionRunResponse `json:"last_ingestion,omitempty"`
}

// --- Interface ---

type NewsService interface {
	GetPublished(ctx context.Context, page, limit int, category string) ([]NewsItemResponse, int64, error)
	GetRuns(ctx context.Context, page, limit int) ([]IngestionRunResponse, int64, error)
	GetStats(ctx context.Context) (DashboardStats, error)
}

type newsService struct {
	newsRepo repository.NewsRepository
	runRepo  repository.IngestionRunRepository
	leadRepo repository.LeadRepository
	simRepo  repository.SimulationRepository
}

func NewNewsService(
	newsRepo repository.NewsRepository,
	runRepo repository.IngestionRunRepository,
	leadRepo repository.LeadRepository,
	simRepo repository.SimulationRepository,
) NewsService {
	return &newsService{
		newsRepo: newsRepo,
		runRepo:  runRepo,
		leadRepo: leadRepo,
		simRepo:  simRepo,
	}
}

// --- Implementation ---

func (s *newsService) GetPublished(ctx context.Context, page, limit int, category string) ([]NewsItemResponse, int64, error) {
	items, total, err := s.newsRepo.ListPublished(ctx, page, limit, category)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch news: %w", err)
	}

	res := make([]NewsItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, toNewsItemResponse(item))
	}
	return res, total, nil
}

func (s *newsService) GetRuns(ctx context.Context, page, limit int) ([]IngestionRunResponse, int64, error) {
	runs, total, err := s.runRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ingestion runs: %w", err)
	}

	res := make([]IngestionRunResponse, 0, len(runs))
	for _, run := range runs {
		res = append(res, toRunResponse(run))
	}
	return res, total, nil
}

func (s *newsService) GetStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if _, stats.TotalLeads, err = s.leadRepo.List(ctx, 1, 1); err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count leads: %w", err)
	}
	if stats.LeadsLast30d, err = s.leadRepo.CountSince(ctx, 30); err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count recent leads: %w", err)
	}
	if stats.PublishedNews, err = s.newsRepo.CountPublished(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count news: %w", err)
	}
	if stats.Simulations, err = s.simRepo.Count(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("failed to count simulations: %w", err)
	}

	last, err := s.runRepo.Latest(ctx)
	if err != nil && err != gorm.ErrRecordNotFound {
		return DashboardStats{}, fmt.Errorf("failed to fetch last ingestion run: %w", err)
	}
	if last != nil {
		run := toRunResponse(*last)
		stats.LastIngestion = &run
	}

	return stats, nil
}

func toNewsItemResponse(item model.NewsItem) NewsItemResponse {
	return NewsItemResponse{
		ID:                item.ID.String(),
		SimplifiedTitle:   item.SimplifiedTitle,
		SimpleExplanation: item.SimpleExplanation,
		BusinessImpact:    item.BusinessImpact,
		PracticalExamples: item.PracticalExamples,
		AttentionPoints:   decodeStringArray(item.AttentionPoints),
		Tags:              decodeStringArray(item.Tags),
		Category:          item.Category,
		Source:            item.Source,
		SourceURL:         item.SourceURL,
		Relevance:         item.Relevance,
		Featured:          item.Featured,
		CreatedAt:         item.CreatedAt.Format(time.RFC3339),
	}
}

func toRunResponse(run model.IngestionRun) IngestionRunResponse {
	return IngestionRunResponse{
		ID:           run.ID.String(),
		JobType:      run.JobType,
		Status:       run.Status,
		ItemsFound:   run.ItemsFound,
		ItemsSaved:   run.ItemsSaved,
		ErrorMessage: run.ErrorMessage,
		DurationMS:   run.DurationMS,
		CreatedAt:    run.CreatedAt.Format(time.RFC3339),
	}
}

func decodeStringArray(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
