package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"reforma-backend/internal/client"
	"reforma-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]client.SearchResult
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int, _ bool) ([]client.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.results[query], nil
}

type fakeSummarizer struct {
	failURLs map[string]bool
}

func (f *fakeSummarizer) Summarize(_ context.Context, article client.SearchResult) (*client.ArticleSummary, error) {
	if f.failURLs[article.Link] {
		return nil, errors.New("model unavailable")
	}
	return &client.ArticleSummary{
		SimplifiedTitle: "Resumo: " + article.Title,
		Category:        model.CategoryGuidance,
		Relevance:       5,
	}, nil
}

type fakeNewsRepo struct {
	existing map[string]struct{}
	saved    []*model.NewsItem
	saveErr  error
}

func (f *fakeNewsRepo) UpsertIgnoreDuplicates(_ context.Context, item *model.NewsItem) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	if _, dup := f.existing[item.SourceURL]; dup {
		return false, nil
	}
	if f.existing == nil {
		f.existing = make(map[string]struct{})
	}
	f.existing[item.SourceURL] = struct{}{}
	f.saved = append(f.saved, item)
	return true, nil
}

func (f *fakeNewsRepo) ExistingURLs(_ context.Context) (map[string]struct{}, error) {
	urls := make(map[string]struct{}, len(f.existing))
	for u := range f.existing {
		urls[u] = struct{}{}
	}
	return urls, nil
}

func (f *fakeNewsRepo) ListPublished(_ context.Context, _, _ int, _ string) ([]model.NewsItem, int64, error) {
	return nil, 0, nil
}

func (f *fakeNewsRepo) CountPublished(_ context.Context) (int64, error) {
	return int64(len(f.existing)), nil
}

type fakeRunRepo struct {
	runs []*model.IngestionRun
}

func (f *fakeRunRepo) Log(_ context.Context, run *model.IngestionRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) List(_ context.Context, _, _ int) ([]model.IngestionRun, int64, error) {
	return nil, 0, nil
}

func (f *fakeRunRepo) Latest(_ context.Context) (*model.IngestionRun, error) {
	return nil, nil
}

func article(url, title string) client.SearchResult {
	return client.SearchResult{Title: title, Link: url, Snippet: "snippet"}
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _, _ int) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}

func newTestIngestion(cfg IngestionConfig, searcher *fakeSearcher, summarizer client.Summarizer, newsRepo *fakeNewsRepo, runRepo *fakeRunRepo) IngestionService {
	cfg.PacingDelay = -1 // no need to pace fakes
	return NewIngestionService(cfg, searcher, summarizer, newsRepo, runRepo, &fakeAuditRepo{}, nil)
}

func TestRunDeduplicatesAcrossQueriesAndStorage(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]client.SearchResult{
		"q1": {article("https://a.example/1", "A"), article("https://a.example/2", "B")},
		"q2": {article("https://a.example/2", "B again"), article("https://a.example/3", "C")},
	}}
	newsRepo := &fakeNewsRepo{existing: map[string]struct{}{"https://a.example/3": {}}}
	runRepo := &fakeRunRepo{}

	svc := newTestIngestion(IngestionConfig{Queries: []string{"q1", "q2"}}, searcher, &fakeSummarizer{}, newsRepo, runRepo)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Found) // URL 2 counted once
	assert.Equal(t, 2, report.New)   // URL 3 already stored
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Saved)
}

func TestRunCapsItemsPerRun(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]client.SearchResult{
		"q1": {
			article("https://a.example/1", "A"),
			article("https://a.example/2", "B"),
			article("https://a.example/3", "C"),
		},
	}}
	newsRepo := &fakeNewsRepo{}
	runRepo := &fakeRunRepo{}

	svc := newTestIngestion(IngestionConfig{Queries: []string{"q1"}, MaxPerRun: 2}, searcher, &fakeSummarizer{}, newsRepo, runRepo)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 3, report.New) // cap limits processing, not the new count
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Saved)
	assert.Len(t, newsRepo.saved, 2)
}

func TestRunSkipsFailedSummaries(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]client.SearchResult{
		"q1": {article("https://a.example/1", "A"), article("https://a.example/2", "B")},
	}}
	summarizer := &fakeSummarizer{failURLs: map[string]bool{"https://a.example/1": true}}
	newsRepo := &fakeNewsRepo{}
	runRepo := &fakeRunRepo{}

	svc := newTestIngestion(IngestionConfig{Queries: []string{"q1"}}, searcher, summarizer, newsRepo, runRepo)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Saved)
	assert.Equal(t, "https://a.example/2", newsRepo.saved[0].SourceURL)
}

func TestRunRecordsAuditRow(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]client.SearchResult{
		"q1": {article("https://a.example/1", "A")},
	}}
	newsRepo := &fakeNewsRepo{}
	runRepo := &fakeRunRepo{}

	svc := newTestIngestion(IngestionConfig{Queries: []string{"q1"}}, searcher, &fakeSummarizer{}, newsRepo, runRepo)
	_, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, runRepo.runs, 1)
	run := runRepo.runs[0]
	assert.Equal(t, "busca_noticias", run.JobType)
	assert.Equal(t, model.RunStatusSuccess, run.Status)
	assert.Equal(t, 1, run.ItemsFound)
	assert.Equal(t, 1, run.ItemsSaved)
}

func TestRunStatusPartialWhenNothingSaved(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]client.SearchResult{
		"q1": {article("https://a.example/1", "A")},
	}}
	summarizer := &fakeSummarizer{failURLs: map[string]bool{"https://a.example/1": true}}
	newsRepo := &fakeNewsRepo{}
	runRepo := &fakeRunRepo{}

	svc := newTestIngestion(IngestionConfig{Queries: []string{"q1"}}, searcher, summarizer, newsRepo, runRepo)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.Saved)
	require.Len(t, runRepo.runs, 1)
	assert.Equal(t, model.RunStatusPartial, runRepo.runs[0].Status)
}

func TestRunSearchesEconetOnlyWithCredentials(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]client.SearchResult{}}
	svc := newTestIngestion(IngestionConfig{Queries: []string{"q1"}}, searcher, &fakeSummarizer{}, &fakeNewsRepo{}, &fakeRunRepo{})
	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, searcher.queries, econetQuery)

	searcher = &fakeSearcher{results: map[string][]client.SearchResult{}}
	svc = newTestIngestion(IngestionConfig{
		Queries:    []string{"q1"},
		EconetUser: "user",
		EconetPass: "pass",
	}, searcher, &fakeSummarizer{}, &fakeNewsRepo{}, &fakeRunRepo{})
	_, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, searcher.queries, econetQuery)
}

func TestSourceFromURL(t *testing.T) {
	cases := map[string]string{
		"https://www.gov.br/fazenda/noticia":       "Ministério da Fazenda",
		"https://www.gov.br/receitafederal/x":      "Receita Federal",
		"https://www.planalto.gov.br/lc214":        "Planalto",
		"https://valor.globo.com/reforma":          "Valor Econômico",
		"https://www.econeteditora.com.br/boletim": "Econet Editora",
		"https://blog.example.com/post":            "Outras Fontes",
	}
	for url, want := range cases {
		assert.Equal(t, want, sourceFromURL(url), url)
	}
}
