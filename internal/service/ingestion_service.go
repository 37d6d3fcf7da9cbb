package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"reforma-backend/internal/client"
	"reforma-backend/internal/model"
	"reforma-backend/internal/repository"
	"reforma-backend/internal/websocket"

	"golang.org/x/sync/errgroup"
)

// defaultQueries covers the official sources, the managing committee, the
// complementary law, specialized press and the recurring hot topics.
var defaultQueries = []string{
	"site:gov.br/fazenda reforma tributária IBS CBS 2025",
	"site:gov.br/receitafederal reforma tributária regulamentação",
	`site:planalto.gov.br "lei complementar 214" OR "reforma tributária"`,

	`"Comitê Gestor do IBS" reforma tributária`,

	`"LC 214" reforma tributária`,
	`"Lei Complementar 214" regulamentação`,

	"reforma tributária IBS CBS 2026 alíquota",
	"reforma tributária Brasil empresas impacto",

	"split payment reforma tributária nota fiscal",
	"cashback reforma tributária devolução",
	"cesta básica reforma tributária alíquota zero",
	"imposto seletivo reforma tributária",
}

const (
	econetQuery     = "site:econeteditora.com.br reforma tributária IBS CBS"
	econetSource    = "Econet Editora"
	jobTypeNewsSync = "busca_noticias"

	searchBatchSize  = 3
	resultsPerQuery  = 10
	econetResultsNum = 15
	maxItemsPerRun   = 20
)

// Searcher abstracts the news search backend.
type Searcher interface {
	Search(ctx context.Context, query string, num int, lastWeek bool) ([]client.SearchResult, error)
}

// RunReport is the outcome of one ingestion run.
type RunReport struct {
	Found      int   `json:"found"`
	New        int   `json:"new"`
	Processed  int   `json:"processed"`
	Saved      int   `json:"saved"`
	DurationMS int64 `json:"duration_ms"`
}

type IngestionService interface {
	Run(ctx context.Context) (*RunReport, error)
}

// IngestionConfig tunes a run. Zero values fall back to production
// defaults; a negative PacingDelay disables the inter-item delay.
type IngestionConfig struct {
	Queries     []string
	EconetUser  string
	EconetPass  string
	MaxPerRun   int
	PacingDelay time.Duration
}

func (c *IngestionConfig) normalize() {
	if len(c.Queries) == 0 {
		c.Queries = defaultQueries
	}
	if c.MaxPerRun == 0 {
		c.MaxPerRun = maxItemsPerRun
	}
	if c.PacingDelay == 0 {
		c.PacingDelay = time.Second
	}
}

type ingestionService struct {
	cfg        IngestionConfig
	searcher   Searcher
	summarizer client.Summarizer
	newsRepo   repository.NewsRepository
	runRepo    repository.IngestionRunRepository
	auditRepo  repository.AuditRepository
	hub        *websocket.Hub
}

func NewIngestionService(
	cfg IngestionConfig,
	searcher Searcher,
	summarizer client.Summarizer,
	newsRepo repository.NewsRepository,
	runRepo repository.IngestionRunRepository,
	auditRepo repository.AuditRepository,
	hub *websocket.Hub,
) IngestionService {
	cfg.normalize()
	return &ingestionService{
		cfg:        cfg,
		searcher:   searcher,
		summarizer: summarizer,
		newsRepo:   newsRepo,
		runRepo:    runRepo,
		auditRepo:  auditRepo,
		hub:        hub,
	}
}

// Run executes one full ingestion cycle: search all queries in small
// concurrent batches, dedupe by URL, summarize up to the per-run cap
// sequentially, and persist with duplicate-safe inserts.
func (s *ingestionService) Run(ctx context.Context) (*RunReport, error) {
	start := time.Now()

	found := s.collect(ctx)
	log.Printf("news ingestion: %d articles found", len(found))

	fresh, err := s.filterKnown(ctx, found)
	if err != nil {
		s.logRun(ctx, model.RunStatusError, len(found), 0, err.Error(), time.Since(start))
		return nil, err
	}
	log.Printf("news ingestion: %d new articles to process", len(fresh))

	// The per-run cap limits summarization only; the report still counts
	// everything that was new.
	newCount := len(fresh)
	if len(fresh) > s.cfg.MaxPerRun {
		fresh = fresh[:s.cfg.MaxPerRun]
	}

	processed, saved := s.summarizeAndStore(ctx, fresh)

	report := &RunReport{
		Found:      len(found),
		New:        newCount,
		Processed:  processed,
		Saved:      saved,
		DurationMS: time.Since(start).Milliseconds(),
	}

	status := model.RunStatusError
	if saved > 0 {
		status = model.RunStatusSuccess
	} else if processed > 0 {
		status = model.RunStatusPartial
	}
	s.logRun(ctx, status, report.Found, report.Saved, "", time.Since(start))

	log.Printf("news ingestion: done, %d/%d saved in %dms", saved, processed, report.DurationMS)
	return report, nil
}

// collect runs every query against the search backend, three at a time,
// and returns the results deduplicated by URL in discovery order. A failed
// query is logged and contributes nothing.
func (s *ingestionService) collect(ctx context.Context) []client.SearchResult {
	seen := make(map[string]struct{})
	var all []client.SearchResult

	queries := s.cfg.Queries
	for i := 0; i < len(queries); i += searchBatchSize {
		batch := queries[i:min(i+searchBatchSize, len(queries))]
		results := make([][]client.SearchResult, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for j, q := range batch {
			g.Go(func() error {
				res, err := s.searcher.Search(gctx, q, resultsPerQuery, true)
				if err != nil {
					log.Printf("news ingestion: search %q failed: %v", q, err)
					return nil
				}
				results[j] = res
				return nil
			})
		}
		_ = g.Wait()

		for _, res := range results {
			for _, item := range res {
				if _, dup := seen[item.Link]; dup {
					continue
				}
				seen[item.Link] = struct{}{}
				all = append(all, item)
			}
		}
	}

	// The Econet publisher feed needs paid credentials; search it only
	// when they are configured.
	if s.cfg.EconetUser != "" && s.cfg.EconetPass != "" {
		res, err := s.searcher.Search(ctx, econetQuery, econetResultsNum, false)
		if err != nil {
			log.Printf("news ingestion: econet search failed: %v", err)
		}
		for _, item := range res {
			if _, dup := seen[item.Link]; dup {
				continue
			}
			seen[item.Link] = struct{}{}
			all = append(all, item)
		}
	}

	return all
}

func (s *ingestionService) filterKnown(ctx context.Context, found []client.SearchResult) ([]client.SearchResult, error) {
	known, err := s.newsRepo.ExistingURLs(ctx)
	if err != nil {
		return nil, err
	}

	fresh := make([]client.SearchResult, 0, len(found))
	for _, item := range found {
		if _, ok := known[item.Link]; !ok {
			fresh = append(fresh, item)
		}
	}
	return fresh, nil
}

// summarizeAndStore processes articles one at a time with a pacing delay
// between them so the model API is never hammered. A failed summary or
// insert skips the article, never the run.
func (s *ingestionService) summarizeAndStore(ctx context.Context, articles []client.SearchResult) (processed, saved int) {
	for i, article := range articles {
		if i > 0 && s.cfg.PacingDelay > 0 {
			select {
			case <-ctx.Done():
				return processed, saved
			case <-time.After(s.cfg.PacingDelay):
			}
		}

		summary, err := s.summarizer.Summarize(ctx, article)
		processed++
		if err != nil {
			log.Printf("news ingestion: summarize %s failed: %v", article.Link, err)
			continue
		}

		item := buildNewsItem(article, summary)
		inserted, err := s.newsRepo.UpsertIgnoreDuplicates(ctx, item)
		if err != nil {
			log.Printf("news ingestion: save %s failed: %v", article.Link, err)
			continue
		}
		if inserted {
			saved++
			s.broadcast(item)
		}
	}
	return processed, saved
}

func (s *ingestionService) broadcast(item *model.NewsItem) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type": "news_published",
		"data": toNewsItemResponse(*item),
	})
	if err != nil {
		return
	}
	select {
	case s.hub.Broadcast <- payload:
	default:
	}
}

func (s *ingestionService) logRun(ctx context.Context, status string, found, saved int, errMsg string, elapsed time.Duration) {
	run := &model.IngestionRun{
		JobType:      jobTypeNewsSync,
		Status:       status,
		ItemsFound:   found,
		ItemsSaved:   saved,
		ErrorMessage: errMsg,
		DurationMS:   elapsed.Milliseconds(),
	}
	if err := s.runRepo.Log(ctx, run); err != nil {
		log.Printf("news ingestion: failed to record run: %v", err)
	}

	details, _ := json.Marshal(map[string]interface{}{
		"status":      status,
		"items_found": found,
		"items_saved": saved,
		"duration_ms": elapsed.Milliseconds(),
	})
	if err := s.auditRepo.Log(ctx, &model.AuditLog{
		Action:     model.ActionRunNewsSync,
		EntityName: jobTypeNewsSync,
		Details:    string(details),
	}); err != nil {
		log.Printf("news ingestion: failed to write audit log: %v", err)
	}
}

func buildNewsItem(article client.SearchResult, summary *client.ArticleSummary) *model.NewsItem {
	return &model.NewsItem{
		OriginalTitle:     article.Title,
		OriginalSummary:   article.Snippet,
		SourceURL:         article.Link,
		Source:            sourceFromURL(article.Link),
		PublishedAt:       article.Date,
		SimplifiedTitle:   summary.SimplifiedTitle,
		SimpleExplanation: summary.SimpleExplanation,
		BusinessImpact:    summary.BusinessImpact,
		PracticalExamples: summary.PracticalExamples,
		AttentionPoints:   encodeStringArray(summary.AttentionPoints),
		Tags:              encodeStringArray(summary.Tags),
		Category:          summary.Category,
		Relevance:         summary.Relevance,
		Published:         true,
	}
}

var sourcesByHost = []struct {
	fragment string
	name     string
}{
	{"gov.br/fazenda", "Ministério da Fazenda"},
	{"gov.br/receitafederal", "Receita Federal"},
	{"planalto.gov.br", "Planalto"},
	{"valor.globo.com", "Valor Econômico"},
	{"jota.info", "Jota"},
	{"conjur.com.br", "Consultor Jurídico"},
	{"econeteditora.com.br", econetSource},
	{"folha.uol.com.br", "Folha de S.Paulo"},
	{"estadao.com.br", "Estadão"},
}

func sourceFromURL(url string) string {
	for _, s := range sourcesByHost {
		if strings.Contains(url, s.fragment) {
			return s.name
		}
	}
	return "Outras Fontes"
}

func encodeStringArray(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
