package handler

import (
	"net/http"

	"reforma-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type IngestionHandler struct {
	ingestionService service.IngestionService
}

func NewIngestionHandler(ingestionService service.IngestionService) *IngestionHandler {
	return &IngestionHandler{ingestionService: ingestionService}
}

func (h *IngestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	// The scheduler that fires this hook is method-agnostic
	router.Any("/api/jobs/news-sync", h.RunNewsSync)
}

// RunNewsSync triggers one news ingestion cycle
// @Summary      Run the news ingestion job
// @Description  Searches tax-reform news, summarizes new articles and stores them. Returns the run counters.
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/jobs/news-sync [post]
func (h *IngestionHandler) RunNewsSync(c *gin.Context) {
	report, err := h.ingestionService.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"found":       report.Found,
		"new":         report.New,
		"processed":   report.Processed,
		"saved":       report.Saved,
		"duration_ms": report.DurationMS,
	})
}
