package handler

import (
	"net/http"
	"strconv"

	"reforma-backend/internal/middleware"
	"reforma-backend/internal/service"
	"reforma-backend/pkg/pagination"
	"reforma-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService service.NewsService
}

func NewNewsHandler(newsService service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/news", h.ListNews)

	router.GET("/api/news/runs", middleware.RequireRole("admin"), h.ListRuns)
	router.GET("/api/stats", middleware.RequireRole("admin"), h.GetStats)
}

// ListNews returns published news, newest first
// @Summary      List published news
// @Description  Returns summarized, published news items, optionally filtered by category
// @Tags         news
// @Produce      json
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (default 10)"
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  response.Response{data=[]service.NewsItemResponse}
// @Router       /api/news [get]
func (h *NewsHandler) ListNews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > pagination.MaxLimit {
		limit = 10
	}

	items, total, err := h.newsService.GetPublished(c.Request.Context(), page, limit, c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"news":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	}))
}

// ListRuns returns the ingestion run history
// @Summary      List ingestion runs
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=[]service.IngestionRunResponse}
// @Failure      401    {object}  response.Response
// @Router       /api/news/runs [get]
func (h *NewsHandler) ListRuns(c *gin.Context) {
	params := pagination.Parse(c)

	runs, total, err := h.newsService.GetRuns(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"runs":  runs,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// GetStats returns dashboard counters
// @Summary      Dashboard statistics
// @Description  Lead counts, published news count, simulation count and the latest ingestion run
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.DashboardStats}
// @Failure      401  {object}  response.Response
// @Router       /api/stats [get]
func (h *NewsHandler) GetStats(c *gin.Context) {
	stats, err := h.newsService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
