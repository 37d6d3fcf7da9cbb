package handler

import (
	"net/http"

	"reforma-backend/internal/middleware"
	"reforma-backend/internal/service"
	"reforma-backend/pkg/pagination"
	"reforma-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadService service.LeadService
	limiter     *middleware.RateLimiter
}

func NewLeadHandler(leadService service.LeadService, limiter *middleware.RateLimiter) *LeadHandler {
	return &LeadHandler{leadService: leadService, limiter: limiter}
}

func (h *LeadHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public capture endpoint, rate-limited per client IP
	router.POST("/api/leads", middleware.RateLimit(h.limiter), h.Capture)

	// Advisory-team listing
	router.GET("/api/leads", middleware.RequireRole("admin"), h.ListLeads)
}

// Capture stores a contact request from the landing page
// @Summary      Capture a lead
// @Description  Stores name, email, phone, company and tax id from the landing page form. The tax id is normalized to digits.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CaptureLeadRequest  true  "Lead Payload"
// @Success      201      {object}  response.Response{data=service.LeadResponse}
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /api/leads [post]
func (h *LeadHandler) Capture(c *gin.Context) {
	var req service.CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	lead, err := h.leadService.Capture(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lead))
}

// ListLeads returns captured leads, newest first
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /api/leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	params := pagination.Parse(c)

	leads, total, err := h.leadService.GetLeads(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"leads": leads,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}
