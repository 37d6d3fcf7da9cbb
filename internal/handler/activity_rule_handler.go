package handler

import (
	"net/http"

	"reforma-backend/internal/service"
	"reforma-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivityRuleHandler struct {
	rateService service.RateService
}

func NewActivityRuleHandler(rateService service.RateService) *ActivityRuleHandler {
	return &ActivityRuleHandler{rateService: rateService}
}

func (h *ActivityRuleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/activity-rules/:code", h.GetByCode)
}

// GetByCode resolves the reform treatment for one CNAE code
// @Summary      Look up an activity rule
// @Description  Returns the activity-specific rates and editorial guidance for a CNAE code. Falls back to exact then 4-digit prefix matching.
// @Tags         activity-rules
// @Produce      json
// @Param        code  path      string  true  "CNAE code, punctuation allowed"
// @Success      200   {object}  response.Response{data=model.ActivityRule}
// @Failure      404   {object}  response.Response
// @Router       /api/activity-rules/{code} [get]
func (h *ActivityRuleHandler) GetByCode(c *gin.Context) {
	res := h.rateService.Resolve(c.Request.Context(), c.Param("code"))
	if res.Source != service.RateSourceRule {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "no activity rule for this CNAE code"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res.Rule))
}
