package handler

import (
	"net/http"

	"reforma-backend/internal/service"
	"reforma-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CalculatorHandler struct {
	calculatorService service.CalculatorService
	creditService     service.CreditService
}

// NewCalculatorHandler sets up the routing dependencies for the calculator endpoints
func NewCalculatorHandler(calculatorService service.CalculatorService, creditService service.CreditService) *CalculatorHandler {
	return &CalculatorHandler{
		calculatorService: calculatorService,
		creditService:     creditService,
	}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *CalculatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	calc := router.Group("/api/calculator")
	{
		calc.POST("/impact", h.CalculateImpact)
		calc.POST("/credits", h.SimulateCredits)
		calc.GET("/categories", h.GetCategories)
	}
}

// CalculateImpact compares the current tax burden with the reform burden
// @Summary      Calculate reform impact
// @Description  Computes legacy vs reform tax load, classification and the 2026-2033 transition schedule for the given revenue, costs, regime and CNAE
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ImpactRequest  true  "Impact Simulation Payload"
// @Success      200      {object}  response.Response{data=service.ImpactResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/calculator/impact [post]
func (h *CalculatorHandler) CalculateImpact(c *gin.Context) {
	var req service.ImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calculatorService.CalculateImpact(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// SimulateCredits estimates recoverable credits under the reform
// @Summary      Simulate tax credits
// @Description  Derives creditable amounts per expense category and compares the reform debit against the legacy regime
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreditSimulationRequest  true  "Credit Simulation Payload"
// @Success      200      {object}  response.Response{data=service.CreditSimulationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/calculator/credits [post]
func (h *CalculatorHandler) SimulateCredits(c *gin.Context) {
	var req service.CreditSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.creditService.Simulate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetCategories lists the expense categories accepted by the credit simulator
// @Summary      List expense categories
// @Tags         calculator
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ExpenseCategoryResponse}
// @Router       /api/calculator/categories [get]
func (h *CalculatorHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.creditService.Categories()))
}
