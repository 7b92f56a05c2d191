package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printologia/printshop/internal/adapters/http/dto"
	"github.com/printologia/printshop/internal/app"
)

// QuoteHandler exposes the quote engine and the price table.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// CalculateQuote handles GET /api/v1/quotes/calculate.
// Missing or zero dimensions return an empty quote rather than an error.
//
// @Summary Calculate a quote
// @Description Prices a print job. Dimensions are in centimeters and are clamped to the printable range.
// @Tags quotes
// @Produce json
// @Param width query number false "Width in cm"
// @Param height query number false "Height in cm"
// @Param material query string true "vinyl or canvas (vinil and lona are accepted)"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/calculate [get]
func (h *QuoteHandler) CalculateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, req)
}

// CalculateQuoteJSON handles POST /api/v1/quotes/calculate.
//
// @Summary Calculate a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Job to price"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/calculate [post]
func (h *QuoteHandler) CalculateQuoteJSON(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, req)
}

func (h *QuoteHandler) respond(c *gin.Context, req dto.QuoteRequest) {
	width, height, material := req.Dimensions()

	quote, err := h.service.CalculateQuote(c.Request.Context(), width, height, material)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// GetPricing handles GET /api/v1/pricing.
//
// @Summary Price table
// @Description Per-m² prices, bulk discount threshold, tax rate and dimension limits.
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.PricingResponse
// @Router /api/v1/pricing [get]
func (h *QuoteHandler) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewPricingResponse(h.service.PriceTable()))
}

// RegisterQuoteRoutes registers the quote routes on rg.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes/calculate", h.CalculateQuote)
	rg.POST("/quotes/calculate", h.CalculateQuoteJSON)
	rg.GET("/pricing", h.GetPricing)
}
