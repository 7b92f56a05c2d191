package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printologia/printshop/internal/adapters/http/dto"
	"github.com/printologia/printshop/internal/app"
)

// SubmissionHandler accepts contact messages and quote requests.
type SubmissionHandler struct {
	service *app.SubmissionService
}

// NewSubmissionHandler creates a submission handler.
func NewSubmissionHandler(service *app.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// SubmitContact handles POST /api/v1/contact.
//
// @Summary Send a contact message
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact form"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/contact [post]
func (h *SubmissionHandler) SubmitContact(c *gin.Context) {
	var req dto.ContactRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	receipt, err := h.service.SubmitContact(c.Request.Context(), req.ContactMessage())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewReceiptResponse(receipt))
}

// SubmitQuoteRequest handles POST /api/v1/quote-requests. The quote is
// recalculated from the dimensions and material.
//
// @Summary Request a quote follow-up
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body dto.QuoteSubmissionRequest true "Quote request"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quote-requests [post]
func (h *SubmissionHandler) SubmitQuoteRequest(c *gin.Context) {
	var req dto.QuoteSubmissionRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	receipt, err := h.service.SubmitQuoteRequest(c.Request.Context(), req.QuoteRequest())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewReceiptResponse(receipt))
}

// GetSubmission handles GET /api/v1/admin/submissions/:id.
//
// @Summary Get an archived submission
// @Tags admin
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/admin/submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	var p dto.SubmissionIDParam
	if err := dto.BindURIAndValidate(c, &p); err != nil {
		dto.HandleError(c, err)
		return
	}

	sub, err := h.service.GetSubmission(c.Request.Context(), p.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmissionResponse(sub))
}

// RegisterPublicRoutes registers the submission endpoints under rg.
func (h *SubmissionHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.SubmitContact)
	rg.POST("/quote-requests", h.SubmitQuoteRequest)
}

// RegisterAdminRoutes registers the submission lookup under rg.
func (h *SubmissionHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions/:id", h.GetSubmission)
}
