package dto

import (
	"time"

	"github.com/printologia/printshop/internal/domain"
)

// ContactRequest is the contact form.
type ContactRequest struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// ContactMessage converts the request.
func (r ContactRequest) ContactMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Message: r.Message,
	}
}

// QuoteSubmissionRequest asks the shop to follow up on a quote. Totals are
// never accepted from the client.
type QuoteSubmissionRequest struct {
	Name     string  `json:"name"     validate:"required,min=2,max=100"`
	Email    string  `json:"email"    validate:"required,email"`
	Phone    string  `json:"phone"    validate:"required,min=10,max=20"`
	Details  string  `json:"details"  validate:"omitempty,max=2000"`
	Width    float64 `json:"width"    validate:"required"`
	Height   float64 `json:"height"   validate:"required"`
	Material string  `json:"material" validate:"required,material"`
}

// QuoteRequest converts the request.
func (r QuoteSubmissionRequest) QuoteRequest() domain.QuoteRequest {
	material, _ := domain.ParseMaterial(r.Material)

	return domain.QuoteRequest{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Details:  r.Details,
		Width:    domain.Value(r.Width),
		Height:   domain.Value(r.Height),
		Material: material,
	}
}

// ReceiptResponse confirms a delivered submission.
type ReceiptResponse struct {
	ID             string         `json:"id"`
	Kind           string         `json:"kind"`
	NotificationID string         `json:"notificationId"`
	Quote          *QuoteResponse `json:"quote,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// NewReceiptResponse converts a receipt.
func NewReceiptResponse(r domain.SubmissionReceipt) ReceiptResponse {
	return ReceiptResponse{
		ID:             r.ID,
		Kind:           string(r.Kind),
		NotificationID: r.NotificationID,
		Quote:          quoteOrNil(r.Quote),
		CreatedAt:      r.CreatedAt,
	}
}

// SubmissionIDParam is the :id path parameter of the submission lookup.
type SubmissionIDParam struct {
	ID string `uri:"id" json:"id" validate:"required,uuid"`
}

// SubmissionResponse is an archived submission, including the customer's
// contact details. Admin only.
type SubmissionResponse struct {
	ID             string         `json:"id"`
	Kind           string         `json:"kind"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Message        string         `json:"message,omitempty"`
	Quote          *QuoteResponse `json:"quote,omitempty"`
	NotificationID string         `json:"notificationId"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// NewSubmissionResponse converts a submission.
func NewSubmissionResponse(s *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:             s.ID,
		Kind:           string(s.Kind),
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		Message:        s.Message,
		Quote:          quoteOrNil(s.Quote),
		NotificationID: s.NotificationID,
		CreatedAt:      s.CreatedAt,
	}
}

func quoteOrNil(q *domain.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}

	resp := NewQuoteResponse(*q)

	return &resp
}
