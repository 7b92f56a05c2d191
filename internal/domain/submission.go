package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// SubmissionKind identifies the form a submission came from.
type SubmissionKind string

const (
	SubmissionContact SubmissionKind = "contact"
	SubmissionQuote   SubmissionKind = "quote"
)

// Submission field limits.
const (
	MinNameLength    = 2
	MaxNameLength    = 100
	MinMessageLength = 10
	MaxMessageLength = 1000
	MinPhoneLength   = 10
	MaxPhoneLength   = 20
	MaxDetailsLength = 2000
)

// ContactMessage is a general enquiry from the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Validate checks field constraints. The first violation is returned.
func (m ContactMessage) Validate() error {
	if err := validateName(m.Name); err != nil {
		return err
	}

	if err := validateEmail(m.Email); err != nil {
		return err
	}

	n := utf8.RuneCountInString(strings.TrimSpace(m.Message))
	if n < MinMessageLength || n > MaxMessageLength {
		return NewValidationError("message", "must be between 10 and 1000 characters")
	}

	return nil
}

// QuoteRequest asks the shop to follow up on a priced print job.
// The quote is always recomputed server-side from the dimensions.
type QuoteRequest struct {
	Name     string
	Email    string
	Phone    string
	Details  string
	Width    Dimension
	Height   Dimension
	Material Material
}

// Validate checks the contact fields. Dimensions are checked by the quote
// engine.
func (r QuoteRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}

	if err := validateEmail(r.Email); err != nil {
		return err
	}

	n := utf8.RuneCountInString(strings.TrimSpace(r.Phone))
	if n < MinPhoneLength || n > MaxPhoneLength {
		return NewValidationError("phone", "must be between 10 and 20 characters")
	}

	if utf8.RuneCountInString(r.Details) > MaxDetailsLength {
		return NewValidationError("details", "must be at most 2000 characters")
	}

	if !r.Material.Valid() {
		return NewInvalidMaterialError(string(r.Material))
	}

	return nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinNameLength || n > MaxNameLength {
		return NewValidationError("name", "must be between 2 and 100 characters")
	}

	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return NewValidationError("email", "must be a valid e-mail address")
	}

	return nil
}

// Submission is the archived record of a delivered form.
type Submission struct {
	ID      string
	Kind    SubmissionKind
	Name    string
	Email   string
	Phone   string
	Message string

	// Quote is set for quote requests only.
	Quote *Quote

	// NotificationID is the e-mail provider's message id.
	NotificationID string
	CreatedAt      time.Time
}

// Receipt is what the customer gets back once the submission is stored.
func (s *Submission) Receipt() SubmissionReceipt {
	return SubmissionReceipt{
		ID:             s.ID,
		Kind:           s.Kind,
		NotificationID: s.NotificationID,
		Quote:          s.Quote,
		CreatedAt:      s.CreatedAt,
	}
}

// SubmissionReceipt is returned to the customer once a submission is delivered.
type SubmissionReceipt struct {
	ID             string
	Kind           SubmissionKind
	NotificationID string
	Quote          *Quote
	CreatedAt      time.Time
}

// Notification is an e-mail ready to hand to a notifier.
type Notification struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}
