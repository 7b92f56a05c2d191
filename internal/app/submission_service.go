package app

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/ports"
)

// SubmissionService delivers contact messages and quote requests to the shop
// by e-mail and archives each delivered submission.
type SubmissionService struct {
	notifier    ports.Notifier
	submissions ports.SubmissionRepository
	quotes      *QuoteService
	recipients  []string
	executor    *Executor
	logger      *slog.Logger
	now         func() time.Time
}

// SubmissionServiceConfig contains configuration for the submission service.
type SubmissionServiceConfig struct {
	Notifier    ports.Notifier
	Submissions ports.SubmissionRepository
	Quotes      *QuoteService

	// Recipients receive every notification.
	Recipients []string

	Logger *slog.Logger
	Clock  func() time.Time
}

// NewSubmissionService creates a submission service. It panics when a
// dependency is missing or no recipient is configured.
func NewSubmissionService(cfg SubmissionServiceConfig) *SubmissionService {
	switch {
	case cfg.Notifier == nil:
		panic("app: submission service requires a notifier")
	case cfg.Submissions == nil:
		panic("app: submission service requires a submission repository")
	case cfg.Quotes == nil:
		panic("app: submission service requires a quote service")
	case len(cfg.Recipients) == 0:
		panic("app: submission service requires at least one recipient")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &SubmissionService{
		notifier:    cfg.Notifier,
		submissions: cfg.Submissions,
		quotes:      cfg.Quotes,
		recipients:  slices.Clone(cfg.Recipients),
		executor:    NewExecutor(logger),
		logger:      logger,
		now:         clock,
	}
}

// delivery is what the perform step hands to verify.
type delivery struct {
	messageID string
	quote     *domain.Quote
}

// SubmitContact e-mails a contact message to the shop.
func (s *SubmissionService) SubmitContact(
	ctx context.Context,
	msg domain.ContactMessage,
) (domain.SubmissionReceipt, error) {
	op := Operation[domain.ContactMessage, delivery, *domain.Submission, domain.SubmissionReceipt]{
		Name: "submit_contact",
		Validate: func(_ context.Context, msg domain.ContactMessage) error {
			return msg.Validate()
		},
		Perform: func(ctx context.Context, msg domain.ContactMessage) (delivery, error) {
			html, text, err := render("contact", emailData{
				Name:    msg.Name,
				Email:   msg.Email,
				Phone:   msg.Phone,
				Message: msg.Message,
			})
			if err != nil {
				return delivery{}, err
			}

			id, err := s.notifier.Send(ctx, s.notification("Nuevo mensaje de contacto - "+msg.Name, msg.Email, html, text))
			if err != nil {
				return delivery{}, err
			}

			return delivery{messageID: id}, nil
		},
		Verify: func(_ context.Context, msg domain.ContactMessage, d delivery) (*domain.Submission, error) {
			return s.verify(d, domain.Submission{
				Kind:    domain.SubmissionContact,
				Name:    msg.Name,
				Email:   msg.Email,
				Phone:   msg.Phone,
				Message: msg.Message,
			})
		},
		Archive: archive[domain.ContactMessage](s.submissions),
		Respond: respond[domain.ContactMessage],
	}

	return Execute(ctx, s.executor, op, normalizeContact(msg))
}

// SubmitQuoteRequest recomputes the quote from the request's dimensions and
// e-mails it to the shop. An incomplete quote is rejected.
func (s *SubmissionService) SubmitQuoteRequest(
	ctx context.Context,
	req domain.QuoteRequest,
) (domain.SubmissionReceipt, error) {
	op := Operation[domain.QuoteRequest, delivery, *domain.Submission, domain.SubmissionReceipt]{
		Name: "submit_quote_request",
		Validate: func(ctx context.Context, req domain.QuoteRequest) error {
			if err := req.Validate(); err != nil {
				return err
			}

			q, err := s.quotes.CalculateQuote(ctx, req.Width, req.Height, req.Material)
			if err != nil {
				return err
			}

			if q.IsEmpty() {
				return domain.NewValidationError("dimensions", "width and height are required for a quote")
			}

			return nil
		},
		Perform: func(ctx context.Context, req domain.QuoteRequest) (delivery, error) {
			q, err := s.quotes.CalculateQuote(ctx, req.Width, req.Height, req.Material)
			if err != nil {
				return delivery{}, err
			}

			html, text, err := render("quote", emailData{
				Name:    req.Name,
				Email:   req.Email,
				Phone:   req.Phone,
				Details: req.Details,
				Quote:   newQuoteView(q),
			})
			if err != nil {
				return delivery{}, err
			}

			id, err := s.notifier.Send(ctx, s.notification("Nueva solicitud de cotización - "+req.Name, req.Email, html, text))
			if err != nil {
				return delivery{}, err
			}

			return delivery{messageID: id, quote: &q}, nil
		},
		Verify: func(_ context.Context, req domain.QuoteRequest, d delivery) (*domain.Submission, error) {
			if d.quote == nil || d.quote.IsEmpty() {
				return nil, domain.NewValidationError("dimensions", "quote was not priced")
			}

			return s.verify(d, domain.Submission{
				Kind:    domain.SubmissionQuote,
				Name:    req.Name,
				Email:   req.Email,
				Phone:   req.Phone,
				Message: req.Details,
				Quote:   d.quote,
			})
		},
		Archive: archive[domain.QuoteRequest](s.submissions),
		Respond: respond[domain.QuoteRequest],
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	return Execute(ctx, s.executor, op, req)
}

func (s *SubmissionService) notification(subject, replyTo, html, text string) domain.Notification {
	return domain.Notification{
		To:      slices.Clone(s.recipients),
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}
}

// verify requires a provider message id before anything is stored.
func (s *SubmissionService) verify(d delivery, sub domain.Submission) (*domain.Submission, error) {
	if strings.TrimSpace(d.messageID) == "" {
		return nil, domain.NewUnavailableError("notifier", "no message id returned")
	}

	sub.ID = uuid.NewString()
	sub.NotificationID = d.messageID
	sub.CreatedAt = s.now().UTC()

	return &sub, nil
}

func archive[I any](repo ports.SubmissionRepository) func(context.Context, I, *domain.Submission) error {
	return func(ctx context.Context, _ I, sub *domain.Submission) error {
		return repo.Save(ctx, sub)
	}
}

func respond[I any](_ context.Context, _ I, sub *domain.Submission) (domain.SubmissionReceipt, error) {
	return sub.Receipt(), nil
}

func normalizeContact(msg domain.ContactMessage) domain.ContactMessage {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)

	return msg
}

// GetSubmission returns an archived submission by the id on its receipt.
func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	return s.submissions.Get(ctx, id)
}
