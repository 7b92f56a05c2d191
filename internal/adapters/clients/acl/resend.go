package acl

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/printologia/printshop/internal/adapters/clients"
	"github.com/printologia/printshop/internal/domain"
	"github.com/printologia/printshop/internal/platform/logging"
	"github.com/printologia/printshop/internal/ports"
)

var (
	_ ports.Notifier        = (*ResendNotifier)(nil)
	_ ports.OptionalChecker = (*ResendNotifier)(nil)
	_ ports.Notifier        = (*LogNotifier)(nil)
)

// ResendNotifier sends e-mail through the Resend API.
type ResendNotifier struct {
	BaseAdapter
	from string
}

// NewResendNotifier returns a notifier that sends from the given address.
// The client's BaseURL should point at the API root.
func NewResendNotifier(client *clients.Client, from string) *ResendNotifier {
	return &ResendNotifier{BaseAdapter: NewBaseAdapter(client), from: from}
}

// BearerAuth returns an AuthFunc for clients.Config.
func BearerAuth(apiKey string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+apiKey)
	}
}

type resendEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendSent struct {
	ID string `json:"id"`
}

// Send posts the message and returns Resend's e-mail id.
func (n *ResendNotifier) Send(ctx context.Context, msg domain.Notification) (string, error) {
	if len(msg.To) == 0 {
		return "", domain.NewValidationError("to", "at least one recipient is required")
	}

	if err := ValidateRequired(msg.Subject, "subject"); err != nil {
		return "", err
	}

	body, err := n.PostJSON(ctx, "/emails", resendEmail{
		From:    n.from,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}, "send email")
	if err != nil {
		return "", err
	}

	sent, err := DecodeResponse[resendSent](body)
	if err != nil {
		return "", domain.NewUnavailableError(n.ServiceName(), err.Error())
	}

	return sent.ID, nil
}

// Name implements ports.HealthChecker.
func (n *ResendNotifier) Name() string {
	return n.ServiceName()
}

// Check reports the provider unavailable while the circuit breaker is open.
// Resend has no unauthenticated ping and sending keys cannot read account
// resources, so recent traffic is the only signal.
func (n *ResendNotifier) Check(context.Context) error {
	if n.Client().CircuitState() == clients.StateOpen {
		return domain.NewUnavailableError(n.ServiceName(), "circuit breaker open")
	}

	return nil
}

// Optional implements ports.OptionalChecker.
func (n *ResendNotifier) Optional() bool {
	return true
}

// LogNotifier writes messages to the log instead of sending them. It is
// used when no provider API key is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a LogNotifier; a nil logger means slog.Default.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogNotifier{logger: logger}
}

// Send logs the envelope, and the text body at debug level, and returns a
// random id. The reply-to address is logged under "email" so it is redacted.
func (n *LogNotifier) Send(ctx context.Context, msg domain.Notification) (string, error) {
	id := uuid.NewString()

	logger := logging.FromContextOr(ctx, n.logger).With(slog.String("message_id", id))

	logger.Info("email not sent, no provider configured",
		slog.Any("to", msg.To),
		slog.String("email", msg.ReplyTo),
		slog.String("subject", msg.Subject),
	)
	logger.Debug("email body", slog.String("text", msg.Text))

	return id, nil
}
