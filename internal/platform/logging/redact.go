package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// Values redacted wherever they appear, whatever the attribute is called.
var secretValues = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`), // JWT
	regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`),                          // Authorization header values
	regexp.MustCompile(`^re_[A-Za-z0-9_]{8,}$`),                              // Resend API key
}

// Attribute names redacted regardless of value. The customer's e-mail and
// phone arrive with every submission and are kept out of the logs too.
var secretFields = []string{
	"password", "secret", "token", "auth", "authorization", "bearer",
	"apiKey", "apikey", "api_key",
	"accessToken", "access_token", "refreshToken", "refresh_token",
	"credential", "credentials", "cookie", "session",
	"privateKey", "private_key", "secretKey", "secret_key", "secret_access_key",
	"dsn",
	"email", "phone",
}

// DefaultRedactOptions returns the masq options applied by every logger
// built by New.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(secretFields)+len(secretValues)+2)

	for _, name := range secretFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	opts = append(opts, masq.WithFieldPrefix("secret"), masq.WithFieldPrefix("private"))

	for _, re := range secretValues {
		opts = append(opts, masq.WithRegex(re))
	}

	return opts
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts with
// DefaultRedactOptions plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
