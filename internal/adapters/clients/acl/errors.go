package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/printologia/printshop/internal/adapters/clients"
	"github.com/printologia/printshop/internal/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrorResponse is a provider error body. Both the flat shape
// {"name","message"} and the nested {"error":{"code","message"}} are
// understood.
type ErrorResponse struct {
	Name    string      `json:"name,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail is the nested form of ErrorResponse.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Code returns the provider's error code.
func (e *ErrorResponse) Code() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Name
}

// Text returns the provider's error message.
func (e *ErrorResponse) Text() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error body. It returns nil when the body is
// missing, malformed or carries neither a code nor a message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var resp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&resp); err != nil {
		return nil
	}

	if resp.Code() == "" && resp.Text() == "" {
		return nil
	}

	return &resp
}

// MapHTTPError converts a failed call into a domain error. clientErr takes
// precedence; otherwise resp must carry a status of 400 or above. A 2xx
// response maps to nil.
func MapHTTPError(resp *http.Response, clientErr error, service, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, service, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(service, "no response received")
	}

	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	message := fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)

	if parsed := ParseErrorResponse(resp.Body); parsed != nil && parsed.Text() != "" {
		message = parsed.Text()
	}

	switch status := resp.StatusCode; {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return domain.NewValidationError("", message)
	case status == http.StatusConflict:
		return domain.NewConflictError(service, message)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.NewUnavailableError(service, "credentials rejected: "+message)
	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(service, "rate limit exceeded")
	default:
		return domain.NewUnavailableError(service, message)
	}
}

func mapClientError(err error, service, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(service, "circuit breaker open during "+operation)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return domain.NewUnavailableError(service, fmt.Sprintf("%s failed: %v", operation, err))
	}
}
