package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/printologia/printshop/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single request.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key of the request id.
	ContextKeyRequestID = "request_id"
)

// RequestID propagates X-Request-ID, generating one when the client sent
// none. The id is echoed in the response and added to the request logger.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderRequestID,
		contextKey: ContextKeyRequestID,
		enrichers:  []func(ctx context.Context, id string) context.Context{ContextWithRequestID, logging.WithRequestID},
	})
}

// GetRequestID returns the request id, or "".
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}
