package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printologia/printshop/internal/adapters/http/dto"
	"github.com/printologia/printshop/internal/platform/config"
	"github.com/printologia/printshop/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())

	return resp.Error.Code
}

func TestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: "", keep: false},
		{name: "propagated", incoming: "req-7f3a", keep: true},
		{name: "replaced when too long", incoming: strings.Repeat("a", maxIDLength+1), keep: false},
		{name: "replaced when not printable", incoming: "req 1\x00", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				ginRequestID, ctxRequestID         string
				ginCorrelationID, ctxCorrelationID string
			)

			router := gin.New()
			router.Use(RequestID(), CorrelationID())
			router.GET("/", func(c *gin.Context) {
				ginRequestID = GetRequestID(c)
				ctxRequestID = RequestIDFromContext(c.Request.Context())
				ginCorrelationID = GetCorrelationID(c)
				ctxCorrelationID = CorrelationIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
				req.Header.Set(HeaderCorrelationID, tt.incoming)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, w.Header().Get(HeaderRequestID), ginRequestID)
			assert.Equal(t, ginRequestID, ctxRequestID)
			assert.Equal(t, w.Header().Get(HeaderCorrelationID), ginCorrelationID)
			assert.Equal(t, ginCorrelationID, ctxCorrelationID)
			assert.NotEmpty(t, ginRequestID)
			assert.NotEmpty(t, ginCorrelationID)

			if tt.keep {
				assert.Equal(t, tt.incoming, ginRequestID)
				assert.Equal(t, tt.incoming, ginCorrelationID)
			} else {
				assert.NotEqual(t, tt.incoming, ginRequestID)
				assert.Len(t, ginRequestID, 36)
			}
		})
	}
}

func TestIDMiddleware_EnrichesLogger(t *testing.T) {
	var buf bytes.Buffer

	router := gin.New()
	router.Use(func(c *gin.Context) {
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	})
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("handled")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}

func TestContextIDs(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "corr-1", CorrelationIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CorrelationIDFromContext(nil)) //nolint:staticcheck // nil context is handled
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(discardLogger()))
	router.GET("/panic", func(*gin.Context) { panic("template exploded") })
	router.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusOK, "half")
		panic("after write")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternal, errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "template exploded")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "half", w.Body.String())
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := gin.New()
	router.Use(Logging(logger))
	router.GET("/api/v1/blog/posts/:slug", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/-/live", nil))
	assert.Empty(t, buf.String(), "operational endpoints are not logged")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/blog/posts/lonas", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/api/v1/blog/posts/:slug", entry["route"])
	assert.Equal(t, "/api/v1/blog/posts/lonas", entry["path"])
	assert.InDelta(t, 404, entry["status"], 0)
}

func TestTimeout(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(20 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	router.GET("/slow-handled", func(c *gin.Context) {
		<-c.Request.Context().Done()
		dto.HandleError(c, c.Request.Context().Err())
	})
	router.GET("/fast", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		assert.True(t, hasDeadline)
		c.Status(http.StatusNoContent)
	})

	for _, path := range []string{"/slow", "/slow-handled"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusGatewayTimeout, w.Code, path)
		assert.Equal(t, dto.ErrorCodeTimeout, errorCode(t, w), path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestExtractClaims(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.AuthConfig
		headers map[string]string
		want    Claims
	}{
		{
			name: "default headers",
			headers: map[string]string{
				"X-User-ID":    "u-1",
				"X-User-Roles": "editor, admin ,,",
				"X-User-Email": "ops@printologia.com.mx",
			},
			want: Claims{Subject: "u-1", Email: "ops@printologia.com.mx", Roles: []string{"editor", "admin"}},
		},
		{
			name: "configured headers",
			cfg:  &config.AuthConfig{SubjectHeader: "X-Sub", RolesHeader: "X-Groups"},
			headers: map[string]string{
				"X-Sub":     "u-2",
				"X-Groups":  "admin",
				"X-User-ID": "ignored",
			},
			want: Claims{Subject: "u-2", Roles: []string{"admin"}},
		},
		{
			name: "nothing",
			want: Claims{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, *ExtractClaims(c, tt.cfg))
		})
	}
}

func TestRequireAuthAndRole(t *testing.T) {
	cfg := &config.AuthConfig{
		Enabled:       true,
		AdminRole:     "admin",
		RolesHeader:   "X-User-Roles",
		SubjectHeader: "X-User-ID",
	}

	router := gin.New()
	router.Use(RequireAuth(cfg), RequireRole(cfg, cfg.AdminRole))
	router.GET("/admin/posts", func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Subject)
	})

	tests := []struct {
		name     string
		subject  string
		roles    string
		status   int
		wantCode string
	}{
		{name: "anonymous", status: http.StatusUnauthorized, wantCode: dto.ErrorCodeUnauthorized},
		{name: "wrong role", subject: "u-1", roles: "editor", status: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "admin", subject: "u-1", roles: "editor,admin", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
			if tt.subject != "" {
				req.Header.Set("X-User-ID", tt.subject)
			}

			if tt.roles != "" {
				req.Header.Set("X-User-Roles", tt.roles)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
			} else {
				assert.Equal(t, tt.subject, w.Body.String())
			}
		})
	}
}
