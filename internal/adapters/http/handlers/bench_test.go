package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/printologia/printshop/internal/ports"
)

type staticChecker struct{ name string }

func (s staticChecker) Name() string                { return s.name }
func (s staticChecker) Check(context.Context) error { return nil }

func benchmarkRequest(b *testing.B, router http.Handler, newReq func() *http.Request) {
	b.Helper()
	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newReq())

		if w.Code != http.StatusOK {
			b.Fatalf("status %d: %s", w.Code, w.Body.String())
		}
	}
}

func BenchmarkQuoteHandler_CalculateQuote(b *testing.B) {
	router := newQuoteRouter()

	benchmarkRequest(b, router, func() *http.Request {
		return httptest.NewRequest(http.MethodGet, "/api/v1/quotes/calculate?width=160&height=700&material=vinyl", http.NoBody)
	})
}

func BenchmarkQuoteHandler_CalculateQuoteJSON(b *testing.B) {
	router := newQuoteRouter()
	const body = `{"width":160,"height":360,"material":"canvas"}`

	benchmarkRequest(b, router, func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/calculate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		return req
	})
}

// Readiness sits on the probe path and runs every registered check.
func BenchmarkHealthHandler_Readiness(b *testing.B) {
	registry := ports.NewHealthRegistry()
	_ = registry.Register(staticChecker{name: "sqlite"})
	_ = registry.Register(staticChecker{name: "resend"})

	router := gin.New()
	NewHealthHandler(registry, NewBuildInfo("1.0.0", "abc123", "2026-01-01T00:00:00Z")).RegisterHealthRoutesOnEngine(router)

	benchmarkRequest(b, router, func() *http.Request {
		return httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)
	})
}
