package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/printologia/printshop/docs" // registers the OpenAPI document

	"github.com/printologia/printshop/internal/adapters/http/dto"
	"github.com/printologia/printshop/internal/adapters/http/handlers"
	"github.com/printologia/printshop/internal/adapters/http/middleware"
	"github.com/printologia/printshop/internal/platform/config"
	"github.com/printologia/printshop/internal/platform/telemetry"
)

// DefaultRequestTimeout applies when RouterConfig.Timeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig carries everything SetupRouter wires.
type RouterConfig struct {
	Logger     *slog.Logger
	AppConfig  *config.AppConfig
	AuthConfig *config.AuthConfig

	// Timeout is the deadline of /api/v1 requests.
	Timeout time.Duration

	// Swagger serves the API docs under /swagger/.
	Swagger bool

	Health      *handlers.HealthHandler
	Quotes      *handlers.QuoteHandler
	Blog        *handlers.BlogHandler
	Submissions *handlers.SubmissionHandler
}

// SetupRouter installs middleware and routes on engine.
//
// Middleware runs in this order: recovery, request id, correlation id,
// tracing and metrics, logging. /api/v1 adds the request timeout and
// /api/v1/admin the gateway identity checks when auth is enabled.
//
// Routes:
//   - /-/ operational endpoints (health, build, metrics)
//   - /api/v1 quotes, pricing, blog, contact and quote requests
//   - /api/v1/admin post management and submission lookup
//   - /swagger/ API docs, when enabled
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	engine.Use(middleware.Recovery(cfg.Logger), middleware.RequestID(), middleware.CorrelationID())
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(middleware.Logging(cfg.Logger))

	engine.NoRoute(func(c *gin.Context) {
		dto.AbortWithCode(c, dto.ErrorCodeNotFound, "route "+c.Request.URL.Path+" not found")
	})
	engine.NoMethod(func(c *gin.Context) {
		dto.AbortWithCode(c, dto.ErrorCodeMethodNotAllowed, "method "+c.Request.Method+" not allowed")
	})

	if cfg.Health != nil {
		cfg.Health.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api/v1", middleware.Timeout(timeout))

	if cfg.Quotes != nil {
		cfg.Quotes.RegisterQuoteRoutes(api)
	}

	if cfg.Blog != nil {
		cfg.Blog.RegisterPublicRoutes(api)
	}

	if cfg.Submissions != nil {
		cfg.Submissions.RegisterPublicRoutes(api)
	}

	admin := api.Group("/admin")
	if cfg.AuthConfig != nil && cfg.AuthConfig.Enabled {
		admin.Use(
			middleware.RequireAuth(cfg.AuthConfig),
			middleware.RequireRole(cfg.AuthConfig, cfg.AuthConfig.AdminRole),
		)
	}

	if cfg.Blog != nil {
		cfg.Blog.RegisterAdminRoutes(admin)
	}

	if cfg.Submissions != nil {
		cfg.Submissions.RegisterAdminRoutes(admin)
	}
}
