package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/middleware"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// ServiceName names the spans created by the telemetry middleware.
	ServiceName string

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// RSVPHandler serves the guest form.
	RSVPHandler *handlers.RSVPHandler

	// GuestsHandler serves the responses screen and export.
	GuestsHandler *handlers.GuestsHandler

	// APIHandler serves the JSON guest API.
	APIHandler *handlers.GuestAPIHandler

	// Timeout bounds API requests. Zero disables it.
	Timeout time.Duration

	// PanicHook is called for every recovered panic.
	PanicHook middleware.PanicHook
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips /-/ endpoints)
//  6. Timeout - API group only
//
// Route groups:
//   - /-/ (internal): health, build info and metrics
//   - / and /guests: HTML pages
//   - /api/v1/: JSON API
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.RecoveryWithHook(cfg.PanicHook),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Middleware(cfg.ServiceName),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.RSVPHandler != nil {
		cfg.RSVPHandler.RegisterRSVPRoutes(engine)
	}

	if cfg.GuestsHandler != nil {
		cfg.GuestsHandler.RegisterGuestRoutes(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.APIHandler != nil {
		cfg.APIHandler.RegisterGuestAPIRoutes(apiV1)
	}
}

// SetupMinimalRouter sets up a router with just health endpoints.
// Used by tests and when the service runs as a probe target only.
func SetupMinimalRouter(engine *gin.Engine, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
