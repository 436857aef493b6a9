package http

import (
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

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/dto"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/middleware"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/views"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/memstore"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/spreadsheet"
	"github.com/jsamuelsen/wedding-rsvp/internal/app"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/config"
	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig(port int, maxRequestSize int64) *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           port,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: maxRequestSize,
	}
}

// newTestRouter wires the full router over an in-memory store.
func newTestRouter(t *testing.T, hook middleware.PanicHook) *gin.Engine {
	t.Helper()

	store := memstore.New()
	renderer := views.MustNew()

	sessionStore, err := handlers.NewSessionStore(handlers.SessionStoreConfig{
		Dir:    t.TempDir(),
		Secret: "router-test-secret-0123456789abcdef",
		MaxAge: time.Hour,
	})
	require.NoError(t, err)
	guests := app.NewGuestService(app.GuestServiceConfig{Store: store, Logger: discardLogger()})
	rsvp := app.NewRSVPService(app.RSVPServiceConfig{Store: store, Logger: discardLogger()})

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		ServiceName:   "wedding-rsvp-test",
		HealthHandler: handlers.NewHealthHandler(registry, handlers.BuildInfo{Version: "test"}),
		RSVPHandler: handlers.NewRSVPHandler(handlers.RSVPHandlerConfig{
			Service:  rsvp,
			Sessions: sessionStore,
			Views:    renderer,
			Event:    views.Event{Couple: "Полина & Виктор"},
		}),
		GuestsHandler: handlers.NewGuestsHandler(handlers.GuestsHandlerConfig{
			Guests: guests,
			Export: app.NewExportService(app.ExportServiceConfig{
				Encoder: spreadsheet.NewExcel(),
				Logger:  discardLogger(),
			}),
			Views: renderer,
		}),
		APIHandler: handlers.NewGuestAPIHandler(guests, rsvp),
		Timeout:    DefaultRequestTimeout,
		PanicHook:  hook,
	})

	return engine
}

func serve(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	engine.ServeHTTP(w, req)

	return w
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := newTestRouter(t, nil)

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /",
		"POST /rsvp",
		"GET /guests",
		"GET /guests/export",
		"GET /api/v1/guests",
		"POST /api/v1/guests",
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
	} {
		assert.True(t, routes[expected], "missing route: %s", expected)
	}
}

func TestSetupRouter_SubmitThenList(t *testing.T) {
	engine := newTestRouter(t, nil)

	w := serve(engine, http.MethodPost, "/api/v1/guests", `{"guestName":"Anna","foodPreferences":["nomeat"],"drinkPreferences":["wine"]}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = serve(engine, http.MethodGet, "/api/v1/guests", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.GuestListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Anna", list.Guests[0].GuestName)
	assert.NotNil(t, list.Guests[0].CreatedAt)

	page := serve(engine, http.MethodGet, "/guests", "")
	assert.Contains(t, page.Body.String(), "Anna")
	assert.Contains(t, page.Body.String(), "Скачать Excel")

	export := serve(engine, http.MethodGet, "/guests/export", "")
	assert.Equal(t, http.StatusOK, export.Code)
	assert.Equal(t, spreadsheet.ContentTypeXLSX, export.Header().Get("Content-Type"))
}

func TestSetupRouter_FormPage(t *testing.T) {
	w := serve(newTestRouter(t, nil), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Отправить предпочтения")
}

func TestSetupRouter_Health(t *testing.T) {
	engine := newTestRouter(t, nil)

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/-/live", "").Code)

	ready := serve(engine, http.MethodGet, "/-/ready", "")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), "guests-memory")
}

func TestSetupRouter_RecoversPanics(t *testing.T) {
	var recovered any

	engine := newTestRouter(t, func(err any, _ []byte) { recovered = err })
	engine.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := serve(engine, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrorCodeInternal)
	assert.Equal(t, "kaboom", recovered)
}

func TestSetupRouter_NilHandlers(t *testing.T) {
	require.NotPanics(t, func() {
		SetupRouter(gin.New(), RouterConfig{ServiceName: "test"})
	})
}

func TestSetupMinimalRouter(t *testing.T) {
	engine := gin.New()
	SetupMinimalRouter(engine, handlers.NewHealthHandler(nil, handlers.BuildInfo{Version: "1.0.0"}))

	w := serve(engine, http.MethodGet, "/-/live", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupMinimalRouterWithNilHandler(t *testing.T) {
	require.NotPanics(t, func() {
		SetupMinimalRouter(gin.New(), nil)
	})
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig(8080, 1<<20)
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Engine())
	assert.Equal(t, cfg, srv.Config())
	assert.Equal(t, logger, srv.logger)
	assert.Equal(t, readHeaderTimeout, srv.httpServer.ReadHeaderTimeout)
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		port         int
		expectedAddr string
	}{
		{"localhost", "localhost", 8080, "localhost:8080"},
		{"all interfaces", "0.0.0.0", 3000, "0.0.0.0:3000"},
		{"ipv6 loopback", "::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testServerConfig(tt.port, 1<<20)
			cfg.Host = tt.host

			assert.Equal(t, tt.expectedAddr, New(cfg, discardLogger()).Addr())
		})
	}
}

func TestServerStartShutdown(t *testing.T) {
	srv := New(testServerConfig(0, 1<<20), discardLogger())

	errCh := srv.Start()

	time.Sleep(50 * time.Millisecond)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case _, ok := <-errCh:
		assert.False(t, ok, "error channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestMaxBodySizeMiddleware(t *testing.T) {
	srv := New(testServerConfig(0, 16), discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.String(http.StatusOK, "%d", len(body))
	})

	small := serve(srv.Engine(), http.MethodPost, "/echo", `{"a":1}`)
	assert.Equal(t, http.StatusOK, small.Code)

	large := serve(srv.Engine(), http.MethodPost, "/echo", `{"guestName":"`+strings.Repeat("x", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, large.Code)
}
