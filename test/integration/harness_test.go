//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/wedding-rsvp/internal/adapters/http"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/middleware"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/views"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/memstore"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/spreadsheet"
	"github.com/jsamuelsen/wedding-rsvp/internal/app"
	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/config"
	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
)

// fixedSubmitTime is the createdAt the fake guest function stamps on every row.
var fixedSubmitTime = time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)

// functionTimestamp is how the hosted function writes createdAt: no zone.
const functionTimestamp = "2006-01-02T15:04:05.999999"

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// guestFunction emulates the hosted guest function: one URL, GET lists and
// POST stores. It keeps rows in a memstore.
type guestFunction struct {
	store *memstore.Store
	down  atomic.Bool
	calls atomic.Int32

	mu      sync.Mutex
	headers http.Header
}

func newGuestFunction() *guestFunction {
	return &guestFunction{
		store: memstore.New(memstore.WithClock(func() time.Time { return fixedSubmitTime })),
	}
}

type functionRow struct {
	ID               int64    `json:"id"`
	GuestName        string   `json:"guestName"`
	FoodPreferences  []string `json:"foodPreferences"`
	AllergyText      string   `json:"allergyText"`
	DrinkPreferences []string `json:"drinkPreferences"`
	CreatedAt        string   `json:"createdAt"`
}

type functionSubmission struct {
	GuestName        string   `json:"guestName"`
	FoodPreferences  []string `json:"foodPreferences"`
	AllergyText      string   `json:"allergyText"`
	DrinkPreferences []string `json:"drinkPreferences"`
	ColorPreferences []string `json:"colorPreferences"`
}

func (f *guestFunction) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)

	f.mu.Lock()
	f.headers = r.Header.Clone()
	f.mu.Unlock()

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if f.down.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database unavailable"}`))
		return
	}

	switch r.Method {
	case http.MethodGet:
		f.list(w, r)
	case http.MethodPost:
		f.submit(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"Method not allowed"}`))
	}
}

func (f *guestFunction) list(w http.ResponseWriter, r *http.Request) {
	guests, err := f.store.ListGuests(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	rows := make([]functionRow, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, functionRow{
			ID:               g.ID,
			GuestName:        g.GuestName,
			FoodPreferences:  g.FoodPreferences,
			AllergyText:      g.AllergyText,
			DrinkPreferences: g.DrinkPreferences,
			CreatedAt:        g.CreatedAt.Format(functionTimestamp),
		})
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"guests": rows})
}

func (f *guestFunction) submit(w http.ResponseWriter, r *http.Request) {
	var body functionSubmission
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid json"}`))
		return
	}

	id, err := f.store.SubmitGuest(r.Context(), domain.GuestSubmission{
		GuestName:        body.GuestName,
		FoodPreferences:  body.FoodPreferences,
		AllergyText:      body.AllergyText,
		DrinkPreferences: body.DrinkPreferences,
		ColorPreferences: body.ColorPreferences,
	})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"guestName is required"}`))
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "id": id})
}

func (f *guestFunction) lastHeader(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.headers.Get(name)
}

// endpointClientConfig mirrors configs/base.yaml with test-sized intervals.
func endpointClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: acl.DefaultGuestServiceName,
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		UserAgent: "wedding-rsvp-integration",
		Logger:    discardLogger(),
	}
}

func newGuestClient(cfg *clients.Config) (*acl.GuestClient, error) {
	client, err := clients.New(cfg)
	if err != nil {
		return nil, err
	}

	return acl.NewGuestClient(acl.GuestClientConfig{Client: client, Logger: discardLogger()}), nil
}

// newService wires the whole service against the guest endpoint at baseURL,
// the same way cmd/service does in remote mode.
func newService(baseURL, sessionDir string) (*httptest.Server, error) {
	store, err := newGuestClient(endpointClientConfig(baseURL))
	if err != nil {
		return nil, err
	}

	registry := ports.NewHealthRegistry()
	if err := registry.Register(store); err != nil {
		return nil, err
	}

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	sessionStore, err := handlers.NewSessionStore(handlers.SessionStoreConfig{
		Dir:    sessionDir,
		Secret: "integration-session-secret-0123456789",
		MaxAge: time.Hour,
	})
	if err != nil {
		return nil, err
	}

	logger := discardLogger()
	guests := app.NewGuestService(app.GuestServiceConfig{Store: store, Logger: logger})
	rsvp := app.NewRSVPService(app.RSVPServiceConfig{Store: store, Logger: logger})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName:   "wedding-rsvp-integration",
		HealthHandler: handlers.NewHealthHandler(registry, handlers.BuildInfo{Version: "integration"}),
		RSVPHandler: handlers.NewRSVPHandler(handlers.RSVPHandlerConfig{
			Service:  rsvp,
			Sessions: sessionStore,
			Views:    renderer,
			Event:    views.Event{Couple: "Полина & Виктор", Date: "15 августа 2026", Venue: "Москва"},
		}),
		GuestsHandler: handlers.NewGuestsHandler(handlers.GuestsHandlerConfig{
			Guests: guests,
			Export: app.NewExportService(app.ExportServiceConfig{
				Encoder: spreadsheet.NewExcel(),
				Logger:  logger,
			}),
			Views: renderer,
		}),
		APIHandler: handlers.NewGuestAPIHandler(guests, rsvp),
		Timeout:    httpadapter.DefaultRequestTimeout,
	})

	return httptest.NewServer(engine), nil
}

// tracedContext carries the ids the client must forward downstream.
func tracedContext(requestID, correlationID string) context.Context {
	ctx := middleware.ContextWithRequestID(context.Background(), requestID)
	return middleware.ContextWithCorrelationID(ctx, correlationID)
}
