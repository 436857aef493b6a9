package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/metrics"
	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
)

// GuestService reads the stored guest responses.
type GuestService struct {
	store   ports.GuestStore
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// GuestServiceConfig contains dependencies for the guest service.
type GuestServiceConfig struct {
	Store   ports.GuestStore
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewGuestService creates a new guest service. Panics without a store.
func NewGuestService(cfg GuestServiceConfig) *GuestService {
	if cfg.Store == nil {
		panic("app: GuestService requires a GuestStore")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GuestService{
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// ListGuests returns all responses, newest first. A missing list is empty,
// never nil.
func (s *GuestService) ListGuests(ctx context.Context) ([]domain.GuestResponse, error) {
	guests, err := s.store.ListGuests(ctx)
	if err != nil {
		s.metrics.GuestListLoad(metrics.OutcomeFailed)
		s.logger.ErrorContext(ctx, "failed to load guest list",
			slog.Any("error", err),
		)

		return nil, err
	}

	if guests == nil {
		guests = []domain.GuestResponse{}
	}

	s.metrics.GuestListLoad(metrics.OutcomeOK)
	s.logger.DebugContext(ctx, "loaded guest list",
		slog.Int("count", len(guests)),
	)

	return guests, nil
}

// NewLoader returns a loader for one responses screen.
func (s *GuestService) NewLoader() *GuestListLoader {
	return &GuestListLoader{service: s, done: make(chan struct{})}
}

// GuestListLoader performs the single guest list read behind one view of the
// responses screen. The page renders its loading block while Loading is true.
// A failed read leaves the list empty; Err keeps the cause for tracing.
type GuestListLoader struct {
	service *GuestService

	once    sync.Once
	done    chan struct{}
	mu      sync.RWMutex
	loading bool
	guests  []domain.GuestResponse
	err     error
}

// Start issues the read in the background. Only the first call has effect.
func (l *GuestListLoader) Start(ctx context.Context) {
	l.once.Do(func() {
		l.mu.Lock()
		l.loading = true
		l.mu.Unlock()

		go l.run(ctx)
	})
}

func (l *GuestListLoader) run(ctx context.Context) {
	defer close(l.done)

	guests, err := l.service.ListGuests(ctx)
	if guests == nil {
		guests = []domain.GuestResponse{}
	}

	l.mu.Lock()
	l.guests = guests
	l.err = err
	l.loading = false
	l.mu.Unlock()
}

// Wait blocks until the read resolves or ctx ends, then returns the list.
func (l *GuestListLoader) Wait(ctx context.Context) []domain.GuestResponse {
	select {
	case <-l.done:
	case <-ctx.Done():
	}

	return l.Guests()
}

// Loading is true while the read is in flight.
func (l *GuestListLoader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.loading
}

// Guests returns the loaded list. Empty before the read resolves or when it
// failed.
func (l *GuestListLoader) Guests() []domain.GuestResponse {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.guests == nil {
		return []domain.GuestResponse{}
	}

	return l.guests
}

// Err returns the read error, if any.
func (l *GuestListLoader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.err
}
