// Package memstore is an in-process guest store for local runs and tests.
// Nothing survives a restart.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

// Store keeps guest responses in memory.
type Store struct {
	mu     sync.RWMutex
	guests []domain.GuestResponse
	nextID int64
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithGuests seeds the store. Seeded records keep their ids and timestamps.
func WithGuests(guests ...domain.GuestResponse) Option {
	return func(s *Store) {
		for _, g := range guests {
			s.guests = append(s.guests, clone(g))
			s.nextID = max(s.nextID, g.ID)
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		guests: make([]domain.GuestResponse, 0),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListGuests returns every response, newest first.
// Implements ports.GuestStore.
func (s *Store) ListGuests(ctx context.Context) ([]domain.GuestResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	guests := make([]domain.GuestResponse, 0, len(s.guests))
	for i := len(s.guests) - 1; i >= 0; i-- {
		guests = append(guests, clone(s.guests[i]))
	}

	slices.SortStableFunc(guests, func(a, b domain.GuestResponse) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return guests, nil
}

// SubmitGuest appends a response with the next sequential id.
// Implements ports.GuestStore.
func (s *Store) SubmitGuest(ctx context.Context, sub domain.GuestSubmission) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := sub.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.guests = append(s.guests, domain.GuestResponse{
		ID:               s.nextID,
		GuestName:        sub.GuestName,
		FoodPreferences:  slices.Clone(sub.FoodPreferences),
		AllergyText:      sub.AllergyText,
		DrinkPreferences: slices.Clone(sub.DrinkPreferences),
		CreatedAt:        s.now().UTC(),
	})

	return s.nextID, nil
}

// Len returns the number of stored responses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.guests)
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "guests-memory"
}

// Check implements ports.HealthChecker. Memory is always reachable.
func (s *Store) Check(context.Context) error {
	return nil
}

func clone(g domain.GuestResponse) domain.GuestResponse {
	g.FoodPreferences = nonNil(slices.Clone(g.FoodPreferences))
	g.DrinkPreferences = nonNil(slices.Clone(g.DrinkPreferences))

	return g
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}

	return tags
}
