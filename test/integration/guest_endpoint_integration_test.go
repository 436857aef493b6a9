//go:build integration

package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/middleware"
	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

func startGuestFunction(t *testing.T) (*guestFunction, string) {
	t.Helper()

	fn := newGuestFunction()
	server := httptest.NewServer(fn)
	t.Cleanup(server.Close)

	return fn, server.URL
}

// TestGuestEndpoint_RoundTrip stores a response and reads it back through the
// same translation the pages use.
func TestGuestEndpoint_RoundTrip(t *testing.T) {
	_, url := startGuestFunction(t)

	gc, err := newGuestClient(endpointClientConfig(url))
	require.NoError(t, err)

	id, err := gc.SubmitGuest(context.Background(), domain.GuestSubmission{
		GuestName:        "Anna",
		FoodPreferences:  []string{"nomeat"},
		DrinkPreferences: []string{"wine"},
		ColorPreferences: []string{"sage"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	guests, err := gc.ListGuests(context.Background())
	require.NoError(t, err)
	require.Len(t, guests, 1)

	assert.Equal(t, domain.GuestResponse{
		ID:               1,
		GuestName:        "Anna",
		FoodPreferences:  []string{"nomeat"},
		AllergyText:      "",
		DrinkPreferences: []string{"wine"},
		CreatedAt:        fixedSubmitTime,
	}, guests[0])
}

func TestGuestEndpoint_EmptyList(t *testing.T) {
	_, url := startGuestFunction(t)

	gc, err := newGuestClient(endpointClientConfig(url))
	require.NoError(t, err)

	guests, err := gc.ListGuests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestGuestEndpoint_RejectedSubmissionIsValidation(t *testing.T) {
	_, url := startGuestFunction(t)

	gc, err := newGuestClient(endpointClientConfig(url))
	require.NoError(t, err)

	// The client does not validate; the function refuses the blank name.
	_, err = gc.SubmitGuest(context.Background(), domain.GuestSubmission{GuestName: ""})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "got %v", err)
}

// TestGuestEndpoint_RetriesTransientFailures verifies that reads survive a
// flapping endpoint when retries are configured.
func TestGuestEndpoint_RetriesTransientFailures(t *testing.T) {
	fn := newGuestFunction()

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fn.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := endpointClientConfig(server.URL)
	cfg.Retry.MaxAttempts = 3

	gc, err := newGuestClient(cfg)
	require.NoError(t, err)

	guests, err := gc.ListGuests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, guests)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts), "expected 2 failures and 1 success")
}

// TestGuestEndpoint_CircuitOpensWhileDown verifies that a dead endpoint stops
// receiving traffic and that the health check reports the open circuit.
func TestGuestEndpoint_CircuitOpensWhileDown(t *testing.T) {
	fn, url := startGuestFunction(t)
	fn.down.Store(true)

	cfg := endpointClientConfig(url)
	cfg.Circuit.MaxFailures = 2

	gc, err := newGuestClient(cfg)
	require.NoError(t, err)

	for range 2 {
		_, err = gc.ListGuests(context.Background())
		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err), "got %v", err)
	}

	assert.Equal(t, clients.StateOpen, gc.Client().CircuitState())

	before := fn.calls.Load()
	_, err = gc.SubmitGuest(context.Background(), domain.GuestSubmission{GuestName: "Anna"})
	require.Error(t, err)
	assert.ErrorIs(t, err, clients.ErrCircuitOpen)
	assert.Equal(t, before, fn.calls.Load(), "no call while the circuit is open")

	err = gc.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit open")
}

func TestGuestEndpoint_HealthCheck(t *testing.T) {
	fn, url := startGuestFunction(t)

	gc, err := newGuestClient(endpointClientConfig(url))
	require.NoError(t, err)

	require.NoError(t, gc.Check(context.Background()))
	assert.True(t, gc.Optional())
	assert.Equal(t, 0, fn.store.Len(), "the probe must not touch the store")
}

// TestGuestEndpoint_PropagatesIDs verifies that request and correlation IDs
// reach the guest function.
func TestGuestEndpoint_PropagatesIDs(t *testing.T) {
	fn, url := startGuestFunction(t)

	gc, err := newGuestClient(endpointClientConfig(url))
	require.NoError(t, err)

	_, err = gc.ListGuests(tracedContext("req-integration-123", "corr-integration-456"))
	require.NoError(t, err)

	assert.Equal(t, "req-integration-123", fn.lastHeader(middleware.HeaderRequestID))
	assert.Equal(t, "corr-integration-456", fn.lastHeader(middleware.HeaderCorrelationID))
	assert.Equal(t, "wedding-rsvp-integration", fn.lastHeader("User-Agent"))
}

// TestGuestEndpoint_ConcurrentSubmissions verifies that one shared client can
// carry a burst of guests answering at once.
func TestGuestEndpoint_ConcurrentSubmissions(t *testing.T) {
	fn, url := startGuestFunction(t)

	gc, err := newGuestClient(endpointClientConfig(url))
	require.NoError(t, err)

	const guests = 25

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]bool, guests)
	)

	for range guests {
		wg.Add(1)
		go func() {
			defer wg.Done()

			id, err := gc.SubmitGuest(context.Background(), domain.GuestSubmission{GuestName: "Guest"})
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			ids[id] = true
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Len(t, ids, guests, "every submission gets its own id")
	assert.Equal(t, guests, fn.store.Len())

	list, err := gc.ListGuests(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, guests)
	assert.Equal(t, clients.StateClosed, gc.Client().CircuitState())
}

func TestGuestEndpoint_SlowEndpointTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := endpointClientConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	gc, err := newGuestClient(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = gc.ListGuests(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err), "got %v", err)
	assert.Less(t, time.Since(start), 400*time.Millisecond, "should time out quickly")
}

func TestGuestEndpoint_CancelledContext(t *testing.T) {
	var once sync.Once
	started := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only notices a dropped connection once the body is read.
		_, _ = io.Copy(io.Discard, r.Body)
		once.Do(func() { close(started) })

		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	gc, err := newGuestClient(endpointClientConfig(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err = gc.SubmitGuest(ctx, domain.GuestSubmission{GuestName: "Anna"})
	require.Error(t, err)
}
