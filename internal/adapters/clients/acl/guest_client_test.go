package acl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients"
	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
)

var (
	_ ports.GuestStore      = (*GuestClient)(nil)
	_ ports.HealthChecker   = (*GuestClient)(nil)
	_ ports.OptionalChecker = (*GuestClient)(nil)
)

func newGuestClient(t *testing.T, handler http.HandlerFunc) *GuestClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(testConfig(server.URL))
	require.NoError(t, err)

	return NewGuestClient(GuestClientConfig{Client: client})
}

func TestNewGuestClient_RequiresClient(t *testing.T) {
	assert.Panics(t, func() {
		NewGuestClient(GuestClientConfig{})
	})
}

func TestNewGuestClient_DefaultName(t *testing.T) {
	client, err := clients.New(testConfig("http://example.com"))
	require.NoError(t, err)

	assert.Equal(t, DefaultGuestServiceName, NewGuestClient(GuestClientConfig{Client: client}).Name())
	assert.Equal(t, "rsvp-fn", NewGuestClient(GuestClientConfig{Client: client, ServiceName: "rsvp-fn"}).Name())
}

func TestGuestClient_ListGuests(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"guests":[
			{"id":2,"guestName":"Boris","foodPreferences":[],"allergyText":"орехи","drinkPreferences":["cognac","mead"],"createdAt":"2026-01-02T09:30:00.000123"},
			{"id":1,"guestName":"Anna","foodPreferences":["nomeat"],"allergyText":"","drinkPreferences":["wine"],"createdAt":"2026-01-01T10:00:00"}
		]}`))
	})

	guests, err := gc.ListGuests(context.Background())

	require.NoError(t, err)
	require.Len(t, guests, 2)

	assert.Equal(t, int64(2), guests[0].ID)
	assert.Equal(t, "Boris", guests[0].GuestName)
	assert.Equal(t, "орехи", guests[0].AllergyText)
	assert.Equal(t, []string{"cognac", "mead"}, guests[0].DrinkPreferences)
	assert.Equal(t, []string{}, guests[0].FoodPreferences)

	assert.Equal(t, "Anna", guests[1].GuestName)
	assert.Equal(t, []string{"nomeat"}, guests[1].FoodPreferences)
	assert.Equal(t, []string{"wine"}, guests[1].DrinkPreferences)
	assert.Equal(t, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC), guests[1].CreatedAt)
}

func TestGuestClient_ListGuests_NullsAndMissingFields(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"guests":[
			{"id":5,"guestName":"Vera","foodPreferences":null,"allergyText":null,"drinkPreferences":null,"createdAt":null}
		]}`))
	})

	guests, err := gc.ListGuests(context.Background())

	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Empty(t, guests[0].AllergyText)
	assert.NotNil(t, guests[0].FoodPreferences)
	assert.NotNil(t, guests[0].DrinkPreferences)
	assert.True(t, guests[0].CreatedAt.IsZero())
	assert.False(t, guests[0].HasPreferences())
}

func TestGuestClient_ListGuests_MissingGuestsKey(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	guests, err := gc.ListGuests(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, guests)
	assert.Empty(t, guests)
}

func TestGuestClient_ListGuests_SkipsMalformedRecords(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"guests":[
			{"id":3,"guestName":"  "},
			{"id":2,"guestName":"Gleb","createdAt":"not a date"},
			{"id":1,"guestName":"Anna"}
		]}`))
	})

	guests, err := gc.ListGuests(context.Background())

	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Anna", guests[0].GuestName)
}

func TestGuestClient_ListGuests_ServerError(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database is down"}`))
	})

	_, err := gc.ListGuests(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestGuestClient_ListGuests_NotJSON(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	})

	_, err := gc.ListGuests(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}

func TestGuestClient_SubmitGuest(t *testing.T) {
	var received map[string]any

	gc := newGuestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true,"id":17}`))
	})

	sub, err := domain.NewGuestSubmission("Anna", "", []string{"nomeat"}, []string{"wine"}, []string{"sage"})
	require.NoError(t, err)

	id, err := gc.SubmitGuest(context.Background(), sub)

	require.NoError(t, err)
	assert.Equal(t, int64(17), id)
	assert.Equal(t, "Anna", received["guestName"])
	assert.Equal(t, "", received["allergyText"])
	assert.Equal(t, []any{"nomeat"}, received["foodPreferences"])
	assert.Equal(t, []any{"wine"}, received["drinkPreferences"])
	assert.Equal(t, []any{"sage"}, received["colorPreferences"])
}

func TestGuestClient_SubmitGuest_EmptyArraysAreSent(t *testing.T) {
	var received map[string]any

	gc := newGuestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"success":true,"id":1}`))
	})

	_, err := gc.SubmitGuest(context.Background(), domain.GuestSubmission{GuestName: "Anna"})

	require.NoError(t, err)
	assert.Equal(t, []any{}, received["foodPreferences"])
	assert.Equal(t, []any{}, received["drinkPreferences"])
	assert.NotContains(t, received, "colorPreferences")
}

func TestGuestClient_SubmitGuest_UnreadableResponse(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`ok`))
	})

	id, err := gc.SubmitGuest(context.Background(), domain.GuestSubmission{GuestName: "Anna"})

	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestGuestClient_SubmitGuest_Rejected(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Guest name is required"}`))
	})

	_, err := gc.SubmitGuest(context.Background(), domain.GuestSubmission{GuestName: "Anna"})

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestGuestClient_Check(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodOptions, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, gc.Check(context.Background()))
	assert.True(t, gc.Optional())
}

func TestGuestClient_Check_ErrorStatus(t *testing.T) {
	gc := newGuestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := gc.Check(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGuestClient_Check_CircuitOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	cfg.Circuit.MaxFailures = 1
	cfg.Circuit.Timeout = time.Minute

	client, err := clients.New(cfg)
	require.NoError(t, err)

	gc := NewGuestClient(GuestClientConfig{Client: client})

	_, err = gc.ListGuests(context.Background())
	require.Error(t, err)

	err = gc.Check(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit open")
}
