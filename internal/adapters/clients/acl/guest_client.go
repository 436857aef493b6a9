package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients"
	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/logging"
)

// DefaultGuestServiceName names the guest endpoint in logs, errors and health
// checks when no name is configured.
const DefaultGuestServiceName = "guests-endpoint"

// GuestClientConfig contains configuration for the guest client.
type GuestClientConfig struct {
	// Client is the HTTP client to use for requests.
	// Its BaseURL is the full guest endpoint URL.
	Client *clients.Client

	// ServiceName overrides DefaultGuestServiceName.
	ServiceName string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// GuestClient implements ports.GuestStore against the hosted guest function.
// The function serves both operations on one URL: GET lists responses and
// POST stores one.
type GuestClient struct {
	BaseAdapter

	logger *slog.Logger
}

// NewGuestClient creates a new guest client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewGuestClient(cfg GuestClientConfig) *GuestClient {
	if cfg.Client == nil {
		panic("GuestClient: Client is required")
	}

	name := cfg.ServiceName
	if name == "" {
		name = DefaultGuestServiceName
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GuestClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, name),
		logger:      logger,
	}
}

// guestListResponse is the external list DTO. A missing "guests" key is an
// empty list.
type guestListResponse struct {
	Guests []guestRecord `json:"guests"`
}

// guestRecord is one external guest row. Arrays and the allergy text may be
// null; createdAt may be null or lack a zone.
type guestRecord struct {
	ID               json.Number `json:"id"`
	GuestName        string      `json:"guestName"`
	FoodPreferences  []string    `json:"foodPreferences"`
	AllergyText      *string     `json:"allergyText"`
	DrinkPreferences []string    `json:"drinkPreferences"`
	CreatedAt        *string     `json:"createdAt"`
}

// submitGuestRequest is the external write DTO.
type submitGuestRequest struct {
	GuestName        string   `json:"guestName"`
	FoodPreferences  []string `json:"foodPreferences"`
	AllergyText      string   `json:"allergyText"`
	DrinkPreferences []string `json:"drinkPreferences"`
	ColorPreferences []string `json:"colorPreferences,omitempty"`
}

// submitGuestResponse is read leniently: only the id is used.
type submitGuestResponse struct {
	Success bool        `json:"success"`
	ID      json.Number `json:"id"`
}

// ListGuests fetches every stored response.
// Implements ports.GuestStore.
func (c *GuestClient) ListGuests(ctx context.Context) ([]domain.GuestResponse, error) {
	logging.Trace(ctx, "listing guests", slog.String("downstream", c.ServiceName()))

	body, err := c.Get(ctx, "", "list guests")
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponseForService[guestListResponse](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	guests, rejected := TranslateValid(ext.Guests, translateGuest)
	for i, rerr := range rejected {
		c.logger.WarnContext(ctx, "skipping malformed guest record",
			slog.Int("index", i),
			slog.Any("error", rerr),
		)
	}

	logging.Trace(ctx, "translated guest list",
		slog.Int("count", len(guests)),
		slog.Int("rejected", len(rejected)),
	)

	return guests, nil
}

// SubmitGuest stores one response and returns the id the endpoint assigned.
// Implements ports.GuestStore.
func (c *GuestClient) SubmitGuest(ctx context.Context, sub domain.GuestSubmission) (int64, error) {
	payload, err := json.Marshal(translateSubmission(sub))
	if err != nil {
		return 0, fmt.Errorf("encoding guest submission: %w", err)
	}

	body, err := c.Post(ctx, "", payload, "submit guest")
	if err != nil {
		return 0, err
	}

	// The response is not inspected beyond the id.
	ext, err := DecodeResponse[submitGuestResponse](body)
	if err != nil {
		c.logger.DebugContext(ctx, "unreadable submit response", slog.Any("error", err))
		return 0, nil
	}

	id, err := ext.ID.Int64()
	if err != nil {
		return 0, nil
	}

	return id, nil
}

// translateGuest converts an external record into a domain response.
func translateGuest(ext *guestRecord) (domain.GuestResponse, error) {
	if err := ValidateRequired(ext.GuestName, "guestName"); err != nil {
		return domain.GuestResponse{}, err
	}

	var id int64
	if ext.ID != "" {
		parsed, err := ext.ID.Int64()
		if err != nil {
			return domain.GuestResponse{}, domain.NewValidationErrorWithValue("id", "must be an integer", ext.ID.String())
		}

		id = parsed
	}

	guest := domain.GuestResponse{
		ID:               id,
		GuestName:        ext.GuestName,
		FoodPreferences:  nonNil(ext.FoodPreferences),
		DrinkPreferences: nonNil(ext.DrinkPreferences),
	}

	if ext.AllergyText != nil {
		guest.AllergyText = *ext.AllergyText
	}

	if ext.CreatedAt != nil {
		createdAt, err := ParseTimestamp(*ext.CreatedAt)
		if err != nil {
			return domain.GuestResponse{}, domain.NewValidationErrorWithValue("createdAt", err.Error(), *ext.CreatedAt)
		}

		guest.CreatedAt = createdAt
	}

	return guest, nil
}

func translateSubmission(sub domain.GuestSubmission) submitGuestRequest {
	return submitGuestRequest{
		GuestName:        sub.GuestName,
		FoodPreferences:  nonNil(sub.FoodPreferences),
		AllergyText:      sub.AllergyText,
		DrinkPreferences: nonNil(sub.DrinkPreferences),
		ColorPreferences: sub.ColorPreferences,
	}
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}

	return tags
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *GuestClient) Name() string {
	return c.ServiceName()
}

// Optional marks the endpoint as non-critical: the pages degrade without it.
// Implements ports.OptionalChecker.
func (c *GuestClient) Optional() bool {
	return true
}

// Check probes the endpoint with a CORS preflight, which the guest function
// answers without touching its database. An open circuit fails fast.
// Implements ports.HealthChecker.
func (c *GuestClient) Check(ctx context.Context) error {
	if wait := c.Client().CircuitRetryAfter(); wait > 0 {
		return fmt.Errorf("circuit open, next probe in %s", wait.Round(1e9))
	}

	resp, err := c.Client().Options(ctx, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("guest endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
