package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/clients"
	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

// BaseAdapter provides common functionality for ACL adapters.
// Embed this in your service-specific adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a new base adapter with the given client and service name.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET request and returns the response body (caller must
// close). An empty path addresses the client's base URL.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)

	return a.bodyOrError(resp, err, operation)
}

// Post sends a JSON body and returns the response body (caller must close).
func (a *BaseAdapter) Post(ctx context.Context, path string, body []byte, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Post(ctx, path, body)

	return a.bodyOrError(resp, err, operation)
}

func (a *BaseAdapter) bodyOrError(resp *http.Response, err error, operation string) (io.ReadCloser, error) {
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation, "")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation, "")
	}

	return resp.Body, nil
}

// DecodeResponse reads and decodes a JSON response body into the target type.
// Closes the body after reading.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// DecodeResponseForService decodes a body and reports malformed payloads as
// an outage of the named service.
func DecodeResponseForService[T any](body io.ReadCloser, serviceName string) (*T, error) {
	result, err := DecodeResponse[T](body)
	if err != nil {
		return nil, &domain.UnavailableError{Service: serviceName, Reason: err.Error(), Cause: err}
	}

	return result, nil
}

// ValidateRequired checks that a required field is not blank.
// Returns a domain.ValidationError if the field is blank.
func ValidateRequired(value, fieldName string) error {
	if !domain.IsPresent(value) {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator is a function type that translates an external DTO to a domain type.
// The function should validate the external data and return a domain error
// if validation fails.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateValid applies translate to every item and keeps the ones that
// translate cleanly. Rejected items are reported by index so one malformed
// record does not hide the rest of a list.
func TranslateValid[E any, D any](items []E, translate Translator[E, D]) ([]D, map[int]error) {
	result := make([]D, 0, len(items))

	var rejected map[int]error

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			if rejected == nil {
				rejected = make(map[int]error)
			}

			rejected[i] = err

			continue
		}

		result = append(result, translated)
	}

	return result, rejected
}

// timestampLayouts are tried in order. The hosted guest function serializes
// timestamps without a zone; those are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an external timestamp. An empty string is the zero
// time.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
