// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/metrics"
	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
)

// RSVPService sends guest responses to the guest store.
// It depends on port interfaces, not concrete implementations.
type RSVPService struct {
	store   ports.GuestStore
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// RSVPServiceConfig contains dependencies for the RSVP service.
type RSVPServiceConfig struct {
	Store   ports.GuestStore
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewRSVPService creates a new RSVP service. Panics without a store.
func NewRSVPService(cfg RSVPServiceConfig) *RSVPService {
	if cfg.Store == nil {
		panic("app: RSVPService requires a GuestStore")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RSVPService{
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// SubmitResult describes what happened to a form submission.
type SubmitResult struct {
	// GuestName is the normalized name, used for the thank-you message.
	GuestName string
	// ID is the store id, 0 when the store did not accept the response.
	ID int64
	// Delivered is false when the store could not be reached.
	Delivered bool
}

// Submit stores a validated submission and returns the store id.
// Store failures are returned to the caller.
func (s *RSVPService) Submit(ctx context.Context, sub domain.GuestSubmission) (int64, error) {
	if err := sub.Validate(); err != nil {
		s.metrics.Submission(metrics.OutcomeRejected)
		return 0, err
	}

	id, err := s.store.SubmitGuest(ctx, sub)
	if err != nil {
		s.metrics.Submission(metrics.OutcomeFailed)
		s.logger.ErrorContext(ctx, "failed to submit rsvp",
			slog.Any("error", err),
		)

		return 0, err
	}

	s.metrics.Submission(metrics.OutcomeAccepted)
	s.logger.InfoContext(ctx, "rsvp submitted",
		slog.Int64("guest_id", id),
		slog.Int("food_count", len(sub.FoodPreferences)),
		slog.Int("drink_count", len(sub.DrinkPreferences)),
		slog.Int("color_count", len(sub.ColorPreferences)),
	)

	return id, nil
}

// SubmitForm submits the guest form. Validation and double-submit errors are
// returned and leave the form unchanged. Once the form is submitted a store
// failure is only logged: the guest still gets the thank-you page.
func (s *RSVPService) SubmitForm(ctx context.Context, form *domain.RSVPForm) (SubmitResult, error) {
	sub, err := form.Submit()
	if err != nil {
		if domain.IsValidation(err) {
			s.metrics.Submission(metrics.OutcomeRejected)
		}

		return SubmitResult{}, err
	}

	result := SubmitResult{GuestName: sub.GuestName}

	id, err := s.Submit(ctx, sub)
	if err != nil {
		s.logger.WarnContext(ctx, "rsvp not delivered, showing thank-you anyway")
		return result, nil
	}

	result.ID = id
	result.Delivered = true

	return result, nil
}
