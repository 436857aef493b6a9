package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// annaResponse is the reference guest used across the tests.
func annaResponse() domain.GuestResponse {
	return domain.GuestResponse{
		ID:               1,
		GuestName:        "Anna",
		FoodPreferences:  []string{"nomeat"},
		AllergyText:      "",
		DrinkPreferences: []string{"wine"},
		CreatedAt:        time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC),
	}
}
