// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrValidation, ErrUnavailable, etc.)
package ports

import (
	"context"
	"io"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

// GuestStore is where RSVP responses live. The production store is a remote
// HTTP endpoint; memory and SQLite stores serve local runs.
type GuestStore interface {
	// ListGuests returns every stored response, newest first.
	// Returns domain.ErrUnavailable if the store cannot be reached.
	ListGuests(ctx context.Context) ([]domain.GuestResponse, error)

	// SubmitGuest stores a new response and returns the id the store assigned.
	// The id is 0 when the store does not report one.
	// Returns domain.ErrUnavailable if the store cannot be reached.
	SubmitGuest(ctx context.Context, sub domain.GuestSubmission) (int64, error)
}

// Sheet is a single worksheet of a spreadsheet export.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
	// Widths are column widths in characters, by column index.
	Widths []float64
}

// SpreadsheetEncoder writes a sheet as a spreadsheet file.
type SpreadsheetEncoder interface {
	// ContentType is the MIME type of the encoded file.
	ContentType() string

	// Encode writes the workbook to w.
	Encode(w io.Writer, sheet Sheet) error
}
