package logging

import (
	"context"
	"errors"
	"log/slog"
)

// TeeHandler sends each record to the console handler and to the JSON handler
// behind the rotating log file. The two sides may run at different levels.
type TeeHandler struct {
	console slog.Handler
	file    slog.Handler
}

// NewTeeHandler pairs the console output with the log file output.
func NewTeeHandler(console, file slog.Handler) *TeeHandler {
	return &TeeHandler{console: console, file: file}
}

// Enabled is true when either side wants the level.
func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

// Handle writes to both sides. A failed file write, say a full disk, does not
// keep the record from the console; both errors are returned joined.
func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var consoleErr, fileErr error

	if h.console.Enabled(ctx, r.Level) {
		consoleErr = h.console.Handle(ctx, r.Clone())
	}

	if h.file.Enabled(ctx, r.Level) {
		fileErr = h.file.Handle(ctx, r.Clone())
	}

	return errors.Join(consoleErr, fileErr)
}

func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewTeeHandler(h.console.WithAttrs(attrs), h.file.WithAttrs(attrs))
}

func (h *TeeHandler) WithGroup(name string) slog.Handler {
	return NewTeeHandler(h.console.WithGroup(name), h.file.WithGroup(name))
}
