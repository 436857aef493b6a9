package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/i18n"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/metrics"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/telemetry"
	"github.com/jsamuelsen/wedding-rsvp/internal/ports"
)

// Export sheet layout.
const (
	ExportSheetName = "Гости"

	noneLabel        = "Нет"
	noDrinksLabel    = "Не указаны"
	exportLabelSep   = ", "
	exportFilePrefix = "Ответы_гостей_"
	exportFileExt    = ".xlsx"
)

var (
	exportHeaders = []string{"Имя гостя", "Ограничения в еде", "Аллергия", "Напитки", "Дата ответа"}
	exportWidths  = []float64{20, 30, 20, 40, 25}
)

// ExportHeaders returns the column headers of the export in order.
func ExportHeaders() []string {
	out := make([]string, len(exportHeaders))
	copy(out, exportHeaders)

	return out
}

// BuildExportRows turns guest responses into spreadsheet rows, one per guest,
// with dates rendered in loc.
func BuildExportRows(guests []domain.GuestResponse, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(guests))

	for i := range guests {
		g := &guests[i]
		rows = append(rows, []string{
			g.GuestName,
			joinOr(g.FoodLabels(), noneLabel),
			orDefault(g.AllergyText, noneLabel),
			joinOr(g.DrinkLabels(), noDrinksLabel),
			i18n.FormatLongDateTime(g.CreatedAt, loc),
		})
	}

	return rows
}

// BuildExportSheet lays out the full worksheet.
func BuildExportSheet(guests []domain.GuestResponse, loc *time.Location) ports.Sheet {
	widths := make([]float64, len(exportWidths))
	copy(widths, exportWidths)

	return ports.Sheet{
		Name:    ExportSheetName,
		Headers: ExportHeaders(),
		Rows:    BuildExportRows(guests, loc),
		Widths:  widths,
	}
}

// ExportFilename names the export after the given day in loc.
func ExportFilename(now time.Time, loc *time.Location) string {
	return exportFilePrefix + i18n.FormatNumericDate(now, loc) + exportFileExt
}

func joinOr(labels []string, fallback string) string {
	if len(labels) == 0 {
		return fallback
	}

	return strings.Join(labels, exportLabelSep)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

// ExportService writes guest lists as spreadsheets.
type ExportService struct {
	encoder  ports.SpreadsheetEncoder
	location *time.Location
	now      func() time.Time
	metrics  *metrics.Recorder
	logger   *slog.Logger
	tracer   trace.Tracer
}

// ExportServiceConfig contains dependencies for the export service.
type ExportServiceConfig struct {
	Encoder ports.SpreadsheetEncoder
	// Location is the zone dates are rendered in. Defaults to UTC.
	Location *time.Location
	// Now defaults to time.Now.
	Now     func() time.Time
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// NewExportService creates a new export service. Panics without an encoder.
func NewExportService(cfg ExportServiceConfig) *ExportService {
	if cfg.Encoder == nil {
		panic("app: ExportService requires a SpreadsheetEncoder")
	}

	svc := &ExportService{
		encoder:  cfg.Encoder,
		location: cfg.Location,
		now:      cfg.Now,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		tracer:   telemetry.Tracer(),
	}

	if svc.location == nil {
		svc.location = time.UTC
	}

	if svc.now == nil {
		svc.now = time.Now
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

// ExportFile describes an export before its body is written.
type ExportFile struct {
	Filename    string
	ContentType string
	Rows        int
}

// Describe returns the file name and type the export of guests will have.
func (s *ExportService) Describe(guests []domain.GuestResponse) ExportFile {
	return ExportFile{
		Filename:    ExportFilename(s.now(), s.location),
		ContentType: s.encoder.ContentType(),
		Rows:        len(guests),
	}
}

// Write encodes guests into w.
func (s *ExportService) Write(ctx context.Context, w io.Writer, guests []domain.GuestResponse) error {
	_, span := s.tracer.Start(ctx, "ExportService.Write")
	defer span.End()

	span.SetAttributes(attribute.Int("export.rows", len(guests)))

	if err := s.encoder.Encode(w, BuildExportSheet(guests, s.location)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return fmt.Errorf("encoding guest export: %w", err)
	}

	s.metrics.Export(len(guests))
	s.logger.InfoContext(ctx, "guest list exported",
		slog.Int("rows", len(guests)),
	)

	return nil
}
