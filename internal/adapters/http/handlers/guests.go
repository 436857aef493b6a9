package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/dto"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/views"
	"github.com/jsamuelsen/wedding-rsvp/internal/app"
	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/i18n"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/logging"
)

const (
	guestsPageTitle = "Ответы гостей"
	exportPath      = "/guests/export"
	// exportFallbackName is sent to clients that ignore filename*.
	exportFallbackName = "guests.xlsx"
)

// GuestsHandler serves the organizer's responses screen and its export.
type GuestsHandler struct {
	guests   *app.GuestService
	export   *app.ExportService
	views    *views.Renderer
	location *time.Location
}

// GuestsHandlerConfig contains dependencies for the guests handler.
type GuestsHandlerConfig struct {
	Guests *app.GuestService
	Export *app.ExportService
	Views  *views.Renderer
	// Location is the zone card dates are shown in. Defaults to UTC.
	Location *time.Location
}

// NewGuestsHandler creates a new guests handler.
func NewGuestsHandler(cfg GuestsHandlerConfig) *GuestsHandler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &GuestsHandler{
		guests:   cfg.Guests,
		export:   cfg.Export,
		views:    cfg.Views,
		location: loc,
	}
}

// Page handles GET /guests. The read starts before rendering; while it is in
// flight the loading block is flushed ahead of the list. A failed read
// renders the empty state and is recorded on the request span.
func (h *GuestsHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()

	loader := h.guests.NewLoader()
	loader.Start(ctx)

	page := views.GuestsPage{
		Title:   guestsPageTitle,
		Pending: loader.Loading(),
	}

	page.Resolve = func() views.GuestList {
		if page.Pending {
			c.Writer.Flush()
		}

		guests := loader.Wait(ctx)
		if err := loader.Err(); err != nil {
			trace.SpanFromContext(ctx).RecordError(err)
		}

		return views.GuestList{
			Count:     len(guests),
			Noun:      i18n.GuestNoun(len(guests)),
			Guests:    guestCards(guests, h.location),
			ExportURL: exportPath,
		}
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	if err := h.views.Stream(c.Writer, views.PageGuests, page); err != nil {
		logging.FromContext(ctx).Error("failed to render guests page", slog.Any("error", err))
	}
}

// Export handles GET /guests/export and sends the list as an xlsx
// attachment. The store is read again so the file matches what is stored now.
func (h *GuestsHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	guests, err := h.guests.ListGuests(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	file := h.export.Describe(guests)

	var buf bytes.Buffer
	if err := h.export.Write(ctx, &buf, guests); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(file.Filename))
	c.Data(http.StatusOK, file.ContentType, buf.Bytes())
}

// RegisterGuestRoutes registers the responses screen routes.
func (h *GuestsHandler) RegisterGuestRoutes(rg gin.IRoutes) {
	rg.GET("/guests", h.Page)
	rg.GET(exportPath, h.Export)
}

// contentDisposition builds an attachment header with an RFC 5987 UTF-8 name.
func contentDisposition(filename string) string {
	return fmt.Sprintf(`attachment; filename=%q; filename*=UTF-8''%s`, exportFallbackName, url.PathEscape(filename))
}

func guestCards(guests []domain.GuestResponse, loc *time.Location) []views.GuestCard {
	cards := make([]views.GuestCard, len(guests))

	for i := range guests {
		g := &guests[i]
		cards[i] = views.GuestCard{
			Name:    g.GuestName,
			Date:    i18n.FormatShortDateTime(g.CreatedAt, loc),
			Food:    g.FoodLabels(),
			Allergy: g.AllergyText,
			Drinks:  g.DrinkLabels(),
			Empty:   !g.HasPreferences(),
		}
	}

	return cards
}
