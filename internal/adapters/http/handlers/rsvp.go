package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/dto"
	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/views"
	"github.com/jsamuelsen/wedding-rsvp/internal/app"
	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/logging"
)

// Form actions posted to /rsvp.
const (
	actionSubmit = "submit"

	nameRequiredMessage = "Пожалуйста, введите ваше имя"
	draftLostMessage    = "Не удалось сохранить ваш выбор, попробуйте ещё раз"
	rsvpPageTitle       = "Приглашение на свадьбу"
)

// RSVPHandler serves the guest form. The draft lives in the visitor's
// session, so every toggle is a POST followed by a redirect back to the form.
// When the session cannot be saved the page is rendered in place instead.
type RSVPHandler struct {
	service     *app.RSVPService
	sessions    sessions.Store
	sessionName string
	views       *views.Renderer
	event       views.Event
}

// RSVPHandlerConfig contains dependencies for the RSVP handler.
type RSVPHandlerConfig struct {
	Service     *app.RSVPService
	Sessions    sessions.Store
	SessionName string
	Views       *views.Renderer
	Event       views.Event
}

// NewRSVPHandler creates a new RSVP handler.
func NewRSVPHandler(cfg RSVPHandlerConfig) *RSVPHandler {
	name := cfg.SessionName
	if name == "" {
		name = "rsvp-draft"
	}

	return &RSVPHandler{
		service:     cfg.Service,
		sessions:    cfg.Sessions,
		sessionName: name,
		views:       cfg.Views,
		event:       cfg.Event,
	}
}

// rsvpForm is the urlencoded body of POST /rsvp.
type rsvpForm struct {
	GuestName   string `form:"guestName"   json:"guestName"`
	AllergyText string `form:"allergyText" json:"allergyText"`
	// Toggle is "<category>:<tag>".
	Toggle string `form:"toggle" json:"toggle"`
	Action string `form:"action" json:"action" validate:"omitempty,oneof=submit"`
}

// Show handles GET /. After a submission it shows the thank-you state once.
func (h *RSVPHandler) Show(c *gin.Context) {
	session := h.session(c)
	page := h.page(loadDraft(session))

	if name := popFlash(session, sessionKeyThanks); name != "" {
		page.Thanks = true
		page.GuestName = name
	}

	page.Error = popFlash(session, sessionKeyError)

	// A lost flash only means the message may show again on the next visit.
	_ = h.save(c, session)
	h.render(c, http.StatusOK, page)
}

// Post handles POST /rsvp: either a preference toggle or the submission.
func (h *RSVPHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()
	session := h.session(c)
	form := loadDraft(session)

	var req rsvpForm
	if err := dto.BindFormAndValidate(c, &req); err != nil {
		logging.FromContext(ctx).Warn("rejecting form post", slog.Any("error", err))

		form.SetName(req.GuestName)
		form.SetAllergy(req.AllergyText)
		h.render(c, http.StatusBadRequest, h.page(form))

		return
	}

	form.SetName(req.GuestName)
	form.SetAllergy(req.AllergyText)

	if req.Toggle != "" {
		if err := toggle(form, req.Toggle); err != nil {
			logging.FromContext(ctx).Warn("ignoring toggle",
				slog.String("toggle", req.Toggle),
				slog.Any("error", err),
			)
		}
	}

	var errorFlash string

	if req.Action == actionSubmit {
		result, err := h.service.SubmitForm(ctx, form)

		switch {
		case err == nil:
			delete(session.Values, sessionKeyDraft)
			session.AddFlash(result.GuestName, sessionKeyThanks)

			if saveErr := h.save(c, session); saveErr != nil {
				page := h.page(domain.NewRSVPForm())
				page.Thanks = true
				page.GuestName = result.GuestName
				h.render(c, http.StatusOK, page)

				return
			}

			c.Redirect(http.StatusSeeOther, "/")

			return
		case domain.IsValidation(err):
			errorFlash = nameRequiredMessage
			session.AddFlash(errorFlash, sessionKeyError)
		default:
			dto.HandleError(c, err)
			return
		}
	}

	if err := saveDraft(session, form); err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.save(c, session); err != nil {
		page := h.page(form)
		page.Error = draftLostMessage
		if errorFlash != "" {
			page.Error = errorFlash
		}

		h.render(c, http.StatusOK, page)

		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterRSVPRoutes registers the form routes on the engine root.
func (h *RSVPHandler) RegisterRSVPRoutes(rg gin.IRoutes) {
	rg.GET("/", h.Show)
	rg.POST("/rsvp", h.Post)
}

func (h *RSVPHandler) page(form *domain.RSVPForm) views.RSVPPage {
	return views.RSVPPage{
		Title:     rsvpPageTitle,
		Event:     h.event,
		Name:      form.Name(),
		Allergy:   form.Allergy(),
		Colors:    options(form, domain.CategoryColor),
		Food:      options(form, domain.CategoryFood),
		Drinks:    options(form, domain.CategoryDrink),
		CanSubmit: form.CanSubmit(),
	}
}

func (h *RSVPHandler) render(c *gin.Context, status int, page views.RSVPPage) {
	var buf bytes.Buffer
	if err := h.views.Render(&buf, views.PageRSVP, page); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// session returns the visitor's session. A cookie that fails verification
// (rotated secret, tampering) is replaced by a fresh session.
func (h *RSVPHandler) session(c *gin.Context) *sessions.Session {
	s, err := h.sessions.Get(c.Request, h.sessionName)
	if err != nil {
		logging.FromContext(c.Request.Context()).Debug("discarding unreadable session",
			slog.Any("error", err),
		)
	}

	return s
}

// save persists s through the handler's store. The error is logged here;
// callers decide whether the page can still be served.
func (h *RSVPHandler) save(c *gin.Context, s *sessions.Session) error {
	err := h.sessions.Save(c.Request, c.Writer, s)
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("failed to save session",
			slog.Any("error", err),
		)
	}

	return err
}

func options(form *domain.RSVPForm, c domain.Category) []views.Option {
	sel := form.Selection(c)
	opts := domain.Options(c)

	out := make([]views.Option, len(opts))
	for i, o := range opts {
		out[i] = views.Option{
			Category: string(c),
			Tag:      o.Tag,
			Label:    o.Label,
			Swatch:   o.Swatch,
			Selected: sel.Has(o.Tag),
		}
	}

	return out
}

// toggle applies a "<category>:<tag>" toggle. Only tags offered on the form
// are accepted.
func toggle(form *domain.RSVPForm, value string) error {
	cat, tag, ok := strings.Cut(value, ":")
	if !ok {
		return domain.NewValidationErrorWithValue("toggle", "expected category:tag", value)
	}

	category, err := domain.ParseCategory(cat)
	if err != nil {
		return err
	}

	for _, o := range domain.Options(category) {
		if o.Tag == tag {
			return form.Toggle(category, tag)
		}
	}

	return domain.NewValidationErrorWithValue("toggle", "unknown tag", tag)
}
