package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wedding-rsvp/internal/adapters/http/dto"
	"github.com/jsamuelsen/wedding-rsvp/internal/app"
)

// GuestAPIHandler serves the JSON guest API.
type GuestAPIHandler struct {
	guests *app.GuestService
	rsvp   *app.RSVPService
}

// NewGuestAPIHandler creates a new guest API handler.
func NewGuestAPIHandler(guests *app.GuestService, rsvp *app.RSVPService) *GuestAPIHandler {
	return &GuestAPIHandler{
		guests: guests,
		rsvp:   rsvp,
	}
}

// ListGuests handles GET /api/v1/guests
// Returns every response with tag labels resolved.
//
// @Summary List guest responses
// @Tags guests
// @Produce json
// @Success 200 {object} dto.GuestListResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/guests [get]
func (h *GuestAPIHandler) ListGuests(c *gin.Context) {
	guests, err := h.guests.ListGuests(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGuestListResponse(guests))
}

// SubmitGuest handles POST /api/v1/guests
// Stores a response. Only the name is required.
//
// @Summary Submit a guest response
// @Tags guests
// @Accept json
// @Produce json
// @Param request body dto.SubmitGuestRequest true "Guest response"
// @Success 202 {object} dto.SubmitGuestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/guests [post]
func (h *GuestAPIHandler) SubmitGuest(c *gin.Context) {
	var req dto.SubmitGuestRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		if errors.Is(err, dto.ErrBinding) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrorCodeValidation,
				"request body must be a JSON object",
			).WithTraceID(dto.GetTraceID(c)))

			return
		}

		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))

		return
	}

	sub, err := req.ToSubmission()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	id, err := h.rsvp.Submit(c.Request.Context(), sub)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.SubmitGuestResponse{
		ID:        id,
		GuestName: sub.GuestName,
	})
}

// RegisterGuestAPIRoutes registers the API routes on the given group.
func (h *GuestAPIHandler) RegisterGuestAPIRoutes(rg *gin.RouterGroup) {
	guests := rg.Group("/guests")
	guests.GET("", h.ListGuests)
	guests.POST("", h.SubmitGuest)
}
