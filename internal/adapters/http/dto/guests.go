package dto

import (
	"time"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

// SubmitGuestRequest is the JSON body of POST /api/v1/guests. Only the name
// is validated; unknown tags are stored as sent.
type SubmitGuestRequest struct {
	GuestName        string   `json:"guestName" validate:"notempty"`
	FoodPreferences  []string `json:"foodPreferences"`
	AllergyText      string   `json:"allergyText"`
	DrinkPreferences []string `json:"drinkPreferences"`
	ColorPreferences []string `json:"colorPreferences"`
}

// ToSubmission normalizes the request into a domain submission.
func (r *SubmitGuestRequest) ToSubmission() (domain.GuestSubmission, error) {
	return domain.NewGuestSubmission(
		r.GuestName,
		r.AllergyText,
		r.FoodPreferences,
		r.DrinkPreferences,
		r.ColorPreferences,
	)
}

// SubmitGuestResponse acknowledges an accepted submission.
type SubmitGuestResponse struct {
	ID        int64  `json:"id"`
	GuestName string `json:"guestName"`
}

// TagResponse is a preference tag with its display label.
type TagResponse struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// GuestResponse is one guest in the list API.
type GuestResponse struct {
	ID               int64         `json:"id"`
	GuestName        string        `json:"guestName"`
	FoodPreferences  []TagResponse `json:"foodPreferences"`
	AllergyText      string        `json:"allergyText"`
	DrinkPreferences []TagResponse `json:"drinkPreferences"`
	CreatedAt        *time.Time    `json:"createdAt"`
}

// GuestListResponse is the body of GET /api/v1/guests.
type GuestListResponse struct {
	Guests []GuestResponse `json:"guests"`
	Count  int             `json:"count"`
}

// NewGuestListResponse converts domain guests, resolving tag labels.
// Unknown createdAt values are rendered as null.
func NewGuestListResponse(guests []domain.GuestResponse) GuestListResponse {
	out := make([]GuestResponse, len(guests))

	for i := range guests {
		g := &guests[i]

		out[i] = GuestResponse{
			ID:               g.ID,
			GuestName:        g.GuestName,
			FoodPreferences:  tags(domain.CategoryFood, g.FoodPreferences),
			AllergyText:      g.AllergyText,
			DrinkPreferences: tags(domain.CategoryDrink, g.DrinkPreferences),
		}

		if !g.CreatedAt.IsZero() {
			createdAt := g.CreatedAt
			out[i].CreatedAt = &createdAt
		}
	}

	return GuestListResponse{Guests: out, Count: len(out)}
}

func tags(c domain.Category, values []string) []TagResponse {
	out := make([]TagResponse, len(values))
	for i, v := range values {
		out[i] = TagResponse{Tag: v, Label: domain.Label(c, v)}
	}

	return out
}
