package domain

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// GuestResponse is one submitted RSVP as stored by the guest endpoint.
// Records are created once and never updated.
type GuestResponse struct {
	ID               int64
	GuestName        string
	FoodPreferences  []string
	AllergyText      string
	DrinkPreferences []string
	// CreatedAt is zero when the store did not report it.
	CreatedAt time.Time
}

// HasPreferences reports whether the guest filled in anything beyond the name.
func (g *GuestResponse) HasPreferences() bool {
	return len(g.FoodPreferences) > 0 || len(g.DrinkPreferences) > 0 || g.AllergyText != ""
}

// FoodLabels resolves the food tags to display labels.
func (g *GuestResponse) FoodLabels() []string {
	return Labels(CategoryFood, g.FoodPreferences)
}

// DrinkLabels resolves the drink tags to display labels.
func (g *GuestResponse) DrinkLabels() []string {
	return Labels(CategoryDrink, g.DrinkPreferences)
}

// GuestSubmission is the write payload for a new RSVP.
type GuestSubmission struct {
	GuestName        string
	FoodPreferences  []string
	AllergyText      string
	DrinkPreferences []string
	ColorPreferences []string
}

// NewGuestSubmission normalizes the free-text fields and checks that the
// name is present. Tag slices are copied and never nil.
func NewGuestSubmission(name, allergy string, food, drinks, colors []string) (GuestSubmission, error) {
	sub := GuestSubmission{
		GuestName:        NormalizeText(name),
		FoodPreferences:  cloneTags(food),
		AllergyText:      NormalizeText(allergy),
		DrinkPreferences: cloneTags(drinks),
		ColorPreferences: cloneTags(colors),
	}

	if err := sub.Validate(); err != nil {
		return GuestSubmission{}, err
	}

	return sub, nil
}

// Validate checks the only business rule on a submission: a non-blank name.
func (s *GuestSubmission) Validate() error {
	if !IsPresent(s.GuestName) {
		return NewValidationError("guestName", "name is required")
	}

	return nil
}

// IsPresent reports whether s has at least one non-whitespace character.
func IsPresent(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NormalizeText trims surrounding whitespace and composes the string to NFC
// so that names typed on different keyboards compare and export the same.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cloneTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}

	return out
}
