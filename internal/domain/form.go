package domain

// FormState is the lifecycle of an RSVP form within one visit.
type FormState string

const (
	FormStateDraft     FormState = "draft"
	FormStateSubmitted FormState = "submitted"
)

// RSVPForm is the guest-facing form. It collects the name, the allergy note
// and three preference selections, and can be submitted exactly once.
// Edits after submission are ignored.
type RSVPForm struct {
	name       string
	allergy    string
	selections map[Category]*Selection
	state      FormState
}

// NewRSVPForm returns an empty draft.
func NewRSVPForm() *RSVPForm {
	f := &RSVPForm{
		state:      FormStateDraft,
		selections: make(map[Category]*Selection, len(Categories())),
	}
	for _, c := range Categories() {
		f.selections[c] = &Selection{}
	}

	return f
}

// SetName replaces the guest name as typed.
func (f *RSVPForm) SetName(name string) {
	if f.Submitted() {
		return
	}

	f.name = name
}

// SetAllergy replaces the allergy note as typed.
func (f *RSVPForm) SetAllergy(text string) {
	if f.Submitted() {
		return
	}

	f.allergy = text
}

// Toggle flips tag in the given category.
func (f *RSVPForm) Toggle(c Category, tag string) error {
	sel, ok := f.selections[c]
	if !ok {
		return NewValidationErrorWithValue("category", "unknown category", string(c))
	}

	if f.Submitted() {
		return nil
	}

	sel.Toggle(tag)

	return nil
}

// Name returns the name as typed.
func (f *RSVPForm) Name() string { return f.name }

// Allergy returns the allergy note as typed.
func (f *RSVPForm) Allergy() string { return f.allergy }

// Selection returns a copy of the selection for c.
func (f *RSVPForm) Selection(c Category) Selection {
	if sel, ok := f.selections[c]; ok {
		return NewSelection(sel.Tags()...)
	}

	return Selection{}
}

// State returns the lifecycle state.
func (f *RSVPForm) State() FormState { return f.state }

// Submitted reports whether Submit has succeeded.
func (f *RSVPForm) Submitted() bool { return f.state == FormStateSubmitted }

// CanSubmit is true while the form is a draft and the name has at least one
// non-whitespace character.
func (f *RSVPForm) CanSubmit() bool {
	return !f.Submitted() && IsPresent(f.name)
}

// Submit moves the form to the submitted state and returns the payload to
// send. A blank name is a validation error. A second call is a conflict.
func (f *RSVPForm) Submit() (GuestSubmission, error) {
	if f.Submitted() {
		return GuestSubmission{}, NewConflictError("rsvp form", "already submitted")
	}

	sub, err := NewGuestSubmission(
		f.name,
		f.allergy,
		f.selections[CategoryFood].Tags(),
		f.selections[CategoryDrink].Tags(),
		f.selections[CategoryColor].Tags(),
	)
	if err != nil {
		return GuestSubmission{}, err
	}

	f.state = FormStateSubmitted

	return sub, nil
}

// FormDraft is the serializable snapshot of a form kept between requests.
type FormDraft struct {
	Name      string   `json:"name,omitempty"`
	Allergy   string   `json:"allergy,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Food      []string `json:"food,omitempty"`
	Drinks    []string `json:"drinks,omitempty"`
	Submitted bool     `json:"submitted,omitempty"`
}

// Draft snapshots the form.
func (f *RSVPForm) Draft() FormDraft {
	return FormDraft{
		Name:      f.name,
		Allergy:   f.allergy,
		Colors:    f.selections[CategoryColor].Tags(),
		Food:      f.selections[CategoryFood].Tags(),
		Drinks:    f.selections[CategoryDrink].Tags(),
		Submitted: f.Submitted(),
	}
}

// RestoreForm rebuilds a form from a snapshot.
func RestoreForm(d FormDraft) *RSVPForm {
	f := NewRSVPForm()
	f.name = d.Name
	f.allergy = d.Allergy

	*f.selections[CategoryColor] = NewSelection(d.Colors...)
	*f.selections[CategoryFood] = NewSelection(d.Food...)
	*f.selections[CategoryDrink] = NewSelection(d.Drinks...)

	if d.Submitted {
		f.state = FormStateSubmitted
	}

	return f
}
