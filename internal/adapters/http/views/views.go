// Package views renders the guest-facing HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

// Page names.
const (
	PageRSVP   = "rsvp"
	PageGuests = "guests"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds one parsed template set per page, each combined with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, name := range []string{PageRSVP, PageGuests} {
		tpl, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.pages[name] = tpl
	}

	return r, nil
}

// MustNew is New for wiring code and tests. Panics if a template is broken.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}

	return r
}

// Render executes page into w. The page is rendered into a buffer first so a
// template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)

	return err
}

// Stream executes page straight into w, so markup before a blocking call in
// the template reaches the client first. A failure leaves the output partial.
func (r *Renderer) Stream(w io.Writer, page string, data any) error {
	tpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	if err := tpl.Execute(w, data); err != nil {
		return fmt.Errorf("streaming %s: %w", page, err)
	}

	return nil
}

// Event is the wedding shown in the page header.
type Event struct {
	Couple   string
	Date     string
	Venue    string
	PhotoURL string
}

// Option is a selectable preference on the form.
type Option struct {
	Category string
	Tag      string
	Label    string
	Swatch   string
	Selected bool
}

// RSVPPage is the data for the submission screen.
type RSVPPage struct {
	Title     string
	Event     Event
	Name      string
	Allergy   string
	Colors    []Option
	Food      []Option
	Drinks    []Option
	CanSubmit bool
	// Thanks switches the page to the thank-you state.
	Thanks    bool
	GuestName string
	Error     string
}

// GuestCard is one response on the responses screen.
type GuestCard struct {
	Name    string
	Date    string
	Food    []string
	Allergy string
	Drinks  []string
	// Empty is set when the guest gave no preferences at all.
	Empty bool
}

// GuestsPage is the data for the responses screen. The loading block is
// rendered while Pending; Resolve blocks until the guest list is read.
type GuestsPage struct {
	Title   string
	Pending bool
	Resolve func() GuestList
}

// GuestList is the resolved part of the responses screen.
type GuestList struct {
	Count     int
	Noun      string
	Guests    []GuestCard
	ExportURL string
}
