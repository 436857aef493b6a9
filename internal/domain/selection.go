package domain

import "slices"

// Selection is an insertion-ordered set of tags. The zero value is empty and
// ready to use.
type Selection struct {
	tags []string
}

// NewSelection builds a selection from tags, dropping duplicates and blanks.
func NewSelection(tags ...string) Selection {
	var s Selection
	for _, t := range tags {
		if t != "" && !s.Has(t) {
			s.tags = append(s.tags, t)
		}
	}

	return s
}

// Toggle adds tag when absent and removes it when present. Toggling the same
// tag twice leaves the selection unchanged.
func (s *Selection) Toggle(tag string) {
	if tag == "" {
		return
	}

	if i := slices.Index(s.tags, tag); i >= 0 {
		s.tags = slices.Delete(s.tags, i, i+1)
		return
	}

	s.tags = append(s.tags, tag)
}

// Has reports membership.
func (s Selection) Has(tag string) bool {
	return slices.Contains(s.tags, tag)
}

// Tags returns a copy of the tags in insertion order. Never nil.
func (s Selection) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)

	return out
}

// Len returns the number of selected tags.
func (s Selection) Len() int {
	return len(s.tags)
}
