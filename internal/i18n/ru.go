// Package i18n formats dates and counters the way the Russian-language pages
// and exports show them.
package i18n

import (
	"time"

	"github.com/goodsign/monday"
)

// Layouts in Go reference time. monday switches month names to the genitive
// case when the day precedes the month, giving "1 января".
const (
	longDateTimeLayout  = "2 January 2006 г., 15:04"
	shortDateTimeLayout = "2 January, 15:04"
	numericDateLayout   = "02.01.2006"
)

const locale = monday.LocaleRuRU

// FormatLongDateTime renders t in loc as "1 января 2026 г., 10:00".
// The zero time renders as an empty string.
func FormatLongDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}

	return monday.Format(t.In(orUTC(loc)), longDateTimeLayout, locale)
}

// FormatShortDateTime renders t in loc as "1 января, 10:00".
// The zero time renders as an empty string.
func FormatShortDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}

	return monday.Format(t.In(orUTC(loc)), shortDateTimeLayout, locale)
}

// FormatNumericDate renders t in loc as "01.01.2026".
func FormatNumericDate(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format(numericDateLayout)
}

// GuestNoun picks the word for the responses counter: 1 гость, otherwise
// гостей.
func GuestNoun(n int) string {
	if n == 1 {
		return "гость"
	}

	return "гостей"
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}

	return loc
}
