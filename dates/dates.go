// Package dates is the single place where task dates are parsed and formatted.
//
// Task dates arrive from the task service as loosely formatted strings
// ("2024-01-15", "2024-01-15T00:00:00", RFC 3339 ...). Only the calendar day
// matters to the views, so every value is reduced to its civil date as written,
// without converting between time zones. Formatting follows the es-CO locale:
// day/month/year.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

const (
	// Locale is the locale every rendered date follows.
	Locale = "es-CO"
	// InvalidDate is rendered for values that cannot be parsed.
	InvalidDate = "Invalid Date"
	// MissingInput is the value placed in a date input when the task has no date.
	MissingInput = "FECHA NO ENCONTRADA"

	inputLayout = "2006-01-02"
	longLayout  = "2 de January de 2006"
)

var layouts = []string{
	inputLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Parse returns the civil date of s at midnight UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Valid reports whether s holds a date Parse understands.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// Short formats s as d/m/yyyy ("15/1/2024").
func Short(s string) string {
	t, ok := Parse(s)
	if !ok {
		return InvalidDate
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// Long formats s with the month spelled out ("15 de enero de 2024").
func Long(s string) string {
	t, ok := Parse(s)
	if !ok {
		return InvalidDate
	}
	return monday.Format(t, longLayout, monday.LocaleEsES)
}

// Input formats s for an HTML date input (yyyy-mm-dd).
// An empty value yields MissingInput and an unparseable one an empty string.
func Input(s string) string {
	if strings.TrimSpace(s) == "" {
		return MissingInput
	}
	t, ok := Parse(s)
	if !ok {
		return ""
	}
	return t.Format(inputLayout)
}

// ISO formats s as yyyy-mm-dd, or returns "" when it cannot be parsed.
func ISO(s string) string {
	t, ok := Parse(s)
	if !ok {
		return ""
	}
	return t.Format(inputLayout)
}
