// Package dateutils parses and formats the dates found in record payloads
// and command-line flags.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted in payloads and flags.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	MonthLayoutISO     = "2006-01"
)

// CommonFormats are tried in order by ParseDate. Day-first slash dates are
// not accepted because they cannot be told apart from US dates.
var CommonFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayoutFull,
	DateLayoutISO,
	DateLayoutEuropean,
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// MonthFormats are tried in order by ParseMonth.
var MonthFormats = []string{
	MonthLayoutISO,
	"01/2006",
	"2006/01",
	"Jan 2006",
	"January 2006",
	"Jan/06",
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims s and collapses inner whitespace.
func CleanDateString(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseDate parses s with the first matching layout in CommonFormats.
// Layouts without a zone are read in loc; a nil loc means UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clean := CleanDateString(s)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range CommonFormats {
		if t, err := time.ParseInLocation(layout, clean, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// ParseMonth parses a calendar month such as "2024-03" and returns midnight
// on its first day in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clean := CleanDateString(s)
	for _, layout := range MonthFormats {
		if t, err := time.ParseInLocation(layout, clean, loc); err == nil {
			return StartOfMonth(t), nil
		}
	}
	if t, err := ParseDate(clean, loc); err == nil {
		return StartOfMonth(t), nil
	}
	return time.Time{}, fmt.Errorf("unable to parse month: %s", s)
}

// StartOfMonth returns midnight on the first day of date's month.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// ToISODate formats date as YYYY-MM-DD, or "" for the zero time.
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return FormatDate(date, DateLayoutISO)
}

// FormatDate formats date with layout, defaulting to DateLayoutISO.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}
