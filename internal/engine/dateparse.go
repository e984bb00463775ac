package engine

import (
	"strings"
	"time"
)

// DateKind tells whether a raw value could be read as a point in time.
type DateKind int

const (
	// NotADate means the raw value is non-empty and matched no known layout.
	NotADate DateKind = iota
	// ParsedDate means the raw value matched one of the known layouts.
	ParsedDate
	// FallbackDate means the raw value was empty and the fallback was used.
	FallbackDate
)

// DateResult is the outcome of ParseDate.
type DateResult struct {
	Kind DateKind
	Time time.Time
}

// OK reports whether the result carries a usable time.
func (r DateResult) OK() bool {
	return r.Kind != NotADate
}

// zonedLayouts carry their own offset or zone name.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.UnixDate,
}

// localLayouts are interpreted in the fallback's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006-01",
	"January 2, 2006 15:04",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
	"Mon, Jan 2, 2006",
	time.ANSIC,
}

// ParseDate reads raw as a point in time.
//
// An empty (or all-whitespace) raw value is not an error: it yields fallback
// with Kind FallbackDate, so a formatted placeholder without a value renders
// the render clock. A value that matches no layout yields Kind NotADate.
// Layouts without a zone are read in fallback's location.
func ParseDate(raw string, fallback time.Time) DateResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DateResult{Kind: FallbackDate, Time: fallback}
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateResult{Kind: ParsedDate, Time: t}
		}
	}

	loc := fallback.Location()
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return DateResult{Kind: ParsedDate, Time: t}
		}
	}

	return DateResult{Kind: NotADate}
}
