package engine

import (
	"regexp"
	"strings"
	"time"
)

// placeholderPattern matches ${...} up to the first closing brace.
var placeholderPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Placeholder is one parsed ${id} or ${id:format} occurrence.
type Placeholder struct {
	// Raw is the full matched text, braces included.
	Raw    string
	ID     string
	Format string
}

// HasFormat reports whether the placeholder asks for date formatting.
func (p Placeholder) HasFormat() bool {
	return p.Format != ""
}

// ParsePlaceholder splits a placeholder expression (the text between the
// braces) on its first colon. Both halves are trimmed.
func ParsePlaceholder(expr string) Placeholder {
	id, format, _ := strings.Cut(expr, ":")
	return Placeholder{
		Raw:    "${" + expr + "}",
		ID:     strings.TrimSpace(id),
		Format: strings.TrimSpace(format),
	}
}

// Placeholders lists every placeholder in tmpl in order of appearance,
// duplicates included.
func Placeholders(tmpl string) []Placeholder {
	matches := placeholderPattern.FindAllStringSubmatch(tmpl, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		out = append(out, ParsePlaceholder(m[1]))
	}
	return out
}

// outcome is the internal result kind of resolving one placeholder.
type outcome int

const (
	unresolved outcome = iota // no value under the identifier
	resolved                  // raw value, no format requested
	formatted                 // value (or clock) rendered through a date format
	rawFallback               // format requested but the value is not a date
)

type resolution struct {
	kind outcome
	text string
}

// resolvePlaceholder looks p up in values and applies its format.
func resolvePlaceholder(p Placeholder, values Values, now time.Time) resolution {
	raw, found := values[p.ID]

	if !p.HasFormat() {
		if !found {
			return resolution{kind: unresolved}
		}
		return resolution{kind: resolved, text: raw}
	}

	date := ParseDate(raw, now)
	if !date.OK() {
		return resolution{kind: rawFallback, text: raw}
	}
	return resolution{kind: formatted, text: FormatDate(date.Time, p.Format)}
}

// value collapses a resolution to the string written into the output.
func (r resolution) value() string {
	if r.kind == unresolved {
		return ""
	}
	return r.text
}

// Substitute replaces every ${id} and ${id:format} in tmpl.
//
// A missing identifier renders as "". With a format, the value is read with
// ParseDate (an empty or missing value means now) and written with
// FormatDate; when it does not parse, the raw value is written instead.
// There is no escape for a literal "${".
func Substitute(tmpl string, values Values, now time.Time) string {
	if !strings.Contains(tmpl, "${") {
		return tmpl
	}
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		p := ParsePlaceholder(match[2 : len(match)-1])
		return resolvePlaceholder(p, values, now).value()
	})
}
