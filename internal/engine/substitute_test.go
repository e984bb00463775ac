package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var testNow = time.Date(2026, time.October, 18, 9, 5, 0, 0, time.UTC)

func TestSubstitute(t *testing.T) {
	values := Values{
		"a":       "x",
		"name":    "Ada Lovelace",
		"due":     "2024-03-05",
		"company": "Analytical Engines",
		"blank":   "",
	}

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"no placeholders", "plain text, no braces {}", "plain text, no braces {}"},
		{"single", "${a}", "x"},
		{"missing", "${missing}", ""},
		{"embedded", "Hello ${name}!", "Hello Ada Lovelace!"},
		{"repeated", "${a}${a}-${a}", "xx-x"},
		{"trimmed id", "${ name }", "Ada Lovelace"},
		{"date format", "Due ${due:DD/MM/YYYY}", "Due 05/03/2024"},
		{"trimmed format", "${due : YYYY}", "2024"},
		{"format keeps later colons", "${due:HH:mm}", "00:00"},
		{"not a date falls back to raw", "${company:YYYY}", "Analytical Engines"},
		{"missing with format uses now", "${nothing:YYYY-MM-DD HH:mm}", "2026-10-18 09:05"},
		{"blank with format uses now", "${blank:MMMM}", "October"},
		{"empty format is ignored", "${due:}", "2024-03-05"},
		{"empty placeholder", "[${}]", "[]"},
		{"unterminated", "${a", "${a"},
		{"first closing brace wins", "${a}}", "x}"},
		{"dollar without brace", "$a and {a}", "$a and {a}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.tmpl, values, testNow); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestSubstitute_NilValues(t *testing.T) {
	if got := Substitute("a${b}c", nil, testNow); got != "ac" {
		t.Errorf("Substitute() = %q, want %q", got, "ac")
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	values := Values{"title": "Weekly sync", "when": "2025-01-06"}
	once := Substitute("# ${title}\nOn ${when:DD MMM YYYY}", values, testNow)
	twice := Substitute(once, values, testNow)
	if once != twice {
		t.Errorf("second pass changed output:\n%q\n%q", once, twice)
	}
}

func TestSubstitute_ValueIsNotRescanned(t *testing.T) {
	values := Values{"a": "${b}", "b": "nope"}
	if got := Substitute("${a}", values, testNow); got != "${b}" {
		t.Errorf("Substitute() = %q, want %q", got, "${b}")
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${title} on ${ date : YYYY } by ${title}")
	want := []Placeholder{
		{Raw: "${title}", ID: "title"},
		{Raw: "${ date : YYYY }", ID: "date", Format: "YYYY"},
		{Raw: "${title}", ID: "title"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
	}

	if got := Placeholders("nothing here"); got != nil {
		t.Errorf("Placeholders() = %v, want nil", got)
	}
}

func TestResolvePlaceholderKinds(t *testing.T) {
	values := Values{"d": "2024-03-05", "s": "soon"}

	tests := []struct {
		expr string
		want outcome
	}{
		{"missing", unresolved},
		{"d", resolved},
		{"d:YYYY", formatted},
		{"missing:YYYY", formatted},
		{"s:YYYY", rawFallback},
	}
	for _, tt := range tests {
		got := resolvePlaceholder(ParsePlaceholder(tt.expr), values, testNow)
		if got.kind != tt.want {
			t.Errorf("resolvePlaceholder(%q).kind = %v, want %v", tt.expr, got.kind, tt.want)
		}
	}
}
