package draft

import (
	"sort"
	"strings"
	"time"

	"github.com/gorewood/formnote/internal/engine"
	"github.com/gorewood/formnote/internal/template"
)

// builtinFormats maps each built-in variable to its date pattern. "now" is
// handled separately because it is RFC 3339.
var builtinFormats = map[string]string{
	"date":     "YYYY-MM-DD",
	"time":     "HH:mm",
	"datetime": "YYYY-MM-DD HH:mm",
	"year":     "YYYY",
	"month":    "MM",
	"day":      "DD",
	"hour":     "HH",
	"minute":   "mm",
}

// BuiltinNames returns the built-in variable names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinFormats)+1)
	for name := range builtinFormats {
		names = append(names, name)
	}
	names = append(names, "now")
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is a built-in variable.
func IsBuiltin(name string) bool {
	_, ok := builtinFormats[name]
	return ok || name == "now"
}

// buildBuiltins creates the time variables for one render clock.
func buildBuiltins(now time.Time) engine.Values {
	vars := make(engine.Values, len(builtinFormats)+1)
	for name, pattern := range builtinFormats {
		vars[name] = engine.FormatDate(now, pattern)
	}
	vars["now"] = now.Format(time.RFC3339)
	return vars
}

// BaseValues merges the built-in variables with the trimmed values of the
// template's declared fields. A declared field without a value is "".
// Values for undeclared ids are ignored; see UnknownFields.
func BaseValues(def *template.Definition, fields map[string]string, now time.Time) engine.Values {
	vars := buildBuiltins(now)
	for _, f := range def.Fields {
		vars[f.ID] = strings.TrimSpace(fields[f.ID])
	}
	return vars
}

// UnknownFields returns the keys of fields that the template does not
// declare, sorted.
func UnknownFields(def *template.Definition, fields map[string]string) []string {
	var unknown []string
	for id := range fields {
		if _, ok := def.Field(id); !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	return unknown
}
