package template

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalid marks every validation failure so callers can test with
// errors.Is(err, template.ErrInvalid).
var ErrInvalid = errors.New("invalid template")

// Validate checks the rules a template must satisfy before it is saved.
// It returns the first violation, carrying a hint for the user.
func (d *Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid(errors.New("template name is required"),
			"give the template a name: set `name:` in the frontmatter")
	}

	if d.UseDestinationFolder && strings.TrimSpace(d.DestinationFolder) == "" {
		return invalid(errors.Newf("template %q uses a destination folder but none is set", d.Name),
			"set `destinationFolder:` or turn off `useDestinationFolder`")
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			return invalid(errors.Newf("field %d has no id", i+1),
				"every field needs an `id:` used as ${id} in the body")
		}
		if seen[id] {
			return invalid(errors.Newf("duplicate field id %q", id),
				"field ids must be unique within a template")
		}
		seen[id] = true
		if f.Type != "" && !f.Type.Valid() {
			return invalid(errors.Newf("field %q has unknown type %q", id, f.Type),
				"use one of: text, textarea, number, date")
		}
	}

	for i, v := range d.ComputedVariables {
		if strings.TrimSpace(v.ID) == "" {
			return invalid(errors.Newf("computed variable %d has no id", i+1),
				"every computed variable needs an `id:`")
		}
	}

	return nil
}

func invalid(err error, hint string) error {
	return errors.Mark(errors.WithHint(err, hint), ErrInvalid)
}
