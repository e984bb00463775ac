package draft

import (
	"github.com/gorewood/formnote/internal/engine"
	"github.com/gorewood/formnote/internal/template"
)

// Issue is a placeholder that refers to nothing the template can supply.
// Such placeholders are legal and render as "", so issues are warnings.
type Issue struct {
	Where       string `json:"where"`
	Placeholder string `json:"placeholder"`
	ID          string `json:"id"`
}

// Lint reports placeholders in def whose identifier is not a field, a
// computed variable or a built-in. A formatted placeholder with an unknown
// id is not reported because it renders the clock.
func Lint(def *template.Definition) []Issue {
	known := make(map[string]bool, len(def.Fields)+len(def.ComputedVariables))
	for _, f := range def.Fields {
		known[f.ID] = true
	}
	for _, v := range def.ComputedVariables {
		known[v.ID] = true
	}

	var issues []Issue
	check := func(where, tmpl string) {
		for _, p := range engine.Placeholders(tmpl) {
			if known[p.ID] || IsBuiltin(p.ID) || p.HasFormat() {
				continue
			}
			issues = append(issues, Issue{Where: where, Placeholder: p.Raw, ID: p.ID})
		}
	}

	check("body", def.Body)
	check("defaultFilename", def.DefaultFilename)
	if def.UseDestinationFolder {
		check("destinationFolder", def.DestinationFolder)
	}
	for _, v := range def.ComputedVariables {
		check("computedVariables."+v.ID, v.Value)
	}
	return issues
}
