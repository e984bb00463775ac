package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gorewood/formnote/internal/template"
)

// settingsFile is the plugin settings shape: a templates array at the top.
type settingsFile struct {
	Templates []*template.Definition `json:"templates"`
}

// ImportSettings reads templates from a settings JSON document, either
// {"templates": [...]} or a bare array. Definitions are normalized but not
// validated; Put validates each one as it is saved.
func ImportSettings(r io.Reader) ([]*template.Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var defs []*template.Definition
	if data[0] == '[' {
		if err := json.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("parsing settings: %w", err)
		}
	} else {
		var settings settingsFile
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("parsing settings: %w", err)
		}
		defs = settings.Templates
	}

	out := defs[:0]
	for _, def := range defs {
		if def == nil {
			continue
		}
		def.Normalize()
		out = append(out, def)
	}
	return out, nil
}
