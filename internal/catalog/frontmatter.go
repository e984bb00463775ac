package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/formnote/internal/template"
)

// Parse reads a template file: YAML frontmatter followed by the markdown
// body. fallbackID names the template when the frontmatter has no id.
func Parse(raw, fallbackID string) (*template.Definition, error) {
	frontmatter, body := splitFrontmatter(raw)

	var def template.Definition
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &def); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}
	if strings.TrimSpace(def.ID) == "" {
		def.ID = fallbackID
	}
	def.Body = body
	def.Normalize()
	return &def, nil
}

// Encode writes def in the file format Parse reads.
func Encode(def *template.Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	out := make([]byte, 0, buf.Len()+len(def.Body)+16)
	out = append(out, "---\n"...)
	out = append(out, buf.Bytes()...)
	out = append(out, "---\n"...)
	if def.Body != "" {
		out = append(out, def.Body...)
		if !strings.HasSuffix(def.Body, "\n") {
			out = append(out, '\n')
		}
	}
	return out, nil
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- at the start and end.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:]
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}
