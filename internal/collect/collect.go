// Package collect gathers raw field values for a template, either
// interactively or from presets given on the command line or in a file.
package collect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/formnote/internal/template"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// Collector produces the raw value of every field. Values in preset win
// over prompting; keys in preset that are not fields are passed through.
// Returned values are trimmed.
type Collector interface {
	Collect(ctx context.Context, fields []template.Field, preset map[string]string) (map[string]string, error)
}

// Static is a Collector that never prompts. Fields without a preset value
// are collected as empty strings.
type Static struct{}

// Collect implements Collector.
func (Static) Collect(ctx context.Context, fields []template.Field, preset map[string]string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := seed(preset, len(fields))
	for _, f := range fields {
		if _, ok := out[f.ID]; !ok {
			out[f.ID] = ""
		}
	}
	return out, nil
}

// seed copies preset with trimmed values.
func seed(preset map[string]string, hint int) map[string]string {
	out := make(map[string]string, len(preset)+hint)
	for k, v := range preset {
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// ParseAssignments parses key=value pairs as given to --set. The value may
// contain further '=' characters and may be empty.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q: want key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}

// LoadValuesFile reads a flat YAML or JSON object of field values. Scalars
// are kept exactly as written, so dates stay in the user's format.
func LoadValuesFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values file: %w", err)
	}
	return ParseValues(data)
}

// ParseValues parses the content of a values file.
func ParseValues(data []byte) (map[string]string, error) {
	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parsing values: %w", err)
	}

	out := make(map[string]string, len(nodes))
	for key, node := range nodes {
		switch node.Kind {
		case yaml.ScalarNode:
			if node.Tag == "!!null" {
				out[key] = ""
				continue
			}
			out[key] = node.Value
		default:
			return nil, fmt.Errorf("value %q must be a scalar (line %d)", key, node.Line)
		}
	}
	return out, nil
}
