// Package template defines the persisted shape of a note template: its form
// fields, computed variables, body and destination policy.
package template

import (
	"strings"

	"github.com/gorewood/formnote/internal/engine"
)

// FieldType controls how a field's raw value is collected. The render engine
// treats every value as an opaque string.
type FieldType string

// Field types.
const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
)

// FieldTypes lists the valid field types in display order.
var FieldTypes = []FieldType{FieldText, FieldTextarea, FieldNumber, FieldDate}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Field is one form input of a template.
type Field struct {
	ID          string    `json:"id"                    yaml:"id"`
	Label       string    `json:"label"                 yaml:"label"`
	Type        FieldType `json:"type"                  yaml:"type"`
	Placeholder string    `json:"placeholder"           yaml:"placeholder,omitempty"`
}

// DisplayLabel returns the label, or the id when no label is set.
func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.ID
}

// Variable is a computed variable. Value is itself a template.
type Variable struct {
	ID    string `json:"id"    yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// Definition is a saved note template.
//
// Body is excluded from YAML because template files keep it below the
// frontmatter rather than inside it.
type Definition struct {
	ID                   string     `json:"id"                          yaml:"id,omitempty"`
	Name                 string     `json:"name"                        yaml:"name"`
	Description          string     `json:"description"                 yaml:"description,omitempty"`
	DefaultFilename      string     `json:"defaultFilename,omitempty"   yaml:"defaultFilename,omitempty"`
	Fields               []Field    `json:"fields"                      yaml:"fields,omitempty"`
	ComputedVariables    []Variable `json:"computedVariables,omitempty" yaml:"computedVariables,omitempty"`
	Body                 string     `json:"body"                        yaml:"-"`
	UseDestinationFolder bool       `json:"useDestinationFolder"        yaml:"useDestinationFolder,omitempty"`
	DestinationFolder    string     `json:"destinationFolder,omitempty" yaml:"destinationFolder,omitempty"`
}

// Normalize fills legacy gaps in place: missing field types become text and
// nil slices become empty.
func (d *Definition) Normalize() {
	if d.Fields == nil {
		d.Fields = []Field{}
	}
	if d.ComputedVariables == nil {
		d.ComputedVariables = []Variable{}
	}
	for i := range d.Fields {
		d.Fields[i].ID = strings.TrimSpace(d.Fields[i].ID)
		if d.Fields[i].Type == "" {
			d.Fields[i].Type = FieldText
		}
	}
	for i := range d.ComputedVariables {
		d.ComputedVariables[i].ID = strings.TrimSpace(d.ComputedVariables[i].ID)
	}
}

// Field returns the field with the given id.
func (d *Definition) Field(id string) (Field, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Variables converts the computed variables for the engine, keeping order.
func (d *Definition) Variables() []engine.Variable {
	out := make([]engine.Variable, 0, len(d.ComputedVariables))
	for _, v := range d.ComputedVariables {
		out = append(out, engine.Variable{ID: v.ID, Expression: v.Value})
	}
	return out
}

// Clone returns a deep copy so callers can hand out definitions without
// sharing slices.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Fields = append([]Field(nil), d.Fields...)
	c.ComputedVariables = append([]Variable(nil), d.ComputedVariables...)
	return &c
}
