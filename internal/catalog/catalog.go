// Package catalog stores note templates.
//
// A Catalog is owned and passed around by the caller; the render pipeline
// never reaches for a global template list. Two implementations exist:
// Memory for tests and embedding, and Files, which reads markdown templates
// with YAML frontmatter in resolution order:
//  1. .formnote/templates/<id>.md (project-local)
//  2. ~/.config/formnote/templates/<id>.md (user global)
//  3. built-in templates (embedded in the binary)
package catalog

import (
	"context"
	"errors"
	"regexp"

	"github.com/gorewood/formnote/internal/template"
)

// ErrNotFound is returned when no template has the requested id.
var ErrNotFound = errors.New("template not found")

// ErrReadOnly is returned when deleting a template that only exists as a
// built-in.
var ErrReadOnly = errors.New("built-in templates cannot be changed")

// Source says where a template was found.
type Source string

// Template sources.
const (
	SourceProject Source = "project"
	SourceGlobal  Source = "global"
	SourceBuiltin Source = "built-in"
	SourceMemory  Source = "memory"
)

// Info summarizes a template for listing.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      Source `json:"source"`
	Fields      int    `json:"fields"`
	// Overrides names the lower-priority source this template shadows.
	Overrides Source `json:"overrides,omitempty"`
}

// Catalog is the template store used by the CLI and the MCP server.
type Catalog interface {
	// Get returns a copy of the template with the given id.
	Get(ctx context.Context, id string) (*template.Definition, error)
	// List returns every visible template, first source wins.
	List(ctx context.Context) ([]Info, error)
	// Put validates and saves def. A blank id is replaced by a generated one
	// which is written back into def.
	Put(ctx context.Context, def *template.Definition) error
	// Delete removes a saved template.
	Delete(ctx context.Context, id string) error
}

// idPattern restricts ids to names that are safe as file names.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidID reports whether id can be stored.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

func infoOf(def *template.Definition, src Source) Info {
	return Info{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Source:      src,
		Fields:      len(def.Fields),
	}
}
