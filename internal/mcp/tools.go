package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/draft"
	"github.com/gorewood/formnote/internal/engine"
	"github.com/gorewood/formnote/internal/template"
)

// --- list_templates ---

// ListTemplatesInput is the input for the list_templates tool.
type ListTemplatesInput struct {
	Match string `json:"match,omitempty" jsonschema:"glob matched against template ids and names, e.g. meeting*"`
}

// ListTemplatesOutput is the output for the list_templates tool.
type ListTemplatesOutput struct {
	Count     int            `json:"count"     jsonschema:"number of templates returned"`
	Templates []catalog.Info `json:"templates" jsonschema:"matching templates"`
}

func handleListTemplates(deps Deps) mcp.ToolHandlerFor[ListTemplatesInput, ListTemplatesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTemplatesInput) (*mcp.CallToolResult, ListTemplatesOutput, error) {
		infos, err := deps.Catalog.List(ctx)
		if err != nil {
			return nil, ListTemplatesOutput{}, fmt.Errorf("listing templates: %w", err)
		}
		infos, err = catalog.Filter(infos, input.Match)
		if err != nil {
			return nil, ListTemplatesOutput{}, err
		}
		if infos == nil {
			infos = []catalog.Info{}
		}
		return nil, ListTemplatesOutput{Count: len(infos), Templates: infos}, nil
	}
}

// --- show_template ---

// ShowTemplateInput is the input for the show_template tool.
type ShowTemplateInput struct {
	ID string `json:"id" jsonschema:"template id (required)"`
}

// ShowTemplateOutput is the output for the show_template tool.
type ShowTemplateOutput struct {
	Template     *template.Definition `json:"template"               jsonschema:"the template definition"`
	Placeholders []string             `json:"placeholders"           jsonschema:"distinct placeholder ids used in the body"`
	Builtins     []string             `json:"builtins"               jsonschema:"time variables available without a field"`
	Issues       []draft.Issue        `json:"issues,omitempty"       jsonschema:"placeholders that reference no field, variable or built-in"`
}

func handleShowTemplate(deps Deps) mcp.ToolHandlerFor[ShowTemplateInput, ShowTemplateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ShowTemplateInput) (*mcp.CallToolResult, ShowTemplateOutput, error) {
		def, err := getTemplate(ctx, deps, input.ID)
		if err != nil {
			return nil, ShowTemplateOutput{}, err
		}
		return nil, ShowTemplateOutput{
			Template:     def,
			Placeholders: placeholderIDs(def.Body),
			Builtins:     draft.BuiltinNames(),
			Issues:       draft.Lint(def),
		}, nil
	}
}

func getTemplate(ctx context.Context, deps Deps, id string) (*template.Definition, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	def, err := deps.Catalog.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	return def, nil
}

// placeholderIDs lists distinct placeholder ids in order of first use.
func placeholderIDs(body string) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, p := range engine.Placeholders(body) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	return ids
}
