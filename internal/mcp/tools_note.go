package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/formnote/internal/draft"
	"github.com/gorewood/formnote/internal/logging"
)

// NoteInput is the input for preview_note and create_note.
type NoteInput struct {
	ID       string            `json:"id"                 jsonschema:"template id (required)"`
	Values   map[string]string `json:"values,omitempty"   jsonschema:"field values keyed by field id; missing fields render empty"`
	Filename string            `json:"filename,omitempty" jsonschema:"file name template overriding the template default, without extension"`
}

// NoteOutput is the output for preview_note and create_note.
type NoteOutput struct {
	Path          string   `json:"path"                     jsonschema:"vault-relative note path"`
	File          string   `json:"file,omitempty"           jsonschema:"absolute path of the written note (create_note only)"`
	Body          string   `json:"body"                     jsonschema:"rendered note body"`
	Passes        int      `json:"passes"                   jsonschema:"computed variable passes used"`
	Converged     bool     `json:"converged"                jsonschema:"false when computed variables refer to each other in a cycle"`
	UnknownFields []string `json:"unknown_fields,omitempty" jsonschema:"values that match no field and were ignored"`
}

func handlePreviewNote(deps Deps) mcp.ToolHandlerFor[NoteInput, NoteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NoteInput) (*mcp.CallToolResult, NoteOutput, error) {
		out, _, err := renderNote(ctx, deps, input)
		if err != nil {
			return nil, NoteOutput{}, err
		}
		return nil, out, nil
	}
}

func handleCreateNote(deps Deps) mcp.ToolHandlerFor[NoteInput, NoteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NoteInput) (*mcp.CallToolResult, NoteOutput, error) {
		if deps.Vault == nil {
			return nil, NoteOutput{}, errors.New("no vault configured")
		}
		out, d, err := renderNote(ctx, deps, input)
		if err != nil {
			return nil, NoteOutput{}, err
		}

		file, err := deps.Vault.Create(d.Path, d.Body)
		if err != nil {
			return nil, NoteOutput{}, fmt.Errorf("writing note: %w", err)
		}
		out.File = file
		logging.Logger.Infow("note created", "template", input.ID, "path", d.Path)
		return nil, out, nil
	}
}

// renderNote loads the template and renders it against the vault.
func renderNote(ctx context.Context, deps Deps, input NoteInput) (NoteOutput, *draft.Draft, error) {
	def, err := getTemplate(ctx, deps, input.ID)
	if err != nil {
		return NoteOutput{}, nil, err
	}

	opts := draft.Options{Path: deps.Path, Folder: deps.Folder}
	if deps.Vault != nil {
		opts.Exists = deps.Vault.Exists
	}
	d, err := draft.Render(def, draft.Input{
		Fields:   input.Values,
		Filename: input.Filename,
		Now:      deps.now(),
	}, opts)
	if err != nil {
		return NoteOutput{}, nil, err
	}

	return NoteOutput{
		Path:          d.Path,
		Body:          d.Body,
		Passes:        d.Passes,
		Converged:     d.Converged,
		UnknownFields: draft.UnknownFields(def, input.Values),
	}, d, nil
}
