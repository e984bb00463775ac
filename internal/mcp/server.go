// Package mcp provides a Model Context Protocol server for formnote.
// It exposes the template catalog and note creation as MCP tools so an agent
// fills a template the same way a person does at the command line.
package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/engine"
	"github.com/gorewood/formnote/internal/vault"
)

// Deps are the collaborators the tools operate on.
type Deps struct {
	Catalog catalog.Catalog
	Vault   *vault.Vault
	// Path tunes note naming.
	Path engine.PathOptions
	// Folder is the fallback folder template for templates without a
	// destination folder.
	Folder string
	// Now is the render clock; nil means time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// NewServer creates an MCP server with all formnote tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "formnote",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools. Creating a note never
// replaces an existing file.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all formnote tools to the server.
func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List available note templates with their id, name, description, source and field count. Optionally filter ids and names with a glob.",
		Annotations: readOnlyAnnotations(),
	}, handleListTemplates(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_template",
		Description: "Show one template: its fields (the values you can pass to preview_note and create_note), computed variables, body and any placeholders that reference nothing.",
		Annotations: readOnlyAnnotations(),
	}, handleShowTemplate(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_note",
		Description: "Render a template with field values without writing anything. Returns the path the note would get and its body.",
		Annotations: readOnlyAnnotations(),
	}, handlePreviewNote(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_note",
		Description: "Render a template with field values and write the note into the vault. The path gets a numeric suffix if the name is taken; existing notes are never overwritten.",
		Annotations: writeAnnotations(),
	}, handleCreateNote(deps))
}
