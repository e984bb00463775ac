package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/logging"
	formnotemcp "github.com/gorewood/formnote/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run formnote as a Model Context Protocol (MCP) server over stdio.

This lets any MCP-capable agent list templates and create notes in your
vault. Template files are watched, so edits are picked up without a restart.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "formnote": {
        "command": "formnote",
        "args": ["serve"]
      }
    }
  }

Available tools: list_templates, show_template, preview_note, create_note`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if files, ok := a.catalog.(*catalog.Files); ok {
				go func() {
					if err := files.Watch(ctx, nil); err != nil {
						logging.Logger.Warnw("template watcher stopped", "error", err)
					}
				}()
			}

			server := formnotemcp.NewServer(buildVersion(), serverDeps(a))
			return server.Run(ctx, &mcp.StdioTransport{})
		},
	}
}

func serverDeps(a *app) formnotemcp.Deps {
	return formnotemcp.Deps{
		Catalog: a.catalog,
		Vault:   a.vault,
		Path:    a.cfg.PathOptions(),
		Folder:  a.cfg.Folder,
		Now:     a.now,
	}
}
