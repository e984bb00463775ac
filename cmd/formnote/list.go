package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/output"
)

// newListCmd creates the list command.
func newListCmd(a *app) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Long: `List the templates formnote can use, with where each one comes from.

A project template shadows a global or built-in template with the same id;
the OVERRIDES column shows what it hides.

Examples:
  formnote list                 # All templates
  formnote list --match 'meet*' # Ids or names matching a glob
  formnote list --json          # Structured output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, a, match)
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "Glob matched against template ids and names")

	return cmd
}

func runList(cmd *cobra.Command, a *app, match string) error {
	printer := a.printer(cmd)

	infos, err := a.catalog.List(cmd.Context())
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	infos, err = catalog.Filter(infos, match)
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if infos == nil {
			infos = []catalog.Info{}
		}
		return printer.WriteJSON(map[string]any{
			"count":     len(infos),
			"templates": infos,
		})
	}

	if len(infos) == 0 {
		printer.Println("No templates found.")
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.ID,
			info.Name,
			string(info.Source),
			string(info.Overrides),
			strconv.Itoa(info.Fields),
			info.Description,
		})
	}
	printer.Table([]string{"ID", "NAME", "SOURCE", "OVERRIDES", "FIELDS", "DESCRIPTION"}, rows)
	return nil
}
