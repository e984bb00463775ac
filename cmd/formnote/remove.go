package main

import (
	"github.com/spf13/cobra"
)

// newRemoveCmd creates the remove command.
func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project or global template",
		Long: `Delete a template file. The project copy is removed first; if there is
none, the global copy is removed. A global or built-in template with the same
id becomes visible again.

Built-in templates cannot be removed. Notes already created from the
template are not touched.

Examples:
  formnote remove standup
  formnote rm standup --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, a, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, a *app, id string) error {
	printer := a.printer(cmd)

	if err := a.catalog.Delete(cmd.Context(), id); err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "removed", "id": id})
	}
	return printer.Success(map[string]any{"message": "Removed " + id})
}
