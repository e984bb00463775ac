package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/collect"
	"github.com/gorewood/formnote/internal/draft"
	"github.com/gorewood/formnote/internal/output"
)

// newFlags holds the flags of the new command.
type newFlags struct {
	set     []string
	values  string
	name    string
	dryRun  bool
	noInput bool
}

// newNewCmd creates the new command.
func newNewCmd(a *app) *cobra.Command {
	var flags newFlags

	cmd := &cobra.Command{
		Use:   "new <template-id>",
		Short: "Create a note from a template",
		Long: `Create a note by filling in a template's fields.

Fields not given with --set or --values are asked for interactively. With
--no-input, --json, or when stdin is not a terminal, missing fields are left
empty instead. A date field left empty renders the current time wherever it
is formatted.

The note is written into the vault under the template's destination folder.
If the file name is taken, " 1", " 2", ... is appended; existing notes are
never overwritten.

Examples:
  formnote new meeting                                # Prompt for each field
  formnote new meeting --set title="Weekly sync"      # Preset one field
  formnote new contact --values ada.yaml --no-input   # Fill from a file
  formnote new daily --name '${date} retro'           # Override the file name
  formnote new project --dry-run                      # Preview without writing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, a, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.set, "set", "s", nil, "Field value as key=value (repeatable)")
	cmd.Flags().StringVar(&flags.values, "values", "", "YAML or JSON file of field values")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "File name template overriding the template default")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Render and print the note without writing it")
	cmd.Flags().BoolVar(&flags.noInput, "no-input", false, "Never prompt; missing fields are empty")

	return cmd
}

func runNew(cmd *cobra.Command, a *app, id string, flags newFlags) error {
	printer := a.printer(cmd)
	ctx := cmd.Context()

	def, err := a.catalog.Get(ctx, id)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	preset, err := presetValues(flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	collector := a.collector
	if flags.noInput || printer.IsJSON() || !a.interactive(cmd) {
		collector = collect.Static{}
	}
	values, err := collector.Collect(ctx, def.Fields, preset)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if unknown := draft.UnknownFields(def, values); len(unknown) > 0 {
		printer.Warn("ignoring values for unknown fields: %s (template fields: %s)",
			strings.Join(unknown, ", "), fieldSummary(def.Fields))
	}

	d, err := draft.Render(def, draft.Input{
		Fields:   values,
		Filename: flags.name,
		Now:      a.now(),
	}, draft.Options{
		Exists: a.vault.Exists,
		Path:   a.cfg.PathOptions(),
		Folder: a.cfg.Folder,
	})
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	if !d.Converged {
		printer.Warn("computed variables of %s refer to each other; values are from the last of %d passes", def.ID, d.Passes)
	}

	if flags.dryRun {
		return outputDraft(printer, d)
	}

	file, err := a.vault.Create(d.Path, d.Body)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"status":    "created",
			"template":  def.ID,
			"path":      d.Path,
			"file":      file,
			"passes":    d.Passes,
			"converged": d.Converged,
		})
	}
	return printer.Success(map[string]any{"message": "Created " + d.Path})
}

// presetValues merges --values and --set; --set wins.
func presetValues(flags newFlags) (map[string]string, error) {
	preset := map[string]string{}
	if flags.values != "" {
		fromFile, err := collect.LoadValuesFile(flags.values)
		if err != nil {
			return nil, output.NewUserErrorWithCause(err.Error(), err)
		}
		for k, v := range fromFile {
			preset[k] = v
		}
	}
	assigned, err := collect.ParseAssignments(flags.set)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	for k, v := range assigned {
		preset[k] = v
	}
	return preset, nil
}

func outputDraft(printer *output.Printer, d *draft.Draft) error {
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"status": "dry_run",
			"draft":  d,
		})
	}
	printer.Document(d.Path, d.Body)
	return nil
}
