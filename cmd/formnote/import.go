package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/output"
)

// importResult records what happened to one imported template.
type importResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// newImportCmd creates the import command.
func newImportCmd(a *app) *cobra.Command {
	var force, dryRun bool

	cmd := &cobra.Command{
		Use:   "import <settings.json>",
		Short: "Import templates from a plugin settings file",
		Long: `Import templates from a JSON settings file shaped like {"templates": [...]}
or from a bare JSON array of templates. Each template is validated and saved
as a project template. Templates without an id get a generated one.

A template whose id already exists is skipped unless --force is given.

Examples:
  formnote import data.json
  formnote import data.json --dry-run --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, args[0], force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace templates that already exist")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and report without saving")

	return cmd
}

func runImport(cmd *cobra.Command, a *app, path string, force, dryRun bool) error {
	printer := a.printer(cmd)
	ctx := cmd.Context()

	file, err := os.Open(path)
	if err != nil {
		err = output.NewUserErrorWithCause("cannot open settings file: "+err.Error(), err)
		printer.Error(err)
		return err
	}
	defer file.Close() //nolint:errcheck // read-only

	defs, err := catalog.ImportSettings(file)
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	results := make([]importResult, 0, len(defs))
	failed := 0
	for _, def := range defs {
		res := importResult{ID: def.ID, Name: def.Name}

		if def.ID != "" && !force {
			if _, err := a.catalog.Get(ctx, def.ID); err == nil {
				res.Status = "skipped"
				res.Reason = "already exists"
				results = append(results, res)
				continue
			}
		}

		if dryRun {
			if err := def.Validate(); err != nil {
				res.Status, res.Reason = "invalid", err.Error()
				failed++
			} else {
				res.Status = "ok"
			}
			results = append(results, res)
			continue
		}

		if err := a.catalog.Put(ctx, def); err != nil {
			res.Status, res.Reason = "invalid", err.Error()
			if hint := errors.FlattenHints(err); hint != "" {
				res.Reason += " (" + hint + ")"
			}
			failed++
		} else {
			res.ID = def.ID
			res.Status = "imported"
		}
		results = append(results, res)
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(map[string]any{
			"dry_run": dryRun,
			"results": results,
		}); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.ID, r.Name, r.Status, r.Reason})
		}
		if len(rows) == 0 {
			printer.Println("No templates in settings file.")
		} else {
			printer.Table([]string{"ID", "NAME", "STATUS", "REASON"}, rows)
		}
	}

	if failed > 0 {
		err := output.NewUserError("some templates could not be imported")
		if !printer.IsJSON() {
			printer.Error(err)
		}
		return err
	}
	return nil
}
