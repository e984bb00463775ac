package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/draft"
	"github.com/gorewood/formnote/internal/output"
)

// newValidateCmd creates the validate command.
func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a template file before saving it",
		Long: `Check a template file: the frontmatter must parse, the template needs a
name, and a destination folder must be set when useDestinationFolder is on.

Placeholders that refer to nothing are reported as warnings; with --strict
they fail validation.

Examples:
  formnote validate .formnote/templates/meeting.md
  formnote validate draft.md --strict --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat placeholders that refer to nothing as errors")

	return cmd
}

func runValidate(cmd *cobra.Command, a *app, path string, strict bool) error {
	printer := a.printer(cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		err = output.NewUserErrorWithCause("cannot read template file: "+err.Error(), err)
		printer.Error(err)
		return err
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	def, err := catalog.Parse(string(data), id)
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}
	if err := def.Validate(); err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	issues := draft.Lint(def)
	if strict && len(issues) > 0 {
		for _, issue := range issues {
			printer.Warn("%s in %s refers to nothing", issue.Placeholder, issue.Where)
		}
		err := output.NewUserError("template has placeholders that refer to nothing")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if issues == nil {
			issues = []draft.Issue{}
		}
		return printer.WriteJSON(map[string]any{
			"valid":  true,
			"id":     def.ID,
			"name":   def.Name,
			"issues": issues,
		})
	}

	for _, issue := range issues {
		printer.Warn("%s in %s refers to nothing and renders empty", issue.Placeholder, issue.Where)
	}
	return printer.Success(map[string]any{"message": def.Name + " is valid"})
}
