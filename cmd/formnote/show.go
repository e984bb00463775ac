package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/draft"
	"github.com/gorewood/formnote/internal/output"
	"github.com/gorewood/formnote/internal/template"
)

// newShowCmd creates the show command.
func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a template",
		Long: `Display a template's fields, computed variables, destination and body.

Placeholders that refer to no field, computed variable or built-in are
listed as warnings; they render as empty text.

Examples:
  formnote show meeting         # Human-readable
  formnote show meeting --json  # Full definition as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, a, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, a *app, id string) error {
	printer := a.printer(cmd)

	def, err := a.catalog.Get(cmd.Context(), id)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	issues := draft.Lint(def)

	if printer.IsJSON() {
		if issues == nil {
			issues = []draft.Issue{}
		}
		return printer.WriteJSON(map[string]any{
			"template": def,
			"issues":   issues,
		})
	}

	outputShowHuman(printer, def)
	for _, issue := range issues {
		printer.Warn("%s in %s refers to nothing and renders empty", issue.Placeholder, issue.Where)
	}
	return nil
}

func outputShowHuman(printer *output.Printer, def *template.Definition) {
	printer.Section(def.Name)
	printer.KeyValue("ID", def.ID)
	if def.Description != "" {
		printer.KeyValue("Description", def.Description)
	}
	if def.DefaultFilename != "" {
		printer.KeyValue("Filename", def.DefaultFilename)
	}
	if def.UseDestinationFolder {
		printer.KeyValue("Folder", def.DestinationFolder)
	}

	if len(def.Fields) > 0 {
		printer.Section("Fields")
		rows := make([][]string, 0, len(def.Fields))
		for _, f := range def.Fields {
			rows = append(rows, []string{f.ID, f.DisplayLabel(), string(f.Type), f.Placeholder})
		}
		printer.Table([]string{"ID", "LABEL", "TYPE", "PLACEHOLDER"}, rows)
	}

	if len(def.ComputedVariables) > 0 {
		printer.Section("Computed variables")
		for _, v := range def.ComputedVariables {
			printer.KeyValue(v.ID, v.Value)
		}
	}

	printer.Println()
	printer.Box("Body", bodyOrEmpty(def.Body))
}

func bodyOrEmpty(body string) string {
	if strings.TrimSpace(body) == "" {
		return "(empty)"
	}
	return body
}

// fieldSummary is a compact "id (type)" list for prompts and errors.
func fieldSummary(fields []template.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.ID, f.Type))
	}
	return strings.Join(parts, ", ")
}
