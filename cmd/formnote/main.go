// Package main provides the entry point for the formnote CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/logging"
	"github.com/gorewood/formnote/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	logging.Sync()
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the formnote CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdWith(newApp())
}

// newRootCmdWith creates the root command around a prepared app, so tests
// can inject a catalog, vault, collector and clock.
func newRootCmdWith(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formnote",
		Short: "Create notes from form templates",
		Long: `formnote - fill a note template through a short form and write the result into your vault.

Templates are markdown files with YAML frontmatter that declare form fields
and computed variables. The body uses ${id} placeholders, optionally with a
date format such as ${due:DD MMMM YYYY}. Built-in variables (date, time,
datetime, year, month, day, hour, minute, now) are always available.

Templates are looked up in .formnote/templates, then in the global config
directory, then among the built-ins.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'formnote --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.load(cmd); err != nil {
			printer := a.printer(cmd)
			printer.Error(err)
			return err
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	cmd.PersistentFlags().String("vault", "", "Vault directory (overrides config)")
	_ = a.viper.BindPFlag("vault", cmd.PersistentFlags().Lookup("vault"))

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, a)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "notes", Title: "Note Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "templates", Title: "Template Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, a *app) {
	addGroupedCommand(cmd, newNewCmd(a), "notes")

	addGroupedCommand(cmd, newListCmd(a), "templates")
	addGroupedCommand(cmd, newShowCmd(a), "templates")
	addGroupedCommand(cmd, newValidateCmd(a), "templates")
	addGroupedCommand(cmd, newImportCmd(a), "templates")
	addGroupedCommand(cmd, newRemoveCmd(a), "templates")

	addGroupedCommand(cmd, newServeCmd(a), "agent")

	addGroupedCommand(cmd, newConfigCmd(a), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
