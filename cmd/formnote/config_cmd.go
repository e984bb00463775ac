package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/formnote/internal/config"
	"github.com/gorewood/formnote/internal/output"
)

// newConfigCmd creates the config command group.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect configuration",
		Long: `Configuration is merged from, lowest precedence first:
  1. built-in defaults
  2. <config dir>/config.toml (global)
  3. .formnote/config.toml (project)
  4. FORMNOTE_* environment variables (also read from .env.local and .env)
  5. command-line flags such as --vault`,
	}
	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var global, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a config file with every setting at its default.

Examples:
  formnote config init           # .formnote/config.toml
  formnote config init --global  # <config dir>/config.toml
  formnote config init --force   # Replace an existing file`,
		Args: cobra.NoArgs,
		// A broken config file must not stop init from replacing it.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, a, global, force)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write the global config instead of the project config")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, a *app, global, force bool) error {
	printer := a.printer(cmd)

	root := a.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			err = output.NewSystemErrorWithCause("cannot determine working directory", err)
			printer.Error(err)
			return err
		}
		root = wd
	}

	path := config.ProjectFile(root)
	if global {
		path = config.GlobalFile()
		if path == "" {
			err := output.NewSystemError("cannot determine the global config directory")
			printer.Error(err)
			return err
		}
	}

	if err := config.WriteDefault(path, force); err != nil {
		if errors.Is(err, os.ErrExist) {
			err = output.NewConflictError("config file already exists: " + path + " (use --force to replace it)")
		} else {
			err = output.NewSystemErrorWithCause("failed to write config: "+err.Error(), err)
		}
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "created", "path": path})
	}
	return printer.Success(map[string]any{"message": "Wrote " + path})
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, a)
		},
	}
}

func runConfigShow(cmd *cobra.Command, a *app) error {
	printer := a.printer(cmd)
	cfg := a.cfg

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"config":         cfg,
			"vault_dir":      cfg.VaultDir(a.root),
			"templates_dir":  cfg.ProjectTemplatesDir(a.root),
			"global_dir":     config.Dir(),
			"global_config":  config.GlobalFile(),
			"project_config": config.ProjectFile(a.root),
		})
	}

	printer.Section("Configuration")
	printer.KeyValue("vault", cfg.VaultDir(a.root))
	printer.KeyValue("templates_dir", cfg.ProjectTemplatesDir(a.root))
	printer.KeyValue("folder", cfg.Folder)
	printer.KeyValue("extension", cfg.Extension)
	printer.KeyValue("default_name", cfg.DefaultName)
	printer.KeyValue("max_suffix", strconv.Itoa(cfg.MaxSuffix))
	printer.KeyValue("log_level", cfg.LogLevel)

	printer.Section("Files")
	printer.KeyValue("global", config.GlobalFile())
	printer.KeyValue("project", config.ProjectFile(a.root))
	return nil
}
