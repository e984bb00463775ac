package main

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/collect"
	"github.com/gorewood/formnote/internal/config"
	"github.com/gorewood/formnote/internal/draft"
	"github.com/gorewood/formnote/internal/engine"
	"github.com/gorewood/formnote/internal/envfile"
	"github.com/gorewood/formnote/internal/logging"
	"github.com/gorewood/formnote/internal/output"
	"github.com/gorewood/formnote/internal/template"
	"github.com/gorewood/formnote/internal/vault"
)

// app holds what commands share. Fields left nil are resolved from the
// environment and config in load; tests set them up front.
type app struct {
	viper     *viper.Viper
	root      string
	cfg       *config.Config
	catalog   catalog.Catalog
	vault     *vault.Vault
	collector collect.Collector
	now       func() time.Time
	// interactive reports whether prompting is possible.
	interactive func(cmd *cobra.Command) bool
}

func newApp() *app {
	return &app{
		viper:       config.NewViper(),
		now:         time.Now,
		interactive: stdinIsTerminal,
	}
}

// load resolves config, logging, catalog, vault and collector.
func (a *app) load(cmd *cobra.Command) error {
	if a.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return output.NewSystemErrorWithCause("cannot determine working directory", err)
		}
		a.root = wd
	}

	var envLoaded []string
	if a.cfg == nil {
		// Environment variables always win over env file values.
		envLoaded, _ = envfile.Load(config.EnvFiles(a.root)...)

		cfg, err := config.Load(a.viper, config.GlobalFile(), config.ProjectFile(a.root))
		if err != nil {
			return output.NewSystemErrorWithCause(err.Error(), err)
		}
		a.cfg = cfg
	}

	level := a.cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logging.Initialize(level, isJSONMode(cmd))
	if len(envLoaded) > 0 {
		logging.Logger.Debugw("env files loaded", "files", envLoaded)
	}

	if a.catalog == nil {
		a.catalog = catalog.NewFiles(
			a.cfg.ProjectTemplatesDir(a.root),
			config.GlobalTemplatesDir(),
			catalog.Builtins(),
		)
	}
	if a.vault == nil {
		a.vault = vault.New(a.cfg.VaultDir(a.root))
	}
	if a.collector == nil {
		a.collector = collect.NewSurvey(nil)
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.interactive == nil {
		a.interactive = stdinIsTerminal
	}
	return nil
}

// printer builds the output printer for cmd, honoring --json and --color.
func (a *app) printer(cmd *cobra.Command) *output.Printer {
	w := cmd.OutOrStdout()
	styled := output.IsTTY(w)
	if raw, err := cmd.Flags().GetString("color"); err == nil {
		if mode, err := output.ParseColorMode(raw); err == nil {
			styled = mode.Styled(styled)
		}
	}
	return output.NewPrinter(w, isJSONMode(cmd), styled).WithStderr(cmd.ErrOrStderr())
}

func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && output.IsTTY(f)
}

// exitError maps library errors to CLI exit codes, keeping the cause so
// hints reach the printer.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *output.ExitError
	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, catalog.ErrReadOnly):
		return &output.ExitError{
			Code:    output.ExitUserError,
			Message: err.Error(),
			Cause:   errors.WithHint(err, "copy it into .formnote/templates to change it; the copy takes precedence"),
		}
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, template.ErrInvalid),
		errors.Is(err, draft.ErrUnsafeFilename),
		errors.Is(err, collect.ErrAborted):
		return output.NewUserErrorWithCause(err.Error(), err)
	case errors.Is(err, engine.ErrNoAvailablePath):
		return &output.ExitError{
			Code:    output.ExitConflict,
			Message: err.Error(),
			Cause:   errors.WithHint(err, "raise max_suffix in the config or choose another --name"),
		}
	default:
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
}
