package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/gorewood/formnote/internal/atomicfile"
	"github.com/gorewood/formnote/internal/engine"
)

// EnvPrefix prefixes every environment override, e.g. FORMNOTE_VAULT.
const EnvPrefix = "FORMNOTE"

// Config is the merged formnote configuration.
type Config struct {
	// Vault is the directory notes are written into.
	Vault string `mapstructure:"vault" toml:"vault" json:"vault"`
	// TemplatesDir overrides the project template directory.
	TemplatesDir string `mapstructure:"templates_dir" toml:"templates_dir" json:"templates_dir"`
	// Folder is the folder template used when a template has no destination.
	Folder string `mapstructure:"folder" toml:"folder" json:"folder"`
	// Extension of created notes, without the dot.
	Extension string `mapstructure:"extension" toml:"extension" json:"extension"`
	// DefaultName replaces an empty rendered filename.
	DefaultName string `mapstructure:"default_name" toml:"default_name" json:"default_name"`
	// MaxSuffix caps " n" suffix probing; 0 means unbounded.
	MaxSuffix int `mapstructure:"max_suffix" toml:"max_suffix" json:"max_suffix"`
	// LogLevel is a zap level name.
	LogLevel string `mapstructure:"log_level" toml:"log_level" json:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Vault:       ".",
		Extension:   engine.DefaultExtension,
		DefaultName: engine.DefaultBaseName,
		LogLevel:    "warn",
	}
}

// SetDefaults registers every key with viper. Keys must be registered for
// environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("vault", d.Vault)
	v.SetDefault("templates_dir", d.TemplatesDir)
	v.SetDefault("folder", d.Folder)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("default_name", d.DefaultName)
	v.SetDefault("max_suffix", d.MaxSuffix)
	v.SetDefault("log_level", d.LogLevel)
}

// NewViper returns a viper instance with defaults and FORMNOTE_* environment
// binding. Callers bind flags on it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load merges the given TOML files in order, lowest precedence first, then
// unmarshals. Missing files are skipped; malformed files are errors.
// Environment variables and bound flags override every file.
func Load(v *viper.Viper, files ...string) (*Config, error) {
	for _, path := range files {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", path),
				"fix the TOML syntax or run `formnote config init --force` to start over")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.MaxSuffix < 0 {
		return nil, errors.WithHint(
			errors.Newf("max_suffix must not be negative, got %d", cfg.MaxSuffix),
			"use 0 for no limit")
	}
	return &cfg, nil
}

// PathOptions converts the note naming settings for the path resolver.
func (c *Config) PathOptions() engine.PathOptions {
	return engine.PathOptions{
		Extension:   c.Extension,
		DefaultName: c.DefaultName,
		MaxSuffix:   c.MaxSuffix,
	}
}

// ProjectTemplatesDir returns where project templates live for a project
// rooted at root. A relative TemplatesDir is resolved against root.
func (c *Config) ProjectTemplatesDir(root string) string {
	dir := c.TemplatesDir
	if dir == "" {
		return filepath.Join(root, ProjectDirName, "templates")
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

// VaultDir resolves the vault against root and expands a leading ~.
func (c *Config) VaultDir(root string) string {
	dir := c.Vault
	if dir == "" {
		dir = "."
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

const fileHeader = "# formnote configuration. Environment variables FORMNOTE_<KEY> override these values.\n\n"

// Encode renders cfg as a TOML config file.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	data, err := Encode(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if force {
		return atomicfile.Write(path, data, 0o644)
	}
	return atomicfile.WriteNew(path, data, 0o644)
}
