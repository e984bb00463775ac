// Package config locates and loads formnote configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// ProjectDirName is the per-project settings directory, relative to the
// working directory.
const ProjectDirName = ".formnote"

// Dir returns the formnote global configuration directory.
//
// Resolution:
//   - $FORMNOTE_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/formnote if set (respects XDG on any platform)
//   - %AppData%/formnote on Windows
//   - ~/.config/formnote on macOS and Linux
func Dir() string {
	if dir := os.Getenv("FORMNOTE_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "formnote")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "formnote")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "formnote")
}

// GlobalTemplatesDir returns the user-wide template directory, or "" when
// no config directory can be determined.
func GlobalTemplatesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}

// GlobalFile returns the path of the user-wide config file.
func GlobalFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// ProjectFile returns the path of the project config file under root.
func ProjectFile(root string) string {
	return filepath.Join(root, ProjectDirName, "config.toml")
}

// EnvFiles lists the env files loaded at startup, highest precedence first.
func EnvFiles(root string) []string {
	files := []string{
		filepath.Join(root, ".env.local"),
		filepath.Join(root, ".env"),
	}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}
