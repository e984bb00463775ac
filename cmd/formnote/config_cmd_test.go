package main

import (
	"os"
	"strings"
	"testing"

	"github.com/gorewood/formnote/internal/config"
	"github.com/gorewood/formnote/internal/output"
)

func TestConfigInit(t *testing.T) {
	a := newTestApp(t)
	path := config.ProjectFile(a.root)

	stdout, _, err := execute(t, a, "config", "init")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, path) {
		t.Errorf("output should name %s: %q", path, stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "extension") {
		t.Errorf("config missing keys:\n%s", data)
	}

	_, _, err = execute(t, a, "config", "init")
	if output.GetExitCode(err) != output.ExitConflict {
		t.Errorf("second init exit code = %d, want %d", output.GetExitCode(err), output.ExitConflict)
	}

	if _, _, err := execute(t, a, "config", "init", "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestConfigInit_ReplacesBrokenConfig(t *testing.T) {
	a := newTestApp(t)
	a.cfg = nil
	t.Setenv("FORMNOTE_CONFIG_HOME", t.TempDir())

	path := config.ProjectFile(a.root)
	if err := os.MkdirAll(strings.TrimSuffix(path, "config.toml"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("extension = [broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, a, "list")
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Fatalf("list with broken config exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}

	if _, _, err := execute(t, a, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force error = %v", err)
	}
	if _, _, err := execute(t, a, "list"); err != nil {
		t.Errorf("list after init error = %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Folder = "Inbox"

	stdout, _, err := execute(t, a, "config", "show", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	result := decodeJSON(t, stdout)
	cfg, _ := result["config"].(map[string]any)
	if cfg["folder"] != "Inbox" {
		t.Errorf("config.folder = %v, want Inbox", cfg["folder"])
	}
	if cfg["extension"] != "md" {
		t.Errorf("config.extension = %v, want md", cfg["extension"])
	}

	stdout, _, err = execute(t, a, "config", "show")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"Configuration", "folder:", "Inbox", "max_suffix:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output should contain %q: %q", want, stdout)
		}
	}
}
