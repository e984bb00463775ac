package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gorewood/formnote/internal/catalog"
	"github.com/gorewood/formnote/internal/output"
)

func TestRemoveCommand(t *testing.T) {
	a := newTestApp(t, meetingTemplate(), contactTemplate())

	stdout, _, err := execute(t, a, "remove", "meeting")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "Removed meeting") {
		t.Errorf("output = %q", stdout)
	}
	if _, err := a.catalog.Get(context.Background(), "meeting"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Get(meeting) after remove error = %v, want ErrNotFound", err)
	}

	stdout, _, err = execute(t, a, "rm", "contact", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	result := decodeJSON(t, stdout)
	if result["status"] != "removed" || result["id"] != "contact" {
		t.Errorf("result = %v", result)
	}

	_, _, err = execute(t, a, "remove", "meeting")
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("second remove exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
}

func TestRemoveCommand_Builtin(t *testing.T) {
	a := newTestApp(t)
	builtins := fstest.MapFS{"daily.md": {Data: []byte("---\nname: Daily\n---\n${date}")}}
	a.catalog = catalog.NewFiles(t.TempDir(), "", builtins)

	_, stderr, err := execute(t, a, "remove", "daily")
	if output.GetExitCode(err) != output.ExitUserError {
		t.Fatalf("exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
	if !strings.Contains(stderr, "hint:") {
		t.Errorf("stderr should carry a hint: %q", stderr)
	}
	if _, err := a.catalog.Get(context.Background(), "daily"); err != nil {
		t.Errorf("built-in gone after refused remove: %v", err)
	}
}
