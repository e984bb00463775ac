package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/formnote/internal/output"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const validTemplate = `---
name: Standup
fields:
  - id: yesterday
    label: Yesterday
    type: textarea
defaultFilename: ${date} standup
---
## Yesterday

${yesterday}
`

const danglingTemplate = `---
name: Standup
---
${yesterday}
`

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "standup.md", validTemplate)
	dangling := writeFile(t, dir, "dangling.md", danglingTemplate)
	nameless := writeFile(t, dir, "nameless.md", "---\ndescription: no name\n---\nbody\n")
	noFolder := writeFile(t, dir, "nofolder.md", "---\nname: P\nuseDestinationFolder: true\n---\n")
	broken := writeFile(t, dir, "broken.md", "---\nname: [unclosed\n---\n")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"valid", []string{"validate", good}, output.ExitSuccess, "Standup is valid", ""},
		{"dangling warns", []string{"validate", dangling}, output.ExitSuccess, "Standup is valid", "${yesterday}"},
		{"dangling strict", []string{"validate", dangling, "--strict"}, output.ExitUserError, "", "${yesterday}"},
		{"blank name", []string{"validate", nameless}, output.ExitUserError, "", "hint:"},
		{"destination without folder", []string{"validate", noFolder}, output.ExitUserError, "", "Error"},
		{"malformed frontmatter", []string{"validate", broken}, output.ExitUserError, "", "Error"},
		{"missing file", []string{"validate", filepath.Join(dir, "none.md")}, output.ExitUserError, "", "cannot read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, newTestApp(t), tt.args...)
			if got := output.GetExitCode(err); got != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err %v)", got, tt.wantCode, err)
			}
			if !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("stdout should contain %q: %q", tt.wantStdout, stdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr should contain %q: %q", tt.wantStderr, stderr)
			}
		})
	}
}

func TestValidateCommand_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "standup.md", danglingTemplate)

	stdout, _, err := execute(t, newTestApp(t), "validate", path, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	result := decodeJSON(t, stdout)
	if result["valid"] != true {
		t.Errorf("valid = %v, want true", result["valid"])
	}
	if result["id"] != "standup" {
		t.Errorf("id = %v, want the file stem", result["id"])
	}
	if issues, _ := result["issues"].([]any); len(issues) != 1 {
		t.Errorf("issues = %v, want one", result["issues"])
	}
}
