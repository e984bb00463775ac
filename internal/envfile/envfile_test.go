package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	input := `# formnote settings
FORMNOTE_VAULT=~/notes
export FORMNOTE_LOG_LEVEL = debug

FORMNOTE_DEFAULT_NAME="Untitled note"
FORMNOTE_EXTENSION='txt' # trailing comment
FORMNOTE_FOLDER=Inbox # unquoted comment
not a pair
BAD KEY=x
=novalue
EMPTY=
`
	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Entry{
		{Key: "FORMNOTE_VAULT", Value: "~/notes", Line: 2},
		{Key: "FORMNOTE_LOG_LEVEL", Value: "debug", Line: 3},
		{Key: "FORMNOTE_DEFAULT_NAME", Value: "Untitled note", Line: 5},
		{Key: "FORMNOTE_EXTENSION", Value: "txt", Line: 6},
		{Key: "FORMNOTE_FOLDER", Value: "Inbox", Line: 7},
		{Key: "EMPTY", Value: "", Line: 11},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	loaded, err := Load("/nonexistent/.env", "")
	if err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded = %v, want none", loaded)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte("TEST_FORMNOTE_A=local\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(shared, []byte("TEST_FORMNOTE_A=shared\nTEST_FORMNOTE_B=shared\nTEST_FORMNOTE_C=shared\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_FORMNOTE_A", "")
	t.Setenv("TEST_FORMNOTE_B", "")
	_ = os.Unsetenv("TEST_FORMNOTE_A") //nolint:errcheck
	_ = os.Unsetenv("TEST_FORMNOTE_B") //nolint:errcheck
	t.Setenv("TEST_FORMNOTE_C", "from_env")

	loaded, err := Load(local, shared)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{local, shared}, loaded); diff != "" {
		t.Errorf("loaded mismatch (-want +got):\n%s", diff)
	}

	for key, want := range map[string]string{
		"TEST_FORMNOTE_A": "local",
		"TEST_FORMNOTE_B": "shared",
		"TEST_FORMNOTE_C": "from_env",
	} {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}
