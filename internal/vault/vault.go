// Package vault writes rendered notes under a root directory.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gorewood/formnote/internal/atomicfile"
	"github.com/gorewood/formnote/internal/logging"
	"github.com/gorewood/formnote/internal/output"
)

// ErrOutsideVault is returned for paths that would resolve outside the root.
var ErrOutsideVault = errors.New("path escapes the vault")

// Vault is a directory of notes. Paths given to its methods are
// slash-separated and relative to the root.
type Vault struct {
	root string
}

// New creates a Vault rooted at root. The directory is created on the first
// write if it does not exist.
func New(root string) *Vault {
	return &Vault{root: root}
}

// Root returns the vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Abs resolves a vault-relative path to a filesystem path.
func (v *Vault) Abs(rel string) (string, error) {
	local := filepath.FromSlash(strings.TrimLeft(rel, "/"))
	if local == "" || !filepath.IsLocal(local) {
		return "", errors.WithHint(
			errors.Wrapf(ErrOutsideVault, "%q", rel),
			"note paths are relative to the vault and may not contain '..'")
	}
	return filepath.Join(v.root, local), nil
}

// Exists reports whether a note or directory already occupies rel. Paths
// outside the vault count as taken so they are never chosen.
func (v *Vault) Exists(rel string) bool {
	abs, err := v.Abs(rel)
	if err != nil {
		return true
	}
	_, err = os.Lstat(abs)
	exists := err == nil
	logging.Logger.Debugw("probe", "path", rel, "exists", exists)
	return exists
}

// Create writes a new note at rel. Parent directories are created as
// needed. A trailing newline is added when content lacks one. An existing
// file is never replaced: Create returns a conflict error instead.
func (v *Vault) Create(rel, content string) (string, error) {
	abs, err := v.Abs(rel)
	if err != nil {
		return "", output.NewUserErrorWithCause(err.Error(), err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", output.NewSystemErrorWithCause("failed to create note directory", err)
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if err := atomicfile.WriteNew(abs, []byte(content), 0o644); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", output.NewConflictError(fmt.Sprintf("note already exists: %s", rel))
		}
		return "", output.NewSystemErrorWithCause("failed to write note", err)
	}

	logging.Logger.Debugw("note created", "path", abs)
	return abs, nil
}
