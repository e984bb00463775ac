// Package atomicfile writes files by write-to-temp-then-rename so readers
// never observe a partially written file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// tempPattern names temp files so directory listings can skip them.
const tempPattern = ".formnote-tmp-*"

// IsTemp reports whether name looks like one of our temp files.
func IsTemp(name string) bool {
	matched, _ := filepath.Match(tempPattern, name)
	return matched
}

// Write writes data to path atomically. The temp file is created in the same
// directory as path so the final rename stays on one filesystem. Parent
// directories must exist.
func Write(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteNew is Write that refuses to replace an existing file. The check and
// the rename are not one atomic step, so a concurrent writer can still race
// it; os.ErrExist is returned when the file is seen to exist.
func WriteNew(path string, data []byte, perm os.FileMode) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	return Write(path, data, perm)
}
