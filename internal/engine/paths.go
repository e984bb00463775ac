package engine

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

const (
	// DefaultBaseName replaces an empty rendered filename.
	DefaultBaseName = "Untitled"
	// DefaultExtension is the note file extension, without the dot.
	DefaultExtension = "md"
)

// ErrNoAvailablePath is returned when PathOptions.MaxSuffix is reached
// without finding a free path.
var ErrNoAvailablePath = errors.New("no available path")

// ExistsFunc reports whether a vault-relative path is already taken.
type ExistsFunc func(path string) bool

// PathOptions tunes NextAvailablePath. The zero value uses the defaults.
type PathOptions struct {
	// Extension without the leading dot. Empty means DefaultExtension.
	Extension string
	// DefaultName replaces an empty base name. Empty means DefaultBaseName.
	DefaultName string
	// MaxSuffix caps the numeric suffix probed. Zero probes without limit.
	MaxSuffix int
}

func (o PathOptions) extension() string {
	ext := strings.TrimPrefix(strings.TrimSpace(o.Extension), ".")
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

func (o PathOptions) defaultName() string {
	if name := strings.TrimSpace(o.DefaultName); name != "" {
		return name
	}
	return DefaultBaseName
}

// NextAvailablePath returns the first path, in probing order, for which
// exists is false:
//
//	<folder>/<baseName>.<ext>
//	<folder>/<baseName> 1.<ext>
//	<folder>/<baseName> 2.<ext>
//	...
//
// The folder segment is omitted when folder is empty. An empty baseName is
// replaced by the default name, and a trailing ".<ext>" on baseName, in any
// letter case, is dropped so it is not doubled. Without MaxSuffix the loop
// ends only when exists returns false, so exists must be finite.
func NextAvailablePath(baseName, folder string, exists ExistsFunc, opts PathOptions) (string, error) {
	ext := opts.extension()

	name := strings.TrimSpace(baseName)
	name = strings.TrimSpace(trimExt(name, ext))
	if name == "" {
		name = opts.defaultName()
	}
	dir := NormalizeFolder(folder)

	candidate := joinPath(dir, name+"."+ext)
	if !exists(candidate) {
		return candidate, nil
	}

	for n := 1; opts.MaxSuffix <= 0 || n <= opts.MaxSuffix; n++ {
		candidate = joinPath(dir, name+" "+strconv.Itoa(n)+"."+ext)
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q after %d suffixes", ErrNoAvailablePath, joinPath(dir, name+"."+ext), opts.MaxSuffix)
}

// NormalizeFolder turns a rendered folder template into a clean,
// slash-separated vault-relative folder. It returns "" for the vault root.
func NormalizeFolder(folder string) string {
	folder = strings.TrimSpace(strings.ReplaceAll(folder, `\`, "/"))
	if folder == "" {
		return ""
	}
	folder = strings.Trim(path.Clean("/"+folder), "/")
	return folder
}

// trimExt removes a trailing ".<ext>" from name, ignoring case.
func trimExt(name, ext string) string {
	suffix := "." + ext
	if len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix) {
		return name[:len(name)-len(suffix)]
	}
	return name
}

func joinPath(dir, file string) string {
	if dir == "" {
		return file
	}
	return dir + "/" + file
}
