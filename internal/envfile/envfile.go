// Package envfile loads FORMNOTE_* settings and other variables from .env
// files before configuration is read. Variables already present in the
// environment are never replaced.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Entry is one KEY=VALUE assignment from an env file.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// Parse reads env file syntax: blank lines and # comments are skipped, an
// optional "export " prefix is dropped, and values may be single or double
// quoted. Unquoted values end at " #". Malformed lines are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value, Line: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Load applies each file in order and returns the paths that existed. A
// variable set by an earlier file or by the real environment wins over later
// files. Missing files are skipped.
func Load(paths ...string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		ok, err := loadFile(path)
		if err != nil {
			return loaded, err
		}
		if ok {
			loaded = append(loaded, path)
		}
	}
	return loaded, nil
}

func loadFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	entries, err := Parse(file)
	if err != nil {
		return false, fmt.Errorf("reading env file %s: %w", path, err)
	}
	for _, e := range entries {
		if _, set := os.LookupEnv(e.Key); set {
			continue
		}
		if err := os.Setenv(e.Key, e.Value); err != nil {
			return false, fmt.Errorf("%s:%d: %w", path, e.Line, err)
		}
	}
	return true, nil
}

func parseLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') {
		if end := strings.IndexByte(value[1:], value[0]); end >= 0 {
			return key, value[1 : end+1], true
		}
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true
}
