package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gorewood/formnote/internal/atomicfile"
	"github.com/gorewood/formnote/internal/logging"
	"github.com/gorewood/formnote/internal/template"
)

const templateExt = ".md"

// entry is a parsed template and where it was found.
type entry struct {
	def       *template.Definition
	source    Source
	overrides Source
}

// Files is a Catalog backed by markdown template files. Reads are cached
// until Put, Delete or a watched file change invalidates them.
type Files struct {
	projectDir string
	globalDir  string
	builtins   fs.FS

	mu    sync.RWMutex
	cache map[string]entry
	// gen counts invalidations. A scan is cached only if no invalidation
	// happened while it ran.
	gen uint64

	// afterScan runs between a scan and storing its result; tests use it.
	afterScan func()
}

// NewFiles creates a file catalog. Either directory may be empty to skip
// that source; builtins may be nil.
func NewFiles(projectDir, globalDir string, builtins fs.FS) *Files {
	return &Files{
		projectDir: projectDir,
		globalDir:  globalDir,
		builtins:   builtins,
	}
}

// ProjectDir returns the directory Put writes to.
func (f *Files) ProjectDir() string {
	return f.projectDir
}

// Get implements Catalog.
func (f *Files) Get(ctx context.Context, id string) (*template.Definition, error) {
	entries, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e.def.Clone(), nil
}

// List implements Catalog. Results are sorted by id.
func (f *Files) List(ctx context.Context) ([]Info, error) {
	entries, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(entries))
	for _, e := range entries {
		info := infoOf(e.def, e.source)
		info.Overrides = e.overrides
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// Source reports where the template with the given id currently resolves.
func (f *Files) Source(ctx context.Context, id string) (Source, error) {
	entries, err := f.load(ctx)
	if err != nil {
		return "", err
	}
	e, ok := entries[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e.source, nil
}

// Put implements Catalog. Templates are always written to the project
// directory, shadowing global and built-in templates with the same id.
func (f *Files) Put(ctx context.Context, def *template.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.projectDir == "" {
		return errors.New("no project template directory configured")
	}
	if err := prepare(def); err != nil {
		return err
	}

	data, err := Encode(def)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.projectDir, 0o755); err != nil {
		return fmt.Errorf("creating template directory: %w", err)
	}
	path := filepath.Join(f.projectDir, def.ID+templateExt)
	if err := atomicfile.Write(path, data, 0o644); err != nil {
		return fmt.Errorf("saving template %s: %w", def.ID, err)
	}

	logging.Logger.Debugw("template saved", "id", def.ID, "path", path)
	f.Invalidate()
	return nil
}

// Delete implements Catalog. It removes the project copy if there is one,
// otherwise the global copy. Built-ins cannot be deleted.
func (f *Files) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidID(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	for _, dir := range []string{f.projectDir, f.globalDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, id+templateExt)
		err := os.Remove(path)
		if err == nil {
			logging.Logger.Debugw("template deleted", "id", id, "path", path)
			f.Invalidate()
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("deleting template %s: %w", id, err)
		}
	}

	if f.builtins != nil {
		if _, err := fs.Stat(f.builtins, id+templateExt); err == nil {
			return fmt.Errorf("%w: %s", ErrReadOnly, id)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Invalidate drops the cached templates so the next read rescans.
func (f *Files) Invalidate() {
	f.mu.Lock()
	f.cache = nil
	f.gen++
	f.mu.Unlock()
}

// load returns the merged template set, scanning sources on a cache miss.
func (f *Files) load(ctx context.Context) (map[string]entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	cached, gen := f.cache, f.gen
	f.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	entries := make(map[string]entry)
	add := func(defs []*template.Definition, src Source) {
		for _, def := range defs {
			if prev, exists := entries[def.ID]; exists {
				if prev.overrides == "" {
					prev.overrides = src
					entries[def.ID] = prev
				}
				continue
			}
			entries[def.ID] = entry{def: def, source: src}
		}
	}

	if f.projectDir != "" {
		add(readDir(os.DirFS(f.projectDir), f.projectDir), SourceProject)
	}
	if f.globalDir != "" {
		add(readDir(os.DirFS(f.globalDir), f.globalDir), SourceGlobal)
	}
	if f.builtins != nil {
		add(readDir(f.builtins, "built-in"), SourceBuiltin)
	}

	if f.afterScan != nil {
		f.afterScan()
	}

	f.mu.Lock()
	if f.gen == gen {
		f.cache = entries
	} else {
		logging.Logger.Debugw("templates changed during scan; not caching")
	}
	f.mu.Unlock()
	return entries, nil
}

// readDir parses every template file at the top of fsys. Files that cannot
// be read or parsed are skipped with a warning; a missing directory yields
// nothing.
func readDir(fsys fs.FS, label string) []*template.Definition {
	dirEntries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Logger.Warnw("cannot read template directory", "dir", label, "error", err)
		}
		return nil
	}

	var defs []*template.Definition
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, templateExt) || atomicfile.IsTemp(name) {
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			logging.Logger.Warnw("skipping unreadable template", "dir", label, "file", name, "error", err)
			continue
		}

		id := strings.TrimSuffix(name, templateExt)
		def, err := Parse(string(data), id)
		if err != nil {
			logging.Logger.Warnw("skipping malformed template", "dir", label, "file", name, "error", err)
			continue
		}
		// The file name is the id so Get and Delete agree with the disk.
		def.ID = id
		defs = append(defs, def)
	}
	return defs
}
