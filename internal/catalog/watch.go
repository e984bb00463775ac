package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/gorewood/formnote/internal/atomicfile"
	"github.com/gorewood/formnote/internal/logging"
)

// Watch invalidates the cache whenever a template file in the project or
// global directory changes. It blocks until ctx is cancelled. Directories
// that do not exist when Watch starts are not watched.
//
// onChange, when non-nil, is called after each invalidation with the path
// that changed.
func (f *Files) Watch(ctx context.Context, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := 0
	for _, dir := range []string{f.projectDir, f.globalDir} {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		watched++
		logging.Logger.Debugw("watching templates", "dir", dir)
	}
	if watched == 0 {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !isTemplateEvent(event) {
				continue
			}
			f.Invalidate()
			logging.Logger.Debugw("template change", "path", event.Name, "op", event.Op.String())
			if onChange != nil {
				onChange(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Logger.Warnw("fsnotify error", "error", err)
		}
	}
}

func isTemplateEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, templateExt) || atomicfile.IsTemp(name) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
