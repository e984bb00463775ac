package draft

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gorewood/formnote/internal/engine"
	"github.com/gorewood/formnote/internal/logging"
	"github.com/gorewood/formnote/internal/template"
)

// ErrUnsafeFilename is returned when a rendered filename would place the
// note outside its folder.
var ErrUnsafeFilename = errors.New("filename leaves the note folder")

// Input is what the caller collected for one note.
type Input struct {
	// Fields holds raw field values keyed by field id.
	Fields map[string]string
	// Filename overrides the template's default filename. It is itself a
	// template.
	Filename string
	// Now is the render clock. The zero value means time.Now().
	Now time.Time
}

// Options carries the vault-facing settings of a render.
type Options struct {
	// Exists reports taken vault paths. Nil means nothing is taken.
	Exists engine.ExistsFunc
	// Path tunes the extension, default name and suffix cap.
	Path engine.PathOptions
	// Folder is the folder template used when the template has no
	// destination folder of its own. Empty means the vault root.
	Folder string
}

// Draft is a rendered note that has not been written yet.
type Draft struct {
	TemplateID string        `json:"template_id"`
	Path       string        `json:"path"`
	Folder     string        `json:"folder,omitempty"`
	Filename   string        `json:"filename"`
	Body       string        `json:"body"`
	Values     engine.Values `json:"values"`
	Passes     int           `json:"passes"`
	Converged  bool          `json:"converged"`
	RenderedAt time.Time     `json:"rendered_at"`
}

// Render runs the full pipeline for def.
//
// The only error cases are a nil definition, a filename that escapes its
// folder (ErrUnsafeFilename) and an exhausted suffix cap;
// unknown placeholders, unparseable dates and non-converging variables are
// rendered with their documented fallbacks.
func Render(def *template.Definition, in Input, opts Options) (*Draft, error) {
	if def == nil {
		return nil, errors.New("render: nil template")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	base := BaseValues(def, in.Fields, now)
	res := engine.ResolveVariables(base, def.Variables(), now)
	logging.Logger.Debugw("computed variables resolved",
		"template", def.ID, "passes", res.Passes, "converged", res.Converged)
	if !res.Converged {
		logging.Logger.Warnw("computed variables did not settle; using last pass",
			"template", def.ID, "passes", res.Passes)
	}

	values := res.Values
	body := engine.Substitute(def.Body, values, now)

	filenameTmpl := in.Filename
	if strings.TrimSpace(filenameTmpl) == "" {
		filenameTmpl = def.DefaultFilename
	}
	filename := strings.TrimSpace(engine.Substitute(filenameTmpl, values, now))

	folderTmpl := opts.Folder
	if def.UseDestinationFolder {
		folderTmpl = def.DestinationFolder
	}
	folder := engine.NormalizeFolder(engine.Substitute(folderTmpl, values, now))

	if err := checkFilename(filename); err != nil {
		return nil, err
	}

	exists := opts.Exists
	if exists == nil {
		exists = func(string) bool { return false }
	}
	probes := 0
	counted := func(p string) bool {
		probes++
		return exists(p)
	}

	notePath, err := engine.NextAvailablePath(filename, folder, counted, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("choosing a path for %q: %w", filename, err)
	}
	logging.Logger.Debugw("path chosen", "path", notePath, "probes", probes)

	return &Draft{
		TemplateID: def.ID,
		Path:       notePath,
		Folder:     folder,
		Filename:   filename,
		Body:       body,
		Values:     values,
		Passes:     res.Passes,
		Converged:  res.Converged,
		RenderedAt: now,
	}, nil
}

// checkFilename rejects rendered filenames that are absolute or climb with
// "..". Subfolders below the note folder are allowed.
func checkFilename(filename string) error {
	if filename == "" {
		return nil
	}
	slashed := strings.ReplaceAll(filename, `\`, "/")
	local := !strings.HasPrefix(slashed, "/") && filepath.IsLocal(filepath.FromSlash(slashed))
	for _, elem := range strings.Split(slashed, "/") {
		if elem == ".." {
			local = false
		}
	}
	if local && path.Clean(slashed) != "." {
		return nil
	}
	return errors.WithHint(
		errors.Wrapf(ErrUnsafeFilename, "%q", filename),
		"file names may contain subfolders but not '..' or a leading '/'")
}
