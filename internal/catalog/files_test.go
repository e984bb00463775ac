package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/formnote/internal/template"
)

func writeTemplate(t *testing.T, dir, id, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".md"), []byte(content), 0o600))
}

func newTestFiles(t *testing.T) (*Files, string, string) {
	t.Helper()
	root := t.TempDir()
	project := filepath.Join(root, "project")
	global := filepath.Join(root, "global")
	builtins := fstest.MapFS{
		"daily.md":   {Data: []byte("---\nname: Builtin daily\n---\nbuilt-in body")},
		"meeting.md": {Data: []byte("---\nname: Builtin meeting\n---\nmeeting body")},
	}
	return NewFiles(project, global, builtins), project, global
}

func TestFiles_ResolutionOrder(t *testing.T) {
	ctx := context.Background()
	f, project, global := newTestFiles(t)

	writeTemplate(t, global, "daily", "---\nname: Global daily\n---\nglobal body")
	writeTemplate(t, project, "daily", "---\nname: Project daily\n---\nproject body")
	writeTemplate(t, global, "notes", "---\nname: Global notes\n---\nnotes")

	def, err := f.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, "Project daily", def.Name)
	assert.Equal(t, "project body", def.Body)

	infos, err := f.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	byID := map[string]Info{}
	for _, info := range infos {
		byID[info.ID] = info
	}
	assert.Equal(t, SourceProject, byID["daily"].Source)
	assert.Equal(t, SourceGlobal, byID["daily"].Overrides)
	assert.Equal(t, SourceGlobal, byID["notes"].Source)
	assert.Equal(t, SourceBuiltin, byID["meeting"].Source)
	assert.Empty(t, byID["meeting"].Overrides)

	src, err := f.Source(ctx, "meeting")
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltin, src)
}

func TestFiles_FileNameIsID(t *testing.T) {
	ctx := context.Background()
	f, project, _ := newTestFiles(t)

	writeTemplate(t, project, "standup", "---\nid: something-else\nname: Standup\n---\nbody")

	def, err := f.Get(ctx, "standup")
	require.NoError(t, err)
	assert.Equal(t, "standup", def.ID)
}

func TestFiles_SkipsMalformed(t *testing.T) {
	ctx := context.Background()
	f, project, _ := newTestFiles(t)

	writeTemplate(t, project, "broken", "---\nname: [unterminated\n---\nbody")
	writeTemplate(t, project, "fine", "---\nname: Fine\n---\nbody")
	require.NoError(t, os.WriteFile(filepath.Join(project, "readme.txt"), []byte("ignored"), 0o600))

	_, err := f.Get(ctx, "broken")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.Get(ctx, "fine")
	require.NoError(t, err)
}

func TestFiles_PutThenGet(t *testing.T) {
	ctx := context.Background()
	f, project, _ := newTestFiles(t)

	// Prime the cache so Put has something to invalidate.
	_, err := f.List(ctx)
	require.NoError(t, err)

	def := &template.Definition{
		ID:              "person",
		Name:            "Person",
		Description:     "A person",
		DefaultFilename: "${fullName}",
		Fields: []template.Field{
			{ID: "first", Label: "First", Type: template.FieldText},
			{ID: "born", Label: "Born", Type: template.FieldDate},
		},
		ComputedVariables: []template.Variable{{ID: "fullName", Value: "${first} Doe"}},
		Body:              "# ${fullName}\n\nBorn ${born:DD MMMM YYYY}",
	}
	require.NoError(t, f.Put(ctx, def))
	assert.FileExists(t, filepath.Join(project, "person.md"))

	got, err := f.Get(ctx, "person")
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestFiles_PutValidates(t *testing.T) {
	ctx := context.Background()
	f, project, _ := newTestFiles(t)

	err := f.Put(ctx, &template.Definition{ID: "bad", Name: ""})
	require.True(t, errors.Is(err, template.ErrInvalid), "want ErrInvalid, got %v", err)
	assert.NoFileExists(t, filepath.Join(project, "bad.md"))
}

func TestFiles_Delete(t *testing.T) {
	ctx := context.Background()
	f, project, global := newTestFiles(t)

	writeTemplate(t, project, "daily", "---\nname: Project daily\n---\nproject")
	writeTemplate(t, global, "notes", "---\nname: Global notes\n---\nnotes")

	// Deleting the project override reveals the built-in again.
	require.NoError(t, f.Delete(ctx, "daily"))
	def, err := f.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, "Builtin daily", def.Name)

	require.NoError(t, f.Delete(ctx, "notes"))
	_, err = f.Get(ctx, "notes")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, f.Delete(ctx, "daily"), ErrReadOnly)
	require.ErrorIs(t, f.Delete(ctx, "nope"), ErrNotFound)
}

func TestFiles_NoDirectories(t *testing.T) {
	ctx := context.Background()
	f := NewFiles("", "", nil)

	infos, err := f.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	err = f.Put(ctx, sampleDef("a", "A"))
	require.Error(t, err)
}

func TestFiles_InvalidateDuringScan(t *testing.T) {
	ctx := context.Background()
	f, project, _ := newTestFiles(t)
	writeTemplate(t, project, "daily", "---\nname: Old daily\n---\nold")

	// A file changes and the watcher invalidates while the first scan is
	// between reading the directory and storing the result.
	f.afterScan = func() {
		f.afterScan = nil
		writeTemplate(t, project, "daily", "---\nname: New daily\n---\nnew")
		f.Invalidate()
	}

	def, err := f.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, "Old daily", def.Name)

	def, err = f.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, "New daily", def.Name, "stale scan was cached over the invalidation")
}

func TestFiles_CachesBetweenInvalidations(t *testing.T) {
	ctx := context.Background()
	f, project, _ := newTestFiles(t)
	writeTemplate(t, project, "daily", "---\nname: Cached daily\n---\n")

	_, err := f.Get(ctx, "daily")
	require.NoError(t, err)

	writeTemplate(t, project, "daily", "---\nname: Changed daily\n---\n")
	def, err := f.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, "Cached daily", def.Name)

	f.Invalidate()
	def, err = f.Get(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, "Changed daily", def.Name)
}
