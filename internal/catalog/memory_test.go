package catalog

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/formnote/internal/template"
)

func sampleDef(id, name string) *template.Definition {
	return &template.Definition{
		ID:   id,
		Name: name,
		Fields: []template.Field{
			{ID: "title", Label: "Title", Type: template.FieldText},
		},
		Body: "# ${title}",
	}
}

func TestMemory_PutGetList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(sampleDef("b", "Beta"))

	require.NoError(t, m.Put(ctx, sampleDef("a", "Alpha")))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
	assert.Equal(t, "# ${title}", got.Body)

	infos, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].ID)
	assert.Equal(t, "b", infos[1].ID)
	assert.Equal(t, SourceMemory, infos[0].Source)
	assert.Equal(t, 1, infos[0].Fields)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(sampleDef("a", "Alpha"))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	got.Fields[0].ID = "changed"
	got.Name = "changed"

	again, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", again.Name)
	assert.Equal(t, "title", again.Fields[0].ID)
}

func TestMemory_PutAssignsID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	def := sampleDef("", "No id yet")
	require.NoError(t, m.Put(ctx, def))

	_, err := uuid.Parse(def.ID)
	require.NoError(t, err, "generated id should be a uuid")

	_, err = m.Get(ctx, def.ID)
	require.NoError(t, err)
}

func TestMemory_PutRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	tests := []struct {
		name string
		def  *template.Definition
	}{
		{"blank name", sampleDef("x", "  ")},
		{"destination without folder", &template.Definition{ID: "y", Name: "Y", UseDestinationFolder: true}},
		{"unsafe id", sampleDef("../escape", "Escape")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Put(ctx, tt.def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, template.ErrInvalid), "want ErrInvalid, got %v", err)
		})
	}

	infos, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos, "nothing should be stored after a failed save")
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(sampleDef("a", "Alpha"))

	require.NoError(t, m.Delete(ctx, "a"))
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "a"), ErrNotFound)
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory(sampleDef("a", "Alpha"))
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("meeting"))
	assert.True(t, ValidID("Weekly_Sync-2.v1"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID(".hidden"))
	assert.False(t, ValidID("a/b"))
	assert.False(t, ValidID("with space"))
}
