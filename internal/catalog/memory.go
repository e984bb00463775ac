package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/gorewood/formnote/internal/template"
)

// Memory is an in-process Catalog. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	defs map[string]*template.Definition
}

// NewMemory creates a Memory catalog seeded with defs. Seeds are not
// validated so tests can load arbitrary shapes.
func NewMemory(defs ...*template.Definition) *Memory {
	m := &Memory{defs: make(map[string]*template.Definition, len(defs))}
	for _, def := range defs {
		c := def.Clone()
		c.Normalize()
		m.defs[c.ID] = c
	}
	return m
}

// Get implements Catalog.
func (m *Memory) Get(ctx context.Context, id string) (*template.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	def, ok := m.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return def.Clone(), nil
}

// List implements Catalog. Results are sorted by id.
func (m *Memory) List(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]Info, 0, len(m.defs))
	for _, def := range m.defs {
		infos = append(infos, infoOf(def, SourceMemory))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// Put implements Catalog.
func (m *Memory) Put(ctx context.Context, def *template.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := prepare(def); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defs[def.ID] = def.Clone()
	return nil
}

// Delete implements Catalog.
func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.defs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.defs, id)
	return nil
}

// prepare normalizes, validates and assigns an id before a save.
func prepare(def *template.Definition) error {
	def.Normalize()
	if err := def.Validate(); err != nil {
		return err
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if !ValidID(def.ID) {
		return fmt.Errorf("%w: id %q must start with a letter or digit and use only letters, digits, '.', '_' or '-'",
			template.ErrInvalid, def.ID)
	}
	return nil
}
