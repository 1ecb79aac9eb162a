package store

import (
	"context"
	"slices"
	"sync"

	"github.com/sbpo/datapoints/internal/models"
)

// Memory is a slice-backed store. Mutations build a new slice, so a slice
// returned by List is never changed afterwards.
type Memory struct {
	mu      sync.RWMutex
	records []models.Record
}

// NewMemory returns an empty memory store
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) List(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.records), nil
}

func (m *Memory) Get(ctx context.Context, id string) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return models.Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.records[i], nil
	}
	return models.Record{}, notFound(id)
}

func (m *Memory) Append(ctx context.Context, r models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(r.ID) >= 0 {
		return exists(r.ID)
	}
	m.records = splice(m.records, len(m.records), 0, r)
	return nil
}

func (m *Memory) Insert(ctx context.Context, index int, r models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(r.ID) >= 0 {
		return exists(r.ID)
	}
	m.records = splice(m.records, index, 0, r)
	return nil
}

func (m *Memory) Replace(ctx context.Context, id string, d models.Draft) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return models.Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return models.Record{}, notFound(id)
	}
	updated := d.Apply(id)
	m.records = splice(m.records, i, 1, updated)
	return updated, nil
}

func (m *Memory) Remove(ctx context.Context, id string) (models.Record, int, error) {
	if err := ctx.Err(); err != nil {
		return models.Record{}, -1, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return models.Record{}, -1, notFound(id)
	}
	removed := m.records[i]
	m.records = splice(m.records, i, 1)
	return removed, i, nil
}

func (m *Memory) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *Memory) Close() error {
	return nil
}

// indexOf returns the position of id or -1. Caller holds the lock.
func (m *Memory) indexOf(id string) int {
	return slices.IndexFunc(m.records, func(r models.Record) bool {
		return r.ID == id
	})
}
