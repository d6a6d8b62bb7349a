package store

import (
	"context"
	"sync"

	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/risk"
)

// Memory is an in-process Store. Ids start at 1 and are never reused.
type Memory struct {
	mu      sync.RWMutex
	records []risk.Record
	nextID  int64
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) Create(_ context.Context, in risk.Input) (risk.Record, error) {
	in, err := prepare(in)
	if err != nil {
		return risk.Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	r := risk.NewRecord(m.nextID, in)
	m.nextID++
	m.records = append(m.records, r)
	return r, nil
}

func (m *Memory) List(_ context.Context, filter register.Filter) ([]risk.Record, error) {
	if filter == "" {
		filter = register.FilterAll
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return register.Select(m.records, filter), nil
}

func (m *Memory) Get(_ context.Context, id int64) (risk.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return risk.Record{}, ErrNotFound
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i:i], m.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	return nil
}
