package source

import (
	"context"
	"sync"

	"github.com/nrfta/searchresult-go"
)

// Memory keeps record sets in process memory. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	sets map[string][]searchresult.Record
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sets: make(map[string][]searchresult.Record)}
}

// Read returns a copy of the records stored for identifier.
func (m *Memory) Read(ctx context.Context, identifier string) ([]searchresult.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.sets[identifier]), nil
}

// Write replaces the records of identifier with a copy of records.
func (m *Memory) Write(ctx context.Context, identifier string, records []searchresult.Record) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[identifier] = cloneRecords(records)
	return nil
}

// Delete forgets identifier.
func (m *Memory) Delete(identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, identifier)
}
