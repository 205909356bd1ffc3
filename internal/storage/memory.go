package storage

import (
	"sync"
	"time"
)

// Memory is an in-process progress store with the same semantics as Store.
type Memory struct {
	mu      sync.Mutex
	highest int
	clears  []ClearEntry
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// LoadHighestStage returns the saved stage or 1.
func (m *Memory) LoadHighestStage() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.highest < 1 {
		return 1, nil
	}
	return m.highest, nil
}

// SaveHighestStage stores stage if it is higher than the saved value.
func (m *Memory) SaveHighestStage(stage int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if stage > m.highest {
		m.highest = stage
	}
	return nil
}

// ClearHighestStage removes the saved stage.
func (m *Memory) ClearHighestStage() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highest = 0
	return nil
}

// RecordClear appends a stage clear to the history.
func (m *Memory) RecordClear(stage int, seed uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears = append(m.clears, ClearEntry{
		ID:        int64(len(m.clears) + 1),
		Stage:     stage,
		Seed:      seed,
		ClearedAt: m.now(),
	})
	return nil
}

// RecentClears returns the most recent clears, newest first.
func (m *Memory) RecentClears(limit int) ([]ClearEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 10
	}
	var out []ClearEntry
	for i := len(m.clears) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.clears[i])
	}
	return out, nil
}
