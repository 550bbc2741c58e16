package journal

import (
	"context"
	"fmt"
	"sync"

	"github.com/goriiin/go-notes/internal/errs"
)

// Memory keeps the most recent entries in a fixed-size ring.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 1
	}
	return &Memory{entries: make([]Entry, capacity)}
}

func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = e
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.ordered() {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", errs.EntryNotFound, id)
}

// List returns the newest limit entries, oldest first.
func (m *Memory) List(_ context.Context, limit uint32) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.ordered()
	if uint32(len(all)) > limit {
		all = all[uint32(len(all))-limit:]
	}
	out := make([]Entry, len(all))
	copy(out, all)
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}

// ordered must be called with mu held.
func (m *Memory) ordered() []Entry {
	if !m.full {
		return m.entries[:m.next]
	}
	out := make([]Entry, 0, len(m.entries))
	out = append(out, m.entries[m.next:]...)
	return append(out, m.entries[:m.next]...)
}
