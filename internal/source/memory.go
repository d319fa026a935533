package source

import (
	"context"
	"sync"
	"time"

	"dwh-dashboard/internal/table"
)

type memoryEntry struct {
	rows    []table.Row
	expires time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Domain]memoryEntry
	version int64
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[Domain]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Version(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version, nil
}

func (s *MemoryStore) Load(_ context.Context, d Domain) ([]table.Row, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[d]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, d)
		return nil, false, nil
	}
	return e.rows, true, nil
}

// Save drops rows saved under an outdated version.
func (s *MemoryStore) Save(_ context.Context, d Domain, version int64, rows []table.Row, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if version != s.version {
		return nil
	}
	s.entries[d] = memoryEntry{rows: rows, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.entries)
	s.version++
	return nil
}
