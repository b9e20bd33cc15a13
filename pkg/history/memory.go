package history

import (
	"context"
	"sync"
)

// MemoryStorage keeps entries in memory. Intended for tests and
// single-process setups that only need the trail for debugging.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStorage) List(_ context.Context, filter Filter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	// Entries append in commit order; walk backwards for newest-first.
	for i := len(s.entries) - 1; i >= 0; i-- {
		if !filter.matches(s.entries[i]) {
			continue
		}
		out = append(out, s.entries[i])
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// Len reports the total number of stored entries.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
