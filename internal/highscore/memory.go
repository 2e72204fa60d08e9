package highscore

import "sync"

// MemoryStore keeps the table in memory only.
type MemoryStore struct {
	limit   int
	entries []Entry
	mu      sync.Mutex
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStore{limit: limit}
}

// Load implements Store.
func (s *MemoryStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...), nil
}

// Record implements Store.
func (s *MemoryStore) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = Rank(append(s.entries, e), s.limit)
	return nil
}

// Reset implements Store.
func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
