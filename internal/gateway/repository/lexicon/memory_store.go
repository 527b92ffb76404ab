package lexicon

import (
	"context"
	"slices"
	"sync"

	"sarf/internal/lexicon"
)

// MemoryStore keeps the last saved snapshot in process.
type MemoryStore struct {
	mu    sync.RWMutex
	snap  lexicon.Snapshot
	saves int
}

func NewMemoryStore(seed lexicon.Snapshot) *MemoryStore {
	return &MemoryStore{snap: cloneSnapshot(seed)}
}

func (s *MemoryStore) Load(_ context.Context) (lexicon.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snap), nil
}

func (s *MemoryStore) Save(_ context.Context, snap lexicon.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = cloneSnapshot(snap)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func cloneSnapshot(in lexicon.Snapshot) lexicon.Snapshot {
	return lexicon.Snapshot{
		Roots:   slices.Clone(in.Roots),
		Schemes: slices.Clone(in.Schemes),
	}
}
