package lexicon

import (
	"sarf/internal/morph"
	"sarf/internal/scheme"
)

// Snapshot is the persisted shape of a store: root tokens and schemes.
type Snapshot struct {
	Roots   []string        `json:"roots" yaml:"roots"`
	Schemes []scheme.Scheme `json:"schemes" yaml:"schemes"`
}

// LoadReport summarizes a bulk load.
type LoadReport struct {
	Roots   int      `json:"roots"`
	Schemes int      `json:"schemes"`
	Skipped []string `json:"skipped,omitempty"`
}

// Load bulk-inserts snap into the store. Root tokens that are not three
// letters and scheme names that are not letters are skipped and reported;
// duplicates are ignored. A scheme that is already registered takes the
// category from snap.
func (s *Store) Load(snap Snapshot) LoadReport {
	var rep LoadReport
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, raw := range snap.Roots {
		key := cleanToken(raw)
		if key == "" {
			continue
		}
		if !morph.IsValidRootToken(key) {
			rep.Skipped = append(rep.Skipped, raw)
			continue
		}
		if s.roots.Insert(key) {
			rep.Roots++
		}
	}
	for _, sc := range snap.Schemes {
		name := cleanToken(sc.Name)
		if name == "" {
			continue
		}
		if !morph.IsValidSchemeName(name) {
			rep.Skipped = append(rep.Skipped, sc.Name)
			continue
		}
		if !s.schemes.Has(name) {
			rep.Schemes++
		}
		s.schemes.Put(name, sc.Category)
	}
	return rep
}

// Export returns the roots in ascending order and the schemes in registry
// order.
func (s *Store) Export() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Roots: s.roots.Keys(), Schemes: s.schemes.List()}
}

// NewStoreFrom builds a store from a snapshot.
func NewStoreFrom(snap Snapshot) (*Store, LoadReport) {
	s := NewStore()
	rep := s.Load(snap)
	return s, rep
}
