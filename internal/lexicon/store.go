package lexicon

import (
	"fmt"
	"maps"
	"strings"
	"sync"

	"sarf/internal/morph"
	"sarf/internal/rootree"
	"sarf/internal/scheme"
)

// Derivation is the word one scheme produces for a root.
type Derivation struct {
	Scheme string `json:"scheme"`
	Word   string `json:"word"`
}

// Match is a (root, scheme) pair recovered from a word.
type Match struct {
	Root   string `json:"root"`
	Scheme string `json:"scheme"`
	Word   string `json:"word"`
}

// RootView is a copy of one tree node safe to hand out of the store.
type RootView struct {
	Root        string         `json:"root"`
	Derivatives map[string]int `json:"derivatives"`
}

// Store owns the root tree and the scheme registry. Every exported method is
// atomic: mutations and counter updates take the write lock, lookups share
// the read lock.
type Store struct {
	mu      sync.RWMutex
	roots   rootree.Tree
	schemes *scheme.Registry
}

func NewStore() *Store {
	return &Store{schemes: scheme.NewRegistry()}
}

func cleanToken(s string) string {
	return morph.Normalize(strings.TrimSpace(s))
}

// AddRoot inserts a new root.
func (s *Store) AddRoot(token string) error {
	key := cleanToken(token)
	if !morph.IsValidRootToken(key) {
		return fmt.Errorf("add root %q: %w", token, ErrInvalidToken)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.roots.Insert(key) {
		return fmt.Errorf("add root %q: %w", key, ErrAlreadyExists)
	}
	return nil
}

// DeleteRoot removes a root together with its derived words.
func (s *Store) DeleteRoot(token string) error {
	key := cleanToken(token)
	if !morph.IsValidRootToken(key) {
		return fmt.Errorf("delete root %q: %w", token, ErrInvalidToken)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.roots.Delete(key) {
		return fmt.Errorf("delete root %q: %w", key, ErrNotFound)
	}
	return nil
}

// SearchRoot returns a copy of the node for token.
func (s *Store) SearchRoot(token string) (RootView, bool) {
	key := cleanToken(token)
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := s.roots.Search(key)
	if n == nil {
		return RootView{}, false
	}
	return RootView{Root: n.Key, Derivatives: maps.Clone(n.Derived)}, true
}

// ListRoots returns every root in ascending order.
func (s *Store) ListRoots() []RootView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.roots.InOrder()
	out := make([]RootView, len(entries))
	for i, e := range entries {
		out[i] = RootView{Root: e.Root, Derivatives: maps.Clone(e.Derivatives)}
	}
	return out
}

// AddScheme registers a scheme at the end of the registry.
func (s *Store) AddScheme(name, category string) error {
	key := cleanToken(name)
	if !morph.IsValidSchemeName(key) || strings.ContainsAny(category, "\r\n") {
		return fmt.Errorf("add scheme %q: %w", name, ErrInvalidScheme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.schemes.Add(key, category) {
		return fmt.Errorf("add scheme %q: %w", key, ErrAlreadyExists)
	}
	return nil
}

// RemoveScheme drops a scheme and reports whether it was present.
func (s *Store) RemoveScheme(name string) bool {
	key := cleanToken(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schemes.Remove(key)
}

// ListSchemes returns the schemes in registry order.
func (s *Store) ListSchemes() []scheme.Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schemes.List()
}

// Counts returns the number of roots and schemes.
func (s *Store) Counts() (roots, schemes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roots.Len(), s.schemes.Len()
}

// GenerateAll applies every scheme to root, in registry order.
func (s *Store) GenerateAll(root string) ([]Derivation, error) {
	key := cleanToken(root)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.roots.Contains(key) {
		return nil, fmt.Errorf("generate %q: %w", key, ErrNotFound)
	}
	return s.generateLocked(key), nil
}

// Populate behaves like GenerateAll and also seeds each generated word into
// the root's derived words with a zero count. Existing counts are kept.
func (s *Store) Populate(root string) ([]Derivation, error) {
	key := cleanToken(root)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.roots.Search(key)
	if n == nil {
		return nil, fmt.Errorf("populate %q: %w", key, ErrNotFound)
	}
	out := s.generateLocked(key)
	for _, d := range out {
		if d.Word == "" {
			continue
		}
		if _, ok := n.Derived[d.Word]; !ok {
			n.Derived[d.Word] = 0
		}
	}
	return out, nil
}

func (s *Store) generateLocked(key string) []Derivation {
	names := s.schemes.Names()
	out := make([]Derivation, 0, len(names))
	for _, name := range names {
		word, _ := morph.Apply(key, name)
		out = append(out, Derivation{Scheme: name, Word: word})
	}
	return out
}

// Verify reports the first scheme, in registry order, that turns root into
// word. A match bumps the root's counter for the word.
func (s *Store) Verify(word, root string) (bool, string) {
	key := cleanToken(root)
	w := cleanToken(word)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.roots.Search(key)
	if n == nil {
		return false, ""
	}
	for _, name := range s.schemes.Names() {
		generated, ok := morph.Apply(key, name)
		if ok && generated == w {
			n.Derived[w]++
			return true, name
		}
	}
	return false, ""
}

// Identify inverts word against every scheme of the same length and keeps
// the candidates whose root is already known.
func (s *Store) Identify(word string) []Match {
	w := cleanToken(word)
	size := morph.Length(w)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Match
	for _, name := range s.schemes.Names() {
		if morph.Length(name) != size {
			continue
		}
		letters, ok := morph.Invert(w, name)
		if !ok {
			continue
		}
		candidate := string(letters[:])
		if s.roots.Contains(candidate) {
			out = append(out, Match{Root: candidate, Scheme: name, Word: w})
		}
	}
	return out
}
