package lexicon

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"sarf/internal/lexicon"
)

// FileStore keeps the lexicon as two line-oriented text files.
type FileStore struct {
	rootsPath   string
	schemesPath string

	mu sync.Mutex
}

func NewFileStore(rootsPath, schemesPath string) *FileStore {
	return &FileStore{rootsPath: rootsPath, schemesPath: schemesPath}
}

func (s *FileStore) Load(ctx context.Context) (lexicon.Snapshot, error) {
	if s == nil {
		return lexicon.Snapshot{}, fmt.Errorf("store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap lexicon.Snapshot
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readIfExists(s.rootsPath, func(r io.Reader) (err error) {
			snap.Roots, err = ParseRoots(r)
			return err
		})
	})
	g.Go(func() error {
		return readIfExists(s.schemesPath, func(r io.Reader) (err error) {
			snap.Schemes, err = ParseSchemes(r)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return lexicon.Snapshot{}, err
	}
	return snap, nil
}

func (s *FileStore) Save(_ context.Context, snap lexicon.Snapshot) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var roots, schemes bytes.Buffer
	if err := WriteRoots(&roots, snap.Roots); err != nil {
		return err
	}
	if err := WriteSchemes(&schemes, snap.Schemes); err != nil {
		return err
	}
	if err := writeAtomic(s.rootsPath, roots.Bytes()); err != nil {
		return fmt.Errorf("save roots: %w", err)
	}
	if err := writeAtomic(s.schemesPath, schemes.Bytes()); err != nil {
		return fmt.Errorf("save schemes: %w", err)
	}
	return nil
}

func readIfExists(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	return read(f)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
