package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sarf/internal/gateway/config"
)

func TestNewWithConfigFileBackend(t *testing.T) {
	dir := t.TempDir()
	roots := filepath.Join(dir, "roots.txt")
	schemes := filepath.Join(dir, "schemes.txt")
	if err := os.WriteFile(roots, []byte("كتب\nدرس\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(schemes, []byte("فاعل,اسم فاعل\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Port: ":0",
		Env:  "test",
		Lexicon: config.LexiconConfig{
			Backend:     config.BackendFile,
			RootsPath:   roots,
			SchemesPath: schemes,
		},
	}
	a, err := NewWithConfig(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if n := len(a.service.ListRoots()); n != 2 {
		t.Fatalf("expected 2 roots loaded, got %d", n)
	}
	if err := a.service.AddRoot(context.Background(), "علم"); err != nil {
		t.Fatalf("add root: %v", err)
	}
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	raw, err := os.ReadFile(roots)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(raw); got != "درس\nعلم\nكتب\n" {
		t.Fatalf("roots not flushed on shutdown: %q", got)
	}
}

func TestOpenRepositoryMemory(t *testing.T) {
	cfg := &config.Config{Lexicon: config.LexiconConfig{Backend: config.BackendMemory}}
	a, err := NewWithConfig(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if n := len(a.service.ListSchemes()); n != 0 {
		t.Fatalf("memory backend should start empty, got %d schemes", n)
	}
}

func TestOpenRepositoryS3RejectsIncompleteConfig(t *testing.T) {
	cfg := &config.Config{
		Lexicon:  config.LexiconConfig{Backend: config.BackendS3},
		Snapshot: config.SnapshotConfig{Bucket: "sarf"},
	}
	if _, err := NewWithConfig(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for missing s3 endpoint")
	}
}
