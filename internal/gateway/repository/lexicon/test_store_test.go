package lexicon

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sarf/internal/lexicon"
	"sarf/internal/scheme"
)

func sampleSnapshot() lexicon.Snapshot {
	return lexicon.Snapshot{
		Roots: []string{"درس", "علم", "كتب"},
		Schemes: []scheme.Scheme{
			{Name: "فاعل", Category: "اسم فاعل"},
			{Name: "مفعول", Category: ""},
		},
	}
}

func TestParseSchemesDefaultsCategory(t *testing.T) {
	in := "فاعل,اسم فاعل\n\nمفعول\nفعال,\nفعيل,صفة, مشبهة\n,orphan\n"
	got, err := ParseSchemes(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []scheme.Scheme{
		{Name: "فاعل", Category: "اسم فاعل"},
		{Name: "مفعول", Category: scheme.DefaultCategory},
		{Name: "فعال", Category: ""},
		{Name: "فعيل", Category: "صفة, مشبهة"},
	}, got)
}

func TestParseRootsKeepsTokensAsWritten(t *testing.T) {
	in := "\ufeffدرس\n  كتب  \n\nab1\n"
	got, err := ParseRoots(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"درس", "كتب", "ab1"}, got)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "data", "roots.txt"), filepath.Join(dir, "data", "schemes.txt"))
	ctx := context.Background()

	empty, err := store.Load(ctx)
	require.NoError(t, err, "missing files load as empty")
	assert.Empty(t, empty.Roots)
	assert.Empty(t, empty.Schemes)

	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	raw, err := os.ReadFile(filepath.Join(dir, "data", "schemes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "فاعل,اسم فاعل\nمفعول,\n", string(raw))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestFileStoreRefusesSchemesThatWouldSplit(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "roots.txt"), filepath.Join(dir, "schemes.txt"))
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	for _, sc := range []scheme.Scheme{
		{Name: "مف,عول", Category: "cat"},
		{Name: "فاعل\nفعال", Category: "x"},
		{Name: "فعول", Category: "a\r\nb"},
	} {
		snap := sampleSnapshot()
		snap.Schemes = append(snap.Schemes, sc)
		assert.ErrorIs(t, store.Save(ctx, snap), lexicon.ErrInvalidScheme, sc.Name)
	}

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got, "previous files are left intact")
}

func TestFileStoreKeepsLexiconSchemesAcrossReload(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileStore(filepath.Join(dir, "roots.txt"), filepath.Join(dir, "schemes.txt"))
	ctx := context.Background()

	s := lexicon.NewStore()
	require.NoError(t, s.AddScheme("فاعل", "اسم فاعل"))
	require.NoError(t, s.AddScheme("فعال", ""))
	assert.ErrorIs(t, s.AddScheme("مف,عول", "cat"), lexicon.ErrInvalidScheme)
	assert.ErrorIs(t, s.AddScheme("فاعل\nفعال", "x"), lexicon.ErrInvalidScheme)
	require.NoError(t, repo.Save(ctx, s.Export()))

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	again, rep := lexicon.NewStoreFrom(snap)
	assert.Empty(t, rep.Skipped)
	assert.Equal(t, s.ListSchemes(), again.ListSchemes())
}

func TestFileStoreFeedsLexicon(t *testing.T) {
	dir := t.TempDir()
	roots := filepath.Join(dir, "roots.txt")
	schemes := filepath.Join(dir, "schemes.txt")
	require.NoError(t, os.WriteFile(roots, []byte("كتب\nدَرَسَ\nxx\n"), 0o644))
	require.NoError(t, os.WriteFile(schemes, []byte("فاعل,اسم فاعل\nمفعول\n"), 0o644))

	snap, err := NewFileStore(roots, schemes).Load(context.Background())
	require.NoError(t, err)

	st, rep := lexicon.NewStoreFrom(snap)
	assert.Equal(t, 2, rep.Roots)
	assert.Equal(t, []string{"xx"}, rep.Skipped)
	ok, name := st.Verify("دارس", "درس")
	assert.True(t, ok)
	assert.Equal(t, "فاعل", name)
}

func TestMemoryStoreCopies(t *testing.T) {
	seed := sampleSnapshot()
	store := NewMemoryStore(seed)
	seed.Roots[0] = "zzz"

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "درس", got.Roots[0])

	require.NoError(t, store.Save(context.Background(), lexicon.Snapshot{Roots: []string{"قول"}}))
	assert.Equal(t, 1, store.Saves())
}

func TestNewS3StoreValidatesConfig(t *testing.T) {
	_, err := NewS3Store(S3Config{Bucket: "b", AccessKey: "a", SecretKey: "s"})
	assert.Error(t, err)
	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", Bucket: "b"})
	assert.Error(t, err)

	s, err := NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "b", Prefix: "/lex/"})
	require.NoError(t, err)
	assert.Equal(t, "lex/", s.prefix)
	assert.Equal(t, "us-east-1", s.region)
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("SARF_TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("SARF_TEST_DATABASE_URL not set")
	}
	store, err := OpenPostgres(dsn)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)

	require.NoError(t, store.Save(ctx, lexicon.Snapshot{}))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Roots)
	assert.Empty(t, got.Schemes)
}
