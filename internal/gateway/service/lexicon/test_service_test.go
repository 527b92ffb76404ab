package lexicon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	lexiconrepo "sarf/internal/gateway/repository/lexicon"
	"sarf/internal/lexicon"
	"sarf/internal/scheme"
	"sarf/internal/telemetry"
)

func newService(t *testing.T, autoSave bool) (*Service, *lexiconrepo.MemoryStore) {
	t.Helper()
	repo := lexiconrepo.NewMemoryStore(lexicon.Snapshot{
		Roots:   []string{"درس", "كتب", "bad"},
		Schemes: []scheme.Scheme{{Name: "فاعل", Category: "اسم فاعل"}, {Name: "مفعول", Category: "اسم مفعول"}},
	})
	svc, err := New(repo, Options{AutoSave: autoSave, IdentifyCacheSize: 8, Metrics: telemetry.NewMetrics()})
	require.NoError(t, err)
	rep, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, rep.Roots)
	require.Equal(t, []string{"bad"}, rep.Skipped)
	return svc, repo
}

func TestServiceAutoSavesMutations(t *testing.T) {
	svc, repo := newService(t, true)
	ctx := context.Background()

	require.NoError(t, svc.AddRoot(ctx, "علم"))
	require.NoError(t, svc.AddScheme(ctx, "فعال", ""))
	require.NoError(t, svc.AddScheme(ctx, "فعيل", scheme.DefaultCategory))
	assert.Equal(t, 3, repo.Saves())

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"درس", "علم", "كتب"}, snap.Roots)
	assert.Equal(t, scheme.Scheme{Name: "فعال", Category: ""}, snap.Schemes[2], "empty category is kept")
	assert.Equal(t, scheme.Scheme{Name: "فعيل", Category: scheme.DefaultCategory}, snap.Schemes[3])

	assert.ErrorIs(t, svc.AddRoot(ctx, "علم"), lexicon.ErrAlreadyExists)
	assert.ErrorIs(t, svc.AddScheme(ctx, "فعال", ""), lexicon.ErrAlreadyExists)
	assert.ErrorIs(t, svc.RemoveScheme(ctx, "فعيل"), lexicon.ErrUnknownScheme)
	assert.ErrorIs(t, svc.DeleteRoot(ctx, "سمع"), lexicon.ErrNotFound)
	assert.Equal(t, 3, repo.Saves(), "rejected mutations are not saved")
}

func TestServiceRejectsSchemeNamesTheFileCodecWouldSplit(t *testing.T) {
	svc, repo := newService(t, true)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddScheme(ctx, "مف,عول", "cat"), lexicon.ErrInvalidScheme)
	assert.ErrorIs(t, svc.AddScheme(ctx, "فاعل\nفعال", "x"), lexicon.ErrInvalidScheme)
	assert.ErrorIs(t, svc.AddScheme(ctx, "   ", ""), lexicon.ErrInvalidScheme)
	assert.ErrorIs(t, svc.AddScheme(ctx, "فعول", "a\r\nb"), lexicon.ErrInvalidScheme)
	assert.Equal(t, 0, repo.Saves())
	assert.Len(t, svc.ListSchemes(), 2)
}

func TestServiceWithoutAutoSave(t *testing.T) {
	svc, repo := newService(t, false)
	ctx := context.Background()
	require.NoError(t, svc.DeleteRoot(ctx, "كتب"))
	assert.Equal(t, 0, repo.Saves())
	require.NoError(t, svc.Save(ctx))
	snap, _ := repo.Load(ctx)
	assert.Equal(t, []string{"درس"}, snap.Roots)
}

func TestServiceIdentifyCacheIsInvalidated(t *testing.T) {
	svc, _ := newService(t, false)
	ctx := context.Background()

	assert.Empty(t, svc.Identify(ctx, "عالم"))
	require.NoError(t, svc.AddRoot(ctx, "علم"))
	assert.Equal(t, []lexicon.Match{{Root: "علم", Scheme: "فاعل", Word: "عالم"}}, svc.Identify(ctx, "عالم"))

	// Served from cache until the schemes change.
	got := svc.Identify(ctx, "عَالِم")
	assert.Len(t, got, 1)
	got[0].Root = "mutated"
	assert.Equal(t, "علم", svc.Identify(ctx, "عالم")[0].Root, "cached slice must not be shared")

	require.NoError(t, svc.RemoveScheme(ctx, "فاعل"))
	assert.Empty(t, svc.Identify(ctx, "عالم"))
}

func TestServiceGeneratePopulatesDerivatives(t *testing.T) {
	svc, _ := newService(t, false)
	ctx := context.Background()

	out, err := svc.Generate(ctx, "كتب")
	require.NoError(t, err)
	assert.Equal(t, []lexicon.Derivation{{Scheme: "فاعل", Word: "كاتب"}, {Scheme: "مفعول", Word: "مكتوب"}}, out)

	view, ok := svc.SearchRoot("كتب")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"كاتب": 0, "مكتوب": 0}, view.Derivatives)

	_, err = svc.Generate(ctx, "سمع")
	assert.ErrorIs(t, err, lexicon.ErrNotFound)
}

func TestServicePublishesEvents(t *testing.T) {
	svc, _ := newService(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, _ := svc.Events().Subscribe(ctx)

	require.NoError(t, svc.AddRoot(ctx, "قول"))
	ok, name := svc.Verify(ctx, "مكتوب", "كتب")
	require.True(t, ok)
	require.Equal(t, "مفعول", name)

	want := []Event{
		{Kind: EventRootAdded, Root: "قول"},
		{Kind: EventWordVerified, Root: "كتب", Scheme: "مفعول", Word: "مكتوب"},
	}
	for _, w := range want {
		select {
		case ev := <-ch:
			ev.At = time.Time{}
			assert.Equal(t, w, ev)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", w.Kind)
		}
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := b.Subscribe(ctx)
	require.Equal(t, 1, b.Subscribers())
	cancel()
	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after cancel")
	}
	assert.Equal(t, 0, b.Subscribers())
	b.Publish(Event{Kind: EventRootAdded})
}

func TestBrokerCancelReleasesWatcher(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	b := NewBroker()
	ch, stop := b.Subscribe(context.Background())
	require.Equal(t, 1, b.Subscribers())
	stop()
	stop()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Subscribers())
}

func TestBrokerDropsOldestWhenFull(t *testing.T) {
	b := NewBroker()
	ch, stop := b.Subscribe(context.Background())
	defer stop()
	for i := 0; i < 20; i++ {
		b.Publish(Event{Kind: EventRootAdded, Root: string(rune('a' + i))})
	}
	first := <-ch
	assert.Equal(t, "e", first.Root)
}
