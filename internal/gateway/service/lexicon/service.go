package lexicon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	lexiconrepo "sarf/internal/gateway/repository/lexicon"
	"sarf/internal/lexicon"
	"sarf/internal/logging"
	"sarf/internal/morph"
	"sarf/internal/scheme"
	"sarf/internal/telemetry"
)

type Options struct {
	AutoSave          bool
	IdentifyCacheSize int
	Metrics           *telemetry.Metrics
	Logger            *zap.Logger
}

// Service fronts a lexicon.Store for the gateway. It persists mutations
// through the repository, caches identify results and publishes changes.
type Service struct {
	store    *lexicon.Store
	repo     lexiconrepo.Repository
	autoSave bool

	cacheMu  sync.Mutex
	cacheGen uint64
	identify *lru.Cache[string, []lexicon.Match]

	saveMu  sync.Mutex
	events  *Broker
	metrics *telemetry.Metrics
	log     *zap.Logger
}

// New creates a service with an empty store. Call Load to fill it from repo.
func New(repo lexiconrepo.Repository, opts Options) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is nil")
	}
	size := opts.IdentifyCacheSize
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, []lexicon.Match](size)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:    lexicon.NewStore(),
		repo:     repo,
		autoSave: opts.AutoSave,
		identify: cache,
		events:   NewBroker(),
		metrics:  opts.Metrics,
		log:      logging.OrNop(opts.Logger),
	}, nil
}

// Store returns the underlying lexicon store.
func (s *Service) Store() *lexicon.Store { return s.store }

// Events returns the change broker.
func (s *Service) Events() *Broker { return s.events }

// Load reads the repository into the store.
func (s *Service) Load(ctx context.Context) (lexicon.LoadReport, error) {
	started := time.Now()
	snap, err := s.repo.Load(ctx)
	if err != nil {
		s.metrics.Observe("load", telemetry.OutcomeError, started)
		return lexicon.LoadReport{}, fmt.Errorf("load lexicon: %w", err)
	}
	rep := s.store.Load(snap)
	s.invalidate()
	s.refreshSizes()
	s.metrics.Observe("load", telemetry.OutcomeOK, started)
	if len(rep.Skipped) > 0 {
		s.log.Warn("skipped invalid root tokens", zap.Strings("tokens", rep.Skipped))
	}
	s.log.Info("lexicon loaded", zap.Int("roots", rep.Roots), zap.Int("schemes", rep.Schemes))
	s.events.Publish(Event{Kind: EventReloaded})
	return rep, nil
}

// Save writes the current roots and schemes to the repository.
func (s *Service) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	started := time.Now()
	snap := s.store.Export()
	if err := s.repo.Save(ctx, snap); err != nil {
		s.metrics.Observe("save", telemetry.OutcomeError, started)
		return fmt.Errorf("save lexicon: %w", err)
	}
	s.metrics.Observe("save", telemetry.OutcomeOK, started)
	s.log.Debug("lexicon saved", zap.Int("roots", len(snap.Roots)), zap.Int("schemes", len(snap.Schemes)))
	return nil
}

func (s *Service) AddRoot(ctx context.Context, token string) error {
	started := time.Now()
	if err := s.store.AddRoot(token); err != nil {
		s.metrics.Observe("add_root", outcomeOf(err), started)
		return err
	}
	root := clean(token)
	s.mutated(ctx, Event{Kind: EventRootAdded, Root: root})
	s.metrics.Observe("add_root", telemetry.OutcomeOK, started)
	s.log.Info("root added", zap.String("root", root))
	return nil
}

func (s *Service) DeleteRoot(ctx context.Context, token string) error {
	started := time.Now()
	if err := s.store.DeleteRoot(token); err != nil {
		s.metrics.Observe("delete_root", outcomeOf(err), started)
		return err
	}
	root := clean(token)
	s.mutated(ctx, Event{Kind: EventRootDeleted, Root: root})
	s.metrics.Observe("delete_root", telemetry.OutcomeOK, started)
	s.log.Info("root deleted", zap.String("root", root))
	return nil
}

func (s *Service) SearchRoot(token string) (lexicon.RootView, bool) {
	return s.store.SearchRoot(token)
}

func (s *Service) ListRoots() []lexicon.RootView {
	return s.store.ListRoots()
}

func (s *Service) ListSchemes() []scheme.Scheme {
	return s.store.ListSchemes()
}

// AddScheme registers a scheme with category as given. Callers pick the
// default category when the client did not send one.
func (s *Service) AddScheme(ctx context.Context, name, category string) error {
	started := time.Now()
	name = clean(name)
	if err := s.store.AddScheme(name, category); err != nil {
		s.metrics.Observe("add_scheme", outcomeOf(err), started)
		return err
	}
	s.mutated(ctx, Event{Kind: EventSchemeAdded, Scheme: name, Category: category})
	s.metrics.Observe("add_scheme", telemetry.OutcomeOK, started)
	s.log.Info("scheme added", zap.String("scheme", name), zap.String("category", category))
	return nil
}

func (s *Service) RemoveScheme(ctx context.Context, name string) error {
	started := time.Now()
	name = clean(name)
	if !s.store.RemoveScheme(name) {
		s.metrics.Observe("remove_scheme", telemetry.OutcomeMiss, started)
		return fmt.Errorf("remove scheme %q: %w", name, lexicon.ErrUnknownScheme)
	}
	s.mutated(ctx, Event{Kind: EventSchemeRemoved, Scheme: name})
	s.metrics.Observe("remove_scheme", telemetry.OutcomeOK, started)
	s.log.Info("scheme removed", zap.String("scheme", name))
	return nil
}

// Generate lists the words of every scheme for root and records them as
// known derivatives of that root.
func (s *Service) Generate(_ context.Context, root string) ([]lexicon.Derivation, error) {
	started := time.Now()
	out, err := s.store.Populate(root)
	if err != nil {
		s.metrics.Observe("generate", outcomeOf(err), started)
		return nil, err
	}
	s.metrics.Observe("generate", telemetry.OutcomeOK, started)
	return out, nil
}

func (s *Service) Verify(_ context.Context, word, root string) (bool, string) {
	started := time.Now()
	ok, name := s.store.Verify(word, root)
	if !ok {
		s.metrics.Observe("verify", telemetry.OutcomeMiss, started)
		return false, ""
	}
	s.metrics.Observe("verify", telemetry.OutcomeOK, started)
	s.events.Publish(Event{Kind: EventWordVerified, Root: clean(root), Scheme: name, Word: clean(word)})
	return true, name
}

// Identify recovers the known roots behind word. Results are cached per
// normalized word until the next root or scheme change.
func (s *Service) Identify(_ context.Context, word string) []lexicon.Match {
	started := time.Now()
	key := clean(word)

	s.cacheMu.Lock()
	gen := s.cacheGen
	cached, hit := s.identify.Get(key)
	s.cacheMu.Unlock()
	s.metrics.CacheLookup(hit)
	if hit {
		s.metrics.Observe("identify", outcomeOfMatches(cached), started)
		return cloneMatches(cached)
	}

	out := s.store.Identify(key)

	s.cacheMu.Lock()
	if s.cacheGen == gen {
		s.identify.Add(key, cloneMatches(out))
	}
	s.cacheMu.Unlock()
	s.metrics.Observe("identify", outcomeOfMatches(out), started)
	return out
}

func (s *Service) mutated(ctx context.Context, ev Event) {
	s.invalidate()
	s.refreshSizes()
	s.events.Publish(ev)
	if !s.autoSave {
		return
	}
	if err := s.Save(ctx); err != nil {
		s.log.Error("autosave failed", zap.String("event", string(ev.Kind)), zap.Error(err))
	}
}

func (s *Service) invalidate() {
	s.cacheMu.Lock()
	s.cacheGen++
	s.identify.Purge()
	s.cacheMu.Unlock()
}

func (s *Service) refreshSizes() {
	roots, schemes := s.store.Counts()
	s.metrics.SetSizes(roots, schemes)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case errors.Is(err, lexicon.ErrNotFound):
		return telemetry.OutcomeMiss
	case errors.Is(err, lexicon.ErrInvalidToken), errors.Is(err, lexicon.ErrInvalidScheme),
		errors.Is(err, lexicon.ErrAlreadyExists):
		return telemetry.OutcomeRejected
	}
	return telemetry.OutcomeError
}

func outcomeOfMatches(m []lexicon.Match) string {
	if len(m) == 0 {
		return telemetry.OutcomeMiss
	}
	return telemetry.OutcomeOK
}

func cloneMatches(in []lexicon.Match) []lexicon.Match {
	if len(in) == 0 {
		return nil
	}
	out := make([]lexicon.Match, len(in))
	copy(out, in)
	return out
}

func clean(s string) string {
	return morph.Normalize(strings.TrimSpace(s))
}
