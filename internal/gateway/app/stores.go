package app

import (
	"fmt"

	"go.uber.org/zap"

	"sarf/internal/gateway/config"
	lexiconrepo "sarf/internal/gateway/repository/lexicon"
	"sarf/internal/lexicon"
)

// openRepository picks the lexicon backend named by cfg. The returned close
// function is never nil.
func openRepository(cfg *config.Config, log *zap.Logger) (lexiconrepo.Repository, func() error, error) {
	noop := func() error { return nil }
	lx := cfg.Lexicon
	switch lx.Backend {
	case config.BackendPostgres:
		store, err := lexiconrepo.OpenPostgres(lx.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open lexicon database: %w", err)
		}
		log.Info("lexicon store: postgres")
		return store, store.Close, nil
	case config.BackendS3:
		s3Cfg := lexiconrepo.S3Config{
			Endpoint:  cfg.Snapshot.Endpoint,
			Region:    cfg.Snapshot.Region,
			AccessKey: cfg.Snapshot.AccessKey,
			SecretKey: cfg.Snapshot.SecretKey,
			Bucket:    cfg.Snapshot.Bucket,
			Prefix:    cfg.Snapshot.Prefix,
			UseSSL:    cfg.Snapshot.UseSSL,
		}
		store, err := lexiconrepo.NewS3Store(s3Cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize lexicon s3 store: %w", err)
		}
		log.Info("lexicon store: s3", zap.String("bucket", s3Cfg.Bucket), zap.String("endpoint", s3Cfg.Endpoint))
		return store, noop, nil
	case config.BackendMemory:
		log.Info("lexicon store: in-memory")
		return lexiconrepo.NewMemoryStore(lexicon.Snapshot{}), noop, nil
	default:
		log.Info("lexicon store: files", zap.String("roots", lx.RootsPath), zap.String("schemes", lx.SchemesPath))
		return lexiconrepo.NewFileStore(lx.RootsPath, lx.SchemesPath), noop, nil
	}
}
