package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sarf/internal/gateway/config"
	"sarf/internal/gateway/handler"
	"sarf/internal/gateway/handler/rpc"
	"sarf/internal/gateway/server"
	gatewaylexicon "sarf/internal/gateway/service/lexicon"
	"sarf/internal/logging"
	"sarf/internal/telemetry"
)

type App struct {
	server  *server.Server
	service *gatewaylexicon.Service
	log     *zap.Logger
	close   func() error
}

// New loads the configuration and the lexicon and wires the gateway.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg, log)
}

func NewWithConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logging.OrNop(log)

	// Dependencies
	repo, closeRepo, err := openRepository(cfg, log)
	if err != nil {
		return nil, err
	}
	metrics := telemetry.NewMetrics()
	svc, err := gatewaylexicon.New(repo, gatewaylexicon.Options{
		AutoSave:          cfg.Lexicon.AutoSave,
		IdentifyCacheSize: cfg.Lexicon.IdentifyCacheSize,
		Metrics:           metrics,
		Logger:            log,
	})
	if err != nil {
		_ = closeRepo()
		return nil, err
	}
	if _, err := svc.Load(ctx); err != nil {
		_ = closeRepo()
		return nil, err
	}

	lexiconHandler := handler.NewLexiconHandler(svc, log)
	rpcHandler := rpc.NewLexiconHandler(svc)

	// Routing & Server
	mux := server.NewMux(lexiconHandler, rpcHandler, metrics, cfg.AllowedOrigins, log)
	srv := server.New(cfg.Port, mux, log)

	return &App{
		server:  srv,
		service: svc,
		log:     log,
		close:   closeRepo,
	}, nil
}

func (a *App) Logger() *zap.Logger { return a.log }

func (a *App) Start() error {
	return a.server.Start()
}

// Shutdown stops the server, flushes the lexicon and releases the backend.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if saveErr := a.service.Save(ctx); saveErr != nil {
		a.log.Error("final save failed", zap.Error(saveErr))
		if err == nil {
			err = saveErr
		}
	}
	if closeErr := a.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
