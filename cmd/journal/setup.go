package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/sandevgo/journal/internal/config"
	"github.com/sandevgo/journal/internal/core"
	"github.com/sandevgo/journal/internal/providers/llm"
	"github.com/sandevgo/journal/internal/service/command"
	"github.com/sandevgo/journal/internal/service/journal"
	"github.com/sandevgo/journal/internal/service/memory"
	"github.com/sandevgo/journal/internal/storage/sqlite"
	"github.com/sandevgo/journal/internal/storage/vector"
	httptransport "github.com/sandevgo/journal/internal/transport/http"
	"github.com/sandevgo/journal/internal/transport/telegram"
	"github.com/sandevgo/journal/pkg/log"
	"github.com/sandevgo/journal/pkg/retry"
	"github.com/sandevgo/journal/pkg/srv"
)

type App struct {
	cfg      *config.AppConfig
	journal  *journal.Journal
	router   *command.Router
	probes   []core.Pinger
	services []srv.Service
}

// NewApp wires storage, providers and the journal service. Closers are
// collected as services so they run on shutdown.
func NewApp(ctx context.Context) (*App, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	cfg, err := config.ParseAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	app := &App{cfg: cfg}

	// 1. Storage
	db, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.services = append(app.services, srv.NewCleanup(db.Close))

	index, err := vector.New(ctx, cfg.GetVectorPath(), cfg.VectorCompress)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory index: %w", err)
	}

	// 2. Providers
	embedder, err := llm.NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	chat, err := llm.NewChatProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm provider: %w", err)
	}

	for _, p := range []any{embedder, chat} {
		if pinger, ok := p.(core.Pinger); ok {
			app.probes = append(app.probes, pinger)
		}
	}

	// 3. Memory + journal
	gateway := memory.NewGateway(embedder)
	app.journal = journal.NewJournal(
		sqlite.NewSessionsRepo(db),
		sqlite.NewMessagesRepo(db),
		memory.NewWriter(gateway, index),
		memory.NewRecaller(gateway, index, cfg.MinMemoryLength),
		journal.NewGenerator(chat),
		cfg.RecallK,
	)
	app.router = command.New(command.NewCommands(app.journal))

	return app, nil
}

// Transports builds the long-running services for `serve`.
func (a *App) Transports(ctx context.Context) ([]srv.Service, error) {
	services := []srv.Service{
		httptransport.NewServer(a.cfg.HTTPAddr, a.journal),
	}

	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.journal, a.router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

// WaitReady blocks until every provider that can be probed answers.
func (a *App) WaitReady(ctx context.Context) error {
	if !a.cfg.StartupWait {
		return nil
	}

	logger := log.FromCtx(ctx)
	for _, p := range a.probes {
		r := retry.NewRetrier(retry.NewStartupConfig()).WithNotify(func(attempt int, err error, next time.Duration) {
			logger.Warn().Err(err).Int("attempt", attempt).Dur("next", next).Msgf("%T not ready", p)
		})
		if err := r.Do(ctx, p.Ping); err != nil {
			return fmt.Errorf("%T not reachable: %w", p, err)
		}
	}
	return nil
}

// Close releases storage outside of the service lifecycle.
func (a *App) Close(ctx context.Context) {
	for i := len(a.services) - 1; i >= 0; i-- {
		if err := a.services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", a.services[i])
		}
	}
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
