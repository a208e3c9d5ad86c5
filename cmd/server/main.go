package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/preclinic/triage/internal/api"
	"github.com/preclinic/triage/internal/config"
	"github.com/preclinic/triage/internal/domain"
	"github.com/preclinic/triage/internal/kb"
	"github.com/preclinic/triage/internal/llm"
	"github.com/preclinic/triage/internal/store"
)

func main() {
	_ = config.Load()

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Dataset source: Postgres when configured, CSV file otherwise.
	var source domain.DatasetSource
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("loading dataset from database")
		source = store.NewDatasetStore(pool)
	} else {
		logger.Info("loading dataset from file", zap.String("path", config.DatasetPath()))
		source = kb.NewCSVSource(config.DatasetPath())
	}

	records, err := source.Records(ctx)
	if err != nil {
		// An unloadable dataset is degraded mode, not a crash: the engine
		// serves empty results and /health reports it.
		logger.Warn("dataset load failed, starting degraded", zap.Error(err))
	}

	base := kb.Build(records)
	if base.Empty() {
		logger.Warn("knowledge base is empty, scorer and planner will return no results")
	} else {
		logger.Info("knowledge base loaded", zap.Int("conditions", base.Len()))
	}

	llmClient, err := llm.NewClient(config.LLMProvider(), config.LLMAPIKey())
	if err != nil {
		logger.Warn("LLM client initialization failed, questions will use template text",
			zap.String("provider", config.LLMProvider()), zap.Error(err))
	} else {
		logger.Info("LLM client initialized", zap.String("provider", config.LLMProvider()))
	}

	app := api.NewApp(base, llmClient, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
