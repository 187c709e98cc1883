package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/enabha/assist/internal/api/genai"
	"github.com/enabha/assist/internal/assist"
	"github.com/enabha/assist/internal/config"
	"github.com/enabha/assist/internal/httpapi"
	"github.com/enabha/assist/internal/server"
	"github.com/enabha/assist/internal/storage"
	"github.com/enabha/assist/internal/storage/memory"
	"github.com/enabha/assist/internal/storage/sqlite"
	"github.com/enabha/assist/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer("enabha-assist", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GenAI.APIKey == "" {
		log.Fatal("genai.api_key is required (set ENABHA_GENAI__API_KEY or config.yaml)")
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	clientOpts := []genai.ClientOption{
		genai.WithModel(cfg.GenAI.Model),
		genai.WithLogger(logger),
	}
	if cfg.GenAI.BaseURL != "" {
		clientOpts = append(clientOpts, genai.WithBaseURL(cfg.GenAI.BaseURL))
	}
	client := genai.NewClient(cfg.GenAI.APIKey, clientOpts...)

	analyzer := assist.NewAnalyzer(client, assist.WithLogger(logger))

	srv := server.New(cfg.Server.Port, logger, cfg.Auth.APIKey)
	httpapi.NewHandler(analyzer, store, logger).Register(srv.Router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server shutdown complete")
}

func newStore(cfg *config.Config) (storage.AnalysisStore, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		return sqlite.New(cfg.Storage.SQLite.Path)
	default:
		return memory.New(), nil
	}
}
