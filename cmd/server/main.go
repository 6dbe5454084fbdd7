package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ishistore/backend/internal/ai"
	"github.com/ishistore/backend/internal/assistant"
	"github.com/ishistore/backend/internal/config"
	"github.com/ishistore/backend/internal/db"
	httpapi "github.com/ishistore/backend/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "ishi-backend").Logger()

	ctx := context.Background()
	var store *db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer store.Close()
	} else {
		logger.Info().Msg("no DATABASE_URL, context retrieval disabled")
	}

	var completer ai.Completer = ai.GeminiCompleter{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
	}
	if cfg.GeminiAPIKey == "" && cfg.Env == "dev" {
		completer = ai.MockCompleter{ModelVersion: "mock-v1"}
		logger.Info().Msg("using mock completer")
	}
	if cfg.GeminiAPIKey == "" && cfg.Env != "dev" {
		logger.Warn().Msg("GEMINI_API_KEY not set, assistant endpoint will refuse requests")
	}

	svc := &assistant.Service{Completer: completer, Logger: logger}
	router := httpapi.Router(cfg, store, svc, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
