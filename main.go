package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/RubyShuey/Otter/internal/app"
	"github.com/RubyShuey/Otter/internal/config"
	"github.com/RubyShuey/Otter/internal/httpserver"
	"github.com/RubyShuey/Otter/internal/store"
	"github.com/RubyShuey/Otter/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	app.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, ws, err := app.Sources(ctx, cfg.Words)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open word list sources")
	}
	if ws != nil {
		defer ws.Close()
	}
	catalog, err := app.NewCatalog(ctx, sources)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	log.Info().Strs("languages", catalog.Languages()).Msg("word lists loaded")

	if cfg.Words.Watch {
		go func() {
			if err := words.Watch(ctx, catalog, cfg.Words.Debounce); err != nil {
				log.Error().Err(err).Msg("word list watcher stopped")
			}
		}()
	}

	mem := store.NewMemoryStore()
	go mem.Janitor(ctx, cfg.Game.IdleTTL, cfg.Game.JanitorInterval)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      httpserver.New(cfg, mem, catalog),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting otter server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
