package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bibliobot/database"
	"bibliobot/internal/bot"
	"bibliobot/internal/config"
	"bibliobot/internal/discord"
	"bibliobot/internal/httpapi"
	"bibliobot/internal/render"
	"bibliobot/internal/service"
)

var openRepository = database.OpenRepository

func main() {
	// Load config (fallback to env/default)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if err := cfg.RequirePublicKey(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server_error", "error", err.Error())
		stop()
		os.Exit(1)
	}
	logger.Info("server_stopped_gracefully")
}

// run serves the interactions endpoint until ctx is done or the listener fails
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	publicKey, err := httpapi.ParsePublicKey(cfg.DiscordPublicKey)
	if err != nil {
		return fmt.Errorf("invalid DISCORD_PUBLIC_KEY: %w", err)
	}

	repo, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer closeRepo()

	dispatcher := bot.NewDispatcher(
		service.NewCatalogService(repo, logger),
		&render.Formatter{ThumbnailURL: cfg.ListThumbnailURL},
		logger,
	)

	// The session is only used for REST calls, it never opens the gateway
	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}
	responder := discord.NewResponder(session, dispatcher, cfg.RequestTimeout, logger)
	handler := httpapi.NewInteractionHandler(responder, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpapi.NewRouter(publicKey, handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_interactions_server", "addr", srv.Addr, "store_backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server_shutdown_failed", "error", err.Error())
		}
		handler.Wait()
		return nil
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	}
}
