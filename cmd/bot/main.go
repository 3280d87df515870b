package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bibliobot/database"
	"bibliobot/internal/bot"
	"bibliobot/internal/config"
	"bibliobot/internal/discord"
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
	if err := cfg.RequireDiscord(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("bot_failed", "error", err.Error())
		stop()
		os.Exit(1)
	}
	logger.Info("bot_stopped_gracefully")
}

// run serves interactions over the gateway until ctx is done
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
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

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}
	gateway := discord.NewGateway(session, func(s discord.Sender) *discord.Responder {
		return discord.NewResponder(s, dispatcher, cfg.RequestTimeout, logger)
	}, logger)

	logger.Info("starting_bot",
		"store_backend", cfg.StoreBackend,
		"guild_id", cfg.GuildID,
	)
	if err := gateway.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	<-ctx.Done()
	logger.Info("received_shutdown_signal")
	if err := gateway.Close(); err != nil {
		logger.Error("gateway_close_failed", "error", err.Error())
	}
	return nil
}
