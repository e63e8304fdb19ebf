package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mabiwatch/mabiwatch/internal/bot"
	"github.com/mabiwatch/mabiwatch/internal/config"
	"github.com/mabiwatch/mabiwatch/internal/market"
	"github.com/mabiwatch/mabiwatch/internal/monitor"
	"github.com/mabiwatch/mabiwatch/internal/registry"
	"github.com/mabiwatch/mabiwatch/internal/store"
)

func main() {
	// Values already in the environment win over the .env file; a missing
	// file is fine.
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration. Failures are fatal before any network activity.
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("starting mabiwatch",
		"api_url", cfg.APIURL,
		"interval", cfg.CheckInterval,
		"threshold", cfg.DiscountThreshold,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Open the item store and hydrate the registry
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open item store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	reg := registry.New(st, logger)
	if err := reg.Load(ctx, cfg.Items); err != nil {
		logger.Error("failed to load item registry", "error", err)
		os.Exit(1)
	}

	// Create market API client
	client := market.NewClient(
		cfg.APIURL,
		cfg.APIKey,
		market.WithTimeout(cfg.RequestTimeout),
		market.WithLogger(logger),
	)
	defer client.CloseIdleConnections()

	// Wire the Discord adapter and the monitor to each other
	b, err := bot.New(cfg.BotToken, cfg.ChannelID, reg, logger)
	if err != nil {
		logger.Error("failed to create discord session", "error", err)
		os.Exit(1)
	}

	mon := monitor.New(monitor.Config{
		Interval:  cfg.CheckInterval,
		Timeout:   cfg.RequestTimeout,
		Threshold: cfg.DiscountThreshold,
	}, client, reg, b, logger)
	b.BindMonitor(mon)

	if err := b.Open(); err != nil {
		logger.Error("failed to connect to discord", "error", err)
		os.Exit(1)
	}

	// First sweep waits for the gateway READY event so channel resolution
	// cannot race the connection.
	if err := mon.Start(ctx, b.Ready()); err != nil {
		logger.Error("failed to start monitor", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := mon.Stop(shutdownCtx); err != nil {
		logger.Warn("monitor did not stop cleanly", "error", err)
	}
	if err := b.Close(); err != nil {
		logger.Warn("discord session close failed", "error", err)
	}

	logger.Info("shutdown complete")
}

// openStore selects the persistence backend: Postgres when DATABASE_URL is
// set, the dotenv file otherwise.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		logger.Info("using postgres item store")
		return store.NewPGStore(ctx, cfg.DatabaseURL)
	}

	logger.Info("using file item store", "path", cfg.ItemsFile)
	return store.NewFileStore(cfg.ItemsFile), nil
}
