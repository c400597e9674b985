package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/config"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/feed"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/logger"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/poller"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/store"
)

// One invocation of this binary is one polling burst. An external
// scheduler (cron or a systemd timer) re-arms it every few minutes.
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	db, err := store.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, stopping burst early...")
		cancel()
	}()

	feedClient := feed.NewClient(&cfg.Feed, log)
	p := poller.New(log, &cfg, feedClient, store.New(db))
	p.Run(ctx)

	log.Info("Polling invocation complete.")
}
