package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/config"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/logger"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/orders"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/server"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := store.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	st := store.New(db)
	handler := server.NewHandler(log, st, orders.NewService(log, st))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting admin API server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, handler.Routes()); err != nil {
		log.Fatal("Admin API server failed", zap.Error(err))
	}
}
