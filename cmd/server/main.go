package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Simplici0/framequote/internal/config"
	"github.com/Simplici0/framequote/internal/db"
	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/logging"
	"github.com/Simplici0/framequote/internal/migrations"
	"github.com/Simplici0/framequote/internal/seed"
	"github.com/Simplici0/framequote/internal/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.IsDev())
	if err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, logger); err != nil {
		logger.Fatalf("failed to run database migrations: %v", err)
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		logger.Fatalf("failed to seed database: %v", err)
	}
	logger.WithFields(logrus.Fields{"inserts": stats.Inserts, "updates": stats.Updates}).Info("startup seed complete")

	kv := store.NewSQLStore(database)
	prices := store.NewPriceTable(kv)
	srv := newServer(
		newAuthService(database, cfg.SessionSecret, !cfg.IsDev()),
		estimate.NewEngine(prices, logger),
		prices,
		store.NewProjects(kv),
		logger,
	)

	addr := ":" + cfg.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.WithField("addr", addr).Info("listening")
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
