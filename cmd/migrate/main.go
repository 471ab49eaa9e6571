package main

import (
	"os"

	"github.com/charmbracelet/log"

	"roseboard/backend/internal/config"
	"roseboard/backend/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.LogLevel, "migrate")

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", "path", cfg.DBPath, "err", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, db.Migrations()); err != nil {
		logger.Fatal("run migrations", "err", err)
	}

	logger.Info("migrations applied successfully", "path", cfg.DBPath)
}
