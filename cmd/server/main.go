package main

import (
	"os"

	"github.com/charmbracelet/log"

	"roseboard/backend/internal/clock"
	"roseboard/backend/internal/config"
	"roseboard/backend/internal/db"
	"roseboard/backend/internal/handler"
	"roseboard/backend/internal/realtime"
	"roseboard/backend/internal/repository"
	"roseboard/backend/internal/router"
	"roseboard/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.LogLevel, "server")

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", "path", cfg.DBPath, "err", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, db.Migrations()); err != nil {
		logger.Fatal("run migrations", "err", err)
	}

	systemClock := clock.System{}
	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	taskRepo := repository.NewTaskRepository(database)

	profileService := service.NewProfileService(profileRepo, systemClock, cfg.Location, logger)
	authService := service.NewAuthService(userRepo, profileService, cfg.JWTSecret, cfg.TokenTTL, logger)
	messageService := service.NewMessageService(systemClock, cfg.Location)
	taskService := service.NewTaskService(taskRepo, realtime.NewHub(), systemClock, logger)

	engine := router.New(authService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Message: handler.NewMessageHandler(messageService),
		Profile: handler.NewProfileHandler(profileService),
		Task:    handler.NewTaskHandler(taskService),
	}, cfg.CORSOrigins, logger)

	logger.Info("backend listening", "port", cfg.Port, "timezone", cfg.Location.String())
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Fatal("run server", "err", err)
	}
}
