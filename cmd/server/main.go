package main

import (
	"net/http"

	"PassVault/internal/config"
	"PassVault/internal/handlers"
	"PassVault/internal/mailer"
	"PassVault/internal/middleware"
	"PassVault/internal/repo"
	"PassVault/internal/service"
	"PassVault/internal/watch"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	mail := mailer.NewMailer(cfg, sugar)
	hub := watch.NewHub()

	userService := service.NewUserService(
		repo.NewUserRepository(gormDB),
		repo.NewResetTokenRepository(gormDB),
		mail,
		sugar,
	)
	vaultService := service.NewVaultService(repo.NewRecordRepository(gormDB), hub, sugar)

	h := handlers.NewHandler(userService, vaultService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
