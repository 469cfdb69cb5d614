package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/credential-vault/internal/config"
	"github.com/dimitrije/credential-vault/internal/handlers"
	authmw "github.com/dimitrije/credential-vault/internal/middleware"
	"github.com/dimitrije/credential-vault/internal/services"
	"github.com/dimitrije/credential-vault/internal/storage"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	vaultService := vault.NewService(store, logger)
	owner, err := vaultService.Init(ctx, vault.Identity(cfg.VaultOwner))
	if err != nil {
		logger.Error("failed to initialize vault", "error", err)
		closeStore()
		os.Exit(1)
	}
	logger.Info("vault initialized", "owner", owner)

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	credentialHandler := handlers.NewCredentialHandler(vaultService, logger)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})
	api.Get("/owner", credentialHandler.Owner)

	protected := api.Group("")
	protected.Use(authmw.RateLimit(authmw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/credentials", credentialHandler.List)
	protected.Post("/credentials", credentialHandler.Add)
	protected.Patch("/credentials", credentialHandler.Update)
	protected.Delete("/credentials", credentialHandler.Delete)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logger.Info("server starting", "addr", addr, "store", cfg.Store)
		if err := app.Run(addr); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
}
