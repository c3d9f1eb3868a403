package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/daymate/internal/api"
	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/services"
	"gorm.io/gorm"
)

const (
	shutdownTimeout      = 10 * time.Second
	revokedTokenPurgeGap = time.Hour
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(parent context.Context, configPath string) error {
	cfg, appLogger, accessLog, err := loadRuntime(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	location, err := cfg.Location()
	if err != nil {
		return err
	}
	secret, err := cfg.Secret()
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer db.Close(database)

	handler, err := api.NewHandler(api.HandlerConfig{
		Database: database,
		Location: location,
		Tokens: services.TokenSettings{
			Secret:     secret,
			AccessTTL:  cfg.Auth.AccessTokenTTL,
			RefreshTTL: cfg.Auth.RefreshTokenTTL,
		},
		CookieSecure: cfg.HTTP.CookieSecure,
		Logger:       appLogger,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, accessLog)

	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go purgeRevokedTokens(sigCtx, database, appLogger, revokedTokenPurgeGap)

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error("server shutdown failed", "err", err)
		}
	}()

	appLogger.Info("daymate listening",
		"addr", cfg.HTTP.Address,
		"driver", cfg.Database.Driver,
		"tz", location.String(),
	)
	if err := app.Listen(cfg.HTTP.Address); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Daymate",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: accessLog,
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

// purgeRevokedTokens drops revocations whose tokens have expired anyway.
func purgeRevokedTokens(ctx context.Context, database *gorm.DB, appLogger *log.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		purged, err := db.NewRevokedTokenRepository(database).PurgeExpired(time.Now().UTC())
		switch {
		case err != nil:
			appLogger.Warn("purge revoked tokens failed", "err", err)
		case purged > 0:
			appLogger.Debug("purged revoked tokens", "count", purged)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
