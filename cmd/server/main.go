package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/db"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/repository"
	"github.com/osa911/folio/internal/server"
	"github.com/osa911/folio/internal/service"
	"github.com/osa911/folio/internal/tasks"
	"github.com/osa911/folio/internal/telemetry"
	"github.com/osa911/folio/internal/version"
)

func main() {
	// Set development environment variables
	if os.Getenv("ENV") == "" {
		os.Setenv("ENV", "development")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.GetGlobalLogger().Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logConfig := logging.DefaultConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.File = cfg.LogFile

	// Configure and get logger
	if err := logging.InitLogger(logConfig); err != nil {
		logging.GetGlobalLogger().Error("Failed to initialize logger: %v", err)
		os.Exit(1)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()
	logger.SetLogRequests(cfg.LogRequests)

	logger.Info("Starting folio API %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		logger.Error("Failed to initialize telemetry: %v", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	repo, conn, err := openRepository(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	if conn != nil {
		defer conn.Close()
	}

	deliverers := []service.Deliverer{service.NewLogDelivery(logger)}
	if telegram := service.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramChatID); telegram.Configured() {
		deliverers = append(deliverers, telegram)
		logger.Info("Telegram delivery enabled")
	}
	contactService := service.NewContactService(repo, logger, deliverers...)

	// Start contact cleanup task
	retention := time.Duration(cfg.ContactRetentionDays) * 24 * time.Hour
	cleanup := tasks.NewContactCleanup(contactService, retention, tasks.DefaultCleanupInterval, logger)
	cleanup.Start(ctx)
	defer cleanup.Stop()

	srv, err := server.NewServer(cfg, server.Dependencies{
		Contact:   contactService,
		Recaptcha: service.NewRecaptchaService(cfg.RecaptchaSecretKey),
	})
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	if err := srv.Init(); err != nil {
		logger.Error("Failed to initialize server: %v", err)
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped with error: %v", err)
		return
	}
	logger.Info("Server stopped")
}

// openRepository connects to PostgreSQL when a URL is configured and keeps
// messages in memory otherwise
func openRepository(ctx context.Context, databaseURL string, logger *logging.Logger) (repository.ContactRepository, *sql.DB, error) {
	if databaseURL == "" {
		logger.Warn("DATABASE_URL not set, contact messages are kept in memory")
		return repository.NewMemoryContactRepository(), nil, nil
	}

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	logger.Info("Connected to PostgreSQL")
	return repository.NewPgContactRepository(conn), conn, nil
}
