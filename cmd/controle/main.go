package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/helderruiz/controle-mensal/internal/cli"
	"github.com/helderruiz/controle-mensal/internal/events"
	apphttp "github.com/helderruiz/controle-mensal/internal/http"
	"github.com/helderruiz/controle-mensal/internal/log"
	"github.com/helderruiz/controle-mensal/internal/services"
	"github.com/helderruiz/controle-mensal/internal/session"
	"github.com/helderruiz/controle-mensal/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	// Persistence backend for the ledger snapshot.
	var snapshotter store.Snapshotter = store.NullSnapshotter{}
	var closeStorage func()
	if cfg.DataBackend == "sqlite" {
		repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
		snapshotter = repo
		closeStorage = func() { _ = repo.Close() }
		logger.Info("Initialized SQLite backend", log.FieldPath, cfg.SQLiteDBPath)
	} else {
		logger.Info("Initialized memory backend")
	}

	st, err := store.New(ctx, snapshotter)
	if err != nil {
		logger.Error("Failed to initialize transaction store", log.FieldError, err.Error())
		os.Exit(1)
	}

	// Change notifications are optional; without AMQP the export worker
	// falls back to its reconcile loop.
	var publisher services.Publisher
	var closeEvents func()
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
			os.Exit(1)
		}
		publisher = client
		closeEvents = func() { _ = client.Close() }
		logger.Info("Initialized AMQP publisher", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled, change notifications off")
	}

	var gateway session.Gateway
	if cfg.AuthBaseURL != "" {
		gateway = session.NewClient(cfg.AuthBaseURL, cfg.AuthAPIKey)
		logger.Info("Initialized auth gateway", "base_url", cfg.AuthBaseURL)
	} else {
		logger.Info("Auth gateway disabled")
	}

	sessions := session.NewState()
	sessions.OnChange(func(status session.Status, _ *session.Session) {
		logger.Info("Session state changed", "status", status.String())
	})

	ledger := services.NewLedgerService(st, publisher, logger)
	reports := services.NewReportService(st, logger)
	srv := apphttp.NewServer(":"+cfg.Port, ledger, reports, sessions, gateway, logger)

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		if closeEvents != nil {
			closeEvents()
		}
		if closeStorage != nil {
			closeStorage()
		}
	})

	logger.Info("Starting controle server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}
