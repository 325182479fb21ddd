package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/helderruiz/controle-mensal/internal/cli"
	"github.com/helderruiz/controle-mensal/internal/events"
	"github.com/helderruiz/controle-mensal/internal/export"
	"github.com/helderruiz/controle-mensal/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting controle-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the export worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheet, err := export.NewGoogleSheet(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	worker := export.NewWorker(repo, sheet, logger)

	var amqpClient *events.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("AMQP disabled, relying on reconcile loop only")
	}

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Initial export so a fresh sheet catches up before any message lands.
	if err := worker.Reconcile(shutdownCtx); err != nil {
		logger.Error("Startup reconcile failed", log.FieldError, err.Error())
	}

	g, gctx := errgroup.WithContext(shutdownCtx)

	if amqpClient != nil {
		g.Go(func() error {
			err := amqpClient.ConsumeLedgerChanged(gctx, func(msg *events.LedgerChangedMessage) error {
				return worker.HandleLedgerChanged(gctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := worker.Reconcile(gctx); err != nil {
					logger.Error("Periodic reconcile failed", log.FieldError, err.Error())
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err.Error())
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Worker stopped gracefully")
}
