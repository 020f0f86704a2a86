package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"moneytracker/internal/amqp"
	"moneytracker/internal/cli"
	"moneytracker/internal/export"
	"moneytracker/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	logger.Info("Starting export-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	var target export.Target
	switch cfg.ExportTarget {
	case "sheets":
		t, err := export.NewSheetsTarget(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Sheets export target", "error", err)
			os.Exit(1)
		}
		target = t
		logger.Info("Sheets export target initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	default:
		target = export.NewCSVTarget(cfg.ExportCSVPath)
		logger.Info("CSV export target initialized", "path", cfg.ExportCSVPath)
	}

	exportWorker := worker.NewExportWorker(repo, target, cfg.ExportBatchSize)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Drain anything that accumulated while the worker was down.
	if err := exportWorker.StartupCheck(ctx); err != nil {
		logger.Error("Startup export check failed", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	// AMQP consumer: export rows as soon as the server announces them.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			return amqpClient.ConsumeLoop(gctx, func(msg *amqp.TransactionCreatedMessage) error {
				return exportWorker.HandleCreatedMessage(gctx, msg)
			})
		})
	} else {
		logger.Info("AMQP disabled, relying on the periodic pending sweep only")
	}

	// Periodic sweep: catches rows whose messages were lost.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := exportWorker.ProcessPending(gctx); err != nil {
					logger.Error("Periodic export sweep failed", "error", err)
				}
			}
		}
	})

	logger.Info("Export worker running",
		"target", cfg.ExportTarget,
		"interval", cfg.ExportInterval,
		"batch_size", cfg.ExportBatchSize)

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Export worker stopped with error", "error", err)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Export worker stopped gracefully")
}
