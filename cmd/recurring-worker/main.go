package main

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"moneytracker/internal/amqp"
	"moneytracker/internal/cli"
	"moneytracker/internal/recurring"
	"moneytracker/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	logger.Info("Starting recurring-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Materialized bills go through the same append path as form entries,
	// so they are picked up by the export pipeline too.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without export notifications", "error", err)
		} else {
			publisher = amqpClient
			logger.Info("AMQP client initialized")
		}
	} else {
		logger.Info("AMQP disabled, materialized bills rely on the export sweep")
	}

	svc := services.NewTransactionService(repo, publisher)
	defer svc.Close()

	materializer := recurring.NewMaterializer(cfg.RecurringFile, svc)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	runOnce := func() {
		count, err := materializer.Run(ctx, time.Now())
		if err != nil {
			logger.Error("Recurring materialization failed", "error", err)
			return
		}
		if count > 0 {
			logger.Info("Recurring materialization complete", "transactions_created", count)
		}
	}

	logger.Info("Recurring materializer configured",
		"schedule", cfg.RecurringCron,
		"file", cfg.RecurringFile)

	// Catch up immediately in case the process was down over a due day.
	runOnce()

	c := cron.New()
	if _, err := c.AddFunc(cfg.RecurringCron, runOnce); err != nil {
		logger.Error("Invalid cron schedule", "error", err, "schedule", cfg.RecurringCron)
		os.Exit(1)
	}
	c.Start()

	cli.WaitForShutdown(ctx, done)

	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("Recurring worker stopped gracefully")
}
