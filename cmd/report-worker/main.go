package main

import (
	"context"
	"errors"
	"os"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/analytics"
	"saldo/internal/cli"
	"saldo/internal/config"
	applog "saldo/internal/log"
	"saldo/internal/worker"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(applog.ComponentWorker)
	logger.Info("Starting report-worker")

	if cfg.DataBackend != config.BackendSQLite {
		logger.Error("report-worker reads the API's records and needs DATA_BACKEND=sqlite",
			"backend", cfg.DataBackend)
		os.Exit(1)
	}
	store := cli.InitStore(logger, cfg)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	writer, err := cli.InitReportWriter(bootCtx, logger, cfg)
	cancelBoot()
	if err != nil {
		logger.Error("Failed to initialize report writer", applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeConfiguration).Args()...)
		os.Exit(1)
	}

	reports := worker.NewReportWorker(store.Store, writer, analytics.SystemClock{}, logger)

	var amqpClient *amqp.Client
	if cfg.AMQPEnabled() {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeNetwork).Args()...)
			os.Exit(1)
		}
	} else {
		logger.Info("AMQP disabled, reports refresh on schedule only")
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(context.Context) {
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("AMQP close error", "error", err)
			}
		}
		if err := store.Cleanup(); err != nil {
			logger.Warn("Store close error", "error", err)
		}
	})

	// Catch up on anything written while the worker was down.
	if err := reports.RefreshAll(ctx); err != nil {
		logger.Error("Startup report refresh failed", "error", err)
	}

	if _, err := reports.Schedule(ctx, cfg.ReportSchedule); err != nil {
		logger.Error("Failed to schedule report refresh", "error", err)
		os.Exit(1)
	}
	logger.Info("Report refresh scheduled", "schedule", cfg.ReportSchedule)

	if amqpClient != nil {
		go func() {
			err := amqpClient.ConsumeTransactionEvents(ctx, reports.HandleEvent)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Event consumption stopped", "error", err)
			}
		}()
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete", "reports_written", reports.Written())
}
