// The cobranca-worker process consumes customer events and mirrors records
// into the configured Google Sheets spreadsheet. It also runs a periodic
// reconciliation pass so the sheet converges even when events are lost.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cobranca/internal/amqp"
	"cobranca/internal/config"
	applog "cobranca/internal/log"
	"cobranca/internal/mirror"
	"cobranca/internal/storage"
	"cobranca/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open repository", "error", err, "db_path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	// The mirror is optional: without a spreadsheet the worker only drains
	// the queue, which keeps it from growing unbounded.
	var sheetMirror mirror.CustomerMirror
	if cfg.GoogleSpreadsheetID != "" {
		gs, err := mirror.NewGoogleSheets(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize sheets mirror", "error", err)
			os.Exit(1)
		}
		sheetMirror = gs
		logger.Info("Sheets mirror enabled",
			"spreadsheet", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		logger.Warn("GOOGLE_SPREADSHEET_ID not set, events will be consumed but not mirrored")
	}

	w := worker.NewMirrorWorker(repo, sheetMirror, cfg.MirrorBatchSize)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Consuming customer events",
			"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		return client.ConsumeCustomerEvents(ctx, w.HandleCustomerEvent)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.RemirrorAll(ctx); err != nil {
					logger.Error("Remirror pass failed", "error", err)
				}
			}
		}
	})

	logger.Info("Worker started", "remirror_interval", cfg.MirrorInterval.String())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
