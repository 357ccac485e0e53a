package main

import (
	"context"
	"os"
	"time"

	"fils/internal/amqp"
	"fils/internal/cli"
	gsheet "fils/internal/sheets/google"
	"fils/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting fils-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set for the sync worker")
		os.Exit(1)
	}

	archive := cli.InitArchive(logger, cfg.ArchiveDBPath)
	defer archive.Close()

	// Google Sheets is optional; without it there is no sink, so the
	// worker skips consumption and messages stay queued until a sink
	// is configured.
	var sheetsClient *gsheet.Client
	if cfg.GoogleSpreadsheetID != "" {
		var err error
		sheetsClient, err = gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := cli.ShutdownContext(logger)
	defer cancel()

	var syncWorker *worker.SyncWorker
	if sheetsClient != nil {
		syncWorker = worker.NewSyncWorker(archive, sheetsClient, cfg.SyncBatchSize)

		// Drain anything archived while the worker was down.
		logger.Info("Performing startup sync check...")
		if err := syncWorker.StartupSyncCheck(ctx); err != nil {
			logger.Error("Startup sync check failed", "error", err)
		}
	} else {
		logger.Info("Skipping sync operations - no Google Sheets client available")
	}

	if syncWorker != nil {
		go func() {
			if err := amqpClient.ConsumeTransactionSync(ctx, syncWorker.HandleSyncMessage); err != nil {
				if err != context.Canceled {
					logger.Error("Message consumption failed", "error", err)
				}
				cancel()
			}
		}()

		// Periodic safety net for sync messages that never arrived.
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := syncWorker.StartupSyncCheck(ctx); err != nil {
						logger.Error("Periodic sync failed", "error", err)
					}
				}
			}
		}()
	}

	<-ctx.Done()

	logger.Info("Shutting down worker...")
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
