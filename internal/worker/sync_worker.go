// Package worker pushes archived transactions to the configured
// spreadsheet sink, driven by AMQP sync messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fils/internal/amqp"
	applog "fils/internal/log"
	"fils/internal/sheets"
	"fils/internal/storage"
)

// SyncWorker consumes transaction sync messages, loads the archived
// transaction and appends it downstream.
type SyncWorker struct {
	archive   *storage.Repository
	writer    sheets.TransactionWriter
	batchSize int
	logger    *slog.Logger
}

func NewSyncWorker(archive *storage.Repository, writer sheets.TransactionWriter, batchSize int) *SyncWorker {
	return &SyncWorker{
		archive:   archive,
		writer:    writer,
		batchSize: batchSize,
		logger:    applog.ForComponent(slog.Default(), applog.ComponentWorker),
	}
}

// HandleSyncMessage processes one sync message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	w.logger.InfoContext(ctx, "Processing sync message",
		applog.FieldID, msg.ID,
		applog.FieldMessageID, msg.MessageID)

	tx, err := w.archive.Get(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from archive: %w", err)
	}

	if err := w.sync(ctx, tx); err != nil {
		return err
	}
	return nil
}

// StartupSyncCheck drains transactions that were archived while the
// worker was down and never picked up a sync message. Failures on
// individual rows are logged and skipped so one bad row cannot wedge
// the backlog.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	for {
		pending, err := w.archive.PendingSync(ctx, w.batchSize)
		if err != nil {
			return fmt.Errorf("list pending transactions: %w", err)
		}
		if len(pending) == 0 {
			return nil
		}

		w.logger.InfoContext(ctx, "Syncing pending transactions", applog.FieldCount, len(pending))

		synced := 0
		for _, tx := range pending {
			if err := w.sync(ctx, tx); err != nil {
				w.logger.ErrorContext(ctx, "Failed to sync pending transaction",
					applog.FieldID, tx.ID,
					applog.FieldError, err)
				continue
			}
			synced++
		}
		if synced == 0 {
			// Every row in the batch failed; stop rather than loop on
			// the same rows forever.
			return fmt.Errorf("could not sync any of %d pending transactions", len(pending))
		}
		if len(pending) < w.batchSize {
			return nil
		}
	}
}

func (w *SyncWorker) sync(ctx context.Context, tx storage.ArchivedTransaction) error {
	rowRef, err := w.writer.Append(ctx, tx.Transaction)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.archive.MarkSynced(ctx, tx.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	w.logger.InfoContext(ctx, "Transaction synced",
		applog.FieldID, tx.ID,
		"row", rowRef,
		applog.FieldCounterparty, tx.Counterparty)
	return nil
}
