package services

import (
	"context"
	"fmt"
	"log/slog"

	"fils/internal/amqp"
	"fils/internal/core"
	applog "fils/internal/log"
	"fils/internal/storage"
)

// TransactionService writes transactions to the archive and notifies
// the sync worker. The AMQP client is optional: without one the
// archive still works and sync happens on the worker's next startup
// check.
type TransactionService struct {
	archive    *storage.Repository
	amqpClient *amqp.Client
	logger     *slog.Logger
}

func NewTransactionService(archive *storage.Repository, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		archive:    archive,
		amqpClient: amqpClient,
		logger:     applog.ForComponent(slog.Default(), applog.ComponentTransactions),
	}
}

// Archive stores one transaction and publishes a sync message. A
// failed publish is logged, not returned: the archive write already
// succeeded and the startup sync check covers the gap.
func (s *TransactionService) Archive(ctx context.Context, tx core.Transaction) (int64, error) {
	id, err := s.archive.Insert(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("archive transaction: %w", err)
	}

	if s.amqpClient == nil {
		s.logger.DebugContext(ctx, "AMQP client not configured, skipping sync message", applog.FieldID, id)
		return id, nil
	}
	if err := s.amqpClient.PublishTransactionSync(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish sync message", applog.FieldID, id, applog.FieldError, err)
	}

	return id, nil
}

// ArchiveAll stores a batch, preserving order, and returns the
// archived IDs.
func (s *TransactionService) ArchiveAll(ctx context.Context, txs []core.Transaction) ([]int64, error) {
	ids := make([]int64, 0, len(txs))
	for _, tx := range txs {
		id, err := s.Archive(ctx, tx)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CorrectCategory retroactively fixes the category of an archived
// transaction and republishes it for sync.
func (s *TransactionService) CorrectCategory(ctx context.Context, id int64, category string) error {
	if err := s.archive.UpdateCategory(ctx, id, category); err != nil {
		return fmt.Errorf("correct category: %w", err)
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.PublishTransactionSync(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish sync message after correction", applog.FieldID, id, applog.FieldError, err)
		}
	}
	return nil
}

// Close releases the archive and AMQP connections.
func (s *TransactionService) Close() error {
	var errs []error

	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			errs = append(errs, fmt.Errorf("archive: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}
	return nil
}
