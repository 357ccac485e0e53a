// Package services orchestrates the ingest pipeline and transaction
// archival.
package services

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fils/internal/appletime"
	"fils/internal/categorize"
	"fils/internal/core"
	applog "fils/internal/log"
	"fils/internal/messagedb"
	"fils/internal/parser"
)

// MessageSource produces candidate payment messages, newest first.
type MessageSource interface {
	FetchPaymentMessages(ctx context.Context, days int) ([]messagedb.Message, error)
}

// IngestStats counts what happened to the fetched messages.
type IngestStats struct {
	Fetched      int // candidate messages retrieved
	Skipped      int // no extractable amount, discarded
	Transactions int // transactions produced
	Unknown      int // produced transactions with an unknown counterparty
}

// Ingestor turns raw messages into categorized transactions.
type Ingestor struct {
	source  MessageSource
	mapping *categorize.Mapping
	workers int
	logger  *slog.Logger
}

// NewIngestor builds an ingestor over a message source and category
// mapping. The mapping must not be mutated while Ingest runs.
func NewIngestor(source MessageSource, mapping *categorize.Mapping) *Ingestor {
	return &Ingestor{
		source:  source,
		mapping: mapping,
		workers: runtime.NumCPU(),
		logger:  applog.ForComponent(slog.Default(), applog.ComponentIngest),
	}
}

// Ingest fetches, parses and categorizes messages from the last days
// days (all messages when days <= 0). Messages whose amount cannot be
// extracted are discarded; an unknown counterparty alone keeps the
// transaction, flagged in the stats. Parsing and categorization are
// pure per message, so messages are processed concurrently and results
// keep source order.
func (i *Ingestor) Ingest(ctx context.Context, days int) ([]core.Transaction, IngestStats, error) {
	stats := IngestStats{}

	messages, err := i.source.FetchPaymentMessages(ctx, days)
	if err != nil {
		return nil, stats, err
	}
	stats.Fetched = len(messages)

	results := make([]core.Transaction, len(messages))
	keep := make([]bool, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)
	for idx, msg := range messages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := parser.Extract(msg.Text)
			if res.Amount == 0 {
				return nil
			}

			tx := core.Transaction{
				Amount:       res.Amount,
				Counterparty: res.Counterparty,
				Category:     i.mapping.Categorize(res.Counterparty),
				IsIncome:     res.IsIncome,
				RawMessage:   res.RawMessage,
			}
			if occurred, ok := appletime.Convert(msg.Date); ok {
				tx.OccurredAt = occurred
			}

			results[idx] = tx
			keep[idx] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	var txs []core.Transaction
	for idx := range results {
		if !keep[idx] {
			stats.Skipped++
			continue
		}
		if results[idx].Counterparty == core.UnknownCounterparty {
			stats.Unknown++
		}
		txs = append(txs, results[idx])
	}
	stats.Transactions = len(txs)

	i.logger.InfoContext(ctx, "Ingest complete",
		"fetched", stats.Fetched,
		"transactions", stats.Transactions,
		"skipped", stats.Skipped,
		"unknown_counterparties", stats.Unknown)

	return txs, stats, nil
}
