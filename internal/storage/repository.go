// Package storage persists parsed transactions in a local SQLite
// archive and tracks which of them still need syncing downstream.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fils/internal/core"
	applog "fils/internal/log"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a transaction ID does not exist.
var ErrNotFound = errors.New("transaction not found")

// ArchivedTransaction is a stored transaction together with its
// archive row ID.
type ArchivedTransaction struct {
	ID int64
	core.Transaction
}

// Repository is the SQLite-backed transaction archive.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository opens (creating if needed) the archive at dbPath and
// runs pending migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping archive database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:     db,
		logger: applog.ForComponent(slog.Default(), applog.ComponentStorage),
	}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert archives a transaction and returns its row ID.
func (r *Repository) Insert(ctx context.Context, tx core.Transaction) (int64, error) {
	var occurredAt sql.NullString
	if tx.HasDate() {
		occurredAt = sql.NullString{String: tx.OccurredAt.Format(time.RFC3339), Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (amount, counterparty, category, is_income, occurred_at, raw_message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.Amount, tx.Counterparty, tx.Category, tx.IsIncome, occurredAt, tx.RawMessage)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}

	r.logger.InfoContext(ctx, "Transaction archived",
		applog.FieldID, id,
		applog.FieldCounterparty, tx.Counterparty,
		applog.FieldAmount, tx.Amount,
		applog.FieldCategory, tx.Category)

	return id, nil
}

// Get returns a single archived transaction by ID.
func (r *Repository) Get(ctx context.Context, id int64) (ArchivedTransaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount, counterparty, category, is_income, occurred_at, raw_message
		 FROM transactions WHERE id = ?`, id)
	at, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ArchivedTransaction{}, ErrNotFound
	}
	if err != nil {
		return ArchivedTransaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return at, nil
}

// List returns every archived transaction in insertion order.
func (r *Repository) List(ctx context.Context) ([]ArchivedTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, counterparty, category, is_income, occurred_at, raw_message
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []ArchivedTransaction
	for rows.Next() {
		at, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// UpdateCategory corrects the category of an archived transaction.
// Categories are the only retroactively mutable field.
func (r *Repository) UpdateCategory(ctx context.Context, id int64, category string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category = ? WHERE id = ?`, category, id)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingSync returns up to limit archived transactions that have not
// been synced downstream yet, oldest first.
func (r *Repository) PendingSync(ctx context.Context, limit int) ([]ArchivedTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, counterparty, category, is_income, occurred_at, raw_message
		 FROM transactions WHERE synced_at IS NULL ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	defer rows.Close()

	var out []ArchivedTransaction
	for rows.Next() {
		at, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		out = append(out, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending transactions: %w", err)
	}
	return out, nil
}

// MarkSynced records that a transaction reached the downstream sink.
func (r *Repository) MarkSynced(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads one archive row. A malformed stored date
// degrades to "no date" rather than failing the row.
func scanTransaction(row rowScanner) (ArchivedTransaction, error) {
	var at ArchivedTransaction
	var occurredAt sql.NullString
	if err := row.Scan(&at.ID, &at.Amount, &at.Counterparty, &at.Category, &at.IsIncome, &occurredAt, &at.RawMessage); err != nil {
		return ArchivedTransaction{}, err
	}
	if occurredAt.Valid {
		if parsed, err := time.Parse(time.RFC3339, occurredAt.String); err == nil {
			at.OccurredAt = parsed
		}
	}
	return at, nil
}
