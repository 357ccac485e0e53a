// Package messagedb reads candidate payment messages from the local
// message-store SQLite database. The store is treated as read-only.
package messagedb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"fils/internal/appletime"
	applog "fils/internal/log"

	_ "modernc.org/sqlite"
)

// Message is one candidate row from the store: the notification text
// and the store's native timestamp (0 when absent).
type Message struct {
	Text string
	Date int64
}

// Store wraps the message database connection.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to the message store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open message store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping message store: %w", err)
	}
	return &Store{
		db:     db,
		logger: applog.ForComponent(slog.Default(), applog.ComponentMessageDB),
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FetchPaymentMessages returns messages carrying the currency marker,
// newest first. A positive days value bounds the query to that many
// days back, translated into the store's native timestamp unit.
func (s *Store) FetchPaymentMessages(ctx context.Context, days int) ([]Message, error) {
	query := "SELECT text, date FROM message WHERE text LIKE '%AED%'"
	args := []any{}
	if days > 0 {
		query += " AND date > ?"
		args = append(args, appletime.Threshold(days, time.Now()))
	}
	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var text sql.NullString
		var date sql.NullInt64
		if err := rows.Scan(&text, &date); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		if !text.Valid || text.String == "" {
			continue
		}
		out = append(out, Message{Text: text.String, Date: date.Int64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}

	s.logger.InfoContext(ctx, "Fetched candidate payment messages",
		applog.FieldCount, len(out),
		applog.FieldDays, days)
	return out, nil
}
