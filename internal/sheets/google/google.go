// Package google implements the sheets ports against the Google Sheets
// v4 API.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fils/internal/core"
	applog "fils/internal/log"
	ports "fils/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *slog.Logger
}

var _ ports.TransactionWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Optional: GOOGLE_SHEET_NAME
// (default "Transactions"), GOOGLE_CREDENTIALS_JSON for explicit
// credentials; otherwise Application Default Credentials apply.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	var opts []goption.ClientOption
	if creds := os.Getenv("GOOGLE_CREDENTIALS_JSON"); creds != "" {
		opts = append(opts, goption.WithCredentialsJSON([]byte(creds)))
	}
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsScope))

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        applog.ForComponent(slog.Default(), applog.ComponentSheets),
	}, nil
}

// Append writes one transaction row:
// date, counterparty, amount, category, direction, raw message.
func (c *Client) Append(ctx context.Context, tx core.Transaction) (string, error) {
	date := ""
	if tx.HasDate() {
		date = tx.OccurredAt.Format("2006-01-02 15:04")
	}
	direction := "expense"
	if tx.IsIncome {
		direction = "income"
	}

	values := &gsheet.ValueRange{
		Values: [][]any{{date, tx.Counterparty, tx.Amount, tx.Category, direction, tx.RawMessage}},
	}

	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, rng, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append transaction row: %w", err)
	}

	rowRef := ""
	if resp.Updates != nil {
		rowRef = resp.Updates.UpdatedRange
	}

	c.logger.InfoContext(ctx, "Appended transaction to sheet",
		applog.FieldCounterparty, tx.Counterparty,
		applog.FieldAmount, tx.Amount,
		"range", rowRef)

	return rowRef, nil
}
