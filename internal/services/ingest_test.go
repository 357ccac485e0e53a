package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fils/internal/appletime"
	"fils/internal/categorize"
	"fils/internal/messagedb"
)

type fakeSource struct {
	messages []messagedb.Message
	err      error
	gotDays  int
}

func (f *fakeSource) FetchPaymentMessages(_ context.Context, days int) ([]messagedb.Message, error) {
	f.gotDays = days
	return f.messages, f.err
}

func appleNS(t time.Time) int64 {
	return (t.Unix() - appletime.EpochOffsetSeconds) * 1e9
}

func TestIngest(t *testing.T) {
	when := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	source := &fakeSource{messages: []messagedb.Message{
		{Text: "Payment of AED 45.50 done at Carrefour using Visa", Date: appleNS(when)},
		{Text: "AED 1,000 sent by John Smith and processed", Date: appleNS(when)},
		{Text: "Your OTP code is 123456", Date: appleNS(when)},
		{Text: "Payment of AED 12.00 done at Mystery Shop", Date: 0},
	}}
	mapping := categorize.Default()

	txs, stats, err := NewIngestor(source, mapping).Ingest(context.Background(), 30)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if source.gotDays != 30 {
		t.Errorf("days = %d, want 30", source.gotDays)
	}
	if stats.Fetched != 4 || stats.Skipped != 1 || stats.Transactions != 3 {
		t.Errorf("stats = %+v", stats)
	}

	if len(txs) != 3 {
		t.Fatalf("transactions = %d, want 3", len(txs))
	}

	// Source order is preserved across the concurrent parse.
	if txs[0].Counterparty != "Carrefour" {
		t.Errorf("first counterparty = %q", txs[0].Counterparty)
	}
	if txs[0].Category != "grocery" {
		t.Errorf("first category = %q, want grocery", txs[0].Category)
	}
	if !txs[0].OccurredAt.Equal(when) {
		t.Errorf("first date = %v, want %v", txs[0].OccurredAt, when)
	}

	if txs[1].Counterparty != "Transfer from John Smith" || !txs[1].IsIncome {
		t.Errorf("second transaction = %+v", txs[1])
	}

	if txs[2].HasDate() {
		t.Errorf("dateless message produced a date: %v", txs[2].OccurredAt)
	}
}

func TestIngestUnknownCounterpartyKept(t *testing.T) {
	source := &fakeSource{messages: []messagedb.Message{
		{Text: "Payment of AED 33.00 was declined"},
	}}

	txs, stats, err := NewIngestor(source, categorize.Default()).Ingest(context.Background(), 0)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(txs))
	}
	if stats.Unknown != 1 {
		t.Errorf("unknown = %d, want 1", stats.Unknown)
	}
	if txs[0].Category != "other" {
		t.Errorf("category = %q, want other", txs[0].Category)
	}
}

func TestIngestSourceError(t *testing.T) {
	wantErr := errors.New("store unavailable")
	source := &fakeSource{err: wantErr}

	_, _, err := NewIngestor(source, categorize.Default()).Ingest(context.Background(), 0)
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
