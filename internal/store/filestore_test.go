package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fils/internal/core"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "transactions.json"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	occurred := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	txs := []core.Transaction{
		{Amount: 45.50, Counterparty: "Carrefour", Category: "grocery", OccurredAt: occurred, RawMessage: "msg1"},
		{Amount: 1000, Counterparty: "Transfer from John Smith", Category: "other", IsIncome: true, RawMessage: "msg2"},
	}

	if err := s.Save(txs); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d transactions, want 2", len(got))
	}
	if got[0].Amount != 45.50 || got[0].Category != "grocery" || !got[0].OccurredAt.Equal(occurred) {
		t.Errorf("first transaction = %+v", got[0])
	}
	if !got[1].IsIncome || got[1].HasDate() {
		t.Errorf("second transaction = %+v", got[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := testStore(t).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %v", got)
	}
}

func TestUpdateCategory(t *testing.T) {
	s := testStore(t)
	if err := s.Save([]core.Transaction{
		{Amount: 10, Counterparty: "Lulu", Category: "other", RawMessage: "m"},
		{Amount: 20, Counterparty: "Careem", Category: "other", RawMessage: "m"},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := s.UpdateCategory(1, "transport")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Category != "transport" {
		t.Errorf("updated category = %q", updated.Category)
	}

	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded[1].Category != "transport" {
		t.Errorf("persisted category = %q, want transport", reloaded[1].Category)
	}
	if reloaded[0].Category != "other" {
		t.Errorf("untouched record changed: %q", reloaded[0].Category)
	}

	if _, err := s.UpdateCategory(5, "transport"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}
