package services

import (
	"context"
	"path/filepath"
	"testing"

	"fils/internal/core"
	"fils/internal/storage"
)

func newTestService(t *testing.T) *TransactionService {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	svc := NewTransactionService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestArchiveAllWithoutAMQP(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ids, err := svc.ArchiveAll(ctx, []core.Transaction{
		{Amount: 10, Counterparty: "A", Category: "other", RawMessage: "m"},
		{Amount: 20, Counterparty: "B", Category: "other", RawMessage: "m"},
	})
	if err != nil {
		t.Fatalf("archive all: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2", ids)
	}
}

func TestCorrectCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.Archive(ctx, core.Transaction{Amount: 10, Counterparty: "Lulu", Category: "other", RawMessage: "m"})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}

	if err := svc.CorrectCategory(ctx, id, "grocery"); err != nil {
		t.Fatalf("correct category: %v", err)
	}

	got, err := svc.archive.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Category != "grocery" {
		t.Errorf("category = %q, want grocery", got.Category)
	}
}
