package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRecordRoundTrip(t *testing.T) {
	occurred := time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)
	original := Transaction{
		Amount:       45.50,
		Counterparty: "Carrefour",
		Category:     "grocery",
		OccurredAt:   occurred,
		IsIncome:     false,
		RawMessage:   "Payment of AED 45.50 done at Carrefour using Visa",
	}

	data, err := json.Marshal(original.ToRecord())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := rec.ToTransaction()
	if got.Amount != original.Amount {
		t.Errorf("amount = %v, want %v", got.Amount, original.Amount)
	}
	if got.Counterparty != original.Counterparty {
		t.Errorf("counterparty = %q, want %q", got.Counterparty, original.Counterparty)
	}
	if got.Category != original.Category {
		t.Errorf("category = %q, want %q", got.Category, original.Category)
	}
	if got.IsIncome != original.IsIncome {
		t.Errorf("is_income = %v, want %v", got.IsIncome, original.IsIncome)
	}
	if !got.OccurredAt.Truncate(time.Minute).Equal(occurred.Truncate(time.Minute)) {
		t.Errorf("date = %v, want %v", got.OccurredAt, occurred)
	}
}

func TestRecordRoundTripNoDate(t *testing.T) {
	original := Transaction{
		Amount:       12,
		Counterparty: "Transfer to Ahmed",
		Category:     "other",
		RawMessage:   "Your local transfer of AED 12 to Ahmed",
	}

	data, err := json.Marshal(original.ToRecord())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, present := raw["date"]; present {
		t.Error("date field should be omitted for dateless transactions")
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.ToTransaction().HasDate() {
		t.Error("reloaded transaction should have no date")
	}
}

func TestRecordMalformedDateDegrades(t *testing.T) {
	rec := Record{Amount: 10, Merchant: "Spinneys", Category: "grocery", Date: "not-a-date"}
	got := rec.ToTransaction()
	if got.HasDate() {
		t.Errorf("malformed date should degrade to no date, got %v", got.OccurredAt)
	}
	if got.Amount != 10 || got.Counterparty != "Spinneys" {
		t.Error("other fields should survive a malformed date")
	}
}

func TestRecordLegacyDateWithoutZone(t *testing.T) {
	rec := Record{Amount: 5, Merchant: "RTA", Category: "transport", Date: "2024-11-02T08:15:00"}
	got := rec.ToTransaction()
	if !got.HasDate() {
		t.Fatal("legacy zoneless date should still parse")
	}
	if got.OccurredAt.Hour() != 8 || got.OccurredAt.Minute() != 15 {
		t.Errorf("parsed time = %v, want 08:15", got.OccurredAt)
	}
}
