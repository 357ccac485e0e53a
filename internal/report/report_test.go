package report

import (
	"strings"
	"testing"

	"fils/internal/core"
)

func TestRender(t *testing.T) {
	sum := &core.Summary{
		TotalSpent:  100,
		TotalIncome: 50,
		NetFlow:     -50,
		CategoryTotals: []core.CategoryAmount{
			{Name: "grocery", Amount: 100},
		},
		TopCounterparties: []core.CounterpartyAmount{
			{Name: "Carrefour", Amount: 100},
		},
		TopIncomeSources: []core.CounterpartyAmount{
			{Name: "Transfer from Work", Amount: 50},
		},
		Months: []core.MonthSummary{
			{Month: "2025-02", Total: 150},
		},
	}
	recent := []core.Transaction{
		{Amount: 100, Counterparty: "Carrefour", Category: "grocery"},
	}

	var buf strings.Builder
	if err := Render(&buf, sum, recent); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total Spent:  AED 100.00",
		"Net Flow:     AED -50.00",
		"grocery",
		"100.0%",
		"Carrefour",
		"Transfer from Work",
		"2025-02",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptySections(t *testing.T) {
	var buf strings.Builder
	if err := Render(&buf, &core.Summary{}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Monthly Summary") {
		t.Error("dateless summary should omit the monthly section")
	}
	if strings.Contains(out, "Top Income Sources") {
		t.Error("incomeless summary should omit the income section")
	}
}
