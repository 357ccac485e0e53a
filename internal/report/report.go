// Package report renders an analytics summary for the terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fils/internal/core"
)

const currency = "AED"

// Render writes a plain-text report of the summary, plus the most
// recent transactions, to w.
func Render(w io.Writer, sum *core.Summary, recent []core.Transaction) error {
	fmt.Fprintln(w, "===== TRANSACTION REPORT =====")
	fmt.Fprintf(w, "Total Spent:  %s %.2f\n", currency, sum.TotalSpent)
	fmt.Fprintf(w, "Total Income: %s %.2f\n", currency, sum.TotalIncome)
	fmt.Fprintf(w, "Net Flow:     %s %.2f\n", currency, sum.NetFlow)

	if len(sum.CategoryTotals) > 0 {
		fmt.Fprintln(w, "\n----- Category Breakdown -----")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
		for _, ct := range sum.CategoryTotals {
			share := 0.0
			if sum.TotalSpent > 0 {
				share = ct.Amount / sum.TotalSpent * 100
			}
			fmt.Fprintf(tw, "%s\t%s %.2f\t%.1f%%\n", ct.Name, currency, ct.Amount, share)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(sum.TopCounterparties) > 0 {
		fmt.Fprintln(w, "\n----- Top Counterparties -----")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COUNTERPARTY\tAMOUNT")
		for _, cp := range sum.TopCounterparties {
			fmt.Fprintf(tw, "%s\t%s %.2f\n", cp.Name, currency, cp.Amount)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(sum.TopIncomeSources) > 0 {
		fmt.Fprintln(w, "\n----- Top Income Sources -----")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SOURCE\tAMOUNT")
		for _, src := range sum.TopIncomeSources {
			fmt.Fprintf(tw, "%s\t%s %.2f\n", src.Name, currency, src.Amount)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(recent) > 0 {
		fmt.Fprintln(w, "\n----- Recent Transactions -----")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "INDEX\tCOUNTERPARTY\tAMOUNT\tCATEGORY")
		limit := len(recent)
		if limit > 10 {
			limit = 10
		}
		for i := 0; i < limit; i++ {
			tx := recent[i]
			fmt.Fprintf(tw, "%d\t%s\t%s %.2f\t%s\n", i, tx.Counterparty, currency, tx.Amount, tx.Category)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(sum.Months) > 0 {
		fmt.Fprintln(w, "\n----- Monthly Summary -----")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MONTH\tTOTAL")
		for _, m := range sum.Months {
			fmt.Fprintf(tw, "%s\t%s %.2f\n", m.Month, currency, m.Total)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return nil
}
