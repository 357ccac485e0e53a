// Package analytics reduces a transaction collection into an aggregate
// Summary: totals, category and counterparty breakdowns, and monthly
// buckets.
package analytics

import (
	"errors"
	"sort"
	"time"

	"fils/internal/core"
)

// ErrNoTransactions distinguishes "nothing to analyze" from a valid
// all-zero summary. Callers must check for it before using the result.
var ErrNoTransactions = errors.New("no transactions to analyze")

const (
	topCounterpartyCount = 5
	topIncomeSourceCount = 3
)

// Analyzer computes summaries. The bucketing location is an explicit
// choice rather than an implicit default; monthly buckets use it to
// derive the calendar month of each transaction.
type Analyzer struct {
	loc *time.Location
}

// New returns an Analyzer bucketing months in the given location.
// A nil location means UTC.
func New(loc *time.Location) *Analyzer {
	if loc == nil {
		loc = time.UTC
	}
	return &Analyzer{loc: loc}
}

// Analyze reduces a transaction collection into a Summary. It is pure:
// nothing is cached and every call recomputes from scratch. Empty input
// yields ErrNoTransactions.
func (a *Analyzer) Analyze(txs []core.Transaction) (*core.Summary, error) {
	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}

	sum := &core.Summary{}

	catTotals := newOrderedTotals()
	spendTotals := newOrderedTotals()
	incomeTotals := newOrderedTotals()

	monthTotals := newOrderedTotals()
	monthCategories := make(map[string]*orderedTotals)

	for _, tx := range txs {
		if tx.IsIncome {
			sum.TotalIncome += tx.Amount
			incomeTotals.add(tx.Counterparty, tx.Amount)
		} else {
			sum.TotalSpent += tx.Amount
			catTotals.add(tx.Category, tx.Amount)
			spendTotals.add(tx.Counterparty, tx.Amount)
		}

		if !tx.HasDate() {
			continue
		}
		month := tx.OccurredAt.In(a.loc).Format("2006-01")
		monthTotals.add(month, tx.Amount)
		if !tx.IsIncome {
			mc, ok := monthCategories[month]
			if !ok {
				mc = newOrderedTotals()
				monthCategories[month] = mc
			}
			mc.add(tx.Category, tx.Amount)
		}
	}

	sum.NetFlow = sum.TotalIncome - sum.TotalSpent

	for _, e := range catTotals.entries() {
		sum.CategoryTotals = append(sum.CategoryTotals, core.CategoryAmount{Name: e.key, Amount: e.total})
	}
	sum.TopCounterparties = topN(spendTotals, topCounterpartyCount)
	sum.TopIncomeSources = topN(incomeTotals, topIncomeSourceCount)

	months := monthTotals.entries()
	sort.Slice(months, func(i, j int) bool { return months[i].key < months[j].key })
	for _, e := range months {
		ms := core.MonthSummary{Month: e.key, Total: e.total}
		if mc, ok := monthCategories[e.key]; ok {
			for _, ce := range mc.entries() {
				ms.ByCategory = append(ms.ByCategory, core.CategoryAmount{Name: ce.key, Amount: ce.total})
			}
		}
		sum.Months = append(sum.Months, ms)
	}

	return sum, nil
}

// topN ranks grouped totals descending by amount, keeping first-seen
// order between equal amounts, and truncates to n entries.
func topN(totals *orderedTotals, n int) []core.CounterpartyAmount {
	entries := totals.entries()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].total > entries[j].total })
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]core.CounterpartyAmount, 0, len(entries))
	for _, e := range entries {
		out = append(out, core.CounterpartyAmount{Name: e.key, Amount: e.total})
	}
	return out
}

// orderedTotals is a fold accumulator: grouped sums that remember the
// order keys were first seen, so downstream tie-breaking stays
// deterministic.
type orderedTotals struct {
	order  []string
	totals map[string]float64
}

func newOrderedTotals() *orderedTotals {
	return &orderedTotals{totals: make(map[string]float64)}
}

func (o *orderedTotals) add(key string, amount float64) {
	if _, seen := o.totals[key]; !seen {
		o.order = append(o.order, key)
	}
	o.totals[key] += amount
}

type totalEntry struct {
	key   string
	total float64
}

func (o *orderedTotals) entries() []totalEntry {
	out := make([]totalEntry, 0, len(o.order))
	for _, key := range o.order {
		out = append(out, totalEntry{key: key, total: o.totals[key]})
	}
	return out
}
