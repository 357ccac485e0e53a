package core

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CounterpartyAmount is an amount aggregated by counterparty name.
type CounterpartyAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// MonthSummary is the aggregate for one calendar month ("YYYY-MM").
// ByCategory covers the expense side only, in first-seen order.
type MonthSummary struct {
	Month      string           `json:"month"`
	Total      float64          `json:"total"`
	ByCategory []CategoryAmount `json:"by_category,omitempty"`
}

// Summary is a read-only aggregate snapshot over a transaction
// collection, recomputed in full on every analysis request.
type Summary struct {
	TotalSpent  float64 `json:"total_spent"`
	TotalIncome float64 `json:"total_income"`
	NetFlow     float64 `json:"net_flow"`

	// CategoryTotals covers expenses only; income never pollutes the
	// expense breakdown.
	CategoryTotals []CategoryAmount `json:"category_totals"`

	// TopCounterparties are the top expense counterparties by summed
	// amount, descending. Ties keep first-seen order.
	TopCounterparties []CounterpartyAmount `json:"top_counterparties"`

	// TopIncomeSources are the top income counterparties, descending.
	// Empty when there is no income.
	TopIncomeSources []CounterpartyAmount `json:"top_income_sources"`

	// Months holds per-month totals, ascending by month, only over
	// dated transactions. Nil when no transaction has a date.
	Months []MonthSummary `json:"monthly_summary,omitempty"`
}
