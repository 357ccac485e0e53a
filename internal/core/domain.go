// Package core holds the domain types shared across the application:
// the Transaction entity, its portable JSON record format, and the
// summary types produced by analytics.
package core

import (
	"time"
)

const (
	// UnknownCounterparty marks a message whose counterparty could not
	// be extracted. Independent from a zero amount: a record can fail
	// one extraction without failing the other.
	UnknownCounterparty = "Unknown"

	// FallbackCategory is the reserved category every mapping owns.
	// It holds no keywords and is never a match target.
	FallbackCategory = "other"
)

// Transaction is a single parsed payment notification. Created once per
// ingested message and immutable afterwards, except that Category may be
// corrected retroactively through a store.
type Transaction struct {
	Amount       float64
	Counterparty string
	Category     string
	OccurredAt   time.Time // zero value means the source had no usable timestamp
	IsIncome     bool
	RawMessage   string
}

// HasDate reports whether the transaction carries a calendar timestamp.
func (t Transaction) HasDate() bool {
	return !t.OccurredAt.IsZero()
}
