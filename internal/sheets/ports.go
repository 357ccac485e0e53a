// Package sheets defines the outbound ports for exporting transactions
// to a spreadsheet-like sink.
package sheets

import (
	"context"

	"fils/internal/core"
)

// TransactionWriter appends a single transaction to the sink and
// returns an opaque row reference.
type TransactionWriter interface {
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
