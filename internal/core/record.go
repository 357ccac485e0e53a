package core

import (
	"time"
)

// Record is the portable serialized form of a Transaction, used for the
// on-disk collection and report exports. The field names are fixed by
// existing data files; do not rename.
type Record struct {
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant"`
	Category string  `json:"category"`
	Message  string  `json:"message"`
	IsIncome bool    `json:"is_income"`
	Date     string  `json:"date,omitempty"`
}

// dateLayouts accepted when reading records back. Older files were
// written without a zone offset.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ToRecord converts a Transaction to its serialized form. The date is
// formatted as ISO-8601; dateless transactions omit the field.
func (t Transaction) ToRecord() Record {
	r := Record{
		Amount:   t.Amount,
		Merchant: t.Counterparty,
		Category: t.Category,
		Message:  t.RawMessage,
		IsIncome: t.IsIncome,
	}
	if t.HasDate() {
		r.Date = t.OccurredAt.Format(time.RFC3339)
	}
	return r
}

// ToTransaction converts a Record back into a Transaction. A missing or
// malformed date degrades to "no date" instead of failing the record.
func (r Record) ToTransaction() Transaction {
	t := Transaction{
		Amount:       r.Amount,
		Counterparty: r.Merchant,
		Category:     r.Category,
		IsIncome:     r.IsIncome,
		RawMessage:   r.Message,
	}
	if r.Date != "" {
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, r.Date); err == nil {
				t.OccurredAt = parsed
				break
			}
		}
	}
	return t
}

// ToRecords converts a transaction collection to its serialized form.
func ToRecords(txs []Transaction) []Record {
	records := make([]Record, len(txs))
	for i, t := range txs {
		records[i] = t.ToRecord()
	}
	return records
}

// FromRecords converts serialized records back into transactions.
func FromRecords(records []Record) []Transaction {
	txs := make([]Transaction, len(records))
	for i, r := range records {
		txs[i] = r.ToTransaction()
	}
	return txs
}
