// Package parser turns free-text payment notification messages into
// structured extraction results. Messages fall into one of four shapes
// (outgoing payment, incoming transfer, outgoing transfer, refund),
// recognized by keyword presence and evaluated in a fixed priority
// order: the first matching shape wins and a message is never extracted
// under two shapes.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"fils/internal/core"
)

// Result is what extraction yields for a single message. A zero Amount
// means the amount could not be extracted; an Unknown counterparty
// means the counterparty could not be. The two failures are
// independent.
type Result struct {
	Amount       float64
	Counterparty string
	IsIncome     bool
	RawMessage   string
}

// shape pairs a trigger predicate with an extractor. Extractors fill in
// whatever fields they can resolve; partial extraction is allowed.
type shape struct {
	name    string
	match   func(msg string) bool
	extract func(msg string, r *Result)
}

var (
	rePaymentAmount   = regexp.MustCompile(`Payment of AED\s+(\d+\.?\d*)`)
	rePaymentMerchant = regexp.MustCompile(`done at (.*?)(?: using| with|$)`)

	reMarkedAmount = regexp.MustCompile(`AED\s+([0-9,]+\.?\d*)`)
	reSender       = regexp.MustCompile(`sent by (.*?)(?:\band\b|$)`)

	reTransferAmount = regexp.MustCompile(`transfer of AED\s+([0-9,]+\.?\d*)`)
	reRecipient      = regexp.MustCompile(`to (.*?)(?: from|$)`)

	reRefundSource = regexp.MustCompile(`from (.*?)(?: has| to|$)`)
)

// shapes is evaluated top to bottom; order is part of the contract.
var shapes = []shape{
	{
		name: "outgoing payment",
		match: func(msg string) bool {
			return strings.Contains(msg, "Payment of AED")
		},
		extract: func(msg string, r *Result) {
			if m := rePaymentAmount.FindStringSubmatch(msg); m != nil {
				r.Amount = parseAmount(m[1])
			}
			if m := rePaymentMerchant.FindStringSubmatch(msg); m != nil {
				r.Counterparty = strings.TrimSpace(m[1])
			}
		},
	},
	{
		name: "incoming transfer",
		match: func(msg string) bool {
			return strings.Contains(msg, "AED") &&
				(strings.Contains(msg, "sent by") || strings.Contains(msg, "has been credited"))
		},
		extract: func(msg string, r *Result) {
			r.IsIncome = true
			if m := reMarkedAmount.FindStringSubmatch(msg); m != nil {
				r.Amount = parseAmount(m[1])
			}
			if m := reSender.FindStringSubmatch(msg); m != nil && strings.TrimSpace(m[1]) != "" {
				r.Counterparty = "Transfer from " + strings.TrimSpace(m[1])
			} else {
				r.Counterparty = "Incoming Transfer"
			}
		},
	},
	{
		name: "outgoing transfer",
		match: func(msg string) bool {
			return strings.Contains(msg, "Your local transfer of AED")
		},
		extract: func(msg string, r *Result) {
			if m := reTransferAmount.FindStringSubmatch(msg); m != nil {
				r.Amount = parseAmount(m[1])
			}
			if m := reRecipient.FindStringSubmatch(msg); m != nil && strings.TrimSpace(m[1]) != "" {
				r.Counterparty = "Transfer to " + strings.TrimSpace(m[1])
			} else {
				r.Counterparty = "Outgoing Transfer"
			}
		},
	},
	{
		name: "refund",
		match: func(msg string) bool {
			return strings.Contains(msg, "refunded") && strings.Contains(msg, "AED")
		},
		extract: func(msg string, r *Result) {
			r.IsIncome = true
			if m := reMarkedAmount.FindStringSubmatch(msg); m != nil {
				r.Amount = parseAmount(m[1])
			}
			if m := reRefundSource.FindStringSubmatch(msg); m != nil && strings.TrimSpace(m[1]) != "" {
				r.Counterparty = "Refund from " + strings.TrimSpace(m[1])
			} else {
				r.Counterparty = "Refund"
			}
		},
	},
}

// Extract parses a payment notification message. It never fails: when
// no shape matches, the returned Result carries the zero amount and
// Unknown counterparty sentinels.
func Extract(message string) Result {
	r := Result{
		Counterparty: core.UnknownCounterparty,
		RawMessage:   message,
	}
	for _, s := range shapes {
		if s.match(message) {
			s.extract(message, &r)
			break
		}
	}
	return r
}

// parseAmount parses a currency-marked numeric substring. Grouping
// commas are stripped first; anything unparseable yields 0, the
// "could not extract" sentinel.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
