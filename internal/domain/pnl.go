package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EventType is the PnL bucket an accounting event contributes to.
type EventType string

const (
	// EventTypeTrade covers gains and losses realized by asset exchanges.
	EventTypeTrade EventType = "trade"
	// EventTypeFee covers the cost of fees paid alongside trades.
	EventTypeFee EventType = "fee"
)

// PNL is a realized profit/loss split into the taxable and tax-free buckets.
type PNL struct {
	Taxable decimal.Decimal
	Free    decimal.Decimal
}

// Total returns taxable plus free.
func (p PNL) Total() decimal.Decimal {
	return p.Taxable.Add(p.Free)
}

// String returns a human-readable string representation.
func (p PNL) String() string {
	return fmt.Sprintf("taxable: %s free: %s", p.Taxable.String(), p.Free.String())
}

// PnlTotals accumulates realized PnL per event type over one replay.
// Categories never touched stay absent.
type PnlTotals map[EventType]PNL

// NewPnlTotals returns an empty accumulator.
func NewPnlTotals() PnlTotals {
	return make(PnlTotals)
}

// Add accumulates deltas into the given bucket. Purely additive.
func (p PnlTotals) Add(event EventType, taxable, free decimal.Decimal) {
	cur := p[event]
	p[event] = PNL{
		Taxable: cur.Taxable.Add(taxable),
		Free:    cur.Free.Add(free),
	}
}
