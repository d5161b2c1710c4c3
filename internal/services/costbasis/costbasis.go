// Package costbasis keeps per-asset ledgers of acquisition lots and matches
// disposals against them using FIFO.
package costbasis

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
)

// Acquisition is a lot: a discrete purchase of an asset carrying its own cost basis.
type Acquisition struct {
	// Timestamp when the lot was acquired.
	Timestamp time.Time
	// Amount originally acquired.
	Amount decimal.Decimal
	// Remaining part of the lot not yet consumed by disposals.
	Remaining decimal.Decimal
	// Rate per-unit cost in the profit currency, fee cost folded in.
	Rate decimal.Decimal
	// Link id of the originating event.
	Link string
}

// SpendSlice records the part of one lot a disposal consumed.
type SpendSlice struct {
	AcquiredAt time.Time
	Amount     decimal.Decimal
	Rate       decimal.Decimal
	TaxFree    bool
}

// Spend is a matched disposal.
type Spend struct {
	Timestamp time.Time
	// Amount disposed.
	Amount decimal.Decimal
	// Rate per-unit market value in the profit currency at disposal time.
	Rate decimal.Decimal
	// Taxable and Free are the realized gain split by the holding-period policy.
	Taxable decimal.Decimal
	Free    decimal.Decimal
	// Unmatched part of Amount no lot could cover, realized at zero cost basis.
	Unmatched decimal.Decimal
	// Slices are the lot parts the disposal consumed, in FIFO order.
	Slices []SpendSlice
	// Link id of the originating event.
	Link string
}

// AssetEvents is the ledger of a single asset: live lots in insertion order
// plus the log of matched disposals.
type AssetEvents struct {
	Acquisitions []*Acquisition
	Spends       []Spend
}

// ReduceResult is the outcome of matching one disposal.
type ReduceResult struct {
	// TaxableGain and FreeGain sum slice gains at market value minus basis,
	// plus the zero-basis remainder which is always taxable.
	TaxableGain decimal.Decimal
	FreeGain    decimal.Decimal
	// TaxableBasis and FreeBasis sum the cost basis consumed per bucket.
	TaxableBasis decimal.Decimal
	FreeBasis    decimal.Decimal
	// Unmatched is the amount lots could not cover.
	Unmatched decimal.Decimal
}

type reporter interface {
	AddError(msg string)
}

// Calculator owns the per-asset ledgers of one replay.
// Not safe for concurrent use; a replay is strictly sequential.
type Calculator struct {
	events map[domain.Asset]*AssetEvents
	// taxfreeAfter is the holding period after which gains are tax free.
	// Non-positive disables the exemption.
	taxfreeAfter time.Duration
	msgs         reporter
}

// NewCalculator returns an empty calculator with the given holding-period policy.
func NewCalculator(taxfreeAfter time.Duration, msgs reporter) *Calculator {
	return &Calculator{
		events:       make(map[domain.Asset]*AssetEvents),
		taxfreeAfter: taxfreeAfter,
		msgs:         msgs,
	}
}

func (c *Calculator) assetEvents(asset domain.Asset) *AssetEvents {
	ev, ok := c.events[asset]
	if !ok {
		ev = &AssetEvents{}
		c.events[asset] = ev
	}
	return ev
}

// TaxFree classifies a holding duration under the configured policy.
func (c *Calculator) TaxFree(held time.Duration) bool {
	return c.taxfreeAfter > 0 && held >= c.taxfreeAfter
}

// Obtain appends a new lot to the asset's ledger.
// Lots sharing a timestamp keep their insertion order.
func (c *Calculator) Obtain(asset domain.Asset, ts time.Time, amount, rate decimal.Decimal, link string) {
	ev := c.assetEvents(asset)
	ev.Acquisitions = append(ev.Acquisitions, &Acquisition{
		Timestamp: ts,
		Amount:    amount,
		Remaining: amount,
		Rate:      rate,
		Link:      link,
	})
}

// Reduce matches a disposal of amount at marketRate against the asset's lots,
// oldest first. An amount lots cannot cover is treated as zero-cost-basis
// profit (fully taxable) and reported through the sink; the run continues.
func (c *Calculator) Reduce(asset domain.Asset, ts time.Time, amount, marketRate decimal.Decimal, link string) ReduceResult {
	ev := c.assetEvents(asset)

	var res ReduceResult
	spend := Spend{
		Timestamp: ts,
		Amount:    amount,
		Rate:      marketRate,
		Link:      link,
	}

	needed := amount
	for len(ev.Acquisitions) > 0 && needed.IsPositive() {
		lot := ev.Acquisitions[0]
		slice := lot.Remaining
		if slice.GreaterThan(needed) {
			slice = needed
		}

		gain := slice.Mul(marketRate.Sub(lot.Rate))
		basis := slice.Mul(lot.Rate)
		free := c.TaxFree(ts.Sub(lot.Timestamp))
		if free {
			res.FreeGain = res.FreeGain.Add(gain)
			res.FreeBasis = res.FreeBasis.Add(basis)
		} else {
			res.TaxableGain = res.TaxableGain.Add(gain)
			res.TaxableBasis = res.TaxableBasis.Add(basis)
		}
		spend.Slices = append(spend.Slices, SpendSlice{
			AcquiredAt: lot.Timestamp,
			Amount:     slice,
			Rate:       lot.Rate,
			TaxFree:    free,
		})

		needed = needed.Sub(slice)
		lot.Remaining = lot.Remaining.Sub(slice)
		if lot.Remaining.IsZero() {
			ev.Acquisitions = ev.Acquisitions[1:]
		}
	}

	if needed.IsPositive() {
		// Zero cost basis: the entire remainder is profit. No acquisition
		// timestamp exists, so the holding-period exemption cannot apply.
		res.Unmatched = needed
		res.TaxableGain = res.TaxableGain.Add(needed.Mul(marketRate))
		c.msgs.AddError(fmt.Sprintf(
			"no documented acquisition found for %s %s disposed at %s, treating it as zero cost basis",
			needed.String(), asset, ts.UTC().Format(time.RFC3339),
		))
	}

	spend.Taxable = res.TaxableGain
	spend.Free = res.FreeGain
	spend.Unmatched = res.Unmatched
	ev.Spends = append(ev.Spends, spend)

	return res
}

// ReduceQuiet trims lots FIFO without realizing PnL, recording a spend or
// reporting shortfalls. Used for disposals of untaxed fiat holdings.
func (c *Calculator) ReduceQuiet(asset domain.Asset, amount decimal.Decimal) {
	ev := c.assetEvents(asset)
	needed := amount
	for len(ev.Acquisitions) > 0 && needed.IsPositive() {
		lot := ev.Acquisitions[0]
		slice := lot.Remaining
		if slice.GreaterThan(needed) {
			slice = needed
		}
		needed = needed.Sub(slice)
		lot.Remaining = lot.Remaining.Sub(slice)
		if lot.Remaining.IsZero() {
			ev.Acquisitions = ev.Acquisitions[1:]
		}
	}
}

// Events returns the ledger of one asset for auditing and export.
func (c *Calculator) Events(asset domain.Asset) AssetEvents {
	ev, ok := c.events[asset]
	if !ok {
		return AssetEvents{}
	}
	return *ev
}

// Assets lists every asset the calculator has seen, sorted.
func (c *Calculator) Assets() []domain.Asset {
	out := make([]domain.Asset, 0, len(c.events))
	for asset := range c.events {
		out = append(out, asset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HeldAmount sums the remaining lot amounts of an asset.
func (c *Calculator) HeldAmount(asset domain.Asset) decimal.Decimal {
	ev, ok := c.events[asset]
	if !ok {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, lot := range ev.Acquisitions {
		total = total.Add(lot.Remaining)
	}
	return total
}
