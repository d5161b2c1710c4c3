// Package accounting replays a trade history and computes realized
// profit/loss per event category in the configured profit currency.
package accounting

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
	"github.com/vadiminshakov/realized/internal/services/costbasis"
	"github.com/vadiminshakov/realized/internal/services/journal"
	"go.uber.org/zap"
)

type pricersvc interface {
	// PriceAt resolves the unit price of asset in the profit currency at a
	// point in time.
	PriceAt(ctx context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error)
}

type sink interface {
	AddError(msg string)
	AddWarning(msg string)
}

type auditor interface {
	Record(e journal.Entry) error
}

// Accountant drives one replay: it decomposes trades into ledger legs,
// matches disposals FIFO and accumulates taxable/free PnL. Data-quality
// problems (missing prices, missing acquisitions) are reported through the
// sink and never abort the run.
type Accountant struct {
	l              *zap.Logger
	profitCurrency domain.Asset
	taxfreeAfter   time.Duration
	pricer         pricersvc
	msgs           sink
	audit          auditor

	costBasis *costbasis.Calculator
	totals    domain.PnlTotals
}

// NewAccountant returns an accountant expressing all gains in profitCurrency.
// A non-positive taxfreeAfter disables the holding-period exemption.
func NewAccountant(l *zap.Logger, profitCurrency domain.Asset, taxfreeAfter time.Duration, pricer pricersvc, msgs sink) *Accountant {
	if l == nil {
		l = zap.NewNop()
	}
	return &Accountant{
		l:              l,
		profitCurrency: profitCurrency,
		taxfreeAfter:   taxfreeAfter,
		pricer:         pricer,
		msgs:           msgs,
		costBasis:      costbasis.NewCalculator(taxfreeAfter, msgs),
		totals:         domain.NewPnlTotals(),
	}
}

// AttachJournal makes the accountant record every ledger-affecting leg.
func (a *Accountant) AttachJournal(j auditor) {
	a.audit = j
}

// CostBasis exposes the per-asset ledgers for auditing and export.
func (a *Accountant) CostBasis() *costbasis.Calculator {
	return a.costBasis
}

// Totals returns the accumulated PnL of the last run.
func (a *Accountant) Totals() domain.PnlTotals {
	return a.totals
}

// ProcessHistory replays trades in ascending timestamp order (ties keep input
// order) and returns the accumulated PnL totals. Trades after end are
// skipped; trades before start build cost basis but contribute nothing to the
// totals. State from earlier runs is discarded.
func (a *Accountant) ProcessHistory(ctx context.Context, start, end time.Time, trades []domain.Trade) domain.PnlTotals {
	a.costBasis = costbasis.NewCalculator(a.taxfreeAfter, a.msgs)
	a.totals = domain.NewPnlTotals()

	ordered := make([]domain.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	for i := range ordered {
		trade := &ordered[i]
		if trade.Timestamp.After(end) {
			continue
		}
		counted := !trade.Timestamp.Before(start)
		a.l.Debug("processing trade",
			zap.String("trade", trade.String()),
			zap.Bool("in_period", counted))
		a.processTrade(ctx, trade, counted)
	}

	return a.totals
}

func (a *Accountant) journalLeg(e journal.Entry) {
	if a.audit == nil {
		return
	}
	if err := a.audit.Record(e); err != nil {
		a.l.Warn("failed to journal accounting leg", zap.Error(err))
	}
}

// obtain appends a lot and journals the acquisition.
func (a *Accountant) obtain(asset domain.Asset, ts time.Time, amount, rate decimal.Decimal, link string) {
	a.costBasis.Obtain(asset, ts, amount, rate, link)
	a.journalLeg(journal.Entry{
		Link:      link,
		Asset:     asset,
		Action:    journal.ActionAcquire,
		Category:  domain.EventTypeTrade,
		Amount:    amount,
		Rate:      rate,
		Timestamp: ts,
	})
}

// dispose matches a disposal against the asset's lots and accumulates the
// realized gain under the trade category. Disposals of non-profit fiat
// currencies only trim lots: their source cannot be traced to a taxable
// acquisition, so they realize nothing and raise no reports.
func (a *Accountant) dispose(asset domain.Asset, ts time.Time, amount, unitPrice decimal.Decimal, counted bool, link string) {
	if asset.IsFiat() {
		a.costBasis.ReduceQuiet(asset, amount)
		return
	}
	res := a.costBasis.Reduce(asset, ts, amount, unitPrice, link)
	if counted {
		a.totals.Add(domain.EventTypeTrade, res.TaxableGain, res.FreeGain)
	}
	a.journalLeg(journal.Entry{
		Link:      link,
		Asset:     asset,
		Action:    journal.ActionDispose,
		Category:  domain.EventTypeTrade,
		Amount:    amount,
		Rate:      unitPrice,
		Timestamp: ts,
	})
}
