package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
	"github.com/vadiminshakov/realized/internal/services/journal"
	"go.uber.org/zap"
)

// processTrade decomposes one trade into ledger legs: a disposal of the given
// asset, an acquisition of the received asset, and a fee spend. The disposal
// realizes the market value of what was received in exchange; the acquisition
// costs the market value of what was given plus the fee. Legs whose price
// cannot be resolved are reported and skipped, the rest still apply.
func (a *Accountant) processTrade(ctx context.Context, t *domain.Trade, counted bool) {
	feeValue, feeUnit := decimal.Zero, decimal.Zero
	feeOK := false
	if t.HasFee() {
		feeValue, feeUnit, feeOK = a.feeValue(ctx, t)
	}

	if t.Quote == a.profitCurrency {
		if t.Type == domain.Buy {
			cost := t.Amount.Mul(t.Rate)
			if feeOK {
				cost = cost.Add(feeValue)
			}
			a.obtain(t.Base, t.Timestamp, t.Amount, cost.Div(t.Amount), t.Link)
		} else {
			a.dispose(t.Base, t.Timestamp, t.Amount, t.Rate, counted, t.Link)
		}
	} else {
		a.processCross(ctx, t, counted, feeValue, feeOK)
	}

	if feeOK {
		a.expenseFee(t, feeValue, feeUnit, counted)
	}
}

// processCross handles trades whose quote asset is not the profit currency:
// both sides are priced through the resolver and each produces its own leg.
func (a *Accountant) processCross(ctx context.Context, t *domain.Trade, counted bool, feeValue decimal.Decimal, feeOK bool) {
	var spent, acquired domain.Asset
	var spentAmount, acquiredAmount decimal.Decimal
	if t.Type == domain.Buy {
		spent, spentAmount = t.Quote, t.Amount.Mul(t.Rate)
		acquired, acquiredAmount = t.Base, t.Amount
	} else {
		spent, spentAmount = t.Base, t.Amount
		acquired, acquiredAmount = t.Quote, t.Amount.Mul(t.Rate)
	}

	if spent != a.profitCurrency {
		if spent.IsFiat() {
			// untraceable fiat source, trim holdings without realizing PnL
			a.costBasis.ReduceQuiet(spent, spentAmount)
		} else if acquiredPrice, ok := a.resolvePrice(ctx, acquired, t.Timestamp, "disposal of "+spent.String()); ok {
			unit := acquiredAmount.Mul(acquiredPrice).Div(spentAmount)
			a.dispose(spent, t.Timestamp, spentAmount, unit, counted, t.Link)
		}
	}

	if acquired != a.profitCurrency {
		if spentPrice, ok := a.resolvePrice(ctx, spent, t.Timestamp, "acquisition of "+acquired.String()); ok {
			cost := spentAmount.Mul(spentPrice)
			if feeOK {
				cost = cost.Add(feeValue)
			}
			a.obtain(acquired, t.Timestamp, acquiredAmount, cost.Div(acquiredAmount), t.Link)
		}
	}
}

// feeValue prices the trade's fee in the profit currency. The returned unit
// is the fee currency's resolved price, reused as the market rate of the fee
// spend. ok is false when the required price cannot be resolved; the failure
// is already reported.
func (a *Accountant) feeValue(ctx context.Context, t *domain.Trade) (value, unit decimal.Decimal, ok bool) {
	switch {
	case t.FeeCurrency == a.profitCurrency:
		unit = decimal.NewFromInt(1)
	case t.FeeCurrency == t.Base && t.Quote == a.profitCurrency:
		// quote is the profit currency, so the trade's own rate prices the fee
		unit = t.Rate
	default:
		p, resolved := a.resolvePrice(ctx, t.FeeCurrency, t.Timestamp,
			fmt.Sprintf("fee of %s %s", t.Fee.String(), t.FeeCurrency))
		if !resolved {
			return decimal.Zero, decimal.Zero, false
		}
		unit = p
	}
	return t.Fee.Mul(unit), unit, true
}

// expenseFee books the fee under the fee category. A fee paid in the profit
// currency (or another fiat) costs its face value. A fee paid in crypto
// spends documented holdings, so the deductible cost is the basis consumed,
// split taxable/free by the age of the lots it came from.
func (a *Accountant) expenseFee(t *domain.Trade, feeValue, feeUnit decimal.Decimal, counted bool) {
	if t.FeeCurrency == a.profitCurrency || t.FeeCurrency.IsFiat() {
		if t.FeeCurrency != a.profitCurrency {
			a.costBasis.ReduceQuiet(t.FeeCurrency, t.Fee)
		}
		if counted {
			a.totals.Add(domain.EventTypeFee, feeValue.Neg(), decimal.Zero)
		}
		a.journalLeg(journal.Entry{
			Link:      t.Link,
			Asset:     t.FeeCurrency,
			Action:    journal.ActionDispose,
			Category:  domain.EventTypeFee,
			Amount:    t.Fee,
			Rate:      feeUnit,
			Timestamp: t.Timestamp,
		})
		return
	}

	res := a.costBasis.Reduce(t.FeeCurrency, t.Timestamp, t.Fee, feeUnit, t.Link)
	if counted {
		a.totals.Add(domain.EventTypeFee, res.TaxableBasis.Neg(), res.FreeBasis.Neg())
	}
	a.journalLeg(journal.Entry{
		Link:      t.Link,
		Asset:     t.FeeCurrency,
		Action:    journal.ActionDispose,
		Category:  domain.EventTypeFee,
		Amount:    t.Fee,
		Rate:      feeUnit,
		Timestamp: t.Timestamp,
	})
}

// resolvePrice looks up the asset's unit price in the profit currency at a
// point in time. The profit currency itself always prices at one. Failures
// are reported through the sink and make the affected leg a no-op.
func (a *Accountant) resolvePrice(ctx context.Context, asset domain.Asset, at time.Time, legDesc string) (decimal.Decimal, bool) {
	if asset == a.profitCurrency {
		return decimal.NewFromInt(1), true
	}
	price, err := a.pricer.PriceAt(ctx, asset, at)
	if err != nil {
		a.l.Debug("price resolution failed", zap.String("asset", asset.String()), zap.Error(err))
		a.msgs.AddError(fmt.Sprintf("unable to find %s price in %s at %s, skipping %s",
			asset, a.profitCurrency, at.UTC().Format(time.RFC3339), legDesc))
		return decimal.Decimal{}, false
	}
	return price, true
}
