package pricer

import (
	"context"
	"time"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
)

// BybitPricer resolves historical prices from Bybit V5 hourly spot klines.
type BybitPricer struct {
	client         *bybit.Client
	profitCurrency domain.Asset
}

// NewBybitPricer returns a pricer quoting assets against profitCurrency.
func NewBybitPricer(client *bybit.Client, profitCurrency domain.Asset) *BybitPricer {
	return &BybitPricer{client: client, profitCurrency: profitCurrency}
}

// PriceAt fetches the hourly kline covering at and returns its open price.
func (p *BybitPricer) PriceAt(ctx context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error) {
	pair := domain.Pair{From: asset, To: p.profitCurrency}
	hour := at.Truncate(time.Hour)
	start := hour.UnixMilli()
	end := hour.Add(time.Hour).UnixMilli()
	limit := 1

	result, err := p.client.V5().Market().GetKline(bybit.V5GetKlineParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   bybit.SymbolV5(pair.Symbol()),
		Interval: bybit.Interval60,
		Start:    &start,
		End:      &end,
		Limit:    &limit,
	})
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "failed to fetch kline from Bybit for %s", pair.String())
	}
	if len(result.Result.List) == 0 {
		return decimal.Decimal{}, errors.Wrapf(ErrPriceUnavailable, "bybit has no %s kline at %s", pair.String(), at.UTC().Format(time.RFC3339))
	}

	price, err := decimal.NewFromString(result.Result.List[0].Open)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "failed to parse open price for %s", pair.String())
	}
	return price, nil
}
