package pricer

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
)

// BinancePricer resolves historical prices from Binance hourly klines
// through the public API, no authentication required.
type BinancePricer struct {
	client         *binance.Client
	profitCurrency domain.Asset
}

// NewBinancePricer returns a pricer quoting assets against profitCurrency.
func NewBinancePricer(client *binance.Client, profitCurrency domain.Asset) *BinancePricer {
	return &BinancePricer{client: client, profitCurrency: profitCurrency}
}

// PriceAt fetches the hourly kline covering at and returns its open price.
func (p *BinancePricer) PriceAt(ctx context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error) {
	pair := domain.Pair{From: asset, To: p.profitCurrency}
	hour := at.Truncate(time.Hour)

	klines, err := p.client.NewKlinesService().
		Symbol(pair.Symbol()).
		Interval("1h").
		StartTime(hour.UnixMilli()).
		EndTime(hour.Add(time.Hour).UnixMilli()).
		Limit(1).
		Do(ctx)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "failed to fetch klines from Binance for %s", pair.String())
	}
	if len(klines) == 0 {
		return decimal.Decimal{}, errors.Wrapf(ErrPriceUnavailable, "binance has no %s kline at %s", pair.String(), at.UTC().Format(time.RFC3339))
	}

	price, err := decimal.NewFromString(klines[0].Open)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "failed to parse open price for %s", pair.String())
	}
	return price, nil
}
