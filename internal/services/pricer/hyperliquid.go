package pricer

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	hyperliquid "github.com/sonirico/go-hyperliquid"
	"github.com/vadiminshakov/realized/internal/domain"
)

// HyperliquidPricer resolves historical prices from Hyperliquid candle
// snapshots. Hyperliquid quotes in USD, so it only suits a USD profit currency.
type HyperliquidPricer struct {
	info *hyperliquid.Info
}

// NewHyperliquidPricer returns a pricer backed by the public Info API.
func NewHyperliquidPricer(info *hyperliquid.Info) *HyperliquidPricer {
	return &HyperliquidPricer{info: info}
}

// PriceAt fetches the hourly candle covering at and returns its open price.
func (p *HyperliquidPricer) PriceAt(ctx context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error) {
	if p.info == nil {
		return decimal.Decimal{}, errors.New("hyperliquid info client is nil")
	}

	coin := strings.ToUpper(asset.String())
	hour := at.Truncate(time.Hour)

	candles, err := p.info.CandlesSnapshot(ctx, coin, "1h", hour.UnixMilli(), hour.Add(time.Hour).UnixMilli())
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "failed to fetch candles from Hyperliquid for %s", coin)
	}
	if len(candles) == 0 {
		return decimal.Decimal{}, errors.Wrapf(ErrPriceUnavailable, "hyperliquid has no %s candle at %s", coin, at.UTC().Format(time.RFC3339))
	}

	price, err := decimal.NewFromString(candles[0].Open)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "failed to parse open price for %s", coin)
	}
	return price, nil
}
