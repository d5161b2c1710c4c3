// Package pricer resolves historical asset prices in the profit currency.
package pricer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
)

// ErrPriceUnavailable signals that no market data exists for the requested
// asset and timestamp. The accounting engine treats it as recoverable.
var ErrPriceUnavailable = errors.New("price unavailable")

// Pricer resolves the unit price of an asset in the profit currency at a
// point in time.
type Pricer interface {
	PriceAt(ctx context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error)
}

// IsPriceUnavailable reports whether err is the missing-market-data condition.
func IsPriceUnavailable(err error) bool {
	return errors.Is(err, ErrPriceUnavailable)
}
