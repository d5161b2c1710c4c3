package pricer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
	"github.com/vadiminshakov/realized/pkg/retrier"
)

// RetryingPricer retries transient lookup failures of a remote pricer.
// A definitive miss (ErrPriceUnavailable) is returned immediately: the
// exchange answered, it just has no candle for that hour.
type RetryingPricer struct {
	next Pricer
	r    *retrier.Retrier
}

// NewRetryingPricer wraps next with the default backoff policy.
// Extra options override it.
func NewRetryingPricer(next Pricer, opts ...retrier.Option) *RetryingPricer {
	base := []retrier.Option{
		retrier.WithMaxRetries(3),
		retrier.WithPermanent(IsPriceUnavailable),
	}
	return &RetryingPricer{
		next: next,
		r:    retrier.New(append(base, opts...)...),
	}
}

// PriceAt consults the wrapped pricer, retrying transient failures.
func (p *RetryingPricer) PriceAt(ctx context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error) {
	return retrier.DoWithData(p.r, ctx, func(ctx context.Context) (decimal.Decimal, error) {
		return p.next.PriceAt(ctx, asset, at)
	})
}
