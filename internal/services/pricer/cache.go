package pricer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
)

// CachingPricer memoizes another pricer's answers, bucketed by hour.
// A replay hits the same asset/timestamp pairs repeatedly (both trade legs
// plus the fee resolve at the trade timestamp), so the cache absorbs the
// latency of remote lookups. Misses are not cached.
type CachingPricer struct {
	next Pricer

	mu    sync.Mutex
	cache map[string]decimal.Decimal
}

// NewCachingPricer wraps next with an hourly-bucket memo cache.
func NewCachingPricer(next Pricer) *CachingPricer {
	return &CachingPricer{
		next:  next,
		cache: make(map[string]decimal.Decimal),
	}
}

func cacheKey(asset domain.Asset, at time.Time) string {
	return fmt.Sprintf("%s@%d", asset, at.Truncate(time.Hour).Unix())
}

// PriceAt returns the cached price or consults the wrapped pricer.
func (p *CachingPricer) PriceAt(ctx context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error) {
	key := cacheKey(asset, at)

	p.mu.Lock()
	price, ok := p.cache[key]
	p.mu.Unlock()
	if ok {
		return price, nil
	}

	price, err := p.next.PriceAt(ctx, asset, at)
	if err != nil {
		return decimal.Decimal{}, err
	}

	p.mu.Lock()
	p.cache[key] = price
	p.mu.Unlock()
	return price, nil
}
