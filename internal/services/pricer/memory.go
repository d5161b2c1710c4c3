package pricer

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
)

// PricePoint is one known price of an asset at a moment in time.
type PricePoint struct {
	At    time.Time
	Price decimal.Decimal
}

// MemoryPricer serves prices from a fixed table. Used for price files
// prepared offline and as a test fixture.
type MemoryPricer struct {
	points map[domain.Asset][]PricePoint
}

// NewMemoryPricer builds a pricer from the given table. Points are sorted
// per asset by time; lookups return the latest point at or before the
// requested timestamp.
func NewMemoryPricer(points map[domain.Asset][]PricePoint) *MemoryPricer {
	sorted := make(map[domain.Asset][]PricePoint, len(points))
	for asset, pts := range points {
		cp := make([]PricePoint, len(pts))
		copy(cp, pts)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].At.Before(cp[j].At) })
		sorted[asset] = cp
	}
	return &MemoryPricer{points: sorted}
}

// PriceAt returns the latest known price at or before at.
func (p *MemoryPricer) PriceAt(_ context.Context, asset domain.Asset, at time.Time) (decimal.Decimal, error) {
	pts := p.points[asset]
	idx := sort.Search(len(pts), func(i int) bool { return pts[i].At.After(at) })
	if idx == 0 {
		return decimal.Decimal{}, errors.Wrapf(ErrPriceUnavailable, "no known %s price at or before %s", asset, at.UTC().Format(time.RFC3339))
	}
	return pts[idx-1].Price, nil
}
