package costbasis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/realized/internal/domain"
)

type recordingSink struct {
	errors []string
}

func (r *recordingSink) AddError(msg string) {
	r.errors = append(r.errors, msg)
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

const year = 365 * 24 * time.Hour

var t0 = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

func TestReduceConsumesOldestLotsFirst(t *testing.T) {
	sink := &recordingSink{}
	c := NewCalculator(year, sink)
	btc := domain.Asset("BTC")

	c.Obtain(btc, t0, d("1"), d("100"), "a")
	c.Obtain(btc, t0.Add(time.Hour), d("1"), d("200"), "b")

	res := c.Reduce(btc, t0.Add(2*time.Hour), d("1.5"), d("300"), "s")

	// 1 unit from the first lot, 0.5 from the second
	require.True(t, res.TaxableGain.Equal(d("250")), "got %s", res.TaxableGain)
	require.True(t, res.Unmatched.IsZero())
	require.Empty(t, sink.errors)

	ev := c.Events(btc)
	require.Len(t, ev.Acquisitions, 1, "first lot should be fully consumed and dropped")
	require.True(t, ev.Acquisitions[0].Remaining.Equal(d("0.5")))
	require.Len(t, ev.Spends, 1)
	require.Len(t, ev.Spends[0].Slices, 2)
	require.True(t, ev.Spends[0].Slices[0].Rate.Equal(d("100")))
	require.True(t, ev.Spends[0].Slices[1].Rate.Equal(d("200")))
}

func TestReduceSplitsGainByHoldingPeriod(t *testing.T) {
	sink := &recordingSink{}
	c := NewCalculator(year, sink)
	eth := domain.Asset("ETH")

	c.Obtain(eth, t0, d("2"), d("10"), "old")
	c.Obtain(eth, t0.Add(100*24*time.Hour), d("2"), d("20"), "young")

	// disposal straddles both lots: the old one cleared the holding period,
	// the young one did not
	res := c.Reduce(eth, t0.Add(year), d("3"), d("50"), "s")

	require.True(t, res.FreeGain.Equal(d("80")), "old lot gain 2*(50-10), got %s", res.FreeGain)
	require.True(t, res.TaxableGain.Equal(d("30")), "young lot gain 1*(50-20), got %s", res.TaxableGain)
	require.True(t, res.FreeBasis.Equal(d("20")))
	require.True(t, res.TaxableBasis.Equal(d("20")))
	require.Empty(t, sink.errors)
}

func TestReduceExactBoundaryIsTaxFree(t *testing.T) {
	c := NewCalculator(year, &recordingSink{})
	require.True(t, c.TaxFree(year))
	require.False(t, c.TaxFree(year-time.Second))
}

func TestReduceDisabledExemptionKeepsEverythingTaxable(t *testing.T) {
	sink := &recordingSink{}
	c := NewCalculator(-1, sink)
	btc := domain.Asset("BTC")

	c.Obtain(btc, t0, d("1"), d("100"), "a")
	res := c.Reduce(btc, t0.Add(10*year), d("1"), d("500"), "s")

	require.True(t, res.FreeGain.IsZero())
	require.True(t, res.TaxableGain.Equal(d("400")))
}

func TestReduceShortfallIsZeroCostBasis(t *testing.T) {
	sink := &recordingSink{}
	c := NewCalculator(year, sink)
	btc := domain.Asset("BTC")

	c.Obtain(btc, t0, d("1"), d("100"), "a")
	res := c.Reduce(btc, t0.Add(time.Hour), d("2.5"), d("200"), "s")

	// 1 covered unit gains 100, the uncovered 1.5 realizes full market value
	require.True(t, res.Unmatched.Equal(d("1.5")))
	require.True(t, res.TaxableGain.Equal(d("400")), "got %s", res.TaxableGain)
	require.Len(t, sink.errors, 1, "exactly one report per disposal")
	require.Contains(t, sink.errors[0], "no documented acquisition found")
	require.Contains(t, sink.errors[0], "1.5 BTC")
}

func TestReduceNoLotsAtAll(t *testing.T) {
	sink := &recordingSink{}
	c := NewCalculator(year, sink)

	res := c.Reduce(domain.Asset("XMR"), t0, d("3"), d("10"), "s")

	require.True(t, res.TaxableGain.Equal(d("30")))
	require.True(t, res.Unmatched.Equal(d("3")))
	require.Len(t, sink.errors, 1)
}

func TestReduceQuietTrimsWithoutReports(t *testing.T) {
	sink := &recordingSink{}
	c := NewCalculator(year, sink)
	usd := domain.Asset("USD")

	c.Obtain(usd, t0, d("100"), d("1"), "a")
	c.ReduceQuiet(usd, d("250"))

	require.True(t, c.HeldAmount(usd).IsZero())
	require.Empty(t, sink.errors, "quiet reduction must not report shortfalls")
	require.Empty(t, c.Events(usd).Spends, "quiet reduction must not record spends")
}

func TestHeldAmountInvariant(t *testing.T) {
	sink := &recordingSink{}
	c := NewCalculator(year, sink)
	btc := domain.Asset("BTC")

	c.Obtain(btc, t0, d("2"), d("100"), "a")
	c.Obtain(btc, t0.Add(time.Hour), d("3"), d("150"), "b")
	c.Reduce(btc, t0.Add(2*time.Hour), d("1.75"), d("200"), "s")

	// acquired minus disposed
	require.True(t, c.HeldAmount(btc).Equal(d("3.25")))
}

func TestAssetsSorted(t *testing.T) {
	c := NewCalculator(year, &recordingSink{})
	c.Obtain(domain.Asset("XMR"), t0, d("1"), d("1"), "")
	c.Obtain(domain.Asset("BTC"), t0, d("1"), d("1"), "")
	c.Obtain(domain.Asset("ETH"), t0, d("1"), d("1"), "")

	require.Equal(t, []domain.Asset{"BTC", "ETH", "XMR"}, c.Assets())
}
