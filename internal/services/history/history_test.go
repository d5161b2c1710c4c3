package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/realized/internal/domain"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTrades(t *testing.T) {
	path := writeTempFile(t, "trades.yaml", `
- timestamp: 2016-03-15T18:52:50Z
  location: kraken
  base: XMR
  quote: EUR
  type: sell
  amount: "45"
  rate: "1.0443027675"
  fee: "0.117484061344"
  fee_currency: XMR
  link: trade-2
- timestamp: 2015-11-08T11:28:55Z
  location: external
  base: BTC
  quote: EUR
  type: buy
  amount: "82"
  rate: "268.678317859"
`)

	trades, err := LoadTrades(path)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// sorted chronologically regardless of file order
	require.Equal(t, domain.Asset("BTC"), trades[0].Base)
	require.Equal(t, domain.Buy, trades[0].Type)
	require.True(t, trades[0].Amount.Equal(decimal.NewFromInt(82)))
	require.False(t, trades[0].HasFee())
	require.NotEmpty(t, trades[0].Link, "missing links get generated")

	require.Equal(t, domain.Asset("XMR"), trades[1].Base)
	require.Equal(t, domain.Sell, trades[1].Type)
	require.True(t, trades[1].Rate.Equal(decimal.RequireFromString("1.0443027675")))
	require.True(t, trades[1].HasFee())
	require.Equal(t, domain.Asset("XMR"), trades[1].FeeCurrency)
	require.Equal(t, "trade-2", trades[1].Link)
	require.Equal(t, time.Date(2016, 3, 15, 18, 52, 50, 0, time.UTC), trades[1].Timestamp.UTC())
}

func TestLoadTradesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad amount",
			content: `
- timestamp: 2015-11-08T11:28:55Z
  base: BTC
  quote: EUR
  type: buy
  amount: "not a number"
  rate: "1"
`,
		},
		{
			name: "bad trade type",
			content: `
- timestamp: 2015-11-08T11:28:55Z
  base: BTC
  quote: EUR
  type: hodl
  amount: "1"
  rate: "1"
`,
		},
		{
			name: "missing quote",
			content: `
- timestamp: 2015-11-08T11:28:55Z
  base: BTC
  type: buy
  amount: "1"
  rate: "1"
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, "trades.yaml", tc.content)
			_, err := LoadTrades(path)
			require.Error(t, err)
		})
	}
}

func TestLoadTradesMissingFile(t *testing.T) {
	_, err := LoadTrades(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadPrices(t *testing.T) {
	path := writeTempFile(t, "prices.yaml", `
BTC:
  - at: 2015-12-11T04:12:16Z
    price: "386.175"
XMR:
  - at: 2015-12-11T04:12:16Z
    price: "0.39665"
  - at: 2016-03-15T18:52:50Z
    price: "1.0443027675"
`)

	points, err := LoadPrices(path)
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Len(t, points[domain.Asset("XMR")], 2)
	require.True(t, points[domain.Asset("BTC")][0].Price.Equal(decimal.RequireFromString("386.175")))
}

func TestLoadPricesRejectsBadPrice(t *testing.T) {
	path := writeTempFile(t, "prices.yaml", `
BTC:
  - at: 2015-12-11T04:12:16Z
    price: "cheap"
`)

	_, err := LoadPrices(path)
	require.Error(t, err)
}
