package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseTradeType(t *testing.T) {
	for raw, want := range map[string]TradeType{
		"buy":    Buy,
		"SELL":   Sell,
		" Buy ":  Buy,
		"sell\n": Sell,
	} {
		got, err := ParseTradeType(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseTradeType("hodl")
	require.Error(t, err)
}

func TestAssetIsFiat(t *testing.T) {
	require.True(t, Asset("EUR").IsFiat())
	require.True(t, Asset("CHF").IsFiat())
	require.False(t, Asset("BTC").IsFiat())
	require.False(t, Asset("").IsFiat())
}

func TestTradeHasFee(t *testing.T) {
	tr := Trade{Fee: decimal.RequireFromString("0.01"), FeeCurrency: "EUR"}
	require.True(t, tr.HasFee())

	tr = Trade{Fee: decimal.Zero, FeeCurrency: "EUR"}
	require.False(t, tr.HasFee(), "zero fee is no fee")

	tr = Trade{Fee: decimal.RequireFromString("0.01")}
	require.False(t, tr.HasFee(), "fee without currency cannot be valued")
}

func TestPairStrings(t *testing.T) {
	p := Pair{From: "BTC", To: "EUR"}
	require.Equal(t, "BTC_EUR", p.String())
	require.Equal(t, "BTCEUR", p.Symbol())
}
