package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient returns an unauthenticated client, kline endpoints are public.
func NewBinanceClient() *binance.Client {
	return binance.NewClient("", "")
}
