package clients

import (
	"github.com/hirokisan/bybit/v2"
)

// NewBybitClient returns an unauthenticated client, kline endpoints are public.
func NewBybitClient() *bybit.Client {
	return bybit.NewClient()
}
