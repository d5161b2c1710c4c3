package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TradeType buy or sell, seen from the base asset side.
type TradeType int

const (
	// Buy acquires the base asset paying with the quote asset.
	Buy TradeType = iota
	// Sell disposes the base asset receiving the quote asset.
	Sell
)

// String returns a human-readable string representation.
func (t TradeType) String() string {
	switch t {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseTradeType parses "buy" or "sell", case insensitive.
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return Buy, errors.Errorf("unknown trade type %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TradeType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseTradeType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Trade is one asset-exchange event from the replayed history.
// Amount is always a quantity of the base asset, Rate the price of base in quote.
type Trade struct {
	Timestamp   time.Time
	Location    string
	Base        Asset
	Quote       Asset
	Type        TradeType
	Amount      decimal.Decimal
	Rate        decimal.Decimal
	Fee         decimal.Decimal
	FeeCurrency Asset
	Link        string
}

// HasFee reports whether the trade carries a fee worth accounting for.
func (t *Trade) HasFee() bool {
	return t.FeeCurrency != "" && t.Fee.IsPositive()
}

// String returns a human-readable string representation.
func (t *Trade) String() string {
	return fmt.Sprintf("%s %s %s/%s amount: %s rate: %s",
		t.Type.String(), t.Timestamp.UTC().Format(time.RFC3339), t.Base, t.Quote,
		t.Amount.String(), t.Rate.String())
}
