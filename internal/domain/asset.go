// Package domain defines core data structures used throughout the accounting engine.
package domain

import "fmt"

// Asset is a currency or token symbol, e.g. "BTC" or "EUR".
type Asset string

var fiatSymbols = map[Asset]bool{
	"EUR": true,
	"USD": true,
	"GBP": true,
	"CHF": true,
	"JPY": true,
	"CAD": true,
	"AUD": true,
	"RUB": true,
	"CNY": true,
	"SEK": true,
	"NOK": true,
	"DKK": true,
	"PLN": true,
}

// IsFiat reports whether the asset is a government-issued currency.
func (a Asset) IsFiat() bool {
	return fiatSymbols[a]
}

// String returns the symbol.
func (a Asset) String() string {
	return string(a)
}

// Pair is an asset priced against a quote currency.
type Pair struct {
	// From base asset symbol.
	From Asset
	// To quote asset symbol.
	To Asset
}

// String returns the string representation.
func (p *Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Symbol returns the concatenated symbol representation used by exchange APIs.
func (p *Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
