// Package history loads trade histories prepared as YAML files.
package history

import (
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/realized/internal/domain"
	"github.com/vadiminshakov/realized/internal/services/pricer"
	"gopkg.in/yaml.v3"
)

type tradeTmp struct {
	Timestamp   time.Time        `yaml:"timestamp"`
	Location    string           `yaml:"location"`
	Base        string           `yaml:"base"`
	Quote       string           `yaml:"quote"`
	Type        domain.TradeType `yaml:"type"`
	Amount      string           `yaml:"amount"`
	Rate        string           `yaml:"rate"`
	Fee         string           `yaml:"fee,omitempty"`
	FeeCurrency string           `yaml:"fee_currency,omitempty"`
	Link        string           `yaml:"link,omitempty"`
}

// LoadTrades reads a YAML trade list and returns it sorted chronologically,
// ties keeping file order. Trades without a link get a generated one so that
// ledger records stay attributable.
func LoadTrades(path string) ([]domain.Trade, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read trade history %s", path)
	}

	var tmp []tradeTmp
	if err := yaml.Unmarshal(raw, &tmp); err != nil {
		return nil, errors.Wrapf(err, "failed to parse trade history %s", path)
	}

	trades := make([]domain.Trade, 0, len(tmp))
	for i, t := range tmp {
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "trade %d: invalid amount %q", i, t.Amount)
		}
		rate, err := decimal.NewFromString(t.Rate)
		if err != nil {
			return nil, errors.Wrapf(err, "trade %d: invalid rate %q", i, t.Rate)
		}
		fee := decimal.Zero
		if t.Fee != "" {
			fee, err = decimal.NewFromString(t.Fee)
			if err != nil {
				return nil, errors.Wrapf(err, "trade %d: invalid fee %q", i, t.Fee)
			}
		}
		if t.Base == "" || t.Quote == "" {
			return nil, errors.Errorf("trade %d: base and quote assets are required", i)
		}
		link := t.Link
		if link == "" {
			link = uuid.New().String()
		}

		trades = append(trades, domain.Trade{
			Timestamp:   t.Timestamp,
			Location:    t.Location,
			Base:        domain.Asset(t.Base),
			Quote:       domain.Asset(t.Quote),
			Type:        t.Type,
			Amount:      amount,
			Rate:        rate,
			Fee:         fee,
			FeeCurrency: domain.Asset(t.FeeCurrency),
			Link:        link,
		})
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})
	return trades, nil
}

type pricePointTmp struct {
	At    time.Time `yaml:"at"`
	Price string    `yaml:"price"`
}

// LoadPrices reads a YAML price table (asset -> list of timestamped prices)
// usable as a fixture for the in-memory resolver.
func LoadPrices(path string) (map[domain.Asset][]pricer.PricePoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read price table %s", path)
	}

	var tmp map[string][]pricePointTmp
	if err := yaml.Unmarshal(raw, &tmp); err != nil {
		return nil, errors.Wrapf(err, "failed to parse price table %s", path)
	}

	out := make(map[domain.Asset][]pricer.PricePoint, len(tmp))
	for asset, pts := range tmp {
		for _, pt := range pts {
			price, err := decimal.NewFromString(pt.Price)
			if err != nil {
				return nil, errors.Wrapf(err, "asset %s: invalid price %q", asset, pt.Price)
			}
			out[domain.Asset(asset)] = append(out[domain.Asset(asset)], pricer.PricePoint{At: pt.At, Price: price})
		}
	}
	return out, nil
}
