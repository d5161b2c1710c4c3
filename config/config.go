// Package config loads the engine configuration from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vadiminshakov/realized/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultTaxfreeAfter is one year, the usual holding-period exemption.
const DefaultTaxfreeAfter = 365 * 24 * time.Hour

type Config struct {
	// ProfitCurrency is the currency all gains and losses are expressed in.
	ProfitCurrency domain.Asset
	// TaxfreeAfter is the holding period after which disposals are tax free.
	// Non-positive disables the exemption entirely.
	TaxfreeAfter time.Duration
	// Platform selects the price resolver: binance, bybit, hyperliquid or file.
	Platform string
	// History is the path of the YAML trade history.
	History string
	// Prices is the path of a YAML price table, required for the file platform.
	Prices string
	// Start and End bound the reporting period.
	Start time.Time
	End   time.Time
	// JournalDir enables the WAL audit journal when non-empty.
	JournalDir string
}

type ConfigTmp struct {
	ProfitCurrency string        `yaml:"profit_currency"`
	TaxfreeAfter   time.Duration `yaml:"taxfree_after"`
	TaxfreeOff     bool          `yaml:"taxfree_off,omitempty"`
	Platform       string        `yaml:"platform"`
	History        string        `yaml:"history"`
	Prices         string        `yaml:"prices,omitempty"`
	Start          time.Time     `yaml:"start,omitempty"`
	End            time.Time     `yaml:"end,omitempty"`
	JournalDir     string        `yaml:"journal_dir,omitempty"`
}

// Get reads the configuration, preferring --config when given.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	profitCurrency := flag.String("profit-currency", "EUR", "currency gains are expressed in")
	taxfreeAfter := flag.Duration("taxfree-after", DefaultTaxfreeAfter, "holding period for the tax exemption, 0 disables it")
	platform := flag.String("platform", "file", "price source: binance, bybit, hyperliquid or file")
	historyPath := flag.String("history", "trades.yaml", "path to yaml trade history")
	pricesPath := flag.String("prices", "", "path to yaml price table (file platform)")
	start := flag.String("start", "", "period start, RFC3339 (default: unix epoch)")
	end := flag.String("end", "", "period end, RFC3339 (default: now)")
	journalDir := flag.String("journal", "", "directory for the audit journal, empty disables it")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	cfg := Config{
		ProfitCurrency: domain.Asset(*profitCurrency),
		TaxfreeAfter:   *taxfreeAfter,
		Platform:       *platform,
		History:        *historyPath,
		Prices:         *pricesPath,
		JournalDir:     *journalDir,
	}

	var err error
	if cfg.Start, err = parseTimeFlag(*start, time.Unix(0, 0)); err != nil {
		return Config{}, fmt.Errorf("invalid --start provided, --start=%s", *start)
	}
	if cfg.End, err = parseTimeFlag(*end, time.Now()); err != nil {
		return Config{}, fmt.Errorf("invalid --end provided, --end=%s", *end)
	}

	return cfg, cfg.validate()
}

func parseTimeFlag(raw string, def time.Time) (time.Time, error) {
	if raw == "" {
		return def, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ProfitCurrency: domain.Asset(tmp.ProfitCurrency),
		TaxfreeAfter:   tmp.TaxfreeAfter,
		Platform:       tmp.Platform,
		History:        tmp.History,
		Prices:         tmp.Prices,
		Start:          tmp.Start,
		End:            tmp.End,
		JournalDir:     tmp.JournalDir,
	}
	if cfg.ProfitCurrency == "" {
		cfg.ProfitCurrency = "EUR"
	}
	if cfg.TaxfreeAfter == 0 && !tmp.TaxfreeOff {
		cfg.TaxfreeAfter = DefaultTaxfreeAfter
	}
	if tmp.TaxfreeOff {
		cfg.TaxfreeAfter = -1
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Unix(0, 0)
	}
	if cfg.End.IsZero() {
		cfg.End = time.Now()
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Platform {
	case "binance", "bybit", "hyperliquid":
	case "file":
		if c.Prices == "" {
			return fmt.Errorf("the file platform needs --prices (or prices in yaml)")
		}
	default:
		return fmt.Errorf("unsupported platform %q", c.Platform)
	}
	if c.History == "" {
		return fmt.Errorf("trade history path is required")
	}
	if c.End.Before(c.Start) {
		return fmt.Errorf("period end %s precedes start %s", c.End.Format(time.RFC3339), c.Start.Format(time.RFC3339))
	}
	return nil
}
