package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetYamlDefaults(t *testing.T) {
	path := writeConfig(t, `
platform: file
history: trades.yaml
prices: prices.yaml
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	require.Equal(t, "EUR", cfg.ProfitCurrency.String())
	require.Equal(t, DefaultTaxfreeAfter, cfg.TaxfreeAfter)
	require.Equal(t, "file", cfg.Platform)
	require.Equal(t, time.Unix(0, 0), cfg.Start)
	require.False(t, cfg.End.IsZero())
}

func TestGetYamlExplicitValues(t *testing.T) {
	path := writeConfig(t, `
profit_currency: USD
taxfree_after: 4380h
platform: binance
history: trades.yaml
start: 2015-07-15T00:00:00Z
end: 2017-05-25T00:00:00Z
journal_dir: ./journal
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	require.Equal(t, "USD", cfg.ProfitCurrency.String())
	require.Equal(t, 4380*time.Hour, cfg.TaxfreeAfter)
	require.Equal(t, "binance", cfg.Platform)
	require.Equal(t, time.Date(2015, 7, 15, 0, 0, 0, 0, time.UTC), cfg.Start.UTC())
	require.Equal(t, "./journal", cfg.JournalDir)
}

func TestGetYamlTaxfreeOff(t *testing.T) {
	path := writeConfig(t, `
platform: bybit
history: trades.yaml
taxfree_off: true
`)

	cfg, err := getYaml(path)
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), cfg.TaxfreeAfter)
}

func TestGetYamlValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown platform",
			content: "platform: kraken\nhistory: trades.yaml\n",
		},
		{
			name:    "file platform without prices",
			content: "platform: file\nhistory: trades.yaml\n",
		},
		{
			name:    "missing history",
			content: "platform: binance\n",
		},
		{
			name: "end before start",
			content: `
platform: binance
history: trades.yaml
start: 2017-01-01T00:00:00Z
end: 2016-01-01T00:00:00Z
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := getYaml(path)
			require.Error(t, err)
		})
	}
}
