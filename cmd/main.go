// Command realized computes realized profit and loss for a trade history.
// It matches disposals against acquisitions first-in-first-out, splits gains
// into taxable and tax-free buckets by holding period and prices cross-asset
// trades through an exchange kline API or a local price table.
//
// Usage:
//
//	realized --config config.yaml
//	realized (uses CLI arguments)
//	realized --setup (interactive configuration wizard)
//
// Required environment variables:
//
//	For Hyperliquid: HYPERLIQUID_PRIVATE_KEY
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/realized/config"
	"github.com/vadiminshakov/realized/internal/clients"
	"github.com/vadiminshakov/realized/internal/domain"
	"github.com/vadiminshakov/realized/internal/services/accounting"
	"github.com/vadiminshakov/realized/internal/services/history"
	"github.com/vadiminshakov/realized/internal/services/journal"
	"github.com/vadiminshakov/realized/internal/services/messages"
	"github.com/vadiminshakov/realized/internal/services/pricer"
	"github.com/vadiminshakov/realized/internal/setup"
	"go.uber.org/zap"
)

const hyperliquidAPIURL = "https://api.hyperliquid.xyz"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	gainStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"})
	lossStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--setup" || arg == "-setup" {
			if err := setup.RunTUI(); err != nil {
				log.Fatal(err)
			}
			return
		}
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	priceSource, err := buildPricer(cfg)
	if err != nil {
		logger.Fatal("failed to build price source", zap.Error(err))
	}

	trades, err := history.LoadTrades(cfg.History)
	if err != nil {
		logger.Fatal("failed to load trade history", zap.Error(err))
	}

	msgs := messages.NewAggregator(logger)
	accountant := accounting.NewAccountant(logger, cfg.ProfitCurrency, cfg.TaxfreeAfter, pricer.NewCachingPricer(priceSource), msgs)

	if cfg.JournalDir != "" {
		j, err := journal.New(cfg.JournalDir)
		if err != nil {
			logger.Fatal("failed to open audit journal", zap.Error(err))
		}
		defer j.Close()
		accountant.AttachJournal(j)
	}

	totals := accountant.ProcessHistory(context.Background(), cfg.Start, cfg.End, trades)

	report(cfg, accountant, totals, msgs)
}

// buildPricer selects the price source. Remote sources get a retry wrapper,
// the local table does not need one.
func buildPricer(cfg config.Config) (pricer.Pricer, error) {
	switch cfg.Platform {
	case "binance":
		return pricer.NewRetryingPricer(pricer.NewBinancePricer(clients.NewBinanceClient(), cfg.ProfitCurrency)), nil
	case "bybit":
		return pricer.NewRetryingPricer(pricer.NewBybitPricer(clients.NewBybitClient(), cfg.ProfitCurrency)), nil
	case "hyperliquid":
		key := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
		if key == "" {
			return nil, fmt.Errorf("HYPERLIQUID_PRIVATE_KEY environment variable must be set")
		}
		client, err := clients.NewHyperliquidClient(key, hyperliquidAPIURL)
		if err != nil {
			return nil, err
		}
		return pricer.NewRetryingPricer(pricer.NewHyperliquidPricer(client.Info())), nil
	case "file":
		points, err := history.LoadPrices(cfg.Prices)
		if err != nil {
			return nil, err
		}
		return pricer.NewMemoryPricer(points), nil
	default:
		return nil, fmt.Errorf("unsupported platform %q", cfg.Platform)
	}
}

func report(cfg config.Config, accountant *accounting.Accountant, totals domain.PnlTotals, msgs *messages.Aggregator) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Realized PnL %s - %s (%s)",
		cfg.Start.Format("2006-01-02"), cfg.End.Format("2006-01-02"), cfg.ProfitCurrency)))

	for _, event := range []domain.EventType{domain.EventTypeTrade, domain.EventTypeFee} {
		pnl := totals[event]
		line := fmt.Sprintf("%-6s taxable %s  tax-free %s  total %s",
			event, pnl.Taxable.String(), pnl.Free.String(), pnl.Total().String())
		if pnl.Total().IsNegative() {
			fmt.Println(lossStyle.Render(line))
		} else {
			fmt.Println(gainStyle.Render(line))
		}
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Remaining holdings"))
	for _, asset := range accountant.CostBasis().Assets() {
		held := accountant.CostBasis().HeldAmount(asset)
		if held.IsZero() {
			continue
		}
		fmt.Printf("%-8s %s\n", asset, held.String())
	}

	for _, w := range msgs.Warnings() {
		fmt.Println(warnStyle.Render("warning: " + w))
	}
	for _, e := range msgs.Errors() {
		fmt.Println(lossStyle.Render("error: " + e))
	}
}
