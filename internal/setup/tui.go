package setup

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/realized/config"
	"gopkg.in/yaml.v3"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		profitCurrency string
		platform       string
		taxfreeStr     string
		historyPath    string
		pricesPath     string
		journalDir     string
		confirm        bool
	)

	// defaults
	profitCurrency = "EUR"
	taxfreeStr = "8760h"
	historyPath = "trades.yaml"

	// step 1: welcome
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("REALIZED CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's get your trade history accounted for.\n"))

	// profit currency
	fmt.Println(stepStyle.Render("STEP 1: PROFIT CURRENCY"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency to express gains in").
				Options(
					huh.NewOption("EUR", "EUR"),
					huh.NewOption("USD", "USD"),
					huh.NewOption("GBP", "GBP"),
					huh.NewOption("CHF", "CHF"),
				).
				Value(&profitCurrency),
		),
	).Run()
	if err != nil {
		return err
	}

	// price source
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("REALIZED CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: PRICE SOURCE"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where to fetch historical prices").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
					huh.NewOption("Local price table", "file"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	// history
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("REALIZED CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: TRADE HISTORY"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trade history file").
				Description("Path to the yaml trade history").
				Value(&historyPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("history path cannot be empty")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	if platform == "file" {
		fmt.Print("\033[H\033[2J")
		fmt.Println(headerStyle.Render("REALIZED CONFIG WIZARD"))
		fmt.Println(stepStyle.Render("STEP 4: PRICE TABLE"))
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Price table file").
					Description("Path to the yaml historical price table").
					Value(&pricesPath).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("prices path cannot be empty for the file source")
						}
						return nil
					}),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	// tax policy
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("REALIZED CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 5: TAX POLICY"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tax-free holding period").
				Description("Duration string (e.g. 8760h for one year), 0 disables the exemption").
				Value(&taxfreeStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// journal
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("REALIZED CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 6: AUDIT JOURNAL"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Journal directory").
				Description("Directory for the write-ahead audit journal, empty disables it").
				Value(&journalDir),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("REALIZED CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Profit currency: %s\nPrice source: %s\nHistory: %s\nTax-free after: %s\n",
		profitCurrency, platform, historyPath, taxfreeStr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	taxfreeAfter, _ := time.ParseDuration(taxfreeStr)

	cfgTmp := config.ConfigTmp{
		ProfitCurrency: profitCurrency,
		TaxfreeAfter:   taxfreeAfter,
		TaxfreeOff:     taxfreeAfter == 0,
		Platform:       platform,
		History:        historyPath,
		Prices:         pricesPath,
		JournalDir:     journalDir,
	}

	data, err := yaml.Marshal(cfgTmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nRun again with --config %s", filename, filename)))
	return nil
}
