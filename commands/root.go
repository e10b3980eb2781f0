package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardmarket-scraper/config"
	"cardmarket-scraper/services"
	"cardmarket-scraper/storage"
	"cardmarket-scraper/utils"
)

var rootCmd = &cobra.Command{
	Use:   "cardmarket-scraper",
	Short: "Scrapes CardMarket listings into workbooks and prices decks against them.",
}

// ExecuteContext runs the CLI.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wiring shared by every command.
type app struct {
	cfg      *config.Config
	logger   *utils.Logger
	store    *storage.ExcelStore
	analyzer *services.Analyzer
	reporter *services.Reporter
}

func newApp() *app {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)
	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    storage.NewExcelStore(cfg.OutputDir, logger),
		analyzer: services.NewAnalyzer(cfg.Languages, cfg.PrimaryLanguage, logger),
		reporter: services.NewReporter(cfg.Languages),
	}
}
