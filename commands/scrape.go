package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cardmarket-scraper/config"
	"cardmarket-scraper/scraper/cardmarket"
	"cardmarket-scraper/services"
)

var (
	scrapeListPath string
	scrapeAll      bool
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeListPath, "list", "", "card list YAML file to scrape")
	scrapeCmd.Flags().BoolVar(&scrapeAll, "all", false, "scrape every list named in the _list.yaml index")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--list <path/to/list.yaml> | --all]",
	Short: "Scrapes CardMarket listings for one card list (or all indexed lists) into a dated workbook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		scraper := cardmarket.New(a.cfg, a.logger, services.NewExtractor(a.logger), a.store)

		if scrapeAll {
			return scrapeIndexed(cmd, a, scraper)
		}
		if scrapeListPath == "" {
			return fmt.Errorf("either --list or --all is required")
		}

		list, err := config.LoadCardList(scrapeListPath)
		if err != nil {
			return err
		}

		path, err := scraper.ScrapeList(cmd.Context(), list)
		if err != nil {
			return err
		}
		a.logger.Info("results written to %s", path)
		return nil
	},
}

// scrapeIndexed processes every list named in the index sequentially.
// A failing list does not stop its siblings; the run fails only if any
// list failed.
func scrapeIndexed(cmd *cobra.Command, a *app, scraper *cardmarket.Scraper) error {
	indexPath := filepath.Join(a.cfg.CardListsDir, "_list.yaml")
	files, err := config.LoadCardListIndex(indexPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no card lists named in %s", indexPath)
	}

	var failed []string
	for i, file := range files {
		a.logger.Info("[%d/%d] processing list file: %s", i+1, len(files), file)

		list, err := config.LoadCardList(filepath.Join(a.cfg.CardListsDir, file))
		if err != nil {
			a.logger.Error("skipping %s: %v", file, err)
			failed = append(failed, file)
			continue
		}

		if _, err := scraper.ScrapeList(cmd.Context(), list); err != nil {
			a.logger.Error("list %s failed: %v", file, err)
			failed = append(failed, file)
		}
	}

	a.logger.Info("processed %d lists, %d failed", len(files), len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("failed lists: %s", strings.Join(failed, ", "))
	}
	return nil
}
