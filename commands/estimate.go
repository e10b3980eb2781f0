package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cardmarket-scraper/config"
	"cardmarket-scraper/models"
	"cardmarket-scraper/services"
)

var (
	estimateDeckPath string
	estimateDate     string
	estimateLanguage string
	estimateNoFall   bool
	estimateCompare  bool
)

func init() {
	estimateCmd.Flags().StringVar(&estimateDeckPath, "deck", "", "deck YAML file to price (required)")
	estimateCmd.Flags().StringVar(&estimateDate, "date", "", "analysis date folder (YYYY-MM-DD, default today)")
	estimateCmd.Flags().StringVar(&estimateLanguage, "language", "", "language preference (default primary; 'Foreign' uses the combined non-primary pool)")
	estimateCmd.Flags().BoolVar(&estimateNoFall, "no-fallback", false, "disable falling back to foreign prices")
	estimateCmd.Flags().BoolVar(&estimateCompare, "compare", false, "also run the Foreign preference and print the savings comparison")
	_ = estimateCmd.MarkFlagRequired("deck")
	rootCmd.AddCommand(estimateCmd)
}

var estimateCmd = &cobra.Command{
	Use:   "estimate --deck <path/to/deck.yaml> [--date YYYY-MM-DD] [--language <name>]",
	Short: "Prices a deck list against a day's aggregated card statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		deck, err := config.LoadDeck(estimateDeckPath)
		if err != nil {
			return err
		}

		date := estimateDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		folder, err := a.analyzer.AnalyzeFolder(a.store, filepath.Join(a.cfg.OutputDir, date))
		if err != nil {
			return err
		}

		a.logger.Info("deck: %s, cards needed: %d", deck.DeckName, deck.TotalCards())

		preference := estimateLanguage
		if preference == "" {
			preference = a.cfg.PrimaryLanguage
		}

		matcher := services.NewMatcher(a.cfg.MatchThreshold)
		estimator := services.NewEstimator(matcher, a.analyzer, a.logger)

		primary := estimator.Estimate(deck, folder, preference, !estimateNoFall)
		if err := a.saveEstimation(deck.DeckName, preference, primary); err != nil {
			return err
		}

		if !estimateCompare || preference == services.ForeignPreference {
			return nil
		}

		foreign := estimator.Estimate(deck, folder, services.ForeignPreference, !estimateNoFall)
		if err := a.saveEstimation(deck.DeckName, services.ForeignPreference, foreign); err != nil {
			return err
		}

		printComparison(preference, primary, foreign)
		return nil
	},
}

// saveEstimation prints the rendered estimation and writes it under the
// estimates directory.
func (a *app) saveEstimation(deckName, preference string, est *models.DeckEstimation) error {
	report := a.reporter.RenderEstimation(deckName, est)
	fmt.Print(report)

	if err := os.MkdirAll(a.cfg.EstimatesDir, 0o755); err != nil {
		return fmt.Errorf("create estimates dir: %w", err)
	}
	fileName := fmt.Sprintf("%s_%s_%s.txt",
		strings.ReplaceAll(deckName, " ", "_"),
		strings.ToLower(preference),
		time.Now().Format("20060102_150405"))
	path := filepath.Join(a.cfg.EstimatesDir, fileName)

	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write estimation: %w", err)
	}
	a.logger.Info("estimation saved to %s", path)
	return nil
}

func printComparison(preference string, primary, foreign *models.DeckEstimation) {
	fmt.Println("\n--- COMPARISON ---")
	fmt.Printf("%s optimized price: €%s\n", preference, primary.Total.Optimized.StringFixed(2))
	fmt.Printf("Foreign optimized price: €%s\n", foreign.Total.Optimized.StringFixed(2))

	savings := primary.Total.Optimized.Sub(foreign.Total.Optimized)
	if savings.IsPositive() {
		fmt.Printf("Potential savings with foreign cards: €%s\n", savings.StringFixed(2))
	} else {
		fmt.Printf("%s cards are cheaper by: €%s\n", preference, savings.Abs().StringFixed(2))
	}
}
