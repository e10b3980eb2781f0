package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var analyzeDate string

var unsafeFilenameRegexp = regexp.MustCompile(`[^\w\-_.]`)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "date folder to analyze (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [--date YYYY-MM-DD]",
	Short: "Aggregates one day's scraped workbooks into price statistics reports.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()

		date := analyzeDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		folder, err := a.analyzer.AnalyzeFolder(a.store, filepath.Join(a.cfg.OutputDir, date))
		if err != nil {
			return err
		}

		outDir := filepath.Join(a.cfg.AnalysisDir, date)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create analysis dir %s: %w", outDir, err)
		}

		summary := a.reporter.RenderFolderAnalysis(folder)
		summaryPath := filepath.Join(outDir, fmt.Sprintf("summary_%s.txt", date))
		if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		a.logger.Info("summary saved to %s", summaryPath)

		for _, fileName := range folder.FileOrder {
			detail := a.reporter.RenderFileAnalysis(folder.Files[fileName])
			detailPath := filepath.Join(outDir, fmt.Sprintf("detailed_%s.txt", cleanFilename(fileName)))
			if err := os.WriteFile(detailPath, []byte(detail), 0o644); err != nil {
				return fmt.Errorf("write detail for %s: %w", fileName, err)
			}
			a.logger.Info("detailed analysis saved to %s", detailPath)
		}

		fmt.Print(summary)
		return nil
	},
}

func cleanFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return unsafeFilenameRegexp.ReplaceAllString(name, "_")
}
