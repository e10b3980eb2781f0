package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cardmarket-scraper/models"
)

// Reporter renders analysis and estimation results as plain text. The
// output is for humans; nothing downstream parses it.
type Reporter struct {
	languages []string
}

// NewReporter creates a Reporter rendering languages in the given order.
func NewReporter(languages []string) *Reporter {
	return &Reporter{languages: languages}
}

func euro(d decimal.Decimal) string {
	return "€" + d.StringFixed(2)
}

// RenderFolderAnalysis renders the full analysis of one per-day folder.
func (r *Reporter) RenderFolderAnalysis(folder *models.FolderAnalysis) string {
	var b strings.Builder

	b.WriteString("=== Card Price Analysis Results ===\n")
	fmt.Fprintf(&b, "Date Folder: %s\n", folder.DateFolder)
	fmt.Fprintf(&b, "Analysis Date: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total workbook files analyzed: %d\n\n", folder.TotalFiles)

	for _, fileName := range folder.FileOrder {
		r.renderFile(&b, folder.Files[fileName])
	}
	return b.String()
}

// RenderFileAnalysis renders one workbook's analysis on its own.
func (r *Reporter) RenderFileAnalysis(file *models.FileAnalysis) string {
	var b strings.Builder
	r.renderFile(&b, file)
	return b.String()
}

func (r *Reporter) renderFile(b *strings.Builder, file *models.FileAnalysis) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(b, "%s\nFILE: %s\n%s\n", rule, file.FileName, rule)
	fmt.Fprintf(b, "Total cards in file: %d\n", file.TotalCards)
	fmt.Fprintf(b, "Cards with pricing data: %d\n\n", file.Summary.TotalCardsWithData)

	b.WriteString("LIST SUMMARY BY LANGUAGE:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, language := range r.languages {
		rollup := file.Summary.Languages[language]
		if rollup == nil || rollup.CardsAvailable == 0 {
			continue
		}
		r.renderRollup(b, language+":", rollup)
	}

	if file.Summary.ForeignCombined != nil && file.Summary.ForeignCombined.CardsAvailable > 0 {
		r.renderRollup(b, "FOREIGN LANGUAGES COMBINED:", file.Summary.ForeignCombined)
	}

	b.WriteString("INDIVIDUAL CARD DETAILS:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, cardName := range file.CardOrder {
		r.renderCard(b, file.Cards[cardName])
	}
	b.WriteString("\n")
}

func (r *Reporter) renderRollup(b *strings.Builder, title string, rollup *models.LanguageSummary) {
	fmt.Fprintf(b, "%s\n", title)
	fmt.Fprintf(b, "  Cards available: %d\n", rollup.CardsAvailable)
	fmt.Fprintf(b, "  Total quantity: %d\n", rollup.TotalQuantity)
	fmt.Fprintf(b, "  Total listings: %d\n", rollup.TotalListings)
	fmt.Fprintf(b, "  Price range: %s - %s\n", euro(rollup.PriceMin), euro(rollup.PriceMax))
	fmt.Fprintf(b, "  Average price: %s\n", euro(rollup.PriceMean))
	fmt.Fprintf(b, "  Median price: %s\n\n", euro(rollup.PriceMedian))
}

func (r *Reporter) renderCard(b *strings.Builder, card *models.CardAnalysis) {
	fmt.Fprintf(b, "\nCard: %s\n", card.CardName)
	if card.TotalListings == 0 {
		b.WriteString("  No pricing data available\n")
		return
	}

	fmt.Fprintf(b, "  Total listings: %d\n", card.TotalListings)
	for _, language := range r.languages {
		if stats := card.Languages[language]; stats != nil {
			r.renderStats(b, language, stats)
		}
	}
	if card.ForeignCombined != nil {
		r.renderStats(b, "Foreign Combined", card.ForeignCombined)
	}
}

func (r *Reporter) renderStats(b *strings.Builder, label string, s *models.CardStats) {
	fmt.Fprintf(b, "  %s:\n", label)
	fmt.Fprintf(b, "    Quantity: %d\n", s.TotalQuantity)
	fmt.Fprintf(b, "    Listings: %d\n", s.TotalListings)
	fmt.Fprintf(b, "    Price: %s - %s (avg: %s, median: %s)\n",
		euro(s.PriceMin), euro(s.PriceMax), euro(s.PriceMean), euro(s.PriceMedian))
}

// RenderEstimation renders a deck price estimation report.
func (r *Reporter) RenderEstimation(deckName string, est *models.DeckEstimation) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\nDECK PRICE ESTIMATION: %s\n%s\n", rule, deckName, rule)
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Language preference: %s\n", est.LanguagePreference)
	fmt.Fprintf(&b, "Fallback to foreign: %t\n", est.FallbackToForeign)

	b.WriteString("\n--- TOTAL ESTIMATION ---\n")
	fmt.Fprintf(&b, "Cards found: %d/%d\n", est.Total.CardsFound, est.Total.TotalCardsNeeded)
	fmt.Fprintf(&b, "Cards not found: %d\n", est.Total.CardsNotFound)
	fmt.Fprintf(&b, "Price range: %s - %s\n", euro(est.Total.Min), euro(est.Total.Max))
	fmt.Fprintf(&b, "Average estimate: %s\n", euro(est.Total.Mean))
	fmt.Fprintf(&b, "Median estimate: %s\n", euro(est.Total.Median))
	fmt.Fprintf(&b, "OPTIMIZED PRICE: %s\n", euro(est.Total.Optimized))

	b.WriteString("\n--- BY CATEGORY ---\n")
	for _, category := range est.Categories {
		fmt.Fprintf(&b, "%s:\n", category.Name)
		fmt.Fprintf(&b, "  Range: %s - %s\n", euro(category.Totals.Min), euro(category.Totals.Max))
		fmt.Fprintf(&b, "  Optimized: %s\n", euro(category.Totals.Optimized))
	}

	b.WriteString("\n--- PURCHASE STRATEGY ---\n")
	r.renderStrategy(&b, est.PurchaseStrategy)

	if len(est.NotFound) > 0 {
		b.WriteString("\n--- CARDS NOT FOUND ---\n")
		for _, card := range est.NotFound {
			fmt.Fprintf(&b, "%s: %s - %s\n", card.Category, card.CardName, card.Reason)
		}
	}
	return b.String()
}

// renderStrategy groups purchase items by source language, in order of
// first appearance.
func (r *Reporter) renderStrategy(b *strings.Builder, items []models.PurchaseItem) {
	var langOrder []string
	byLanguage := make(map[string][]models.PurchaseItem)
	for _, item := range items {
		if _, seen := byLanguage[item.Language]; !seen {
			langOrder = append(langOrder, item.Language)
		}
		byLanguage[item.Language] = append(byLanguage[item.Language], item)
	}

	for _, language := range langOrder {
		group := byLanguage[language]
		subtotal := decimal.Zero
		for _, item := range group {
			subtotal = subtotal.Add(item.TotalPrice)
		}

		fmt.Fprintf(b, "\n%s cards (subtotal %s):\n", strings.ToUpper(language), euro(subtotal))
		for _, item := range group {
			marker := "ok"
			if !item.Feasible {
				marker = "short"
			}
			fmt.Fprintf(b, "  [%s] %s x%d = %s (%s each)\n",
				marker, item.Card, item.Quantity, euro(item.TotalPrice), euro(item.UnitPrice))
			if item.MatchedCard != item.Card {
				fmt.Fprintf(b, "        matched: %s (similarity %.2f)\n", item.MatchedCard, item.Similarity)
			}
		}
	}
}
