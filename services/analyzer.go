package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"cardmarket-scraper/models"
	"cardmarket-scraper/utils"
)

const (
	// headerRowIndex is the zero-based index of the column header row in
	// a stored sheet; rows above it hold the source URL and padding.
	headerRowIndex = 3
	// minSheetRows is the smallest sheet that can carry data: sheets
	// shorter than this produce the empty analysis regardless of content.
	minSheetRows = 5
)

// WorkbookReader loads a stored workbook as ordered sheets of raw rows.
// Implemented by storage.ExcelStore.
type WorkbookReader interface {
	ReadWorkbook(path string) ([]models.Sheet, error)
}

// Analyzer reduces stored listing sheets into per-card, per-file and
// per-folder price statistics. The language vocabulary and the primary
// language come from configuration, not package constants.
type Analyzer struct {
	languages []string
	primary   string
	logger    *utils.Logger
}

// NewAnalyzer creates an Analyzer over the given ordered language
// vocabulary. primary names the reference language; every listing whose
// language label does not contain it counts as foreign.
func NewAnalyzer(languages []string, primary string, logger *utils.Logger) *Analyzer {
	return &Analyzer{languages: languages, primary: primary, logger: logger}
}

// Languages returns the configured language vocabulary in order.
func (a *Analyzer) Languages() []string {
	return a.languages
}

// PrimaryLanguage returns the configured reference language.
func (a *Analyzer) PrimaryLanguage() string {
	return a.primary
}

// ForeignLanguages returns the vocabulary minus the primary language,
// preserving order. The estimator uses this as its fallback order.
func (a *Analyzer) ForeignLanguages() []string {
	foreign := make([]string, 0, len(a.languages))
	for _, lang := range a.languages {
		if !strings.EqualFold(lang, a.primary) {
			foreign = append(foreign, lang)
		}
	}
	return foreign
}

// listingRow is one cleaned data row of a card sheet.
type listingRow struct {
	language string
	price    decimal.Decimal
	quantity int
}

// AnalyzeCard reduces one stored sheet into a CardAnalysis. A sheet
// that is too small, lacks the required columns, or has no rows with
// positive price and quantity yields the empty analysis; that is the
// defined "no data" outcome, not an error.
func (a *Analyzer) AnalyzeCard(sheet models.Sheet) *models.CardAnalysis {
	if len(sheet.Rows) < minSheetRows {
		a.logger.Debug("[analyzer] sheet %q too small (%d rows), skipping", sheet.Name, len(sheet.Rows))
		return models.EmptyCardAnalysis(sheet.Name)
	}

	langCol, priceCol, qtyCol, ok := locateColumns(sheet.Rows[headerRowIndex])
	if !ok {
		a.logger.Debug("[analyzer] sheet %q missing required columns", sheet.Name)
		return models.EmptyCardAnalysis(sheet.Name)
	}

	rows := cleanRows(sheet.Rows[headerRowIndex+1:], langCol, priceCol, qtyCol)
	if len(rows) == 0 {
		return models.EmptyCardAnalysis(sheet.Name)
	}

	analysis := &models.CardAnalysis{
		CardName:      sheet.Name,
		TotalListings: len(rows),
		Languages:     make(map[string]*models.CardStats, len(a.languages)),
	}

	for _, language := range a.languages {
		subset := filterRows(rows, func(r listingRow) bool {
			return containsFold(r.language, language)
		})
		if len(subset) > 0 {
			analysis.Languages[language] = computeStats(subset)
		}
	}

	foreign := filterRows(rows, func(r listingRow) bool {
		return !containsFold(r.language, a.primary)
	})
	if len(foreign) > 0 {
		analysis.ForeignCombined = computeStats(foreign)
	}

	return analysis
}

// locateColumns finds the language, price and quantity columns by
// case-insensitive substring match on the header cells. Each header
// cell claims at most one role.
func locateColumns(header []string) (langCol, priceCol, qtyCol int, ok bool) {
	langCol, priceCol, qtyCol = -1, -1, -1
	for i, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case langCol < 0 && strings.Contains(lower, "language"):
			langCol = i
		case priceCol < 0 && strings.Contains(lower, "price"):
			priceCol = i
		case qtyCol < 0 && strings.Contains(lower, "quantity"):
			qtyCol = i
		}
	}
	return langCol, priceCol, qtyCol, langCol >= 0 && priceCol >= 0 && qtyCol >= 0
}

// cleanRows drops rows missing any required field, normalizes prices
// and coerces quantities, and keeps only rows where both are positive.
func cleanRows(raw [][]string, langCol, priceCol, qtyCol int) []listingRow {
	rows := make([]listingRow, 0, len(raw))
	for _, cells := range raw {
		language := cellAt(cells, langCol)
		priceRaw := cellAt(cells, priceCol)
		qtyRaw := cellAt(cells, qtyCol)
		if language == "" || priceRaw == "" || qtyRaw == "" {
			continue
		}

		price := NormalizePrice(priceRaw)
		quantity := coerceQuantity(qtyRaw)
		if quantity <= 0 || !price.IsPositive() {
			continue
		}

		rows = append(rows, listingRow{language: language, price: price, quantity: quantity})
	}
	return rows
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// coerceQuantity parses a quantity cell; non-numeric input counts as 0.
func coerceQuantity(raw string) int {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func filterRows(rows []listingRow, keep func(listingRow) bool) []listingRow {
	var subset []listingRow
	for _, r := range rows {
		if keep(r) {
			subset = append(subset, r)
		}
	}
	return subset
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// computeStats reduces a non-empty row subset into CardStats.
func computeStats(rows []listingRow) *models.CardStats {
	prices := make([]decimal.Decimal, 0, len(rows))
	totalQuantity := 0
	sum := decimal.Zero

	stats := &models.CardStats{TotalListings: len(rows)}
	for i, r := range rows {
		prices = append(prices, r.price)
		totalQuantity += r.quantity
		sum = sum.Add(r.price)

		if i == 0 || r.price.LessThan(stats.PriceMin) {
			stats.PriceMin = r.price
		}
		if i == 0 || r.price.GreaterThan(stats.PriceMax) {
			stats.PriceMax = r.price
		}
	}

	count := decimal.NewFromInt(int64(len(rows)))
	stats.TotalQuantity = totalQuantity
	stats.PriceMean = sum.Div(count)
	stats.PriceMedian = median(prices)
	stats.AvgQuantityPerListing = float64(totalQuantity) / float64(len(rows))
	return stats
}

// median returns the median of a non-empty price slice. The input is
// not modified.
func median(prices []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// SummarizeList rolls per-card analyses up into a ListSummary. The
// rollup's mean and median are computed over the collection of each
// card's own price_min and price_max, a deliberate second aggregation
// stage with a different numeric outcome than re-aggregating raw
// listing prices.
func (a *Analyzer) SummarizeList(cardOrder []string, cards map[string]*models.CardAnalysis) *models.ListSummary {
	summary := &models.ListSummary{
		Languages:       make(map[string]*models.LanguageSummary, len(a.languages)),
		ForeignCombined: &models.LanguageSummary{},
	}
	boundPrices := make(map[string][]decimal.Decimal, len(a.languages)+1)
	for _, language := range a.languages {
		summary.Languages[language] = &models.LanguageSummary{}
	}

	var foreignBounds []decimal.Decimal

	for _, cardName := range cardOrder {
		card := cards[cardName]
		if card == nil || card.TotalListings == 0 {
			continue
		}
		summary.TotalCardsWithData++

		for _, language := range a.languages {
			stats := card.Languages[language]
			if stats == nil {
				continue
			}
			boundPrices[language] = accumulate(summary.Languages[language], stats, boundPrices[language])
		}

		if card.ForeignCombined != nil {
			foreignBounds = accumulate(summary.ForeignCombined, card.ForeignCombined, foreignBounds)
		}
	}

	for _, language := range a.languages {
		finalize(summary.Languages[language], boundPrices[language])
	}
	finalize(summary.ForeignCombined, foreignBounds)

	return summary
}

// accumulate folds one card's stats into a language rollup and appends
// the card's price bounds to the rollup's accumulation list.
func accumulate(rollup *models.LanguageSummary, stats *models.CardStats, bounds []decimal.Decimal) []decimal.Decimal {
	rollup.TotalQuantity += stats.TotalQuantity
	rollup.TotalListings += stats.TotalListings

	if rollup.CardsAvailable == 0 || stats.PriceMin.LessThan(rollup.PriceMin) {
		rollup.PriceMin = stats.PriceMin
	}
	if stats.PriceMax.GreaterThan(rollup.PriceMax) {
		rollup.PriceMax = stats.PriceMax
	}
	rollup.CardsAvailable++

	return append(bounds, stats.PriceMin, stats.PriceMax)
}

// finalize computes the rollup mean/median over the accumulated card
// bounds; a language with no data reports zeros.
func finalize(rollup *models.LanguageSummary, bounds []decimal.Decimal) {
	if len(bounds) == 0 {
		rollup.PriceMin = decimal.Zero
		rollup.PriceMean = decimal.Zero
		rollup.PriceMedian = decimal.Zero
		return
	}

	sum := decimal.Zero
	for _, p := range bounds {
		sum = sum.Add(p)
	}
	rollup.PriceMean = sum.Div(decimal.NewFromInt(int64(len(bounds))))
	rollup.PriceMedian = median(bounds)
}

// AnalyzeFile reads one workbook and analyzes every sheet in it. A
// sheet that cannot be analyzed contributes its empty analysis; the
// file result always covers every sheet.
func (a *Analyzer) AnalyzeFile(reader WorkbookReader, path string) (*models.FileAnalysis, error) {
	sheets, err := reader.ReadWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}

	file := &models.FileAnalysis{
		FileName:   filepath.Base(path),
		FilePath:   path,
		TotalCards: len(sheets),
		CardOrder:  make([]string, 0, len(sheets)),
		Cards:      make(map[string]*models.CardAnalysis, len(sheets)),
	}

	for _, sheet := range sheets {
		file.CardOrder = append(file.CardOrder, sheet.Name)
		file.Cards[sheet.Name] = a.AnalyzeCard(sheet)
	}

	file.Summary = a.SummarizeList(file.CardOrder, file.Cards)
	return file, nil
}

// AnalyzeFolder analyzes every workbook in one per-day output folder.
// A workbook that cannot be read is logged and skipped; its siblings
// still get analyzed.
func (a *Analyzer) AnalyzeFolder(reader WorkbookReader, folderPath string) (*models.FolderAnalysis, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folderPath, err)
	}

	folder := &models.FolderAnalysis{
		DateFolder: filepath.Base(folderPath),
		Files:      make(map[string]*models.FileAnalysis),
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			continue
		}
		folder.TotalFiles++

		path := filepath.Join(folderPath, entry.Name())
		a.logger.Info("[analyzer] analyzing %s", entry.Name())

		file, err := a.AnalyzeFile(reader, path)
		if err != nil {
			a.logger.Warn("[analyzer] skipping %s: %v", entry.Name(), err)
			continue
		}
		folder.FileOrder = append(folder.FileOrder, entry.Name())
		folder.Files[entry.Name()] = file
	}

	if folder.TotalFiles == 0 {
		return nil, fmt.Errorf("no workbook files found in %s", folderPath)
	}
	return folder, nil
}
