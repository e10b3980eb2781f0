package models

import "github.com/shopspring/decimal"

// CardStats aggregates price and quantity statistics over a filtered
// set of listings for one (card, language) pair. Only listings with
// quantity > 0 and a positive normalized price count.
type CardStats struct {
	TotalQuantity         int
	TotalListings         int
	PriceMin              decimal.Decimal
	PriceMax              decimal.Decimal
	PriceMean             decimal.Decimal
	PriceMedian           decimal.Decimal
	AvgQuantityPerListing float64
}

// CardAnalysis is the full result for one scraped card (one sheet).
// Languages maps language name to the stats over listings whose
// language label contains that name; ForeignCombined covers every
// listing whose label does not contain the primary language, and is nil
// when no such listing exists.
type CardAnalysis struct {
	CardName        string
	TotalListings   int
	Languages       map[string]*CardStats
	ForeignCombined *CardStats
}

// EmptyCardAnalysis is the defined "no data" result for a sheet that is
// too small, lacks the required columns, or has no usable rows.
func EmptyCardAnalysis(cardName string) *CardAnalysis {
	return &CardAnalysis{
		CardName:  cardName,
		Languages: make(map[string]*CardStats),
	}
}

// LanguageSummary is the list-level rollup for one language (or the
// foreign-combined pool). Its mean/median are computed over the
// collection of each card's own price_min and price_max, not over raw
// listing prices.
type LanguageSummary struct {
	TotalQuantity  int
	TotalListings  int
	CardsAvailable int
	PriceMin       decimal.Decimal
	PriceMax       decimal.Decimal
	PriceMean      decimal.Decimal
	PriceMedian    decimal.Decimal
}

// ListSummary rolls many CardAnalysis entries from one workbook up into
// per-language totals. Languages holds an entry for every configured
// language, zero-filled when no card had data for it.
type ListSummary struct {
	TotalCardsWithData int
	Languages          map[string]*LanguageSummary
	ForeignCombined    *LanguageSummary
}

// FileAnalysis is the result for one workbook (one card list).
type FileAnalysis struct {
	FileName   string
	FilePath   string
	TotalCards int
	CardOrder  []string
	Cards      map[string]*CardAnalysis
	Summary    *ListSummary
}

// FolderAnalysis is the result for one per-day output folder.
type FolderAnalysis struct {
	DateFolder string
	TotalFiles int
	FileOrder  []string
	Files      map[string]*FileAnalysis
}

// AllCards flattens the folder's per-file card analyses into a single
// name → analysis map. Later files win on duplicate sheet names.
func (fa *FolderAnalysis) AllCards() map[string]*CardAnalysis {
	all := make(map[string]*CardAnalysis)
	for _, fileName := range fa.FileOrder {
		file := fa.Files[fileName]
		for name, card := range file.Cards {
			all[name] = card
		}
	}
	return all
}
