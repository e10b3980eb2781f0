package models

import "github.com/shopspring/decimal"

// PriceTotals carries the four linear totals plus the optimized total
// for a card, a category, or the whole deck.
type PriceTotals struct {
	Min       decimal.Decimal
	Max       decimal.Decimal
	Mean      decimal.Decimal
	Median    decimal.Decimal
	Optimized decimal.Decimal
}

// Add accumulates another set of totals into t.
func (t *PriceTotals) Add(other PriceTotals) {
	t.Min = t.Min.Add(other.Min)
	t.Max = t.Max.Add(other.Max)
	t.Mean = t.Mean.Add(other.Mean)
	t.Median = t.Median.Add(other.Median)
	t.Optimized = t.Optimized.Add(other.Optimized)
}

// OptimizedPlan is the per-card minimum-price purchase plan: every copy
// at the lowest observed unit price, feasible when the matched listings
// hold at least the needed quantity.
type OptimizedPlan struct {
	UnitPrice         decimal.Decimal
	TotalPrice        decimal.Decimal
	PurchaseFeasible  bool
	AvailableQuantity int
}

// CardEstimate is the pricing result for one requested card.
type CardEstimate struct {
	RequestedName  string
	MatchedName    string
	Similarity     float64
	QuantityNeeded int
	SourceType     string
	UnitPrices     *CardStats
	TotalPrices    PriceTotals
	Optimized      OptimizedPlan
}

// CategoryEstimate groups card estimates under one deck category.
type CategoryEstimate struct {
	Name   string
	Cards  []*CardEstimate
	Totals PriceTotals
}

// NotFoundCard records a requested card that could not be priced.
type NotFoundCard struct {
	Category string
	CardName string
	Reason   string
}

// PurchaseItem is one line of the purchase strategy: a matched card at
// its minimum unit price.
type PurchaseItem struct {
	Category    string
	Card        string
	MatchedCard string
	Quantity    int
	Language    string
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Feasible    bool
	Similarity  float64
}

// TotalEstimation sums every category and counts outcomes.
type TotalEstimation struct {
	PriceTotals
	CardsFound       int
	CardsNotFound    int
	TotalCardsNeeded int
}

// DeckEstimation is the result of pricing one deck list against the
// scraped corpus under a language preference.
type DeckEstimation struct {
	LanguagePreference string
	FallbackToForeign  bool
	Categories         []*CategoryEstimate
	Total              TotalEstimation
	NotFound           []NotFoundCard
	PurchaseStrategy   []PurchaseItem
}
