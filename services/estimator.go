package services

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"cardmarket-scraper/config"
	"cardmarket-scraper/models"
	"cardmarket-scraper/utils"
)

// ForeignPreference is the sentinel language preference meaning "the
// combined non-primary-language pool".
const ForeignPreference = "Foreign"

// Estimator prices a deck list against the analyzed corpus. The
// optimized price is a local per-card minimum (cheapest observed unit
// price times quantity); it does not attempt cross-card seller
// bundling or shipping optimization.
type Estimator struct {
	matcher  *Matcher
	analyzer *Analyzer
	logger   *utils.Logger
}

// NewEstimator creates an Estimator using the given matcher and the
// analyzer's language configuration.
func NewEstimator(matcher *Matcher, analyzer *Analyzer, logger *utils.Logger) *Estimator {
	return &Estimator{matcher: matcher, analyzer: analyzer, logger: logger}
}

// Estimate prices every card of the deck against the folder's corpus
// under the given language preference. A card that cannot be matched or
// priced is recorded as not found; it never aborts the rest of the deck.
func (e *Estimator) Estimate(deck *config.Deck, folder *models.FolderAnalysis,
	preference string, fallbackToForeign bool) *models.DeckEstimation {

	// Build the read-only corpus once per run: name → analysis, plus a
	// deterministic candidate list restricted to cards with data.
	allCards := folder.AllCards()
	candidates := make([]string, 0, len(allCards))
	for name, card := range allCards {
		if card.TotalListings > 0 {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)

	result := &models.DeckEstimation{
		LanguagePreference: preference,
		FallbackToForeign:  fallbackToForeign,
	}
	for _, category := range deck.Categories {
		for _, card := range category.Cards {
			result.Total.TotalCardsNeeded += card.Quantity
		}
	}

	for _, category := range deck.Categories {
		catEstimate := &models.CategoryEstimate{Name: category.Name}

		for _, card := range category.Cards {
			matched, similarity := e.matcher.Match(card.Name, candidates)
			if matched == "" {
				result.NotFound = append(result.NotFound, models.NotFoundCard{
					Category: category.Name,
					CardName: card.Name,
					Reason:   "no matching card found",
				})
				result.Total.CardsNotFound++
				continue
			}

			stats, sourceType := e.selectSource(allCards[matched], preference, fallbackToForeign)
			if stats == nil {
				result.NotFound = append(result.NotFound, models.NotFoundCard{
					Category: category.Name,
					CardName: card.Name,
					Reason:   fmt.Sprintf("no pricing data for %s or foreign languages", preference),
				})
				result.Total.CardsNotFound++
				continue
			}

			estimate := buildCardEstimate(card.Name, matched, similarity, card.Quantity, sourceType, stats)
			catEstimate.Cards = append(catEstimate.Cards, estimate)
			catEstimate.Totals.Add(estimate.TotalPrices)

			result.PurchaseStrategy = append(result.PurchaseStrategy, models.PurchaseItem{
				Category:    category.Name,
				Card:        card.Name,
				MatchedCard: matched,
				Quantity:    card.Quantity,
				Language:    sourceType,
				UnitPrice:   estimate.Optimized.UnitPrice,
				TotalPrice:  estimate.Optimized.TotalPrice,
				Feasible:    estimate.Optimized.PurchaseFeasible,
				Similarity:  similarity,
			})
			result.Total.CardsFound++
		}

		result.Categories = append(result.Categories, catEstimate)
		result.Total.PriceTotals.Add(catEstimate.Totals)
	}

	return result
}

// selectSource picks the CardStats to price a matched card from, by
// preference precedence. With the Foreign preference the combined pool
// wins; the fallback walks the individual foreign languages in
// vocabulary order. With a concrete language preference the fallback is
// the combined foreign pool.
func (e *Estimator) selectSource(card *models.CardAnalysis, preference string,
	fallbackToForeign bool) (*models.CardStats, string) {

	if preference == ForeignPreference {
		if card.ForeignCombined != nil {
			return card.ForeignCombined, "foreign_combined"
		}
		if fallbackToForeign {
			for _, lang := range e.analyzer.ForeignLanguages() {
				if stats := card.Languages[lang]; stats != nil {
					e.logger.Debug("[estimator] %s: using %s as foreign fallback", card.CardName, lang)
					return stats, lang
				}
			}
		}
		return nil, ""
	}

	if stats := card.Languages[preference]; stats != nil {
		return stats, preference
	}
	if fallbackToForeign && card.ForeignCombined != nil {
		return card.ForeignCombined, "foreign_combined"
	}
	return nil, ""
}

func buildCardEstimate(requested, matched string, similarity float64, quantity int,
	sourceType string, stats *models.CardStats) *models.CardEstimate {

	qty := decimal.NewFromInt(int64(quantity))
	optimizedTotal := stats.PriceMin.Mul(qty)

	return &models.CardEstimate{
		RequestedName:  requested,
		MatchedName:    matched,
		Similarity:     similarity,
		QuantityNeeded: quantity,
		SourceType:     sourceType,
		UnitPrices:     stats,
		TotalPrices: models.PriceTotals{
			Min:       stats.PriceMin.Mul(qty),
			Max:       stats.PriceMax.Mul(qty),
			Mean:      stats.PriceMean.Mul(qty),
			Median:    stats.PriceMedian.Mul(qty),
			Optimized: optimizedTotal,
		},
		Optimized: models.OptimizedPlan{
			UnitPrice:         stats.PriceMin,
			TotalPrice:        optimizedTotal,
			PurchaseFeasible:  stats.TotalQuantity >= quantity,
			AvailableQuantity: stats.TotalQuantity,
		},
	}
}
