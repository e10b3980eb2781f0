package cardmarket

import (
	"strings"

	"cardmarket-scraper/config"
)

const baseURL = "https://www.cardmarket.com/en/YuGiOh/Products/Singles/"

// BuildURL constructs the search URL for one card, including the
// optional set segment and filter parameters.
func BuildURL(card config.CardEntry) string {
	url := baseURL
	if card.Set != "" {
		url += card.Set + "/" + card.Name
	} else {
		url += card.Name
	}

	var params []string
	if strings.EqualFold(card.Condition, "near mint") {
		params = append(params, "minCondition=2")
	}
	if strings.EqualFold(card.Edition, "1st") {
		params = append(params, "isFirstEd=Y")
	}
	if len(params) > 0 {
		url += "?" + strings.Join(params, "&")
	}
	return url
}
