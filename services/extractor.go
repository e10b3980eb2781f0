package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"cardmarket-scraper/models"
	"cardmarket-scraper/utils"
)

var (
	numberRegexp   = regexp.MustCompile(`(\d+)`)
	priceRegexp    = regexp.MustCompile(`([\d,\.]+)`)
	userPathRegexp = regexp.MustCompile(`/Users/([^/?]+)`)
)

// conditionWords identifies tooltip texts that describe a card's
// condition rather than its language or edition.
var conditionWords = []string{"mint", "played", "damaged", "excellent", "good", "poor"}

// Extractor parses CardMarket listing rows out of raw page HTML. Every
// per-row and per-field step tolerates missing markup: a field that
// cannot be located keeps its default value, and a page whose container
// structure does not match yields zero listings rather than an error.
type Extractor struct {
	logger *utils.Logger
}

// NewExtractor creates an Extractor with the given logger.
func NewExtractor(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract parses all listing rows from one results page, in page order.
// Rows are never deduplicated.
func (e *Extractor) Extract(html string) []*models.Listing {
	if strings.TrimSpace(html) == "" {
		e.logger.Warn("[extractor] no HTML content provided")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		e.logger.Warn("[extractor] failed to parse HTML: %v", err)
		return nil
	}

	tableBody := findListingsTable(doc)
	if tableBody == nil {
		e.logger.Debug("[extractor] listings table not found, page layout mismatch")
		return nil
	}

	rows := tableBody.Find("div[id^='articleRow']")
	if rows.Length() == 0 {
		e.logger.Debug("[extractor] no product rows found")
		return nil
	}

	listings := make([]*models.Listing, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		listings = append(listings, e.parseRow(row))
	})

	e.logger.Debug("[extractor] parsed %d listings from %d rows", len(listings), rows.Length())
	return listings
}

// findListingsTable descends the fixed CardMarket container structure
// down to the table body. Any missing level means the page is not a
// results page.
func findListingsTable(doc *goquery.Document) *goquery.Selection {
	container := doc.Find("main.container").First()
	if container.Length() == 0 {
		return nil
	}
	mainContent := container.Find("div#mainContent").First()
	if mainContent.Length() == 0 {
		return nil
	}
	tableSection := mainContent.Find("section#table").First()
	if tableSection.Length() == 0 {
		return nil
	}
	tableDiv := tableSection.Find("div.table.article-table.table-striped").First()
	if tableDiv.Length() == 0 {
		return nil
	}
	tableBody := tableDiv.Find("div.table-body").First()
	if tableBody.Length() == 0 {
		return nil
	}
	return tableBody
}

func (e *Extractor) parseRow(row *goquery.Selection) *models.Listing {
	listing := models.NewListing()

	extractSellerInfo(row, listing)
	extractProductInfo(row, listing)
	extractOfferInfo(row, listing)

	return listing
}

func extractSellerInfo(row *goquery.Selection, listing *models.Listing) {
	sellerSection := row.Find("div.col-seller.col-12.col-lg-auto").First()
	if sellerSection.Length() == 0 {
		return
	}

	sellerInfo := sellerSection.Find("span.seller-info.d-flex.align-items-center").First()
	if sellerInfo.Length() == 0 {
		return
	}

	extractSalesCount(sellerInfo, listing)
	extractUsername(sellerInfo, listing)
}

func extractSalesCount(sellerInfo *goquery.Selection, listing *models.Listing) {
	sellerInfo.Find("span[class*='sell-count']").EachWithBreak(func(_ int, badge *goquery.Selection) bool {
		tooltip, _ := badge.Attr("data-bs-original-title")
		text := strings.TrimSpace(badge.Text())

		for _, source := range []string{tooltip, text} {
			if source == "" {
				continue
			}
			if match := numberRegexp.FindStringSubmatch(source); match != nil {
				listing.SellerSalesCount, _ = strconv.Atoi(match[1])
				return false
			}
		}
		return true
	})
}

func extractUsername(sellerInfo *goquery.Selection, listing *models.Listing) {
	sellerInfo.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		text := strings.TrimSpace(link.Text())

		// Prefer the username embedded in the profile link path.
		if strings.Contains(href, "/Users/") {
			if match := userPathRegexp.FindStringSubmatch(href); match != nil {
				listing.SellerUsername = match[1]
				return false
			}
		}

		// Fall back to visible link text.
		if len(text) > 2 {
			listing.SellerUsername = text
			return false
		}
		return true
	})
}

func extractProductInfo(row *goquery.Selection, listing *models.Listing) {
	productSection := row.Find("div.col-product.col-12.col-lg").First()
	if productSection.Length() == 0 {
		return
	}

	attributes := productSection.Find("div.product-attributes.col").First()
	if attributes.Length() == 0 {
		return
	}

	extractCondition(attributes, listing)
	extractLanguage(attributes, listing)
	extractEdition(attributes, listing)
}

func extractCondition(attributes *goquery.Selection, listing *models.Listing) {
	attributes.Find("[data-bs-original-title]").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		title, _ := elem.Attr("data-bs-original-title")
		text := strings.TrimSpace(elem.Text())

		if containsConditionWord(title) {
			listing.Condition = title
			listing.ConditionBadge = text
			return false
		}
		return true
	})
}

func extractLanguage(attributes *goquery.Selection, listing *models.Listing) {
	attributes.Find("[aria-label]").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		ariaLabel, _ := elem.Attr("aria-label")
		dataTitle, _ := elem.Attr("data-bs-original-title")

		if len(ariaLabel) > 2 {
			listing.Language = ariaLabel
			return false
		}
		if len(dataTitle) > 2 && !containsConditionWord(dataTitle) {
			listing.Language = dataTitle
			return false
		}
		return true
	})
}

func extractEdition(attributes *goquery.Selection, listing *models.Listing) {
	attributes.Find("[data-bs-original-title]").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		title, _ := elem.Attr("data-bs-original-title")
		ariaLabel, _ := elem.Attr("aria-label")

		if isFirstEdition(title) || isFirstEdition(ariaLabel) {
			listing.Edition = "1st"
			return false
		}
		return true
	})
	if listing.Edition != "" {
		return
	}

	// First-edition badges sometimes carry the phrase only in their
	// hover script.
	attributes.Find("span[onmouseover]").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		onMouseOver, _ := span.Attr("onmouseover")
		if isFirstEdition(onMouseOver) {
			listing.Edition = "1st"
			return false
		}
		return true
	})
}

func extractOfferInfo(row *goquery.Selection, listing *models.Listing) {
	offerSection := row.Find("div.col-offer.col-auto").First()
	if offerSection.Length() == 0 {
		return
	}

	extractPrice(offerSection, listing)
	extractQuantity(offerSection, listing)
}

func extractPrice(offerSection *goquery.Selection, listing *models.Listing) {
	priceSpan := offerSection.Find("span.color-primary.small.text-end.text-nowrap.fw-bold").First()
	if priceSpan.Length() == 0 {
		return
	}

	priceText := strings.TrimSpace(priceSpan.Text())
	if match := priceRegexp.FindStringSubmatch(priceText); match != nil {
		listing.Price = match[1]
		return
	}
	listing.Price = strings.TrimSpace(strings.ReplaceAll(priceText, "€", ""))
}

func extractQuantity(offerSection *goquery.Selection, listing *models.Listing) {
	container := offerSection.Find("div.amount-container.d-none.d-md-flex.justify-content-end.me-3").First()
	if container.Length() == 0 {
		return
	}

	countSpan := container.Find("span.item-count.small.text-end").First()
	if countSpan.Length() == 0 {
		return
	}

	if match := numberRegexp.FindStringSubmatch(strings.TrimSpace(countSpan.Text())); match != nil {
		if qty, err := strconv.Atoi(match[1]); err == nil && qty > 0 {
			listing.Quantity = qty
		}
	}
}

func containsConditionWord(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range conditionWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func isFirstEdition(s string) bool {
	return strings.Contains(strings.ToLower(s), "first edition")
}
