package models

// Listing is one seller's offer row as extracted from a CardMarket
// results page. Price stays in its raw string form ("265,00" etc.) until
// the analysis path normalizes it.
type Listing struct {
	SellerUsername   string
	SellerSalesCount int
	Condition        string
	ConditionBadge   string
	Language         string
	Edition          string
	Price            string
	Quantity         int
}

// NewListing returns a Listing carrying the default values used when a
// row yields no data for a field.
func NewListing() *Listing {
	return &Listing{Quantity: 1}
}

// ScrapedCard holds everything collected for one card: the listings in
// page order and the search URL they came from.
type ScrapedCard struct {
	SheetName string
	URL       string
	Listings  []*Listing
}

// Sheet is one worksheet read back from a stored workbook: the sheet
// name (one card) and its raw cell rows.
type Sheet struct {
	Name string
	Rows [][]string
}
