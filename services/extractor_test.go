package services

import (
	"io"
	"testing"

	"cardmarket-scraper/utils"
)

const listingsPage = `<html><body>
<main class="container">
 <div id="mainContent">
  <section id="table">
   <div class="table article-table table-striped">
    <div class="table-body">
     <div id="articleRow1001" class="row">
      <div class="col-seller col-12 col-lg-auto">
       <span class="seller-info d-flex align-items-center">
        <span class="badge sell-count d-none d-md-inline" data-bs-original-title="1234 sales">1k+</span>
        <a href="/en/YuGiOh/Users/CardKing99?language=1">CardKing99</a>
       </span>
      </div>
      <div class="col-product col-12 col-lg">
       <div class="product-attributes col">
        <span class="badge" data-bs-original-title="Near Mint">NM</span>
        <span aria-label="English" data-bs-original-title="English"></span>
        <span onmouseover="showMsgBox(this,'First Edition')"></span>
       </div>
      </div>
      <div class="col-offer col-auto">
       <span class="color-primary small text-end text-nowrap fw-bold">265,00 &euro;</span>
       <div class="amount-container d-none d-md-flex justify-content-end me-3">
        <span class="item-count small text-end">3</span>
       </div>
      </div>
     </div>
     <div id="articleRow1002" class="row">
      <div class="col-offer col-auto">
       <span class="color-primary small text-end text-nowrap fw-bold">19.99</span>
      </div>
     </div>
    </div>
   </div>
  </section>
 </div>
</main>
</body></html>`

func newTestExtractor() *Extractor {
	return NewExtractor(utils.NewLoggerTo(io.Discard, "error"))
}

func TestExtractListings(t *testing.T) {
	listings := newTestExtractor().Extract(listingsPage)
	if len(listings) != 2 {
		t.Fatalf("got %d listings; want 2", len(listings))
	}

	first := listings[0]
	if first.SellerUsername != "CardKing99" {
		t.Errorf("username = %q; want CardKing99", first.SellerUsername)
	}
	if first.SellerSalesCount != 1234 {
		t.Errorf("sales count = %d; want 1234", first.SellerSalesCount)
	}
	if first.Condition != "Near Mint" {
		t.Errorf("condition = %q; want Near Mint", first.Condition)
	}
	if first.ConditionBadge != "NM" {
		t.Errorf("condition badge = %q; want NM", first.ConditionBadge)
	}
	if first.Language != "English" {
		t.Errorf("language = %q; want English", first.Language)
	}
	if first.Edition != "1st" {
		t.Errorf("edition = %q; want 1st", first.Edition)
	}
	if first.Price != "265,00" {
		t.Errorf("price = %q; want 265,00", first.Price)
	}
	if first.Quantity != 3 {
		t.Errorf("quantity = %d; want 3", first.Quantity)
	}
}

func TestExtractSparseRowDefaults(t *testing.T) {
	listings := newTestExtractor().Extract(listingsPage)
	if len(listings) != 2 {
		t.Fatalf("got %d listings; want 2", len(listings))
	}

	second := listings[1]
	if second.SellerUsername != "" {
		t.Errorf("username = %q; want empty", second.SellerUsername)
	}
	if second.SellerSalesCount != 0 {
		t.Errorf("sales count = %d; want 0", second.SellerSalesCount)
	}
	if second.Condition != "" || second.ConditionBadge != "" {
		t.Errorf("condition = %q/%q; want empty", second.Condition, second.ConditionBadge)
	}
	if second.Language != "" {
		t.Errorf("language = %q; want empty", second.Language)
	}
	if second.Price != "19.99" {
		t.Errorf("price = %q; want 19.99", second.Price)
	}
	if second.Quantity != 1 {
		t.Errorf("quantity = %d; want default 1", second.Quantity)
	}
}

func TestExtractUsernameFallsBackToLinkText(t *testing.T) {
	page := `<main class="container"><div id="mainContent"><section id="table">
	<div class="table article-table table-striped"><div class="table-body">
	<div id="articleRow1"><div class="col-seller col-12 col-lg-auto">
	<span class="seller-info d-flex align-items-center"><a href="/en/SomewhereElse">SellerName</a></span>
	</div></div>
	</div></div></section></div></main>`

	listings := newTestExtractor().Extract(page)
	if len(listings) != 1 {
		t.Fatalf("got %d listings; want 1", len(listings))
	}
	if listings[0].SellerUsername != "SellerName" {
		t.Errorf("username = %q; want SellerName", listings[0].SellerUsername)
	}
}

func TestExtractMissingTable(t *testing.T) {
	pages := []string{
		"",
		"<html><body><p>nothing here</p></body></html>",
		`<main class="container"><div id="mainContent"></div></main>`,
	}
	e := newTestExtractor()
	for _, page := range pages {
		if listings := e.Extract(page); len(listings) != 0 {
			t.Errorf("Extract(%q...) returned %d listings; want 0", truncate(page, 20), len(listings))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
