package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cardmarket-scraper/models"
	"cardmarket-scraper/utils"
)

func testStore(t *testing.T) *ExcelStore {
	t.Helper()
	return NewExcelStore(t.TempDir(), utils.NewLoggerTo(io.Discard, "error"))
}

func sampleCard(name string) *models.ScrapedCard {
	listing := models.NewListing()
	listing.SellerUsername = "CardKing99"
	listing.SellerSalesCount = 1234
	listing.Condition = "Near Mint"
	listing.ConditionBadge = "NM"
	listing.Language = "English"
	listing.Edition = "1st"
	listing.Price = "2,50"
	listing.Quantity = 3

	return &models.ScrapedCard{
		SheetName: name,
		URL:       "https://www.cardmarket.com/en/YuGiOh/Products/Singles/" + name,
		Listings:  []*models.Listing{listing},
	}
}

func TestWriteListReadWorkbookRoundTrip(t *testing.T) {
	store := testStore(t)

	path, err := store.WriteList("starter_deck", []*models.ScrapedCard{
		sampleCard("Sangan"),
		{SheetName: "Krebons", URL: "https://www.cardmarket.com/en/YuGiOh/Products/Singles/Krebons"},
	})
	if err != nil {
		t.Fatalf("WriteList failed: %v", err)
	}

	wantName := "starter_deck_" + time.Now().Format("2006_01_02") + ".xlsx"
	if filepath.Base(path) != wantName {
		t.Errorf("file name = %q; want %q", filepath.Base(path), wantName)
	}
	wantDir := time.Now().Format("2006-01-02")
	if filepath.Base(filepath.Dir(path)) != wantDir {
		t.Errorf("date folder = %q; want %q", filepath.Base(filepath.Dir(path)), wantDir)
	}

	sheets, err := store.ReadWorkbook(path)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("got %d sheets; want 2", len(sheets))
	}
	if sheets[0].Name != "Sangan" || sheets[1].Name != "Krebons" {
		t.Fatalf("sheet names = %q, %q", sheets[0].Name, sheets[1].Name)
	}

	sangan := sheets[0]
	if len(sangan.Rows) != 5 {
		t.Fatalf("got %d rows; want 5", len(sangan.Rows))
	}
	if !strings.Contains(sangan.Rows[0][0], "/Products/Singles/Sangan") {
		t.Errorf("A1 = %q; want the source URL", sangan.Rows[0][0])
	}
	if sangan.Rows[3][0] != "seller_username" || sangan.Rows[3][7] != "quantity" {
		t.Errorf("header row = %v", sangan.Rows[3])
	}

	data := sangan.Rows[4]
	want := []string{"CardKing99", "1234", "Near Mint", "NM", "English", "1st", "2,50", "3"}
	for i, cell := range want {
		if data[i] != cell {
			t.Errorf("data[%d] = %q; want %q", i, data[i], cell)
		}
	}

	// A card without listings still gets URL plus headers.
	krebons := sheets[1]
	if len(krebons.Rows) != 4 {
		t.Fatalf("empty card rows = %d; want 4", len(krebons.Rows))
	}
	if krebons.Rows[3][6] != "price" {
		t.Errorf("empty card header row = %v", krebons.Rows[3])
	}
}

func TestWriteListNoCardsKeepsDefaultSheet(t *testing.T) {
	store := testStore(t)

	path, err := store.WriteList("empty_run", nil)
	if err != nil {
		t.Fatalf("WriteList failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}

	sheets, err := store.ReadWorkbook(path)
	if err != nil {
		t.Fatalf("ReadWorkbook failed: %v", err)
	}
	if len(sheets) != 1 {
		t.Errorf("got %d sheets; want the default sheet only", len(sheets))
	}
}

func TestReadWorkbookMissingFile(t *testing.T) {
	store := testStore(t)
	if _, err := store.ReadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected error for missing workbook")
	}
}

func TestCleanSheetName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sangan", "Sangan"},
		{"Blue-Eyes White Dragon", "Blue Eyes White Dragon"},
		{"Elemental HERO Absolute Zero Extra Long Name", "Elemental HERO Absolute Zero..."},
	}

	for _, tt := range tests {
		got := CleanSheetName(tt.in)
		if got != tt.want {
			t.Errorf("CleanSheetName(%q) = %q; want %q", tt.in, got, tt.want)
		}
		if len(got) > 31 {
			t.Errorf("CleanSheetName(%q) exceeds sheet name limit: %q", tt.in, got)
		}
	}
}
