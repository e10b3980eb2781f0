package services

import (
	"strings"
	"testing"

	"cardmarket-scraper/models"
)

func testReporter() *Reporter {
	return NewReporter([]string{"English", "German", "Spanish", "French", "Italian"})
}

func TestRenderFileAnalysis(t *testing.T) {
	a := testAnalyzer()
	reader := &fakeReader{sheets: map[string][]models.Sheet{
		"out/starter_deck.xlsx": {
			cardSheet("Sangan",
				dataRow("English", "2,50", "10"),
				dataRow("German", "1,00", "3"),
			),
			cardSheet("Krebons"),
		},
	}}

	file, err := a.AnalyzeFile(reader, "out/starter_deck.xlsx")
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}

	report := testReporter().RenderFileAnalysis(file)
	for _, want := range []string{
		"FILE: starter_deck.xlsx",
		"Total cards in file: 2",
		"Cards with pricing data: 1",
		"LIST SUMMARY BY LANGUAGE:",
		"English:",
		"German:",
		"FOREIGN LANGUAGES COMBINED:",
		"INDIVIDUAL CARD DETAILS:",
		"Card: Sangan",
		"Card: Krebons",
		"No pricing data available",
		"€2.50",
		"€1.00",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
}

func TestRenderFolderAnalysis(t *testing.T) {
	a := testAnalyzer()
	reader := &fakeReader{sheets: map[string][]models.Sheet{
		"out/2026-08-29/starter_deck.xlsx": {
			cardSheet("Sangan", dataRow("English", "2,00", "1")),
		},
	}}
	file, err := a.AnalyzeFile(reader, "out/2026-08-29/starter_deck.xlsx")
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}

	folder := &models.FolderAnalysis{
		DateFolder: "2026-08-29",
		TotalFiles: 1,
		FileOrder:  []string{"starter_deck.xlsx"},
		Files:      map[string]*models.FileAnalysis{"starter_deck.xlsx": file},
	}

	report := testReporter().RenderFolderAnalysis(folder)
	for _, want := range []string{
		"=== Card Price Analysis Results ===",
		"Date Folder: 2026-08-29",
		"Total workbook files analyzed: 1",
		"FILE: starter_deck.xlsx",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
}

func TestRenderEstimation(t *testing.T) {
	folder := corpusFolder(map[string]*models.CardAnalysis{
		"Sangan": {
			CardName:      "Sangan",
			TotalListings: 1,
			Languages: map[string]*models.CardStats{
				"English": makeStats("2.50", "8.00", "4.50", "4.00", 10, 1),
			},
		},
	})

	est := testEstimator().Estimate(singleCardDeck("Monsters", "Sangan (Rare)", 2), folder, "English", true)

	report := testReporter().RenderEstimation("Test Deck", est)
	for _, want := range []string{
		"DECK PRICE ESTIMATION: Test Deck",
		"Language preference: English",
		"Cards found: 1/2",
		"OPTIMIZED PRICE: €5.00",
		"--- PURCHASE STRATEGY ---",
		"ENGLISH cards (subtotal €5.00):",
		"[ok] Sangan (Rare) x2 = €5.00 (€2.50 each)",
		"matched: Sangan",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
}

func TestRenderEstimationNotFound(t *testing.T) {
	folder := corpusFolder(map[string]*models.CardAnalysis{})
	est := testEstimator().Estimate(singleCardDeck("Spells", "Zzzzz", 1), folder, "English", true)

	report := testReporter().RenderEstimation("Test Deck", est)
	for _, want := range []string{
		"--- CARDS NOT FOUND ---",
		"Spells: Zzzzz - no matching card found",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
}
