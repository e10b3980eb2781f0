package storage

import "cardmarket-scraper/models"

// ListWriter persists one scrape run and reports where it was written.
type ListWriter interface {
	WriteList(listName string, cards []*models.ScrapedCard) (string, error)
}

// WorkbookReader re-loads a stored workbook for the analysis path.
type WorkbookReader interface {
	ReadWorkbook(path string) ([]models.Sheet, error)
}
