package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cardmarket-scraper/models"
	"cardmarket-scraper/utils"
)

// sheetHeaders is the fixed column layout of a stored card sheet. The
// analysis path locates columns by substring match on these names.
var sheetHeaders = []string{
	"seller_username", "seller_sales_count", "condition",
	"condition_badge", "language", "edition", "price", "quantity",
}

const (
	// headerRow is the 1-based sheet row holding the column headers;
	// rows 1-3 are reserved, row 1 carries the source URL.
	headerRow = 4
	// maxSheetNameLen is Excel's sheet name limit.
	maxSheetNameLen = 31
	maxColumnWidth  = 50
)

// ExcelStore reads and writes per-day workbook files: one workbook per
// card list, one sheet per card, the source URL hyperlinked in A1 and
// data starting below the header row.
type ExcelStore struct {
	baseDir string
	logger  *utils.Logger
}

// NewExcelStore creates an ExcelStore rooted at the output directory.
func NewExcelStore(baseDir string, logger *utils.Logger) *ExcelStore {
	return &ExcelStore{baseDir: baseDir, logger: logger}
}

// WriteList writes one scrape run into a dated workbook and returns its
// path. Cards without listings still get a sheet with headers and URL
// so re-analysis finds the expected layout.
func (s *ExcelStore) WriteList(listName string, cards []*models.ScrapedCard) (string, error) {
	now := time.Now()
	dir := filepath.Join(s.baseDir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", listName, now.Format("2006_01_02")))

	f := excelize.NewFile()
	defer f.Close()

	urlStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0563C1", Underline: "single"},
	})
	if err != nil {
		return "", fmt.Errorf("create url style: %w", err)
	}

	for _, card := range cards {
		if err := s.writeSheet(f, card, urlStyle); err != nil {
			return "", fmt.Errorf("sheet %q: %w", card.SheetName, err)
		}
	}

	// Drop the implicit default sheet left over from NewFile.
	if len(cards) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return "", fmt.Errorf("delete default sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook %s: %w", path, err)
	}

	s.logger.Info("[storage] saved %d sheets to %s", len(cards), path)
	return path, nil
}

func (s *ExcelStore) writeSheet(f *excelize.File, card *models.ScrapedCard, urlStyle int) error {
	name := CleanSheetName(card.SheetName)
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	if err := f.SetCellValue(name, "A1", card.URL); err != nil {
		return err
	}
	if err := f.SetCellHyperLink(name, "A1", card.URL, "External"); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "A1", urlStyle); err != nil {
		return err
	}

	widths := make([]int, len(sheetHeaders))
	for col, header := range sheetHeaders {
		if err := setCell(f, name, col+1, headerRow, header); err != nil {
			return err
		}
		widths[col] = len(header)
	}

	for i, listing := range card.Listings {
		row := headerRow + 1 + i
		values := []any{
			listing.SellerUsername,
			listing.SellerSalesCount,
			listing.Condition,
			listing.ConditionBadge,
			listing.Language,
			listing.Edition,
			listing.Price,
			listing.Quantity,
		}
		for col, value := range values {
			if err := setCell(f, name, col+1, row, value); err != nil {
				return err
			}
			if l := len(fmt.Sprint(value)); l > widths[col] {
				widths[col] = l
			}
		}
	}

	for col, width := range widths {
		letter, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		w := width + 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(name, letter, letter, float64(w)); err != nil {
			return err
		}
	}

	if len(card.Listings) == 0 {
		s.logger.Warn("[storage] sheet %q has no listings, wrote headers only", name)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// ReadWorkbook loads every sheet of a stored workbook in workbook
// order, as raw cell rows.
func (s *ExcelStore) ReadWorkbook(path string) ([]models.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]models.Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			s.logger.Warn("[storage] failed to read sheet %q in %s: %v", name, path, err)
			rows = nil
		}
		sheets = append(sheets, models.Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// CleanSheetName makes a card name usable as an Excel sheet name:
// dashes become spaces and overlong names are truncated to the sheet
// name limit.
func CleanSheetName(cardName string) string {
	name := strings.ReplaceAll(cardName, "-", " ")
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen-3] + "..."
	}
	return name
}
