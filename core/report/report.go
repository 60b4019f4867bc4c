// Package report implements the Reporter interface.
// It serializes a product list into a single-sheet xlsx file with a
// prioritized column order and width-fitted columns.
package report

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"github.com/gaurav-prasanna/catalogpipe/core/output"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Produtos"

	// maxColumnWidth caps the fitted width of any column.
	maxColumnWidth = 50
)

// priorityColumns lead the sheet, in this order, when observed.
// Everything else follows in first-seen order.
var priorityColumns = []string{
	"manufacturer", "product_code", "description",
	"specifications", "page", "pdf_name", "pdf_source",
}

// XLSXReporter writes product spreadsheets under the layout.
type XLSXReporter struct {
	layout *output.Layout
	now    func() time.Time
}

// New creates an XLSXReporter.
func New(layout *output.Layout) *XLSXReporter {
	return &XLSXReporter{layout: layout, now: time.Now}
}

// Build writes the spreadsheet for a product list and returns its
// path. An empty list produces no file and an empty path.
func (r *XLSXReporter) Build(products []core.Product, manufacturerCode string) (string, error) {
	if len(products) == 0 {
		return "", nil
	}

	columns := columnOrder(products)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}

	// Header row.
	for colIdx, col := range columns {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return "", fmt.Errorf("writing header %s: %w", col, err)
		}
	}

	// Data rows.
	for rowIdx, product := range products {
		for colIdx, col := range columns {
			value, ok := product[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	fitColumns(f, columns, products)

	timestamp := r.now().Format("20060102_150405")
	path := r.layout.SpreadsheetPath(fmt.Sprintf("%s_produtos_%s.xlsx", manufacturerCode, timestamp))

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving spreadsheet %s: %w", path, err)
	}
	return path, nil
}

// columnOrder returns the observed priority columns in priority
// order, then every remaining column in first-seen order. Within one
// product, keys are visited alphabetically so the order is stable.
func columnOrder(products []core.Product) []string {
	observed := make(map[string]bool)
	var rest []string

	for _, p := range products {
		for _, key := range sortedKeys(p) {
			if observed[key] {
				continue
			}
			observed[key] = true
			if !isPriority(key) {
				rest = append(rest, key)
			}
		}
	}

	var columns []string
	for _, col := range priorityColumns {
		if observed[col] {
			columns = append(columns, col)
		}
	}
	return append(columns, rest...)
}

// fitColumns sizes each column to its longest stringified value or
// header, whichever is wider, capped at maxColumnWidth. Widths count
// runes, not bytes, so accented catalog text is not over-widened.
func fitColumns(f *excelize.File, columns []string, products []core.Product) {
	for colIdx, col := range columns {
		width := utf8.RuneCountInString(col)
		for _, p := range products {
			if value, ok := p[col]; ok {
				if l := utf8.RuneCountInString(fmt.Sprintf("%v", value)); l > width {
					width = l
				}
			}
		}
		width += 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		name, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			continue
		}
		// Width errors only degrade presentation.
		_ = f.SetColWidth(sheetName, name, name, float64(width))
	}
}

func isPriority(key string) bool {
	for _, col := range priorityColumns {
		if key == col {
			return true
		}
	}
	return false
}

func sortedKeys(p core.Product) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
