// Package parse implements the Parser interface.
// Two independent heuristics run over the same pages and their
// outputs are concatenated: a line-regex pass over the page text and
// a row expansion over each detected table. There is no cross-strategy
// dedup: a line that also appears inside a table is recorded twice.
package parse

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/catalogpipe/core"
)

// fieldPatterns are the manufacturer-agnostic field matchers for the
// line-regex heuristic. Group 1 carries the field value.
var fieldPatterns = []struct {
	field string
	re    *regexp.Regexp
}{
	{"product_code", regexp.MustCompile(`(?i)(?:Model|Code|Part\s*No|P/N|Item)[:\s]+([A-Z0-9\-]+)`)},
	{"description", regexp.MustCompile(`(?i)(?:Description|Product)[:\s]+(.+)`)},
	{"specifications", regexp.MustCompile(`(?i)(?:Spec|Specifications)[:\s]+(.+)`)},
}

// baseFieldCount is what every record starts with: manufacturer, page.
const baseFieldCount = 2

// tableBaseFieldCount adds table_index and row_index.
const tableBaseFieldCount = 4

// HeuristicParser converts extracted pages into product records.
type HeuristicParser struct{}

// New creates a HeuristicParser.
func New() *HeuristicParser {
	return &HeuristicParser{}
}

// Parse runs both heuristics over every page, line strategy first.
func (p *HeuristicParser) Parse(pages []core.Page, manufacturerCode string) []core.Product {
	var products []core.Product

	for _, page := range pages {
		products = append(products, parseLines(page, manufacturerCode)...)
		for tableIdx, table := range page.Tables {
			products = append(products, parseTable(table, tableIdx, page, manufacturerCode)...)
		}
	}

	return products
}

// parseLines tests every field pattern against every text line. A
// record is kept only when at least one pattern matched; the matched
// line is retained verbatim under raw_text.
func parseLines(page core.Page, manufacturerCode string) []core.Product {
	var products []core.Product

	for _, line := range strings.Split(page.Text, "\n") {
		product := core.NewProduct(manufacturerCode, page.Number)

		for _, fp := range fieldPatterns {
			if m := fp.re.FindStringSubmatch(line); m != nil {
				product[fp.field] = strings.TrimSpace(m[1])
			}
		}

		if len(product) > baseFieldCount {
			product["raw_text"] = line
			products = append(products, product)
		}
	}

	return products
}

// parseTable expands a table into one record per data row, keyed by
// the header row. Rows contributing no real column value (only the
// base fields) are dropped.
func parseTable(table core.Table, tableIdx int, page core.Page, manufacturerCode string) []core.Product {
	if len(table) < 2 {
		return nil
	}
	headers := table[0]

	var products []core.Product
	for rowIdx, row := range table[1:] {
		product := core.NewProduct(manufacturerCode, page.Number)
		product["table_index"] = tableIdx
		product["row_index"] = rowIdx + 1

		for colIdx, cellValue := range row {
			if colIdx >= len(headers) {
				break
			}
			header := strings.TrimSpace(headers[colIdx])
			if header == "" {
				continue
			}
			product[header] = strings.TrimSpace(cellValue)
		}

		if len(product) > tableBaseFieldCount {
			products = append(products, product)
		}
	}

	return products
}
