// Package extract — layout strategy.
// Reconstructs lines and tables from positioned text. Characters are
// clustered into cells by horizontal gaps; vertically consecutive rows
// with aligned cells form tables. This is deliberately heuristic:
// catalog tables vary too much across vendors for anything stricter.
package extract

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"github.com/ledongthuc/pdf"
)

const (
	// wordGap is the horizontal gap (pt) that separates two words
	// inside one cell.
	wordGap = 1.5
	// cellGap is the horizontal gap (pt) that starts a new cell.
	cellGap = 12.0
	// columnTolerance is how far (pt) a cell may start from the
	// column position established by the first row of a table block.
	columnTolerance = 15.0
)

// LayoutStrategy extracts text and tables using positioned glyphs.
type LayoutStrategy struct{}

// Name identifies the strategy in logs.
func (s *LayoutStrategy) Name() string { return "layout" }

// ExtractPages reads every page, rebuilding lines top-down and
// collecting detected tables. Pages without text are skipped.
func (s *LayoutStrategy) ExtractPages(pdfPath string) (pages []core.Page, err error) {
	// The pdf library panics on some malformed files; turn that into
	// an error so the chain can fall through to the stream strategy.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("panic reading %s: %v", pdfPath, r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			continue // pages that fail to decode contribute nothing
		}

		text, tables := assemblePage(rows)
		if strings.TrimSpace(text) == "" {
			continue
		}

		pages = append(pages, core.Page{Number: i, Text: text, Tables: tables})
	}

	return pages, nil
}

// cell is one horizontal run of words within a row.
type cell struct {
	x    float64
	text string
}

// assemblePage turns positioned rows into page text plus any tables.
func assemblePage(rows pdf.Rows) (string, []core.Table) {
	var lines []string
	var tables []core.Table

	// block accumulates consecutive rows that look like table rows.
	var block [][]cell

	flush := func() {
		if len(block) >= 2 {
			tables = append(tables, blockToTable(block))
		}
		block = nil
	}

	for _, row := range rows {
		cells := rowCells(row)
		if len(cells) == 0 {
			flush()
			continue
		}

		var parts []string
		for _, c := range cells {
			parts = append(parts, c.text)
		}
		lines = append(lines, strings.Join(parts, " "))

		// A table row has at least two cells; it extends the current
		// block only when its columns line up with the block's first row.
		if len(cells) >= 2 && (len(block) == 0 || aligned(block[0], cells)) {
			block = append(block, cells)
		} else {
			flush()
			if len(cells) >= 2 {
				block = append(block, cells)
			}
		}
	}
	flush()

	return strings.Join(lines, "\n"), tables
}

// rowCells clusters a row's glyphs into cells by horizontal gaps.
func rowCells(row *pdf.Row) []cell {
	var cells []cell
	var cur strings.Builder
	var curX, lastEnd float64

	emit := func() {
		text := strings.TrimSpace(cur.String())
		if text != "" {
			cells = append(cells, cell{x: curX, text: text})
		}
		cur.Reset()
	}

	for _, t := range row.Content {
		if t.S == "" {
			continue
		}
		switch {
		case cur.Len() == 0:
			curX = t.X
		case t.X-lastEnd > cellGap:
			emit()
			curX = t.X
		case t.X-lastEnd > wordGap:
			cur.WriteByte(' ')
		}
		cur.WriteString(t.S)
		if end := t.X + t.W; end > lastEnd {
			lastEnd = end
		}
	}
	emit()

	return cells
}

// aligned reports whether a row's cells match the column positions of
// the block's header row.
func aligned(header, cells []cell) bool {
	if len(cells) != len(header) {
		return false
	}
	for i := range cells {
		diff := cells[i].x - header[i].x
		if diff < -columnTolerance || diff > columnTolerance {
			return false
		}
	}
	return true
}

// blockToTable converts an aligned row block into a table. Row 0 is
// the header row by convention.
func blockToTable(block [][]cell) core.Table {
	table := make(core.Table, 0, len(block))
	for _, cells := range block {
		row := make([]string, 0, len(cells))
		for _, c := range cells {
			row = append(row, c.text)
		}
		table = append(table, row)
	}
	return table
}
