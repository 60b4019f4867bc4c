// Package extract implements the Extractor interface.
// It pulls per-page text and tables out of a PDF using an ordered
// chain of strategies:
//  1. layout — positioned-text extraction with table detection
//  2. stream — raw content-stream text, no tables
//
// The first strategy that yields any page wins; adding a third
// strategy is a pure extension of the chain.
package extract

import (
	"log/slog"

	"github.com/gaurav-prasanna/catalogpipe/core"
)

// ChainExtractor tries each strategy in order and returns the first
// non-empty result.
type ChainExtractor struct {
	strategies []core.TextStrategy
}

// New creates a ChainExtractor with the default strategy chain.
func New() *ChainExtractor {
	return &ChainExtractor{
		strategies: []core.TextStrategy{
			&LayoutStrategy{},
			&StreamStrategy{},
		},
	}
}

// NewWithStrategies creates a ChainExtractor over a custom chain.
func NewWithStrategies(strategies ...core.TextStrategy) *ChainExtractor {
	return &ChainExtractor{strategies: strategies}
}

// Extract runs the strategy chain against the PDF. Every strategy
// failing is reported as *core.ExtractError; a chain that ran but
// found no text returns an empty page list and no error. Either way
// the caller treats the PDF as contributing nothing and moves on.
func (e *ChainExtractor) Extract(pdfPath string) ([]core.Page, error) {
	var lastErr error
	ran := false

	for _, s := range e.strategies {
		pages, err := s.ExtractPages(pdfPath)
		if err != nil {
			slog.Warn("extraction strategy failed",
				"strategy", s.Name(), "path", pdfPath, "error", err)
			lastErr = err
			continue
		}
		ran = true
		if len(pages) > 0 {
			return pages, nil
		}
	}

	if !ran {
		return nil, &core.ExtractError{Path: pdfPath, Err: lastErr}
	}
	return nil, nil
}
