// Package output owns the on-disk layout of extraction results.
// Everything the pipeline produces lands under one root:
//
//	extracted_data/
//	  pdfs/<code>/<sanitized-filename>
//	  images/<code>/<code>_<name>_page<N>.png
//	  spreadsheets/<code>_produtos_<timestamp>.xlsx
//	  temp/
//
// The layout is created eagerly at startup and mirrors the remote
// store, so a run with the document store unreachable still leaves a
// complete local tree.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout resolves paths under the extraction root.
type Layout struct {
	Root string
}

// NewLayout creates the root directory structure. If root is empty,
// it defaults to "extracted_data" in the current working directory.
func NewLayout(root string) (*Layout, error) {
	if root == "" {
		root = "extracted_data"
	}

	for _, dir := range []string{"", "pdfs", "images", "spreadsheets", "temp"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", filepath.Join(root, dir), err)
		}
	}

	return &Layout{Root: root}, nil
}

// PDFDir returns (and creates) the PDF directory for a manufacturer.
func (l *Layout) PDFDir(manufacturerCode string) (string, error) {
	dir := filepath.Join(l.Root, "pdfs", manufacturerCode)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return dir, nil
}

// ImageDir returns (and creates) the image directory for a manufacturer.
func (l *Layout) ImageDir(manufacturerCode string) (string, error) {
	dir := filepath.Join(l.Root, "images", manufacturerCode)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return dir, nil
}

// SpreadsheetPath returns the full path for a spreadsheet filename.
func (l *Layout) SpreadsheetPath(filename string) string {
	return filepath.Join(l.Root, "spreadsheets", filename)
}
