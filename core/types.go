// Package core defines the shared data types and pipeline interfaces
// for catalogpipe. Each stage of the pipeline is a clean, testable
// interface over these types.
package core

import "fmt"

// Manufacturer is a configured catalog source. Code partitions all
// derived storage paths (pdfs/<code>, images/<code>).
type Manufacturer struct {
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	CatalogPages []string `json:"catalog_pages"`
	PDFPatterns  []string `json:"pdf_patterns"`
}

// PdfLink is a PDF reference discovered on a catalog page.
// Two links are the same only if the full {URL, Name, Filename} tuple
// matches; the same URL under different anchor text is kept twice.
type PdfLink struct {
	URL      string
	Name     string
	Filename string
}

// Key returns the dedup key for the full tuple.
func (l PdfLink) Key() string {
	return l.URL + "\x00" + l.Name + "\x00" + l.Filename
}

// Table is one extracted table: row 0 holds the headers.
type Table [][]string

// Page holds the text and tables extracted from one PDF page.
// Pages are 1-indexed.
type Page struct {
	Number int
	Text   string
	Tables []Table
}

// Product is an open-schema record extracted from a PDF page. Fields
// vary by manufacturer and extraction strategy; only "manufacturer"
// and "page" are always present. Values must be bson-serializable.
type Product map[string]any

// NewProduct creates a Product carrying the base fields.
func NewProduct(manufacturerCode string, page int) Product {
	return Product{"manufacturer": manufacturerCode, "page": page}
}

// ExtractedImage describes one rasterized PDF page.
type ExtractedImage struct {
	Page     int
	Filename string
	Path     string
	Width    int
	Height   int
	FileID   string // blob id, empty when the store is disabled
}

// BlobMeta is the metadata attached to a stored blob. The sha256 and
// stored_at fields are added by the store itself.
type BlobMeta map[string]any

// String implements fmt.Stringer for log output: the product code if
// one was parsed, otherwise the base fields.
func (p Product) String() string {
	if code, ok := p["product_code"]; ok {
		return fmt.Sprintf("%v", code)
	}
	return fmt.Sprintf("%v p%v", p["manufacturer"], p["page"])
}
