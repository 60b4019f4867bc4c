package core

import "context"

// Fetcher retrieves the raw HTML of a catalog page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Downloader fetches a PDF into local storage, returning the local
// path. A file that already exists under the manufacturer's directory
// is not re-fetched.
type Downloader interface {
	Download(ctx context.Context, url, manufacturerCode, filename string) (string, error)
}

// Store persists products and blobs to the document store. All
// methods are best-effort from the orchestrator's point of view: a
// disabled store returns ErrStoreDisabled and the pipeline carries on
// with local files only.
type Store interface {
	// Enabled reports whether the backend was reachable at startup.
	Enabled() bool
	// StoreFile uploads a file as a content-addressed blob and returns
	// its id. Identical bytes, under any name, return the existing id.
	StoreFile(ctx context.Context, path, filename string, meta BlobMeta) (string, error)
	// InsertProducts bulk-inserts a product batch, unordered.
	InsertProducts(ctx context.Context, products []Product) error
	// SaveSnapshot records a Markdown snapshot of a fetched catalog page.
	SaveSnapshot(ctx context.Context, manufacturerCode, url, markdown string) error
	// Close releases the backend connection.
	Close(ctx context.Context) error
}

// Extractor pulls per-page text and tables out of a PDF.
type Extractor interface {
	Extract(pdfPath string) ([]Page, error)
}

// TextStrategy is one way of extracting pages from a PDF. Strategies
// are tried in order; the first that yields any page wins.
type TextStrategy interface {
	Name() string
	ExtractPages(pdfPath string) ([]Page, error)
}

// Parser converts extracted pages into product records.
type Parser interface {
	Parse(pages []Page, manufacturerCode string) []Product
}

// Renderer rasterizes every page of a PDF to an image file.
type Renderer interface {
	Render(pdfPath, manufacturerCode string) ([]ExtractedImage, error)
}

// Reporter serializes a product list into a spreadsheet and returns
// the file path. An empty product list produces no file.
type Reporter interface {
	Build(products []Product, manufacturerCode string) (string, error)
}
