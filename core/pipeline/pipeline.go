// Package pipeline drives one extraction run end to end:
// fetch catalog pages → collect PDF links → per PDF: download, store,
// extract, parse, optionally render page images → persist the batch →
// build the spreadsheet; then one consolidated spreadsheet across all
// manufacturers.
//
// Everything is strictly sequential. No stage failure is fatal: a bad
// page contributes zero links, a bad PDF zero products, a disabled
// store no blob ids. The only early exit is the product cap.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"github.com/gaurav-prasanna/catalogpipe/core/normalize"
	"github.com/gaurav-prasanna/catalogpipe/crawl"
)

// consolidatedCode names the cross-manufacturer spreadsheet. Kept
// from the legacy extractor so existing tooling finds it.
const consolidatedCode = "TODAS_FABRICANTES"

// RunContext is the immutable configuration of one run. Stages only
// ever read from it.
type RunContext struct {
	Manufacturers []core.Manufacturer
	// ProductLimit caps accumulated products per manufacturer; zero
	// means unlimited. A non-zero limit also disables image rendering
	// for every manufacturer in the run (fast mode).
	ProductLimit int
}

// FastMode reports whether a product cap is configured.
func (rc RunContext) FastMode() bool { return rc.ProductLimit > 0 }

// Deps are the pipeline's collaborators, one per stage.
type Deps struct {
	Fetcher    core.Fetcher
	Downloader core.Downloader
	Store      core.Store
	Extractor  core.Extractor
	Parser     core.Parser
	Renderer   core.Renderer
	Reporter   core.Reporter
	// Progress receives human-readable run progress; nil discards it.
	Progress io.Writer
}

// Pipeline orchestrates the extraction stages.
type Pipeline struct {
	deps Deps
}

// New creates a Pipeline over the given collaborators.
func New(deps Deps) *Pipeline {
	if deps.Progress == nil {
		deps.Progress = io.Discard
	}
	return &Pipeline{deps: deps}
}

// Run processes every configured manufacturer and builds the
// consolidated spreadsheet at the end.
func (p *Pipeline) Run(ctx context.Context, rc RunContext) error {
	var total []core.Product

	for _, m := range rc.Manufacturers {
		products := p.processManufacturer(ctx, rc, m)
		if len(products) == 0 {
			continue
		}
		total = append(total, products...)

		if path, err := p.deps.Reporter.Build(products, m.Code); err != nil {
			slog.Error("building spreadsheet failed", "manufacturer", m.Code, "error", err)
		} else if path != "" {
			fmt.Fprintf(p.deps.Progress, "✓ Spreadsheet created: %s\n", path)
		}
	}

	if len(total) > 0 {
		if path, err := p.deps.Reporter.Build(total, consolidatedCode); err != nil {
			slog.Error("building consolidated spreadsheet failed", "error", err)
		} else if path != "" {
			fmt.Fprintf(p.deps.Progress, "✓ Consolidated spreadsheet created: %s\n", path)
		}
		fmt.Fprintf(p.deps.Progress, "✓ Total products extracted: %d\n", len(total))
	}

	return nil
}

// processManufacturer runs the per-manufacturer state machine:
// Discovered → Downloaded → TextExtracted → Parsed →
// (ImagesRendered) → Persisted.
func (p *Pipeline) processManufacturer(ctx context.Context, rc RunContext, m core.Manufacturer) []core.Product {
	fmt.Fprintf(p.deps.Progress, "\nProcessing: %s (%s)\n", m.Name, m.Code)
	if rc.FastMode() {
		fmt.Fprintf(p.deps.Progress, "→ Fast mode: capping at %d products, skipping image extraction\n", rc.ProductLimit)
	}

	patterns, err := crawl.CompilePatterns(m.PDFPatterns)
	if err != nil {
		slog.Error("invalid pdf patterns, skipping manufacturer",
			"manufacturer", m.Code, "error", err)
		return nil
	}

	links := p.discover(ctx, m, patterns)

	var products []core.Product
	for i, link := range links {
		if rc.ProductLimit > 0 && len(products) >= rc.ProductLimit {
			break
		}
		fmt.Fprintf(p.deps.Progress, "\n[%d/%d] Processing: %s\n", i+1, len(links), link.Name)

		parsed := p.processPDF(ctx, rc, m, link)
		if rc.ProductLimit > 0 {
			if remaining := rc.ProductLimit - len(products); remaining < len(parsed) {
				parsed = parsed[:remaining]
			}
		}
		products = append(products, parsed...)
	}

	p.persist(ctx, m, products)
	return products
}

// discover fetches every catalog page and unions the extracted links,
// deduplicating by the full {url, name, filename} tuple across pages.
func (p *Pipeline) discover(ctx context.Context, m core.Manufacturer, patterns []*regexp.Regexp) []core.PdfLink {
	seen := make(map[string]bool)
	var links []core.PdfLink

	for _, pageURL := range m.CatalogPages {
		fmt.Fprintf(p.deps.Progress, "→ Scanning catalog page: %s\n", pageURL)

		html, err := p.deps.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			slog.Warn("catalog page fetch failed",
				"manufacturer", m.Code, "url", pageURL, "error", err)
			continue
		}

		p.snapshot(ctx, m.Code, pageURL, html)

		found, err := crawl.FindPDFLinks(html, pageURL, patterns)
		if err != nil {
			slog.Warn("link extraction failed",
				"manufacturer", m.Code, "url", pageURL, "error", err)
			continue
		}
		fmt.Fprintf(p.deps.Progress, "  ✓ Found %d PDF links\n", len(found))

		for _, link := range found {
			if key := link.Key(); !seen[key] {
				seen[key] = true
				links = append(links, link)
			}
		}
	}

	return links
}

// snapshot stores a Markdown rendition of the catalog page,
// best-effort, for read-side provenance.
func (p *Pipeline) snapshot(ctx context.Context, code, url, html string) {
	if !p.deps.Store.Enabled() {
		return
	}
	markdown, err := normalize.ToMarkdown(html)
	if err != nil {
		slog.Warn("page snapshot conversion failed", "url", url, "error", err)
		return
	}
	if err := p.deps.Store.SaveSnapshot(ctx, code, url, markdown); err != nil {
		slog.Warn("page snapshot save failed", "url", url, "error", err)
	}
}

// processPDF takes one link through download, blob storage, text
// extraction, parsing, and (outside fast mode) image rendering.
func (p *Pipeline) processPDF(ctx context.Context, rc RunContext, m core.Manufacturer, link core.PdfLink) []core.Product {
	path, err := p.deps.Downloader.Download(ctx, link.URL, m.Code, link.Filename)
	if err != nil {
		slog.Warn("download failed",
			"manufacturer", m.Code, "url", link.URL, "filename", link.Filename, "error", err)
		return nil
	}

	pdfID := p.storeBlob(ctx, path, link.Filename, core.BlobMeta{
		"type":         "pdf",
		"manufacturer": m.Code,
		"name":         link.Name,
		"url":          link.URL,
	})

	fmt.Fprintf(p.deps.Progress, "  → Extracting text...\n")
	pages, err := p.deps.Extractor.Extract(path)
	if err != nil {
		slog.Warn("text extraction failed",
			"manufacturer", m.Code, "path", path, "error", err)
		return nil
	}

	var products []core.Product
	if len(pages) > 0 {
		fmt.Fprintf(p.deps.Progress, "    ✓ Text extracted from %d pages\n", len(pages))

		products = p.deps.Parser.Parse(pages, m.Code)
		for _, product := range products {
			product["pdf_source"] = link.Filename
			product["pdf_name"] = link.Name
			product["pdf_url"] = link.URL
			if pdfID != "" {
				product["pdf_file_id"] = pdfID
			}
		}
		if len(products) > 0 {
			fmt.Fprintf(p.deps.Progress, "    ✓ Found %d products\n", len(products))
		}
	}

	if rc.FastMode() {
		fmt.Fprintf(p.deps.Progress, "  → Skipping image extraction (fast mode)\n")
		return products
	}

	p.renderImages(ctx, m, link, path)
	return products
}

// renderImages rasterizes the PDF's pages and stores each image blob,
// best-effort.
func (p *Pipeline) renderImages(ctx context.Context, m core.Manufacturer, link core.PdfLink, pdfPath string) {
	fmt.Fprintf(p.deps.Progress, "  → Extracting images...\n")

	images, err := p.deps.Renderer.Render(pdfPath, m.Code)
	if err != nil {
		slog.Warn("image rendering failed",
			"manufacturer", m.Code, "path", pdfPath, "error", err)
		return
	}
	fmt.Fprintf(p.deps.Progress, "    ✓ Extracted %d images\n", len(images))

	for i := range images {
		img := &images[i]
		img.FileID = p.storeBlob(ctx, img.Path, img.Filename, core.BlobMeta{
			"type":         "image",
			"manufacturer": m.Code,
			"pdf_source":   link.Filename,
			"page":         img.Page,
			"size":         map[string]any{"width": img.Width, "height": img.Height},
		})
	}
}

// storeBlob uploads one file to the content store. A disabled store
// is silent; real failures are logged. Either way the returned id may
// be empty and the pipeline carries on.
func (p *Pipeline) storeBlob(ctx context.Context, path, filename string, meta core.BlobMeta) string {
	id, err := p.deps.Store.StoreFile(ctx, path, filename, meta)
	if err != nil {
		if !errors.Is(err, core.ErrStoreDisabled) {
			slog.Warn("blob store failed", "filename", filename, "error", err)
		}
		return ""
	}
	return id
}

// persist bulk-inserts the manufacturer's product batch.
func (p *Pipeline) persist(ctx context.Context, m core.Manufacturer, products []core.Product) {
	if len(products) == 0 {
		return
	}
	if err := p.deps.Store.InsertProducts(ctx, products); err != nil {
		if !errors.Is(err, core.ErrStoreDisabled) {
			slog.Error("persisting product batch failed",
				"manufacturer", m.Code, "count", len(products), "error", err)
		}
		return
	}
	fmt.Fprintf(p.deps.Progress, "\n✓ %d product documents saved\n", len(products))
}
