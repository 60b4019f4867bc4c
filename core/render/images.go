// Package render — PDF page rasterizer.
// Converts every page of a PDF into a PNG under images/<code>/ using
// MuPDF (go-fitz). Rendering is strictly best-effort: a PDF that
// cannot be rasterized contributes zero images and processing of that
// PDF continues.
package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"github.com/gaurav-prasanna/catalogpipe/core/output"
	"github.com/gen2brain/go-fitz"
)

// renderDPI is the fixed rasterization resolution.
const renderDPI = 200.0

// PageRenderer rasterizes PDF pages to PNG files.
type PageRenderer struct {
	layout *output.Layout
}

// NewPageRenderer creates a PageRenderer writing under the layout.
func NewPageRenderer(layout *output.Layout) *PageRenderer {
	return &PageRenderer{layout: layout}
}

// Render rasterizes every page of the PDF. Image files are named
// <code>_<pdf-stem>_page<N>.png. Failing to open the document fails
// the whole call; failing a single page skips just that page.
func (r *PageRenderer) Render(pdfPath, manufacturerCode string) ([]core.ExtractedImage, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s for rendering: %w", pdfPath, err)
	}
	defer doc.Close()

	dir, err := r.layout.ImageDir(manufacturerCode)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

	var images []core.ExtractedImage
	for i := 0; i < doc.NumPage(); i++ {
		pageNum := i + 1

		img, err := doc.ImageDPI(i, renderDPI)
		if err != nil {
			continue
		}

		filename := fmt.Sprintf("%s_%s_page%d.png", manufacturerCode, stem, pageNum)
		path := filepath.Join(dir, filename)

		f, err := os.Create(path)
		if err != nil {
			continue
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			os.Remove(path)
			continue
		}
		if err := f.Close(); err != nil {
			continue
		}

		bounds := img.Bounds()
		images = append(images, core.ExtractedImage{
			Page:     pageNum,
			Filename: filename,
			Path:     path,
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
		})
	}

	return images, nil
}
