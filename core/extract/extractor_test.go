package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStrategy is a scripted TextStrategy for chain tests.
type fakeStrategy struct {
	name  string
	pages []core.Page
	err   error
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) ExtractPages(string) ([]core.Page, error) {
	f.calls++
	return f.pages, f.err
}

func TestChainExtractor(t *testing.T) {
	somePages := []core.Page{{Number: 1, Text: "Model: X-1"}}

	t.Run("first non-empty strategy wins and short-circuits", func(t *testing.T) {
		first := &fakeStrategy{name: "first", pages: somePages}
		second := &fakeStrategy{name: "second"}

		pages, err := NewWithStrategies(first, second).Extract("catalog.pdf")
		require.NoError(t, err)
		assert.Equal(t, somePages, pages)
		assert.Zero(t, second.calls)
	})

	t.Run("falls through an empty strategy to the next", func(t *testing.T) {
		first := &fakeStrategy{name: "first"} // runs fine, finds nothing
		second := &fakeStrategy{name: "second", pages: somePages}

		pages, err := NewWithStrategies(first, second).Extract("catalog.pdf")
		require.NoError(t, err)
		assert.Equal(t, somePages, pages)
	})

	t.Run("falls through a failing strategy to the next", func(t *testing.T) {
		first := &fakeStrategy{name: "first", err: errors.New("corrupt xref")}
		second := &fakeStrategy{name: "second", pages: somePages}

		pages, err := NewWithStrategies(first, second).Extract("catalog.pdf")
		require.NoError(t, err)
		assert.Equal(t, somePages, pages)
	})

	t.Run("every strategy failing is an ExtractError", func(t *testing.T) {
		first := &fakeStrategy{name: "first", err: errors.New("corrupt xref")}
		second := &fakeStrategy{name: "second", err: errors.New("also corrupt")}

		_, err := NewWithStrategies(first, second).Extract("catalog.pdf")
		var ee *core.ExtractError
		assert.True(t, errors.As(err, &ee))
	})

	t.Run("no strategy finding text is empty but not an error", func(t *testing.T) {
		pages, err := NewWithStrategies(&fakeStrategy{name: "only"}).Extract("catalog.pdf")
		require.NoError(t, err)
		assert.Empty(t, pages)
	})
}

// fixturePDF writes a small two-page catalog PDF.
func fixturePDF(t *testing.T) string {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)

	pdf.AddPage()
	pdf.Cell(0, 10, "Model: FX-2000")
	pdf.Ln(10)
	pdf.Cell(0, 10, "Description: Optical distribution frame")

	pdf.AddPage()
	pdf.Cell(0, 10, "Part No: CBL-12")

	path := filepath.Join(t.TempDir(), "fixture.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

func TestLayoutStrategy(t *testing.T) {
	t.Run("extracts page text with page numbers", func(t *testing.T) {
		pages, err := (&LayoutStrategy{}).ExtractPages(fixturePDF(t))
		require.NoError(t, err)
		require.Len(t, pages, 2)

		assert.Equal(t, 1, pages[0].Number)
		assert.Contains(t, pages[0].Text, "FX-2000")
		assert.Contains(t, pages[0].Text, "Optical distribution frame")

		assert.Equal(t, 2, pages[1].Number)
		assert.Contains(t, pages[1].Text, "CBL-12")
	})

	t.Run("fails on a non-PDF file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "not.pdf")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

		_, err := (&LayoutStrategy{}).ExtractPages(path)
		assert.Error(t, err)
	})
}

func TestChainOnRealPDF(t *testing.T) {
	pages, err := New().Extract(fixturePDF(t))
	require.NoError(t, err)
	require.NotEmpty(t, pages)
	assert.Contains(t, pages[0].Text, "FX-2000")
}
