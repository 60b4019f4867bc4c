package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	t.Run("creates the full directory tree", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "extracted_data")

		layout, err := NewLayout(root)
		require.NoError(t, err)
		assert.Equal(t, root, layout.Root)

		for _, dir := range []string{"pdfs", "images", "spreadsheets", "temp"} {
			info, err := os.Stat(filepath.Join(root, dir))
			require.NoError(t, err, dir)
			assert.True(t, info.IsDir(), dir)
		}
	})

	t.Run("per-manufacturer directories are created on demand", func(t *testing.T) {
		layout, err := NewLayout(filepath.Join(t.TempDir(), "extracted_data"))
		require.NoError(t, err)

		pdfDir, err := layout.PDFDir("ACME")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(layout.Root, "pdfs", "ACME"), pdfDir)
		assert.DirExists(t, pdfDir)

		imgDir, err := layout.ImageDir("ACME")
		require.NoError(t, err)
		assert.DirExists(t, imgDir)
	})

	t.Run("spreadsheet paths land under spreadsheets", func(t *testing.T) {
		layout, err := NewLayout(filepath.Join(t.TempDir(), "extracted_data"))
		require.NoError(t, err)

		path := layout.SpreadsheetPath("ACME_produtos_20260101_120000.xlsx")
		assert.Equal(t, filepath.Join(layout.Root, "spreadsheets", "ACME_produtos_20260101_120000.xlsx"), path)
	})
}
