package crawl

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPatterns(t *testing.T, patterns ...string) []*regexp.Regexp {
	t.Helper()
	compiled, err := CompilePatterns(patterns)
	require.NoError(t, err)
	return compiled
}

func TestCompilePatterns(t *testing.T) {
	t.Run("compiles valid patterns", func(t *testing.T) {
		compiled, err := CompilePatterns([]string{`\.pdf$`, `/catalog/`})
		require.NoError(t, err)
		assert.Len(t, compiled, 2)
	})

	t.Run("rejects invalid patterns", func(t *testing.T) {
		_, err := CompilePatterns([]string{`[unclosed`})
		assert.Error(t, err)
	})
}

func TestFindPDFLinks(t *testing.T) {
	base := "https://vendor.example/catalogs/index.html"

	t.Run("matches hrefs case-insensitively and resolves them", func(t *testing.T) {
		html := `<html><body>
			<a href="/files/Cable-Guide.PDF">Cable guide</a>
			<a href="about.html">About us</a>
		</body></html>`

		links, err := FindPDFLinks(html, base, mustPatterns(t, `\.pdf$`))
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://vendor.example/files/Cable-Guide.PDF", links[0].URL)
		assert.Equal(t, "Cable guide", links[0].Name)
		assert.Equal(t, "Cable-Guide.PDF", links[0].Filename)
	})

	t.Run("first matching pattern wins, in declaration order", func(t *testing.T) {
		html := `<a href="/pdf/catalog.pdf">Catalog</a>`

		links, err := FindPDFLinks(html, base, mustPatterns(t, `/pdf/`, `\.pdf$`))
		require.NoError(t, err)
		require.Len(t, links, 1)
	})

	t.Run("identical tuples dedup to one link", func(t *testing.T) {
		html := `
			<a href="/files/a.pdf">Spec sheet</a>
			<a href="/files/a.pdf">Spec sheet</a>`

		links, err := FindPDFLinks(html, base, mustPatterns(t, `\.pdf$`))
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("same URL under different anchor text yields two links", func(t *testing.T) {
		html := `
			<a href="/files/a.pdf">Spec sheet</a>
			<a href="/files/a.pdf">Download</a>`

		links, err := FindPDFLinks(html, base, mustPatterns(t, `\.pdf$`))
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, links[0].URL, links[1].URL)
		assert.NotEqual(t, links[0].Name, links[1].Name)
	})

	t.Run("anchors without text get the fallback name", func(t *testing.T) {
		html := `<a href="/files/a.pdf"><img src="icon.png"></a>`

		links, err := FindPDFLinks(html, base, mustPatterns(t, `\.pdf$`))
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, fallbackLinkName, links[0].Name)
	})

	t.Run("skips mailto and javascript hrefs", func(t *testing.T) {
		html := `
			<a href="mailto:sales@vendor.example?file=x.pdf">Mail</a>
			<a href="javascript:open('x.pdf')">JS</a>`

		links, err := FindPDFLinks(html, base, mustPatterns(t, `\.pdf`))
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("no anchors means no links", func(t *testing.T) {
		links, err := FindPDFLinks("<html><body><p>nothing</p></body></html>", base, mustPatterns(t, `\.pdf$`))
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean name untouched", "catalog_v2.1-en.pdf", "catalog_v2.1-en.pdf"},
		{"spaces and slashes replaced", "cable guide/2024.pdf", "cable_guide_2024.pdf"},
		{"unicode replaced", "catálogo.pdf", "cat_logo.pdf"},
		{"query residue replaced", "file.pdf?v=2", "file.pdf_v_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}
