// Package crawl provides PDF link discovery on vendor catalog pages.
// It scans anchors against manufacturer-supplied patterns, keeping
// crawling logic separate from the ingest pipeline.
package crawl

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/catalogpipe/core"
)

// fallbackLinkName is used when an anchor has no text. Kept from the
// legacy extractor so downstream spreadsheets stay comparable.
const fallbackLinkName = "Sem nome"

// CompilePatterns compiles manufacturer PDF patterns for matching
// against raw hrefs. Matching is case-insensitive.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compiling pdf pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// FindPDFLinks scans all anchors in the HTML for hrefs matching any of
// the compiled patterns. Patterns are tried in declaration order and
// the first match wins. Matching hrefs are resolved against baseURL;
// the filename is derived from the resolved URL path.
//
// Deduplication is by the full {url, name, filename} tuple: the same
// PDF linked twice under different anchor text yields two links.
func FindPDFLinks(html, baseURL string, patterns []*regexp.Regexp) ([]core.PdfLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	set := newLinkSet()

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		for _, re := range patterns {
			if !re.MatchString(href) {
				continue
			}

			resolved := resolveURL(href, base)
			if resolved == "" {
				return
			}

			name := strings.TrimSpace(s.Text())
			if name == "" {
				name = fallbackLinkName
			}

			set.Add(core.PdfLink{
				URL:      resolved,
				Name:     name,
				Filename: filenameFromURL(resolved),
			})
			return // first matching pattern wins
		}
	})

	return set.All(), nil
}

// resolveURL resolves a potentially relative href against a base.
func resolveURL(href string, base *url.URL) string {
	// Skip mailto, javascript, etc.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}

// filenameFromURL returns the last path segment of the URL.
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
