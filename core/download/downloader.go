// Package download implements the Downloader interface.
// Downloads are idempotent by filename: a PDF already present under
// the manufacturer's directory is never re-fetched.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"github.com/gaurav-prasanna/catalogpipe/core/output"
	"github.com/gaurav-prasanna/catalogpipe/crawl"
)

const (
	defaultTimeout = 60 * time.Second

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// PDFDownloader streams PDFs to the local pdfs/<code>/ tree.
type PDFDownloader struct {
	layout   *output.Layout
	client   *http.Client
	progress io.Writer
}

// New creates a PDFDownloader writing under the given layout.
// Progress lines go to progressOut; pass io.Discard to silence them.
func New(layout *output.Layout, progressOut io.Writer) *PDFDownloader {
	if progressOut == nil {
		progressOut = io.Discard
	}
	return &PDFDownloader{
		layout:   layout,
		client:   &http.Client{Timeout: defaultTimeout},
		progress: progressOut,
	}
}

// Download fetches a PDF to pdfs/<code>/<sanitized-filename>. If the
// file already exists it returns the cached path without network I/O.
// Transport failures come back as *core.DownloadError.
func (d *PDFDownloader) Download(ctx context.Context, url, manufacturerCode, filename string) (string, error) {
	safe := crawl.SanitizeFilename(filename)

	dir, err := d.layout.PDFDir(manufacturerCode)
	if err != nil {
		return "", &core.DownloadError{URL: url, Filename: safe, Err: err}
	}
	path := filepath.Join(dir, safe)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(d.progress, "  ↓ PDF already present: %s\n", safe)
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &core.DownloadError{URL: url, Filename: safe, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", &core.DownloadError{URL: url, Filename: safe, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &core.DownloadError{URL: url, Filename: safe, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	tmp, err := os.Create(path + ".part")
	if err != nil {
		return "", &core.DownloadError{URL: url, Filename: safe, Err: err}
	}

	var dst io.Writer = tmp
	if resp.ContentLength > 0 {
		dst = io.MultiWriter(tmp, &progressWriter{
			out:   d.progress,
			label: safe,
			total: resp.ContentLength,
		})
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", &core.DownloadError{URL: url, Filename: safe, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", &core.DownloadError{URL: url, Filename: safe, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", &core.DownloadError{URL: url, Filename: safe, Err: err}
	}

	fmt.Fprintf(d.progress, "  ✓ PDF downloaded: %s\n", safe)
	return path, nil
}

// progressWriter reports download progress at 10% steps when the
// server gave us a content length.
type progressWriter struct {
	out     io.Writer
	label   string
	total   int64
	written int64
	lastPct int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	pct := p.written * 100 / p.total
	if pct/10 > p.lastPct/10 {
		p.lastPct = pct
		fmt.Fprintf(p.out, "  ↓ %s: %d%%\n", p.label, pct)
	}
	return len(b), nil
}
