package download

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gaurav-prasanna/catalogpipe/core"
	"github.com/gaurav-prasanna/catalogpipe/core/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLayout(t *testing.T) *output.Layout {
	t.Helper()
	layout, err := output.NewLayout(filepath.Join(t.TempDir(), "extracted_data"))
	require.NoError(t, err)
	return layout
}

func TestDownload(t *testing.T) {
	t.Run("streams the body to pdfs/<code> and sanitizes the filename", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("%PDF-1.4 fake"))
		}))
		defer srv.Close()

		layout := newLayout(t)
		d := New(layout, nil)

		path, err := d.Download(context.Background(), srv.URL, "ACME", "cable guide.pdf")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(layout.Root, "pdfs", "ACME", "cable_guide.pdf"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 fake", string(data))
	})

	t.Run("second download with the same filename performs no network I/O", func(t *testing.T) {
		var hits int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Write([]byte("%PDF-1.4 fake"))
		}))
		defer srv.Close()

		d := New(newLayout(t), nil)

		first, err := d.Download(context.Background(), srv.URL, "ACME", "catalog.pdf")
		require.NoError(t, err)
		second, err := d.Download(context.Background(), srv.URL, "ACME", "catalog.pdf")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, hits)
	})

	t.Run("reports progress when content-length is known", func(t *testing.T) {
		body := bytes.Repeat([]byte("x"), 4096)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Large bodies go out chunked unless the length is declared,
			// and chunked responses carry no content length.
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			w.Write(body)
		}))
		defer srv.Close()

		var progress bytes.Buffer
		d := New(newLayout(t), &progress)

		_, err := d.Download(context.Background(), srv.URL, "ACME", "catalog.pdf")
		require.NoError(t, err)
		assert.Contains(t, progress.String(), "100%")
	})

	t.Run("server error is a DownloadError and leaves no file behind", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		layout := newLayout(t)
		d := New(layout, nil)

		_, err := d.Download(context.Background(), srv.URL, "ACME", "catalog.pdf")
		var de *core.DownloadError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "catalog.pdf", de.Filename)

		entries, err := os.ReadDir(filepath.Join(layout.Root, "pdfs", "ACME"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("transport failure is a DownloadError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		d := New(newLayout(t), nil)
		_, err := d.Download(context.Background(), srv.URL, "ACME", "catalog.pdf")
		var de *core.DownloadError
		assert.True(t, errors.As(err, &de))
	})
}
