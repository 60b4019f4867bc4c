package core

import (
	"errors"
	"fmt"
)

// ErrStoreDisabled is returned by every Store method when the backend
// was unreachable at startup. Callers treat it as "no blob id", never
// as a failure.
var ErrStoreDisabled = errors.New("document store disabled")

// FetchError reports a failed catalog-page fetch. Recoverable: the
// page contributes zero links and the run continues.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DownloadError reports a failed PDF download. Recoverable: the PDF
// is skipped.
type DownloadError struct {
	URL      string
	Filename string
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s (%s): %v", e.Filename, e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractError reports that every extraction strategy failed for a
// PDF. Recoverable: the PDF contributes zero pages.
type ExtractError struct {
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }
