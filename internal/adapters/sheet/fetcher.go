// Package sheet retrieves the raw signup sheet CSV export.
package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bottoscon/consched/pkg/logger"
	"github.com/bottoscon/consched/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Fetcher performs one HTTP retrieval of the sheet's CSV export per
// call. There is no retry here; retry policy, if any, belongs to the
// refresh path that calls us.
type Fetcher struct {
	url    string
	client *http.Client
	log    logger.Logger
}

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout bounds the whole request including body read.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(log logger.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFetcher creates a Fetcher for the given CSV export URL.
func NewFetcher(url string, opts ...Option) *Fetcher {
	f := &Fetcher{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the raw CSV text. Transport failures and non-2xx
// responses come back as a *FetchError carrying the cause or status so
// callers can surface a useful message.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", &FetchError{Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.RecordFetchError()
		return "", &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordFetchError()
		return "", &FetchError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordFetchError()
		return "", &FetchError{Status: resp.StatusCode, Err: err}
	}

	if f.log != nil {
		f.log.Debug(ctx, "sheet fetched", logger.Int("bytes", len(body)))
	}
	return string(body), nil
}

// FetchError reports a failed sheet retrieval. Either Status (non-2xx
// response) or Err (transport/read failure) is set; both may be.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("sheet fetch failed: status %d: %v", e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("sheet fetch failed: %v", e.Err)
	default:
		return fmt.Sprintf("sheet fetch failed: status %d", e.Status)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }
