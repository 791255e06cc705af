package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"pmj0612/shopscraper/helpers"
	"pmj0612/shopscraper/logger"
	"pmj0612/shopscraper/pkg/errors"
)

// PageFetcher retrieves catalog pages over HTTP with retries
type PageFetcher struct {
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
	log         *logger.Logger
}

// NewPageFetcher creates a fetcher with the given timeout, attempt budget
// and backoff unit. A non-empty proxyURL routes every request through that
// proxy.
func NewPageFetcher(timeout time.Duration, maxAttempts int, backoff time.Duration, proxyURL string) (*PageFetcher, error) {
	client := &http.Client{Timeout: timeout}

	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err != nil {
			return nil, errors.NewConfiguration("fetcher", fmt.Sprintf("invalid proxy url %q", proxyURL), err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	}

	return &PageFetcher{
		client:      client,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		log:         logger.For("fetcher"),
	}, nil
}

// Fetch retrieves pageURL and returns the body decoded to UTF-8. Transport
// errors and non-success statuses are retried with waits of 1, 2, 4...
// backoff units between attempts; after the attempt budget the last error is
// returned and the caller treats the page as having no content.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (io.Reader, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := f.backoff << (attempt - 2)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := f.fetchOnce(ctx, pageURL)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		f.log.Warn().
			Str("url", pageURL).
			Int("attempt", attempt).
			Int("max_attempts", f.maxAttempts).
			Err(err).
			Msg("Page fetch attempt failed")
	}

	return nil, lastErr
}

// fetchOnce performs a single request
func (f *PageFetcher) fetchOnce(ctx context.Context, pageURL string) (io.Reader, error) {
	req, err := helpers.NewPageRequest(pageURL)
	if err != nil {
		return nil, errors.NewFetch(pageURL, "failed to create request", err)
	}
	req = req.WithContext(ctx)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewFetch(pageURL, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetchStatus(pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFetch(pageURL, "failed to read response body", err)
	}

	utf8Body, err := helpers.DecodeToUTF8(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.NewFetch(pageURL, "failed to decode response body", err)
	}

	return utf8Body, nil
}
