// Package fetch implements ports.PageFetcher over plain HTTP.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tnt-robotics/sponsorscout/internal/ports"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

const defaultUserAgent = "Mozilla/5.0"

// PageFetcher implements ports.PageFetcher using HTTP GET and goquery
// text extraction.
type PageFetcher struct {
	client    ports.HTTPClient
	timeout   time.Duration
	userAgent string
}

// NewPageFetcher creates a fetcher with the given HTTP client and
// per-fetch timeout. A zero timeout means DefaultTimeout.
func NewPageFetcher(client ports.HTTPClient, timeout time.Duration) *PageFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PageFetcher{
		client:    client,
		timeout:   timeout,
		userAgent: defaultUserAgent,
	}
}

// FetchText downloads url and returns the page's visible text. Script,
// style and noscript content is stripped before text extraction.
func (f *PageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}
	doc.Find("script, style, noscript").Remove()

	return doc.Text(), nil
}
