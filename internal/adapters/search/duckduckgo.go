// Package search implements ports.SearchClient against the DuckDuckGo
// HTML endpoint.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tnt-robotics/sponsorscout/internal/ports"
)

// DefaultEndpoint is the HTML (non-JS) search endpoint.
const DefaultEndpoint = "https://html.duckduckgo.com/html/"

const userAgent = "Mozilla/5.0"

// DuckDuckGo implements ports.SearchClient by posting the query to the
// HTML endpoint and scraping result anchors from the response.
type DuckDuckGo struct {
	client   ports.HTTPClient
	endpoint string
}

// NewDuckDuckGo creates a search client. An empty endpoint means
// DefaultEndpoint; tests point it at a local server.
func NewDuckDuckGo(client ports.HTTPClient, endpoint string) *DuckDuckGo {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &DuckDuckGo{client: client, endpoint: endpoint}
}

// Search posts query and returns up to maxResults result URLs in page
// order. DuckDuckGo's own utility links are skipped.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("search %q: status %d", query, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	var results []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || !strings.HasPrefix(href, "http") {
			return true
		}
		if u, err := url.Parse(href); err != nil || strings.Contains(u.Host, "duckduckgo.com") {
			return true
		}
		results = append(results, href)
		return maxResults <= 0 || len(results) < maxResults
	})
	return results, nil
}
