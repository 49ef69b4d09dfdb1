package ports

import "context"

// SearchClient issues a free-text query against a web search engine and
// returns an ordered list of result URLs, at most maxResults long.
// Result ordering is used for prioritization only, never for correctness.
type SearchClient interface {
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}
