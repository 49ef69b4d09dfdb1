package ports

import "context"

// PageFetcher downloads one source page and returns its visible text.
// Implementations apply a bounded per-fetch timeout; a network error,
// timeout or non-success status is returned as an error and terminates
// only that page's task.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}
