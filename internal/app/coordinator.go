// Package app contains the orchestration layer: the ingestion coordinator
// that fans out over source URLs and the runner that drives whole batches.
package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
	"github.com/tnt-robotics/sponsorscout/internal/extract"
	"github.com/tnt-robotics/sponsorscout/internal/ledger"
	"github.com/tnt-robotics/sponsorscout/internal/ports"
)

// Appender is the write path the coordinator routes new names through.
// *writer.Limited satisfies this interface.
type Appender interface {
	Append(ctx context.Context, entry domain.Entry) error
}

// Coordinator drives the per-URL pipeline: fetch, extract, filter against
// the ledger, write. Each source URL gets its own task; all tasks run
// concurrently with no bound other than the writer's single write slot.
type Coordinator struct {
	fetcher   ports.PageFetcher
	extractor *extract.Extractor
	writer    Appender
	logger    ports.Logger

	now func() time.Time
}

// NewCoordinator creates a coordinator with the given dependencies.
func NewCoordinator(fetcher ports.PageFetcher, extractor *extract.Extractor, writer Appender, logger ports.Logger) *Coordinator {
	return &Coordinator{
		fetcher:   fetcher,
		extractor: extractor,
		writer:    writer,
		logger:    logger,
		now:       time.Now,
	}
}

// Run processes every URL in the batch concurrently and aggregates the
// per-URL outcomes into a batch summary. The ledger must be seeded before
// Run is called. A failed fetch never aborts sibling URLs.
func (c *Coordinator) Run(ctx context.Context, urls []string, led *ledger.Ledger) domain.Summary {
	results := make([]domain.URLResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			results[i] = c.processURL(ctx, url, led)
			return nil
		})
	}
	// Tasks never return errors; failures are carried in their results.
	_ = g.Wait()

	var summary domain.Summary
	for _, r := range results {
		summary.Add(r)
	}
	return summary
}

// processURL walks one URL through fetch, extract, filter and write.
func (c *Coordinator) processURL(ctx context.Context, url string, led *ledger.Ledger) domain.URLResult {
	res := domain.URLResult{URL: url}

	text, err := c.fetcher.FetchText(ctx, url)
	if err != nil {
		res.Err = err
		c.logger.Warn("fetch failed", ports.String("url", url), ports.Err(err))
		return res
	}

	candidates := c.extractor.Candidates(text)
	res.Candidates = len(candidates)

	for _, name := range candidates {
		// Reserve makes the check-then-write sequence atomic per name:
		// of N concurrent tasks discovering the same candidate, exactly
		// one reaches the store.
		if !led.Reserve(name) {
			res.Duplicates++
			continue
		}

		entry := domain.Entry{Name: name, DiscoveredAt: c.now()}
		if err := c.writer.Append(ctx, entry); err != nil {
			led.Release(name)
			res.WriteFails++
			c.logger.Warn("dropping name for this run",
				ports.String("name", name), ports.Err(err))
			continue
		}

		led.Commit(name)
		res.Added++
		c.logger.Info("recorded new name",
			ports.String("name", name), ports.String("url", url))
	}

	return res
}
