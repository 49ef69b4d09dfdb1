package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
	"github.com/tnt-robotics/sponsorscout/internal/ledger"
	"github.com/tnt-robotics/sponsorscout/internal/ports"
)

// RunnerConfig contains configuration for a pipeline run.
type RunnerConfig struct {
	Queries    []string
	MaxResults int
}

// Runner drives one complete batch: seed the ledger from the store, gather
// source URLs from the search collaborator, then hand the batch to the
// coordinator. A fresh ledger is seeded per run, so names that failed to
// write in an earlier run are naturally re-attempted.
type Runner struct {
	config RunnerConfig
	search ports.SearchClient
	store  ports.RowStore
	coord  *Coordinator
	logger ports.Logger
}

// NewRunner creates a runner with the given dependencies.
func NewRunner(config RunnerConfig, search ports.SearchClient, store ports.RowStore, coord *Coordinator, logger ports.Logger) *Runner {
	return &Runner{
		config: config,
		search: search,
		store:  store,
		coord:  coord,
		logger: logger,
	}
}

// RunOnce executes one full pipeline run. It returns an error only for
// fatal startup conditions (the store cannot be read or created); fetch
// and write failures are reported in the summary and logged as they occur.
func (r *Runner) RunOnce(ctx context.Context) (domain.Summary, error) {
	led, err := r.seedLedger(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	urls := r.gatherURLs(ctx)
	if len(urls) == 0 {
		r.logger.Info("no source URLs found")
		return domain.Summary{}, nil
	}

	summary := r.coord.Run(ctx, urls, led)
	r.logger.Info("run complete",
		ports.Int("urls", summary.URLs),
		ports.Int("failed", summary.Failed),
		ports.Int("added", summary.Added),
		ports.Int("duplicates", summary.Duplicates),
		ports.Int("write_failures", summary.WriteFails),
	)
	return summary, nil
}

// seedLedger reads the store's current contents into a fresh ledger,
// creating the store with its header row if it does not exist yet. This
// is the ordering barrier: no concurrent work starts until it completes.
func (r *Runner) seedLedger(ctx context.Context) (*ledger.Ledger, error) {
	entries, err := r.store.ReadAll(ctx)
	if errors.Is(err, domain.ErrStoreMissing) {
		r.logger.Info("store missing, initializing with header")
		if err := r.store.Reset(ctx); err != nil {
			return nil, fmt.Errorf("%w: reset: %v", domain.ErrStoreInit, err)
		}
		entries = nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreInit, err)
	}

	led := ledger.New()
	led.Seed(entries)
	r.logger.Info("ledger seeded", ports.Int("names", led.Len()))
	return led, nil
}

// gatherURLs runs every configured query and merges the results, keeping
// first-seen order and dropping URLs repeated across queries. A failed
// query is logged and skipped; search is best effort.
func (r *Runner) gatherURLs(ctx context.Context) []string {
	seen := make(map[string]struct{})
	var urls []string

	for _, q := range r.config.Queries {
		found, err := r.search.Search(ctx, q, r.config.MaxResults)
		if err != nil {
			r.logger.Warn("search failed", ports.String("query", q), ports.Err(err))
			continue
		}
		r.logger.Info("search complete",
			ports.String("query", q), ports.Int("results", len(found)))
		for _, u := range found {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}
	return urls
}
