package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/tnt-robotics/sponsorscout/internal/adapters/fetch"
	logAdapter "github.com/tnt-robotics/sponsorscout/internal/adapters/log"
	"github.com/tnt-robotics/sponsorscout/internal/adapters/search"
	"github.com/tnt-robotics/sponsorscout/internal/adapters/store"
	"github.com/tnt-robotics/sponsorscout/internal/app"
	"github.com/tnt-robotics/sponsorscout/internal/cliconfig"
	"github.com/tnt-robotics/sponsorscout/internal/extract"
	"github.com/tnt-robotics/sponsorscout/internal/ports"
	"github.com/tnt-robotics/sponsorscout/internal/writer"
)

const helpDescription = `
Find prospective sponsors: search the web for candidate pages, scrape them
for business names, and append every newly discovered name to the shared
lead sheet (or a local CSV/sqlite file) exactly once.

Highlights:
  - Deduplicates against the sheet's existing rows before writing.
  - One write slot, rate-limited to stay under the sheet service's quota.
  - A failed page fetch never aborts the rest of the batch.
`

var exampleUsage = strings.TrimSpace(`
  sponsorscout --query "robotics team sponsors wisconsin" --store csv --store-path leads.csv
  sponsorscout --config $HOME/.sponsorscout/config.toml --store sheet --auth-key <api-key>
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "sponsorscout",
		Short:   "Scrape the web for new sponsor leads and record each exactly once",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.sponsorscout/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logCfg := cfg
			if len(logCfg.AuthKey) > 0 {
				logCfg.AuthKey = "*****"
			}
			log.Info().Interface("config", logCfg).Msg("configuration")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				log.Info().Msg("received signal, stopping...")
				cancel()
			}()

			logger := logAdapter.NewZerologAdapterWithLogger(log)

			if cfg.Once {
				runner, closeStore, err := buildRunner(cfg, logger)
				if err != nil {
					return err
				}
				defer closeStore()
				_, err = runner.RunOnce(ctx)
				return err
			}

			return runScheduled(ctx, cfg, cfgFile, changed, logger, log)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sponsorscout/config.toml)")
	root.Flags().StringSliceVar(&cfg.Queries, "query", cfg.Queries, "search query (repeatable)")
	root.Flags().IntVar(&cfg.MaxResults, "max-results", cfg.MaxResults, "maximum URLs per query")

	root.Flags().StringVar(&cfg.Store, "store", cfg.Store, "store backend: csv, sheet or sqlite")
	root.Flags().StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "csv/sqlite store file path")
	root.Flags().StringVar(&cfg.ServiceURL, "service-url", cfg.ServiceURL, "sheet service base URL")
	root.Flags().StringVar(&cfg.AuthKey, "auth-key", cfg.AuthKey, "API key for the sheet service")

	root.Flags().IntVar(&cfg.RatePerMinute, "rate", cfg.RatePerMinute, "maximum store writes per minute")
	root.Flags().IntVar(&cfg.WriteRetries, "retries", cfg.WriteRetries, "write attempts per name")
	root.Flags().DurationVar(&cfg.RetryDelay, "retry-delay", cfg.RetryDelay, "delay between write attempts")
	root.Flags().DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "per-page fetch timeout")
	root.Flags().IntVar(&cfg.FragmentLimit, "fragment-limit", cfg.FragmentLimit, "max text fragment length considered by the extractor")

	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "run one batch and exit")
	root.Flags().DurationVar(&cfg.Interval, "interval", cfg.Interval, "re-run period when not --once")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("sponsorscout")
		os.Exit(1)
	}
}

// buildRunner wires the pipeline from configuration. The returned close
// function releases the store backend's resources.
func buildRunner(cfg cliconfig.Config, logger ports.Logger) (*app.Runner, func(), error) {
	rowStore, closeStore, err := buildStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	fetcher := fetch.NewPageFetcher(httpClient, cfg.FetchTimeout)
	searcher := search.NewDuckDuckGo(httpClient, "")
	extractor := extract.New(cfg.FragmentLimit)

	limited := writer.NewLimited(rowStore, cfg.RatePerMinute, writer.RetryPolicy{
		MaxAttempts: cfg.WriteRetries,
		Delay:       cfg.RetryDelay,
	}, logger)

	coord := app.NewCoordinator(fetcher, extractor, limited, logger)
	runner := app.NewRunner(app.RunnerConfig{
		Queries:    cfg.Queries,
		MaxResults: cfg.MaxResults,
	}, searcher, rowStore, coord, logger)

	return runner, closeStore, nil
}

// buildStore selects the persisted store backend.
func buildStore(cfg cliconfig.Config) (ports.RowStore, func(), error) {
	switch cfg.Store {
	case cliconfig.StoreCSV:
		return store.NewCSVStore(cfg.StorePath), func() {}, nil
	case cliconfig.StoreSQLite:
		s, err := store.OpenSQLiteStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case cliconfig.StoreSheet:
		client := &http.Client{Timeout: 30 * time.Second}
		return store.NewHTTPSheetStore(client, cfg.ServiceURL, cfg.AuthKey), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// runScheduled re-runs the pipeline every interval, reloading the config
// file between runs when the watcher reports a change. A fresh ledger is
// seeded each run, so names that failed to write get re-attempted.
func runScheduled(ctx context.Context, cfg cliconfig.Config, cfgFile string, changed map[string]bool, logger ports.Logger, log zerolog.Logger) error {
	var watcher *cliconfig.Watcher
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		watcher = cliconfig.NewWatcher(cfgFile)
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		runner, closeStore, err := buildRunner(cfg, logger)
		if err != nil {
			return err
		}
		if _, err := runner.RunOnce(ctx); err != nil {
			closeStore()
			return err
		}
		closeStore()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if watcher == nil {
			continue
		}
		select {
		case <-watcher.C:
			log.Info().Str("path", cfgFile).Msg("config changed, reloading")
			next := cliconfig.DefaultConfig()
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				log.Warn().Err(err).Msg("config reload failed, keeping previous")
				continue
			}
			if err := cliconfig.ApplyFileConfig(&next, fc, changed); err != nil {
				log.Warn().Err(err).Msg("config reload failed, keeping previous")
				continue
			}
			if err := cliconfig.ApplyEnvConfig(&next, changed); err != nil {
				log.Warn().Err(err).Msg("config reload failed, keeping previous")
				continue
			}
			next.Once = cfg.Once
			if err := next.Validate(); err != nil {
				log.Warn().Err(err).Msg("config reload invalid, keeping previous")
				continue
			}
			cfg = next
		default:
		}
	}
}
