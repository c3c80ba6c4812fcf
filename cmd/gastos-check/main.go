// Command gastos-check loads the configured dataset the way the server does
// and reports every legislator whose detail document cannot be served.
// It exits non-zero when the roster or any detail fails.
package main

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"gastos/internal/backend"
	"gastos/internal/cache"
	"gastos/internal/cli"
	"gastos/internal/dataset"
	"gastos/internal/log"
)

const checkConcurrency = 8

func main() {
	logger := cli.SetupLogger("info", false)
	cli.LoadEnvFile(logger)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel, cfg.LogFormat == "json")

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	ctx := context.Background()
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize dataset source", log.FieldError, err)
		os.Exit(1)
	}
	if res.Cleanup != nil {
		defer res.Cleanup()
	}

	// Roster and metadata stay hot; details pass through.
	loader := dataset.New(res.Reader,
		dataset.WithCache(cache.NewLRUCache[dataset.Object](4*checkConcurrency, 0)),
		dataset.WithFetchTimeout(cfg.FetchTimeout),
		dataset.WithLogger(logger.WithComponent(log.ComponentDataset)))

	start := time.Now()
	snap, err := loader.LoadRoster(ctx)
	if err != nil {
		logger.Error("Roster unavailable", log.FieldError, err, log.FieldSource, loader.Source())
		os.Exit(1)
	}
	if snap.Metadata == nil {
		logger.Warn("Metadata unavailable, banner will be empty")
	}

	var failed, transactions atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)
	for _, l := range snap.Roster {
		id := l.ID
		g.Go(func() error {
			d, err := loader.LoadDetail(gctx, id.String())
			if err != nil {
				failed.Add(1)
				logger.Warn("Detail unavailable",
					log.NewFields().WithLegislator(id.String()).WithError(err).ToSlice()...)
				return nil
			}
			transactions.Add(int64(len(d.Detail.Transactions)))
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("Dataset check finished",
		log.FieldRosterSize, len(snap.Roster),
		"failed", failed.Load(),
		log.FieldTransactions, transactions.Load(),
		log.FieldDuration, time.Since(start).Milliseconds(),
		log.FieldSource, loader.Source())
	if failed.Load() > 0 {
		os.Exit(1)
	}
}
