package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"gastos/internal/backend"
	"gastos/internal/cache"
	"gastos/internal/cli"
	"gastos/internal/dataset"
	apphttp "gastos/internal/http"
	"gastos/internal/log"
	"gastos/internal/source/dir"
	"gastos/internal/watch"
	"gastos/internal/worker"
)

func main() {
	bootstrap := cli.SetupLogger("info", false)
	cli.LoadEnvFile(bootstrap)
	cfg := cli.LoadAndValidateConfig(bootstrap)

	logger := cli.SetupLogger(cfg.LogLevel, cfg.LogFormat == "json")
	logger.Info("Starting gastos server", "port", cfg.Port, "source", cfg.DataSource)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger)
	res, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize dataset source", log.FieldError, err, "source", cfg.DataSource)
		os.Exit(1)
	}

	objects := cache.NewLRUCache[dataset.Object](cfg.CacheMaxEntries, cfg.CacheTTL)
	cacheManager := cache.NewManager(logger.WithComponent(log.ComponentCache).Logger)
	cacheManager.Register(objects)
	if cfg.CacheTTL > 0 {
		cacheManager.StartCleanup(max(cfg.CacheTTL, time.Minute))
	}

	loader := dataset.New(res.Reader,
		dataset.WithCache(objects),
		dataset.WithFetchTimeout(cfg.FetchTimeout),
		dataset.WithLogger(logger.WithComponent(log.ComponentDataset)),
	)

	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	if err := loader.Warm(warmCtx); err != nil {
		// Not fatal: the pipeline may publish the dataset after startup.
		logger.Warn("Dataset not available at startup", log.FieldError, err, log.FieldSource, loader.Source())
	}
	warmCancel()

	var stopWatch func()
	if src, ok := res.Reader.(*dir.Source); ok && cfg.WatchDataDir {
		stopWatch, err = watch.Watch(src, loader, logger)
		if err != nil {
			logger.Warn("Dataset watcher disabled", log.FieldError, err)
		}
	}

	var refresher *worker.RefreshWorker
	if cfg.RefreshSchedule != "" {
		refresher = worker.NewRefreshWorker(loader, logger, cfg.FetchTimeout*3)
		if err := refresher.Start(cfg.RefreshSchedule); err != nil {
			logger.Error("Failed to schedule dataset refresh", log.FieldError, err)
			os.Exit(1)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, loader, apphttp.Options{
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestTimeout:     cfg.FetchTimeout + 5*time.Second,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		if refresher != nil {
			refresher.Stop(shutdownCtx)
		}
		if stopWatch != nil {
			stopWatch()
		}
		cacheManager.Stop()
		if res.Cleanup != nil {
			if err := res.Cleanup(); err != nil {
				logger.Warn("Backend cleanup error", log.FieldError, err)
			}
		}
	})

	logger.Info("Listening", "addr", srv.Addr, log.FieldSource, loader.Source())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
