package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"gastos/internal/log"
	"gastos/internal/metrics"
)

// Refresher is the slice of the dataset loader the worker drives.
type Refresher interface {
	InvalidateAll() int
	Warm(ctx context.Context) error
}

// RefreshWorker drops cached dataset objects on a cron schedule and warms the
// roster again, so remote sources are picked up after the pipeline publishes.
type RefreshWorker struct {
	loader  Refresher
	logger  *log.Logger
	timeout time.Duration
	cron    *cron.Cron
}

func NewRefreshWorker(loader Refresher, logger *log.Logger, timeout time.Duration) *RefreshWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger = logger.WithComponent(log.ComponentWorker)
	cl := cronLogger{logger: logger}
	return &RefreshWorker{
		loader:  loader,
		logger:  logger,
		timeout: timeout,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Start schedules the refresh with a standard five-field cron expression or
// a descriptor such as "@hourly".
func (w *RefreshWorker) Start(schedule string) error {
	if _, err := w.cron.AddFunc(schedule, w.runScheduled); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", schedule, err)
	}
	w.cron.Start()
	w.logger.Info("Refresh worker started", "schedule", schedule)
	return nil
}

// Stop waits for a running refresh to finish or ctx to expire.
func (w *RefreshWorker) Stop(ctx context.Context) {
	select {
	case <-w.cron.Stop().Done():
		w.logger.Info("Refresh worker stopped")
	case <-ctx.Done():
		w.logger.Warn("Refresh worker stop timed out")
	}
}

// Next returns the next scheduled run, zero when nothing is scheduled.
func (w *RefreshWorker) Next() time.Time {
	entries := w.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (w *RefreshWorker) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	_ = w.Refresh(ctx)
}

// Refresh invalidates the cache and warms it again.
func (w *RefreshWorker) Refresh(ctx context.Context) error {
	start := time.Now()
	dropped := w.loader.InvalidateAll()
	metrics.CacheInvalidations.WithLabelValues("schedule").Inc()

	if err := w.loader.Warm(ctx); err != nil {
		metrics.RefreshRuns.WithLabelValues("error").Inc()
		w.logger.ErrorContext(ctx, "Dataset refresh failed",
			log.NewFields().WithError(err).WithOperation(log.OpRefresh).ToSlice()...)
		return fmt.Errorf("refresh dataset: %w", err)
	}

	metrics.RefreshRuns.WithLabelValues("ok").Inc()
	w.logger.InfoContext(ctx, "Dataset refreshed",
		"dropped", dropped, log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

// cronLogger adapts the structured logger to cron.Logger.
type cronLogger struct {
	logger *log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.logger.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.logger.Error("cron: "+msg, append([]any{log.FieldError, err}, keysAndValues...)...)
}
