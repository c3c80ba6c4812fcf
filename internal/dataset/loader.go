// Package dataset turns the published JSON documents into immutable snapshots
// for one screen load. It owns the read-through cache in front of the source.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"gastos/internal/cache"
	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/metrics"
	"gastos/internal/source"
)

var (
	// ErrMissingID is returned by LoadDetail for an empty identifier.
	ErrMissingID = errors.New("missing legislator id")
	// ErrNotFound is returned by LoadDetail when no roster record matches.
	ErrNotFound = errors.New("legislator not found")
)

// Object kinds, used as metric labels.
const (
	kindRoster   = "roster"
	kindMetadata = "metadata"
	kindDetail   = "detail"
)

const DefaultFetchTimeout = 10 * time.Second

type (
	// RosterSnapshot is everything the roster screen needs.
	RosterSnapshot struct {
		// Roster is sorted by year spend, highest first.
		Roster   []core.LegislatorSummary
		Metadata *core.DatasetMetadata // nil when unavailable
		Facets   core.Facets
	}

	// DetailSnapshot is everything the detail screen needs.
	DetailSnapshot struct {
		Legislator core.LegislatorSummary
		Detail     core.LegislatorDetail
		Metadata   *core.DatasetMetadata // nil when unavailable
	}

	// Object is a decoded dataset document as held in the cache.
	Object struct {
		Roster   []core.LegislatorSummary
		Metadata *core.DatasetMetadata
		Detail   *core.LegislatorDetail
	}

	Option func(*Loader)
)

// Loader reads and decodes dataset objects. Decoded objects are shared
// between requests and must not be mutated.
type Loader struct {
	src     source.Reader
	cache   cache.Cache[Object]
	timeout time.Duration
	logger  *log.Logger
	group   singleflight.Group
	gen     atomic.Uint64
}

func WithCache(c cache.Cache[Object]) Option { return func(l *Loader) { l.cache = c } }

func WithFetchTimeout(d time.Duration) Option { return func(l *Loader) { l.timeout = d } }

func WithLogger(logger *log.Logger) Option { return func(l *Loader) { l.logger = logger } }

func New(src source.Reader, opts ...Option) *Loader {
	l := &Loader{src: src, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.New(log.DefaultConfig())
	}
	l.logger = l.logger.WithComponent(log.ComponentDataset)
	return l
}

// Source describes where objects are read from.
func (l *Loader) Source() string { return source.Describe(l.src) }

// LoadRoster fetches the roster and the metadata concurrently and waits for
// both. Metadata failures are soft and leave Metadata nil.
func (l *Loader) LoadRoster(ctx context.Context) (RosterSnapshot, error) {
	var (
		roster []core.LegislatorSummary
		meta   *core.DatasetMetadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = l.Roster(gctx)
		return err
	})
	g.Go(func() error {
		meta = l.Metadata(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.DatasetHardFailures.WithLabelValues(kindRoster).Inc()
		l.logger.ErrorContext(ctx, "Failed to load roster",
			log.NewFields().WithError(err).WithOperation(log.OpList).WithResource(l.Source(), source.RosterObject).ToSlice()...)
		return RosterSnapshot{}, fmt.Errorf("load roster: %w", err)
	}

	sorted := core.SortBySpend(roster)
	return RosterSnapshot{
		Roster:   sorted,
		Metadata: meta,
		Facets:   core.DeriveFacets(sorted),
	}, nil
}

// LoadDetail resolves rawID against the roster and fetches its detail
// document. Metadata is fetched alongside on a best-effort basis and is
// returned even when the error is not ErrMissingID.
func (l *Loader) LoadDetail(ctx context.Context, rawID string) (DetailSnapshot, error) {
	if rawID == "" {
		return DetailSnapshot{}, ErrMissingID
	}

	var (
		snap DetailSnapshot
		meta *core.DatasetMetadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meta = l.Metadata(ctx)
		return nil
	})
	g.Go(func() error {
		roster, err := l.Roster(gctx)
		if err != nil {
			return err
		}
		rec, ok := core.FindByID(roster, rawID)
		if !ok || !rec.ID.PathSafe() {
			return ErrNotFound
		}
		detail, err := l.Detail(gctx, rec.ID)
		if err != nil {
			return err
		}
		snap.Legislator = rec
		snap.Detail = detail
		return nil
	})
	if err := g.Wait(); err != nil {
		// Metadata is independent of the failed chain and still goes to the banner.
		if errors.Is(err, ErrNotFound) {
			l.logger.InfoContext(ctx, "Legislator not found", log.FieldLegislatorID, rawID)
			return DetailSnapshot{Metadata: meta}, err
		}
		metrics.DatasetHardFailures.WithLabelValues(kindDetail).Inc()
		l.logger.ErrorContext(ctx, "Failed to load legislator detail",
			log.NewFields().WithError(err).WithOperation(log.OpRead).WithLegislator(rawID).ToSlice()...)
		return DetailSnapshot{Metadata: meta}, fmt.Errorf("load detail %s: %w", rawID, err)
	}
	snap.Metadata = meta
	return snap, nil
}

// Roster returns the decoded roster in document order.
func (l *Loader) Roster(ctx context.Context) ([]core.LegislatorSummary, error) {
	obj, err := l.fetch(ctx, source.RosterObject, kindRoster, func(r io.Reader) (Object, error) {
		roster, skipped, err := decodeRoster(r)
		if skipped > 0 {
			l.logger.WarnContext(ctx, "Skipped roster records without id", "count", skipped)
		}
		return Object{Roster: roster}, err
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(obj.Roster), nil
}

// Metadata returns the dataset metadata or nil when it cannot be read.
func (l *Loader) Metadata(ctx context.Context) *core.DatasetMetadata {
	obj, err := l.fetch(ctx, source.MetadataObject, kindMetadata, func(r io.Reader) (Object, error) {
		meta, err := decodeMetadata(r)
		return Object{Metadata: meta}, err
	})
	if err != nil {
		if source.IsNotExist(err) {
			l.logger.DebugContext(ctx, "Metadata not published", log.FieldResource, source.MetadataObject)
		} else {
			l.logger.WarnContext(ctx, "Metadata unavailable", log.FieldError, err.Error())
		}
		return nil
	}
	meta := *obj.Metadata
	return &meta
}

// Detail returns the decoded detail document for id.
func (l *Loader) Detail(ctx context.Context, id core.ID) (core.LegislatorDetail, error) {
	if !id.PathSafe() {
		return core.LegislatorDetail{}, fmt.Errorf("detail %q: %w", id, source.ErrNotExist)
	}
	obj, err := l.fetch(ctx, source.DetailObject(id.String()), kindDetail, func(r io.Reader) (Object, error) {
		d, err := decodeDetail(r)
		return Object{Detail: d}, err
	})
	if err != nil {
		return core.LegislatorDetail{}, err
	}
	return *obj.Detail, nil
}

func (l *Loader) fetch(ctx context.Context, name, kind string, decode func(io.Reader) (Object, error)) (Object, error) {
	if l.cache != nil {
		if obj, ok := l.cache.Get(name); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return obj, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	gen := l.gen.Load()
	ch := l.group.DoChan(name, func() (any, error) {
		// Shared by every waiter, so it must outlive the first caller.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		obj, err := l.read(fctx, name, kind, decode)
		if err == nil && l.cache != nil && l.gen.Load() == gen {
			l.cache.Set(name, obj)
			metrics.CacheEntries.Set(float64(l.cache.Size()))
		}
		return obj, err
	})

	select {
	case <-ctx.Done():
		return Object{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Object{}, res.Err
		}
		return res.Val.(Object), nil
	}
}

func (l *Loader) read(ctx context.Context, name, kind string, decode func(io.Reader) (Object, error)) (Object, error) {
	start := time.Now()
	defer func() {
		metrics.DatasetFetchDuration.WithLabelValues(kind).Observe(float64(time.Since(start).Milliseconds()))
	}()

	rc, err := l.src.Open(ctx, name)
	if err != nil {
		outcome := metrics.OutcomeError
		if source.IsNotExist(err) {
			outcome = metrics.OutcomeMissing
		}
		metrics.DatasetFetches.WithLabelValues(kind, outcome).Inc()
		return Object{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	obj, err := decode(rc)
	if err != nil {
		metrics.DatasetFetches.WithLabelValues(kind, metrics.OutcomeMalformed).Inc()
		return Object{}, fmt.Errorf("%s: %w", name, err)
	}
	metrics.DatasetFetches.WithLabelValues(kind, metrics.OutcomeOK).Inc()
	l.logger.DebugContext(ctx, "Dataset object loaded",
		log.FieldResource, name, log.FieldDuration, time.Since(start).Milliseconds())
	return obj, nil
}

// Invalidate drops one cached object by name.
func (l *Loader) Invalidate(name string) {
	l.gen.Add(1)
	l.group.Forget(name)
	if l.cache != nil {
		l.cache.Delete(name)
		metrics.CacheEntries.Set(float64(l.cache.Size()))
	}
}

// InvalidateAll drops every cached object.
func (l *Loader) InvalidateAll() int {
	l.gen.Add(1)
	for _, name := range []string{source.RosterObject, source.MetadataObject} {
		l.group.Forget(name)
	}
	if l.cache == nil {
		return 0
	}
	n := l.cache.Purge()
	metrics.CacheEntries.Set(0)
	return n
}

// Warm loads the roster and metadata into the cache.
func (l *Loader) Warm(ctx context.Context) error {
	snap, err := l.LoadRoster(ctx)
	if err != nil {
		return err
	}
	l.logger.InfoContext(ctx, "Dataset warmed",
		log.FieldRosterSize, len(snap.Roster), "metadata", snap.Metadata != nil)
	return nil
}
