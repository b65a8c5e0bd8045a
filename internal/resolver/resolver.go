// Package resolver maps free-text exercise names onto catalog entries and
// their demonstration videos, logging names it cannot match.
package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitai/plan-service/internal/apperr"
	"fitai/plan-service/internal/domain"
	"fitai/plan-service/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source tells which step of the lookup produced a Result.
type Source string

const (
	SourceCache   Source = "cache"
	SourceExact   Source = "exact"
	SourcePartial Source = "partial"
	SourceMiss    Source = "miss"
)

// Result is the outcome of resolving one name. An empty VideoURL means the
// caller supplies its own fallback; it is not an error.
type Result struct {
	ExerciseName string
	VideoURL     string
	Source       Source
	// CatalogErr is set when the catalog could not be queried and the lookup
	// was downgraded to a miss.
	CatalogErr error
	// MissLogErr is set when recording the miss failed. It never fails Resolve.
	MissLogErr error
}

// Found reports whether a video was resolved.
func (r Result) Found() bool { return r.VideoURL != "" }

const (
	defaultMissLogTimeout = 3 * time.Second
	defaultParallelism    = 4
)

// Resolver runs the cache, exact, partial and miss chain.
type Resolver struct {
	catalog        repository.ExerciseCatalog
	misses         repository.MissingExerciseLog
	cache          Cache
	logger         *zap.Logger
	missLogTimeout time.Duration
	parallelism    int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache replaces the default MapCache. A nil cache disables caching.
func WithCache(c Cache) Option {
	return func(r *Resolver) {
		if c == nil {
			r.cache = noCache{}
			return
		}
		r.cache = c
	}
}

// WithMissLogTimeout bounds each missing-exercise insert.
func WithMissLogTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.missLogTimeout = d
		}
	}
}

// WithParallelism bounds the number of concurrent lookups in ResolveAll.
func WithParallelism(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

func New(catalog repository.ExerciseCatalog, misses repository.MissingExerciseLog, logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		catalog:        catalog,
		misses:         misses,
		cache:          NewMapCache(),
		logger:         logger,
		missLogTimeout: defaultMissLogTimeout,
		parallelism:    defaultParallelism,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Normalize lowercases and trims an exercise name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve looks name up. It never returns an error: catalog failures become
// misses and a failed miss insert is reported on the Result.
func (r *Resolver) Resolve(ctx context.Context, name string) Result {
	res := Result{ExerciseName: name}
	key := Normalize(name)
	if key == "" {
		res.Source = SourceMiss
		return res
	}

	if url, ok := r.cache.Get(key); ok {
		res.VideoURL = url
		res.Source = SourceCache
		return res
	}

	entry, source, err := r.lookup(ctx, key)
	if err != nil {
		res.CatalogErr = apperr.ErrCatalogLookup.WithCause(err)
		r.logger.Warn("catalog lookup failed, treating as miss",
			zap.String("exercise", name), zap.Error(err))
	}
	if entry != nil && entry.VideoURL != "" {
		res.VideoURL = entry.VideoURL
		res.Source = source
		r.cache.Set(key, entry.VideoURL)
		return res
	}

	res.Source = SourceMiss
	res.MissLogErr = r.recordMiss(ctx, name)
	if err == nil {
		// A failed catalog query is not remembered; the next request retries it.
		r.cache.Set(key, "")
	}
	return res
}

// lookup tries an exact match, then a partial match on the first token.
// A nil entry with a nil error is a clean miss.
func (r *Resolver) lookup(ctx context.Context, key string) (*domain.Exercise, Source, error) {
	entry, err := r.catalog.FindByNameExact(ctx, key)
	if err == nil {
		return entry, SourceExact, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, SourceMiss, err
	}

	token := strings.Fields(key)[0]
	entry, err = r.catalog.FindByNameContaining(ctx, token)
	if err == nil {
		return entry, SourcePartial, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, SourceMiss, err
	}
	return nil, SourceMiss, nil
}

// recordMiss appends the original name to the missing-exercise log. The insert
// outlives a cancelled request but is bounded by missLogTimeout.
func (r *Resolver) recordMiss(ctx context.Context, name string) error {
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.missLogTimeout)
	defer cancel()

	if err := r.misses.Append(logCtx, name); err != nil {
		r.logger.Warn("failed to record missing exercise",
			zap.String("exercise", name), zap.Error(err))
		return err
	}
	r.logger.Info("exercise not in catalog", zap.String("exercise", name))
	return nil
}

// ResolveAll resolves names concurrently and returns results in input order.
// Names that normalize to the same key are looked up once, so a batch logs
// at most one miss per name.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) []Result {
	results := make([]Result, len(names))

	first := make(map[string]int, len(names))
	unique := make([]int, 0, len(names))
	for i, n := range names {
		key := Normalize(n)
		if _, seen := first[key]; !seen {
			first[key] = i
			unique = append(unique, i)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for _, i := range unique {
		i := i
		g.Go(func() error {
			results[i] = r.Resolve(gctx, names[i])
			return nil
		})
	}
	_ = g.Wait()

	for i, n := range names {
		j := first[Normalize(n)]
		if j != i {
			results[i] = results[j]
			results[i].ExerciseName = n
		}
	}
	return results
}
