// Package snapshot keeps an in-process copy of a whole entity collection,
// refetched in full after every successful mutation.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/internal/metrics"
)

// Cache is a shared store for collection snapshots, typically Redis
type Cache interface {
	Load(ctx context.Context, key string, dst interface{}) (bool, error)
	Store(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Loader fetches the full collection from the store
type Loader[T any] func(ctx context.Context) ([]T, error)

// Options configure a Collection
type Options struct {
	// Cache is optional
	Cache    Cache
	CacheKey string
	// TTL bounds how long a snapshot is served without refetching. Zero disables expiry.
	TTL     time.Duration
	Metrics *metrics.Metrics
}

// Collection is a read-through snapshot of every entity of one kind.
// Readers never observe a partially applied mutation.
type Collection[T any] struct {
	name string
	load Loader[T]
	opts Options
	now  func() time.Time

	// mutateMu serializes mutations so each refetch reflects its own write.
	// Readers hold it while installing what they loaded.
	mutateMu sync.Mutex

	mu        sync.RWMutex
	items     []T
	loaded    bool
	fetchedAt time.Time
	// gen advances on every invalidation
	gen uint64
}

// New creates an empty collection
func New[T any](name string, load Loader[T], opts Options) *Collection[T] {
	return &Collection[T]{
		name: name,
		load: load,
		opts: opts,
		now:  time.Now,
	}
}

// Snapshot returns a copy of the current items, loading them when the
// snapshot is missing or stale
func (c *Collection[T]) Snapshot(ctx context.Context) ([]T, error) {
	if items, ok := c.fresh(); ok {
		return items, nil
	}
	gen := c.generation()

	if c.opts.Cache != nil && c.opts.CacheKey != "" {
		var shared []T
		hit, err := c.opts.Cache.Load(ctx, c.opts.CacheKey, &shared)
		if err != nil {
			log.Warn().Err(err).Str("collection", c.name).Msg("Failed to read shared snapshot")
		}
		if hit {
			c.count(metrics.SnapshotCacheHits)
			c.mutateMu.Lock()
			c.install(gen, shared)
			c.mutateMu.Unlock()
			return clone(shared), nil
		}
		c.count(metrics.SnapshotMisses)
	}

	return c.refresh(ctx, gen)
}

// Refresh refetches the whole collection. On failure the previous snapshot is kept.
func (c *Collection[T]) Refresh(ctx context.Context) ([]T, error) {
	return c.refresh(ctx, c.generation())
}

// refresh loads the collection and installs it unless it was invalidated
// after gen was read. A load that raced a mutation is returned to its
// caller but never replaces the mutation's refetch.
func (c *Collection[T]) refresh(ctx context.Context, gen uint64) ([]T, error) {
	items, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mutateMu.Lock()
	c.publish(ctx, gen, items)
	c.mutateMu.Unlock()
	return clone(items), nil
}

// Mutate runs op against the store. When op fails the snapshot is left
// untouched and the error returned. When it succeeds the snapshot is
// invalidated and refetched; a failed refetch is logged and leaves the
// snapshot unloaded so the next read goes back to the store.
func (c *Collection[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) error {
	c.mutateMu.Lock()
	defer c.mutateMu.Unlock()

	if err := op(ctx); err != nil {
		return err
	}

	c.Invalidate(ctx)
	gen := c.generation()

	items, err := c.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Str("collection", c.name).Msg("Failed to refresh snapshot after mutation")
		return nil
	}
	c.publish(ctx, gen, items)
	return nil
}

// Invalidate drops the in-process and shared snapshots
func (c *Collection[T]) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	c.gen++
	c.mu.Unlock()

	if c.opts.Cache != nil && c.opts.CacheKey != "" {
		if err := c.opts.Cache.Invalidate(ctx, c.opts.CacheKey); err != nil {
			log.Warn().Err(err).Str("collection", c.name).Msg("Failed to invalidate shared snapshot")
		}
	}
}

func (c *Collection[T]) fetch(ctx context.Context) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	c.count(metrics.SnapshotRefreshes)
	return items, nil
}

// publish installs items in process and in the shared cache. The caller holds mutateMu.
func (c *Collection[T]) publish(ctx context.Context, gen uint64, items []T) {
	if !c.install(gen, items) {
		return
	}
	if c.opts.Cache != nil && c.opts.CacheKey != "" {
		if err := c.opts.Cache.Store(ctx, c.opts.CacheKey, items, c.opts.TTL); err != nil {
			log.Warn().Err(err).Str("collection", c.name).Msg("Failed to store shared snapshot")
		}
	}
}

func (c *Collection[T]) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Collection[T]) fresh() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return nil, false
	}
	if c.opts.TTL > 0 && c.now().Sub(c.fetchedAt) >= c.opts.TTL {
		return nil, false
	}
	return clone(c.items), true
}

// install replaces the in-process snapshot unless it was invalidated after gen was read
func (c *Collection[T]) install(gen uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		log.Debug().Str("collection", c.name).Msg("Discarding snapshot loaded before an invalidation")
		return false
	}
	c.items = clone(items)
	c.loaded = true
	c.fetchedAt = c.now()
	return true
}

func (c *Collection[T]) count(name string) {
	if c.opts.Metrics != nil {
		c.opts.Metrics.IncrementCounter(name + "." + c.name)
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
