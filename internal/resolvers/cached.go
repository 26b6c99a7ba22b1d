package resolvers

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/funvibe/modcore/internal/module"
)

// CachedResolver remembers every module its source resolves, so expensive
// loaders usually run once per path. Concurrent first requests may each
// run the source; the first result stored wins. Failures are not cached.
//
// Modules are indexed before they are cached. A source that also hands its
// modules to other readers must return them already indexed.
type CachedResolver struct {
	source Resolver
	logger *log.Logger

	mu    sync.Mutex
	cache map[string]*module.Module
}

// Cached wraps source. logger may be nil.
func Cached(source Resolver, logger *log.Logger) *CachedResolver {
	return &CachedResolver{
		source: source,
		logger: orDiscard(logger),
		cache:  make(map[string]*module.Module),
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, path string) (*module.Module, error) {
	c.mu.Lock()
	m, ok := c.cache[path]
	c.mu.Unlock()
	if ok {
		return m, nil
	}

	// The source may resolve nested paths through this cache, so the lock is
	// not held while it runs.
	m, err := c.source.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &ResolveError{Path: path, Err: ErrNilModule}
	}

	// Concurrent first requests may have been handed the same module.
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.cache[path]; ok {
		return prev, nil
	}
	m.BuildIndex()
	c.cache[path] = m
	c.logger.Debug("module loaded", "path", path, "id", m.ID())
	return m, nil
}

// Forget drops path from the cache.
func (c *CachedResolver) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, path)
}
