package resolvers

import (
	"context"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"

	"github.com/funvibe/modcore/internal/module"
)

// StaticResolver serves a fixed set of modules keyed by path.
//
// Thread-safe: modules are usually inserted at startup and resolved from
// many goroutines afterwards.
type StaticResolver struct {
	mu      sync.RWMutex
	modules map[string]*module.Module
	logger  *log.Logger
}

// NewStaticResolver returns an empty resolver. logger may be nil.
func NewStaticResolver(logger *log.Logger) *StaticResolver {
	return &StaticResolver{
		modules: make(map[string]*module.Module),
		logger:  orDiscard(logger),
	}
}

// Insert registers m under path, replacing any previous module. m is
// indexed before it becomes visible.
func (r *StaticResolver) Insert(path string, m *module.Module) {
	m.BuildIndex()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[path]; ok {
		r.logger.Debug("replacing module", "path", path)
	}
	r.modules[path] = m
}

// Remove unregisters path and returns the module it held.
func (r *StaticResolver) Remove(path string) (*module.Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[path]
	delete(r.modules, path)
	return m, ok
}

func (r *StaticResolver) Contains(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modules[path]
	return ok
}

// Paths returns the registered paths, sorted.
func (r *StaticResolver) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := maps.Keys(r.modules)
	slices.Sort(paths)
	return paths
}

func (r *StaticResolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}

// Clear removes all modules.
func (r *StaticResolver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = make(map[string]*module.Module)
}

func (r *StaticResolver) Resolve(ctx context.Context, path string) (*module.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	m, ok := r.modules[path]
	r.mu.RUnlock()
	if !ok {
		return nil, notFound(path)
	}
	return m, nil
}
