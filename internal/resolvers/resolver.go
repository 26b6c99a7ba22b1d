// Package resolvers maps import paths to modules.
//
// A host registers prepared module trees with a StaticResolver, stacks
// several sources with a CollectionResolver, or wraps a loader with Cached
// so each path is built once.
package resolvers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/funvibe/modcore/internal/module"
)

// ErrModuleNotFound is returned, wrapped in a *ResolveError, when no module
// is registered under the requested path.
var ErrModuleNotFound = errors.New("module not found")

// ErrNilModule is returned, wrapped in a *ResolveError, when a source
// reports success without a module.
var ErrNilModule = errors.New("resolver returned no module")

// Resolver finds the module for an import path. Returned modules are
// indexed.
type Resolver interface {
	Resolve(ctx context.Context, path string) (*module.Module, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, path string) (*module.Module, error)

func (f ResolverFunc) Resolve(ctx context.Context, path string) (*module.Module, error) {
	return f(ctx, path)
}

// ResolveError records the path whose resolution failed.
type ResolveError struct {
	Path string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Path, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

func notFound(path string) error {
	return &ResolveError{Path: path, Err: ErrModuleNotFound}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
