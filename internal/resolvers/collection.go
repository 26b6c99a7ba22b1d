package resolvers

import (
	"context"
	"errors"

	"github.com/funvibe/modcore/internal/module"
)

// CollectionResolver asks each resolver in order; the first hit wins. A
// resolver failing for any reason other than ErrModuleNotFound stops the
// search.
type CollectionResolver struct {
	resolvers []Resolver
}

func NewCollectionResolver(resolvers ...Resolver) *CollectionResolver {
	return &CollectionResolver{resolvers: resolvers}
}

// Push appends r, giving it the lowest priority.
func (c *CollectionResolver) Push(r Resolver) *CollectionResolver {
	c.resolvers = append(c.resolvers, r)
	return c
}

func (c *CollectionResolver) Len() int { return len(c.resolvers) }

func (c *CollectionResolver) Resolve(ctx context.Context, path string) (*module.Module, error) {
	for _, r := range c.resolvers {
		m, err := r.Resolve(ctx, path)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrModuleNotFound) {
			return nil, err
		}
	}
	return nil, notFound(path)
}
