package module

import (
	"fmt"
	"slices"
	"strings"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/hashing"
)

// Position is a location in source text. The zero value means none.
type Position struct {
	Line   int
	Column int
}

func (p Position) IsNone() bool { return p.Line == 0 }

func (p Position) String() string {
	if p.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Ident is one qualifier of a namespace path.
type Ident struct {
	Name string
	Pos  Position
}

// NamespaceRef is a qualifier chain such as a::b::c. The qualifiers never
// change after construction. The cached scope offset speeds up repeated
// resolution of the first qualifier and is never needed for correctness.
type NamespaceRef struct {
	index int
	path  []Ident
}

// NewNamespaceRef builds a reference from at least one qualifier.
func NewNamespaceRef(path ...Ident) NamespaceRef {
	if len(path) == 0 {
		panic("module: namespace reference needs at least one qualifier")
	}
	return NamespaceRef{path: slices.Clone(path)}
}

// ParseNamespaceRef splits "a::b::c" into a reference without positions.
func ParseNamespaceRef(s string) (NamespaceRef, error) {
	parts := strings.Split(s, config.NamespaceSeparator)
	path := make([]Ident, len(parts))
	for i, p := range parts {
		if p == "" {
			return NamespaceRef{}, fmt.Errorf("invalid namespace %q: empty qualifier", s)
		}
		path[i] = Ident{Name: p}
	}
	return NewNamespaceRef(path...), nil
}

func (r NamespaceRef) Len() int { return len(r.path) }

func (r NamespaceRef) At(i int) Ident { return r.path[i] }

// Root is the first qualifier, naming the module to search.
func (r NamespaceRef) Root() Ident { return r.path[0] }

func (r NamespaceRef) Names() []string {
	names := make([]string, len(r.path))
	for i, id := range r.path {
		names[i] = id.Name
	}
	return names
}

// Index returns the cached scope offset; ok is false when nothing is cached.
func (r *NamespaceRef) Index() (offset int, ok bool) {
	if r.index == 0 {
		return 0, false
	}
	return r.index - 1, true
}

// SetIndex caches the scope offset of the root module. Recomputing it is
// always safe.
func (r *NamespaceRef) SetIndex(offset int) {
	r.index = offset + 1
}

func (r *NamespaceRef) ClearIndex() {
	r.index = 0
}

// Clone returns an independent copy, cache included.
func (r NamespaceRef) Clone() NamespaceRef {
	return NamespaceRef{index: r.index, path: slices.Clone(r.path)}
}

// FnHash is the qualified script-style hash of name/arity under r.
func (r NamespaceRef) FnHash(name string, arity int) uint64 {
	return hashing.HashScript(r.Names(), name, arity)
}

// VarHash is the qualified hash of variable name under r.
func (r NamespaceRef) VarHash(name string) uint64 {
	return hashing.HashVar(r.Names(), name)
}

func (r NamespaceRef) String() string {
	return strings.Join(r.Names(), config.NamespaceSeparator)
}

// GoString shows the qualifiers and the cached offset, if any.
func (r NamespaceRef) GoString() string {
	if off, ok := r.Index(); ok {
		return fmt.Sprintf("%s -> %d", r, off)
	}
	return r.String()
}
