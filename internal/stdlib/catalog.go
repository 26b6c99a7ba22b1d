// Package stdlib holds the built-in library packages a host can attach to
// its module tree. Most are registered through the generic module builders;
// the cty package wraps the HCL function library.
package stdlib

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"

	"github.com/funvibe/modcore/internal/ctylib"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/resolvers"
)

// PathPrefix is prepended to package names to form import paths.
const PathPrefix = "lib/"

// ErrUnknownPackage is returned by Build for names not in the catalog.
var ErrUnknownPackage = errors.New("unknown library package")

// Package is a named module builder.
type Package struct {
	Name string
	Doc  string
	// Build returns a fresh, unindexed module on every call.
	Build func() *module.Module
}

var (
	catalogMu sync.RWMutex
	catalog   = map[string]*Package{}
)

// RegisterPackage adds pkg to the catalog, replacing a package of the same
// name. It is safe to call from init functions.
func RegisterPackage(pkg *Package) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalog[pkg.Name] = pkg
}

var initPackagesOnce sync.Once

// InitPackages registers the built-in packages. Safe to call multiple times.
func InitPackages() {
	initPackagesOnce.Do(func() {
		RegisterPackage(&Package{Name: "math", Doc: "arithmetic on Int and Float", Build: buildMath})
		RegisterPackage(&Package{Name: "text", Doc: "string functions and a string builder", Build: buildText})
		RegisterPackage(&Package{Name: "array", Doc: "array helpers, ranges and vectors", Build: buildArray})
		RegisterPackage(&Package{Name: "uuid", Doc: "UUID generation and parsing", Build: buildUUID})
		RegisterPackage(&Package{Name: "cty", Doc: "the cty function library used by HCL", Build: ctylib.Module})
	})
}

// Lookup returns the package registered under name.
func Lookup(name string) (*Package, bool) {
	InitPackages()
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	pkg, ok := catalog[name]
	return pkg, ok
}

// Names returns the registered package names, sorted.
func Names() []string {
	InitPackages()
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	names := maps.Keys(catalog)
	slices.Sort(names)
	return names
}

// Build constructs the module of package name, with its id set to the
// package's import path.
func Build(name string) (*module.Module, error) {
	pkg, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPackage, name)
	}
	return pkg.Build().SetID(PathPrefix + name), nil
}

// Resolver returns a resolver serving every package under PathPrefix+name.
func Resolver(logger *log.Logger) *resolvers.StaticResolver {
	r := resolvers.NewStaticResolver(logger)
	for _, name := range Names() {
		m, err := Build(name)
		if err != nil {
			// Names only lists registered packages.
			panic(err)
		}
		r.Insert(PathPrefix+name, m)
	}
	return r
}
