package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/resolvers"
	"github.com/funvibe/modcore/internal/utils"
)

// ErrImportCycle is returned when manifests import each other.
var ErrImportCycle = errors.New("import cycle")

// FileResolver resolves a path to the manifest <Base>/<path>.{yaml,yml,hcl}
// and assembles it, pulling packages from Libs. Paths that already carry a
// manifest extension are used as is. Libs may include the FileResolver
// itself so manifests can import each other. Wrap it with resolvers.Cached
// to assemble each file once.
type FileResolver struct {
	Base   string
	Libs   resolvers.Resolver
	Logger *log.Logger
}

type importStackKey struct{}

func (f *FileResolver) Resolve(ctx context.Context, p string) (*module.Module, error) {
	exts := config.ManifestExtensions
	if config.HasManifestExt(p) {
		exts = []string{""}
	}
	for _, ext := range exts {
		candidate := filepath.Join(f.Base, filepath.FromSlash(p)+ext)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}

		ctx, err := enterImport(ctx, candidate)
		if err != nil {
			return nil, &resolvers.ResolveError{Path: p, Err: err}
		}
		man, err := LoadManifest(candidate)
		if err != nil {
			return nil, &resolvers.ResolveError{Path: p, Err: err}
		}
		if man.Name == "" {
			man.Name = utils.ExtractModuleName(p)
		}
		return Assemble(ctx, man, f.Libs, f.Logger)
	}
	return nil, &resolvers.ResolveError{Path: p, Err: resolvers.ErrModuleNotFound}
}

// enterImport records file on the chain of manifests being assembled.
func enterImport(ctx context.Context, file string) (context.Context, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return ctx, err
	}
	stack, _ := ctx.Value(importStackKey{}).([]string)
	if slices.Contains(stack, abs) {
		return ctx, fmt.Errorf("%w: %s", ErrImportCycle, strings.Join(append(stack, abs), " -> "))
	}
	return context.WithValue(ctx, importStackKey{}, append(slices.Clone(stack), abs)), nil
}
