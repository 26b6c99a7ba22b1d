package manifest

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"

	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/resolvers"
	"github.com/funvibe/modcore/internal/utils"
	"github.com/funvibe/modcore/internal/value"
)

// Assemble builds the module tree described by man, resolving packages
// through r. Package paths starting with a dot are taken relative to the
// manifest's directory. Specs are applied in order, so later specs override
// earlier ones. The returned root is indexed.
func Assemble(ctx context.Context, man *Manifest, r resolvers.Resolver, logger *log.Logger) (*module.Module, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	root := module.New().SetID(man.Name)

	for i, spec := range man.Modules {
		target, err := ensurePath(root, spec.Path)
		if err != nil {
			return nil, fmt.Errorf("modules[%d]: %w", i, err)
		}

		for _, pkg := range spec.Packages {
			pkg = utils.ResolveImportPath(man.Dir, pkg)
			lib, err := r.Resolve(ctx, pkg)
			if err != nil {
				return nil, fmt.Errorf("modules[%d] (%s): %w", i, spec.Path, err)
			}
			attach(target, lib, pkg, spec.Mode)
			logger.Debug("package attached", "package", pkg, "path", spec.Path, "mode", spec.Mode)
		}

		promoted := promote(target, spec.Global)
		if missing := len(spec.Global) - promoted; missing > 0 {
			logger.Warn("global functions not found", "path", spec.Path, "missing", missing)
		}

		names := maps.Keys(spec.Vars)
		slices.Sort(names)
		for _, name := range names {
			target.SetVar(name, toValue(spec.Vars[name]))
		}
	}

	root.BuildIndex()
	logger.Debug("module tree assembled", "name", man.Name, "specs", len(man.Modules))
	return root, nil
}

// ensurePath returns the module at ns under root, creating missing levels
// and copying existing ones so resolved packages are never edited.
func ensurePath(root *module.Module, ns string) (*module.Module, error) {
	if ns == "" {
		return root, nil
	}
	ref, err := module.ParseNamespaceRef(ns)
	if err != nil {
		return nil, err
	}
	cur := root
	for _, name := range ref.Names() {
		next, ok := cur.GetSubModule(name)
		if ok {
			// The level may belong to a resolved package.
			next = next.Clone()
		} else {
			next = module.New().SetID(name)
		}
		cur.SetSubModule(name, next)
		cur = next
	}
	return cur, nil
}

func attach(target, lib *module.Module, pkg string, mode Mode) {
	switch mode {
	case ModeCombine:
		target.Combine(lib)
	case ModeFlatten:
		target.CombineFlatten(lib)
	case ModeFill:
		target.FillWith(lib)
	case ModeMerge:
		target.Merge(lib)
	default:
		// Resolved modules may be shared; later specs edit only the copy.
		target.SetSubModule(utils.ExtractModuleName(pkg), lib.Clone())
	}
}

// promote moves every function on m named in names to the global namespace
// and reports how many names matched at least one function.
func promote(m *module.Module, names []string) int {
	if len(names) == 0 {
		return 0
	}
	var hashes []uint64
	found := make(map[string]bool, len(names))
	for hash, f := range m.IterFns() {
		if slices.Contains(names, f.Name) {
			hashes = append(hashes, hash)
			found[f.Name] = true
		}
	}
	for _, h := range hashes {
		m.UpdateFnNamespace(h, module.Global)
	}
	return len(found)
}

// toValue converts decoded manifest data to runtime values.
func toValue(v any) value.Dynamic {
	switch x := v.(type) {
	case string:
		return value.From(value.ImmutableString(x))
	case int:
		return value.From(int64(x))
	case []any:
		arr := make(value.Array, len(x))
		for i, el := range x {
			arr[i] = toValue(el)
		}
		return value.From(arr)
	case map[string]any:
		obj := make(value.Map, len(x))
		for k, el := range x {
			obj[k] = toValue(el)
		}
		return value.From(obj)
	}
	return value.From(v)
}
