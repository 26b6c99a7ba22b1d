package module

import (
	"slices"

	"golang.org/x/exp/maps"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/hashing"
	"github.com/funvibe/modcore/internal/value"
)

type flatTables struct {
	variables map[uint64]value.Dynamic
	functions map[uint64]CallableFunction
	iterators map[value.TypeID]IteratorFn
}

// BuildIndex flattens the tree under m into the qualified lookup tables.
// It does nothing when m is already indexed; otherwise all three tables are
// rebuilt from scratch.
func (m *Module) BuildIndex() *Module {
	if m.indexed {
		return m
	}

	flat := flatTables{
		variables: make(map[uint64]value.Dynamic, 16),
		functions: make(map[uint64]CallableFunction, defaultFlatFnCapacity),
		iterators: make(map[value.TypeID]IteratorFn, 16),
	}
	qualifiers := make([]string, 0, 4)
	qualifiers = append(qualifiers, config.RootQualifier)
	indexModule(m, qualifiers, &flat)

	m.allVariables = flat.variables
	m.allFunctions = flat.functions
	m.allIterators = flat.iterators
	m.indexed = true

	getLogger().Debug("module indexed",
		"id", m.id,
		"variables", len(flat.variables),
		"functions", len(flat.functions),
		"iterators", len(flat.iterators))
	return m
}

// indexModule visits sub-modules first, in name order, so entries of the
// current node override those collected below it.
func indexModule(m *Module, qualifiers []string, flat *flatTables) {
	names := maps.Keys(m.modules)
	slices.Sort(names)
	for _, name := range names {
		indexModule(m.modules[name], append(qualifiers, name), flat)
	}

	for name, v := range m.variables {
		flat.variables[hashing.HashVar(qualifiers, name)] = v
	}

	for typ, fn := range m.iterators {
		flat.iterators[typ] = fn
	}

	for hash, f := range m.functions {
		if f.Access.IsPrivate() {
			continue
		}
		if f.Namespace.IsGlobal() {
			flat.functions[hash] = f.Func
		}

		qualified := hashing.HashScript(qualifiers, f.Name, f.Params)
		if f.Func.IsScript() {
			// Script functions have no static argument types to fold in.
			flat.functions[qualified] = f.Func
			continue
		}
		if f.Params != len(f.ParamTypes) {
			panic("module: native function " + f.Name + " has mismatched arity and parameter types")
		}
		flat.functions[hashing.Combine(qualified, hashing.HashNativeArgs(f.Name, f.ParamTypes))] = f.Func
	}
}
