package module

import (
	"slices"

	"golang.org/x/exp/maps"
)

// MergeFilter decides whether a function is copied by MergeFiltered.
type MergeFilter func(namespace FnNamespace, access FnAccess, isScript bool, name string, arity int) bool

// RetainFilter decides whether a script function survives
// RetainScriptFunctions.
type RetainFilter func(namespace FnNamespace, access FnAccess, name string, arity int) bool

// Combine copies the direct tables of other into m, overwriting on
// collision. Sub-modules are not merged: a name collision replaces the whole
// sub-tree.
func (m *Module) Combine(other *Module) *Module {
	maps.Copy(m.modules, other.modules)
	maps.Copy(m.variables, other.variables)
	maps.Copy(m.functions, other.functions)
	maps.Copy(m.iterators, other.iterators)
	m.invalidate()
	return m
}

// CombineFlatten surfaces every entry of other's tree directly on m, with no
// qualification level left. Within other, deeper entries win over shallower
// ones; the result then overwrites m like Combine. Sub-modules of other are
// read, never modified.
func (m *Module) CombineFlatten(other *Module) *Module {
	flat := NewWithCapacity(len(other.functions))
	flattenInto(flat, other)

	maps.Copy(m.variables, flat.variables)
	maps.Copy(m.functions, flat.functions)
	maps.Copy(m.iterators, flat.iterators)
	m.invalidate()
	return m
}

// flattenInto copies src's own entries into dst, then recurses into src's
// sub-modules in name order so nested entries overwrite.
func flattenInto(dst, src *Module) {
	maps.Copy(dst.variables, src.variables)
	maps.Copy(dst.functions, src.functions)
	maps.Copy(dst.iterators, src.iterators)

	names := maps.Keys(src.modules)
	slices.Sort(names)
	for _, name := range names {
		flattenInto(dst, src.modules[name])
	}
}

// FillWith inserts every entry of other that m lacks. Nothing in m is
// overwritten.
func (m *Module) FillWith(other *Module) *Module {
	for name, sub := range other.modules {
		if _, ok := m.modules[name]; !ok {
			m.modules[name] = sub
		}
	}
	for name, v := range other.variables {
		if _, ok := m.variables[name]; !ok {
			m.variables[name] = v
		}
	}
	for hash, f := range other.functions {
		if _, ok := m.functions[hash]; !ok {
			m.functions[hash] = f
		}
	}
	for typ, fn := range other.iterators {
		if _, ok := m.iterators[typ]; !ok {
			m.iterators[typ] = fn
		}
	}
	m.invalidate()
	return m
}

// Merge is MergeFiltered keeping every function.
func (m *Module) Merge(other *Module) *Module {
	return m.MergeFiltered(other, func(FnNamespace, FnAccess, bool, string, int) bool { return true })
}

// MergeFiltered merges other into m recursively. Sub-modules keep their
// nesting: each is merged through the same filter and attached under its
// original name. A sub-module m already has is copied before merging, since
// it may be shared. Variables and iterators are copied unconditionally;
// functions only when filter accepts them.
func (m *Module) MergeFiltered(other *Module, filter MergeFilter) *Module {
	for name, sub := range other.modules {
		var merged *Module
		if existing, ok := m.modules[name]; ok {
			merged = existing.Clone()
		} else {
			merged = New()
		}
		merged.MergeFiltered(sub, filter)
		m.modules[name] = merged
	}

	maps.Copy(m.variables, other.variables)

	for hash, f := range other.functions {
		if filter(f.Namespace, f.Access, f.Func.IsScript(), f.Name, f.Params) {
			m.functions[hash] = f
		}
	}

	maps.Copy(m.iterators, other.iterators)
	m.invalidate()
	return m
}

// RetainScriptFunctions drops every native function and every script
// function rejected by filter.
func (m *Module) RetainScriptFunctions(filter RetainFilter) *Module {
	maps.DeleteFunc(m.functions, func(_ uint64, f FuncInfo) bool {
		if !f.Func.IsScript() {
			return true
		}
		return !filter(f.Namespace, f.Access, f.Name, f.Params)
	})
	m.invalidate()
	return m
}
