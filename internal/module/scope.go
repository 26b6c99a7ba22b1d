package module

import (
	"iter"
	"slices"

	"github.com/funvibe/modcore/internal/value"
)

// ScopeEntry is one binding left in a scope after a script ran.
type ScopeEntry struct {
	Name    string
	Value   value.Dynamic
	Aliases []string
}

// NewFromScope turns the results of an executed script into a module. The
// engine runs the script; this only harvests what it left behind:
//   - bindings exported under one or more aliases become variables, one per
//     alias, while bindings without an alias stay private;
//   - imports made by the script become sub-modules;
//   - public script functions of lib become module functions, each bound to
//     lib and the script's imports so it runs in its defining environment.
//
// The module gets source as its id and is returned indexed.
func NewFromScope(scope iter.Seq[ScopeEntry], imports []ImportedModule, lib *Module, source string) *Module {
	m := New()

	for entry := range scope {
		for _, alias := range entry.Aliases {
			m.variables[alias] = entry.Value
		}
	}

	for _, imp := range imports {
		m.modules[imp.Alias] = imp.Module
	}

	if lib != nil {
		for f := range lib.IterScriptFns() {
			if f.Access.IsPrivate() {
				continue
			}
			def := f.Func.ScriptDef().Clone()
			def.Lib = lib
			def.Imports = slices.Clone(imports)
			m.SetScriptFn(def)
		}
	}

	m.SetID(source)
	m.invalidate()
	return m.BuildIndex()
}

// ScopeFromSlice adapts a slice of entries for NewFromScope.
func ScopeFromSlice(entries []ScopeEntry) iter.Seq[ScopeEntry] {
	return slices.Values(entries)
}
