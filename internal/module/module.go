// Package module implements the namespace and function registry of the
// runtime.
//
// A Module owns variables, functions, sub-modules and type iterators. The
// direct tables are edited by registration and merge calls; BuildIndex
// flattens the whole tree under the module into hash-keyed tables used for
// qualified lookups. Every direct mutation drops the flattened tables, so
// stale entries are never observed.
//
// A Module is not safe for concurrent mutation. Build it, index it, then
// share it read-only.
package module

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/hashing"
	"github.com/funvibe/modcore/internal/value"
)

const (
	defaultFnCapacity     = 64
	defaultFlatFnCapacity = 256
)

// Module is a namespace node.
type Module struct {
	id string

	modules   map[string]*Module
	variables map[string]value.Dynamic
	functions map[uint64]FuncInfo
	iterators map[value.TypeID]IteratorFn

	// Flattened tables, valid only while indexed is true.
	allVariables map[uint64]value.Dynamic
	allFunctions map[uint64]CallableFunction
	allIterators map[value.TypeID]IteratorFn

	indexed bool
}

// New returns an empty module.
func New() *Module {
	return NewWithCapacity(defaultFnCapacity)
}

// NewWithCapacity returns an empty module sized for capacity functions.
func NewWithCapacity(capacity int) *Module {
	return &Module{
		modules:      make(map[string]*Module),
		variables:    make(map[string]value.Dynamic),
		functions:    make(map[uint64]FuncInfo, capacity),
		iterators:    make(map[value.TypeID]IteratorFn),
		allVariables: make(map[uint64]value.Dynamic),
		allFunctions: make(map[uint64]CallableFunction),
		allIterators: make(map[value.TypeID]IteratorFn),
	}
}

// ID returns the module identifier, usually the path it was loaded from.
func (m *Module) ID() string { return m.id }

// SetID sets the identifier. It does not affect indexing.
func (m *Module) SetID(id string) *Module {
	m.id = id
	return m
}

// IsEmpty reports whether both direct and flattened tables are empty.
func (m *Module) IsEmpty() bool {
	return len(m.functions) == 0 && len(m.allFunctions) == 0 &&
		len(m.variables) == 0 && len(m.allVariables) == 0 &&
		len(m.modules) == 0 &&
		len(m.iterators) == 0 && len(m.allIterators) == 0
}

// IsIndexed reports whether the flattened tables reflect the current tree.
func (m *Module) IsIndexed() bool { return m.indexed }

// invalidate marks the flattened tables stale and drops them.
func (m *Module) invalidate() {
	clear(m.allVariables)
	clear(m.allFunctions)
	clear(m.allIterators)
	m.indexed = false
}

// Clone returns a copy of m with its own direct tables. Sub-modules stay
// shared; the copy is not indexed.
func (m *Module) Clone() *Module {
	c := NewWithCapacity(len(m.functions))
	c.id = m.id
	maps.Copy(c.modules, m.modules)
	maps.Copy(c.variables, m.variables)
	maps.Copy(c.functions, m.functions)
	maps.Copy(c.iterators, m.iterators)
	return c
}

// Count returns the number of direct variables, functions and iterators.
func (m *Module) Count() (vars, fns, iters int) {
	return len(m.variables), len(m.functions), len(m.iterators)
}

// IndexedCount returns the sizes of the flattened tables.
func (m *Module) IndexedCount() (vars, fns, iters int) {
	return len(m.allVariables), len(m.allFunctions), len(m.allIterators)
}

// --- variables ---

// ContainsVar reports whether name is a direct variable.
func (m *Module) ContainsVar(name string) bool {
	_, ok := m.variables[name]
	return ok
}

// GetVar returns the direct variable name.
func (m *Module) GetVar(name string) (value.Dynamic, bool) {
	v, ok := m.variables[name]
	return v, ok
}

// GetVarValue returns the variable name cast to T.
func GetVarValue[T any](m *Module, name string) (T, bool) {
	v, ok := m.GetVar(name)
	if !ok {
		var zero T
		return zero, false
	}
	return value.TryCast[T](v)
}

// SetVar sets a direct variable, replacing any existing one.
func (m *Module) SetVar(name string, v any) *Module {
	m.variables[name] = value.From(v)
	m.invalidate()
	return m
}

// GetQualifiedVar looks up a variable in the flattened table. BuildIndex
// must have been called.
func (m *Module) GetQualifiedVar(hash uint64) (value.Dynamic, error) {
	v, ok := m.allVariables[hash]
	if !ok {
		return value.UnitValue, &NotFoundError{Kind: EntryVariable, Hash: hash}
	}
	return v, nil
}

// ContainsQualifiedVar reports whether hash is in the flattened variables.
func (m *Module) ContainsQualifiedVar(hash uint64) bool {
	_, ok := m.allVariables[hash]
	return ok
}

// --- sub-modules ---

// ContainsSubModule reports whether name is a direct sub-module.
func (m *Module) ContainsSubModule(name string) bool {
	_, ok := m.modules[name]
	return ok
}

// GetSubModule returns the direct sub-module name.
func (m *Module) GetSubModule(name string) (*Module, bool) {
	sub, ok := m.modules[name]
	return sub, ok
}

// SetSubModule attaches sub under name. The same module may be attached
// under several parents.
func (m *Module) SetSubModule(name string, sub *Module) *Module {
	m.modules[name] = sub
	m.invalidate()
	return m
}

// SubModulesMut exposes the sub-module table for editing. The caller is
// assumed to change it, so the flattened tables are dropped.
func (m *Module) SubModulesMut() map[string]*Module {
	m.invalidate()
	return m.modules
}

// --- functions ---

// SetFn is the canonical native registration. String-like parameter types
// are normalized before hashing, so overloads differing only in string
// representation replace each other. An existing entry at the resulting
// hash is replaced.
func (m *Module) SetFn(name string, namespace FnNamespace, access FnAccess, paramNames []string, paramTypes []value.TypeID, fn CallableFunction) uint64 {
	types := make([]value.TypeID, len(paramTypes))
	for i, t := range paramTypes {
		types[i] = value.Normalize(t)
	}
	hash := hashing.HashNativeArgs(name, types)

	m.functions[hash] = FuncInfo{
		Func:       fn,
		Namespace:  namespace,
		Access:     access,
		Name:       name,
		Params:     len(types),
		ParamTypes: types,
		ParamNames: slices.Clone(paramNames),
	}
	m.invalidate()
	return hash
}

// SetScriptFn registers a script function under its unqualified
// name/arity hash.
func (m *Module) SetScriptFn(def *ScriptFnDef) uint64 {
	arity := len(def.Params)
	hash := hashing.HashScript(nil, def.Name, arity)

	paramNames := make([]string, 0, arity+1)
	paramNames = append(paramNames, def.Params...)
	paramNames = append(paramNames, config.DynamicTypeName)

	m.functions[hash] = FuncInfo{
		Func:       FromScript(def),
		Namespace:  Internal,
		Access:     def.Access,
		Name:       def.Name,
		Params:     arity,
		ParamNames: paramNames,
	}
	m.invalidate()
	return hash
}

// GetScriptFn finds a script function by name and arity.
func (m *Module) GetScriptFn(name string, arity int, publicOnly bool) (*ScriptFnDef, bool) {
	for _, f := range m.functions {
		if !f.Func.IsScript() || f.Params != arity || f.Name != name {
			continue
		}
		if publicOnly && f.Access.IsPrivate() {
			continue
		}
		return f.Func.ScriptDef(), true
	}
	return nil, false
}

// UpdateFnMetadata replaces the display names of a function. Lookups are
// unaffected; apply it before sharing since signatures change.
func (m *Module) UpdateFnMetadata(hash uint64, paramNames ...string) *Module {
	if f, ok := m.functions[hash]; ok {
		f.ParamNames = slices.Clone(paramNames)
		m.functions[hash] = f
	}
	return m
}

// UpdateFnNamespace changes the namespace of a function.
func (m *Module) UpdateFnNamespace(hash uint64, namespace FnNamespace) *Module {
	if f, ok := m.functions[hash]; ok {
		f.Namespace = namespace
		m.functions[hash] = f
	}
	m.invalidate()
	return m
}

// ContainsFn reports whether hash is in the direct table. With publicOnly,
// private functions are hidden.
func (m *Module) ContainsFn(hash uint64, publicOnly bool) bool {
	f, ok := m.functions[hash]
	if !ok {
		return false
	}
	return !publicOnly || f.Access.IsPublic()
}

// GetFn returns a function from the direct table.
func (m *Module) GetFn(hash uint64, publicOnly bool) (CallableFunction, bool) {
	f, ok := m.functions[hash]
	if !ok || (publicOnly && f.Access.IsPrivate()) {
		return CallableFunction{}, false
	}
	return f.Func, true
}

// GetFnInfo returns the metadata of a function in the direct table.
func (m *Module) GetFnInfo(hash uint64) (FuncInfo, bool) {
	f, ok := m.functions[hash]
	return f, ok
}

// RemoveFn deletes a function from the direct table.
func (m *Module) RemoveFn(hash uint64) bool {
	if _, ok := m.functions[hash]; !ok {
		return false
	}
	delete(m.functions, hash)
	m.invalidate()
	return true
}

// ContainsQualifiedFn looks only in the flattened table.
func (m *Module) ContainsQualifiedFn(hash uint64) bool {
	_, ok := m.allFunctions[hash]
	return ok
}

// GetQualifiedFn looks only in the flattened table. BuildIndex must have
// been called.
func (m *Module) GetQualifiedFn(hash uint64) (CallableFunction, bool) {
	f, ok := m.allFunctions[hash]
	return f, ok
}

// GenFnSignatures renders every public function, sorted.
func (m *Module) GenFnSignatures() []string {
	sigs := make([]string, 0, len(m.functions))
	for _, f := range m.functions {
		if f.Access.IsPrivate() {
			continue
		}
		sigs = append(sigs, f.GenSignature())
	}
	slices.Sort(sigs)
	return sigs
}

// --- enumeration (order not significant) ---

func (m *Module) IterSubModules() iter.Seq2[string, *Module] {
	return func(yield func(string, *Module) bool) {
		for name, sub := range m.modules {
			if !yield(name, sub) {
				return
			}
		}
	}
}

func (m *Module) IterVars() iter.Seq2[string, value.Dynamic] {
	return func(yield func(string, value.Dynamic) bool) {
		for name, v := range m.variables {
			if !yield(name, v) {
				return
			}
		}
	}
}

// IterFns yields every direct function with its hash.
func (m *Module) IterFns() iter.Seq2[uint64, FuncInfo] {
	return func(yield func(uint64, FuncInfo) bool) {
		for hash, f := range m.functions {
			if !yield(hash, f) {
				return
			}
		}
	}
}

// IterScriptFns yields the script functions with their definitions.
func (m *Module) IterScriptFns() iter.Seq[FuncInfo] {
	return func(yield func(FuncInfo) bool) {
		for _, f := range m.functions {
			if f.Func.IsScript() && !yield(f) {
				return
			}
		}
	}
}

// ScriptFnInfo is the summary of a script function.
type ScriptFnInfo struct {
	Namespace FnNamespace
	Access    FnAccess
	Name      string
	Params    int
}

// IterScriptFnInfo yields script function summaries, optionally skipping
// private ones.
func (m *Module) IterScriptFnInfo(publicOnly bool) iter.Seq[ScriptFnInfo] {
	return func(yield func(ScriptFnInfo) bool) {
		for f := range m.IterScriptFns() {
			if publicOnly && f.Access.IsPrivate() {
				continue
			}
			info := ScriptFnInfo{Namespace: f.Namespace, Access: f.Access, Name: f.Name, Params: f.Params}
			if !yield(info) {
				return
			}
		}
	}
}

// String renders the direct tables for debugging, in sorted order.
func (m *Module) String() string {
	var b strings.Builder
	b.WriteString("Module(")
	if m.id != "" {
		fmt.Fprintf(&b, "id: %q", m.id)
	}

	subs := maps.Keys(m.modules)
	slices.Sort(subs)
	fmt.Fprintf(&b, "\n    modules: %s", strings.Join(subs, ", "))

	vars := maps.Keys(m.variables)
	slices.Sort(vars)
	for i, name := range vars {
		vars[i] = name + "=" + m.variables[name].String()
	}
	fmt.Fprintf(&b, "\n    vars: %s", strings.Join(vars, ", "))

	fns := make([]string, 0, len(m.functions))
	for _, f := range m.functions {
		fns = append(fns, f.GenSignature())
	}
	slices.Sort(fns)
	fmt.Fprintf(&b, "\n    functions: %s\n)", strings.Join(fns, ", "))
	return b.String()
}
