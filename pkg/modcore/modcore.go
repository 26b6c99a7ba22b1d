// Package modcore is the public API for embedding the module registry in a
// host program.
package modcore

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/funvibe/modcore/internal/hashing"
	"github.com/funvibe/modcore/internal/manifest"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/resolvers"
	"github.com/funvibe/modcore/internal/sqlsource"
	"github.com/funvibe/modcore/internal/stdlib"
	"github.com/funvibe/modcore/internal/value"
)

// Registry types aliases
type Module = module.Module
type FuncInfo = module.FuncInfo
type CallableFunction = module.CallableFunction
type CallContext = module.CallContext
type NativeFn = module.NativeFn
type FnNamespace = module.FnNamespace
type FnAccess = module.FnAccess
type ScriptFnDef = module.ScriptFnDef
type ImportedModule = module.ImportedModule
type ScopeEntry = module.ScopeEntry
type NamespaceRef = module.NamespaceRef
type Ident = module.Ident
type NotFoundError = module.NotFoundError
type IteratorFn = module.IteratorFn

// Value types aliases
type Dynamic = value.Dynamic
type TypeID = value.TypeID
type ImmutableString = value.ImmutableString
type Array = value.Array
type Map = value.Map
type Unit = value.Unit

// Resolution types aliases
type Resolver = resolvers.Resolver
type ResolverFunc = resolvers.ResolverFunc
type StaticResolver = resolvers.StaticResolver
type CollectionResolver = resolvers.CollectionResolver
type ResolveError = resolvers.ResolveError
type CachedResolver = resolvers.CachedResolver
type FileResolver = manifest.FileResolver
type SQLSource = sqlsource.Source
type Manifest = manifest.Manifest
type ModuleSpec = manifest.ModuleSpec

const (
	Internal = module.Internal
	Global   = module.Global
	Public   = module.Public
	Private  = module.Private
)

var (
	ErrNotFound       = module.ErrNotFound
	ErrModuleNotFound = resolvers.ErrModuleNotFound
	ErrImportCycle    = manifest.ErrImportCycle
)

func New() *Module { return module.New() }

func NewCallContext(ctx context.Context, fnName string) *CallContext {
	return module.NewCallContext(ctx, fnName)
}

func NewFromScope(scope []ScopeEntry, imports []ImportedModule, lib *Module, source string) *Module {
	return module.NewFromScope(module.ScopeFromSlice(scope), imports, lib, source)
}

func ParseNamespaceRef(s string) (NamespaceRef, error) { return module.ParseNamespaceRef(s) }

func From(v any) Dynamic { return value.From(v) }

func TypeOf[T any]() TypeID { return value.TypeOf[T]() }

func Cast[T any](d Dynamic) T { return value.Cast[T](d) }

func TryCast[T any](d Dynamic) (T, bool) { return value.TryCast[T](d) }

// Registration helpers (see the module package for semantics)

func SetFn0[T any](m *Module, name string, fn func() (T, error)) uint64 {
	return module.SetFn0(m, name, fn)
}

func SetFn1[A, T any](m *Module, name string, fn func(A) (T, error)) uint64 {
	return module.SetFn1(m, name, fn)
}

func SetFn2[A, B, T any](m *Module, name string, fn func(A, B) (T, error)) uint64 {
	return module.SetFn2(m, name, fn)
}

func SetFn3[A, B, C, T any](m *Module, name string, fn func(A, B, C) (T, error)) uint64 {
	return module.SetFn3(m, name, fn)
}

func SetFn4[A, B, C, D, T any](m *Module, name string, fn func(A, B, C, D) (T, error)) uint64 {
	return module.SetFn4(m, name, fn)
}

func SetFn1Mut[A, T any](m *Module, name string, ns FnNamespace, fn func(*A) (T, error)) uint64 {
	return module.SetFn1Mut(m, name, ns, fn)
}

func SetFn2Mut[A, B, T any](m *Module, name string, ns FnNamespace, fn func(*A, B) (T, error)) uint64 {
	return module.SetFn2Mut(m, name, ns, fn)
}

func SetFn3Mut[A, B, C, T any](m *Module, name string, ns FnNamespace, fn func(*A, B, C) (T, error)) uint64 {
	return module.SetFn3Mut(m, name, ns, fn)
}

func SetFn4Mut[A, B, C, D, T any](m *Module, name string, ns FnNamespace, fn func(*A, B, C, D) (T, error)) uint64 {
	return module.SetFn4Mut(m, name, ns, fn)
}

func SetRawFn[T any](m *Module, name string, ns FnNamespace, access FnAccess, argTypes []TypeID,
	fn func(ctx *CallContext, args []Dynamic) (T, error)) uint64 {
	return module.SetRawFn(m, name, ns, access, argTypes, fn)
}

func SetGetterFn[A, T any](m *Module, name string, fn func(*A) (T, error)) uint64 {
	return module.SetGetterFn(m, name, fn)
}

func SetSetterFn[A, B any](m *Module, name string, fn func(*A, B) error) uint64 {
	return module.SetSetterFn(m, name, fn)
}

func SetIndexerGetFn[A, B, T any](m *Module, fn func(*A, B) (T, error)) uint64 {
	return module.SetIndexerGetFn(m, fn)
}

func SetIndexerSetFn[A, B, C any](m *Module, fn func(*A, B, C) error) uint64 {
	return module.SetIndexerSetFn(m, fn)
}

func SetIndexerGetSetFn[A, B, T any](m *Module, getter func(*A, B) (T, error), setter func(*A, B, T) error) (get, set uint64) {
	return module.SetIndexerGetSetFn(m, getter, setter)
}

// SetIterable registers an iterator over the elements of slice type T.
func SetIterable[T ~[]E, E any](m *Module) *Module { return module.SetIterable[T](m) }

// SetIterator registers an iterator for T, which is itself a sequence.
func SetIterator[T ~func(func(E) bool), E any](m *Module) *Module { return module.SetIterator[T](m) }

func GetVarValue[T any](m *Module, name string) (T, bool) { return module.GetVarValue[T](m, name) }

// SetLogger installs the logger used for index diagnostics; nil silences it.
func SetLogger(l *log.Logger) { module.SetLogger(l) }

// Hashing

func HashScript(qualifiers []string, name string, arity int) uint64 {
	return hashing.HashScript(qualifiers, name, arity)
}

func HashVar(qualifiers []string, name string) uint64 { return hashing.HashVar(qualifiers, name) }

func HashNativeArgs(name string, argTypes []TypeID) uint64 {
	return hashing.HashNativeArgs(name, argTypes)
}

func HashQualifiedNative(qualifiers []string, name string, argTypes []TypeID) uint64 {
	return hashing.HashQualifiedNative(qualifiers, name, argTypes)
}

// Resolution

func NewStaticResolver(logger *log.Logger) *StaticResolver { return resolvers.NewStaticResolver(logger) }

func NewCollectionResolver(rs ...Resolver) *CollectionResolver {
	return resolvers.NewCollectionResolver(rs...)
}

func Cached(source Resolver, logger *log.Logger) *CachedResolver {
	return resolvers.Cached(source, logger)
}

// OpenSQLSource serves module variables from the SQLite database at dsn.
func OpenSQLSource(ctx context.Context, dsn string, logger *log.Logger) (*SQLSource, error) {
	return sqlsource.Open(ctx, dsn, logger)
}

// LibraryResolver serves the built-in library packages under "lib/".
func LibraryResolver(logger *log.Logger) *StaticResolver { return stdlib.Resolver(logger) }

// LoadManifest reads a modcore.yaml or modcore.hcl file.
func LoadManifest(path string) (*Manifest, error) { return manifest.LoadManifest(path) }

// Assemble builds the module tree described by man.
func Assemble(ctx context.Context, man *Manifest, r Resolver, logger *log.Logger) (*Module, error) {
	return manifest.Assemble(ctx, man, r, logger)
}
