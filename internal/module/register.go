package module

import (
	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/value"
)

// The SetFnN helpers adapt ordinary typed closures to NativeFn. Plain forms
// take every argument by value and register a pure function in the Internal
// namespace. Mut forms take the first argument by pointer; the adapter
// writes the receiver back into args[0] after the call, so the closure
// mutates it in place.

func arg[A any](args []value.Dynamic, i int) A {
	return value.Cast[A](args[i])
}

func wrap[T any](v T, err error) (value.Dynamic, error) {
	if err != nil {
		return value.UnitValue, err
	}
	return value.From(v), nil
}

func withReceiver[A any](args []value.Dynamic, call func(recv *A) (value.Dynamic, error)) (value.Dynamic, error) {
	recv := arg[A](args, 0)
	ret, err := call(&recv)
	args[0] = value.From(recv)
	return ret, err
}

func types(ids ...value.TypeID) []value.TypeID { return ids }

func setPure(m *Module, name string, argTypes []value.TypeID, fn NativeFn) uint64 {
	return m.SetFn(name, Internal, Public, nil, argTypes, FromPure(fn))
}

func setMethod(m *Module, name string, namespace FnNamespace, argTypes []value.TypeID, fn NativeFn) uint64 {
	return m.SetFn(name, namespace, Public, nil, argTypes, FromMethod(fn))
}

// SetRawFn registers a method-shaped function that works on the argument
// slice directly.
func SetRawFn[T any](m *Module, name string, namespace FnNamespace, access FnAccess, argTypes []value.TypeID,
	fn func(ctx *CallContext, args []value.Dynamic) (T, error)) uint64 {
	f := func(ctx *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		return wrap(fn(ctx, args))
	}
	return m.SetFn(name, namespace, access, nil, argTypes, FromMethod(f))
}

func SetFn0[T any](m *Module, name string, fn func() (T, error)) uint64 {
	return setPure(m, name, nil, func(*CallContext, []value.Dynamic) (value.Dynamic, error) {
		return wrap(fn())
	})
}

func SetFn1[A, T any](m *Module, name string, fn func(A) (T, error)) uint64 {
	return setPure(m, name, types(value.TypeOf[A]()), func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		return wrap(fn(arg[A](args, 0)))
	})
}

func SetFn1Mut[A, T any](m *Module, name string, namespace FnNamespace, fn func(*A) (T, error)) uint64 {
	return setMethod(m, name, namespace, types(value.TypeOf[A]()), func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		return withReceiver(args, func(a *A) (value.Dynamic, error) {
			return wrap(fn(a))
		})
	})
}

// SetGetterFn registers a property getter, reachable without qualification.
func SetGetterFn[A, T any](m *Module, name string, fn func(*A) (T, error)) uint64 {
	return SetFn1Mut(m, config.MakeGetter(name), Global, fn)
}

func SetFn2[A, B, T any](m *Module, name string, fn func(A, B) (T, error)) uint64 {
	argTypes := types(value.TypeOf[A](), value.TypeOf[B]())
	return setPure(m, name, argTypes, func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		return wrap(fn(arg[A](args, 0), arg[B](args, 1)))
	})
}

func SetFn2Mut[A, B, T any](m *Module, name string, namespace FnNamespace, fn func(*A, B) (T, error)) uint64 {
	argTypes := types(value.TypeOf[A](), value.TypeOf[B]())
	return setMethod(m, name, namespace, argTypes, func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		b := arg[B](args, 1)
		return withReceiver(args, func(a *A) (value.Dynamic, error) {
			return wrap(fn(a, b))
		})
	})
}

// SetSetterFn registers a property setter, reachable without qualification.
func SetSetterFn[A, B any](m *Module, name string, fn func(*A, B) error) uint64 {
	return SetFn2Mut(m, config.MakeSetter(name), Global, func(a *A, b B) (value.Unit, error) {
		return value.Unit{}, fn(a, b)
	})
}

// mustIndexable panics when A has indexing built into the engine. It runs
// before any registration side effect.
func mustIndexable[A any]() {
	t := value.TypeOf[A]()
	switch {
	case t == value.TypeOf[value.Array]():
		panic("module: cannot register indexer for arrays")
	case t == value.TypeOf[value.Map]():
		panic("module: cannot register indexer for object maps")
	case value.IsStringType(t):
		panic("module: cannot register indexer for strings")
	}
}

// SetIndexerGetFn registers obj[index] reads for A.
func SetIndexerGetFn[A, B, T any](m *Module, fn func(*A, B) (T, error)) uint64 {
	mustIndexable[A]()
	return SetFn2Mut(m, config.IndexGetFnName, Global, fn)
}

func SetFn3[A, B, C, T any](m *Module, name string, fn func(A, B, C) (T, error)) uint64 {
	argTypes := types(value.TypeOf[A](), value.TypeOf[B](), value.TypeOf[C]())
	return setPure(m, name, argTypes, func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		return wrap(fn(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2)))
	})
}

func SetFn3Mut[A, B, C, T any](m *Module, name string, namespace FnNamespace, fn func(*A, B, C) (T, error)) uint64 {
	argTypes := types(value.TypeOf[A](), value.TypeOf[B](), value.TypeOf[C]())
	return setMethod(m, name, namespace, argTypes, func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		b, c := arg[B](args, 1), arg[C](args, 2)
		return withReceiver(args, func(a *A) (value.Dynamic, error) {
			return wrap(fn(a, b, c))
		})
	})
}

// SetIndexerSetFn registers obj[index] = v writes for A.
func SetIndexerSetFn[A, B, C any](m *Module, fn func(*A, B, C) error) uint64 {
	mustIndexable[A]()
	return SetFn3Mut(m, config.IndexSetFnName, Global, func(a *A, b B, c C) (value.Unit, error) {
		return value.Unit{}, fn(a, b, c)
	})
}

// SetIndexerGetSetFn registers both indexer directions for A.
func SetIndexerGetSetFn[A, B, T any](m *Module, getter func(*A, B) (T, error), setter func(*A, B, T) error) (get, set uint64) {
	return SetIndexerGetFn(m, getter), SetIndexerSetFn(m, setter)
}

func SetFn4[A, B, C, D, T any](m *Module, name string, fn func(A, B, C, D) (T, error)) uint64 {
	argTypes := types(value.TypeOf[A](), value.TypeOf[B](), value.TypeOf[C](), value.TypeOf[D]())
	return setPure(m, name, argTypes, func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		return wrap(fn(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2), arg[D](args, 3)))
	})
}

func SetFn4Mut[A, B, C, D, T any](m *Module, name string, namespace FnNamespace, fn func(*A, B, C, D) (T, error)) uint64 {
	argTypes := types(value.TypeOf[A](), value.TypeOf[B](), value.TypeOf[C](), value.TypeOf[D]())
	return setMethod(m, name, namespace, argTypes, func(_ *CallContext, args []value.Dynamic) (value.Dynamic, error) {
		b, c, d := arg[B](args, 1), arg[C](args, 2), arg[D](args, 3)
		return withReceiver(args, func(a *A) (value.Dynamic, error) {
			return wrap(fn(a, b, c, d))
		})
	})
}
