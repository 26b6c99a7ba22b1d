package module

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/modcore/internal/value"
)

// ErrScriptFn is returned when a script function is invoked directly; the
// engine evaluates script bodies.
var ErrScriptFn = errors.New("script function must be evaluated by the engine")

// CallContext is handed to every native function invocation.
type CallContext struct {
	Ctx context.Context

	// FnName is the name the function was called by.
	FnName string
	// Source identifies the calling script, if any.
	Source string
	// Lib is the module the function was resolved from.
	Lib *Module
}

// NewCallContext returns a CallContext for a call to fnName.
func NewCallContext(ctx context.Context, fnName string) *CallContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &CallContext{Ctx: ctx, FnName: fnName}
}

// NativeFn is the canonical type-erased native call signature. args holds
// exactly as many entries as the function's arity, typed as registered.
// Method functions may replace args[0] to mutate the receiver.
type NativeFn func(ctx *CallContext, args []value.Dynamic) (value.Dynamic, error)

// FnKind is the shape of a CallableFunction.
type FnKind int

const (
	// KindPure takes every argument by value and may consume args[0].
	KindPure FnKind = iota
	// KindMethod takes args[0] by reference and never consumes it.
	KindMethod
	// KindScript is a script-defined function evaluated by the engine.
	KindScript
)

func (k FnKind) String() string {
	switch k {
	case KindPure:
		return "pure"
	case KindMethod:
		return "method"
	case KindScript:
		return "script"
	}
	return fmt.Sprintf("FnKind(%d)", int(k))
}

// CallableFunction is a registered function implementation.
type CallableFunction struct {
	kind   FnKind
	native NativeFn
	script *ScriptFnDef
}

func FromPure(fn NativeFn) CallableFunction {
	return CallableFunction{kind: KindPure, native: fn}
}

func FromMethod(fn NativeFn) CallableFunction {
	return CallableFunction{kind: KindMethod, native: fn}
}

func FromScript(def *ScriptFnDef) CallableFunction {
	return CallableFunction{kind: KindScript, script: def}
}

func (f CallableFunction) Kind() FnKind { return f.kind }
func (f CallableFunction) IsPure() bool { return f.kind == KindPure }
func (f CallableFunction) IsMethod() bool { return f.kind == KindMethod }
func (f CallableFunction) IsScript() bool { return f.kind == KindScript }
func (f CallableFunction) IsNative() bool { return f.kind != KindScript }
func (f CallableFunction) Native() NativeFn { return f.native }

// ScriptDef returns the definition of a script function, or nil.
func (f CallableFunction) ScriptDef() *ScriptFnDef { return f.script }

// Call invokes a native function. Errors from the implementation are
// returned unchanged.
func (f CallableFunction) Call(ctx *CallContext, args []value.Dynamic) (value.Dynamic, error) {
	if f.kind == KindScript || f.native == nil {
		return value.UnitValue, ErrScriptFn
	}
	return f.native(ctx, args)
}

func (f CallableFunction) String() string {
	switch f.kind {
	case KindScript:
		if f.script != nil {
			return f.script.String()
		}
		return "script fn"
	case KindMethod:
		return "native method"
	}
	return "native fn"
}

// ImportedModule is a module import alive in a scope.
type ImportedModule struct {
	Alias  string
	Module *Module
}

// ScriptFnDef is the compiler's representation of a script function.
type ScriptFnDef struct {
	Name   string
	Params []string
	Access FnAccess
	// Body is displayed only; the engine evaluates it.
	Body fmt.Stringer

	// Lib and Imports encapsulate the environment a function exported
	// from an evaluated script runs in.
	Lib     *Module
	Imports []ImportedModule
}

// Clone returns a shallow copy of def with its own Imports slice.
func (def *ScriptFnDef) Clone() *ScriptFnDef {
	c := *def
	c.Imports = append([]ImportedModule(nil), def.Imports...)
	return &c
}

func (def *ScriptFnDef) String() string {
	var b strings.Builder
	if def.Access.IsPrivate() {
		b.WriteString("private ")
	}
	b.WriteString(def.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(def.Params, ", "))
	b.WriteByte(')')
	return b.String()
}
