package ctylib

import (
	"fmt"
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"golang.org/x/exp/maps"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

// Functions returns the cty standard functions exposed by Module.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"upper":      stdlib.UpperFunc,
		"lower":      stdlib.LowerFunc,
		"strlen":     stdlib.StrlenFunc,
		"trimspace":  stdlib.TrimSpaceFunc,
		"abs":        stdlib.AbsoluteFunc,
		"ceil":       stdlib.CeilFunc,
		"floor":      stdlib.FloorFunc,
		"max":        stdlib.MaxFunc,
		"min":        stdlib.MinFunc,
		"concat":     stdlib.ConcatFunc,
		"length":     stdlib.LengthFunc,
		"keys":       stdlib.KeysFunc,
		"format":     stdlib.FormatFunc,
		"join":       stdlib.JoinFunc,
		"split":      stdlib.SplitFunc,
		"coalesce":   stdlib.CoalesceFunc,
		"jsonencode": stdlib.JSONEncodeFunc,
		"jsondecode": stdlib.JSONDecodeFunc,
	}
}

// Module wraps the default cty functions.
func Module() *module.Module {
	return NewModule(Functions())
}

// NewModule registers each function of funcs as a native module function.
// Every parameter takes a Dynamic; a variadic tail is passed as one trailing
// Array argument, so "max" has arity 1 and "join" arity 2.
func NewModule(funcs map[string]function.Function) *module.Module {
	m := module.NewWithCapacity(len(funcs))
	names := maps.Keys(funcs)
	slices.Sort(names)
	for _, name := range names {
		register(m, name, funcs[name])
	}
	return m
}

func register(m *module.Module, name string, fn function.Function) {
	params := fn.Params()
	varParam := fn.VarParam()

	arity := len(params)
	if varParam != nil {
		arity++
	}
	argTypes := make([]value.TypeID, arity)
	for i := range argTypes {
		argTypes[i] = value.TypeOf[value.Dynamic]()
	}

	paramNames := make([]string, 0, arity+1)
	for _, p := range params {
		paramNames = append(paramNames, p.Name+": "+p.Type.FriendlyName())
	}
	if varParam != nil {
		paramNames = append(paramNames, "..."+varParam.Name+": "+varParam.Type.FriendlyName())
	}
	paramNames = append(paramNames, config.DynamicTypeName)

	call := func(ctx *module.CallContext, args []value.Dynamic) (value.Dynamic, error) {
		ctyArgs, err := toCtyArgs(args, len(params), varParam != nil)
		if err != nil {
			return value.UnitValue, fmt.Errorf("%s: %w", name, err)
		}
		ret, err := fn.Call(ctyArgs)
		if err != nil {
			return value.UnitValue, fmt.Errorf("%s: %w", name, err)
		}
		return ToDynamic(ret)
	}
	// cty functions never mutate their arguments.
	hash := m.SetFn(name, module.Internal, module.Public, nil, argTypes, module.FromPure(call))
	m.UpdateFnMetadata(hash, paramNames...)
}

func toCtyArgs(args []value.Dynamic, fixed int, variadic bool) ([]cty.Value, error) {
	out := make([]cty.Value, 0, len(args))
	for i := 0; i < fixed; i++ {
		v, err := FromDynamic(args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	if !variadic {
		return out, nil
	}

	rest, ok := value.TryCast[value.Array](args[fixed])
	if !ok {
		return nil, fmt.Errorf("variadic arguments must be passed as an array, got %s", args[fixed].TypeName())
	}
	for i, el := range rest {
		v, err := FromDynamic(el)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", fixed+i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}
