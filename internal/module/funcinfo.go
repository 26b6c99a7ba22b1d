package module

import (
	"strings"

	"github.com/funvibe/modcore/internal/config"
	"github.com/funvibe/modcore/internal/value"
)

// FuncInfo is the metadata of one registered function.
type FuncInfo struct {
	Func      CallableFunction
	Namespace FnNamespace
	Access    FnAccess
	Name      string
	// Params is the arity.
	Params int
	// ParamTypes is empty for script functions.
	ParamTypes []value.TypeID
	// ParamNames are display names; the last entry names the return type.
	ParamNames []string
}

// GenSignature renders the function for diagnostics, e.g.
// "add(x: Int, y: Int) -> Int" or "add(_, _) -> ?".
func (f *FuncInfo) GenSignature() string {
	var sig strings.Builder
	sig.WriteString(f.Name)
	sig.WriteByte('(')

	if len(f.ParamNames) > 0 {
		params := f.ParamNames[:len(f.ParamNames)-1]
		returnType := f.ParamNames[len(f.ParamNames)-1]
		sig.WriteString(strings.Join(params, ", "))
		sig.WriteByte(')')
		if returnType != config.UnitTypeName {
			sig.WriteString(" -> ")
			sig.WriteString(returnType)
		}
		return sig.String()
	}

	for i := 0; i < f.Params; i++ {
		if i > 0 {
			sig.WriteString(", ")
		}
		sig.WriteString(config.AnonParamName)
	}
	sig.WriteByte(')')
	if !f.Func.IsScript() {
		sig.WriteString(" -> ")
		sig.WriteString(config.UnknownTypeName)
	}
	return sig.String()
}
