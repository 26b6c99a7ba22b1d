// Package value is the boundary to the runtime's dynamic value representation.
//
// The evaluator owns typing and conversion rules; this package only carries
// what the module registry needs: a type-erased Dynamic, a stable TypeID per
// concrete Go type, and the built-in container and string types whose
// identity matters for hashing and indexer registration.
package value

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeID identifies the concrete type of a value.
type TypeID = reflect.Type

// ImmutableString is the runtime's string type. Go strings and *string
// normalize to it as native parameter types and as values.
type ImmutableString string

// Array is the built-in sequence type.
type Array []Dynamic

// Map is the built-in key/value map type.
type Map map[string]Dynamic

// Unit is the value of functions that return nothing.
type Unit struct{}

// Dynamic is a type-erased runtime value.
type Dynamic struct {
	v any
}

// UnitValue is the Dynamic holding Unit.
var UnitValue = Dynamic{v: Unit{}}

// From wraps v. A Dynamic is returned unchanged and nil becomes UnitValue.
// Go strings and non-nil *string become ImmutableString, matching the
// parameter type they normalize to.
func From(v any) Dynamic {
	switch x := v.(type) {
	case nil:
		return UnitValue
	case Dynamic:
		return x
	case *Dynamic:
		if x == nil {
			return UnitValue
		}
		return *x
	case string:
		return Dynamic{v: ImmutableString(x)}
	case *string:
		if x != nil {
			return Dynamic{v: ImmutableString(*x)}
		}
	}
	return Dynamic{v: v}
}

func (d Dynamic) Any() any {
	if d.v == nil {
		return Unit{}
	}
	return d.v
}

func (d Dynamic) IsUnit() bool {
	_, ok := d.Any().(Unit)
	return ok
}

// TypeID returns the identifier of the held value's concrete type.
func (d Dynamic) TypeID() TypeID {
	return reflect.TypeOf(d.Any())
}

func (d Dynamic) TypeName() string {
	return TypeName(d.TypeID())
}

func (d Dynamic) String() string {
	switch x := d.Any().(type) {
	case Unit:
		return "()"
	case ImmutableString:
		return string(x)
	case Array:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(d.v)
}

// TypeOf returns the TypeID of T.
func TypeOf[T any]() TypeID {
	return reflect.TypeFor[T]()
}

// TypeName renders a TypeID stably across runs: package path plus name for
// named types, the type literal otherwise.
func TypeName(t TypeID) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

var (
	stringType    = TypeOf[string]()
	stringPtrType = TypeOf[*string]()
	immStringType = TypeOf[ImmutableString]()
)

// Normalize maps string-like parameter types onto ImmutableString so that
// overloads differing only in string representation hash identically.
func Normalize(t TypeID) TypeID {
	if t == stringType || t == stringPtrType {
		return immStringType
	}
	return t
}

// IsStringType reports whether t is any of the runtime's string types.
func IsStringType(t TypeID) bool {
	return t == stringType || t == stringPtrType || t == immStringType
}
