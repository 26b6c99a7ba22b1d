// Package ctylib exposes the go-cty function library as a native module and
// converts between cty values and runtime values.
package ctylib

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/funvibe/modcore/internal/value"
)

// ToDynamic converts v to its runtime counterpart. Whole numbers that fit
// become int64, other numbers float64. Null values become unit.
func ToDynamic(v cty.Value) (value.Dynamic, error) {
	if v.IsNull() {
		return value.UnitValue, nil
	}
	if !v.IsKnown() {
		return value.UnitValue, fmt.Errorf("cannot convert unknown %s value", v.Type().FriendlyName())
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return value.From(value.ImmutableString(v.AsString())), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return value.From(i), nil
			}
		}
		f, _ := bf.Float64()
		return value.From(f), nil

	case ty == cty.Bool:
		return value.From(v.True()), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		arr := make(value.Array, 0)
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			d, err := ToDynamic(el)
			if err != nil {
				return value.UnitValue, err
			}
			arr = append(arr, d)
		}
		return value.From(arr), nil

	case ty.IsMapType() || ty.IsObjectType():
		obj := make(value.Map)
		for it := v.ElementIterator(); it.Next(); {
			k, el := it.Element()
			d, err := ToDynamic(el)
			if err != nil {
				return value.UnitValue, fmt.Errorf("in attribute %q: %w", k.AsString(), err)
			}
			obj[k.AsString()] = d
		}
		return value.From(obj), nil

	case ty.IsCapsuleType():
		return value.From(v.EncapsulatedValue()), nil
	}
	return value.UnitValue, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
}

// FromDynamic converts a runtime value to cty. Arrays become tuples and maps
// become objects, so elements keep their own types.
func FromDynamic(d value.Dynamic) (cty.Value, error) {
	switch x := d.Any().(type) {
	case value.Unit:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case value.ImmutableString:
		return cty.StringVal(string(x)), nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case value.Array:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(x))
		for i, el := range x {
			v, err := FromDynamic(el)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			vals[i] = v
		}
		return cty.TupleVal(vals), nil
	case value.Map:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, el := range x {
			v, err := FromDynamic(el)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute %q: %w", k, err)
			}
			attrs[k] = v
		}
		return cty.ObjectVal(attrs), nil
	case cty.Value:
		return x, nil
	}

	// Plain Go data (structs with cty tags, slices, maps) goes through gocty.
	raw := d.Any()
	ty, err := gocty.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot convert %s to cty: %w", value.TypeName(reflect.TypeOf(raw)), err)
	}
	return gocty.ToCtyValue(raw, ty)
}
