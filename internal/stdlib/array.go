package stdlib

import (
	"errors"
	"fmt"
	"slices"

	"github.com/funvibe/modcore/internal/module"
	"github.com/funvibe/modcore/internal/value"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// IntRange is a lazy sequence of integers produced by range.
type IntRange func(yield func(int64) bool)

// Vector is a fixed-type numeric array with its own indexer.
type Vector []float64

func checkIndex(i int64, n int) error {
	if i < 0 || i >= int64(n) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

func buildArray() *module.Module {
	m := module.New()

	h := module.SetFn1(m, "len", func(a value.Array) (int64, error) { return int64(len(a)), nil })
	m.UpdateFnMetadata(h, "a: Array", "Int")
	h = module.SetFn2Mut(m, "push", module.Global, func(a *value.Array, v value.Dynamic) (value.Unit, error) {
		*a = append(*a, v)
		return value.Unit{}, nil
	})
	m.UpdateFnMetadata(h, "a: Array", "v: Dynamic", "()")
	h = module.SetFn1Mut(m, "pop", module.Global, func(a *value.Array) (value.Dynamic, error) {
		if len(*a) == 0 {
			return value.UnitValue, nil
		}
		last := (*a)[len(*a)-1]
		*a = (*a)[:len(*a)-1]
		return last, nil
	})
	m.UpdateFnMetadata(h, "a: Array", "Dynamic")
	h = module.SetFn1(m, "reverse", func(a value.Array) (value.Array, error) {
		out := slices.Clone(a)
		slices.Reverse(out)
		return out, nil
	})
	m.UpdateFnMetadata(h, "a: Array", "Array")

	h = module.SetFn3(m, "range", func(start, end, step int64) (IntRange, error) {
		if step == 0 {
			return nil, errors.New("range step cannot be zero")
		}
		return func(yield func(int64) bool) {
			for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
				if !yield(i) {
					return
				}
			}
		}, nil
	})
	m.UpdateFnMetadata(h, "start: Int", "end: Int", "step: Int", "Range")
	module.SetIterator[IntRange](m)

	h = module.SetFn1(m, "vector", func(n int64) (Vector, error) {
		if n < 0 {
			return nil, fmt.Errorf("negative vector length %d", n)
		}
		return make(Vector, n), nil
	})
	m.UpdateFnMetadata(h, "n: Int", "Vector")
	module.SetIterable[Vector](m)
	module.SetGetterFn(m, "len", func(v *Vector) (int64, error) { return int64(len(*v)), nil })
	module.SetIndexerGetSetFn(m,
		func(v *Vector, i int64) (float64, error) {
			if err := checkIndex(i, len(*v)); err != nil {
				return 0, err
			}
			return (*v)[i], nil
		},
		func(v *Vector, i int64, x float64) error {
			if err := checkIndex(i, len(*v)); err != nil {
				return err
			}
			(*v)[i] = x
			return nil
		})

	return m
}
