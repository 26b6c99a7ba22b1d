package stdlib

import (
	"errors"
	"math"

	"github.com/funvibe/modcore/internal/module"
)

var ErrDivisionByZero = errors.New("division by zero")

func buildMath() *module.Module {
	m := module.New()
	m.SetVar("pi", math.Pi).SetVar("e", math.E)

	registerArith(m, "add",
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) (float64, error) { return a + b, nil })
	registerArith(m, "sub",
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) (float64, error) { return a - b, nil })
	registerArith(m, "mul",
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) (float64, error) { return a * b, nil })
	registerArith(m, "div",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		},
		func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, ErrDivisionByZero
			}
			return a / b, nil
		})
	registerArith(m, "min",
		func(a, b int64) (int64, error) { return min(a, b), nil },
		func(a, b float64) (float64, error) { return math.Min(a, b), nil })
	registerArith(m, "max",
		func(a, b int64) (int64, error) { return max(a, b), nil },
		func(a, b float64) (float64, error) { return math.Max(a, b), nil })

	h := module.SetFn1(m, "abs", func(x int64) (int64, error) {
		if x < 0 {
			return -x, nil
		}
		return x, nil
	})
	m.UpdateFnMetadata(h, "x: Int", "Int")
	h = module.SetFn1(m, "abs", func(x float64) (float64, error) { return math.Abs(x), nil })
	m.UpdateFnMetadata(h, "x: Float", "Float")

	h = module.SetFn1(m, "sqrt", func(x float64) (float64, error) {
		if x < 0 {
			return 0, errors.New("sqrt of negative number")
		}
		return math.Sqrt(x), nil
	})
	m.UpdateFnMetadata(h, "x: Float", "Float")
	h = module.SetFn2(m, "pow", func(x, y float64) (float64, error) { return math.Pow(x, y), nil })
	m.UpdateFnMetadata(h, "x: Float", "y: Float", "Float")
	h = module.SetFn1(m, "to_float", func(x int64) (float64, error) { return float64(x), nil })
	m.UpdateFnMetadata(h, "x: Int", "Float")
	h = module.SetFn1(m, "to_int", func(x float64) (int64, error) { return int64(x), nil })
	m.UpdateFnMetadata(h, "x: Float", "Int")

	return m
}

// registerArith registers the Int and Float overloads of a binary operator.
func registerArith(m *module.Module, name string, ints func(a, b int64) (int64, error), floats func(a, b float64) (float64, error)) {
	h := module.SetFn2(m, name, ints)
	m.UpdateFnMetadata(h, "a: Int", "b: Int", "Int")
	h = module.SetFn2(m, name, floats)
	m.UpdateFnMetadata(h, "a: Float", "b: Float", "Float")
}
