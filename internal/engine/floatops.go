package engine

import (
	"math"

	"github.com/roach88/numtower/internal/numeric"
)

// floatOps serves the Float category. The Native engine evaluates in
// float64; the Precision engine evaluates exactly (or at its decimal
// precision) on the binary value of each operand and rounds once.
type floatOps struct {
	e      *core
	native bool
}

func (o *floatOps) floats(a, b numeric.Value) (float64, float64, error) {
	x, err := numeric.ToFloat(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := numeric.ToFloat(b)
	if err != nil {
		return 0, 0, err
	}
	return float64(x), float64(y), nil
}

func (o *floatOps) rationals(a, b numeric.Value) (numeric.Rational, numeric.Rational, error) {
	x, err := numeric.ToRational(a)
	if err != nil {
		return numeric.Rational{}, numeric.Rational{}, err
	}
	y, err := numeric.ToRational(b)
	if err != nil {
		return numeric.Rational{}, numeric.Rational{}, err
	}
	return x, y, nil
}

func finite(op string, f float64) (numeric.Value, error) {
	if math.IsNaN(f) {
		return nil, numeric.NewError(numeric.CodeDomain, op, "result is not a number")
	}
	if math.IsInf(f, 0) {
		return nil, numeric.NewError(numeric.CodeOutOfRange, op, "result exceeds float64")
	}
	return numeric.Float(f), nil
}

func (o *floatOps) binary(op string, a, b numeric.Value,
	native func(x, y float64) float64,
	exact func(x, y numeric.Rational) (numeric.Rational, error),
) (numeric.Value, error) {
	if o.native {
		x, y, err := o.floats(a, b)
		if err != nil {
			return nil, err
		}
		return finite(op, native(x, y))
	}
	x, y, err := o.rationals(a, b)
	if err != nil {
		return nil, err
	}
	r, err := exact(x, y)
	if err != nil {
		return nil, err
	}
	return finite(op, r.Float64())
}

// Add implements Ops.
func (o *floatOps) Add(a, b numeric.Value) (numeric.Value, error) {
	return o.binary("float.add", a, b, func(x, y float64) float64 { return x + y }, o.e.q.Add)
}

// Sub implements Ops.
func (o *floatOps) Sub(a, b numeric.Value) (numeric.Value, error) {
	return o.binary("float.sub", a, b, func(x, y float64) float64 { return x - y }, o.e.q.Sub)
}

// Mul implements Ops.
func (o *floatOps) Mul(a, b numeric.Value) (numeric.Value, error) {
	return o.binary("float.mul", a, b, func(x, y float64) float64 { return x * y }, o.e.q.Mul)
}

// Div implements Ops. A zero divisor fails with DIVISION_BY_ZERO.
func (o *floatOps) Div(a, b numeric.Value) (numeric.Value, error) {
	y, err := numeric.ToFloat(b)
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, numeric.NewError(numeric.CodeDivisionByZero, "float.div", "%s / 0", a)
	}
	return o.binary("float.div", a, b, func(x, y float64) float64 { return x / y }, o.e.q.Div)
}

// Reciprocal implements Ops.
func (o *floatOps) Reciprocal(a numeric.Value) (numeric.Value, error) {
	return o.Div(numeric.Float(1), a)
}

// Pow implements Ops. Complex exponents go to the complex power of a real
// base.
func (o *floatOps) Pow(base, exponent numeric.Value) (numeric.Value, error) {
	if exp, ok := exponent.(numeric.Complex); ok && !exp.IsReal() {
		b, err := o.e.toRational(base)
		if err != nil {
			return nil, err
		}
		return o.e.complexPowOfReal(b, exp)
	}
	if o.native {
		x, y, err := o.floats(base, exponent)
		if err != nil {
			return nil, err
		}
		if x == 0 && y < 0 {
			return nil, numeric.NewError(numeric.CodeDivisionByZero, "float.pow", "0 ^ %v", y)
		}
		return finite("float.pow", math.Pow(x, y))
	}
	x, y, err := o.rationals(base, exponent)
	if err != nil {
		return nil, err
	}
	r, err := o.e.q.Pow(x, y)
	if err != nil {
		return nil, err
	}
	return finite("float.pow", r.Float64())
}

// Sqrt implements Ops. Negative operands give i·√|a|.
func (o *floatOps) Sqrt(a numeric.Value) (numeric.Value, error) {
	f, err := numeric.ToFloat(a)
	if err != nil {
		return nil, err
	}
	if f < 0 {
		root, err := o.Sqrt(-f)
		if err != nil {
			return nil, err
		}
		return o.e.imaginary(root)
	}
	if o.native {
		return finite("float.sqrt", math.Sqrt(float64(f)))
	}
	x, err := numeric.ToRational(f)
	if err != nil {
		return nil, err
	}
	r, err := o.e.reals.Sqrt(x)
	if err != nil {
		return nil, err
	}
	return finite("float.sqrt", r.Float64())
}
