package engine

import (
	"github.com/roach88/numtower/internal/numeric"
)

// rationalOps serves the Rational category. Non-rational real operands are
// converted first; floats through the engine's float strategy.
type rationalOps struct {
	e *core
}

func (o *rationalOps) binary(a, b numeric.Value, fn func(x, y numeric.Rational) (numeric.Rational, error)) (numeric.Value, error) {
	x, err := o.e.toRational(a)
	if err != nil {
		return nil, err
	}
	y, err := o.e.toRational(b)
	if err != nil {
		return nil, err
	}
	r, err := fn(x, y)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Add implements Ops.
func (o *rationalOps) Add(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.q.Add)
}

// Sub implements Ops.
func (o *rationalOps) Sub(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.q.Sub)
}

// Mul implements Ops.
func (o *rationalOps) Mul(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.q.Mul)
}

// Div implements Ops.
func (o *rationalOps) Div(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.q.Div)
}

// Reciprocal implements Ops.
func (o *rationalOps) Reciprocal(a numeric.Value) (numeric.Value, error) {
	x, err := o.e.toRational(a)
	if err != nil {
		return nil, err
	}
	r, err := o.e.q.Reciprocal(x)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Pow implements Ops. Complex exponents go to the complex power of a real
// base.
func (o *rationalOps) Pow(base, exponent numeric.Value) (numeric.Value, error) {
	b, err := o.e.toRational(base)
	if err != nil {
		return nil, err
	}
	if exp, ok := exponent.(numeric.Complex); ok && !exp.IsReal() {
		return o.e.complexPowOfReal(b, exp)
	}
	return o.binary(b, exponent, o.e.q.Pow)
}

// Sqrt implements Ops. Negative operands give i·√|a|.
func (o *rationalOps) Sqrt(a numeric.Value) (numeric.Value, error) {
	x, err := o.e.toRational(a)
	if err != nil {
		return nil, err
	}
	if x.Sign() < 0 {
		abs, err := o.e.q.Abs(x)
		if err != nil {
			return nil, err
		}
		root, err := o.e.q.Sqrt(abs)
		if err != nil {
			return nil, err
		}
		return o.e.imaginary(root)
	}
	r, err := o.e.q.Sqrt(x)
	if err != nil {
		return nil, err
	}
	return r, nil
}
