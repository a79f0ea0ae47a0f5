package engine

import (
	"github.com/roach88/numtower/internal/cplx"
	"github.com/roach88/numtower/internal/numeric"
)

// complexOps serves the Complex and Mixed categories. Non-complex operands
// are promoted with a zero imaginary part.
type complexOps struct {
	e *core
}

func (o *complexOps) binary(a, b numeric.Value, fn func(x, y numeric.Complex) (numeric.Complex, error)) (numeric.Value, error) {
	x, err := o.e.toComplex(a)
	if err != nil {
		return nil, err
	}
	y, err := o.e.toComplex(b)
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
func (o *complexOps) Add(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.c.Add)
}

// Sub implements Ops.
func (o *complexOps) Sub(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.c.Sub)
}

// Mul implements Ops.
func (o *complexOps) Mul(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.c.Mul)
}

// Div implements Ops. A zero divisor fails with COMPLEX_ZERO_DIVISION.
func (o *complexOps) Div(a, b numeric.Value) (numeric.Value, error) {
	return o.binary(a, b, o.e.c.Div)
}

// Pow implements Ops.
func (o *complexOps) Pow(base, exponent numeric.Value) (numeric.Value, error) {
	return o.binary(base, exponent, o.e.c.Pow)
}

// Reciprocal implements Ops. A zero operand fails with
// COMPLEX_ZERO_DIVISION.
func (o *complexOps) Reciprocal(a numeric.Value) (numeric.Value, error) {
	x, err := o.e.toComplex(a)
	if err != nil {
		return nil, err
	}
	r, err := o.e.c.Reciprocal(x)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Sqrt implements Ops.
func (o *complexOps) Sqrt(a numeric.Value) (numeric.Value, error) {
	x, err := o.e.toComplex(a)
	if err != nil {
		return nil, err
	}
	r, err := o.e.c.Sqrt(x)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// complexPowOfReal raises a real base to a complex exponent.
func (e *core) complexPowOfReal(base numeric.Rational, exp numeric.Complex) (numeric.Value, error) {
	var (
		r   numeric.Complex
		err error
	)
	if base.Sign() > 0 {
		r, err = e.c.RealToComplexPower(base, exp)
	} else {
		r, err = e.c.Pow(cplx.Promote(base), exp)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// imaginary returns 0 + v·i.
func (e *core) imaginary(v numeric.Value) (numeric.Value, error) {
	im, err := e.toRational(v)
	if err != nil {
		return nil, err
	}
	return numeric.NewComplex(numeric.MustRational(0, 1), im), nil
}
