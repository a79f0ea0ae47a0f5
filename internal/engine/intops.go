package engine

import (
	"log/slog"

	"github.com/roach88/numtower/internal/numeric"
)

// intOps serves the Int, Whole and Natural categories. refine is the
// refinement a result keeps when both operands carry it.
type intOps struct {
	e      *core
	refine numeric.Kind
}

func (o *intOps) operands(op string, a, b numeric.Value) (numeric.Integer, numeric.Integer, error) {
	x, okA := integerOf(a)
	y, okB := integerOf(b)
	if !okA || !okB {
		return numeric.Integer{}, numeric.Integer{}, numeric.NewError(numeric.CodeUnknownOperandType,
			op, "%s operands must be integers, got %s and %s", o.refine, a.Kind(), b.Kind())
	}
	return x, y, nil
}

// wrap builds the result kind: the refinement when every operand carries
// it and the bound holds, Int otherwise.
func (o *intOps) wrap(i numeric.Integer, operands ...numeric.Value) numeric.Value {
	if o.refine != numeric.KindInt {
		shared := true
		for _, v := range operands {
			if v.Kind() != o.refine {
				shared = false
				break
			}
		}
		if shared {
			switch o.refine {
			case numeric.KindWhole:
				if w, err := numeric.WholeOf(i); err == nil {
					return w
				}
			case numeric.KindNatural:
				if n, err := numeric.NaturalOf(i); err == nil {
					return n
				}
			}
		}
	}
	return numeric.IntOf(i)
}

func (o *intOps) binary(op string, a, b numeric.Value, fn func(x, y numeric.Integer) (numeric.Integer, error)) (numeric.Value, error) {
	x, y, err := o.operands(op, a, b)
	if err != nil {
		return nil, err
	}
	r, err := fn(x, y)
	if err != nil {
		return nil, err
	}
	return o.wrap(r, a, b), nil
}

// Add implements Ops.
func (o *intOps) Add(a, b numeric.Value) (numeric.Value, error) {
	return o.binary("int.add", a, b, o.e.ints.Add)
}

// Sub implements Ops.
func (o *intOps) Sub(a, b numeric.Value) (numeric.Value, error) {
	return o.binary("int.sub", a, b, o.e.ints.Sub)
}

// Mul implements Ops.
func (o *intOps) Mul(a, b numeric.Value) (numeric.Value, error) {
	return o.binary("int.mul", a, b, o.e.ints.Mul)
}

// Div implements Ops. The result is always the unreduced Rational a/b.
func (o *intOps) Div(a, b numeric.Value) (numeric.Value, error) {
	x, y, err := o.operands("int.div", a, b)
	if err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, numeric.NewError(numeric.CodeDivisionByZero, "int.div", "%s / 0", x)
	}
	r, err := numeric.NewRational(x, y)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Reciprocal implements Ops. The result is the Rational 1/a.
func (o *intOps) Reciprocal(a numeric.Value) (numeric.Value, error) {
	return o.Div(numeric.NewInt(1), a)
}

// Pow implements Ops. Rational exponents go to rational pow, complex ones
// to the complex power of a real base. Other exponents give Int when the
// result is integral and Rational otherwise.
func (o *intOps) Pow(base, exponent numeric.Value) (numeric.Value, error) {
	x, ok := integerOf(base)
	if !ok {
		return nil, numeric.NewError(numeric.CodeUnknownOperandType, "int.pow", "base must be an integer, got %s", base.Kind())
	}
	b := numeric.RationalOf(x)

	switch exp := exponent.(type) {
	case numeric.Complex:
		slog.Debug("int pow with complex exponent", "base", x.String(), "exponent", exp.String())
		return o.e.complexPowOfReal(b, exp)
	case numeric.Rational:
		r, err := o.e.q.Pow(b, exp)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	e, err := o.e.toRational(exponent)
	if err != nil {
		return nil, err
	}
	r, err := o.e.q.Pow(b, e)
	if err != nil {
		return nil, err
	}
	if r.IsIntegral() {
		i, err := o.e.ints.Quo(r.Num(), r.Den())
		if err != nil {
			return nil, err
		}
		return o.wrap(i, base, exponent), nil
	}
	return r, nil
}

// Sqrt implements Ops. Perfect squares stay integers; other roots are
// Rational approximations; negative operands give i·√|a|.
func (o *intOps) Sqrt(a numeric.Value) (numeric.Value, error) {
	x, ok := integerOf(a)
	if !ok {
		return nil, numeric.NewError(numeric.CodeUnknownOperandType, "int.sqrt", "operand must be an integer, got %s", a.Kind())
	}
	if x.Sign() < 0 {
		abs, err := o.e.ints.Abs(x)
		if err != nil {
			return nil, err
		}
		root, err := o.Sqrt(numeric.IntOf(abs))
		if err != nil {
			return nil, err
		}
		return o.e.imaginary(root)
	}

	root, exact, err := o.e.ints.Sqrt(x)
	if err != nil {
		return nil, err
	}
	if exact {
		return o.wrap(root, a), nil
	}
	r, err := o.e.q.Sqrt(numeric.RationalOf(x))
	if err != nil {
		return nil, err
	}
	return r, nil
}
