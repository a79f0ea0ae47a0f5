// Package compare orders numeric values under a calculator engine.
//
// Real values compare exactly as rationals. Complex pairs compare by real
// part when both are real and by float modulus otherwise. Every predicate
// is derived from Compare or CompareWithin.
package compare

import (
	"fmt"
	"math"
	"math/big"

	"github.com/roach88/numtower/internal/engine"
	"github.com/roach88/numtower/internal/numeric"
)

// Comparator is bound to one engine; floats are converted with that
// engine's float strategy.
type Comparator struct {
	e engine.Engine
}

// New returns a Comparator over e.
func New(e engine.Engine) *Comparator {
	return &Comparator{e: e}
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func (c *Comparator) Compare(a, b numeric.Value) (int, error) {
	za, aok := a.(numeric.Complex)
	zb, bok := b.(numeric.Complex)
	if !aok && !bok {
		return c.compareReal(a, b)
	}

	x, err := c.e.Promote(a)
	if err != nil {
		return 0, err
	}
	y, err := c.e.Promote(b)
	if err != nil {
		return 0, err
	}
	if aok {
		x = za
	}
	if bok {
		y = zb
	}
	if x.IsReal() && y.IsReal() {
		return c.compareReal(x.Real(), y.Real())
	}
	return sign(modulus(x) - modulus(y)), nil
}

// CompareWithin is Compare with equality widened to |a-b| <= tolerance.
func (c *Comparator) CompareWithin(a, b numeric.Value, tolerance float64) (int, error) {
	if tolerance < 0 || math.IsNaN(tolerance) {
		return 0, numeric.NewError(numeric.CodeDomain, "compare", "tolerance %v is negative", tolerance)
	}
	d, err := c.distance(a, b)
	if err != nil {
		return 0, err
	}
	if d <= tolerance {
		return 0, nil
	}
	return c.Compare(a, b)
}

func (c *Comparator) compareReal(a, b numeric.Value) (int, error) {
	d, err := c.e.Rational().Sub(a, b)
	if numeric.IsOverflow(err) {
		x, y, xerr := exactRats(a, b)
		if xerr != nil {
			return 0, fmt.Errorf("compare %s with %s: %w", a, b, xerr)
		}
		return x.Cmp(y), nil
	}
	if err != nil {
		return 0, fmt.Errorf("compare %s with %s: %w", a, b, err)
	}
	r, ok := d.(numeric.Rational)
	if !ok {
		return 0, numeric.NewError(numeric.CodeUnknownOperandType, "compare", "difference is %s", d.Kind())
	}
	return r.Sign(), nil
}

// distance returns |a-b| as a float64.
func (c *Comparator) distance(a, b numeric.Value) (float64, error) {
	_, aok := a.(numeric.Complex)
	_, bok := b.(numeric.Complex)
	if aok || bok {
		d, err := c.e.Complex().Sub(a, b)
		if numeric.IsOverflow(err) {
			return exactComplexDistance(a, b)
		}
		if err != nil {
			return 0, err
		}
		return modulus(d.(numeric.Complex)), nil
	}
	d, err := c.e.Rational().Sub(a, b)
	if numeric.IsOverflow(err) {
		x, y, xerr := exactRats(a, b)
		if xerr != nil {
			return 0, xerr
		}
		f, _ := new(big.Rat).Sub(x, y).Float64()
		return math.Abs(f), nil
	}
	if err != nil {
		return 0, err
	}
	f, err := numeric.ToFloat(d)
	if err != nil {
		return 0, err
	}
	return math.Abs(float64(f)), nil
}

// exactRats converts two real operands to big.Rat without going through the
// engine's integer primitive, so values the engine admitted always order.
func exactRats(a, b numeric.Value) (*big.Rat, *big.Rat, error) {
	ra, err := numeric.ToRational(a)
	if err != nil {
		return nil, nil, err
	}
	rb, err := numeric.ToRational(b)
	if err != nil {
		return nil, nil, err
	}
	return ra.Rat(), rb.Rat(), nil
}

func exactComplexDistance(a, b numeric.Value) (float64, error) {
	za, err := numeric.ToComplex(a)
	if err != nil {
		return 0, err
	}
	zb, err := numeric.ToComplex(b)
	if err != nil {
		return 0, err
	}
	re, _ := new(big.Rat).Sub(za.Real().Rat(), zb.Real().Rat()).Float64()
	im, _ := new(big.Rat).Sub(za.Imag().Rat(), zb.Imag().Rat()).Float64()
	return math.Hypot(re, im), nil
}

func modulus(z numeric.Complex) float64 {
	return math.Hypot(z.Real().Float64(), z.Imag().Float64())
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

// Eq reports a == b.
func (c *Comparator) Eq(a, b numeric.Value) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r == 0, err
}

// Neq reports a != b.
func (c *Comparator) Neq(a, b numeric.Value) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r != 0, err
}

// Lt reports a < b.
func (c *Comparator) Lt(a, b numeric.Value) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r < 0, err
}

// Lte reports a <= b.
func (c *Comparator) Lte(a, b numeric.Value) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r <= 0, err
}

// Gt reports a > b.
func (c *Comparator) Gt(a, b numeric.Value) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r > 0, err
}

// Gte reports a >= b.
func (c *Comparator) Gte(a, b numeric.Value) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r >= 0, err
}

// Aeq reports |a-b| <= tolerance.
func (c *Comparator) Aeq(a, b numeric.Value, tolerance float64) (bool, error) {
	r, err := c.CompareWithin(a, b, tolerance)
	return err == nil && r == 0, err
}
