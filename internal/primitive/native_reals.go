package primitive

import (
	"math"

	"github.com/roach88/numtower/internal/numeric"
)

// DefaultFloatTolerance is the relative error accepted when rebuilding a
// rational from a float64.
const DefaultFloatTolerance = 1e-15

// maxConvergents bounds the continued-fraction expansion.
const maxConvergents = 64

// NativeReals implements Reals with float64 and the math package.
type NativeReals struct {
	// Tolerance is the relative error FromFloat stops at. Zero means
	// DefaultFloatTolerance.
	Tolerance float64
}

// Name implements Reals.
func (NativeReals) Name() string { return "native" }

func (n NativeReals) tolerance() float64 {
	if n.Tolerance <= 0 {
		return DefaultFloatTolerance
	}
	return n.Tolerance
}

// FromFloat implements Reals by continued fractions, stopping at the first
// convergent within tolerance or before a term would leave int64.
func (n NativeReals) FromFloat(f float64) (numeric.Rational, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "fromfloat", "%v is not finite", f)
	}
	if math.Abs(f) >= math.MaxInt64 {
		return numeric.Rational{}, numeric.NewError(numeric.CodeIntegerOverflow, "fromfloat", "%v exceeds int64", f)
	}
	if f == math.Trunc(f) {
		return numeric.RationalOf(numeric.NewInteger(int64(f))), nil
	}

	target := math.Abs(f)
	tol := n.tolerance() * target

	// h/k are the convergent numerator and denominator; the *0 values hold
	// the previous convergent.
	var h0, h1 int64 = 0, 1
	var k0, k1 int64 = 1, 0
	limit := float64(math.MaxInt64 >> 1)
	x := target
	for i := 0; i < maxConvergents; i++ {
		a := math.Floor(x)
		if a*float64(h1)+float64(h0) > limit || a*float64(k1)+float64(k0) > limit {
			break
		}
		ai := int64(a)
		h0, h1 = h1, ai*h1+h0
		k0, k1 = k1, ai*k1+k0

		if math.Abs(target-float64(h1)/float64(k1)) <= tol {
			break
		}
		frac := x - a
		if frac == 0 {
			break
		}
		x = 1 / frac
	}
	if k1 == 0 {
		return numeric.Rational{}, numeric.NewError(numeric.CodeIntegerOverflow, "fromfloat", "%v has no int64 convergent", f)
	}
	if f < 0 {
		h1 = -h1
	}
	return numeric.NewRational(numeric.NewInteger(h1), numeric.NewInteger(k1))
}

func (n NativeReals) result(op string, f float64) (numeric.Rational, error) {
	if math.IsNaN(f) {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, op, "result is not a number")
	}
	if math.IsInf(f, 0) {
		return numeric.Rational{}, numeric.NewError(numeric.CodeIntegerOverflow, op, "result exceeds float64")
	}
	return n.FromFloat(f)
}

// Sqrt implements Reals.
func (n NativeReals) Sqrt(x numeric.Rational) (numeric.Rational, error) {
	if x.Sign() < 0 {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "sqrt", "negative operand %s", x)
	}
	return n.result("sqrt", math.Sqrt(x.Float64()))
}

// Pow implements Reals.
func (n NativeReals) Pow(x, y numeric.Rational) (numeric.Rational, error) {
	if x.Sign() < 0 && !y.IsIntegral() {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "pow", "%s ^ %s is not real", x, y)
	}
	if x.IsZero() && y.Sign() < 0 {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDivisionByZero, "pow", "0 ^ %s", y)
	}
	return n.result("pow", math.Pow(x.Float64(), y.Float64()))
}

// Exp implements Reals.
func (n NativeReals) Exp(x numeric.Rational) (numeric.Rational, error) {
	return n.result("exp", math.Exp(x.Float64()))
}

// Cos implements Reals.
func (n NativeReals) Cos(x numeric.Rational) (numeric.Rational, error) {
	return n.result("cos", math.Cos(x.Float64()))
}

// Sin implements Reals.
func (n NativeReals) Sin(x numeric.Rational) (numeric.Rational, error) {
	return n.result("sin", math.Sin(x.Float64()))
}

// Atan2 implements Reals.
func (n NativeReals) Atan2(y, x numeric.Rational) (numeric.Rational, error) {
	return n.result("atan2", math.Atan2(y.Float64(), x.Float64()))
}
