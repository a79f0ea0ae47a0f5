// Package rational implements exact fraction arithmetic on top of an integer
// primitive.
//
// Results are stored exactly as computed and are never reduced to lowest
// terms; Reduce is the explicit canonicalisation. Operations that cannot be
// exact (roots of non-squares, non-integral powers) go through the real
// primitive and come back as rationals.
package rational

import (
	"log/slog"
	"math"

	"github.com/roach88/numtower/internal/numeric"
	"github.com/roach88/numtower/internal/primitive"
)

// maxPowBits bounds the size of an exact power's numerator and denominator.
// Larger powers are approximated through the real primitive.
const maxPowBits = 1 << 20

// Arith performs rational arithmetic. It holds no mutable state.
type Arith struct {
	ints  primitive.Ints
	reals primitive.Reals
}

// New returns an Arith over the given primitives.
func New(ints primitive.Ints, reals primitive.Reals) *Arith {
	return &Arith{ints: ints, reals: reals}
}

// Ints returns the integer primitive.
func (r *Arith) Ints() primitive.Ints { return r.ints }

// Reals returns the real primitive.
func (r *Arith) Reals() primitive.Reals { return r.reals }

// FromInteger returns i/1.
func FromInteger(i numeric.Integer) numeric.Rational {
	return numeric.RationalOf(i)
}

func (r *Arith) check(a numeric.Rational) error {
	if err := r.ints.Check(a.Num()); err != nil {
		return err
	}
	return r.ints.Check(a.Den())
}

// Add returns a+b over lcm(a.den, b.den).
func (r *Arith) Add(a, b numeric.Rational) (numeric.Rational, error) {
	return r.combine(a, b, r.ints.Add)
}

// Sub returns a-b over lcm(a.den, b.den).
func (r *Arith) Sub(a, b numeric.Rational) (numeric.Rational, error) {
	return r.combine(a, b, r.ints.Sub)
}

func (r *Arith) combine(a, b numeric.Rational, op func(x, y numeric.Integer) (numeric.Integer, error)) (numeric.Rational, error) {
	d, err := r.ints.LCM(a.Den(), b.Den())
	if err != nil {
		return numeric.Rational{}, err
	}
	x, err := r.scale(a, d)
	if err != nil {
		return numeric.Rational{}, err
	}
	y, err := r.scale(b, d)
	if err != nil {
		return numeric.Rational{}, err
	}
	n, err := op(x, y)
	if err != nil {
		return numeric.Rational{}, err
	}
	return numeric.NewRational(n, d)
}

// scale returns a.num·(d/a.den).
func (r *Arith) scale(a numeric.Rational, d numeric.Integer) (numeric.Integer, error) {
	f, err := r.ints.Quo(d, a.Den())
	if err != nil {
		return numeric.Integer{}, err
	}
	return r.ints.Mul(a.Num(), f)
}

// Mul returns (a.num·b.num)/(a.den·b.den).
func (r *Arith) Mul(a, b numeric.Rational) (numeric.Rational, error) {
	n, err := r.ints.Mul(a.Num(), b.Num())
	if err != nil {
		return numeric.Rational{}, err
	}
	d, err := r.ints.Mul(a.Den(), b.Den())
	if err != nil {
		return numeric.Rational{}, err
	}
	return numeric.NewRational(n, d)
}

// Div returns (a.num·b.den)/(a.den·b.num). A zero b fails with
// DIVISION_BY_ZERO.
func (r *Arith) Div(a, b numeric.Rational) (numeric.Rational, error) {
	if b.IsZero() {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDivisionByZero, "rational.div", "%s / %s", a, b)
	}
	n, err := r.ints.Mul(a.Num(), b.Den())
	if err != nil {
		return numeric.Rational{}, err
	}
	d, err := r.ints.Mul(a.Den(), b.Num())
	if err != nil {
		return numeric.Rational{}, err
	}
	return numeric.NewRational(n, d)
}

// Reciprocal returns den/num.
func (r *Arith) Reciprocal(a numeric.Rational) (numeric.Rational, error) {
	if a.IsZero() {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDivisionByZero, "rational.reciprocal", "reciprocal of %s", a)
	}
	if err := r.check(a); err != nil {
		return numeric.Rational{}, err
	}
	return numeric.NewRational(a.Den(), a.Num())
}

// Neg returns -a.
func (r *Arith) Neg(a numeric.Rational) (numeric.Rational, error) {
	n, err := r.ints.Neg(a.Num())
	if err != nil {
		return numeric.Rational{}, err
	}
	return numeric.NewRational(n, a.Den())
}

// Abs returns |a| with the sign moved to the numerator.
func (r *Arith) Abs(a numeric.Rational) (numeric.Rational, error) {
	a, err := r.Normalize(a)
	if err != nil {
		return numeric.Rational{}, err
	}
	if a.Sign() < 0 {
		return r.Neg(a)
	}
	return a, nil
}

// Normalize moves a negative denominator's sign to the numerator.
func (r *Arith) Normalize(a numeric.Rational) (numeric.Rational, error) {
	if a.Den().Sign() > 0 {
		return a, nil
	}
	n, err := r.ints.Neg(a.Num())
	if err != nil {
		return numeric.Rational{}, err
	}
	d, err := r.ints.Neg(a.Den())
	if err != nil {
		return numeric.Rational{}, err
	}
	return numeric.NewRational(n, d)
}

// Reduce returns a in lowest terms with a positive denominator.
func (r *Arith) Reduce(a numeric.Rational) (numeric.Rational, error) {
	a, err := r.Normalize(a)
	if err != nil {
		return numeric.Rational{}, err
	}
	g, err := r.ints.GCD(a.Num(), a.Den())
	if err != nil {
		return numeric.Rational{}, err
	}
	if g.IsZero() || g.IsOne() {
		return a, nil
	}
	n, err := r.ints.Quo(a.Num(), g)
	if err != nil {
		return numeric.Rational{}, err
	}
	d, err := r.ints.Quo(a.Den(), g)
	if err != nil {
		return numeric.Rational{}, err
	}
	return numeric.NewRational(n, d)
}

// IsIntegral reports whether a has no fractional part.
func IsIntegral(a numeric.Rational) bool {
	return a.IsIntegral()
}

// Compare returns the sign of a-b.
func (r *Arith) Compare(a, b numeric.Rational) (int, error) {
	d, err := r.Sub(a, b)
	if err != nil {
		return 0, err
	}
	return d.Sign(), nil
}

// Pow returns a^e. Integral exponents are computed exactly; when the
// integer primitive overflows, or the result would exceed maxPowBits, the
// whole value is raised through the real primitive instead, and if that
// fails too the overflow is reported. Non-integral exponents raise
// numerator and denominator separately through the real primitive and
// divide.
func (r *Arith) Pow(a, e numeric.Rational) (numeric.Rational, error) {
	if e.IsZero() {
		return numeric.MustRational(1, 1), nil
	}
	if a.IsZero() {
		if e.Sign() < 0 {
			return numeric.Rational{}, numeric.NewError(numeric.CodeDivisionByZero, "rational.pow", "0 ^ %s", e)
		}
		return numeric.MustRational(0, 1), nil
	}
	if e.IsIntegral() {
		res, err := r.powExact(a, e)
		if err == nil {
			return res, nil
		}
		if !numeric.IsOverflow(err) {
			return numeric.Rational{}, err
		}
		slog.Warn("exact power overflowed, approximating",
			"base", a.String(),
			"exponent", e.String(),
			"ints", r.ints.Name())
		approx, aerr := r.reals.Pow(a, e)
		if aerr != nil {
			return numeric.Rational{}, err
		}
		return approx, nil
	}
	return r.powApprox(a, e)
}

func (r *Arith) powExact(a, e numeric.Rational) (numeric.Rational, error) {
	k, err := r.ints.Quo(e.Num(), e.Den())
	if err != nil {
		return numeric.Rational{}, err
	}
	kb := k.Big()
	neg := kb.Sign() < 0
	kb.Abs(kb)
	if !kb.IsUint64() || kb.Uint64() > math.MaxInt32 {
		return numeric.Rational{}, numeric.NewError(numeric.CodeIntegerOverflow, "rational.pow", "exponent %s too large", e)
	}
	n := kb.Uint64()
	if bits := powBits(a, n); bits > maxPowBits {
		return numeric.Rational{}, numeric.NewError(numeric.CodeIntegerOverflow, "rational.pow",
			"%s ^ %s needs about %d bits", a, e, bits)
	}

	num, err := r.ints.Pow(a.Num(), n)
	if err != nil {
		return numeric.Rational{}, err
	}
	den, err := r.ints.Pow(a.Den(), n)
	if err != nil {
		return numeric.Rational{}, err
	}
	if neg {
		inv, err := numeric.NewRational(den, num)
		if err != nil {
			return numeric.Rational{}, err
		}
		return r.Normalize(inv)
	}
	return numeric.NewRational(num, den)
}

// powBits is an upper bound on the bit length of the larger term of a^n.
// Terms of magnitude 0 or 1 stay that size.
func powBits(a numeric.Rational, n uint64) uint64 {
	b := uint64(max(a.Num().BitLen(), a.Den().BitLen()))
	if b <= 1 {
		return b
	}
	return b * n
}

func (r *Arith) powApprox(a, e numeric.Rational) (numeric.Rational, error) {
	a, err := r.Normalize(a)
	if err != nil {
		return numeric.Rational{}, err
	}
	num, err := r.reals.Pow(FromInteger(a.Num()), e)
	if err != nil {
		return numeric.Rational{}, err
	}
	den, err := r.reals.Pow(FromInteger(a.Den()), e)
	if err != nil {
		return numeric.Rational{}, err
	}
	return r.Div(num, den)
}

// Sqrt returns √a, exactly when numerator and denominator are perfect
// squares. A negative a fails with DOMAIN.
func (r *Arith) Sqrt(a numeric.Rational) (numeric.Rational, error) {
	a, err := r.Normalize(a)
	if err != nil {
		return numeric.Rational{}, err
	}
	if a.Sign() < 0 {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "rational.sqrt", "negative operand %s", a)
	}
	n, nExact, err := r.ints.Sqrt(a.Num())
	if err != nil {
		return numeric.Rational{}, err
	}
	d, dExact, err := r.ints.Sqrt(a.Den())
	if err != nil {
		return numeric.Rational{}, err
	}
	if nExact && dExact {
		return numeric.NewRational(n, d)
	}

	num, err := r.reals.Sqrt(FromInteger(a.Num()))
	if err != nil {
		return numeric.Rational{}, err
	}
	den, err := r.reals.Sqrt(FromInteger(a.Den()))
	if err != nil {
		return numeric.Rational{}, err
	}
	return r.Div(num, den)
}

// FromFloat converts a float64 with the real primitive's strategy.
func (r *Arith) FromFloat(f float64) (numeric.Rational, error) {
	return r.reals.FromFloat(f)
}
