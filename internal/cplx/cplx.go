// Package cplx implements complex arithmetic over rational components.
//
// Rectangular operations (add, sub, mul, div, reciprocal) are exact and
// built from the rational package. Polar operations (modulus, theta, pow,
// sqrt) go through the real primitive and the configured logarithm.
package cplx

import (
	"github.com/roach88/numtower/internal/natlog"
	"github.com/roach88/numtower/internal/numeric"
	"github.com/roach88/numtower/internal/rational"
)

// Arith performs complex arithmetic. It holds no mutable state.
type Arith struct {
	q  *rational.Arith
	ln natlog.Method
}

// New returns an Arith over q, taking logarithms with ln.
func New(q *rational.Arith, ln natlog.Method) *Arith {
	return &Arith{q: q, ln: ln}
}

var (
	zero = numeric.MustRational(0, 1)
	one  = numeric.MustRational(1, 1)
	half = numeric.MustRational(1, 2)
)

func zeroDivision(op string, a numeric.Complex) error {
	return numeric.NewError(numeric.CodeComplexZeroDivision, op, "zero complex operand %s", a)
}

// Promote returns r + 0i.
func Promote(r numeric.Rational) numeric.Complex {
	return numeric.NewComplex(r, zero)
}

// Add returns a+b componentwise.
func (c *Arith) Add(a, b numeric.Complex) (numeric.Complex, error) {
	re, err := c.q.Add(a.Real(), b.Real())
	if err != nil {
		return numeric.Complex{}, err
	}
	im, err := c.q.Add(a.Imag(), b.Imag())
	if err != nil {
		return numeric.Complex{}, err
	}
	return numeric.NewComplex(re, im), nil
}

// Sub returns a-b componentwise.
func (c *Arith) Sub(a, b numeric.Complex) (numeric.Complex, error) {
	re, err := c.q.Sub(a.Real(), b.Real())
	if err != nil {
		return numeric.Complex{}, err
	}
	im, err := c.q.Sub(a.Imag(), b.Imag())
	if err != nil {
		return numeric.Complex{}, err
	}
	return numeric.NewComplex(re, im), nil
}

// Mul returns (ar·br − ai·bi) + (ai·br + ar·bi)i.
func (c *Arith) Mul(a, b numeric.Complex) (numeric.Complex, error) {
	var e errs
	re := e.sub(c.q, e.mul(c.q, a.Real(), b.Real()), e.mul(c.q, a.Imag(), b.Imag()))
	im := e.add(c.q, e.mul(c.q, a.Imag(), b.Real()), e.mul(c.q, a.Real(), b.Imag()))
	if e.err != nil {
		return numeric.Complex{}, e.err
	}
	return numeric.NewComplex(re, im), nil
}

// Div returns a/b. A zero b fails with COMPLEX_ZERO_DIVISION.
func (c *Arith) Div(a, b numeric.Complex) (numeric.Complex, error) {
	if b.IsZero() {
		return numeric.Complex{}, zeroDivision("complex.div", b)
	}
	var e errs
	div := e.add(c.q, e.mul(c.q, b.Real(), b.Real()), e.mul(c.q, b.Imag(), b.Imag()))
	re := e.add(c.q, e.mul(c.q, a.Real(), b.Real()), e.mul(c.q, a.Imag(), b.Imag()))
	im := e.sub(c.q, e.mul(c.q, a.Imag(), b.Real()), e.mul(c.q, a.Real(), b.Imag()))
	re = e.div(c.q, re, div)
	im = e.div(c.q, im, div)
	if e.err != nil {
		return numeric.Complex{}, e.err
	}
	return numeric.NewComplex(re, im), nil
}

// Reciprocal returns (ar/d) + (ai/d)i with d = ar² + ai². The imaginary
// sign is kept as is: the result is a/|a|², not the conjugate quotient.
func (c *Arith) Reciprocal(a numeric.Complex) (numeric.Complex, error) {
	if a.IsZero() {
		return numeric.Complex{}, zeroDivision("complex.reciprocal", a)
	}
	var e errs
	div := e.add(c.q, e.mul(c.q, a.Real(), a.Real()), e.mul(c.q, a.Imag(), a.Imag()))
	re := e.div(c.q, a.Real(), div)
	im := e.div(c.q, a.Imag(), div)
	if e.err != nil {
		return numeric.Complex{}, e.err
	}
	return numeric.NewComplex(re, im), nil
}

// Modulus returns √(ar² + ai²), exact when the sum is a perfect square.
func (c *Arith) Modulus(a numeric.Complex) (numeric.Rational, error) {
	if a.IsReal() {
		return c.q.Abs(a.Real())
	}
	var e errs
	sq := e.add(c.q, e.mul(c.q, a.Real(), a.Real()), e.mul(c.q, a.Imag(), a.Imag()))
	if e.err != nil {
		return numeric.Rational{}, e.err
	}
	return c.q.Sqrt(sq)
}

// Theta returns atan2(ai, ar).
func (c *Arith) Theta(a numeric.Complex) (numeric.Rational, error) {
	return c.q.Reals().Atan2(a.Imag(), a.Real())
}

// Pow returns a^e. Zero bases give 1 for a zero exponent and 0 otherwise.
// Real exponents use De Moivre; a positive real base with a complex
// exponent uses RealToComplexPower; anything else uses the polar-log form.
func (c *Arith) Pow(a, e numeric.Complex) (numeric.Complex, error) {
	if a.IsZero() {
		if e.IsZero() {
			return Promote(one), nil
		}
		return Promote(zero), nil
	}
	if e.IsReal() {
		return c.deMoivre(a, e.Real())
	}
	if a.IsReal() && a.Real().Sign() > 0 {
		return c.RealToComplexPower(a.Real(), e)
	}
	return c.polarLog(a, e)
}

// Sqrt returns a^(1/2).
func (c *Arith) Sqrt(a numeric.Complex) (numeric.Complex, error) {
	return c.Pow(a, Promote(half))
}

// deMoivre returns ρ(cos β + i sin β) with ρ = |a|^n and β = n·θ.
func (c *Arith) deMoivre(a numeric.Complex, n numeric.Rational) (numeric.Complex, error) {
	mod, err := c.Modulus(a)
	if err != nil {
		return numeric.Complex{}, err
	}
	rho, err := c.q.Pow(mod, n)
	if err != nil {
		return numeric.Complex{}, err
	}
	theta, err := c.Theta(a)
	if err != nil {
		return numeric.Complex{}, err
	}
	beta, err := c.q.Mul(n, theta)
	if err != nil {
		return numeric.Complex{}, err
	}
	return c.fromPolar(rho, beta)
}

// polarLog returns ρ(cos β + i sin β) with ρ = exp(ln|a|·er − ei·θ) and
// β = θ·er + ei·ln|a|.
func (c *Arith) polarLog(a, e numeric.Complex) (numeric.Complex, error) {
	mod, err := c.Modulus(a)
	if err != nil {
		return numeric.Complex{}, err
	}
	logr, err := c.ln.Ln(mod)
	if err != nil {
		return numeric.Complex{}, err
	}
	theta, err := c.Theta(a)
	if err != nil {
		return numeric.Complex{}, err
	}

	var x errs
	er, ei := e.Real(), e.Imag()
	power := x.sub(c.q, x.mul(c.q, logr, er), x.mul(c.q, ei, theta))
	beta := x.add(c.q, x.mul(c.q, theta, er), x.mul(c.q, ei, logr))
	if x.err != nil {
		return numeric.Complex{}, x.err
	}
	rho, err := c.q.Reals().Exp(power)
	if err != nil {
		return numeric.Complex{}, err
	}
	return c.fromPolar(rho, beta)
}

// RealToComplexPower returns n^(er + ei·i) for n > 0:
// (cos(ei·ln n) + i sin(ei·ln n)), scaled by n^er when er ≠ 0.
func (c *Arith) RealToComplexPower(n numeric.Rational, e numeric.Complex) (numeric.Complex, error) {
	if n.Sign() <= 0 {
		return c.polarLog(Promote(n), e)
	}
	lnN, err := c.ln.Ln(n)
	if err != nil {
		return numeric.Complex{}, err
	}
	angle, err := c.q.Mul(e.Imag(), lnN)
	if err != nil {
		return numeric.Complex{}, err
	}
	scale := one
	if !e.Real().IsZero() {
		if scale, err = c.q.Pow(n, e.Real()); err != nil {
			return numeric.Complex{}, err
		}
	}
	return c.fromPolar(scale, angle)
}

func (c *Arith) fromPolar(rho, beta numeric.Rational) (numeric.Complex, error) {
	reals := c.q.Reals()
	cos, err := reals.Cos(beta)
	if err != nil {
		return numeric.Complex{}, err
	}
	sin, err := reals.Sin(beta)
	if err != nil {
		return numeric.Complex{}, err
	}
	re, err := c.q.Mul(rho, cos)
	if err != nil {
		return numeric.Complex{}, err
	}
	im, err := c.q.Mul(rho, sin)
	if err != nil {
		return numeric.Complex{}, err
	}
	return numeric.NewComplex(re, im), nil
}

// errs threads the first error through a chain of rational operations.
type errs struct{ err error }

func (e *errs) run(f func() (numeric.Rational, error)) numeric.Rational {
	if e.err != nil {
		return numeric.Rational{}
	}
	r, err := f()
	if err != nil {
		e.err = err
	}
	return r
}

func (e *errs) add(q *rational.Arith, a, b numeric.Rational) numeric.Rational {
	return e.run(func() (numeric.Rational, error) { return q.Add(a, b) })
}

func (e *errs) sub(q *rational.Arith, a, b numeric.Rational) numeric.Rational {
	return e.run(func() (numeric.Rational, error) { return q.Sub(a, b) })
}

func (e *errs) mul(q *rational.Arith, a, b numeric.Rational) numeric.Rational {
	return e.run(func() (numeric.Rational, error) { return q.Mul(a, b) })
}

func (e *errs) div(q *rational.Arith, a, b numeric.Rational) numeric.Rational {
	return e.run(func() (numeric.Rational, error) { return q.Div(a, b) })
}
