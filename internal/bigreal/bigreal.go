// Package bigreal provides arbitrary-precision real helpers on top of
// github.com/cockroachdb/apd/v3: conversions to and from exact rationals,
// π, and the trigonometric series apd does not ship.
//
// A Context is immutable after New and safe for concurrent use; every method
// allocates its own result.
package bigreal

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/numtower/internal/numeric"
)

// guardDigits are carried beyond the requested precision during series work.
const guardDigits = 10

// defaultMaxIterations bounds every series and iteration in this package.
const defaultMaxIterations = 10000

// Context performs real arithmetic at a fixed number of significant digits.
type Context struct {
	digits  uint32
	work    *apd.Context
	pi      *apd.Decimal
	epsilon *apd.Decimal
	maxIter int
}

// New creates a Context with the given significant digits.
func New(digits uint32) (*Context, error) {
	if digits == 0 {
		return nil, numeric.NewError(numeric.CodeDomain, "bigreal.new", "precision must be positive")
	}
	c := &Context{
		digits:  digits,
		work:    apd.BaseContext.WithPrecision(digits + guardDigits),
		epsilon: apd.New(1, -int32(digits+guardDigits/2)),
		maxIter: defaultMaxIterations,
	}
	pi, err := c.gaussLegendrePi()
	if err != nil {
		return nil, err
	}
	c.pi = pi
	return c, nil
}

// Digits returns the requested precision.
func (c *Context) Digits() uint32 { return c.digits }

// Epsilon returns the convergence threshold used by the series.
func (c *Context) Epsilon() *apd.Decimal { return new(apd.Decimal).Set(c.epsilon) }

// Apd exposes the working apd context.
func (c *Context) Apd() *apd.Context { return c.work }

// MaxIterations returns the iteration bound shared by all series.
func (c *Context) MaxIterations() int { return c.maxIter }

// Pi returns π at working precision.
func (c *Context) Pi() *apd.Decimal { return new(apd.Decimal).Set(c.pi) }

// FromInteger converts an Integer exactly.
func FromInteger(i numeric.Integer) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(i.String())
	if err != nil {
		return nil, fmt.Errorf("bigreal: integer %s: %w", i, err)
	}
	return d, nil
}

// Decimal converts a Rational to a decimal rounded to working precision.
func (c *Context) Decimal(r numeric.Rational) (*apd.Decimal, error) {
	num, err := FromInteger(r.Num())
	if err != nil {
		return nil, err
	}
	if r.Den().IsOne() {
		return num, nil
	}
	den, err := FromInteger(r.Den())
	if err != nil {
		return nil, err
	}
	d := new(apd.Decimal)
	if _, err := c.work.Quo(d, num, den); err != nil {
		return nil, fmt.Errorf("bigreal: %s: %w", r, err)
	}
	return d, nil
}

// Rational converts a finite decimal to an exact Rational in lowest terms.
func Rational(d *apd.Decimal) (numeric.Rational, error) {
	if d.Form != apd.Finite {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "bigreal.rational", "%s is not finite", d)
	}
	r, ok := new(big.Rat).SetString(d.Text('f'))
	if !ok {
		return numeric.Rational{}, numeric.NewError(numeric.CodeParse, "bigreal.rational", "cannot read %s", d)
	}
	return numeric.RationalFromRat(r), nil
}

// Round returns d rounded to the requested (not working) precision.
func (c *Context) Round(d *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := apd.BaseContext.WithPrecision(c.digits).Round(out, d); err != nil {
		return nil, err
	}
	return out, nil
}

// Sqrt returns √x.
func (c *Context) Sqrt(x *apd.Decimal) (*apd.Decimal, error) {
	if x.Sign() < 0 {
		return nil, numeric.NewError(numeric.CodeDomain, "bigreal.sqrt", "negative operand %s", x)
	}
	d := new(apd.Decimal)
	if _, err := c.work.Sqrt(d, x); err != nil {
		return nil, err
	}
	return d, nil
}

// Exp returns e^x.
func (c *Context) Exp(x *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	if _, err := c.work.Exp(d, x); err != nil {
		return nil, err
	}
	return d, nil
}

// Pow returns x^y for x ≥ 0, or any x with an integral y.
func (c *Context) Pow(x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	if _, err := c.work.Pow(d, x, y); err != nil {
		return nil, err
	}
	return d, nil
}

// gaussLegendrePi computes π with the Gauss–Legendre (AGM) iteration.
func (c *Context) gaussLegendrePi() (*apd.Decimal, error) {
	ctx := c.work
	one := apd.New(1, 0)
	two := apd.New(2, 0)

	a := apd.New(1, 0)
	b := new(apd.Decimal)
	if _, err := ctx.Sqrt(b, two); err != nil {
		return nil, err
	}
	if _, err := ctx.Quo(b, one, b); err != nil {
		return nil, err
	}
	t := apd.New(25, -2)
	p := apd.New(1, 0)

	diff := new(apd.Decimal)
	for i := 0; ; i++ {
		if i >= c.maxIter {
			return nil, numeric.NewError(numeric.CodeNonConvergence, "bigreal.pi", "no convergence after %d iterations", i)
		}
		an := new(apd.Decimal)
		if _, err := ctx.Add(an, a, b); err != nil {
			return nil, err
		}
		if _, err := ctx.Quo(an, an, two); err != nil {
			return nil, err
		}
		bn := new(apd.Decimal)
		if _, err := ctx.Mul(bn, a, b); err != nil {
			return nil, err
		}
		if _, err := ctx.Sqrt(bn, bn); err != nil {
			return nil, err
		}
		d := new(apd.Decimal)
		if _, err := ctx.Sub(d, a, an); err != nil {
			return nil, err
		}
		if _, err := ctx.Mul(d, d, d); err != nil {
			return nil, err
		}
		if _, err := ctx.Mul(d, d, p); err != nil {
			return nil, err
		}
		if _, err := ctx.Sub(t, t, d); err != nil {
			return nil, err
		}
		if _, err := ctx.Mul(p, p, two); err != nil {
			return nil, err
		}
		a, b = an, bn

		if _, err := ctx.Sub(diff, a, b); err != nil {
			return nil, err
		}
		if diff.Abs(diff).Cmp(c.epsilon) <= 0 {
			break
		}
	}

	pi := new(apd.Decimal)
	if _, err := ctx.Add(pi, a, b); err != nil {
		return nil, err
	}
	if _, err := ctx.Mul(pi, pi, pi); err != nil {
		return nil, err
	}
	four := apd.New(4, 0)
	if _, err := ctx.Mul(t, t, four); err != nil {
		return nil, err
	}
	if _, err := ctx.Quo(pi, pi, t); err != nil {
		return nil, err
	}
	return pi, nil
}
