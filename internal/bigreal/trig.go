package bigreal

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/numtower/internal/numeric"
)

// Sin returns sin x.
func (c *Context) Sin(x *apd.Decimal) (*apd.Decimal, error) {
	r, err := c.reduceAngle(x)
	if err != nil {
		return nil, err
	}
	return c.sinCosSeries(r, r, 1)
}

// Cos returns cos x.
func (c *Context) Cos(x *apd.Decimal) (*apd.Decimal, error) {
	r, err := c.reduceAngle(x)
	if err != nil {
		return nil, err
	}
	return c.sinCosSeries(r, apd.New(1, 0), 0)
}

// sinCosSeries sums first - first·x²/((n+1)(n+2)) + ... where n starts at
// offset (1 for sin, 0 for cos).
func (c *Context) sinCosSeries(x, first *apd.Decimal, offset int64) (*apd.Decimal, error) {
	ctx := c.work
	x2 := new(apd.Decimal)
	if _, err := ctx.Mul(x2, x, x); err != nil {
		return nil, err
	}

	sum := new(apd.Decimal).Set(first)
	term := new(apd.Decimal).Set(first)
	mag := new(apd.Decimal)
	n := offset
	for i := 0; ; i++ {
		if i >= c.maxIter {
			return nil, numeric.NewError(numeric.CodeNonConvergence, "bigreal.sincos", "no convergence after %d terms", i)
		}
		denom := apd.New((n+1)*(n+2), 0)
		if _, err := ctx.Mul(term, term, x2); err != nil {
			return nil, err
		}
		if _, err := ctx.Quo(term, term, denom); err != nil {
			return nil, err
		}
		term.Neg(term)
		if _, err := ctx.Add(sum, sum, term); err != nil {
			return nil, err
		}
		n += 2
		if mag.Abs(term).Cmp(c.epsilon) <= 0 {
			break
		}
	}
	return sum, nil
}

// reduceAngle maps x into [-π, π].
func (c *Context) reduceAngle(x *apd.Decimal) (*apd.Decimal, error) {
	ctx := c.work
	twoPi := new(apd.Decimal)
	if _, err := ctx.Mul(twoPi, c.pi, apd.New(2, 0)); err != nil {
		return nil, err
	}
	k := new(apd.Decimal)
	if _, err := ctx.Quo(k, x, twoPi); err != nil {
		return nil, err
	}
	if _, err := ctx.RoundToIntegralValue(k, k); err != nil {
		return nil, err
	}
	if k.IsZero() {
		return new(apd.Decimal).Set(x), nil
	}
	r := new(apd.Decimal)
	if _, err := ctx.Mul(r, k, twoPi); err != nil {
		return nil, err
	}
	if _, err := ctx.Sub(r, x, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Atan returns arctan x in (-π/2, π/2).
func (c *Context) Atan(x *apd.Decimal) (*apd.Decimal, error) {
	ctx := c.work
	one := apd.New(1, 0)

	// |x| > 1: atan x = ±π/2 - atan(1/x)
	abs := new(apd.Decimal).Abs(x)
	if abs.Cmp(one) > 0 {
		inv := new(apd.Decimal)
		if _, err := ctx.Quo(inv, one, x); err != nil {
			return nil, err
		}
		inner, err := c.Atan(inv)
		if err != nil {
			return nil, err
		}
		halfPi := new(apd.Decimal)
		if _, err := ctx.Quo(halfPi, c.pi, apd.New(2, 0)); err != nil {
			return nil, err
		}
		if x.Negative {
			halfPi.Neg(halfPi)
		}
		if _, err := ctx.Sub(halfPi, halfPi, inner); err != nil {
			return nil, err
		}
		return halfPi, nil
	}

	// atan x = 2·atan(x / (1 + √(1+x²))), applied until the series is short.
	y := new(apd.Decimal).Set(x)
	halvings := int64(0)
	threshold := apd.New(1, -1)
	for new(apd.Decimal).Abs(y).Cmp(threshold) > 0 {
		t := new(apd.Decimal)
		if _, err := ctx.Mul(t, y, y); err != nil {
			return nil, err
		}
		if _, err := ctx.Add(t, t, one); err != nil {
			return nil, err
		}
		if _, err := ctx.Sqrt(t, t); err != nil {
			return nil, err
		}
		if _, err := ctx.Add(t, t, one); err != nil {
			return nil, err
		}
		if _, err := ctx.Quo(y, y, t); err != nil {
			return nil, err
		}
		halvings++
	}

	y2 := new(apd.Decimal)
	if _, err := ctx.Mul(y2, y, y); err != nil {
		return nil, err
	}
	sum := new(apd.Decimal).Set(y)
	power := new(apd.Decimal).Set(y)
	term := new(apd.Decimal)
	for k := int64(1); ; k++ {
		if k > int64(c.maxIter) {
			return nil, numeric.NewError(numeric.CodeNonConvergence, "bigreal.atan", "no convergence after %d terms", k)
		}
		if _, err := ctx.Mul(power, power, y2); err != nil {
			return nil, err
		}
		power.Neg(power)
		if _, err := ctx.Quo(term, power, apd.New(2*k+1, 0)); err != nil {
			return nil, err
		}
		if _, err := ctx.Add(sum, sum, term); err != nil {
			return nil, err
		}
		if new(apd.Decimal).Abs(term).Cmp(c.epsilon) <= 0 {
			break
		}
	}

	scale := apd.New(1<<uint(halvings), 0)
	if _, err := ctx.Mul(sum, sum, scale); err != nil {
		return nil, err
	}
	return sum, nil
}

// Atan2 returns the angle of the point (x, y) in (-π, π].
func (c *Context) Atan2(y, x *apd.Decimal) (*apd.Decimal, error) {
	ctx := c.work
	halfPi := new(apd.Decimal)
	if _, err := ctx.Quo(halfPi, c.pi, apd.New(2, 0)); err != nil {
		return nil, err
	}

	if x.IsZero() {
		switch {
		case y.Sign() > 0:
			return halfPi, nil
		case y.Sign() < 0:
			return halfPi.Neg(halfPi), nil
		}
		return apd.New(0, 0), nil
	}

	q := new(apd.Decimal)
	if _, err := ctx.Quo(q, y, x); err != nil {
		return nil, err
	}
	a, err := c.Atan(q)
	if err != nil {
		return nil, err
	}
	if x.Sign() > 0 {
		return a, nil
	}
	if y.Sign() >= 0 {
		_, err = ctx.Add(a, a, c.pi)
	} else {
		_, err = ctx.Sub(a, a, c.pi)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
