package natlog

import (
	"math"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/numtower/internal/bigreal"
	"github.com/roach88/numtower/internal/numeric"
)

// AGM evaluates ln through the arithmetic-geometric mean:
//
//	ln s ≈ π / (2·M(1, 4/s))    for s > 2^(p/2)
//
// The argument is scaled to s = x·2^m and the result corrected by m·ln 2,
// where ln 2 comes from the same identity applied to a power of two.
type AGM struct {
	ctx  *bigreal.Context
	bits int
}

// NewAGM returns an AGM method on ctx. bits is the target precision in
// bits; zero derives it from the context's working digits.
func NewAGM(ctx *bigreal.Context, bits int) *AGM {
	if bits <= 0 {
		working := float64(ctx.Digits() + 10)
		bits = int(math.Ceil(working*math.Log2(10))) + 8
	}
	return &AGM{ctx: ctx, bits: bits}
}

// Name implements Method.
func (*AGM) Name() string { return NameAGM }

// Bits returns the target precision in bits.
func (a *AGM) Bits() int { return a.bits }

// Ln implements Method.
func (a *AGM) Ln(x numeric.Rational) (numeric.Rational, error) {
	if err := checkDomain("ln.agm", x); err != nil {
		return numeric.Rational{}, err
	}
	if x.Num().Cmp(x.Den()) == 0 {
		return numeric.MustRational(0, 1), nil
	}

	half := a.bits/2 + 1
	m := half - binaryExponent(x)

	d, err := a.ctx.Decimal(x)
	if err != nil {
		return numeric.Rational{}, err
	}
	s, err := a.mulPow2(d, m)
	if err != nil {
		return numeric.Rational{}, err
	}
	lnS, err := a.lnLarge(s)
	if err != nil {
		return numeric.Rational{}, err
	}

	// ln 2 = ln(2^half) / half
	p2, err := a.mulPow2(apd.New(1, 0), half)
	if err != nil {
		return numeric.Rational{}, err
	}
	lnP2, err := a.lnLarge(p2)
	if err != nil {
		return numeric.Rational{}, err
	}

	ctx := a.ctx.Apd()
	correction := new(apd.Decimal)
	if _, err := ctx.Mul(correction, lnP2, apd.New(int64(m), 0)); err != nil {
		return numeric.Rational{}, err
	}
	if _, err := ctx.Quo(correction, correction, apd.New(int64(half), 0)); err != nil {
		return numeric.Rational{}, err
	}
	result := new(apd.Decimal)
	if _, err := ctx.Sub(result, lnS, correction); err != nil {
		return numeric.Rational{}, err
	}

	rounded, err := a.ctx.Round(result)
	if err != nil {
		return numeric.Rational{}, err
	}
	return bigreal.Rational(rounded)
}

// mulPow2 returns d·2^k.
func (a *AGM) mulPow2(d *apd.Decimal, k int) (*apd.Decimal, error) {
	ctx := a.ctx.Apd()
	p := new(apd.Decimal)
	if _, err := ctx.Pow(p, apd.New(2, 0), apd.New(int64(k), 0)); err != nil {
		return nil, err
	}
	out := new(apd.Decimal)
	if _, err := ctx.Mul(out, d, p); err != nil {
		return nil, err
	}
	return out, nil
}

// lnLarge returns π / (2·M(1, 4/s)).
func (a *AGM) lnLarge(s *apd.Decimal) (*apd.Decimal, error) {
	ctx := a.ctx.Apd()
	g := new(apd.Decimal)
	if _, err := ctx.Quo(g, apd.New(4, 0), s); err != nil {
		return nil, err
	}
	mean, err := a.mean(apd.New(1, 0), g)
	if err != nil {
		return nil, err
	}
	denom := new(apd.Decimal)
	if _, err := ctx.Mul(denom, mean, apd.New(2, 0)); err != nil {
		return nil, err
	}
	out := new(apd.Decimal)
	if _, err := ctx.Quo(out, a.ctx.Pi(), denom); err != nil {
		return nil, err
	}
	return out, nil
}

// mean iterates a' = (a+g)/2, g' = √(a·g) until |a-g| ≤ epsilon.
func (a *AGM) mean(x, y *apd.Decimal) (*apd.Decimal, error) {
	ctx := a.ctx.Apd()
	eps := a.ctx.Epsilon()
	limit := a.ctx.MaxIterations()

	am := new(apd.Decimal).Set(x)
	gm := new(apd.Decimal).Set(y)
	diff := new(apd.Decimal)
	two := apd.New(2, 0)
	for i := 0; ; i++ {
		if _, err := ctx.Sub(diff, am, gm); err != nil {
			return nil, err
		}
		diff.Abs(diff)
		if diff.Cmp(eps) <= 0 {
			return am, nil
		}
		if i >= limit {
			return nil, nonConvergence("ln.agm", limit)
		}

		sum := new(apd.Decimal)
		if _, err := ctx.Add(sum, am, gm); err != nil {
			return nil, err
		}
		prod := new(apd.Decimal)
		if _, err := ctx.Mul(prod, am, gm); err != nil {
			return nil, err
		}
		if _, err := ctx.Quo(am, sum, two); err != nil {
			return nil, err
		}
		if _, err := ctx.Sqrt(gm, prod); err != nil {
			return nil, err
		}
	}
}
