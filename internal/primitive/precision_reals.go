package primitive

import (
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/numtower/internal/bigreal"
	"github.com/roach88/numtower/internal/numeric"
)

// PrecisionReals implements Reals with apd decimals. Results are rounded to
// the context's digits and converted to exact rationals.
type PrecisionReals struct {
	ctx *bigreal.Context
}

// NewPrecisionReals creates a PrecisionReals carrying the given number of
// significant digits.
func NewPrecisionReals(digits uint32) (*PrecisionReals, error) {
	ctx, err := bigreal.New(digits)
	if err != nil {
		return nil, err
	}
	return &PrecisionReals{ctx: ctx}, nil
}

// Name implements Reals.
func (*PrecisionReals) Name() string { return "precision" }

// Context exposes the decimal context for algorithms that work on decimals
// directly (the AGM logarithm).
func (p *PrecisionReals) Context() *bigreal.Context { return p.ctx }

// FromFloat implements Reals. The binary value of f is converted exactly.
func (*PrecisionReals) FromFloat(f float64) (numeric.Rational, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "fromfloat", "%v is not finite", f)
	}
	return numeric.RationalFromRat(new(big.Rat).SetFloat64(f)), nil
}

func (p *PrecisionReals) unary(op string, x numeric.Rational, fn func(*apd.Decimal) (*apd.Decimal, error)) (numeric.Rational, error) {
	d, err := p.ctx.Decimal(x)
	if err != nil {
		return numeric.Rational{}, err
	}
	out, err := fn(d)
	if err != nil {
		return numeric.Rational{}, p.wrap(op, err)
	}
	return p.result(op, out)
}

func (p *PrecisionReals) result(op string, d *apd.Decimal) (numeric.Rational, error) {
	rounded, err := p.ctx.Round(d)
	if err != nil {
		return numeric.Rational{}, p.wrap(op, err)
	}
	return bigreal.Rational(rounded)
}

func (*PrecisionReals) wrap(op string, err error) error {
	if numeric.CodeOf(err) != "" {
		return err
	}
	return numeric.NewError(numeric.CodeDomain, op, "%v", err)
}

// Sqrt implements Reals.
func (p *PrecisionReals) Sqrt(x numeric.Rational) (numeric.Rational, error) {
	if x.Sign() < 0 {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "sqrt", "negative operand %s", x)
	}
	return p.unary("sqrt", x, p.ctx.Sqrt)
}

// Pow implements Reals.
func (p *PrecisionReals) Pow(x, y numeric.Rational) (numeric.Rational, error) {
	if x.Sign() < 0 && !y.IsIntegral() {
		return numeric.Rational{}, numeric.NewError(numeric.CodeDomain, "pow", "%s ^ %s is not real", x, y)
	}
	if x.IsZero() {
		if y.Sign() < 0 {
			return numeric.Rational{}, numeric.NewError(numeric.CodeDivisionByZero, "pow", "0 ^ %s", y)
		}
		if y.IsZero() {
			return numeric.MustRational(1, 1), nil
		}
		return numeric.MustRational(0, 1), nil
	}
	exp, err := p.ctx.Decimal(y)
	if err != nil {
		return numeric.Rational{}, err
	}
	return p.unary("pow", x, func(base *apd.Decimal) (*apd.Decimal, error) {
		return p.ctx.Pow(base, exp)
	})
}

// Exp implements Reals.
func (p *PrecisionReals) Exp(x numeric.Rational) (numeric.Rational, error) {
	return p.unary("exp", x, p.ctx.Exp)
}

// Cos implements Reals.
func (p *PrecisionReals) Cos(x numeric.Rational) (numeric.Rational, error) {
	return p.unary("cos", x, p.ctx.Cos)
}

// Sin implements Reals.
func (p *PrecisionReals) Sin(x numeric.Rational) (numeric.Rational, error) {
	return p.unary("sin", x, p.ctx.Sin)
}

// Atan2 implements Reals.
func (p *PrecisionReals) Atan2(y, x numeric.Rational) (numeric.Rational, error) {
	yd, err := p.ctx.Decimal(y)
	if err != nil {
		return numeric.Rational{}, err
	}
	xd, err := p.ctx.Decimal(x)
	if err != nil {
		return numeric.Rational{}, err
	}
	out, err := p.ctx.Atan2(yd, xd)
	if err != nil {
		return numeric.Rational{}, p.wrap("atan2", err)
	}
	return p.result("atan2", out)
}
