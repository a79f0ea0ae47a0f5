package primitive

import (
	"github.com/roach88/numtower/internal/numeric"
)

// Reals is the approximation primitive. Every method takes and returns
// exact rationals; the approximation happens in between, at whatever
// precision the implementation carries.
type Reals interface {
	// Name identifies the implementation ("native" or "precision").
	Name() string

	// FromFloat reconstructs a rational from a float64. NaN and ±Inf fail
	// with DOMAIN.
	FromFloat(f float64) (numeric.Rational, error)

	// Sqrt returns √x. x < 0 fails with DOMAIN.
	Sqrt(x numeric.Rational) (numeric.Rational, error)

	// Pow returns x^y. A negative x with a non-integral y fails with DOMAIN.
	Pow(x, y numeric.Rational) (numeric.Rational, error)

	Exp(x numeric.Rational) (numeric.Rational, error)
	Cos(x numeric.Rational) (numeric.Rational, error)
	Sin(x numeric.Rational) (numeric.Rational, error)

	// Atan2 returns the angle of the point (x, y) in (-π, π].
	Atan2(y, x numeric.Rational) (numeric.Rational, error)
}
