package natlog

import (
	"math"

	"github.com/roach88/numtower/internal/numeric"
	"github.com/roach88/numtower/internal/primitive"
)

// DefaultEpsilon is the term size at which the Taylor series stops.
const DefaultEpsilon = 1e-20

// Taylor evaluates ln by the atanh series in float64.
type Taylor struct {
	// Epsilon stops the series once |x^k| falls to it. Zero means
	// DefaultEpsilon.
	Epsilon float64
	// MaxIterations bounds the series. Zero means DefaultMaxIterations.
	MaxIterations int
	// Reals turns the float64 result back into a rational. Nil means
	// primitive.NativeReals.
	Reals primitive.Reals
}

// Name implements Method.
func (Taylor) Name() string { return NameTaylor }

func (t Taylor) epsilon() float64 {
	if t.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return t.Epsilon
}

func (t Taylor) maxIterations() int {
	if t.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return t.MaxIterations
}

func (t Taylor) reals() primitive.Reals {
	if t.Reals == nil {
		return primitive.NativeReals{}
	}
	return t.Reals
}

// Ln implements Method.
func (t Taylor) Ln(x numeric.Rational) (numeric.Rational, error) {
	if err := checkDomain("ln.taylor", x); err != nil {
		return numeric.Rational{}, err
	}

	k := binaryExponent(x)
	m, _ := scaleByPow2(x, k).Float64()

	lnM, err := t.series(m)
	if err != nil {
		return numeric.Rational{}, err
	}
	result := lnM
	if k != 0 {
		ln2, err := t.series(2)
		if err != nil {
			return numeric.Rational{}, err
		}
		result += float64(k) * ln2
	}
	return t.reals().FromFloat(result)
}

// series returns ln y = 2·Σ x^k/k for odd k, x = (y-1)/(y+1).
func (t Taylor) series(y float64) (float64, error) {
	x := (y - 1) / (y + 1)
	z := x * x
	eps := t.epsilon()
	limit := t.maxIterations()

	sum := 0.0
	k := 1.0
	for i := 0; math.Abs(x) > eps; i++ {
		if i >= limit {
			return 0, nonConvergence("ln.taylor", limit)
		}
		sum += 2 * x / k
		x *= z
		k += 2
	}
	return sum, nil
}
