package cplx

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/bigreal"
	"github.com/roach88/numtower/internal/natlog"
	"github.com/roach88/numtower/internal/numeric"
	"github.com/roach88/numtower/internal/primitive"
	"github.com/roach88/numtower/internal/rational"
)

func c(re, im int64) numeric.Complex { return numeric.ComplexFromInts(re, im) }

func arithmetics(t *testing.T) map[string]*Arith {
	t.Helper()
	reals, err := primitive.NewPrecisionReals(30)
	require.NoError(t, err)
	ctx, err := bigreal.New(30)
	require.NoError(t, err)
	return map[string]*Arith{
		"native": New(
			rational.New(primitive.NativeInts{}, primitive.NativeReals{}),
			natlog.Taylor{},
		),
		"precision": New(
			rational.New(primitive.PrecisionInts{}, reals),
			natlog.NewAGM(ctx, 0),
		),
	}
}

func toC128(v numeric.Complex) complex128 {
	return complex(v.Real().Float64(), v.Imag().Float64())
}

func assertNear(t *testing.T, want complex128, got numeric.Complex, delta float64, msg string) {
	t.Helper()
	assert.InDelta(t, real(want), got.Real().Float64(), delta, "%s real", msg)
	assert.InDelta(t, imag(want), got.Imag().Float64(), delta, "%s imag", msg)
}

func TestRectangular(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			x, y := c(1, 2), c(3, -4)

			sum, err := a.Add(x, y)
			require.NoError(t, err)
			assert.Equal(t, "4/1-2/1i", sum.String())

			diff, err := a.Sub(x, y)
			require.NoError(t, err)
			assert.Equal(t, "-2/1+6/1i", diff.String())

			prod, err := a.Mul(x, y)
			require.NoError(t, err)
			assert.Equal(t, "11/1+2/1i", prod.String())

			quo, err := a.Div(x, y)
			require.NoError(t, err)
			assert.True(t, quo.Real().Equal(numeric.MustRational(-1, 5)))
			assert.True(t, quo.Imag().Equal(numeric.MustRational(2, 5)))

			back, err := a.Mul(quo, y)
			require.NoError(t, err)
			assert.True(t, back.Real().Equal(x.Real()) && back.Imag().Equal(x.Imag()))
		})
	}
}

func TestReciprocalKeepsImaginarySign(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			r, err := a.Reciprocal(c(3, 4))
			require.NoError(t, err)
			assert.True(t, r.Real().Equal(numeric.MustRational(3, 25)))
			assert.True(t, r.Imag().Equal(numeric.MustRational(4, 25)))
		})
	}
}

func TestZeroGuards(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			_, err := a.Reciprocal(c(0, 0))
			assert.ErrorIs(t, err, numeric.ErrComplexZeroDivision)
			assert.True(t, numeric.IsComplexZeroDivision(err))

			_, err = a.Div(c(1, 1), c(0, 0))
			assert.ErrorIs(t, err, numeric.ErrComplexZeroDivision)
		})
	}
}

func TestModulusAndTheta(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			m, err := a.Modulus(c(3, 4))
			require.NoError(t, err)
			assert.True(t, m.Equal(numeric.MustRational(5, 1)), "exact modulus, got %s", m)

			m, err = a.Modulus(c(-7, 0))
			require.NoError(t, err)
			assert.True(t, m.Equal(numeric.MustRational(7, 1)))

			m, err = a.Modulus(c(1, 1))
			require.NoError(t, err)
			assert.InDelta(t, math.Sqrt2, m.Float64(), 1e-12)

			th, err := a.Theta(c(-1, 1))
			require.NoError(t, err)
			assert.InDelta(t, 3*math.Pi/4, th.Float64(), 1e-12)
		})
	}
}

func TestPowDeMoivre(t *testing.T) {
	r := math.Sqrt(18)
	theta := math.Pi / 4
	want := complex(r*r*r*math.Cos(3*theta), r*r*r*math.Sin(3*theta))

	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			got, err := a.Pow(c(3, 3), c(3, 0))
			require.NoError(t, err)
			assertNear(t, want, got, 1e-9, "(3+3i)^3")
			assertNear(t, complex(-54, 54), got, 1e-9, "(3+3i)^3")
		})
	}
}

func TestPowZeroBase(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			got, err := a.Pow(c(0, 0), c(0, 0))
			require.NoError(t, err)
			assert.True(t, got.Real().Equal(numeric.MustRational(1, 1)) && got.Imag().IsZero())

			got, err = a.Pow(c(0, 0), c(2, 1))
			require.NoError(t, err)
			assert.True(t, got.IsZero())
		})
	}
}

func TestPowComplexExponent(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			got, err := a.Pow(c(1, 1), c(1, 1))
			require.NoError(t, err)
			assertNear(t, cmplx.Pow(1+1i, 1+1i), got, 1e-9, "(1+i)^(1+i)")

			got, err = a.Pow(c(-2, 0), c(0, 1))
			require.NoError(t, err)
			assertNear(t, cmplx.Pow(-2, 1i), got, 1e-9, "(-2)^i")
		})
	}
}

func TestRealToComplexPower(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			got, err := a.RealToComplexPower(numeric.MustRational(2, 1), c(0, 1))
			require.NoError(t, err)
			assertNear(t, cmplx.Pow(2, 1i), got, 1e-9, "2^i")

			got, err = a.RealToComplexPower(numeric.MustRational(3, 1), c(2, -1))
			require.NoError(t, err)
			assertNear(t, cmplx.Pow(3, 2-1i), got, 1e-9, "3^(2-i)")

			viaPow, err := a.Pow(c(3, 0), c(2, -1))
			require.NoError(t, err)
			assertNear(t, toC128(got), viaPow, 1e-12, "pow routes real base")
		})
	}
}

func TestSqrt(t *testing.T) {
	for name, a := range arithmetics(t) {
		t.Run(name, func(t *testing.T) {
			got, err := a.Sqrt(c(-4, 0))
			require.NoError(t, err)
			assertNear(t, 2i, got, 1e-9, "sqrt(-4)")

			got, err = a.Sqrt(c(3, 4))
			require.NoError(t, err)
			assertNear(t, 2+1i, got, 1e-9, "sqrt(3+4i)")
		})
	}
}
