package natlog

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/bigreal"
	"github.com/roach88/numtower/internal/numeric"
	"github.com/roach88/numtower/internal/primitive"
)

// e to 40 decimal places.
const eDigits = "2.7182818284590452353602874713526624977572"

func eRational(t *testing.T) numeric.Rational {
	t.Helper()
	r, ok := new(big.Rat).SetString(eDigits)
	require.True(t, ok)
	return numeric.RationalFromRat(r)
}

func newAGM(t *testing.T, digits uint32) *AGM {
	t.Helper()
	ctx, err := bigreal.New(digits)
	require.NoError(t, err)
	return NewAGM(ctx, 0)
}

func methods(t *testing.T) []Method {
	return []Method{Taylor{}, newAGM(t, 30)}
}

func TestLnOfE(t *testing.T) {
	for _, m := range methods(t) {
		t.Run(m.Name(), func(t *testing.T) {
			got, err := m.Ln(eRational(t))
			require.NoError(t, err)
			assert.InDelta(t, 1.0, got.Float64(), 1e-14)
		})
	}
}

func TestLnKnownValues(t *testing.T) {
	inputs := []numeric.Rational{
		numeric.MustRational(2, 1),
		numeric.MustRational(10, 1),
		numeric.MustRational(1, 3),
		numeric.MustRational(1, 1000),
		numeric.MustRational(123456789, 1),
		numeric.MustRational(7, 5),
	}
	for _, m := range methods(t) {
		t.Run(m.Name(), func(t *testing.T) {
			for _, x := range inputs {
				got, err := m.Ln(x)
				require.NoError(t, err)
				assert.InDelta(t, math.Log(x.Float64()), got.Float64(), 1e-12, "ln %s", x)
			}
		})
	}
}

func TestLnOfOne(t *testing.T) {
	for _, m := range methods(t) {
		got, err := m.Ln(numeric.MustRational(1, 1))
		require.NoError(t, err)
		assert.True(t, got.IsZero(), "%s: %s", m.Name(), got)
	}
}

func TestLnDomain(t *testing.T) {
	for _, m := range methods(t) {
		_, err := m.Ln(numeric.MustRational(0, 1))
		assert.ErrorIs(t, err, numeric.ErrDomain, m.Name())
		_, err = m.Ln(numeric.MustRational(-1, 2))
		assert.ErrorIs(t, err, numeric.ErrDomain, m.Name())
	}
}

func TestTaylorIsBounded(t *testing.T) {
	_, err := Taylor{MaxIterations: 3}.Ln(numeric.MustRational(10, 1))
	require.Error(t, err)
	assert.True(t, numeric.IsNonConvergence(err))
}

func TestTaylorBeyondFloatRange(t *testing.T) {
	huge := numeric.RationalOf(numeric.IntegerFromBig(new(big.Int).Lsh(big.NewInt(1), 2000)))
	got, err := Taylor{}.Ln(huge)
	require.NoError(t, err)
	assert.InEpsilon(t, 2000*math.Ln2, got.Float64(), 1e-12)
}

func TestAGMHighPrecision(t *testing.T) {
	a := newAGM(t, 50)
	got, err := a.Ln(numeric.MustRational(2, 1))
	require.NoError(t, err)

	want, ok := new(big.Rat).SetString("0.69314718055994530941723212145817656807550013436026")
	require.True(t, ok)
	diff := new(big.Rat).Sub(got.Rat(), want)
	bound, ok := new(big.Rat).SetString("1e-45")
	require.True(t, ok)
	assert.Equal(t, -1, diff.Abs(diff).Cmp(bound), "ln 2 = %s", got.Rat().FloatString(50))
}

func TestAGMLargeMagnitude(t *testing.T) {
	a := newAGM(t, 30)
	googol := numeric.RationalOf(numeric.IntegerFromBig(new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)))
	got, err := a.Ln(googol)
	require.NoError(t, err)
	assert.InDelta(t, 100*math.Ln10, got.Float64(), 1e-10)
}

func TestTaylorUsesSuppliedReals(t *testing.T) {
	reals, err := primitive.NewPrecisionReals(20)
	require.NoError(t, err)
	got, err := Taylor{Reals: reals}.Ln(numeric.MustRational(4, 1))
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Ln2, got.Float64(), 1e-14)
	assert.Greater(t, got.Den().BitLen(), 32)
}

func TestLookup(t *testing.T) {
	agm := newAGM(t, 10)
	m, err := Lookup(NameAGM, Taylor{}, agm)
	require.NoError(t, err)
	assert.Equal(t, NameAGM, m.Name())

	_, err = Lookup("newton", Taylor{}, agm)
	assert.Error(t, err)
}
