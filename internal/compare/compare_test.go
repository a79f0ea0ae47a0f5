package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/engine"
	"github.com/roach88/numtower/internal/numeric"
)

func newComparators(t *testing.T) map[string]*Comparator {
	t.Helper()
	out := make(map[string]*Comparator)
	for _, kind := range []config.EngineKind{config.EngineNative, config.EnginePrecision} {
		e, err := engine.New(config.Default(kind))
		require.NoError(t, err)
		out[string(kind)] = New(e)
	}
	return out
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b numeric.Value
		want int
	}{
		{"int less", numeric.NewInt(1), numeric.NewInt(2), -1},
		{"int equal", numeric.NewInt(7), numeric.NewInt(7), 0},
		{"unreduced rationals", numeric.MustRational(2, 4), numeric.MustRational(1, 2), 0},
		{"rational vs int", numeric.MustRational(7, 2), numeric.NewInt(3), 1},
		{"float vs int", numeric.Float(2.5), numeric.NewInt(3), -1},
		{"float vs rational", numeric.Float(0.5), numeric.MustRational(1, 2), 0},
		{"negative", numeric.NewInt(-5), numeric.MustRational(-9, 2), -1},
		{"real complexes", numeric.ComplexFromInts(3, 0), numeric.ComplexFromInts(2, 0), 1},
		{"moduli", numeric.ComplexFromInts(1, 2), numeric.ComplexFromInts(3, 4), -1},
		{"equal moduli", numeric.ComplexFromInts(3, 4), numeric.ComplexFromInts(4, 3), 0},
		{"complex vs real", numeric.ComplexFromInts(3, 4), numeric.NewInt(6), -1},
		{"real complex vs int", numeric.ComplexFromInts(-2, 0), numeric.NewInt(1), -1},
	}

	for name, c := range newComparators(t) {
		t.Run(name, func(t *testing.T) {
			for _, tt := range tests {
				got, err := c.Compare(tt.a, tt.b)
				require.NoError(t, err, tt.name)
				assert.Equal(t, tt.want, got, tt.name)
			}
		})
	}
}

func TestCompareWithin(t *testing.T) {
	for name, c := range newComparators(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := c.Aeq(numeric.NewInt(1), numeric.Float(1.0001), 0.001)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = c.Aeq(numeric.NewInt(1), numeric.Float(1.1), 0.001)
			require.NoError(t, err)
			assert.False(t, ok)

			r, err := c.CompareWithin(numeric.NewInt(1), numeric.Float(1.1), 0.001)
			require.NoError(t, err)
			assert.Equal(t, -1, r)

			ok, err = c.Aeq(numeric.ComplexFromInts(1, 1), numeric.ComplexFromInts(1, 1), 0)
			require.NoError(t, err)
			assert.True(t, ok)

			_, err = c.CompareWithin(numeric.NewInt(1), numeric.NewInt(1), -1)
			assert.Equal(t, numeric.CodeDomain, numeric.CodeOf(err))
		})
	}
}

func TestPredicates(t *testing.T) {
	for name, c := range newComparators(t) {
		t.Run(name, func(t *testing.T) {
			one, two := numeric.NewInt(1), numeric.MustRational(4, 2)

			check := func(f func(a, b numeric.Value) (bool, error), a, b numeric.Value) bool {
				t.Helper()
				ok, err := f(a, b)
				require.NoError(t, err)
				return ok
			}

			assert.True(t, check(c.Lt, one, two))
			assert.True(t, check(c.Lte, one, two))
			assert.True(t, check(c.Lte, two, two))
			assert.False(t, check(c.Gt, one, two))
			assert.True(t, check(c.Gte, two, one))
			assert.True(t, check(c.Eq, two, numeric.NewInt(2)))
			assert.True(t, check(c.Neq, one, two))
			assert.False(t, check(c.Neq, two, numeric.Float(2)))
		})
	}
}

func TestCompare_NativeRangeEdges(t *testing.T) {
	c := newComparators(t)["native"]

	r, err := c.Compare(numeric.NewInt(math.MaxInt64), numeric.NewInt(-1))
	require.NoError(t, err)
	assert.Equal(t, 1, r)

	r, err = c.Compare(numeric.MustRational(1, 3037000500), numeric.MustRational(1, 3037000501))
	require.NoError(t, err)
	assert.Equal(t, 1, r)

	lt, err := c.Lt(numeric.NewInt(math.MinInt64), numeric.NewInt(1))
	require.NoError(t, err)
	assert.True(t, lt)

	eq, err := c.Aeq(numeric.NewInt(math.MaxInt64), numeric.NewInt(-1), 0.5)
	require.NoError(t, err)
	assert.False(t, eq)

	r, err = c.CompareWithin(numeric.ComplexFromInts(math.MaxInt64, 1), numeric.ComplexFromInts(-1, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r)
}
