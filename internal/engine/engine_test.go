package engine

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/arbiter"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/numeric"
)

func newEngines(t *testing.T) map[string]Engine {
	t.Helper()
	native, err := New(config.Default(config.EngineNative))
	require.NoError(t, err)
	precision, err := New(config.Default(config.EnginePrecision))
	require.NoError(t, err)
	return map[string]Engine{
		"native":    native,
		"precision": precision,
	}
}

func whole(t *testing.T, i int64) numeric.Whole {
	t.Helper()
	w, err := numeric.NewWhole(i)
	require.NoError(t, err)
	return w
}

func natural(t *testing.T, i int64) numeric.Natural {
	t.Helper()
	n, err := numeric.NewNatural(i)
	require.NoError(t, err)
	return n
}

func floatOf(t *testing.T, v numeric.Value) float64 {
	t.Helper()
	f, err := numeric.ToFloat(v)
	require.NoError(t, err)
	return float64(f)
}

func TestNew_UnknownEngine(t *testing.T) {
	cfg := config.Default(config.EngineNative)
	cfg.Engine = "quantum"

	_, err := New(cfg)
	require.Error(t, err)
	assert.Equal(t, numeric.CodeUnsupportedEngine, numeric.CodeOf(err))
}

func TestNew_SelectsEngine(t *testing.T) {
	for name, e := range newEngines(t) {
		assert.Equal(t, config.EngineKind(name), e.Kind())
	}

	p, err := New(config.Default(config.EnginePrecision))
	require.NoError(t, err)
	_, ok := p.(*Precision)
	assert.True(t, ok)
}

func TestIntOps(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			ops := e.Int()

			sum, err := ops.Add(numeric.NewInt(2), numeric.NewInt(3))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindInt, sum.Kind())
			assert.Equal(t, "5", sum.String())

			diff, err := ops.Sub(numeric.NewInt(2), numeric.NewInt(3))
			require.NoError(t, err)
			assert.Equal(t, "-1", diff.String())

			prod, err := ops.Mul(numeric.NewInt(-4), numeric.NewInt(6))
			require.NoError(t, err)
			assert.Equal(t, "-24", prod.String())

			quo, err := ops.Div(numeric.NewInt(6), numeric.NewInt(4))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindRational, quo.Kind())
			assert.Equal(t, "6/4", quo.String())

			_, err = ops.Div(numeric.NewInt(1), numeric.NewInt(0))
			assert.True(t, numeric.IsDivisionByZero(err))

			rec, err := ops.Reciprocal(numeric.NewInt(5))
			require.NoError(t, err)
			assert.Equal(t, "1/5", rec.String())

			_, err = ops.Reciprocal(numeric.NewInt(0))
			assert.True(t, numeric.IsDivisionByZero(err))
		})
	}
}

func TestIntOps_Pow(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			ops := e.Int()

			p, err := ops.Pow(numeric.NewInt(2), numeric.NewInt(10))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindInt, p.Kind())
			assert.Equal(t, "1024", p.String())

			inv, err := ops.Pow(numeric.NewInt(2), numeric.NewInt(-2))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindRational, inv.Kind())
			assert.InDelta(t, 0.25, floatOf(t, inv), 1e-15)

			root, err := ops.Pow(numeric.NewInt(4), numeric.MustRational(1, 2))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindRational, root.Kind())
			assert.InDelta(t, 2.0, floatOf(t, root), 1e-12)

			// 2^i = cos(ln 2) + i·sin(ln 2)
			c, err := ops.Pow(numeric.NewInt(2), numeric.ComplexFromInts(0, 1))
			require.NoError(t, err)
			z, ok := c.(numeric.Complex)
			require.True(t, ok)
			assert.InDelta(t, math.Cos(math.Ln2), z.Real().Float64(), 1e-9)
			assert.InDelta(t, math.Sin(math.Ln2), z.Imag().Float64(), 1e-9)
		})
	}
}

func TestIntOps_Sqrt(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			ops := e.Int()

			exact, err := ops.Sqrt(numeric.NewInt(9))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindInt, exact.Kind())
			assert.Equal(t, "3", exact.String())

			approx, err := ops.Sqrt(numeric.NewInt(7))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindRational, approx.Kind())
			assert.InDelta(t, math.Sqrt(7), floatOf(t, approx), 1e-12)

			imag, err := ops.Sqrt(numeric.NewInt(-4))
			require.NoError(t, err)
			z, ok := imag.(numeric.Complex)
			require.True(t, ok)
			assert.True(t, z.Real().IsZero())
			assert.True(t, z.Imag().Equal(numeric.MustRational(2, 1)))
		})
	}
}

func TestRefinedOps(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			w, err := e.Whole().Add(whole(t, 2), whole(t, 3))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindWhole, w.Kind())
			assert.Equal(t, "5", w.String())

			// Leaving the bound demotes to Int.
			w, err = e.Whole().Sub(whole(t, 2), whole(t, 3))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindInt, w.Kind())
			assert.Equal(t, "-1", w.String())

			n, err := e.Natural().Mul(natural(t, 3), natural(t, 4))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindNatural, n.Kind())

			n, err = e.Natural().Sub(natural(t, 3), natural(t, 3))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindInt, n.Kind())

			// Mixed refinements give Int.
			n, err = e.Natural().Add(natural(t, 3), numeric.NewInt(1))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindInt, n.Kind())

			root, err := e.Natural().Sqrt(natural(t, 16))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindNatural, root.Kind())
			assert.Equal(t, "4", root.String())

			q, err := e.Whole().Div(whole(t, 3), whole(t, 6))
			require.NoError(t, err)
			assert.Equal(t, "3/6", q.String())
		})
	}
}

func TestFloatOps(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			ops := e.Float()

			sum, err := ops.Add(numeric.Float(0.5), numeric.NewInt(1))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindFloat, sum.Kind())
			assert.InDelta(t, 1.5, floatOf(t, sum), 1e-15)

			quo, err := ops.Div(numeric.Float(1), numeric.Float(4))
			require.NoError(t, err)
			assert.InDelta(t, 0.25, floatOf(t, quo), 1e-15)

			_, err = ops.Div(numeric.Float(1), numeric.Float(0))
			assert.True(t, numeric.IsDivisionByZero(err))

			_, err = ops.Reciprocal(numeric.Float(0))
			assert.True(t, numeric.IsDivisionByZero(err))

			root, err := ops.Sqrt(numeric.Float(2.25))
			require.NoError(t, err)
			assert.Equal(t, numeric.KindFloat, root.Kind())
			assert.InDelta(t, 1.5, floatOf(t, root), 1e-12)

			imag, err := ops.Sqrt(numeric.Float(-2.25))
			require.NoError(t, err)
			z, ok := imag.(numeric.Complex)
			require.True(t, ok)
			assert.True(t, z.Real().IsZero())
			assert.InDelta(t, 1.5, z.Imag().Float64(), 1e-12)

			p, err := ops.Pow(numeric.Float(1.5), numeric.NewInt(2))
			require.NoError(t, err)
			assert.InDelta(t, 2.25, floatOf(t, p), 1e-12)
		})
	}
}

func TestRationalOps(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			ops := e.Rational()

			sum, err := ops.Add(numeric.MustRational(1, 2), numeric.MustRational(1, 3))
			require.NoError(t, err)
			assert.Equal(t, "5/6", sum.String())

			prod, err := ops.Mul(numeric.MustRational(2, 3), numeric.NewInt(3))
			require.NoError(t, err)
			assert.Equal(t, "6/3", prod.String())

			_, err = ops.Div(numeric.MustRational(2, 3), numeric.MustRational(0, 1))
			assert.True(t, numeric.IsDivisionByZero(err))

			root, err := ops.Sqrt(numeric.MustRational(4, 9))
			require.NoError(t, err)
			assert.Equal(t, "2/3", root.String())

			imag, err := ops.Sqrt(numeric.MustRational(-4, 9))
			require.NoError(t, err)
			z, ok := imag.(numeric.Complex)
			require.True(t, ok)
			assert.True(t, z.Imag().Equal(numeric.MustRational(2, 3)))
		})
	}
}

func TestComplexOps(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			ops := e.Complex()

			prod, err := ops.Mul(numeric.ComplexFromInts(1, 2), numeric.ComplexFromInts(3, 4))
			require.NoError(t, err)
			z := prod.(numeric.Complex)
			assert.True(t, z.Real().Equal(numeric.MustRational(-5, 1)))
			assert.True(t, z.Imag().Equal(numeric.MustRational(10, 1)))

			_, err = ops.Div(numeric.ComplexFromInts(1, 1), numeric.ComplexFromInts(0, 0))
			assert.True(t, numeric.IsComplexZeroDivision(err))

			_, err = ops.Reciprocal(numeric.ComplexFromInts(0, 0))
			assert.True(t, numeric.IsComplexZeroDivision(err))

			cube, err := ops.Pow(numeric.ComplexFromInts(3, 3), numeric.NewInt(3))
			require.NoError(t, err)
			z = cube.(numeric.Complex)
			assert.InDelta(t, -54.0, z.Real().Float64(), 1e-9)
			assert.InDelta(t, 54.0, z.Imag().Float64(), 1e-9)
		})
	}
}

func TestOps_MixedUsesComplex(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			a, err := e.Promote(numeric.NewInt(1))
			require.NoError(t, err)
			assert.True(t, a.IsReal())

			sum, err := e.Ops(arbiter.Mixed).Add(a, numeric.ComplexFromInts(2, 3))
			require.NoError(t, err)
			z := sum.(numeric.Complex)
			assert.True(t, z.Real().Equal(numeric.MustRational(3, 1)))
			assert.True(t, z.Imag().Equal(numeric.MustRational(3, 1)))
		})
	}
}

func TestNatLog(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			euler := numeric.RationalFromRat(new(big.Rat).SetFloat64(math.E))
			inputs := map[string]numeric.Value{
				"float":    numeric.Float(math.E),
				"rational": euler,
				"complex":  numeric.NewComplex(euler, numeric.MustRational(0, 1)),
			}
			for kind, v := range inputs {
				ln, err := e.NatLog(v)
				require.NoError(t, err, kind)
				assert.Equal(t, numeric.KindRational, ln.Kind(), kind)
				assert.InDelta(t, 1.0, floatOf(t, ln), 1e-9, kind)
			}

			zero, err := e.NatLog(numeric.NewInt(1))
			require.NoError(t, err)
			assert.InDelta(t, 0.0, floatOf(t, zero), 1e-15)

			// Non-real complex inputs reduce to their modulus.
			mod, err := e.NatLog(numeric.ComplexFromInts(3, 4))
			require.NoError(t, err)
			assert.InDelta(t, math.Log(5), floatOf(t, mod), 1e-9)

			_, err = e.NatLog(numeric.NewInt(0))
			assert.Equal(t, numeric.CodeDomain, numeric.CodeOf(err))
		})
	}
}

func TestConvertNumeric(t *testing.T) {
	for name, e := range newEngines(t) {
		t.Run(name, func(t *testing.T) {
			tests := []struct {
				raw  any
				kind numeric.Kind
				text string
			}{
				{raw: 42, kind: numeric.KindInt, text: "42"},
				{raw: int8(-3), kind: numeric.KindInt, text: "-3"},
				{raw: uint16(7), kind: numeric.KindInt, text: "7"},
				{raw: 0.5, kind: numeric.KindFloat},
				{raw: complex(1, 2), kind: numeric.KindComplex},
				{raw: big.NewRat(3, 4), kind: numeric.KindRational, text: "3/4"},
				{raw: big.NewInt(12), kind: numeric.KindInt, text: "12"},
				{raw: "3/4", kind: numeric.KindRational, text: "3/4"},
				{raw: numeric.NewInt(9), kind: numeric.KindInt, text: "9"},
			}
			for _, tt := range tests {
				v, err := e.ConvertNumeric(tt.raw)
				require.NoError(t, err, "%T", tt.raw)
				assert.Equal(t, tt.kind, v.Kind(), "%T", tt.raw)
				if tt.text != "" {
					assert.Equal(t, tt.text, v.String())
				}
			}

			_, err := e.ConvertNumeric(struct{}{})
			assert.Equal(t, numeric.CodeUnknownOperandType, numeric.CodeOf(err))

			_, err = e.ConvertNumeric(math.Inf(1))
			assert.Equal(t, numeric.CodeDomain, numeric.CodeOf(err))
		})
	}
}

func TestNative_Overflow(t *testing.T) {
	e, err := NewNative(config.Default(config.EngineNative))
	require.NoError(t, err)

	_, err = e.Int().Mul(numeric.NewInt(math.MaxInt64), numeric.NewInt(2))
	assert.True(t, numeric.IsOverflow(err))

	_, err = e.ConvertNumeric("99999999999999999999")
	assert.True(t, numeric.IsOverflow(err))

	p, err := NewPrecision(config.Default(config.EnginePrecision))
	require.NoError(t, err)
	v, err := p.Int().Mul(numeric.NewInt(math.MaxInt64), numeric.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551614", v.String())
}
