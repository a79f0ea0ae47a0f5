package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/numeric"
)

func TestApply(t *testing.T) {
	c := newCalculators(t)["precision"]

	v, err := c.Apply("add", "1/2", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "5/6", v.String())

	v, err = c.Apply("compare", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "-1", v.String())

	v, err = c.Apply("inc", "natural:4")
	require.NoError(t, err)
	assert.Equal(t, numeric.KindNatural, v.Kind())

	_, err = c.Apply("div", "1", "0")
	assert.True(t, numeric.IsDivisionByZero(err))

	_, err = c.Apply("mod", "1", "2")
	assert.Equal(t, numeric.CodeUnknownOperation, numeric.CodeOf(err))
	assert.ErrorIs(t, err, numeric.ErrUnknownOperation)

	_, err = c.Apply("sqrt", "1", "2")
	assert.Equal(t, numeric.CodeUnknownOperation, numeric.CodeOf(err))
	assert.ErrorContains(t, err, "sqrt takes 1 operands, got 2")

	_, err = c.Apply("add", "1", []int{2})
	assert.Equal(t, numeric.CodeUnknownOperandType, numeric.CodeOf(err))
}

func TestArity(t *testing.T) {
	n, ok := Arity("pow")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = Arity("reciprocal")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = Arity("classify")
	assert.False(t, ok)

	assert.Equal(t, []string{"add", "compare", "dec", "div", "inc", "ln", "mul", "pow", "reciprocal", "sqrt", "sub"}, OpNames())
}

func TestCalculatorCompareWithin(t *testing.T) {
	c := newCalculators(t)["native"]

	r, err := c.CompareWithin("1", "1.0001", 0.001)
	require.NoError(t, err)
	assert.Equal(t, 0, r)

	r, err = c.CompareWithin("1", "1.1", 0.001)
	require.NoError(t, err)
	assert.Equal(t, -1, r)

	_, err = c.CompareWithin("x", "1", 0.1)
	assert.Equal(t, numeric.CodeParse, numeric.CodeOf(err))
}
