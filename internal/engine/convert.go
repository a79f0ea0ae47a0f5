package engine

import (
	"math"
	"math/big"

	"github.com/roach88/numtower/internal/numeric"
)

// ConvertNumeric implements Engine. Accepted raw values are numeric.Value,
// Go integer and float kinds, complex64/128, *big.Int, *big.Rat and numeric
// text (see numeric.Parse). Anything else fails with UNKNOWN_OPERAND_TYPE.
func (e *core) ConvertNumeric(raw any) (numeric.Value, error) {
	var v numeric.Value
	switch x := raw.(type) {
	case numeric.Value:
		v = x
	case int:
		v = numeric.NewInt(int64(x))
	case int8:
		v = numeric.NewInt(int64(x))
	case int16:
		v = numeric.NewInt(int64(x))
	case int32:
		v = numeric.NewInt(int64(x))
	case int64:
		v = numeric.NewInt(x)
	case uint:
		v = numeric.IntOf(numeric.IntegerFromBig(new(big.Int).SetUint64(uint64(x))))
	case uint8:
		v = numeric.NewInt(int64(x))
	case uint16:
		v = numeric.NewInt(int64(x))
	case uint32:
		v = numeric.NewInt(int64(x))
	case uint64:
		v = numeric.IntOf(numeric.IntegerFromBig(new(big.Int).SetUint64(x)))
	case float32:
		v = numeric.Float(float64(x))
	case float64:
		v = numeric.Float(x)
	case complex64:
		return e.convertComplex(complex128(x))
	case complex128:
		return e.convertComplex(x)
	case *big.Int:
		if x == nil {
			return nil, unknownOperand(raw)
		}
		v = numeric.IntOf(numeric.IntegerFromBig(x))
	case *big.Rat:
		if x == nil {
			return nil, unknownOperand(raw)
		}
		v = numeric.RationalFromRat(x)
	case string:
		p, err := numeric.Parse(x)
		if err != nil {
			return nil, err
		}
		v = p
	default:
		return nil, unknownOperand(raw)
	}
	if err := e.checkRange(v); err != nil {
		return nil, err
	}
	return v, nil
}

func unknownOperand(raw any) error {
	return numeric.NewError(numeric.CodeUnknownOperandType, "convert", "cannot convert %T", raw)
}

func (e *core) convertComplex(z complex128) (numeric.Value, error) {
	re, err := e.reals.FromFloat(real(z))
	if err != nil {
		return nil, err
	}
	im, err := e.reals.FromFloat(imag(z))
	if err != nil {
		return nil, err
	}
	return numeric.NewComplex(re, im), nil
}

// checkRange rejects values the integer primitive cannot hold.
func (e *core) checkRange(v numeric.Value) error {
	switch x := v.(type) {
	case numeric.Int:
		return e.ints.Check(x.Integer())
	case numeric.Whole:
		return e.ints.Check(x.Integer())
	case numeric.Natural:
		return e.ints.Check(x.Integer())
	case numeric.Float:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return numeric.NewError(numeric.CodeDomain, "convert", "%v is not finite", f)
		}
	case numeric.Rational:
		return e.checkRational(x)
	case numeric.Complex:
		if err := e.checkRational(x.Real()); err != nil {
			return err
		}
		return e.checkRational(x.Imag())
	}
	return nil
}

func (e *core) checkRational(r numeric.Rational) error {
	if err := e.ints.Check(r.Num()); err != nil {
		return err
	}
	return e.ints.Check(r.Den())
}

// integerOf unwraps the integer kinds.
func integerOf(v numeric.Value) (numeric.Integer, bool) {
	switch x := v.(type) {
	case numeric.Int:
		return x.Integer(), true
	case numeric.Whole:
		return x.Integer(), true
	case numeric.Natural:
		return x.Integer(), true
	}
	return numeric.Integer{}, false
}

// toRational converts any real kind; floats go through the engine's
// float strategy.
func (e *core) toRational(v numeric.Value) (numeric.Rational, error) {
	if f, ok := v.(numeric.Float); ok {
		return e.reals.FromFloat(float64(f))
	}
	return numeric.ToRational(v)
}

// toComplex promotes any kind to Complex with a zero imaginary part.
func (e *core) toComplex(v numeric.Value) (numeric.Complex, error) {
	if c, ok := v.(numeric.Complex); ok {
		return c, nil
	}
	r, err := e.toRational(v)
	if err != nil {
		return numeric.Complex{}, err
	}
	return numeric.NewComplex(r, numeric.MustRational(0, 1)), nil
}

// Promote converts v to Complex with the engine's float strategy. The
// calculator uses it for the Mixed category.
func (e *core) Promote(v numeric.Value) (numeric.Complex, error) {
	return e.toComplex(v)
}
