package primitive

import (
	"math/big"

	"github.com/roach88/numtower/internal/numeric"
)

// PrecisionInts implements Ints on math/big. It never overflows.
type PrecisionInts struct{}

// Name implements Ints.
func (PrecisionInts) Name() string { return "precision" }

// Check implements Ints.
func (PrecisionInts) Check(numeric.Integer) error { return nil }

func wrap(b *big.Int) numeric.Integer { return numeric.IntegerFromBig(b) }

// Add implements Ints.
func (PrecisionInts) Add(a, b numeric.Integer) (numeric.Integer, error) {
	return wrap(new(big.Int).Add(a.Big(), b.Big())), nil
}

// Sub implements Ints.
func (PrecisionInts) Sub(a, b numeric.Integer) (numeric.Integer, error) {
	return wrap(new(big.Int).Sub(a.Big(), b.Big())), nil
}

// Mul implements Ints.
func (PrecisionInts) Mul(a, b numeric.Integer) (numeric.Integer, error) {
	return wrap(new(big.Int).Mul(a.Big(), b.Big())), nil
}

// Quo implements Ints.
func (PrecisionInts) Quo(a, b numeric.Integer) (numeric.Integer, error) {
	if b.IsZero() {
		return numeric.Integer{}, numeric.NewError(numeric.CodeDivisionByZero, "quo", "%s / 0", a)
	}
	return wrap(new(big.Int).Quo(a.Big(), b.Big())), nil
}

// Rem implements Ints.
func (PrecisionInts) Rem(a, b numeric.Integer) (numeric.Integer, error) {
	if b.IsZero() {
		return numeric.Integer{}, numeric.NewError(numeric.CodeDivisionByZero, "rem", "%s %% 0", a)
	}
	return wrap(new(big.Int).Rem(a.Big(), b.Big())), nil
}

// Neg implements Ints.
func (PrecisionInts) Neg(a numeric.Integer) (numeric.Integer, error) {
	return wrap(new(big.Int).Neg(a.Big())), nil
}

// Abs implements Ints.
func (PrecisionInts) Abs(a numeric.Integer) (numeric.Integer, error) {
	return wrap(new(big.Int).Abs(a.Big())), nil
}

// Cmp implements Ints.
func (PrecisionInts) Cmp(a, b numeric.Integer) int {
	return a.Cmp(b)
}

// GCD implements Ints.
func (PrecisionInts) GCD(a, b numeric.Integer) (numeric.Integer, error) {
	return wrap(new(big.Int).GCD(nil, nil, a.Big(), b.Big())), nil
}

// LCM implements Ints.
func (p PrecisionInts) LCM(a, b numeric.Integer) (numeric.Integer, error) {
	if a.IsZero() || b.IsZero() {
		return numeric.NewInteger(0), nil
	}
	g := new(big.Int).GCD(nil, nil, a.Big(), b.Big())
	l := new(big.Int).Quo(a.Big(), g)
	l.Mul(l, b.Big())
	return wrap(l.Abs(l)), nil
}

// Pow implements Ints.
func (PrecisionInts) Pow(a numeric.Integer, e uint64) (numeric.Integer, error) {
	exp := new(big.Int).SetUint64(e)
	return wrap(new(big.Int).Exp(a.Big(), exp, nil)), nil
}

// Sqrt implements Ints.
func (PrecisionInts) Sqrt(a numeric.Integer) (numeric.Integer, bool, error) {
	return floorSqrt(a)
}
