package primitive

import (
	"math/big"

	"github.com/roach88/numtower/internal/numeric"
)

// Ints is the integer primitive an engine is built on.
// All results are new values; operands are never modified.
type Ints interface {
	// Name identifies the implementation ("native" or "precision").
	Name() string

	// Check fails with INTEGER_OVERFLOW if a is outside the supported range.
	Check(a numeric.Integer) error

	Add(a, b numeric.Integer) (numeric.Integer, error)
	Sub(a, b numeric.Integer) (numeric.Integer, error)
	Mul(a, b numeric.Integer) (numeric.Integer, error)

	// Quo returns a/b truncated toward zero. b == 0 fails with DIVISION_BY_ZERO.
	Quo(a, b numeric.Integer) (numeric.Integer, error)

	// Rem returns a - b·Quo(a, b).
	Rem(a, b numeric.Integer) (numeric.Integer, error)

	Neg(a numeric.Integer) (numeric.Integer, error)
	Abs(a numeric.Integer) (numeric.Integer, error)
	Cmp(a, b numeric.Integer) int

	// GCD is always ≥ 0; GCD(0, 0) = 0.
	GCD(a, b numeric.Integer) (numeric.Integer, error)

	// LCM is always ≥ 0; LCM with 0 is 0.
	LCM(a, b numeric.Integer) (numeric.Integer, error)

	Pow(a numeric.Integer, e uint64) (numeric.Integer, error)

	// Sqrt returns ⌊√a⌋ and whether the root is exact. a < 0 fails with DOMAIN.
	Sqrt(a numeric.Integer) (root numeric.Integer, exact bool, err error)
}

// floorSqrt is shared by both implementations; the root of an in-range
// value is always in range.
func floorSqrt(a numeric.Integer) (numeric.Integer, bool, error) {
	if a.Sign() < 0 {
		return numeric.Integer{}, false, numeric.NewError(numeric.CodeDomain, "sqrt", "negative operand %s", a)
	}
	b := a.Big()
	r := new(big.Int).Sqrt(b)
	sq := new(big.Int).Mul(r, r)
	return numeric.IntegerFromBig(r), sq.Cmp(b) == 0, nil
}
