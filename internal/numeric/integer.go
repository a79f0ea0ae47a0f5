package numeric

import (
	"math/big"
)

// Integer is an immutable integer of unbounded size.
//
// The zero value is 0. The wrapped *big.Int is never handed out or
// modified after construction; Big returns a copy.
type Integer struct {
	v *big.Int
}

var bigZero = new(big.Int)

// NewInteger creates an Integer from an int64.
func NewInteger(i int64) Integer {
	return Integer{v: big.NewInt(i)}
}

// IntegerFromBig creates an Integer holding a copy of b.
// A nil b yields 0.
func IntegerFromBig(b *big.Int) Integer {
	if b == nil {
		return Integer{}
	}
	return Integer{v: new(big.Int).Set(b)}
}

// ParseInteger parses a base-10 integer.
func ParseInteger(s string) (Integer, bool) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Integer{}, false
	}
	return Integer{v: b}, true
}

func (i Integer) ref() *big.Int {
	if i.v == nil {
		return bigZero
	}
	return i.v
}

// Big returns a copy of the value as a *big.Int.
func (i Integer) Big() *big.Int {
	return new(big.Int).Set(i.ref())
}

// Int64 returns the value as an int64 and whether it fits.
func (i Integer) Int64() (int64, bool) {
	r := i.ref()
	if !r.IsInt64() {
		return 0, false
	}
	return r.Int64(), true
}

// Float64 returns the nearest float64.
func (i Integer) Float64() float64 {
	f, _ := new(big.Float).SetInt(i.ref()).Float64()
	return f
}

// Sign returns -1, 0 or +1.
func (i Integer) Sign() int {
	return i.ref().Sign()
}

// IsZero reports whether the value is 0.
func (i Integer) IsZero() bool {
	return i.Sign() == 0
}

// IsOne reports whether the value is 1.
func (i Integer) IsOne() bool {
	r := i.ref()
	return r.IsInt64() && r.Int64() == 1
}

// Cmp compares i and j and returns -1, 0 or +1.
func (i Integer) Cmp(j Integer) int {
	return i.ref().Cmp(j.ref())
}

// Equal reports whether i and j hold the same value.
func (i Integer) Equal(j Integer) bool {
	return i.Cmp(j) == 0
}

// BitLen returns the length of the absolute value in bits.
func (i Integer) BitLen() int {
	return i.ref().BitLen()
}

// String returns the base-10 form.
func (i Integer) String() string {
	return i.ref().String()
}
