package primitive

import (
	"math"

	"github.com/roach88/numtower/internal/numeric"
)

// NativeInts implements Ints on machine int64 with overflow detection.
type NativeInts struct{}

// Name implements Ints.
func (NativeInts) Name() string { return "native" }

func overflow(op string, args ...numeric.Integer) error {
	switch len(args) {
	case 1:
		return numeric.NewError(numeric.CodeIntegerOverflow, op, "%s exceeds int64", args[0])
	case 2:
		return numeric.NewError(numeric.CodeIntegerOverflow, op, "%s and %s exceed int64", args[0], args[1])
	}
	return numeric.NewError(numeric.CodeIntegerOverflow, op, "result exceeds int64")
}

func unpack(op string, a, b numeric.Integer) (int64, int64, error) {
	x, okA := a.Int64()
	y, okB := b.Int64()
	if !okA || !okB {
		return 0, 0, overflow(op, a, b)
	}
	return x, y, nil
}

// Check implements Ints.
func (NativeInts) Check(a numeric.Integer) error {
	if _, ok := a.Int64(); !ok {
		return overflow("check", a)
	}
	return nil
}

// Add implements Ints.
func (NativeInts) Add(a, b numeric.Integer) (numeric.Integer, error) {
	x, y, err := unpack("add", a, b)
	if err != nil {
		return numeric.Integer{}, err
	}
	s := x + y
	if (x^s)&(y^s) < 0 {
		return numeric.Integer{}, overflow("add", a, b)
	}
	return numeric.NewInteger(s), nil
}

// Sub implements Ints.
func (NativeInts) Sub(a, b numeric.Integer) (numeric.Integer, error) {
	x, y, err := unpack("sub", a, b)
	if err != nil {
		return numeric.Integer{}, err
	}
	d := x - y
	if (x^y)&(x^d) < 0 {
		return numeric.Integer{}, overflow("sub", a, b)
	}
	return numeric.NewInteger(d), nil
}

// Mul implements Ints.
func (NativeInts) Mul(a, b numeric.Integer) (numeric.Integer, error) {
	x, y, err := unpack("mul", a, b)
	if err != nil {
		return numeric.Integer{}, err
	}
	p, ok := mul64(x, y)
	if !ok {
		return numeric.Integer{}, overflow("mul", a, b)
	}
	return numeric.NewInteger(p), nil
}

func mul64(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	p := x * y
	if p/y != x {
		return 0, false
	}
	return p, true
}

// Quo implements Ints.
func (NativeInts) Quo(a, b numeric.Integer) (numeric.Integer, error) {
	x, y, err := unpack("quo", a, b)
	if err != nil {
		return numeric.Integer{}, err
	}
	if y == 0 {
		return numeric.Integer{}, numeric.NewError(numeric.CodeDivisionByZero, "quo", "%s / 0", a)
	}
	if x == math.MinInt64 && y == -1 {
		return numeric.Integer{}, overflow("quo", a, b)
	}
	return numeric.NewInteger(x / y), nil
}

// Rem implements Ints.
func (NativeInts) Rem(a, b numeric.Integer) (numeric.Integer, error) {
	x, y, err := unpack("rem", a, b)
	if err != nil {
		return numeric.Integer{}, err
	}
	if y == 0 {
		return numeric.Integer{}, numeric.NewError(numeric.CodeDivisionByZero, "rem", "%s %% 0", a)
	}
	if y == -1 {
		return numeric.NewInteger(0), nil
	}
	return numeric.NewInteger(x % y), nil
}

// Neg implements Ints.
func (NativeInts) Neg(a numeric.Integer) (numeric.Integer, error) {
	x, ok := a.Int64()
	if !ok || x == math.MinInt64 {
		return numeric.Integer{}, overflow("neg", a)
	}
	return numeric.NewInteger(-x), nil
}

// Abs implements Ints.
func (n NativeInts) Abs(a numeric.Integer) (numeric.Integer, error) {
	if a.Sign() < 0 {
		return n.Neg(a)
	}
	return a, n.Check(a)
}

// Cmp implements Ints.
func (NativeInts) Cmp(a, b numeric.Integer) int {
	return a.Cmp(b)
}

// GCD implements Ints.
func (n NativeInts) GCD(a, b numeric.Integer) (numeric.Integer, error) {
	x, err := n.Abs(a)
	if err != nil {
		return numeric.Integer{}, err
	}
	y, err := n.Abs(b)
	if err != nil {
		return numeric.Integer{}, err
	}
	p, _ := x.Int64()
	q, _ := y.Int64()
	for q != 0 {
		p, q = q, p%q
	}
	return numeric.NewInteger(p), nil
}

// LCM implements Ints.
func (n NativeInts) LCM(a, b numeric.Integer) (numeric.Integer, error) {
	if a.IsZero() || b.IsZero() {
		return numeric.NewInteger(0), nil
	}
	g, err := n.GCD(a, b)
	if err != nil {
		return numeric.Integer{}, err
	}
	q, err := n.Quo(a, g)
	if err != nil {
		return numeric.Integer{}, err
	}
	l, err := n.Mul(q, b)
	if err != nil {
		return numeric.Integer{}, err
	}
	return n.Abs(l)
}

// Pow implements Ints by square-and-multiply.
func (n NativeInts) Pow(a numeric.Integer, e uint64) (numeric.Integer, error) {
	base, ok := a.Int64()
	if !ok {
		return numeric.Integer{}, overflow("pow", a)
	}
	result := int64(1)
	for e > 0 {
		if e&1 == 1 {
			if result, ok = mul64(result, base); !ok {
				return numeric.Integer{}, overflow("pow", a)
			}
		}
		e >>= 1
		if e > 0 {
			if base, ok = mul64(base, base); !ok {
				return numeric.Integer{}, overflow("pow", a)
			}
		}
	}
	return numeric.NewInteger(result), nil
}

// Sqrt implements Ints.
func (n NativeInts) Sqrt(a numeric.Integer) (numeric.Integer, bool, error) {
	if err := n.Check(a); err != nil {
		return numeric.Integer{}, false, err
	}
	return floorSqrt(a)
}
