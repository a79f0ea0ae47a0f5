package numeric

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind is the closed set of numeric kinds.
type Kind int

const (
	KindInt Kind = iota
	KindWhole
	KindNatural
	KindFloat
	KindRational
	KindComplex
)

var kindNames = [...]string{
	KindInt:      "int",
	KindWhole:    "whole",
	KindNatural:  "natural",
	KindFloat:    "float",
	KindRational: "rational",
	KindComplex:  "complex",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind parses a kind name as produced by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == strings.ToLower(strings.TrimSpace(s)) {
			return Kind(k), true
		}
	}
	return 0, false
}

// Value is a sealed interface over the numeric kinds.
// Only Int, Whole, Natural, Float, Rational and Complex implement it.
type Value interface {
	Kind() Kind
	String() string
	numericValue() // Sealed
}

// Int is a plain integer.
type Int struct{ v Integer }

func (Int) numericValue() {}

// NewInt creates an Int.
func NewInt(i int64) Int { return Int{v: NewInteger(i)} }

// IntOf wraps an Integer as an Int.
func IntOf(i Integer) Int { return Int{v: i} }

// Kind implements Value.
func (Int) Kind() Kind { return KindInt }

// Integer returns the wrapped value.
func (n Int) Integer() Integer { return n.v }

func (n Int) String() string { return n.v.String() }

// Whole is an integer ≥ 0.
type Whole struct{ v Integer }

func (Whole) numericValue() {}

// NewWhole creates a Whole, failing with OutOfRange for negative input.
func NewWhole(i int64) (Whole, error) { return WholeOf(NewInteger(i)) }

// WholeOf wraps an Integer as a Whole.
func WholeOf(i Integer) (Whole, error) {
	if i.Sign() < 0 {
		return Whole{}, NewError(CodeOutOfRange, "whole", "%s is negative", i)
	}
	return Whole{v: i}, nil
}

// Kind implements Value.
func (Whole) Kind() Kind { return KindWhole }

// Integer returns the wrapped value.
func (n Whole) Integer() Integer { return n.v }

func (n Whole) String() string { return n.v.String() }

// Natural is an integer ≥ 1.
type Natural struct{ v Integer }

func (Natural) numericValue() {}

// NewNatural creates a Natural, failing with OutOfRange below 1.
func NewNatural(i int64) (Natural, error) { return NaturalOf(NewInteger(i)) }

// NaturalOf wraps an Integer as a Natural.
func NaturalOf(i Integer) (Natural, error) {
	if i.Sign() < 1 {
		return Natural{}, NewError(CodeOutOfRange, "natural", "%s is less than 1", i)
	}
	return Natural{v: i}, nil
}

// Kind implements Value.
func (Natural) Kind() Kind { return KindNatural }

// Integer returns the wrapped value.
func (n Natural) Integer() Integer { return n.v }

func (n Natural) String() string { return n.v.String() }

// Float is an IEEE-754 double.
type Float float64

func (Float) numericValue() {}

// Kind implements Value.
func (Float) Kind() Kind { return KindFloat }

// Float64 returns the value as float64.
func (f Float) Float64() float64 { return float64(f) }

// String uses the shortest representation that round-trips.
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Rational is an exact fraction num/den with den ≠ 0.
//
// Rationals are stored exactly as computed; nothing in this package or the
// arithmetic packages reduces them. Use Reduce for lowest terms.
type Rational struct {
	num Integer
	den Integer
}

func (Rational) numericValue() {}

// NewRational creates num/den, failing with DivisionByZero when den is 0.
func NewRational(num, den Integer) (Rational, error) {
	if den.IsZero() {
		return Rational{}, NewError(CodeDivisionByZero, "rational", "zero denominator")
	}
	return Rational{num: num, den: den}, nil
}

// MustRational creates num/den from int64s and panics on a zero denominator.
// Use this for constants.
func MustRational(num, den int64) Rational {
	r, err := NewRational(NewInteger(num), NewInteger(den))
	if err != nil {
		panic(err)
	}
	return r
}

// RationalOf returns i/1.
func RationalOf(i Integer) Rational {
	return Rational{num: i, den: NewInteger(1)}
}

// RationalFromRat converts a *big.Rat (already in lowest terms) to a Rational.
func RationalFromRat(r *big.Rat) Rational {
	return Rational{num: IntegerFromBig(r.Num()), den: IntegerFromBig(r.Denom())}
}

// Kind implements Value.
func (Rational) Kind() Kind { return KindRational }

// Num returns the numerator.
func (r Rational) Num() Integer { return r.num }

// Den returns the denominator. The zero Rational reports 1.
func (r Rational) Den() Integer {
	if r.den.v == nil {
		return NewInteger(1)
	}
	return r.den
}

// Sign returns the sign of the value, honouring a negative denominator.
func (r Rational) Sign() int {
	return r.num.Sign() * r.Den().Sign()
}

// IsZero reports whether the value is 0.
func (r Rational) IsZero() bool { return r.num.IsZero() }

// IsIntegral reports whether den divides num.
func (r Rational) IsIntegral() bool {
	return new(big.Int).Rem(r.num.ref(), r.Den().ref()).Sign() == 0
}

// Rat returns the value as a normalised *big.Rat.
func (r Rational) Rat() *big.Rat {
	return new(big.Rat).SetFrac(r.num.ref(), r.Den().ref())
}

// Float64 returns the nearest float64.
func (r Rational) Float64() float64 {
	f, _ := r.Rat().Float64()
	return f
}

// Reduce returns the value in lowest terms with a positive denominator.
func (r Rational) Reduce() Rational {
	return RationalFromRat(r.Rat())
}

// Equal reports value equality (1/2 equals 2/4).
func (r Rational) Equal(o Rational) bool {
	return r.Rat().Cmp(o.Rat()) == 0
}

// String returns "num/den" exactly as stored.
func (r Rational) String() string {
	return r.num.String() + "/" + r.Den().String()
}

// Complex is real + imag·i with rational components.
type Complex struct {
	re Rational
	im Rational
}

func (Complex) numericValue() {}

// NewComplex creates re + im·i.
func NewComplex(re, im Rational) Complex {
	return Complex{re: re, im: im}
}

// ComplexFromInts creates re/1 + (im/1)·i.
func ComplexFromInts(re, im int64) Complex {
	return Complex{re: RationalOf(NewInteger(re)), im: RationalOf(NewInteger(im))}
}

// Kind implements Value.
func (Complex) Kind() Kind { return KindComplex }

// Real returns the real component.
func (c Complex) Real() Rational { return c.re }

// Imag returns the imaginary component.
func (c Complex) Imag() Rational { return c.im }

// IsReal reports whether the imaginary part is 0.
func (c Complex) IsReal() bool { return c.im.IsZero() }

// IsZero reports whether both parts are 0.
func (c Complex) IsZero() bool { return c.re.IsZero() && c.im.IsZero() }

// String returns "re+imi" with both parts in num/den form.
func (c Complex) String() string {
	im := c.im
	sign := "+"
	if im.Sign() < 0 {
		sign = "-"
		im = Rational{num: IntegerFromBig(new(big.Int).Abs(im.num.ref())), den: IntegerFromBig(new(big.Int).Abs(im.Den().ref()))}
	}
	return c.re.String() + sign + im.String() + "i"
}

// ToInt converts v to an Int, truncating toward zero.
func ToInt(v Value) (Int, error) {
	switch val := v.(type) {
	case Int:
		return val, nil
	case Whole:
		return Int{v: val.v}, nil
	case Natural:
		return Int{v: val.v}, nil
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Int{}, NewError(CodeDomain, "toInt", "%v has no integer value", f)
		}
		b, _ := big.NewFloat(math.Trunc(f)).Int(nil)
		return Int{v: Integer{v: b}}, nil
	case Rational:
		return Int{v: Integer{v: new(big.Int).Quo(val.num.ref(), val.Den().ref())}}, nil
	case Complex:
		if !val.IsReal() {
			return Int{}, NewError(CodeDomain, "toInt", "%s is not real", val)
		}
		return ToInt(val.re)
	}
	return Int{}, NewError(CodeUnknownOperandType, "toInt", "%T", v)
}

// ToFloat converts v to a Float.
func ToFloat(v Value) (Float, error) {
	switch val := v.(type) {
	case Int:
		return Float(val.v.Float64()), nil
	case Whole:
		return Float(val.v.Float64()), nil
	case Natural:
		return Float(val.v.Float64()), nil
	case Float:
		return val, nil
	case Rational:
		return Float(val.Float64()), nil
	case Complex:
		if !val.IsReal() {
			return 0, NewError(CodeDomain, "toFloat", "%s is not real", val)
		}
		return Float(val.re.Float64()), nil
	}
	return 0, NewError(CodeUnknownOperandType, "toFloat", "%T", v)
}

// ToRational converts v to a Rational. Floats convert exactly from their
// binary expansion; engines that want a different float policy convert
// floats themselves before calling this.
func ToRational(v Value) (Rational, error) {
	switch val := v.(type) {
	case Int:
		return RationalOf(val.v), nil
	case Whole:
		return RationalOf(val.v), nil
	case Natural:
		return RationalOf(val.v), nil
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Rational{}, NewError(CodeDomain, "toRational", "%v is not finite", f)
		}
		return RationalFromRat(new(big.Rat).SetFloat64(f)), nil
	case Rational:
		return val, nil
	case Complex:
		if !val.IsReal() {
			return Rational{}, NewError(CodeDomain, "toRational", "%s is not real", val)
		}
		return val.re, nil
	}
	return Rational{}, NewError(CodeUnknownOperandType, "toRational", "%T", v)
}

// ToComplex converts v to a Complex with a zero imaginary part.
func ToComplex(v Value) (Complex, error) {
	if c, ok := v.(Complex); ok {
		return c, nil
	}
	re, err := ToRational(v)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: RationalOf(Integer{})}, nil
}

// Inc returns v + 1 in the same kind.
func Inc(v Value) (Value, error) { return step(v, 1) }

// Dec returns v - 1 in the same kind. Whole(0) and Natural(1) fail with
// OutOfRange.
func Dec(v Value) (Value, error) { return step(v, -1) }

func step(v Value, d int64) (Value, error) {
	delta := big.NewInt(d)
	switch val := v.(type) {
	case Int:
		return Int{v: Integer{v: new(big.Int).Add(val.v.ref(), delta)}}, nil
	case Whole:
		return WholeOf(Integer{v: new(big.Int).Add(val.v.ref(), delta)})
	case Natural:
		return NaturalOf(Integer{v: new(big.Int).Add(val.v.ref(), delta)})
	case Float:
		return val + Float(d), nil
	case Rational:
		n := new(big.Int).Mul(val.Den().ref(), delta)
		return Rational{num: Integer{v: n.Add(n, val.num.ref())}, den: val.Den()}, nil
	case Complex:
		re, err := step(val.re, d)
		if err != nil {
			return nil, err
		}
		return Complex{re: re.(Rational), im: val.im}, nil
	}
	return nil, NewError(CodeUnknownOperandType, "step", "%T", v)
}
