// Package arbiter decides the result category of an arithmetic operation
// from the kinds of its operands.
//
// Precedence, highest wins:
//
//	Complex > Rational > Float > Whole > Natural > Int
//
// Exactly one complex operand yields Mixed, naming the side to promote to
// Complex before dispatch. Whole mixed with Natural yields Int: the two
// refinements share no bound that both results would satisfy.
package arbiter

import (
	"fmt"

	"github.com/roach88/numtower/internal/numeric"
)

// Category is the dispatch target for an operation.
type Category int

const (
	Int Category = iota
	Natural
	Whole
	Float
	Rational
	Complex
	// Mixed means one operand is complex and the other must be promoted.
	Mixed
)

var categoryNames = [...]string{"int", "natural", "whole", "float", "rational", "complex", "mixed"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Promote names the operand a Mixed result must convert to Complex.
type Promote int

const (
	PromoteNone Promote = iota
	PromoteFirst
	PromoteSecond
)

func (p Promote) String() string {
	switch p {
	case PromoteFirst:
		return "first"
	case PromoteSecond:
		return "second"
	default:
		return "none"
	}
}

// Result is the outcome of Classify.
type Result struct {
	Category Category
	Promote  Promote
}

// Target returns the category the operation runs in once promotion is
// done: Complex for Mixed, Category otherwise.
func (r Result) Target() Category {
	if r.Category == Mixed {
		return Complex
	}
	return r.Category
}

// ClassifyOne returns the category of a single operand.
func ClassifyOne(v numeric.Value) Category {
	switch v.(type) {
	case numeric.Complex:
		return Complex
	case numeric.Rational:
		return Rational
	case numeric.Float:
		return Float
	case numeric.Whole:
		return Whole
	case numeric.Natural:
		return Natural
	default:
		return Int
	}
}

// Classify returns the category for the pair (a, b). It is total, pure and
// symmetric except for the promoted side.
func Classify(a, b numeric.Value) Result {
	ca, cb := ClassifyOne(a), ClassifyOne(b)

	switch {
	case ca == Complex && cb == Complex:
		return Result{Category: Complex}
	case ca == Complex:
		return Result{Category: Mixed, Promote: PromoteSecond}
	case cb == Complex:
		return Result{Category: Mixed, Promote: PromoteFirst}
	case (ca == Whole && cb == Natural) || (ca == Natural && cb == Whole):
		return Result{Category: Int}
	}
	return Result{Category: max(ca, cb)}
}
