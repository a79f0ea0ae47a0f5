// Package engine implements the calculator engines of the numeric tower.
//
// An Engine exposes one Ops table per result category (Int, Whole, Natural,
// Float, Rational, Complex). Each table implements add, sub, mul, div, pow,
// sqrt and reciprocal for operands already arbitrated into that category.
//
// ARCHITECTURE:
//
// Two engines share every algorithm:
//   - Native: int64 integers (INTEGER_OVERFLOW outside the range), float64
//     reals, Taylor logarithm by default
//   - Precision: math/big integers, apd decimal reals at Config.Precision
//     digits, AGM logarithm by default
//
// The only difference between them is the primitive.Ints and
// primitive.Reals they are built on. Rational and complex arithmetic come
// from the rational and cplx packages, logarithms from natlog.
//
// Result kinds:
//   - div and reciprocal over Int, Whole and Natural give an unreduced Rational
//   - Whole and Natural results keep their refinement only when both operands
//     carry it and the result satisfies the bound; otherwise they are Int
//   - sqrt of a negative Int, Float or Rational gives a purely imaginary Complex
//   - ln always gives a Rational
//
// Engines are immutable after construction and safe for concurrent use.
// Selection is by config.Config passed to New; there is no global engine.
package engine
