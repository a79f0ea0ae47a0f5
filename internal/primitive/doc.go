// Package primitive defines the two substrates the arithmetic packages are
// built on, and their Native and Precision implementations.
//
// Ints is the integer primitive (add, sub, mul, quo, compare, gcd, ...).
// Reals is the approximation primitive used wherever exact rational
// arithmetic cannot produce the answer (roots, non-integral powers, exp,
// trigonometry) and by float-to-rational reconstruction.
//
// Native:
//   - Ints works on int64 and fails with INTEGER_OVERFLOW outside that range
//   - Reals evaluates with float64 and the math package, then rebuilds a
//     rational by continued fractions (bounded by int64)
//
// Precision:
//   - Ints works on math/big and never overflows
//   - Reals evaluates with apd decimals at a configured number of digits and
//     converts the decimal result to an exact rational
//
// The rational, cplx and engine packages never look past these interfaces;
// swapping the substrate is the only difference between the two engines.
package primitive
