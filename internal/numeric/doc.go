// Package numeric defines the value types of the numeric tower.
//
// This package contains type definitions, conversions and the text and JSON
// forms only. All arithmetic lives in the engine packages; numeric imports
// nothing internal, so every other package can depend on it.
//
// Key design constraints:
//   - Value is sealed: only Int, Whole, Natural, Float, Rational and Complex
//     implement it
//   - Values are immutable; Inc and Dec return a new value for the caller to
//     re-bind
//   - Rational values are never reduced on construction (see Rational.Reduce)
//   - Integer carries no range; engines decide which magnitudes are legal
package numeric
