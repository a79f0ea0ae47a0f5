// Package natlog computes natural logarithms of positive rationals.
//
// Two methods are provided:
//   - Taylor: the atanh series 2·Σ x^k/k with x = (y-1)/(y+1), evaluated in
//     float64 after reducing y by a power of two
//   - AGM: ln s ≈ π / (2·M(1, 4/s)) for large s, evaluated with apd decimals
//
// Both loops are bounded and fail with NON_CONVERGENCE when the bound is
// reached.
package natlog

import (
	"fmt"
	"math/big"

	"github.com/roach88/numtower/internal/numeric"
)

// Method computes ln x.
type Method interface {
	Name() string
	// Ln returns ln x. x ≤ 0 fails with DOMAIN.
	Ln(x numeric.Rational) (numeric.Rational, error)
}

// Name values accepted by Lookup and the configuration.
const (
	NameTaylor = "taylor"
	NameAGM    = "agm"
)

// DefaultMaxIterations bounds both methods unless configured otherwise.
const DefaultMaxIterations = 10000

func checkDomain(op string, x numeric.Rational) error {
	if x.Sign() <= 0 {
		return numeric.NewError(numeric.CodeDomain, op, "ln of non-positive %s", x)
	}
	return nil
}

func nonConvergence(op string, iterations int) error {
	return numeric.NewError(numeric.CodeNonConvergence, op, "no convergence after %d iterations", iterations)
}

// binaryExponent returns k with x/2^k in [1/2, 2).
func binaryExponent(x numeric.Rational) int {
	r := x.Rat()
	k := r.Num().BitLen() - r.Denom().BitLen()
	return k
}

// scaleByPow2 returns x·2^-k exactly.
func scaleByPow2(x numeric.Rational, k int) *big.Rat {
	r := x.Rat()
	p := new(big.Int).Lsh(big.NewInt(1), uint(abs(k)))
	if k >= 0 {
		return r.Quo(r, new(big.Rat).SetInt(p))
	}
	return r.Mul(r, new(big.Rat).SetInt(p))
}

func abs(k int) int {
	if k < 0 {
		return -k
	}
	return k
}

// Lookup returns the method registered under name.
func Lookup(name string, methods ...Method) (Method, error) {
	for _, m := range methods {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("natlog: unknown method %q", name)
}
