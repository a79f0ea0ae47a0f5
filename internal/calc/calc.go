// Package calc is the calculator facade over an engine.
//
// Operands may be raw Go values or numeric.Value. Each operation converts
// its operands with Engine.ConvertNumeric, classifies them with the
// arbiter, promotes the named side of a Mixed pair and dispatches to the
// engine's table for the resulting category.
package calc

import (
	"fmt"
	"log/slog"

	"github.com/roach88/numtower/internal/arbiter"
	"github.com/roach88/numtower/internal/compare"
	"github.com/roach88/numtower/internal/engine"
	"github.com/roach88/numtower/internal/numeric"
)

// DefaultTolerance is used by Aeq when no WithTolerance option is given.
const DefaultTolerance = 1e-9

// Calculator runs operations on one engine. It is safe for concurrent use.
type Calculator struct {
	e         engine.Engine
	cmp       *compare.Comparator
	logger    *slog.Logger
	tolerance float64
}

// Option is a functional option for configuring the Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for dispatch decisions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = l
	}
}

// WithTolerance sets the tolerance used by Aeq.
func WithTolerance(tol float64) Option {
	return func(c *Calculator) {
		c.tolerance = tol
	}
}

// New returns a Calculator over e.
func New(e engine.Engine, opts ...Option) *Calculator {
	c := &Calculator{
		e:         e,
		cmp:       compare.New(e),
		logger:    slog.Default(),
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the engine the calculator dispatches to.
func (c *Calculator) Engine() engine.Engine { return c.e }

// Comparator returns the comparator bound to the calculator's engine.
func (c *Calculator) Comparator() *compare.Comparator { return c.cmp }

// Value converts a raw operand.
func (c *Calculator) Value(raw any) (numeric.Value, error) {
	return c.e.ConvertNumeric(raw)
}

// Classify converts both operands and returns their arbitration.
func (c *Calculator) Classify(a, b any) (arbiter.Result, error) {
	x, y, err := c.pair(a, b)
	if err != nil {
		return arbiter.Result{}, err
	}
	return arbiter.Classify(x, y), nil
}

// Add returns a + b.
func (c *Calculator) Add(a, b any) (numeric.Value, error) {
	return c.binary("add", a, b, engine.Ops.Add)
}

// Sub returns a - b.
func (c *Calculator) Sub(a, b any) (numeric.Value, error) {
	return c.binary("sub", a, b, engine.Ops.Sub)
}

// Mul returns a · b.
func (c *Calculator) Mul(a, b any) (numeric.Value, error) {
	return c.binary("mul", a, b, engine.Ops.Mul)
}

// Div returns a / b. Integer operands give a Rational.
func (c *Calculator) Div(a, b any) (numeric.Value, error) {
	return c.binary("div", a, b, engine.Ops.Div)
}

// Pow returns base ^ exponent.
func (c *Calculator) Pow(base, exponent any) (numeric.Value, error) {
	return c.binary("pow", base, exponent, engine.Ops.Pow)
}

// Sqrt returns the principal square root of a.
func (c *Calculator) Sqrt(a any) (numeric.Value, error) {
	return c.unary("sqrt", a, engine.Ops.Sqrt)
}

// Reciprocal returns 1 / a.
func (c *Calculator) Reciprocal(a any) (numeric.Value, error) {
	return c.unary("reciprocal", a, engine.Ops.Reciprocal)
}

// NatLog returns ln a as a Rational.
func (c *Calculator) NatLog(a any) (numeric.Value, error) {
	x, err := c.e.ConvertNumeric(a)
	if err != nil {
		return nil, fmt.Errorf("ln: %w", err)
	}
	v, err := c.e.NatLog(x)
	if err != nil {
		return nil, fmt.Errorf("ln %s: %w", x, err)
	}
	return v, nil
}

// Inc returns a + 1 in the kind of a.
func (c *Calculator) Inc(a any) (numeric.Value, error) {
	return c.step("inc", a, numeric.Inc)
}

// Dec returns a - 1 in the kind of a.
func (c *Calculator) Dec(a any) (numeric.Value, error) {
	return c.step("dec", a, numeric.Dec)
}

// Compare returns -1, 0 or 1 ordering a against b.
func (c *Calculator) Compare(a, b any) (int, error) {
	x, y, err := c.pair(a, b)
	if err != nil {
		return 0, err
	}
	return c.cmp.Compare(x, y)
}

// CompareWithin compares a and b, treating values closer than tol as
// equal.
func (c *Calculator) CompareWithin(a, b any, tol float64) (int, error) {
	x, y, err := c.pair(a, b)
	if err != nil {
		return 0, err
	}
	return c.cmp.CompareWithin(x, y, tol)
}

// Aeq reports whether a and b are within the calculator's tolerance.
func (c *Calculator) Aeq(a, b any) (bool, error) {
	x, y, err := c.pair(a, b)
	if err != nil {
		return false, err
	}
	return c.cmp.Aeq(x, y, c.tolerance)
}

func (c *Calculator) pair(a, b any) (numeric.Value, numeric.Value, error) {
	x, err := c.e.ConvertNumeric(a)
	if err != nil {
		return nil, nil, fmt.Errorf("first operand: %w", err)
	}
	y, err := c.e.ConvertNumeric(b)
	if err != nil {
		return nil, nil, fmt.Errorf("second operand: %w", err)
	}
	return x, y, nil
}

func (c *Calculator) binary(op string, a, b any, fn func(engine.Ops, numeric.Value, numeric.Value) (numeric.Value, error)) (numeric.Value, error) {
	x, y, err := c.pair(a, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := arbiter.Classify(x, y)
	switch res.Promote {
	case arbiter.PromoteFirst:
		if x, err = c.e.Promote(x); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	case arbiter.PromoteSecond:
		if y, err = c.e.Promote(y); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	c.logger.Debug("dispatch",
		"op", op,
		"category", res.Category.String(),
		"promote", res.Promote.String(),
		"engine", string(c.e.Kind()))

	v, err := fn(c.e.Ops(res.Category), x, y)
	if err != nil {
		return nil, fmt.Errorf("%s %s %s: %w", op, x, y, err)
	}
	return v, nil
}

func (c *Calculator) unary(op string, a any, fn func(engine.Ops, numeric.Value) (numeric.Value, error)) (numeric.Value, error) {
	x, err := c.e.ConvertNumeric(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cat := arbiter.ClassifyOne(x)
	c.logger.Debug("dispatch", "op", op, "category", cat.String(), "engine", string(c.e.Kind()))

	v, err := fn(c.e.Ops(cat), x)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, x, err)
	}
	return v, nil
}

func (c *Calculator) step(op string, a any, fn func(numeric.Value) (numeric.Value, error)) (numeric.Value, error) {
	x, err := c.e.ConvertNumeric(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	v, err := fn(x)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, x, err)
	}
	// The result must still fit the engine's integers.
	if v, err = c.e.ConvertNumeric(v); err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, x, err)
	}
	return v, nil
}
