package engine

import (
	"log/slog"

	"github.com/roach88/numtower/internal/arbiter"
	"github.com/roach88/numtower/internal/bigreal"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/cplx"
	"github.com/roach88/numtower/internal/natlog"
	"github.com/roach88/numtower/internal/numeric"
	"github.com/roach88/numtower/internal/primitive"
	"github.com/roach88/numtower/internal/rational"
)

// Ops is the operation table of one result category.
type Ops interface {
	Add(a, b numeric.Value) (numeric.Value, error)
	Sub(a, b numeric.Value) (numeric.Value, error)
	Mul(a, b numeric.Value) (numeric.Value, error)
	Div(a, b numeric.Value) (numeric.Value, error)
	Pow(base, exponent numeric.Value) (numeric.Value, error)
	Reciprocal(a numeric.Value) (numeric.Value, error)
	Sqrt(a numeric.Value) (numeric.Value, error)
}

// Engine is a calculator engine bound to one integer and one real
// primitive.
type Engine interface {
	Kind() config.EngineKind

	Int() Ops
	Whole() Ops
	Natural() Ops
	Float() Ops
	Rational() Ops
	Complex() Ops

	// Ops returns the table for c. Mixed maps to Complex; the caller
	// promotes the non-complex operand first.
	Ops(c arbiter.Category) Ops

	// NatLog returns ln v as a Rational. Complex inputs are reduced to
	// their real part when real, otherwise to their modulus.
	NatLog(v numeric.Value) (numeric.Value, error)

	// ConvertNumeric turns a raw Go value into a numeric.Value valid for
	// this engine.
	ConvertNumeric(raw any) (numeric.Value, error)

	// Promote converts a non-complex operand to Complex (imaginary part
	// zero) for Mixed dispatch.
	Promote(v numeric.Value) (numeric.Complex, error)
}

// core carries the shared algorithms. Native and Precision differ only in
// the primitives passed to newCore.
type core struct {
	kind  config.EngineKind
	cfg   config.Config
	ints  primitive.Ints
	reals primitive.Reals
	q     *rational.Arith
	c     *cplx.Arith
	ln    natlog.Method

	intOps     *intOps
	wholeOps   *intOps
	naturalOps *intOps
	floatOps   *floatOps
	ratOps     *rationalOps
	cplxOps    *complexOps
}

func newCore(cfg config.Config, ints primitive.Ints, reals primitive.Reals, ln natlog.Method) *core {
	q := rational.New(ints, reals)
	e := &core{
		kind:  cfg.Engine,
		cfg:   cfg,
		ints:  ints,
		reals: reals,
		q:     q,
		c:     cplx.New(q, ln),
		ln:    ln,
	}
	e.intOps = &intOps{e: e, refine: numeric.KindInt}
	e.wholeOps = &intOps{e: e, refine: numeric.KindWhole}
	e.naturalOps = &intOps{e: e, refine: numeric.KindNatural}
	e.floatOps = &floatOps{e: e, native: cfg.Engine == config.EngineNative}
	e.ratOps = &rationalOps{e: e}
	e.cplxOps = &complexOps{e: e}
	return e
}

// Native is the machine-word engine.
type Native struct{ *core }

// Precision is the arbitrary-precision engine.
type Precision struct{ *core }

var (
	_ Engine = (*Native)(nil)
	_ Engine = (*Precision)(nil)
)

// New builds the engine selected by cfg.Engine. An unknown selector fails
// with UNSUPPORTED_ENGINE.
func New(cfg config.Config) (Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	slog.Debug("building engine",
		"engine", string(cfg.Engine),
		"precision", cfg.Precision,
		"log_method", cfg.LogMethod)

	switch cfg.Engine {
	case config.EngineNative:
		return NewNative(cfg)
	case config.EnginePrecision:
		return NewPrecision(cfg)
	}
	return nil, numeric.NewError(numeric.CodeUnsupportedEngine, "engine.new", "unknown engine %q", cfg.Engine)
}

// NewNative builds a Native engine. cfg.Engine is ignored.
func NewNative(cfg config.Config) (*Native, error) {
	cfg.Engine = config.EngineNative
	reals := primitive.NativeReals{Tolerance: cfg.FloatTolerance}
	ln, err := logMethod(cfg, reals, nil)
	if err != nil {
		return nil, err
	}
	return &Native{newCore(cfg, primitive.NativeInts{}, reals, ln)}, nil
}

// NewPrecision builds a Precision engine. cfg.Engine is ignored.
func NewPrecision(cfg config.Config) (*Precision, error) {
	cfg.Engine = config.EnginePrecision
	reals, err := primitive.NewPrecisionReals(cfg.Precision)
	if err != nil {
		return nil, err
	}
	ln, err := logMethod(cfg, reals, reals.Context())
	if err != nil {
		return nil, err
	}
	return &Precision{newCore(cfg, primitive.PrecisionInts{}, reals, ln)}, nil
}

// logMethod builds the configured logarithm. ctx may be nil; AGM then gets
// its own decimal context at cfg.Precision digits.
func logMethod(cfg config.Config, reals primitive.Reals, ctx *bigreal.Context) (natlog.Method, error) {
	switch cfg.LogMethod {
	case config.LogTaylor:
		return natlog.Taylor{
			Epsilon:       cfg.LogEpsilon,
			MaxIterations: cfg.MaxIterations,
			Reals:         reals,
		}, nil
	case config.LogAGM:
		if ctx == nil {
			var err error
			if ctx, err = bigreal.New(cfg.Precision); err != nil {
				return nil, err
			}
		}
		return natlog.NewAGM(ctx, cfg.AGMBits), nil
	}
	return nil, numeric.NewError(numeric.CodeUnsupportedEngine, "engine.new", "unknown log method %q", cfg.LogMethod)
}

// Kind implements Engine.
func (e *core) Kind() config.EngineKind { return e.kind }

// Config returns the configuration the engine was built with.
func (e *core) Config() config.Config { return e.cfg }

// Rationals exposes the rational arithmetic the engine is built on.
func (e *core) Rationals() *rational.Arith { return e.q }

// Complexes exposes the complex arithmetic the engine is built on.
func (e *core) Complexes() *cplx.Arith { return e.c }

// Int implements Engine.
func (e *core) Int() Ops { return e.intOps }

// Whole implements Engine.
func (e *core) Whole() Ops { return e.wholeOps }

// Natural implements Engine.
func (e *core) Natural() Ops { return e.naturalOps }

// Float implements Engine.
func (e *core) Float() Ops { return e.floatOps }

// Rational implements Engine.
func (e *core) Rational() Ops { return e.ratOps }

// Complex implements Engine.
func (e *core) Complex() Ops { return e.cplxOps }

// Ops implements Engine.
func (e *core) Ops(c arbiter.Category) Ops {
	switch c {
	case arbiter.Whole:
		return e.wholeOps
	case arbiter.Natural:
		return e.naturalOps
	case arbiter.Float:
		return e.floatOps
	case arbiter.Rational:
		return e.ratOps
	case arbiter.Complex, arbiter.Mixed:
		return e.cplxOps
	default:
		return e.intOps
	}
}

// NatLog implements Engine.
func (e *core) NatLog(v numeric.Value) (numeric.Value, error) {
	var x numeric.Rational
	switch val := v.(type) {
	case numeric.Complex:
		if val.IsReal() {
			x = val.Real()
			break
		}
		m, err := e.c.Modulus(val)
		if err != nil {
			return nil, err
		}
		x = m
	default:
		r, err := e.toRational(v)
		if err != nil {
			return nil, err
		}
		x = r
	}

	slog.Debug("natural log", "engine", string(e.kind), "method", e.ln.Name(), "operand", x.String())
	r, err := e.ln.Ln(x)
	if err != nil {
		return nil, err
	}
	return r, nil
}
