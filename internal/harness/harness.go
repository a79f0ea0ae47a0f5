package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/engine"
	"github.com/roach88/numtower/internal/numeric"
	"github.com/roach88/numtower/internal/testutil"
)

// Clock stamps trace events with strictly increasing sequence numbers.
type Clock interface {
	Next() int64
}

// Harness runs the steps of one scenario.
type Harness struct {
	calc   *calc.Calculator
	clock  Clock
	logger *slog.Logger
}

type options struct {
	logger *slog.Logger
	clock  Clock
	runIDs RunIDGenerator
	cfg    *config.Config
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger for step progress. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces the deterministic clock.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRunIDs sets the run identifier source for scenarios without a
// fixed run_id.
func WithRunIDs(g RunIDGenerator) Option {
	return func(o *options) { o.runIDs = g }
}

// WithConfig sets the base engine configuration. The scenario's engine and
// precision fields still override it.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// Run executes a scenario on a fresh engine and returns its result.
// Expectation and assertion failures are recorded in the result; the
// error is reserved for scenarios that cannot run at all.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = testutil.NewDeterministicClock()
	}
	if o.runIDs == nil || scenario.RunID != "" {
		o.runIDs = testutil.NewFixedRunID(scenario.RunID)
	}

	cfg, err := scenarioConfig(scenario, o.cfg)
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	h := &Harness{
		calc:   calc.New(eng, calc.WithLogger(o.logger)),
		clock:  o.clock,
		logger: o.logger,
	}

	result := NewResult()
	result.RunID = o.runIDs.Generate()
	result.Engine = string(eng.Kind())

	h.logger.Info("scenario started",
		"scenario", scenario.Name,
		"engine", result.Engine,
		"precision", cfg.Precision,
		"log_method", cfg.LogMethod,
		"run_id", result.RunID,
	)

	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, err
		}
	}

	for _, msg := range EvaluateAssertions(result.Trace, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)
	return result, nil
}

// scenarioConfig overlays the scenario's engine and precision on base.
// A scenario engine that differs from the base one brings its own defaults.
func scenarioConfig(s *Scenario, base *config.Config) (config.Config, error) {
	cfg := config.Default(config.EngineNative)
	if base != nil {
		cfg = *base
	}
	if s.Engine != "" {
		kind, err := s.EngineKind()
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.WithEngine(kind)
	}
	if s.Precision > 0 {
		cfg.Precision = s.Precision
	}
	return cfg, nil
}

// executeStep runs one step, appends its call and return events and
// checks its expectation.
func (h *Harness) executeStep(i int, step Step, result *Result) error {
	result.AddCall(step.Op, step.Args, h.clock.Next())

	ret, err := h.apply(step)
	ret.Seq = h.clock.Next()
	if err != nil {
		ret.Error = numeric.CodeOf(err)
		if ret.Error == "" {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	result.AddReturn(ret)

	for _, msg := range h.check(step, ret) {
		result.AddError(fmt.Sprintf("steps[%d] %s %v: %s", i, step.Op, step.Args, msg))
	}

	h.logger.Info("step completed",
		"step", i,
		"op", step.Op,
		"seq", ret.Seq,
		"error", string(ret.Error),
	)
	return nil
}

func (h *Harness) apply(step Step) (TraceEvent, error) {
	var ev TraceEvent
	if step.Op == "classify" {
		res, err := h.calc.Classify(step.Args[0], step.Args[1])
		if err != nil {
			return ev, err
		}
		ev.Category = res.Category.String()
		return ev, nil
	}

	v, err := h.calc.Apply(step.Op, toAny(step.Args)...)
	ev.Value = v
	return ev, err
}

func toAny(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

// check compares a return event with the step's expectation.
func (h *Harness) check(step Step, ret TraceEvent) []string {
	e := step.Expect
	switch {
	case e == nil:
		if ret.Error != "" {
			return []string{fmt.Sprintf("unexpected error %s", ret.Error)}
		}
		return nil
	case e.Error != "":
		if ret.Error == "" {
			return []string{fmt.Sprintf("expected error %s, got %s", e.Error, describe(ret))}
		}
		if string(ret.Error) != e.Error {
			return []string{fmt.Sprintf("expected error %s, got %s", e.Error, ret.Error)}
		}
		return nil
	case ret.Error != "":
		return []string{fmt.Sprintf("unexpected error %s", ret.Error)}
	}

	if step.Op == "classify" {
		var errs []string
		for _, want := range []string{e.Kind, e.Value} {
			if want != "" && want != ret.Category {
				errs = append(errs, fmt.Sprintf("expected category %s, got %s", want, ret.Category))
			}
		}
		return errs
	}

	var errs []string
	if e.Kind != "" && e.Kind != ret.Value.Kind().String() {
		errs = append(errs, fmt.Sprintf("expected kind %s, got %s", e.Kind, ret.Value.Kind()))
	}
	if e.Value == "" {
		return errs
	}
	if e.Tolerance == 0 {
		if got := ret.Value.String(); got != e.Value {
			errs = append(errs, fmt.Sprintf("expected %s, got %s", e.Value, got))
		}
		return errs
	}

	want, err := h.calc.Value(e.Value)
	if err != nil {
		return append(errs, fmt.Sprintf("invalid expected value %q: %v", e.Value, err))
	}
	ok, err := h.calc.Comparator().Aeq(want, ret.Value, e.Tolerance)
	if err != nil {
		return append(errs, fmt.Sprintf("comparing with %s: %v", e.Value, err))
	}
	if !ok {
		errs = append(errs, fmt.Sprintf("expected %s within %g, got %s", e.Value, e.Tolerance, ret.Value))
	}
	return errs
}

func describe(ev TraceEvent) string {
	if ev.Category != "" {
		return ev.Category
	}
	return ev.Value.String()
}
