package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/numeric"
)

// Scenario is a conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Engine is "native" or "precision". Empty means native.
	Engine string `yaml:"engine,omitempty"`

	// Precision overrides the precision engine's digit count.
	Precision uint32 `yaml:"precision,omitempty"`

	// RunID is a fixed run identifier for golden comparison.
	RunID string `yaml:"run_id,omitempty"`

	Steps []Step `yaml:"steps"`

	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operation with raw text operands.
type Step struct {
	Op     string   `yaml:"op"`
	Args   []string `yaml:"args"`
	Expect *Expect  `yaml:"expect,omitempty"`
}

// Expect is the expected outcome of a step. Error excludes the other
// fields.
type Expect struct {
	// Kind is a numeric kind name, or the category name for classify.
	Kind string `yaml:"kind,omitempty"`

	// Value is the expected result in numeric.Parse syntax.
	Value string `yaml:"value,omitempty"`

	// Tolerance widens Value equality to |got-want| <= Tolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Error is the expected numeric.ErrorCode.
	Error string `yaml:"error,omitempty"`
}

// Assertion checks the finished trace.
type Assertion struct {
	// Type is trace_contains, trace_order or trace_count.
	Type string `yaml:"type"`

	// Op is the operation (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Args are the exact call arguments (trace_contains, optional).
	Args []string `yaml:"args,omitempty"`

	// Ops is the expected order (trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Count is the expected number of calls (trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion types.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// Arity returns the operand count of op and whether op is supported.
// classify is harness-only; every other op is dispatched by the calculator.
func Arity(op string) (int, bool) {
	if op == "classify" {
		return 2, true
	}
	return calc.Arity(op)
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario. Unknown fields are
// rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// EngineKind resolves the scenario's engine selector.
func (s *Scenario) EngineKind() (config.EngineKind, error) {
	if s.Engine == "" {
		return config.EngineNative, nil
	}
	return config.ParseEngineKind(s.Engine)
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := s.EngineKind(); err != nil {
		return err
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		n, ok := Arity(step.Op)
		if !ok {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if len(step.Args) != n {
			return fmt.Errorf("steps[%d]: %s takes %d args, got %d", i, step.Op, n, len(step.Args))
		}
		if err := validateExpect(i, step.Expect); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateExpect(index int, e *Expect) error {
	if e == nil {
		return nil
	}
	if e.Error != "" && (e.Kind != "" || e.Value != "") {
		return fmt.Errorf("steps[%d].expect: error excludes kind and value", index)
	}
	if e.Tolerance < 0 {
		return fmt.Errorf("steps[%d].expect: tolerance must be non-negative", index)
	}
	if e.Tolerance > 0 && e.Value == "" {
		return fmt.Errorf("steps[%d].expect: tolerance requires value", index)
	}
	if e.Error != "" && !knownCode(e.Error) {
		return fmt.Errorf("steps[%d].expect: unknown error code %q", index, e.Error)
	}
	return nil
}

func knownCode(code string) bool {
	switch numeric.ErrorCode(code) {
	case numeric.CodeDivisionByZero, numeric.CodeComplexZeroDivision,
		numeric.CodeUnknownOperandType, numeric.CodeUnsupportedEngine,
		numeric.CodeNonConvergence, numeric.CodeIntegerOverflow,
		numeric.CodeOutOfRange, numeric.CodeDomain, numeric.CodeParse,
		numeric.CodeUnknownOperation:
		return true
	}
	return false
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
