package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/testutil"
)

func rationalBasics() *Scenario {
	return &Scenario{
		Name:        "rational_basics",
		Description: "Fractions stay unreduced",
		Engine:      "precision",
		RunID:       "run-golden-001",
		Steps: []Step{
			{Op: "add", Args: []string{"1/2", "1/3"}, Expect: &Expect{Kind: "rational", Value: "5/6"}},
			{Op: "div", Args: []string{"6", "4"}, Expect: &Expect{Value: "6/4"}},
			{Op: "div", Args: []string{"1", "0"}, Expect: &Expect{Error: "DIVISION_BY_ZERO"}},
			{Op: "classify", Args: []string{"2", "1+2i"}, Expect: &Expect{Value: "mixed"}},
			{Op: "mul", Args: []string{"1+2i", "3+4i"}, Expect: &Expect{Kind: "complex", Value: "-5/1+10/1i"}},
			{Op: "compare", Args: []string{"1/2", "0.5"}, Expect: &Expect{Value: "0"}},
		},
		Assertions: []Assertion{
			{Type: AssertTraceContains, Op: "classify"},
			{Type: AssertTraceCount, Op: "div", Count: 2},
		},
	}
}

func TestRun_Pass(t *testing.T) {
	result, err := Run(rationalBasics())
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "precision", result.Engine)
	assert.Equal(t, "run-golden-001", result.RunID)
	require.Len(t, result.Trace, 12)

	for i, ev := range result.Trace {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
	assert.Equal(t, EventCall, result.Trace[0].Type)
	assert.Equal(t, EventReturn, result.Trace[1].Type)
	assert.Equal(t, "5/6", result.Trace[1].Value.String())
}

func TestRun_Golden(t *testing.T) {
	result, err := RunWithGolden(t, rationalBasics())
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_GoldenFromFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/native_bounds.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, testutil.DefaultRunID, result.RunID)
}

func TestRun_Deterministic(t *testing.T) {
	first, err := Run(rationalBasics())
	require.NoError(t, err)
	second, err := Run(rationalBasics())
	require.NoError(t, err)

	a, err := Snapshot("rational_basics", first).MarshalCanonical()
	require.NoError(t, err)
	b, err := Snapshot("rational_basics", second).MarshalCanonical()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_Tolerance(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/transcendental.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "precision", result.Engine)
}

func TestRun_ExpectationFailures(t *testing.T) {
	scenario := &Scenario{
		Name:        "failures",
		Description: "Every expectation is wrong",
		Steps: []Step{
			{Op: "add", Args: []string{"1", "2"}, Expect: &Expect{Value: "4"}},
			{Op: "add", Args: []string{"1", "2"}, Expect: &Expect{Kind: "float"}},
			{Op: "div", Args: []string{"1", "0"}},
			{Op: "div", Args: []string{"1", "2"}, Expect: &Expect{Error: "DIVISION_BY_ZERO"}},
			{Op: "sqrt", Args: []string{"2"}, Expect: &Expect{Value: "1.5", Tolerance: 1e-6}},
			{Op: "classify", Args: []string{"1", "2"}, Expect: &Expect{Value: "float"}},
		},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Op: "add", Count: 3},
			{Type: AssertTraceOrder, Ops: []string{"div", "add"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 8)
	assert.Contains(t, result.Errors[0], "expected 4, got 3")
	assert.Contains(t, result.Errors[1], "expected kind float, got int")
	assert.Contains(t, result.Errors[2], "unexpected error DIVISION_BY_ZERO")
	assert.Contains(t, result.Errors[3], "expected error DIVISION_BY_ZERO, got 1/2")
}

func TestRun_WithConfig(t *testing.T) {
	scenario := &Scenario{
		Name:        "config",
		Description: "Base configuration selects the engine",
		Steps: []Step{
			{Op: "mul", Args: []string{"9223372036854775807", "2"}, Expect: &Expect{Value: "18446744073709551614"}},
		},
	}

	result, err := Run(scenario, WithConfig(config.Default(config.EnginePrecision)))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "precision", result.Engine)

	result, err = Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, "native", result.Engine)
}

func TestScenarioConfig_EngineDefaults(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/transcendental.yaml")
	require.NoError(t, err)

	base := config.Default(config.EngineNative)
	cfg, err := scenarioConfig(scenario, &base)
	require.NoError(t, err)
	assert.Equal(t, config.EnginePrecision, cfg.Engine)
	assert.Equal(t, config.LogAGM, cfg.LogMethod)
	assert.Equal(t, uint32(40), cfg.Precision)

	base.MaxIterations = 500
	cfg, err = scenarioConfig(scenario, &base)
	require.NoError(t, err)
	assert.Equal(t, config.LogAGM, cfg.LogMethod)
	assert.Equal(t, 500, cfg.MaxIterations)

	cfg, err = scenarioConfig(scenario, nil)
	require.NoError(t, err)
	assert.Equal(t, config.LogAGM, cfg.LogMethod)
}

func TestRun_RunIDs(t *testing.T) {
	scenario := rationalBasics()
	scenario.RunID = ""

	result, err := Run(scenario, WithRunIDs(UUIDv7Generator{}))
	require.NoError(t, err)
	assert.Len(t, result.RunID, 36)

	scenario.RunID = "pinned"
	result, err = Run(scenario, WithRunIDs(UUIDv7Generator{}))
	require.NoError(t, err)
	assert.Equal(t, "pinned", result.RunID)
}
