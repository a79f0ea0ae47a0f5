package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/numtower/internal/numeric"
)

// TraceSnapshot is the serialized form of a run compared against golden
// files.
type TraceSnapshot struct {
	ScenarioName string
	Engine       string
	RunID        string
	Trace        []TraceEvent
}

// Snapshot builds the snapshot of a finished run.
func Snapshot(scenarioName string, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: scenarioName,
		Engine:       result.Engine,
		RunID:        result.RunID,
		Trace:        result.Trace,
	}
}

// MarshalCanonical serializes the snapshot with numeric.MarshalCanonical.
func (s TraceSnapshot) MarshalCanonical() ([]byte, error) {
	trace := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		trace[i] = event.canonical()
	}
	m := map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         trace,
	}
	if s.Engine != "" {
		m["engine"] = s.Engine
	}
	if s.RunID != "" {
		m["run_id"] = s.RunID
	}
	return numeric.MarshalCanonical(m)
}

// RunWithGolden runs a scenario and compares its trace with
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result with its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(name, result).MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
