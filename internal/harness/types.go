package harness

import (
	"github.com/roach88/numtower/internal/numeric"
)

// Trace event types.
const (
	EventCall   = "call"
	EventReturn = "return"
)

// TraceEvent is one entry of a scenario trace. A call carries Op and Args;
// a return carries exactly one of Value, Category or Error.
type TraceEvent struct {
	Type     string
	Seq      int64
	Op       string
	Args     []string
	Value    numeric.Value
	Category string
	Error    numeric.ErrorCode
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool

	// RunID identifies the run; fixed for golden comparison.
	RunID string

	// Engine names the engine the scenario ran on.
	Engine string

	Trace  []TraceEvent
	Errors []string
}

// NewResult returns a passing, empty result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// AddCall appends a call event.
func (r *Result) AddCall(op string, args []string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type: EventCall,
		Op:   op,
		Args: args,
		Seq:  seq,
	})
}

// AddReturn appends a return event.
func (r *Result) AddReturn(ev TraceEvent) {
	ev.Type = EventReturn
	r.Trace = append(r.Trace, ev)
}

// canonical maps the event to the form accepted by numeric.MarshalCanonical.
func (e TraceEvent) canonical() map[string]any {
	m := map[string]any{
		"type": e.Type,
		"seq":  e.Seq,
	}
	if e.Op != "" {
		m["op"] = e.Op
	}
	if e.Args != nil {
		m["args"] = e.Args
	}
	if e.Value != nil {
		m["value"] = e.Value
	}
	if e.Category != "" {
		m["category"] = e.Category
	}
	if e.Error != "" {
		m["error"] = string(e.Error)
	}
	return m
}
