// Package harness runs arithmetic conformance scenarios against an engine.
//
// A scenario is a YAML file listing operations with raw operands and the
// expected outcome of each. The harness runs every step through a
// calc.Calculator, numbers the resulting trace with a deterministic clock
// and evaluates assertions over the trace. Traces are serialized with
// numeric.MarshalCanonical so they can be compared byte for byte against
// golden files.
//
// # Scenario Format
//
//	name: rational_basics
//	description: "Fractions stay unreduced"
//	engine: precision        # native (default) or precision
//	precision: 60            # optional, digits for the precision engine
//	run_id: run-rational-001 # optional, fixed run identifier
//	steps:
//	  - op: add
//	    args: ["1/2", "1/3"]
//	    expect:
//	      kind: rational
//	      value: "5/6"
//	  - op: sqrt
//	    args: ["2"]
//	    expect:
//	      value: "1.41421356237"
//	      tolerance: 1e-9
//	  - op: div
//	    args: ["1", "0"]
//	    expect:
//	      error: DIVISION_BY_ZERO
//	assertions:
//	  - type: trace_count
//	    op: add
//	    count: 1
//	  - type: trace_order
//	    ops: [add, sqrt, div]
//
// # Operations
//
// Binary: add, sub, mul, div, pow, compare, classify.
// Unary: sqrt, reciprocal, ln, inc, dec.
//
// compare returns -1, 0 or 1 as an Int; classify records the arbiter
// category instead of a value.
//
// # Expectations
//
// Without a tolerance the result's text form must equal value exactly, so
// "6/4" and "3/2" differ. With a tolerance the expected text is converted
// by the engine and compared with the comparator.
//
// # Trace
//
// Each step contributes a call event followed by a return event, each
// stamped from the clock:
//
//	{"args":["1/2","1/3"],"op":"add","seq":1,"type":"call"}
//	{"seq":2,"type":"return","value":{"den":"6","kind":"rational","num":"5"}}
package harness
