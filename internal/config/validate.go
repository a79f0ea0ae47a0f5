package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource []byte

// ValidationError is a configuration value rejected by the schema.
type ValidationError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every schema violation of one Config.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// schema is compiled once; cue values are safe for concurrent reads.
var schema = sync.OnceValues(func() (cue.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compiling config schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return cue.Value{}, fmt.Errorf("config schema has no #Config")
	}
	return def, nil
})

// Validate checks cfg against the embedded CUE schema. An unknown engine
// fails with UNSUPPORTED_ENGINE before the schema is consulted.
func Validate(cfg Config) error {
	if _, err := ParseEngineKind(string(cfg.Engine)); err != nil {
		return err
	}
	def, err := schema()
	if err != nil {
		return err
	}
	v := def.Context().Encode(cfg)
	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return convertCUEError(err)
	}
	return nil
}

// convertCUEError flattens CUE errors into ValidationErrors keyed by field.
func convertCUEError(err error) error {
	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return &ValidationError{Field: "config", Message: err.Error()}
	}
	out := make(ValidationErrors, 0, len(cueErrs))
	for _, e := range cueErrs {
		field := "config"
		if path := e.Path(); len(path) > 0 {
			field = path[len(path)-1]
		}
		ve := &ValidationError{Field: field, Message: e.Error()}
		if positions := errors.Positions(e); len(positions) > 0 {
			ve.Pos = positions[0]
		}
		out = append(out, ve)
	}
	return out
}
