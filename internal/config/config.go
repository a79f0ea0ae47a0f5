// Package config holds the engine configuration value.
//
// A Config is a plain value: it is built once (Default, Parse or Load),
// validated, and handed to engine.New. Nothing in the module reads
// configuration from global state.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/numtower/internal/numeric"
)

// EngineKind selects the arithmetic substrate.
type EngineKind string

const (
	// EngineNative uses int64 integers and float64 reals.
	EngineNative EngineKind = "native"
	// EnginePrecision uses math/big integers and apd decimals.
	EnginePrecision EngineKind = "precision"
)

// ParseEngineKind resolves an engine selector. Unknown selectors fail with
// UNSUPPORTED_ENGINE.
func ParseEngineKind(s string) (EngineKind, error) {
	switch EngineKind(s) {
	case EngineNative, EnginePrecision:
		return EngineKind(s), nil
	}
	return "", numeric.NewError(numeric.CodeUnsupportedEngine, "config", "unknown engine %q", s)
}

// Log methods accepted in LogMethod.
const (
	LogTaylor = "taylor"
	LogAGM    = "agm"
)

// Config tunes an engine. Field tags name the YAML keys.
type Config struct {
	Engine EngineKind `yaml:"engine" json:"engine"`
	// Precision is the number of significant decimal digits carried by
	// the Precision reals and by the AGM logarithm.
	Precision uint32 `yaml:"precision" json:"precision"`
	// LogMethod is "taylor" or "agm".
	LogMethod string `yaml:"log_method" json:"log_method"`
	// LogEpsilon stops the Taylor series.
	LogEpsilon float64 `yaml:"log_epsilon" json:"log_epsilon"`
	// MaxIterations bounds the Taylor series.
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
	// AGMBits is the AGM target precision in bits; 0 derives it from
	// Precision.
	AGMBits int `yaml:"agm_bits" json:"agm_bits"`
	// FloatTolerance is the relative error accepted when the Native engine
	// rebuilds a rational from a float64.
	FloatTolerance float64 `yaml:"float_tolerance" json:"float_tolerance"`
}

// Default returns the configuration used when nothing is overridden.
// The Native engine logs with Taylor, the Precision engine with AGM.
func Default(kind EngineKind) Config {
	cfg := Config{
		Engine:         kind,
		Precision:      50,
		LogMethod:      LogTaylor,
		LogEpsilon:     1e-20,
		MaxIterations:  10000,
		FloatTolerance: 1e-15,
	}
	if kind == EnginePrecision {
		cfg.LogMethod = LogAGM
	}
	return cfg
}

// WithEngine returns c moved to another engine. Fields still at the old
// engine's defaults take the new engine's defaults; fields that differ
// from them carry over.
func (c Config) WithEngine(kind EngineKind) Config {
	if kind == c.Engine {
		return c
	}
	from, out := Default(c.Engine), Default(kind)
	if c.Precision != from.Precision {
		out.Precision = c.Precision
	}
	if c.LogMethod != from.LogMethod {
		out.LogMethod = c.LogMethod
	}
	if c.LogEpsilon != from.LogEpsilon {
		out.LogEpsilon = c.LogEpsilon
	}
	if c.MaxIterations != from.MaxIterations {
		out.MaxIterations = c.MaxIterations
	}
	if c.AGMBits != from.AGMBits {
		out.AGMBits = c.AGMBits
	}
	if c.FloatTolerance != from.FloatTolerance {
		out.FloatTolerance = c.FloatTolerance
	}
	return out
}

// fileConfig mirrors Config with optional fields so absent keys keep
// their defaults.
type fileConfig struct {
	Engine         *string  `yaml:"engine"`
	Precision      *uint32  `yaml:"precision"`
	LogMethod      *string  `yaml:"log_method"`
	LogEpsilon     *float64 `yaml:"log_epsilon"`
	MaxIterations  *int     `yaml:"max_iterations"`
	AGMBits        *int     `yaml:"agm_bits"`
	FloatTolerance *float64 `yaml:"float_tolerance"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration. Unknown keys are errors;
// absent keys take the defaults of the selected engine.
func Parse(data []byte) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}

	kind := EngineNative
	if fc.Engine != nil {
		k, err := ParseEngineKind(*fc.Engine)
		if err != nil {
			return Config{}, err
		}
		kind = k
	}

	cfg := Default(kind)
	if fc.Precision != nil {
		cfg.Precision = *fc.Precision
	}
	if fc.LogMethod != nil {
		cfg.LogMethod = *fc.LogMethod
	}
	if fc.LogEpsilon != nil {
		cfg.LogEpsilon = *fc.LogEpsilon
	}
	if fc.MaxIterations != nil {
		cfg.MaxIterations = *fc.MaxIterations
	}
	if fc.AGMBits != nil {
		cfg.AGMBits = *fc.AGMBits
	}
	if fc.FloatTolerance != nil {
		cfg.FloatTolerance = *fc.FloatTolerance
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
