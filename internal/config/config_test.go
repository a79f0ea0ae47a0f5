package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/numeric"
)

func TestDefault(t *testing.T) {
	n := Default(EngineNative)
	assert.Equal(t, EngineNative, n.Engine)
	assert.Equal(t, LogTaylor, n.LogMethod)
	assert.Equal(t, 10000, n.MaxIterations)
	assert.InDelta(t, 1e-20, n.LogEpsilon, 0)
	require.NoError(t, Validate(n))

	p := Default(EnginePrecision)
	assert.Equal(t, LogAGM, p.LogMethod)
	assert.Equal(t, uint32(50), p.Precision)
	require.NoError(t, Validate(p))
}

func TestWithEngine(t *testing.T) {
	p := Default(EngineNative).WithEngine(EnginePrecision)
	assert.Equal(t, Default(EnginePrecision), p)

	n := Default(EngineNative)
	n.Precision = 80
	n.LogEpsilon = 1e-30
	p = n.WithEngine(EnginePrecision)
	assert.Equal(t, EnginePrecision, p.Engine)
	assert.Equal(t, LogAGM, p.LogMethod)
	assert.Equal(t, uint32(80), p.Precision)
	assert.InDelta(t, 1e-30, p.LogEpsilon, 0)

	agm := Default(EnginePrecision)
	agm.LogMethod = LogTaylor
	assert.Equal(t, LogTaylor, agm.WithEngine(EngineNative).LogMethod)

	assert.Equal(t, n, n.WithEngine(EngineNative))
}

func TestParseEngineKind(t *testing.T) {
	k, err := ParseEngineKind("precision")
	require.NoError(t, err)
	assert.Equal(t, EnginePrecision, k)

	_, err = ParseEngineKind("quantum")
	assert.ErrorIs(t, err, numeric.ErrUnsupportedEngine)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("engine: precision\nprecision: 80\n"))
	require.NoError(t, err)
	assert.Equal(t, EnginePrecision, cfg.Engine)
	assert.Equal(t, uint32(80), cfg.Precision)
	assert.Equal(t, LogAGM, cfg.LogMethod)

	cfg, err = Parse([]byte("log_method: agm\nagm_bits: 256\n"))
	require.NoError(t, err)
	assert.Equal(t, EngineNative, cfg.Engine)
	assert.Equal(t, LogAGM, cfg.LogMethod)
	assert.Equal(t, 256, cfg.AGMBits)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(EngineNative), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("engine: native\nturbo: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turbo")
}

func TestParseRejectsUnknownEngine(t *testing.T) {
	_, err := Parse([]byte("engine: abacus\n"))
	assert.ErrorIs(t, err, numeric.ErrUnsupportedEngine)
}

func TestValidateSchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"zero precision", func(c *Config) { c.Precision = 0 }, "precision"},
		{"unknown log method", func(c *Config) { c.LogMethod = "newton" }, "log_method"},
		{"epsilon out of range", func(c *Config) { c.LogEpsilon = 2 }, "log_epsilon"},
		{"no iterations", func(c *Config) { c.MaxIterations = 0 }, "max_iterations"},
		{"negative agm bits", func(c *Config) { c.AGMBits = -1 }, "agm_bits"},
		{"zero tolerance", func(c *Config) { c.FloatTolerance = 0 }, "float_tolerance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(EngineNative)
			tt.mod(&cfg)
			err := Validate(cfg)
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %T: %v", err, err)
			require.NotEmpty(t, verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "numtower.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: precision\nprecision: 30\nmax_iterations: 500\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(30), cfg.Precision)
	assert.Equal(t, 500, cfg.MaxIterations)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
