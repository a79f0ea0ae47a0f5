package cli

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/numeric"
)

func decode(t *testing.T, out string) (CLIResponse, map[string]any) {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	data, _ := resp.Data.(map[string]any)
	return resp, data
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"rational add", []string{"eval", "add", "1/2", "1/3"}, "5/6"},
		{"unreduced div", []string{"eval", "div", "6", "4"}, "6/4"},
		{"complex mul", []string{"eval", "mul", "1+2i", "3+4i"}, "-5/1+10/1i"},
		{"negative sqrt", []string{"eval", "sqrt", "-4"}, "0/1+2/1i"},
		{"natural inc", []string{"eval", "inc", "natural:4"}, "5"},
		{"compare op", []string{"eval", "compare", "3", "2"}, "1"},
		{"precision overflow", []string{"eval", "--engine", "precision", "mul", "9223372036854775807", "2"}, "18446744073709551614"},
		{"negative operands", []string{"eval", "add", "-1/2", "-1"}, "-3/2"},
		{"flag before negative operand", []string{"eval", "-v", "sqrt", "-9"}, "0/1+3/1i"},
		{"flag terminator", []string{"eval", "--", "dec", "-1"}, "-2"},
		{"negative imaginary unit", []string{"eval", "mul", "-i", "-i"}, "-1/1+0/1i"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestEvalCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
		wantExit int
	}{
		{"division by zero", []string{"eval", "div", "1", "0"}, "DIVISION_BY_ZERO", ExitFailure},
		{"native overflow", []string{"eval", "mul", "9223372036854775807", "2"}, "INTEGER_OVERFLOW", ExitFailure},
		{"bad operand", []string{"eval", "add", "abc", "1"}, "PARSE", ExitCommandError},
		{"unknown op", []string{"eval", "mod", "1", "2"}, ErrCodeUsage, ExitCommandError},
		{"wrong arity", []string{"eval", "sqrt", "1", "2"}, ErrCodeUsage, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{tt.args[0], "--format", "json"}, tt.args[1:]...)
			out, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))

			resp, _ := decode(t, out)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.TraceID)
		})
	}
}

func TestEvalCommandText_Error(t *testing.T) {
	out, err := execute(t, "eval", "div", "1", "0")
	require.Error(t, err)
	assert.Contains(t, out, "Error [DIVISION_BY_ZERO]")
}

func TestEvalCommandJSON(t *testing.T) {
	out, err := execute(t, "eval", "--format", "json", "mul", "1+2i", "3+4i")
	require.NoError(t, err)

	resp, data := decode(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.TraceID, 36)
	assert.Equal(t, "mul", data["op"])
	assert.Equal(t, "complex", data["kind"])
	assert.Equal(t, "-5/1+10/1i", data["value"])

	canon, ok := data["canonical"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "complex", canon["kind"])
	assert.Contains(t, canon, "real")
	assert.Contains(t, canon, "imag")
}

func TestLnCommand(t *testing.T) {
	for _, engine := range []string{"native", "precision"} {
		t.Run(engine, func(t *testing.T) {
			out, err := execute(t, "ln", "--engine", engine, "--format", "json", "2")
			require.NoError(t, err)

			_, data := decode(t, out)
			assert.Equal(t, "ln", data["op"])
			assert.Equal(t, "rational", data["kind"])

			v, err := numeric.Parse(data["value"].(string))
			require.NoError(t, err)
			f, err := numeric.ToFloat(v)
			require.NoError(t, err)
			assert.InDelta(t, math.Ln2, f.Float64(), 1e-9)
		})
	}
}

func TestLnCommand_Domain(t *testing.T) {
	_, err := execute(t, "ln", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "2", "1+2i")
	require.NoError(t, err)
	assert.Equal(t, "mixed (promote first)", strings.TrimSpace(out))

	out, err = execute(t, "classify", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "int", strings.TrimSpace(out))

	out, err = execute(t, "classify", "--format", "json", "1+2i", "3")
	require.NoError(t, err)
	_, data := decode(t, out)
	assert.Equal(t, "mixed", data["category"])
	assert.Equal(t, "second", data["promote"])
}

func TestCompareCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"equal across kinds", []string{"compare", "1/2", "0.5"}, "0"},
		{"less", []string{"compare", "1", "1.0001"}, "-1"},
		{"within tolerance", []string{"compare", "--tolerance", "0.001", "1", "1.0001"}, "0"},
		{"outside tolerance", []string{"compare", "--tolerance=0.001", "1.1", "1"}, "1"},
		{"negative first operand", []string{"compare", "-1", "2"}, "-1"},
		{"negative imaginary first", []string{"compare", "-i", "1"}, "0"},
		{"negative operands", []string{"compare", "-1/2", "-0.75"}, "1"},
		{"negative after flag", []string{"compare", "--tolerance", "0.5", "-1", "-1.25"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestCompareCommand_NegativeTolerance(t *testing.T) {
	out, err := execute(t, "compare", "--tolerance", "-1", "--format", "json", "1", "2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp, _ := decode(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DOMAIN", resp.Error.Code)
}

func TestOperandCommands_FlagsAfterOperands(t *testing.T) {
	_, err := execute(t, "eval", "add", "1", "2", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, "compare", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSplitOperands(t *testing.T) {
	cmd := NewRootCommand()
	compareCmd, _, err := cmd.Find([]string{"compare"})
	require.NoError(t, err)
	compareCmd.InheritedFlags()
	fs := compareCmd.Flags()

	flags, operands := splitOperands(fs, []string{"-v", "--tolerance", "-1", "--format=json", "-2", "3"})
	assert.Equal(t, []string{"-v", "--tolerance", "-1", "--format=json"}, flags)
	assert.Equal(t, []string{"-2", "3"}, operands)

	flags, operands = splitOperands(fs, []string{"--", "-x", "1"})
	assert.Empty(t, flags)
	assert.Equal(t, []string{"-x", "1"}, operands)

	flags, operands = splitOperands(fs, []string{"-.5", "1"})
	assert.Empty(t, flags)
	assert.Equal(t, []string{"-.5", "1"}, operands)

	flags, operands = splitOperands(fs, []string{"--format", "json", "-inf", "-i"})
	assert.Equal(t, []string{"--format", "json"}, flags)
	assert.Equal(t, []string{"-inf", "-i"}, operands)
}
