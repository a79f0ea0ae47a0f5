package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/numeric"
)

// EvalResult is the JSON payload of eval and ln.
type EvalResult struct {
	Op    string          `json:"op"`
	Args  []string        `json:"args"`
	Kind  string          `json:"kind"`
	Value string          `json:"value"`
	Canon json.RawMessage `json:"canonical"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <op> <a> [b]",
		Short: "Apply one operation",
		Long: fmt.Sprintf(`Apply one operation to one or two operands and print the result.

Operations: %s

Operands use the numeric text syntax: 12, whole:4, natural:3, 0.5,
3/4 (kept unreduced) and 1+2i. Flags go before the operation; operands
may be negative.

Exit codes:
  0 - Success
  1 - Arithmetic error (division by zero, overflow, ...)
  2 - Command error (unknown op, unparseable operand, bad config)

Examples:
  numtower eval add 1/2 1/3
  numtower eval sqrt -4
  numtower eval --engine precision mul 9223372036854775807 2`, strings.Join(calc.OpNames(), ", ")),
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: rootOpts.operandRunE(cobra.RangeArgs(2, 3), func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, args[0], args[1:])
		}),
	}
	return cmd
}

func runEval(opts *RootOptions, cmd *cobra.Command, op string, operands []string) error {
	f := opts.formatter(cmd)

	n, ok := calc.Arity(op)
	if !ok {
		msg := fmt.Sprintf("unknown operation %q", op)
		_ = f.Error(ErrCodeUsage, msg, map[string]any{"ops": calc.OpNames()})
		return NewExitError(ExitCommandError, msg)
	}
	if len(operands) != n {
		msg := fmt.Sprintf("%s takes %d operand(s), got %d", op, n, len(operands))
		_ = f.Error(ErrCodeUsage, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	c, err := opts.calculator(cmd)
	if err != nil {
		_ = f.Error(ErrCodeBuildFailed, err.Error(), nil)
		return err
	}
	f.VerboseLog("Engine: %s", c.Engine().Kind())

	args := make([]any, len(operands))
	for i, o := range operands {
		args[i] = o
	}
	v, err := c.Apply(op, args...)
	if err != nil {
		return numericFailure(f, op, err)
	}
	return outputValue(f, op, operands, v)
}

func outputValue(f *OutputFormatter, op string, operands []string, v numeric.Value) error {
	if f.Format != "json" {
		return f.Success(v.String())
	}
	canon, err := numeric.MarshalCanonical(v)
	if err != nil {
		return WrapExitError(ExitFailure, "encoding result", err)
	}
	return f.Success(EvalResult{
		Op:    op,
		Args:  operands,
		Kind:  v.Kind().String(),
		Value: v.String(),
		Canon: canon,
	})
}

// NewLnCommand creates the ln command.
func NewLnCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ln <a>",
		Short: "Natural logarithm",
		Long: `Print the natural logarithm of a positive operand as a rational.

Complex operands use the real part when the imaginary part is zero and
the modulus otherwise. The method (taylor or agm) and its precision come
from --config. Flags go before the operand.

Examples:
  numtower ln 2
  numtower ln --engine precision 2
  numtower ln --format json 3+4i`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: rootOpts.operandRunE(cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, "ln", args)
		}),
	}
}
