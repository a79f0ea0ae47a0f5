package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// CompareResult is the JSON payload of compare.
type CompareResult struct {
	Result    int      `json:"result"`
	Tolerance *float64 `json:"tolerance,omitempty"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Three-way comparison",
		Long: `Compare two operands and print -1, 0 or 1.

Complex operands with a nonzero imaginary part compare by modulus. With
--tolerance, operands closer than the tolerance compare equal. Flags go
before the operands.

Examples:
  numtower compare 1/2 0.5
  numtower compare -1 2
  numtower compare --tolerance 0.001 1 1.0001`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: rootOpts.operandRunE(cobra.ExactArgs(2), func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			c, err := rootOpts.calculator(cmd)
			if err != nil {
				_ = f.Error(ErrCodeBuildFailed, err.Error(), nil)
				return err
			}

			var (
				r   int
				out CompareResult
			)
			if cmd.Flags().Changed("tolerance") {
				r, err = c.CompareWithin(args[0], args[1], tolerance)
				out.Tolerance = &tolerance
			} else {
				r, err = c.Compare(args[0], args[1])
			}
			if err != nil {
				return numericFailure(f, "compare", err)
			}

			out.Result = r
			if f.Format == "json" {
				return f.Success(out)
			}
			return f.Success(strconv.Itoa(r))
		}),
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "treat operands within this distance as equal")
	return cmd
}
