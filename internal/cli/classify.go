package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ClassifyResult is the JSON payload of classify.
type ClassifyResult struct {
	Category string `json:"category"`
	Promote  string `json:"promote"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <a> <b>",
		Short: "Show the category a binary operation dispatches to",
		Long: `Classify a pair of operands the way binary operations do.

Prints the category (int, natural, whole, float, rational, complex or
mixed) and, for mixed pairs, which operand is promoted to complex.
Flags go before the operands.

Examples:
  numtower classify 1/2 0.5
  numtower classify 2 1+2i
  numtower classify --format json -3 -1/2`,
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
			res, err := c.Classify(args[0], args[1])
			if err != nil {
				return numericFailure(f, "classify", err)
			}
			out := ClassifyResult{
				Category: res.Category.String(),
				Promote:  res.Promote.String(),
			}
			if f.Format == "json" {
				return f.Success(out)
			}
			if out.Promote == "none" {
				return f.Success(out.Category)
			}
			return f.Success(fmt.Sprintf("%s (promote %s)", out.Category, out.Promote))
		}),
	}
}
