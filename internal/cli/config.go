package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/numeric"
)

// ConfigIssue is one schema violation in JSON output.
type ConfigIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	// Rule is the schema position of the violated constraint.
	Rule string `json:"rule,omitempty"`
}

// ConfigValidationResult holds config validate results.
type ConfigValidationResult struct {
	Valid  bool          `json:"valid"`
	Config any           `json:"config,omitempty"`
	Errors []ConfigIssue `json:"errors,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect engine configuration",
	}
	cmd.AddCommand(newConfigValidateCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	return cmd
}

func newConfigValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a YAML engine configuration",
		Long: `Check a YAML configuration file against the configuration schema.

Exit codes:
  0 - Valid
  1 - Schema violations or unknown engine
  2 - File missing or not YAML`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(rootOpts.formatter(cmd), args[0])
		},
	}
}

func runConfigValidate(f *OutputFormatter, path string) error {
	if _, err := os.Stat(path); err != nil {
		msg := fmt.Sprintf("config file not found: %s", path)
		_ = f.Error(ErrCodeNotFound, msg, nil)
		return WrapExitError(ExitCommandError, msg, err)
	}

	cfg, err := config.Load(path)
	if err == nil {
		f.VerboseLog("Validated %s", path)
		if f.Format == "json" {
			return f.Success(ConfigValidationResult{Valid: true, Config: cfg})
		}
		return f.Success("✓ Config valid")
	}

	var issues []ConfigIssue
	var verrs config.ValidationErrors
	var verr *config.ValidationError
	switch {
	case errors.As(err, &verrs):
		for _, ve := range verrs {
			issues = append(issues, issueOf(ve))
		}
	case errors.As(err, &verr):
		issues = append(issues, issueOf(verr))
	case numeric.CodeOf(err) == numeric.CodeUnsupportedEngine:
		issues = append(issues, ConfigIssue{Field: "engine", Message: err.Error()})
	default:
		_ = f.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading config", err)
	}

	if f.Format == "json" {
		_ = f.Error(ErrCodeInvalid, fmt.Sprintf("config invalid with %d error(s)", len(issues)),
			ConfigValidationResult{Valid: false, Errors: issues})
	} else {
		fmt.Fprintln(f.Writer, "✗ Config invalid")
		for _, is := range issues {
			if is.Rule != "" {
				fmt.Fprintf(f.Writer, "  %s: %s (%s)\n", is.Field, is.Message, is.Rule)
				continue
			}
			fmt.Fprintf(f.Writer, "  %s: %s\n", is.Field, is.Message)
		}
	}
	return WrapExitError(ExitFailure, fmt.Sprintf("config invalid with %d error(s)", len(issues)), err)
}

func issueOf(ve *config.ValidationError) ConfigIssue {
	is := ConfigIssue{Field: ve.Field, Message: ve.Message}
	if ve.Pos.IsValid() {
		is.Rule = fmt.Sprintf("%s:%d:%d", ve.Pos.Filename(), ve.Pos.Line(), ve.Pos.Column())
	}
	return is
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration commands run with, after applying --config and
--engine to the engine defaults.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				_ = f.Error(ErrCodeLoadFailed, err.Error(), nil)
				return WrapExitError(ExitCommandError, "loading config", err)
			}
			if f.Format == "json" {
				return f.Success(cfg)
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return WrapExitError(ExitFailure, "encoding config", err)
			}
			_, err = f.Writer.Write(out)
			return err
		},
	}
}
