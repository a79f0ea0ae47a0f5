package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/engine"
	"github.com/roach88/numtower/internal/harness"
	"github.com/roach88/numtower/internal/numeric"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Engine     string // overrides the config file when set
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the numtower CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "numtower",
		Short: "numtower - numeric tower calculator",
		Long: `Arithmetic over the numeric tower: integers and their refinements,
floats, unreduced rationals and complex numbers, on either the native
(int64/float64) or the precision (arbitrary size) engine.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Engine, "engine", "", "engine (native|precision), overrides --config")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML engine configuration file")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewClassifyCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewLnCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// validate checks the global flag values.
func (o *RootOptions) validate() error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	if o.Engine != "" {
		if _, err := config.ParseEngineKind(o.Engine); err != nil {
			return WrapExitError(ExitCommandError, "invalid --engine", err)
		}
	}
	return nil
}

// operandRunE builds the RunE of a command whose positional arguments are
// numeric operands. Such commands set DisableFlagParsing and parse their
// flags here, so an operand may start with a minus sign: flags come first,
// and the first negative number or "--" ends them.
func (o *RootOptions) operandRunE(args cobra.PositionalArgs, run func(cmd *cobra.Command, operands []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, raw []string) error {
		cmd.InheritedFlags() // merges the root's persistent flags into cmd.Flags()
		fs := cmd.Flags()
		flagArgs, operands := splitOperands(fs, raw)
		if err := fs.Parse(flagArgs); err != nil {
			return WrapExitError(ExitCommandError, "invalid flags", err)
		}
		if help, _ := fs.GetBool("help"); help {
			return cmd.Help()
		}
		if err := o.validate(); err != nil {
			return err
		}
		if err := args(cmd, operands); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return run(cmd, operands)
	}
}

// splitOperands separates leading flags from operands.
func splitOperands(fs *pflag.FlagSet, args []string) (flags, operands []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return args[:i], args[i+1:]
		case len(a) < 2 || a[0] != '-' || isNegativeNumber(a):
			return args[:i], args[i:]
		case strings.Contains(a, "="):
			continue
		}

		var f *pflag.Flag
		if strings.HasPrefix(a, "--") {
			f = fs.Lookup(a[2:])
		} else if len(a) == 2 {
			f = fs.ShorthandLookup(a[1:])
		}
		if f != nil && f.NoOptDefVal == "" {
			i++ // value
		}
	}
	return args, nil
}

// isNegativeNumber reports whether a dash-led token is an operand, such as
// -4, -.5, -i or -inf.
func isNegativeNumber(s string) bool {
	_, err := numeric.Parse(s)
	return err == nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// logger writes to stderr: warnings by default, everything with --verbose.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// formatter builds the output formatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		RunIDs:    harness.UUIDv7Generator{},
	}
}

// loadConfig resolves the effective configuration: the --config file if
// given, else the engine defaults, with --engine taking precedence.
func (o *RootOptions) loadConfig() (config.Config, error) {
	kind := config.EngineNative
	if o.Engine != "" {
		k, err := config.ParseEngineKind(o.Engine)
		if err != nil {
			return config.Config{}, err
		}
		kind = k
	}
	if o.ConfigPath == "" {
		return config.Default(kind), nil
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.Engine != "" {
		cfg = cfg.WithEngine(kind)
	}
	return cfg, nil
}

// calculator builds a calculator from the effective configuration.
// Failures are command errors.
func (o *RootOptions) calculator(cmd *cobra.Command) (*calc.Calculator, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "building engine", err)
	}
	log := o.logger(cmd)
	log.Debug("engine ready", "engine", eng.Kind(), "precision", cfg.Precision)
	return calc.New(eng, calc.WithLogger(log)), nil
}
