package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Run without flags it executes
// the lessons and writes localfile.txt in the working directory.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RunOptions{RootOptions: &RootOptions{}})
}

func newRootCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tips",
		Short: "tips - a short tour of records, helpers and shared handles",
		Long: `Walks through a fixed script: building coordinate records with defaults,
calling grouped helper functions, incrementing a value through an alias,
reading shared handles, and iterating a sequence of shared records.

The sequence is printed to stdout and then written to an output file, one
line per record. If the output file cannot be created the command prints a
single diagnostic line and exits with status 1.

Example:
  tips
  tips --output /tmp/out.txt --sequence records.yaml
  tips --db ./runs.db --format json`,
		// Positional arguments are accepted and ignored.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return reportFailure(newFormatter(cmd, opts.RootOptions), ExitCommandError, ErrCodeFlags, "invalid flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			configureLogging(cmd, opts.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLessons(opts, args, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	addRunFlags(cmd, opts)

	// Inherited by subcommands. Flags parsed before the bad one are set, so
	// "--format json --bogus" still answers with a JSON envelope.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return reportFailure(newFormatter(c, opts.RootOptions), ExitCommandError, ErrCodeFlags, "invalid flags", err)
	})

	cmd.AddCommand(NewHistoryCommand(opts.RootOptions))

	return cmd
}

// configureLogging installs the default slog handler on the command's
// stderr. Only warnings surface unless --verbose is set, which keeps the
// failure path down to its single diagnostic line.
func configureLogging(cmd *cobra.Command, verbose bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
