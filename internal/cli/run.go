package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/tips/internal/emit"
	"github.com/roach88/tips/internal/lessons"
	"github.com/roach88/tips/internal/sequence"
	"github.com/roach88/tips/internal/store"
)

// RunOptions holds the flags of the root command.
type RunOptions struct {
	*RootOptions
	Output   string
	Sequence string
	Database string

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// RunResult is the JSON payload of a successful run.
type RunResult struct {
	Report lessons.Report `json:"report"`
	Output string         `json:"output"`
	RunID  string         `json:"run_id,omitempty"`
	RunSeq int64          `json:"run_seq,omitempty"`
}

func addRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().StringVarP(&opts.Output, "output", "o", emit.DefaultPath, "file the sequence is written to")
	cmd.Flags().StringVar(&opts.Sequence, "sequence", "", "YAML or CUE file with the records to iterate (default: built-in three records)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite ledger")
}

func runLessons(opts *RunOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	if len(args) > 0 {
		slog.Debug("ignoring positional arguments", "args", args)
	}

	records := sequence.Default()
	if opts.Sequence != "" {
		loaded, err := sequence.Load(opts.Sequence)
		if err != nil {
			return reportFailure(formatter, ExitCommandError, loadErrorCode(err), "failed to load sequence", err)
		}
		slog.Debug("sequence loaded", "path", opts.Sequence, "records", len(loaded))
		records = loaded
	}

	script := lessons.NewScript(records)
	defer script.Close()

	report, err := script.Run()
	if err != nil {
		return reportFailure(formatter, ExitFailure, ErrCodeGeneric, "lessons failed", err)
	}

	if opts.Format == "text" {
		if err := script.WriteText(cmd.OutOrStdout(), report); err != nil {
			return WrapExitError(ExitFailure, "failed to write report", err)
		}
	}

	if err := emit.WriteFile(opts.Output, script.Sequence()); err != nil {
		var openErr *emit.OpenError
		if errors.As(err, &openErr) {
			slog.Debug("output file not created", "path", openErr.Path, "error", openErr.Err)
			fmt.Fprintln(cmd.ErrOrStderr(), emit.Diagnostic)
			if opts.Format == "json" {
				_ = formatter.Error(ErrCodeWriteFailed, emit.Diagnostic, map[string]string{"path": openErr.Path})
			}
			return &ExitError{Code: ExitFailure, Message: emit.Diagnostic, Err: err, Reported: true}
		}
		return reportFailure(formatter, ExitFailure, ErrCodeWriteFailed, "failed to write output file", err)
	}
	slog.Debug("output written", "path", opts.Output, "records", len(report.Collection.Lines))

	result := RunResult{Report: report, Output: opts.Output}

	if opts.Database != "" {
		idGen := opts.IDGenerator
		if idGen == nil {
			idGen = store.UUIDv7Generator{}
		}
		run := newLedgerRun(idGen.Generate(), opts.Output, report)

		seq, err := recordRun(cmd.Context(), opts.Database, run)
		if err != nil {
			return reportFailure(formatter, ExitCommandError, ErrCodeLedger, "failed to record run", err)
		}
		formatter.VerboseLog("recorded run %s (seq %d) in %s", run.ID, seq, opts.Database)
		result.RunID = run.ID
		result.RunSeq = seq
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return nil
}

// newLedgerRun converts a report into the ledger's row shape.
func newLedgerRun(id, output string, report lessons.Report) store.Run {
	run := store.Run{
		ID:         id,
		OutputPath: output,
		Digest:     report.Collection.Digest,
	}
	for i, rec := range report.Collection.Records {
		run.Records = append(run.Records, store.Record{
			Index: i,
			X:     rec.X,
			Y:     rec.Y,
			Z:     rec.Z,
			Line:  report.Collection.Lines[i],
		})
	}
	run.RecordCount = len(run.Records)
	return run
}

func recordRun(ctx context.Context, dbPath string, run store.Run) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	seq, inserted, err := st.WriteRun(ctx, run)
	if err != nil {
		return 0, err
	}
	if !inserted {
		slog.Warn("run already recorded", "id", run.ID, "seq", seq)
	}
	return seq, nil
}

// reportFailure emits a JSON error response when --format json is set and
// returns the matching ExitError. In text mode main prints the error.
func reportFailure(f *OutputFormatter, exitCode int, errCode, message string, err error) error {
	exitErr := WrapExitError(exitCode, message, err)
	if f.Format == "json" {
		_ = f.Error(errCode, message, err.Error())
		exitErr.Reported = true
	}
	return exitErr
}

// loadErrorCode picks the sequence loader's code when there is one.
func loadErrorCode(err error) string {
	var loadErr *sequence.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}
