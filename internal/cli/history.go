package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tips/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Run      string
	Digest   string
}

// RunDetail is the JSON payload of history --run.
type RunDetail struct {
	Run     store.Run      `json:"run"`
	Records []store.Record `json:"records"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in a ledger",
		Long: `List the runs recorded with --db, oldest first.

With --run, print the lines that run emitted, in order. With --digest,
list only the runs whose emitted text has that digest.

Example:
  tips history --db ./runs.db
  tips history --db ./runs.db --run 0190a5f2-...
  tips history --db ./runs.db --digest 3f9a...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite ledger (required)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show the records of one run")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "list runs that emitted text with this digest")
	_ = cmd.MarkFlagRequired("db")
	cmd.MarkFlagsMutuallyExclusive("run", "digest")

	return cmd
}

func showHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	// store.Open would create a missing database; history only reads.
	if _, err := os.Stat(opts.Database); err != nil {
		return reportFailure(formatter, ExitCommandError, ErrCodeNotFound, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return reportFailure(formatter, ExitCommandError, ErrCodeLedger, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Run != "" {
		return showRun(ctx, st, opts.Run, formatter)
	}

	var runs []store.Run
	if opts.Digest != "" {
		runs, err = st.FindByDigest(ctx, opts.Digest)
	} else {
		runs, err = st.ListRuns(ctx)
	}
	if err != nil {
		return reportFailure(formatter, ExitCommandError, ErrCodeLedger, "failed to list runs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}
	writeRunTable(formatter.Writer, runs)
	return nil
}

func showRun(ctx context.Context, st *store.Store, id string, formatter *OutputFormatter) error {
	run, err := st.GetRun(ctx, id)
	if errors.Is(err, store.ErrRunNotFound) {
		return reportFailure(formatter, ExitCommandError, ErrCodeNotFound, "unknown run", err)
	}
	if err != nil {
		return reportFailure(formatter, ExitCommandError, ErrCodeLedger, "failed to read run", err)
	}

	records, err := st.ReadRecords(ctx, id)
	if err != nil {
		return reportFailure(formatter, ExitCommandError, ErrCodeLedger, "failed to read records", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(RunDetail{Run: run, Records: records})
	}
	for _, rec := range records {
		fmt.Fprintln(formatter.Writer, rec.Line)
	}
	return nil
}

func writeRunTable(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		digest := r.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Fprintf(w, "%4d  %s  %d records  %s  %s\n", r.Seq, r.ID, r.RecordCount, digest, r.OutputPath)
	}
}
