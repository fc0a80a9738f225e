package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tips/internal/store"
)

// recordRuns executes the root command once per id against the same ledger.
func recordRuns(t *testing.T, dbPath string, ids ...string) {
	t.Helper()
	opts := &RunOptions{
		RootOptions: &RootOptions{},
		IDGenerator: store.NewFixedGenerator(ids...),
	}
	for range ids {
		out := filepath.Join(t.TempDir(), "out.txt")
		_, _, err := execute(t, opts, "--db", dbPath, "--output", out)
		require.NoError(t, err)
	}
}

func TestRun_RecordsInLedger(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	out := filepath.Join(t.TempDir(), "out.txt")
	opts := &RunOptions{
		RootOptions: &RootOptions{},
		IDGenerator: store.NewFixedGenerator("run-a"),
	}

	stdout, _, err := execute(t, opts, "--format", "json", "--db", dbPath, "--output", out)
	require.NoError(t, err)

	var resp struct {
		Data RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "run-a", resp.Data.RunID)
	assert.Equal(t, int64(1), resp.Data.RunSeq)
}

func TestRun_LedgerNotTouchedOnOpenFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	out := filepath.Join(t.TempDir(), "missing", "out.txt")

	_, _, err := execute(t, nil, "--db", dbPath, "--output", out)
	require.Error(t, err)

	_, _, err = execute(t, nil, "history", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err), "database was never created")
}

func TestHistory_ListsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	recordRuns(t, dbPath, "run-a", "run-b")

	stdout, _, err := execute(t, nil, "history", "--db", dbPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run-a")
	assert.Contains(t, lines[0], "3 records")
	assert.Contains(t, lines[1], "run-b")
}

func TestHistory_Empty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := execute(t, nil, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", stdout)
}

func TestHistory_JSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	recordRuns(t, dbPath, "run-a", "run-b")

	stdout, _, err := execute(t, nil, "--format", "json", "history", "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, resp.Data[0].Digest, resp.Data[1].Digest, "identical output shares a digest")
}

func TestHistory_Run(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	recordRuns(t, dbPath, "run-a")

	stdout, _, err := execute(t, nil, "history", "--db", dbPath, "--run", "run-a")
	require.NoError(t, err)
	assert.Equal(t, defaultFileText, stdout)
}

func TestHistory_RunJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	recordRuns(t, dbPath, "run-a")

	stdout, _, err := execute(t, nil, "--format", "json", "history", "--db", dbPath, "--run", "run-a")
	require.NoError(t, err)

	var resp struct {
		Data RunDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "run-a", resp.Data.Run.ID)
	require.Len(t, resp.Data.Records, 3)
	assert.Equal(t, 7.0, resp.Data.Records[2].X)
}

func TestHistory_Digest(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	recordRuns(t, dbPath, "run-a", "run-b")

	seqPath := filepath.Join(dir, "seq.yaml")
	require.NoError(t, os.WriteFile(seqPath, []byte("records:\n  - [10, 20, 30]\n"), 0644))
	opts := &RunOptions{
		RootOptions: &RootOptions{},
		IDGenerator: store.NewFixedGenerator("run-c"),
	}
	_, _, err := execute(t, opts, "--db", dbPath, "--sequence", seqPath, "--output", filepath.Join(dir, "c.txt"))
	require.NoError(t, err)

	stdout, _, err := execute(t, nil, "--format", "json", "history", "--db", dbPath, "--run", "run-a")
	require.NoError(t, err)
	var detail struct {
		Data RunDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &detail))
	digest := detail.Data.Run.Digest
	require.Len(t, digest, 64)

	stdout, _, err = execute(t, nil, "history", "--db", dbPath, "--digest", digest)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2, "only the runs with identical output")
	assert.Contains(t, lines[0], "run-a")
	assert.Contains(t, lines[1], "run-b")

	stdout, _, err = execute(t, nil, "--format", "json", "history", "--db", dbPath, "--digest", digest)
	require.NoError(t, err)
	var resp struct {
		Data []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 2)
	for _, r := range resp.Data {
		assert.Equal(t, digest, r.Digest)
	}
}

func TestHistory_DigestNoMatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	recordRuns(t, dbPath, "run-a")

	stdout, _, err := execute(t, nil, "history", "--db", dbPath, "--digest", "0000")
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", stdout)
}

func TestHistory_RunAndDigestExclusive(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	recordRuns(t, dbPath, "run-a")

	_, _, err := execute(t, nil, "history", "--db", dbPath, "--run", "run-a", "--digest", "0000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestHistory_UnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	recordRuns(t, dbPath, "run-a")

	_, _, err := execute(t, nil, "history", "--db", dbPath, "--run", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestHistory_MissingDatabase(t *testing.T) {
	_, _, err := execute(t, nil, "history", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "database not found")
}

func TestHistory_RequiresDB(t *testing.T) {
	_, _, err := execute(t, nil, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
