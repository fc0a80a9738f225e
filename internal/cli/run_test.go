package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tips/internal/emit"
)

const defaultFileText = "looking at values x, y, z with 1 2 3\n" +
	"looking at values x, y, z with 4 5 6\n" +
	"looking at values x, y, z with 7 8 9\n"

func TestRun_DefaultOutputInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	stdout, stderr, err := execute(t, nil)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.True(t, strings.HasSuffix(stdout, defaultFileText), "console ends with the sequence lines")

	data, err := os.ReadFile(filepath.Join(dir, "localfile.txt"))
	require.NoError(t, err)
	assert.Equal(t, defaultFileText, string(data))
}

func TestRun_ConsoleGolden(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := execute(t, nil, "--output", out)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "run_default", []byte(stdout))
}

func TestRun_PositionalArgumentsIgnored(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	_, _, err := execute(t, nil, "--output", out, "ignored", "too")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, defaultFileText, string(data))
}

func TestRun_OpenFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "localfile.txt")

	stdout, stderr, err := execute(t, nil, "--output", out)
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Equal(t, emit.Diagnostic+"\n", stderr, "exactly one diagnostic line")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))

	// The console part of the script ran before the file was attempted.
	assert.Contains(t, stdout, "*** Lesson 1: Classes ***")
}

func TestRun_OpenFailureJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "localfile.txt")

	stdout, stderr, err := execute(t, nil, "--format", "json", "--output", out)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, emit.Diagnostic+"\n", stderr)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeWriteFailed, resp.Error.Code)
}

func TestRun_JSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := execute(t, nil, "--format", "json", "--output", out)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "*** Lesson", "text report is not printed in JSON mode")

	var resp struct {
		Status string    `json:"status"`
		Data   RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, out, resp.Data.Output)
	assert.Equal(t, 130.0, resp.Data.Report.Classes.Computed)
	assert.Equal(t, int64(1235), resp.Data.Report.Pointers.NumAfter)
	assert.Len(t, resp.Data.Report.Collection.Lines, 3)
	assert.Len(t, resp.Data.Report.Collection.Digest, 64)
	assert.Empty(t, resp.Data.RunID)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, defaultFileText, string(data))
}

func TestRun_YAMLSequence(t *testing.T) {
	dir := t.TempDir()
	seqPath := filepath.Join(dir, "seq.yaml")
	require.NoError(t, os.WriteFile(seqPath, []byte("records:\n  - [10, 20, 30]\n  - {x: 0.5}\n"), 0644))
	out := filepath.Join(dir, "out.txt")

	stdout, _, err := execute(t, nil, "--sequence", seqPath, "--output", out)
	require.NoError(t, err)

	want := "looking at values x, y, z with 10 20 30\n" +
		"looking at values x, y, z with 0.5 0 1\n"
	assert.True(t, strings.HasSuffix(stdout, want))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestRun_CUESequence(t *testing.T) {
	dir := t.TempDir()
	seqPath := filepath.Join(dir, "seq.cue")
	require.NoError(t, os.WriteFile(seqPath, []byte("records: [{x: 2, y: 3}]\n"), 0644))
	out := filepath.Join(dir, "out.txt")

	_, _, err := execute(t, nil, "--sequence", seqPath, "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "looking at values x, y, z with 2 3 1\n", string(data))
}

func TestRun_BadSequence(t *testing.T) {
	dir := t.TempDir()
	seqPath := filepath.Join(dir, "seq.yaml")
	require.NoError(t, os.WriteFile(seqPath, []byte("records:\n  - [1, 2, 3, 4]\n"), 0644))
	out := filepath.Join(dir, "out.txt")

	stdout, _, err := execute(t, nil, "--sequence", seqPath, "--output", out)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.False(t, IsReported(err))
	assert.Contains(t, err.Error(), "failed to load sequence")
	assert.Empty(t, stdout)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "nothing is written for a rejected sequence")
}

func TestRun_BadSequenceJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := execute(t, nil, "--format", "json", "--sequence", "/does/not/exist.yaml", "--output", out)
	require.Error(t, err)
	assert.True(t, IsReported(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	stdout, stderr, err := execute(t, nil, "--verbose", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "output written")
	assert.Contains(t, stderr, "record released")
	assert.NotContains(t, stdout, "output written")
}
