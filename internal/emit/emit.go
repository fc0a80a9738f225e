// Package emit renders a sequence of shared coordinate records as text,
// either to any writer or to a freshly created file.
package emit

import (
	"fmt"
	"io"
	"os"

	"github.com/roach88/tips/internal/shared"
	"github.com/roach88/tips/internal/vec"
)

const (
	// Prefix starts every emitted line.
	Prefix = "looking at values x, y, z with "

	// DefaultPath is the output file created in the working directory.
	DefaultPath = "localfile.txt"

	// Diagnostic is the single line reported when the output file cannot
	// be created.
	Diagnostic = "error: open file for output failed!"
)

// OpenError reports that the output file could not be created.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s for output: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Line renders one record.
func Line(v vec.Vec) string {
	return Prefix + v.String()
}

// Lines renders every record in seq, in order.
func Lines(seq shared.Sequence[vec.Vec]) []string {
	out := make([]string, 0, len(seq))
	for _, h := range seq {
		out = append(out, Line(h.Deref()))
	}
	return out
}

// Write emits one line per element of seq. Each element is held by an
// extra owner while it is being written.
func Write(w io.Writer, seq shared.Sequence[vec.Vec]) error {
	for i, h := range seq {
		value := h.Clone()
		_, err := fmt.Fprintln(w, Line(*value.Get()))
		value.Release()
		if err != nil {
			return fmt.Errorf("write element %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile creates (or truncates) path and emits seq into it. A failure to
// create the file is returned as *OpenError and nothing is written.
func WriteFile(path string, seq shared.Sequence[vec.Vec]) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return Write(f, seq)
}
