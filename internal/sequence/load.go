package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/tips/internal/vec"
)

// Error codes, shared with the CLI's error table.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeUnsupported   = "E003" // Unsupported file extension
	ErrCodeLoadFailed    = "E004" // File could not be read or parsed
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeBuildFailed   = "E006" // CUE build or schema unification failed
	ErrCodeInvalidRecord = "E104" // Record has the wrong shape
)

// LoadError describes why a sequence file was rejected.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the records iterated when no sequence file is given.
func Default() []vec.Vec {
	return []vec.Vec{
		vec.New(1, 2, 3),
		vec.New(4, 5, 6),
		vec.New(7, 8, 9),
	}
}

// Load reads the records from path. The format is chosen by extension:
// .yaml and .yml are YAML, .cue is CUE.
func Load(path string) ([]vec.Vec, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("sequence file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing sequence file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("sequence path is a directory: %s", path)}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return parseYAML(path, src)
	case ".cue":
		return parseCUE(path, src)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported sequence format %q: want .yaml, .yml or .cue", ext),
		}
	}
}
