package sequence

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/roach88/tips/internal/vec"
)

// schemaCUE is unified with every CUE sequence file. #Vec is closed, so
// unknown fields are rejected, and its defaults fill in missing components.
const schemaCUE = `
#Vec: {
	x: *0 | number
	y: *0 | number
	z: *1 | number
}

records: [...#Vec]
`

func parseCUE(path string, src []byte) ([]vec.Vec, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("sequence-schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling schema: %v", err)}
	}

	data := ctx.CompileBytes(src, cue.Filename(path))
	if err := data.Err(); err != nil {
		return nil, cueLoadError(ErrCodeLoadFailed, err)
	}

	value := schema.Unify(data)
	if err := value.Validate(); err != nil {
		return nil, cueLoadError(ErrCodeBuildFailed, err)
	}

	// The schema always declares records; only the file says whether any
	// were given.
	if !data.LookupPath(cue.ParsePath("records")).Exists() {
		return []vec.Vec{}, nil
	}
	recordsVal := value.LookupPath(cue.ParsePath("records"))

	iter, err := recordsVal.List()
	if err != nil {
		return nil, cueLoadError(ErrCodeInvalidRecord, err)
	}

	var out []vec.Vec
	for iter.Next() {
		v, err := decodeCUEVec(iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if out == nil {
		out = []vec.Vec{}
	}
	return out, nil
}

// decodeCUEVec reads one unified #Vec, resolving defaults.
func decodeCUEVec(v cue.Value) (vec.Vec, error) {
	var out vec.Vec
	fields := []struct {
		name string
		dst  *float64
	}{
		{"x", &out.X},
		{"y", &out.Y},
		{"z", &out.Z},
	}

	for _, f := range fields {
		fv := v.LookupPath(cue.ParsePath(f.name))
		if def, ok := fv.Default(); ok {
			fv = def
		}
		n, err := fv.Float64()
		if err != nil {
			return vec.Vec{}, &LoadError{
				Code:    ErrCodeInvalidRecord,
				Message: fmt.Sprintf("field %s: %v", f.name, err),
				Pos:     fv.Pos(),
			}
		}
		*f.dst = n
	}
	return out, nil
}

// cueLoadError converts a CUE error. CUE errors may hold several; the
// first one, with its position, is kept.
func cueLoadError(code string, err error) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
