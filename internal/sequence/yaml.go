package sequence

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tips/internal/vec"
)

// file is the YAML document layout. Records stay raw nodes so that every
// element, null included, is checked as a record.
type file struct {
	// Records lists the coordinates to iterate, in order.
	Records []yaml.Node `yaml:"records"`
}

// record accepts either a mapping ({x: 1, y: 2}) or a flow list ([1, 2]).
// Missing components take the vec defaults.
type record struct {
	vec.Vec
}

// recordError reports a record whose shape is wrong, as opposed to a
// document that does not parse.
type recordError struct {
	line int
	msg  string
}

func (e *recordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *record) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xyz []float64
		if err := node.Decode(&xyz); err != nil {
			return err
		}
		if len(xyz) > 3 {
			return &recordError{line: node.Line, msg: fmt.Sprintf("record has %d components, want at most 3", len(xyz))}
		}
		r.Vec = vec.New(xyz...)
		return nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch key := node.Content[i].Value; key {
			case "x", "y", "z":
			default:
				return &recordError{line: node.Content[i].Line, msg: fmt.Sprintf("unknown field %q", key)}
			}
		}
		var fields struct {
			X *float64 `yaml:"x"`
			Y *float64 `yaml:"y"`
			Z *float64 `yaml:"z"`
		}
		if err := node.Decode(&fields); err != nil {
			return err
		}
		r.Vec = vec.Default()
		if fields.X != nil {
			r.X = *fields.X
		}
		if fields.Y != nil {
			r.Y = *fields.Y
		}
		if fields.Z != nil {
			r.Z = *fields.Z
		}
		return nil

	default:
		return &recordError{line: node.Line, msg: "record must be a mapping or a list"}
	}
}

func parseYAML(path string, src []byte) ([]vec.Vec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("%s: empty document", path)}
		}
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("%s: %v", path, err)}
	}

	out := make([]vec.Vec, 0, len(doc.Records))
	for i := range doc.Records {
		v, err := decodeRecord(&doc.Records[i])
		if err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidRecord, Message: fmt.Sprintf("%s: record %d: %v", path, i, err)}
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeRecord decodes one element of records. yaml.v3 skips Unmarshalers
// for null nodes, so nulls are rejected here.
func decodeRecord(node *yaml.Node) (vec.Vec, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return vec.Vec{}, &recordError{line: node.Line, msg: "record is null"}
	}

	var r record
	if err := node.Decode(&r); err != nil {
		return vec.Vec{}, err
	}
	for _, c := range []float64{r.X, r.Y, r.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return vec.Vec{}, &recordError{line: node.Line, msg: fmt.Sprintf("component %v is not finite", c)}
		}
	}
	return r.Vec, nil
}
