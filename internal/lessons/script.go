package lessons

import (
	"fmt"
	"log/slog"

	"github.com/roach88/tips/internal/canon"
	"github.com/roach88/tips/internal/emit"
	"github.com/roach88/tips/internal/fudge"
	"github.com/roach88/tips/internal/kludge"
	"github.com/roach88/tips/internal/shared"
	"github.com/roach88/tips/internal/vec"
)

// Initial demo state.
const initialNum = 1234

// Classes holds the lesson 1 results: record construction and the grouped
// helper functions.
type Classes struct {
	Full      vec.Vec      `json:"full"`      // vec.New(10, 20, 30)
	XOnly     vec.Vec      `json:"x_only"`    // vec.New(100)
	Defaulted vec.Position `json:"defaulted"` // vec.New()
	KludgeAdd int64        `json:"kludge_add"`
	FudgeAdd  int64        `json:"fudge_add"`
	Computed  float64      `json:"computed"`
}

// Pointers holds the lesson 2 results: the scalar alias and the two shared
// handles.
type Pointers struct {
	NumBefore  int64   `json:"num_before"`
	RefBefore  int64   `json:"ref_before"`
	NumAfter   int64   `json:"num_after"`
	RefAfter   int64   `json:"ref_after"`
	SafeX      float64 `json:"safe_x"`
	QuickSafeX float64 `json:"quick_safe_x"`
}

// Collection holds the iterated sequence.
type Collection struct {
	Records []vec.Vec `json:"records"`
	Lines   []string  `json:"lines"`
	Digest  string    `json:"digest"`
}

// Report is everything one Run computed, in script order.
type Report struct {
	Classes    Classes    `json:"classes"`
	Pointers   Pointers   `json:"pointers"`
	Collection Collection `json:"collection"`
}

// Script owns the demo state for a single run.
type Script struct {
	num int64
	ref *int64 // bound once to num

	safe      shared.Handle[vec.Position]
	quickSafe shared.Handle[vec.Position]
	seq       shared.Sequence[vec.Vec]
}

// NewScript prepares a script that iterates records. Every record becomes
// its own shared handle.
func NewScript(records []vec.Vec) *Script {
	s := &Script{num: initialNum}
	s.ref = &s.num

	s.safe = shared.Make(vec.New(100, 200, 300), logRelease("safe"))
	s.quickSafe = shared.Make(vec.New(400, 500, 600), logRelease("quick_safe"))
	s.seq = shared.MakeSequence(records, logRelease("sequence"))
	return s
}

func logRelease(owner string) shared.Option[vec.Vec] {
	return shared.WithRelease(func(v *vec.Vec) {
		slog.Debug("record released", "owner", owner, "x", v.X, "y", v.Y, "z", v.Z)
	})
}

// Sequence returns the shared records the script iterates.
func (s *Script) Sequence() shared.Sequence[vec.Vec] {
	return s.seq
}

// Run executes the lessons in order. The alias is incremented once per
// call, so a second Run reports values one higher.
func (s *Script) Run() (Report, error) {
	var r Report

	r.Classes = Classes{
		Full:      vec.New(10, 20, 30),
		XOnly:     vec.New(100),
		Defaulted: vec.New(),
		KludgeAdd: kludge.Add(1, 2),
		FudgeAdd:  fudge.Add(1, 2),
		Computed:  kludge.Compute(vec.New(1, 2, 3), vec.New(10, 10, 10)),
	}

	r.Pointers.NumBefore = s.num
	r.Pointers.RefBefore = *s.ref
	*s.ref += 1
	r.Pointers.NumAfter = s.num
	r.Pointers.RefAfter = *s.ref

	r.Pointers.SafeX = s.safe.Deref().X
	r.Pointers.QuickSafeX = s.quickSafe.Get().X

	lines := emit.Lines(s.seq)
	digest, err := canon.SequenceDigest(lines)
	if err != nil {
		return Report{}, fmt.Errorf("digest sequence: %w", err)
	}
	r.Collection = Collection{
		Records: s.seq.Values(),
		Lines:   lines,
		Digest:  digest,
	}

	slog.Debug("lessons complete", "records", len(lines), "digest", digest)
	return r, nil
}

// Close releases the script's handles.
func (s *Script) Close() {
	s.safe.Release()
	s.quickSafe.Release()
	s.seq.Release()
}
