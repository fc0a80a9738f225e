package lessons

import (
	"fmt"
	"io"

	"github.com/roach88/tips/internal/emit"
	"github.com/roach88/tips/internal/vec"
)

// textWriter keeps the first write error so the caller checks once.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) record(name string, v vec.Vec) {
	t.printf("%[1]s.x = %[2]s %[1]s.y = %[3]s %[1]s.z = %[4]s\n",
		name, vec.FormatFloat(v.X), vec.FormatFloat(v.Y), vec.FormatFloat(v.Z))
}

// WriteText prints r in the fixed console layout. The trailing collection
// lines are produced by iterating the script's sequence.
func (s *Script) WriteText(w io.Writer, r Report) error {
	t := &textWriter{w: w}

	t.printf("*** Lesson 1: Classes ***\n")
	t.record("lesson1", r.Classes.Full)
	t.record("lesson1_1", r.Classes.XOnly)
	t.record("lesson1_2", r.Classes.Defaulted)
	t.printf("lesson1_3 : calling kludge.Add(1, 2) = %d calling fudge.Add(1, 2) = %d\n",
		r.Classes.KludgeAdd, r.Classes.FudgeAdd)
	t.printf("lesson1_3 : calling kludge.Compute(vec.New(1, 2, 3), vec.New(10, 10, 10)) = %s\n",
		vec.FormatFloat(r.Classes.Computed))

	t.printf("*** Lesson 2: Shared ownership and aliasing ***\n")
	t.printf("lesson2 : num = %d and ref = %d\n", r.Pointers.NumBefore, r.Pointers.RefBefore)
	t.printf("lesson2 : now after increment num = %d and ref = %d\n", r.Pointers.NumAfter, r.Pointers.RefAfter)
	t.printf("lesson2_1 : reach shared safe by dereference, safe.Deref().X %s\n",
		vec.FormatFloat(r.Pointers.SafeX))
	t.printf("lesson2_1 : reach shared quickSafe through its pointer, quickSafe.Get().X %s\n",
		vec.FormatFloat(r.Pointers.QuickSafeX))
	t.printf("lesson2_2 : using a loop safely with a collection ...\n")
	if t.err != nil {
		return t.err
	}

	return emit.Write(w, s.seq)
}
