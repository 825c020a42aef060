package linehighlight

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/bethropolis/tidebug/internal/types"
)

// recordingEditor logs every call and tracks painted lines.
type recordingEditor struct {
	calls   []string
	painted map[int]bool
	depth   int
}

func newRecordingEditor() *recordingEditor {
	return &recordingEditor{painted: make(map[int]bool)}
}

func (e *recordingEditor) AddLineClass(line int, where, class string) {
	if where != Scope || class != ClassName {
		panic(fmt.Sprintf("unexpected class %s/%s", where, class))
	}
	e.calls = append(e.calls, fmt.Sprintf("add %d", line))
	e.painted[line] = true
}

func (e *recordingEditor) RemoveLineClass(line int, where, class string) {
	e.calls = append(e.calls, fmt.Sprintf("remove %d", line))
	delete(e.painted, line)
}

func (e *recordingEditor) Operation(fn func()) {
	e.calls = append(e.calls, "begin")
	e.depth++
	fn()
	e.depth--
	e.calls = append(e.calls, "end")
}

func (e *recordingEditor) AlignLine(line int) {
	e.calls = append(e.calls, fmt.Sprintf("align %d", line))
}

func (e *recordingEditor) reset() { e.calls = nil }

func (e *recordingEditor) paintedLines() []int {
	var lines []int
	for i := 0; i < 100; i++ {
		if e.painted[i] {
			lines = append(lines, i)
		}
	}
	return lines
}

func rng(start, end int) types.LineRange {
	return types.LineRange{Start: start, End: end}
}

func strictSynchronizer(t *testing.T) *Synchronizer {
	t.Helper()
	s := NewSynchronizer()
	s.Strict = true
	return s
}

func TestApply_AlignsBeforePainting(t *testing.T) {
	ed := newRecordingEditor()
	if !Apply(rng(5, 8), ed) {
		t.Fatal("Apply reported no work")
	}

	want := []string{"begin", "align 5", "add 4", "add 5", "add 6", "end"}
	if !reflect.DeepEqual(ed.calls, want) {
		t.Errorf("calls = %v, want %v", ed.calls, want)
	}
}

func TestApply_SingleLineRangeOnlyScrolls(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)

	s.Attach(rng(5, 5), ed)
	want := []string{"begin", "align 5", "end"}
	if !reflect.DeepEqual(ed.calls, want) {
		t.Errorf("calls = %v, want %v", ed.calls, want)
	}
	if lines := ed.paintedLines(); len(lines) != 0 {
		t.Errorf("painted = %v, want none", lines)
	}

	// The next range is still preceded by a clear.
	ed.reset()
	s.Update(rng(5, 6), ed)
	want = []string{"begin", "end", "begin", "align 5", "add 4", "end"}
	if !reflect.DeepEqual(ed.calls, want) {
		t.Errorf("calls = %v, want %v", ed.calls, want)
	}
}

func TestClearApply_NoOps(t *testing.T) {
	ed := newRecordingEditor()
	tests := []struct {
		name string
		r    types.LineRange
		ed   Editor
	}{
		{"empty range", types.LineRange{}, ed},
		{"inverted range", rng(8, 5), ed},
		{"no editor", rng(5, 8), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Apply(tt.r, tt.ed) || Clear(tt.r, tt.ed) {
				t.Error("expected no-op")
			}
		})
	}
	if len(ed.calls) != 0 {
		t.Errorf("editor should not be touched, got %v", ed.calls)
	}
}

func TestSynchronizer_AttachPaints(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)

	s.Attach(rng(5, 8), ed)

	if got := ed.paintedLines(); !reflect.DeepEqual(got, []int{4, 5, 6}) {
		t.Errorf("painted = %v, want [4 5 6]", got)
	}
	aligns := 0
	for i, c := range ed.calls {
		if c == "align 5" {
			aligns++
			if i != 1 {
				t.Errorf("align should come first in the operation, calls = %v", ed.calls)
			}
		}
	}
	if aligns != 1 {
		t.Errorf("expected one align, got %d", aligns)
	}
}

func TestSynchronizer_RangeShrinkClearsFirst(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)
	s.Attach(rng(5, 8), ed)
	ed.reset()

	s.Update(rng(6, 7), ed)

	want := []string{
		"begin", "remove 4", "remove 5", "remove 6", "end",
		"begin", "align 6", "add 5", "end",
	}
	if !reflect.DeepEqual(ed.calls, want) {
		t.Errorf("calls = %v, want %v", ed.calls, want)
	}
	if got := ed.paintedLines(); !reflect.DeepEqual(got, []int{5}) {
		t.Errorf("painted = %v, want [5]", got)
	}
}

func TestSynchronizer_UnchangedIsNoOp(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)
	s.Attach(rng(2, 4), ed)
	ed.reset()

	s.Update(rng(2, 4), ed)

	if len(ed.calls) != 0 {
		t.Errorf("expected no calls, got %v", ed.calls)
	}
}

func TestSynchronizer_EditorSwap(t *testing.T) {
	first, second := newRecordingEditor(), newRecordingEditor()
	s := strictSynchronizer(t)
	s.Attach(rng(3, 5), first)

	s.Update(rng(3, 5), second)

	if len(first.paintedLines()) != 0 {
		t.Errorf("old editor still painted: %v", first.paintedLines())
	}
	if got := second.paintedLines(); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("new editor painted = %v", got)
	}
}

func TestSynchronizer_EditorAbsentThenPresent(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)

	s.Attach(rng(5, 8), nil)
	if s.Painted() {
		t.Fatal("nothing should be painted without an editor")
	}

	s.Update(rng(5, 8), ed)
	if got := ed.paintedLines(); !reflect.DeepEqual(got, []int{4, 5, 6}) {
		t.Errorf("painted = %v", got)
	}
	if ed.calls[0] != "begin" || ed.calls[1] != "align 5" {
		t.Errorf("expected apply only, got %v", ed.calls)
	}
}

func TestSynchronizer_DetachClearsEverything(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)

	s.Attach(rng(1, 3), ed)
	s.Update(rng(10, 20), ed)
	s.Update(types.LineRange{}, ed)
	s.Update(rng(4, 9), ed)
	s.Detach()

	if got := ed.paintedLines(); len(got) != 0 {
		t.Errorf("lines left painted after detach: %v", got)
	}
	applies, clears := s.Counts()
	if applies != 3 || clears != 3 {
		t.Errorf("applies=%d clears=%d, want 3 and 3", applies, clears)
	}

	// A second detach does nothing.
	ed.reset()
	s.Detach()
	if len(ed.calls) != 0 {
		t.Errorf("second detach touched the editor: %v", ed.calls)
	}
}

func TestSynchronizer_ClearPrecedesEachApply(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)

	ranges := []types.LineRange{rng(1, 5), rng(2, 3), rng(7, 9), rng(7, 12)}
	s.Attach(ranges[0], ed)
	for _, r := range ranges[1:] {
		s.Update(r, ed)
	}
	s.Detach()

	// Walk operations: first must be an apply, then clear/apply alternate,
	// ending with the final clear.
	var ops []string
	for _, c := range ed.calls {
		switch {
		case c == "begin":
			ops = append(ops, "")
		case len(ops) > 0 && ops[len(ops)-1] == "":
			if c[:3] == "rem" {
				ops[len(ops)-1] = "clear"
			} else {
				ops[len(ops)-1] = "apply"
			}
		}
	}
	want := []string{"apply", "clear", "apply", "clear", "apply", "clear", "apply", "clear"}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("operations = %v, want %v", ops, want)
	}
}

func TestSynchronizer_UpdateBeforeAttach(t *testing.T) {
	ed := newRecordingEditor()
	s := strictSynchronizer(t)

	s.Update(rng(2, 3), ed)

	if !s.Painted() || s.Range() != rng(2, 3) {
		t.Error("Update on a detached synchronizer should attach")
	}
}

func TestSynchronizer_ViolationHook(t *testing.T) {
	var got []error
	s := NewSynchronizer()
	s.OnViolation = func(err error) { got = append(got, err) }

	ed := newRecordingEditor()
	s.Attach(rng(1, 3), ed)
	// Force a second apply without a clear.
	s.apply()

	if len(got) != 1 {
		t.Fatalf("expected one violation, got %v", got)
	}
	if applies, _ := s.Counts(); applies != 1 {
		t.Errorf("violating apply should not reach the editor, applies=%d", applies)
	}
}

func TestSynchronizer_StrictPanics(t *testing.T) {
	s := strictSynchronizer(t)
	s.Attach(rng(1, 3), newRecordingEditor())

	defer func() {
		if recover() == nil {
			t.Error("expected panic in strict mode")
		}
	}()
	s.apply()
}
