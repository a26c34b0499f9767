package textarea

import (
	"math/rand"
	"reflect"
	"testing"
)

func newBuf(lines ...string) *Model {
	return New(lines, false)
}

func assertLines(t *testing.T, m *Model, want ...string) {
	t.Helper()
	if got := m.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func assertCursor(t *testing.T, m *Model, row, col int) {
	t.Helper()
	if got := m.Cursor(); got != (Cursor{row, col}) {
		t.Fatalf("cursor = %v, want (%d,%d)", got, row, col)
	}
}

func checkInvariants(t *testing.T, m *Model) {
	t.Helper()
	if len(m.lines) == 0 {
		t.Fatal("lines is empty")
	}
	c := m.cursor
	if c.Row < 0 || c.Row >= len(m.lines) {
		t.Fatalf("cursor row %d out of range [0,%d)", c.Row, len(m.lines))
	}
	if c.Col < 0 || c.Col > charCount(m.lines[c.Row]) {
		t.Fatalf("cursor col %d out of range for %q", c.Col, m.lines[c.Row])
	}
}

func TestNewAndReset(t *testing.T) {
	m := New(nil, true)
	assertLines(t, m, "")
	assertCursor(t, m, 0, 0)
	if !m.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if m.TabLen() != DefaultTabLen {
		t.Errorf("TabLen() = %d, want %d", m.TabLen(), DefaultTabLen)
	}

	m.InsertStr("hello")
	m.Reset()
	assertLines(t, m, "")
	if !m.SingleLine() {
		t.Error("Reset should keep single-line mode")
	}
	if m.Undo() {
		t.Error("Reset should clear history")
	}
}

func TestNewFromStringAndValue(t *testing.T) {
	m := NewFromString("one\ntwo\n", false)
	assertLines(t, m, "one", "two", "")
	if got := m.Value(); got != "one\ntwo\n" {
		t.Errorf("Value() = %q", got)
	}
	if got := m.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}

	m.SetValue("a\nbc")
	assertCursor(t, m, 1, 2)
}

func TestUndoAfterCut(t *testing.T) {
	m := newBuf("hello world")
	m.SetSelection(0, 11, 0, 6)

	if !m.Cut() {
		t.Fatal("Cut() returned false")
	}
	assertLines(t, m, "hello ")
	if got := m.Yank().String(); got != "world" {
		t.Fatalf("yank = %q, want %q", got, "world")
	}

	if !m.Undo() {
		t.Fatal("Undo() returned false")
	}
	assertLines(t, m, "hello world")
	assertCursor(t, m, 0, 6)
	if m.HasSelection() {
		t.Error("undo should cancel the selection")
	}
}

func TestUndoAfterForwardSelectionCut(t *testing.T) {
	m := newBuf("hello world")
	m.Jump(0, 6)
	if !m.MoveCursorSelect(MoveEnd) {
		t.Fatal("MoveCursorSelect(MoveEnd) returned false")
	}
	assertCursor(t, m, 0, 11)

	if !m.Cut() {
		t.Fatal("Cut() returned false")
	}
	assertLines(t, m, "hello ")
	assertCursor(t, m, 0, 6)
	if got := m.Yank().String(); got != "world" {
		t.Fatalf("yank = %q, want %q", got, "world")
	}

	if !m.Undo() {
		t.Fatal("Undo() returned false")
	}
	assertLines(t, m, "hello world")
	assertCursor(t, m, 0, 6)
	if m.HasSelection() {
		t.Error("undo should cancel the selection")
	}

	m.Redo()
	assertLines(t, m, "hello ")
	assertCursor(t, m, 0, 6)
}

func TestPasteChunk(t *testing.T) {
	m := newBuf("abc")
	m.Jump(0, 1)
	m.SetYank(YankChunk([]string{"X", "Y", "Z"}))

	if !m.Paste() {
		t.Fatal("Paste() returned false")
	}
	assertLines(t, m, "aX", "Y", "Zbc")
	assertCursor(t, m, 2, 1)

	m.Undo()
	assertLines(t, m, "abc")
	assertCursor(t, m, 0, 1)
	m.Redo()
	assertLines(t, m, "aX", "Y", "Zbc")
	assertCursor(t, m, 2, 1)
}

func TestWordForward(t *testing.T) {
	m := newBuf("foo bar  baz")
	for _, want := range []int{4, 9, 12} {
		m.MoveCursor(MoveWordForward)
		assertCursor(t, m, 0, want)
	}
}

func TestWordMotions(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		start Cursor
		move  CursorMove
		want  Cursor
	}{
		{"forward over punctuation", []string{"foo.bar"}, Cursor{0, 0}, MoveWordForward, Cursor{0, 3}},
		{"forward to next line", []string{"foo", "bar"}, Cursor{0, 1}, MoveWordForward, Cursor{1, 0}},
		{"back to word start", []string{"foo bar"}, Cursor{0, 6}, MoveWordBack, Cursor{0, 4}},
		{"back skips spaces", []string{"foo   bar"}, Cursor{0, 6}, MoveWordBack, Cursor{0, 0}},
		{"back to previous line", []string{"foo", "  bar"}, Cursor{1, 2}, MoveWordBack, Cursor{0, 3}},
		{"back at start", []string{"foo"}, Cursor{0, 0}, MoveWordBack, Cursor{0, 0}},
		{"back over punctuation", []string{"a.b"}, Cursor{0, 3}, MoveWordBack, Cursor{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.lines, false)
			m.Jump(tt.start.Row, tt.start.Col)
			m.MoveCursor(tt.move)
			assertCursor(t, m, tt.want.Row, tt.want.Col)
		})
	}
}

func TestCursorMotions(t *testing.T) {
	lines := []string{"first", "", "third line", "x"}
	tests := []struct {
		name  string
		start Cursor
		move  CursorMove
		want  Cursor
	}{
		{"forward wraps", Cursor{0, 5}, MoveForward, Cursor{1, 0}},
		{"forward at end of buffer", Cursor{3, 1}, MoveForward, Cursor{3, 1}},
		{"back wraps", Cursor{2, 0}, MoveBack, Cursor{1, 0}},
		{"back at origin", Cursor{0, 0}, MoveBack, Cursor{0, 0}},
		{"up on first row", Cursor{0, 3}, MoveUp, Cursor{0, 3}},
		{"up clamps column", Cursor{2, 8}, MoveUp, Cursor{1, 0}},
		{"down clamps column", Cursor{2, 8}, MoveDown, Cursor{3, 1}},
		{"down on last row", Cursor{3, 0}, MoveDown, Cursor{3, 0}},
		{"head", Cursor{2, 4}, MoveHead, Cursor{2, 0}},
		{"end", Cursor{2, 4}, MoveEnd, Cursor{2, 10}},
		{"top", Cursor{2, 4}, MoveTop, Cursor{0, 0}},
		{"bottom", Cursor{0, 2}, MoveBottom, Cursor{3, 1}},
		{"paragraph forward", Cursor{0, 2}, MoveParagraphForward, Cursor{1, 0}},
		{"paragraph forward without blank", Cursor{2, 2}, MoveParagraphForward, Cursor{3, 1}},
		{"paragraph back", Cursor{3, 0}, MoveParagraphBack, Cursor{1, 0}},
		{"paragraph back without blank", Cursor{1, 0}, MoveParagraphBack, Cursor{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(lines, false)
			m.Jump(tt.start.Row, tt.start.Col)
			m.MoveCursor(tt.move)
			assertCursor(t, m, tt.want.Row, tt.want.Col)
		})
	}
}

func TestJumpSaturates(t *testing.T) {
	m := newBuf("ab", "cde")
	m.Jump(End, End)
	assertCursor(t, m, 1, 3)
	m.Jump(-4, 1)
	assertCursor(t, m, 0, 1)
	m.Jump(0, 99)
	assertCursor(t, m, 0, 2)
}

func TestSingleLineRejectsVerticalMotion(t *testing.T) {
	m := New([]string{"abc"}, true)
	m.Jump(0, 2)
	for _, mv := range []CursorMove{MoveUp, MoveDown, MoveTop, MoveBottom, MoveParagraphForward, MoveParagraphBack} {
		if m.MoveCursor(mv) {
			t.Errorf("%s moved in single-line mode", mv)
		}
	}
	assertCursor(t, m, 0, 2)
}

func TestShiftMotionSelects(t *testing.T) {
	m := newBuf("hello world")
	m.Jump(0, 11)
	for i := 0; i < 5; i++ {
		m.MoveCursorSelect(MoveBack)
	}
	start, end, ok := m.SelectionRange()
	if !ok || start != (Cursor{0, 6}) || end != (Cursor{0, 11}) {
		t.Fatalf("SelectionRange() = %v %v %v", start, end, ok)
	}

	m.MoveCursor(MoveBack)
	if m.HasSelection() {
		t.Error("plain motion should cancel the selection")
	}
}

func TestInsertChar(t *testing.T) {
	m := newBuf("ac")
	m.Jump(0, 1)
	m.InsertChar('b')
	assertLines(t, m, "abc")
	assertCursor(t, m, 0, 2)

	m.InsertChar('\n')
	assertLines(t, m, "ab", "c")
	assertCursor(t, m, 1, 0)

	m.InsertChar('é')
	m.InsertChar('日')
	assertLines(t, m, "ab", "é日c")
	assertCursor(t, m, 1, 2)
}

func TestInsertStr(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   []string
		cursor Cursor
		ok     bool
	}{
		{"empty", "", []string{"ab"}, Cursor{0, 1}, false},
		{"piece", "xyz", []string{"axyzb"}, Cursor{0, 4}, true},
		{"chunk", "x\ny", []string{"ax", "yb"}, Cursor{1, 1}, true},
		{"crlf", "x\r\ny\r\nz", []string{"ax", "y", "zb"}, Cursor{2, 1}, true},
		{"trailing newline", "x\n", []string{"ax", "b"}, Cursor{1, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBuf("ab")
			m.Jump(0, 1)
			if got := m.InsertStr(tt.input); got != tt.ok {
				t.Errorf("InsertStr(%q) = %v, want %v", tt.input, got, tt.ok)
			}
			assertLines(t, m, tt.want...)
			assertCursor(t, m, tt.cursor.Row, tt.cursor.Col)
		})
	}
}

func TestInsertPreconditions(t *testing.T) {
	m := newBuf("ab")
	if m.InsertChunk([]string{"x"}) {
		t.Error("InsertChunk with one line should be rejected")
	}
	if m.InsertPiece("x\ny") {
		t.Error("InsertPiece with a newline should be rejected")
	}
	assertLines(t, m, "ab")
	if m.History().Len() != 0 {
		t.Error("rejected inserts should not record history")
	}
}

func TestInsertText(t *testing.T) {
	m := New(nil, true)
	m.InsertText("one\r\ntwo\x00\tthree")
	assertLines(t, m, "one two  three")

	multi := newBuf("")
	multi.SetHardTabIndent(true)
	multi.InsertText("a\tb\r\nc")
	assertLines(t, multi, "a\tb", "c")
}

func TestInsertTab(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		col    int
		tabLen int
		hard   bool
		want   string
	}{
		{"soft at start", "", 0, 2, false, "  "},
		{"soft to next stop", "abc", 3, 4, false, "abc "},
		{"soft after wide char", "日", 1, 4, false, "日  "},
		{"hard ignores tab len", "ab", 1, 8, true, "a\tb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBuf(tt.line)
			m.SetTabLen(tt.tabLen)
			m.SetHardTabIndent(tt.hard)
			m.Jump(0, tt.col)
			if !m.InsertTab() {
				t.Fatal("InsertTab() returned false")
			}
			assertLines(t, m, tt.want)
		})
	}

	m := newBuf("x")
	m.SetTabLen(0)
	if m.InsertTab() {
		t.Error("InsertTab with zero tab length should do nothing")
	}

	single := New([]string{"x"}, true)
	if single.InsertTab() {
		t.Error("InsertTab in single-line mode should do nothing")
	}
}

func TestDeleteChar(t *testing.T) {
	m := newBuf("ab", "cd")
	if m.Jump(0, 0); m.DeleteChar() {
		t.Error("DeleteChar at (0,0) should return false")
	}

	m.Jump(1, 0)
	if !m.DeleteChar() {
		t.Fatal("DeleteChar at column zero should join lines")
	}
	assertLines(t, m, "abcd")
	assertCursor(t, m, 0, 2)

	m.Jump(0, 3)
	m.DeleteChar()
	assertLines(t, m, "abd")
	assertCursor(t, m, 0, 2)
}

func TestDeleteNextChar(t *testing.T) {
	m := newBuf("ab", "c")
	m.Jump(0, 1)
	m.DeleteNextChar()
	assertLines(t, m, "a", "c")
	assertCursor(t, m, 0, 1)

	m.DeleteNextChar()
	assertLines(t, m, "ac")
	assertCursor(t, m, 0, 1)

	m.Jump(End, End)
	if m.DeleteNextChar() {
		t.Error("DeleteNextChar at end of buffer should return false")
	}

	m.Undo()
	m.Undo()
	assertLines(t, m, "ab", "c")
	assertCursor(t, m, 0, 1)
}

func TestKillLine(t *testing.T) {
	m := newBuf("hello world", "next")
	m.Jump(0, 5)
	m.DeleteLineByEnd()
	assertLines(t, m, "hello", "next")
	if got := m.Yank().String(); got != " world" {
		t.Errorf("yank = %q", got)
	}

	m.DeleteLineByEnd()
	assertLines(t, m, "hellonext")

	m.Jump(0, 5)
	m.DeleteLineByHead()
	assertLines(t, m, "next")
	assertCursor(t, m, 0, 0)

	m2 := newBuf("a", "b")
	m2.Jump(1, 0)
	m2.DeleteLineByHead()
	assertLines(t, m2, "ab")
	assertCursor(t, m2, 0, 1)
}

func TestDeleteWord(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		start  Cursor
		want   []string
		cursor Cursor
	}{
		{"previous word", []string{"foo bar"}, Cursor{0, 7}, []string{"foo "}, Cursor{0, 4}},
		{"word and spaces", []string{"foo bar  "}, Cursor{0, 9}, []string{"foo "}, Cursor{0, 4}},
		{"leading spaces", []string{"   "}, Cursor{0, 2}, []string{" "}, Cursor{0, 0}},
		{"line start joins", []string{"foo", "bar"}, Cursor{1, 0}, []string{"foobar"}, Cursor{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.lines, false)
			m.Jump(tt.start.Row, tt.start.Col)
			if !m.DeleteWord() {
				t.Fatal("DeleteWord() returned false")
			}
			assertLines(t, m, tt.want...)
			assertCursor(t, m, tt.cursor.Row, tt.cursor.Col)
		})
	}
}

func TestDeleteNextWord(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		start  Cursor
		want   []string
		cursor Cursor
	}{
		{"next word", []string{"foo bar"}, Cursor{0, 0}, []string{" bar"}, Cursor{0, 0}},
		{"spaces and word", []string{"foo  bar baz"}, Cursor{0, 3}, []string{"foo baz"}, Cursor{0, 3}},
		{"rest of line", []string{"foo bar"}, Cursor{0, 5}, []string{"foo b"}, Cursor{0, 5}},
		{"end joins next line", []string{"foo", "bar"}, Cursor{0, 3}, []string{"foobar"}, Cursor{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.lines, false)
			m.Jump(tt.start.Row, tt.start.Col)
			if !m.DeleteNextWord() {
				t.Fatal("DeleteNextWord() returned false")
			}
			assertLines(t, m, tt.want...)
			assertCursor(t, m, tt.cursor.Row, tt.cursor.Col)
		})
	}

	m := newBuf("foo")
	m.Jump(0, 3)
	if m.DeleteNextWord() {
		t.Error("DeleteNextWord at end of buffer should return false")
	}
}

func TestDeleteStr(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		want  []string
		yank  string
		chunk bool
	}{
		{"within line", 2, []string{"ad", "ef"}, "bc", false},
		{"up to the newline", 3, []string{"a", "ef"}, "bcd", false},
		{"exactly the newline", 4, []string{"aef"}, "bcd\n", true},
		{"across newline", 5, []string{"af"}, "bcd\ne", true},
		{"past end of buffer", 99, []string{"a"}, "bcd\nef", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBuf("abcd", "ef")
			m.Jump(0, 1)
			if !m.DeleteStr(tt.n) {
				t.Fatal("DeleteStr() returned false")
			}
			assertLines(t, m, tt.want...)
			assertCursor(t, m, 0, 1)
			if got := m.Yank(); got.String() != tt.yank || got.IsChunk() != tt.chunk {
				t.Errorf("yank = %q (chunk %v), want %q (chunk %v)", got.String(), got.IsChunk(), tt.yank, tt.chunk)
			}

			m.Undo()
			assertLines(t, m, "abcd", "ef")
			assertCursor(t, m, 0, 1)
		})
	}

	m := newBuf("ab")
	m.Jump(End, End)
	if m.DeleteStr(3) {
		t.Error("DeleteStr at end of buffer should return false")
	}
	if m.DeleteStr(0) {
		t.Error("DeleteStr(0) should return false")
	}
}

func TestCopy(t *testing.T) {
	m := newBuf("abc", "def", "ghi")
	m.SetSelection(0, 1, 2, 2)
	m.Copy()

	y := m.Yank()
	if !y.IsChunk() || !reflect.DeepEqual(y.Lines(), []string{"bc", "def", "gh"}) {
		t.Fatalf("yank = %q", y.Lines())
	}
	assertLines(t, m, "abc", "def", "ghi")

	m.SetSelection(1, 2, 1, 0)
	m.Copy()
	if y := m.Yank(); y.IsChunk() || y.String() != "de" {
		t.Fatalf("yank = %q", y.String())
	}
}

func TestCutMultiLineUndo(t *testing.T) {
	m := newBuf("abc", "def", "ghi")
	m.SetSelection(0, 1, 2, 2)
	m.Cut()
	assertLines(t, m, "ai")
	assertCursor(t, m, 0, 1)

	m.Undo()
	assertLines(t, m, "abc", "def", "ghi")
	assertCursor(t, m, 0, 1)

	m.Redo()
	assertLines(t, m, "ai")
	assertCursor(t, m, 0, 1)
}

func TestPasteReplacesSelection(t *testing.T) {
	m := newBuf("hello world")
	m.SetYank(YankPiece("there"))
	m.SetSelection(0, 6, 0, 11)
	m.Paste()
	assertLines(t, m, "hello there")
	if got := m.Yank().String(); got != "there" {
		t.Errorf("paste should not yank the replaced text, got %q", got)
	}
}

func TestPastePieceUndoRedo(t *testing.T) {
	m := newBuf("ab")
	m.Jump(0, 1)
	m.SetYank(YankPiece("XYZ"))
	m.Paste()
	assertLines(t, m, "aXYZb")
	after := m.Lines()

	m.Undo()
	m.Redo()
	assertLines(t, m, after...)
}

func TestSelectAll(t *testing.T) {
	m := newBuf("ab", "cd")
	m.SelectAll()
	start, end, ok := m.SelectionRange()
	if !ok || start != (Cursor{0, 0}) || end != (Cursor{1, 2}) {
		t.Fatalf("SelectionRange() = %v %v %v", start, end, ok)
	}
	m.InsertChar('x')
	assertLines(t, m, "x")

	m.Undo()
	m.Undo()
	assertLines(t, m, "ab", "cd")
}

func TestTypingReplacesSelectionRecordsTwoEdits(t *testing.T) {
	m := newBuf("abc")
	m.SetSelection(0, 0, 0, 2)
	m.InsertChar('x')
	assertLines(t, m, "xc")
	if got := m.History().Len(); got != 2 {
		t.Errorf("History().Len() = %d, want 2", got)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	mutations := []struct {
		name string
		run  func(m *Model)
	}{
		{"insert char", func(m *Model) { m.InsertChar('q') }},
		{"insert wide char", func(m *Model) { m.InsertChar('界') }},
		{"insert newline", func(m *Model) { m.InsertNewline() }},
		{"insert piece", func(m *Model) { m.InsertStr("lorem") }},
		{"insert chunk", func(m *Model) { m.InsertStr("x\nyy\nzzz") }},
		{"insert tab", func(m *Model) { m.InsertTab() }},
		{"delete char", func(m *Model) { m.DeleteChar() }},
		{"delete next char", func(m *Model) { m.DeleteNextChar() }},
		{"kill to end", func(m *Model) { m.DeleteLineByEnd() }},
		{"kill to head", func(m *Model) { m.DeleteLineByHead() }},
		{"delete word", func(m *Model) { m.DeleteWord() }},
		{"delete next word", func(m *Model) { m.DeleteNextWord() }},
		{"delete str", func(m *Model) { m.DeleteStr(7) }},
		{"delete newline", func(m *Model) { m.DeleteNewline() }},
	}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := newBuf("The quick brown", "fox jumps", "", "over the_lazy dog.")
		m.Jump(rng.Intn(4), rng.Intn(20))
		initialLines, initialCursor := m.Lines(), m.Cursor()

		n := 30
		var applied []string
		for i := 0; i < n; i++ {
			mu := mutations[rng.Intn(len(mutations))]
			mu.run(m)
			applied = append(applied, mu.name)
			checkInvariants(t, m)
		}
		finalLines, finalCursor := m.Lines(), m.Cursor()

		for i := 0; i < n; i++ {
			m.Undo()
			checkInvariants(t, m)
		}
		if got := m.Lines(); !reflect.DeepEqual(got, initialLines) {
			t.Fatalf("seed %d after undo: lines = %q, want %q (ops %v)", seed, got, initialLines, applied)
		}
		if got := m.Cursor(); got != initialCursor {
			t.Fatalf("seed %d after undo: cursor = %v, want %v (ops %v)", seed, got, initialCursor, applied)
		}

		for i := 0; i < n; i++ {
			m.Redo()
			checkInvariants(t, m)
		}
		if got := m.Lines(); !reflect.DeepEqual(got, finalLines) {
			t.Fatalf("seed %d after redo: lines = %q, want %q (ops %v)", seed, got, finalLines, applied)
		}
		if got := m.Cursor(); got != finalCursor {
			t.Fatalf("seed %d after redo: cursor = %v, want %v (ops %v)", seed, got, finalCursor, applied)
		}
	}
}

func TestUndoRestoresLinesWithMotionsBetweenEdits(t *testing.T) {
	m := newBuf("alpha", "beta")
	m.InsertStr("1")
	m.Jump(1, 2)
	m.InsertNewline()
	m.MoveCursor(MoveEnd)
	m.DeleteWord()

	for m.Undo() {
	}
	assertLines(t, m, "alpha", "beta")
	if m.Redo(); m.Value() != "1alpha\nbeta" {
		t.Errorf("Value() after redo = %q", m.Value())
	}
}
