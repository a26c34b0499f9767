package textarea

// KeyCode is the non-modifier part of a key.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEsc
	KeyUnknown
)

// Key is an abstract key event. Rune is only meaningful for KeyRune.
type Key struct {
	Code  KeyCode
	Rune  rune
	Ctrl  bool
	Alt   bool
	Shift bool
}

// Char returns the key for r.
func Char(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Ctrl returns Control+r.
func Ctrl(r rune) Key { return Key{Code: KeyRune, Rune: r, Ctrl: true} }

// Alt returns Alt+r.
func Alt(r rune) Key { return Key{Code: KeyRune, Rune: r, Alt: true} }

// CtrlAlt returns Control+Alt+r.
func CtrlAlt(r rune) Key { return Key{Code: KeyRune, Rune: r, Ctrl: true, Alt: true} }

func plain(code KeyCode) Key { return Key{Code: code} }
func shift(code KeyCode) Key { return Key{Code: code, Shift: true} }
func ctrl(code KeyCode) Key { return Key{Code: code, Ctrl: true} }
func ctrlShift(code KeyCode) Key { return Key{Code: code, Ctrl: true, Shift: true} }
func alt(code KeyCode) Key { return Key{Code: code, Alt: true} }
func ctrlAlt(code KeyCode) Key { return Key{Code: code, Ctrl: true, Alt: true} }
func ctrlAltShift(c KeyCode) Key { return Key{Code: c, Ctrl: true, Alt: true, Shift: true} }
func ctrlAltShiftRune(r rune) Key { return Key{Code: KeyRune, Rune: r, Ctrl: true, Alt: true, Shift: true} }

// Result tells the caller what Input did with a key.
type Result int

const (
	// NotHandled means the key has no binding here and the caller may use it.
	NotHandled Result = iota
	// Handled means the key was consumed without changing the text.
	Handled
	// Modified means the text changed.
	Modified
)

// Handled reports whether the key was consumed.
func (r Result) Handled() bool { return r != NotHandled }

// Modified reports whether the text changed.
func (r Result) Modified() bool { return r == Modified }

type binding struct {
	// multiLine bindings are not handled in single-line mode.
	multiLine bool
	run       func(m *Model) bool
}

func edit(fn func(m *Model) bool) binding {
	return binding{run: fn}
}

func motion(mv CursorMove, withShift bool) binding {
	return binding{
		multiLine: mv.vertical(),
		run: func(m *Model) bool {
			m.moveCursor(mv, withShift)
			return false
		},
	}
}

func paging(dir int, withShift bool) binding {
	return binding{
		multiLine: true,
		run: func(m *Model) bool {
			m.page(dir, withShift)
			return false
		},
	}
}

var keymap map[Key]binding

func init() {
	newline := binding{multiLine: true, run: func(m *Model) bool { m.InsertNewline(); return true }}
	tab := binding{multiLine: true, run: (*Model).InsertTab}
	backspace := edit((*Model).DeleteChar)
	del := edit((*Model).DeleteNextChar)
	deleteWord := edit((*Model).DeleteWord)
	deleteNextWord := edit((*Model).DeleteNextWord)

	keymap = map[Key]binding{
		plain(KeyEnter): newline,
		Ctrl('m'):       newline,
		Char('\n'):      newline,
		Char('\r'):      newline,
		plain(KeyTab):   tab,

		plain(KeyBackspace): backspace,
		Ctrl('h'):           backspace,
		plain(KeyDelete):    del,
		Ctrl('d'):           del,
		Ctrl('k'):           edit((*Model).DeleteLineByEnd),
		Ctrl('j'):           edit((*Model).DeleteLineByHead),
		Ctrl('w'):           deleteWord,
		Alt('h'):            deleteWord,
		alt(KeyBackspace):   deleteWord,
		alt(KeyDelete):      deleteNextWord,
		Alt('d'):            deleteNextWord,

		Ctrl('n'):       motion(MoveDown, false),
		plain(KeyDown):  motion(MoveDown, false),
		shift(KeyDown):  motion(MoveDown, true),
		Ctrl('p'):       motion(MoveUp, false),
		plain(KeyUp):    motion(MoveUp, false),
		shift(KeyUp):    motion(MoveUp, true),
		Ctrl('f'):       motion(MoveForward, false),
		plain(KeyRight): motion(MoveForward, false),
		shift(KeyRight): motion(MoveForward, true),
		Ctrl('b'):       motion(MoveBack, false),
		plain(KeyLeft):  motion(MoveBack, false),
		shift(KeyLeft):  motion(MoveBack, true),

		plain(KeyHome):         motion(MoveHead, false),
		CtrlAlt('b'):           motion(MoveHead, false),
		ctrlAlt(KeyLeft):       motion(MoveHead, false),
		shift(KeyHome):         motion(MoveHead, true),
		ctrlAltShiftRune('b'):  motion(MoveHead, true),
		ctrlAltShift(KeyLeft):  motion(MoveHead, true),
		Ctrl('e'):              motion(MoveEnd, false),
		plain(KeyEnd):          motion(MoveEnd, false),
		ctrlAlt(KeyRight):      motion(MoveEnd, false),
		CtrlAlt('f'):           motion(MoveEnd, false),
		shift(KeyEnd):          motion(MoveEnd, true),
		ctrlAltShift(KeyRight): motion(MoveEnd, true),
		ctrlAltShiftRune('f'):  motion(MoveEnd, true),
		Alt('<'):               motion(MoveTop, false),
		ctrlAlt(KeyUp):         motion(MoveTop, false),
		CtrlAlt('p'):           motion(MoveTop, false),
		ctrl(KeyHome):          motion(MoveTop, false),
		ctrlAltShift(KeyUp):    motion(MoveTop, true),
		ctrlAltShiftRune('p'):  motion(MoveTop, true),
		ctrlShift(KeyHome):     motion(MoveTop, true),
		Alt('>'):               motion(MoveBottom, false),
		ctrlAlt(KeyDown):       motion(MoveBottom, false),
		CtrlAlt('n'):           motion(MoveBottom, false),
		ctrl(KeyEnd):           motion(MoveBottom, false),
		ctrlAltShift(KeyDown):  motion(MoveBottom, true),
		ctrlAltShiftRune('n'):  motion(MoveBottom, true),
		ctrlShift(KeyEnd):      motion(MoveBottom, true),
		Alt('f'):               motion(MoveWordForward, false),
		ctrl(KeyRight):         motion(MoveWordForward, false),
		Alt('F'):               motion(MoveWordForward, true),
		ctrlShift(KeyRight):    motion(MoveWordForward, true),
		Alt('b'):               motion(MoveWordBack, false),
		ctrl(KeyLeft):          motion(MoveWordBack, false),
		Alt('B'):               motion(MoveWordBack, true),
		ctrlShift(KeyLeft):     motion(MoveWordBack, true),
		Alt(']'):               motion(MoveParagraphForward, false),
		Alt('n'):               motion(MoveParagraphForward, false),
		ctrl(KeyDown):          motion(MoveParagraphForward, false),
		Alt('}'):               motion(MoveParagraphForward, true),
		Alt('N'):               motion(MoveParagraphForward, true),
		ctrlShift(KeyDown):     motion(MoveParagraphForward, true),
		Alt('['):               motion(MoveParagraphBack, false),
		Alt('p'):               motion(MoveParagraphBack, false),
		ctrl(KeyUp):            motion(MoveParagraphBack, false),
		Alt('{'):               motion(MoveParagraphBack, true),
		Alt('P'):               motion(MoveParagraphBack, true),
		ctrlShift(KeyUp):       motion(MoveParagraphBack, true),
		plain(KeyPageDown):     paging(1, false),
		shift(KeyPageDown):     paging(1, true),
		plain(KeyPageUp):       paging(-1, false),
		shift(KeyPageUp):       paging(-1, true),

		Ctrl('a'): {run: func(m *Model) bool { m.SelectAll(); return false }},
		Ctrl('z'): edit((*Model).Undo),
		Ctrl('y'): edit((*Model).Redo),
		Ctrl('c'): {run: func(m *Model) bool { m.Copy(); return false }},
		Ctrl('x'): edit((*Model).Cut),
		Ctrl('v'): edit((*Model).Paste),
	}
}

func result(modified bool) Result {
	if modified {
		return Modified
	}
	return Handled
}

// Input routes k to an editing operation. In single-line mode line breaks,
// tabs, vertical motions and paging are left to the caller.
func (m *Model) Input(k Key) Result {
	if b, ok := keymap[k]; ok {
		if b.multiLine && m.singleLine {
			return NotHandled
		}
		return result(b.run(m))
	}
	if k.Code == KeyRune && !k.Ctrl && !k.Alt {
		m.InsertChar(k.Rune)
		return result(true)
	}
	return NotHandled
}

// InputWithoutShortcuts handles only typing, Tab, Backspace, Delete and
// Enter. It is used by prompts that reserve every other key.
func (m *Model) InputWithoutShortcuts(k Key) Result {
	switch {
	case k == plain(KeyTab):
		if m.singleLine {
			return NotHandled
		}
		return result(m.InsertTab())
	case k == plain(KeyBackspace):
		return result(m.DeleteChar())
	case k == plain(KeyDelete):
		return result(m.DeleteNextChar())
	case k == plain(KeyEnter):
		if m.singleLine {
			return NotHandled
		}
		m.InsertNewline()
		return result(true)
	case k.Code == KeyRune && !k.Ctrl && !k.Alt:
		if (k.Rune == '\n' || k.Rune == '\r') && m.singleLine {
			return NotHandled
		}
		m.InsertChar(k.Rune)
		return result(true)
	}
	return NotHandled
}
