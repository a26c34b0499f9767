package textarea

import tea "github.com/charmbracelet/bubbletea"

var teaKeys = map[tea.KeyType]Key{
	tea.KeyEnter:     plain(KeyEnter),
	tea.KeyTab:       plain(KeyTab),
	tea.KeyBackspace: plain(KeyBackspace),
	tea.KeyDelete:    plain(KeyDelete),
	tea.KeyEsc:       plain(KeyEsc),
	tea.KeySpace:     Char(' '),

	tea.KeyHome:   plain(KeyHome),
	tea.KeyEnd:    plain(KeyEnd),
	tea.KeyPgUp:   plain(KeyPageUp),
	tea.KeyPgDown: plain(KeyPageDown),
	tea.KeyUp:     plain(KeyUp),
	tea.KeyDown:   plain(KeyDown),
	tea.KeyLeft:   plain(KeyLeft),
	tea.KeyRight:  plain(KeyRight),

	tea.KeyShiftUp:    shift(KeyUp),
	tea.KeyShiftDown:  shift(KeyDown),
	tea.KeyShiftLeft:  shift(KeyLeft),
	tea.KeyShiftRight: shift(KeyRight),
	tea.KeyShiftHome:  shift(KeyHome),
	tea.KeyShiftEnd:   shift(KeyEnd),

	tea.KeyCtrlUp:    ctrl(KeyUp),
	tea.KeyCtrlDown:  ctrl(KeyDown),
	tea.KeyCtrlLeft:  ctrl(KeyLeft),
	tea.KeyCtrlRight: ctrl(KeyRight),
	tea.KeyCtrlHome:  ctrl(KeyHome),
	tea.KeyCtrlEnd:   ctrl(KeyEnd),

	tea.KeyCtrlShiftUp:    ctrlShift(KeyUp),
	tea.KeyCtrlShiftDown:  ctrlShift(KeyDown),
	tea.KeyCtrlShiftLeft:  ctrlShift(KeyLeft),
	tea.KeyCtrlShiftRight: ctrlShift(KeyRight),
	tea.KeyCtrlShiftHome:  ctrlShift(KeyHome),
	tea.KeyCtrlShiftEnd:   ctrlShift(KeyEnd),
}

// KeyFromMsg converts a bubbletea key message. Multi-rune messages such as
// pastes do not map to a single key and return KeyUnknown.
func KeyFromMsg(msg tea.KeyMsg) Key {
	k, ok := teaKeys[msg.Type]
	switch {
	case ok:
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		k = Char(msg.Runes[0])
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		k = Ctrl(rune('a' + int(msg.Type-tea.KeyCtrlA)))
	default:
		return Key{Code: KeyUnknown}
	}
	if msg.Alt {
		k.Alt = true
	}
	return k
}

// Update handles key messages while the model is focused. Pasted text is
// inserted through InsertText.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if keyMsg.Paste || (keyMsg.Type == tea.KeyRunes && len(keyMsg.Runes) > 1) {
		m.InsertText(string(keyMsg.Runes))
		return m, nil
	}
	m.Input(KeyFromMsg(keyMsg))
	return m, nil
}
