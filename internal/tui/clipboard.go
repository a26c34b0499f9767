package tui

import "github.com/donghojung/kan/internal/tui/textarea"

// systemClipboard mirrors text box yanks to the system clipboard.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return writeClipboard(text)
}

var _ textarea.Clipboard = systemClipboard{}

// newInput creates a focused-on-demand text box with the editor settings
// shared by every form.
func newInput(value string, singleLine bool, opts EditorOptions) *textarea.Model {
	m := textarea.NewFromString(value, singleLine)
	m.SetTabLen(opts.TabLen)
	m.SetHardTabIndent(opts.HardTabIndent)
	m.SetHistorySize(opts.HistorySize)
	m.SetStyles(textarea.DefaultStyles(opts.IsDark))
	m.SetClipboard(systemClipboard{})
	return m
}

// EditorOptions are the text box settings taken from the editor config.
type EditorOptions struct {
	TabLen        int
	HardTabIndent bool
	HistorySize   int
	IsDark        bool
}
