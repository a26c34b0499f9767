// Package textarea is a multi-line text editor component with undo history,
// selection, an internal yank buffer and a viewport shared with its renderer.
package textarea

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/donghojung/kan/internal/logging"
	"github.com/donghojung/kan/internal/tui/textarea/internal/memoization"
	"github.com/donghojung/kan/internal/tui/textarea/internal/runeutil"
)

const (
	// DefaultTabLen is the soft tab width.
	DefaultTabLen = 2
	// End can be passed to Jump as row or column to reach the last position.
	End = math.MaxInt

	renderCacheSize = 256
)

var log = logging.For("textarea")

// Clipboard receives yanked text. It matches github.com/atotto/clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Model is the editor state. Lines is never empty and the cursor always
// points inside it.
type Model struct {
	lines     []string
	cursor    Cursor
	anchor    Cursor
	selecting bool
	yank      Yank
	history   *History
	viewport  Viewport

	singleLine      bool
	tabLen          int
	hardTabIndent   bool
	mask            rune
	alignment       Alignment
	showLineNumbers bool
	focused         bool
	width           int
	height          int

	// Placeholder is shown while the buffer is empty.
	Placeholder string
	Styles      Styles

	clipboard Clipboard
	sanitizer runeutil.Sanitizer
	cache     *memoization.MemoCache[memoization.HString, string]
}

// New creates a Model holding lines. An empty slice becomes one empty line.
func New(lines []string, singleLine bool) *Model {
	if len(lines) == 0 {
		lines = []string{""}
	}
	m := &Model{
		lines:      append([]string(nil), lines...),
		history:    NewHistory(DefaultHistorySize),
		singleLine: singleLine,
		tabLen:     DefaultTabLen,
		Styles:     DefaultStyles(true),
		cache:      memoization.NewMemoCache[memoization.HString, string](renderCacheSize),
	}
	m.resetSanitizer()
	return m
}

// NewFromString creates a Model from newline separated text.
func NewFromString(s string, singleLine bool) *Model {
	return New(strings.Split(s, "\n"), singleLine)
}

// Reset clears the text, history, yank and selection. Settings are kept.
func (m *Model) Reset() {
	m.lines = []string{""}
	m.cursor = Cursor{}
	m.selecting = false
	m.yank = Yank{}
	m.history = NewHistory(m.history.Max())
	m.viewport.store(0, 0, 0, 0)
}

// SetValue replaces the text and moves the cursor to the end. History is
// cleared.
func (m *Model) SetValue(s string) {
	m.Reset()
	m.lines = strings.Split(s, "\n")
	m.Jump(End, End)
}

// Value returns the text joined with newlines.
func (m *Model) Value() string {
	return strings.Join(m.lines, "\n")
}

// Lines returns a copy of the lines.
func (m *Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

// LineCount returns the number of lines.
func (m *Model) LineCount() int {
	return len(m.lines)
}

// IsEmpty reports whether the buffer holds a single empty line.
func (m *Model) IsEmpty() bool {
	return len(m.lines) == 1 && m.lines[0] == ""
}

// Cursor returns the cursor position.
func (m *Model) Cursor() Cursor {
	return m.cursor
}

// SingleLine reports whether the buffer is in single-line mode.
func (m *Model) SingleLine() bool {
	return m.singleLine
}

// History returns the undo history.
func (m *Model) History() *History {
	return m.history
}

// Viewport returns the viewport last published by View or PublishViewport.
func (m *Model) Viewport() *Viewport {
	return &m.viewport
}

// Yank returns the internal clipboard.
func (m *Model) Yank() Yank {
	return m.yank
}

// SetYank replaces the internal clipboard.
func (m *Model) SetYank(y Yank) {
	m.setYank(y)
}

func (m *Model) setYank(y Yank) {
	m.yank = y
	if m.clipboard == nil {
		return
	}
	if err := m.clipboard.WriteAll(y.String()); err != nil {
		log.Debug("failed to mirror yank to clipboard: %v", err)
	}
}

// SetClipboard mirrors every yank to c. Pass nil to stop mirroring.
func (m *Model) SetClipboard(c Clipboard) {
	m.clipboard = c
}

// SetTabLen sets the soft tab width. Zero disables tab insertion.
func (m *Model) SetTabLen(n int) {
	m.tabLen = clamp(n, 0, math.MaxUint8)
	m.resetSanitizer()
	m.invalidate()
}

// TabLen returns the soft tab width.
func (m *Model) TabLen() int {
	return m.tabLen
}

// SetHardTabIndent makes Tab insert '\t' instead of spaces.
func (m *Model) SetHardTabIndent(on bool) {
	m.hardTabIndent = on
	m.resetSanitizer()
}

// SetHistorySize replaces the history with an empty one of the given size.
func (m *Model) SetHistorySize(n int) {
	m.history = NewHistory(n)
}

// SetMask renders every character as r.
func (m *Model) SetMask(r rune) {
	m.mask = r
	m.invalidate()
}

// ClearMask turns masking off.
func (m *Model) ClearMask() {
	m.SetMask(0)
}

// SetAlignment sets line placement. Center and right alignment drop line
// numbers.
func (m *Model) SetAlignment(a Alignment) {
	if a != AlignLeft {
		m.showLineNumbers = false
	}
	m.alignment = a
	m.invalidate()
}

// Alignment returns the line placement.
func (m *Model) Alignment() Alignment {
	return m.alignment
}

// ShowLineNumbers enables the line number gutter. It is ignored unless the
// buffer is left aligned.
func (m *Model) ShowLineNumbers(on bool) {
	m.showLineNumbers = on && m.alignment == AlignLeft
	m.invalidate()
}

// Focus shows the cursor and uses the focused styles.
func (m *Model) Focus() {
	m.focused = true
	m.invalidate()
}

// Blur hides the cursor and uses the blurred styles.
func (m *Model) Blur() {
	m.focused = false
	m.invalidate()
}

// Focused reports whether the model has focus.
func (m *Model) Focused() bool {
	return m.focused
}

// SetWidth sets the rendered width in cells.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 0)
}

// SetHeight sets the rendered height in lines.
func (m *Model) SetHeight(h int) {
	m.height = max(h, 0)
}

// Width returns the rendered width.
func (m *Model) Width() int { return m.width }

// Height returns the rendered height.
func (m *Model) Height() int { return m.height }

// SetStyles replaces the styles and drops cached renders.
func (m *Model) SetStyles(s Styles) {
	m.Styles = s
	m.invalidate()
}

func (m *Model) resetSanitizer() {
	nl := "\n"
	if m.singleLine {
		nl = " "
	}
	tab := "\t"
	if !m.hardTabIndent {
		tab = strings.Repeat(" ", m.tabLen)
	}
	m.sanitizer = runeutil.NewSanitizer(runeutil.ReplaceNewlines(nl), runeutil.ReplaceTabs(tab))
}

func (m *Model) invalidate() {
	m.cache = memoization.NewMemoCache[memoization.HString, string](renderCacheSize)
}

// Selection

// StartSelection anchors a selection at the cursor.
func (m *Model) StartSelection() {
	m.anchor = m.cursor
	m.selecting = true
}

// CancelSelection drops the selection.
func (m *Model) CancelSelection() {
	m.selecting = false
}

// HasSelection reports whether a selection anchor is set.
func (m *Model) HasSelection() bool {
	return m.selecting
}

// SetSelection anchors a selection at (anchorRow, anchorCol) and moves the
// cursor to (row, col). Both are clamped into the buffer.
func (m *Model) SetSelection(anchorRow, anchorCol, row, col int) {
	m.anchor = jumpCursor(anchorRow, anchorCol, m.lines)
	m.cursor = jumpCursor(row, col, m.lines)
	m.selecting = true
}

// SelectionRange returns the ordered selection bounds. ok is false when there
// is no selection or it is empty.
func (m *Model) SelectionRange() (start, end Cursor, ok bool) {
	s, e, ok := m.selectionRange()
	return Cursor{s.Row, s.Col}, Cursor{e.Row, e.Col}, ok
}

func (m *Model) pos(c Cursor) Pos {
	row := min(c.Row, len(m.lines)-1)
	return Pos{Row: c.Row, Col: c.Col, Offset: byteOffset(m.lines[row], c.Col)}
}

func (m *Model) selectionRange() (start, end Pos, ok bool) {
	if !m.selecting {
		return Pos{}, Pos{}, false
	}
	a, c := m.pos(m.anchor), m.pos(m.cursor)
	switch {
	case a.Row == c.Row && a.Offset == c.Offset:
		return Pos{}, Pos{}, false
	case a.Row < c.Row || (a.Row == c.Row && a.Offset < c.Offset):
		return a, c, true
	default:
		return c, a, true
	}
}

func (m *Model) takeSelectionRange() (start, end Pos, ok bool) {
	start, end, ok = m.selectionRange()
	m.CancelSelection()
	return start, end, ok
}

// SelectAll selects the whole buffer.
func (m *Model) SelectAll() {
	m.Jump(End, End)
	m.anchor = Cursor{}
	m.selecting = true
}

// Motion

// MoveCursor applies mv and cancels any selection. It reports whether the
// cursor moved.
func (m *Model) MoveCursor(mv CursorMove) bool {
	return m.moveCursor(mv, false)
}

// MoveCursorSelect applies mv, starting or extending a selection.
func (m *Model) MoveCursorSelect(mv CursorMove) bool {
	return m.moveCursor(mv, true)
}

func (m *Model) moveCursor(mv CursorMove, shift bool) bool {
	if m.singleLine && mv.vertical() {
		return false
	}
	next, ok := nextCursor(mv, m.cursor, m.lines, &m.viewport)
	if !ok {
		log.Trace("cursor move %s rejected at %d:%d", mv, m.cursor.Row, m.cursor.Col)
		return false
	}
	if shift {
		if !m.selecting {
			m.StartSelection()
		}
	} else {
		m.CancelSelection()
	}
	m.cursor = next
	return true
}

// Jump moves the cursor to (row, col), clamped into the buffer, and cancels
// any selection. Jump(End, End) reaches the end of the buffer.
func (m *Model) Jump(row, col int) {
	m.CancelSelection()
	m.cursor = jumpCursor(row, col, m.lines)
}

// Scroll moves the viewport by rows and cols and pulls the cursor inside it.
// An active selection is extended.
func (m *Model) Scroll(rows, cols int) {
	m.scroll(rows, cols, m.selecting)
}

// PageDown scrolls one viewport height down.
func (m *Model) PageDown() {
	m.page(1, m.selecting)
}

// PageUp scrolls one viewport height up.
func (m *Model) PageUp() {
	m.page(-1, m.selecting)
}

func (m *Model) page(dir int, shift bool) {
	_, _, _, height := m.viewport.Rect()
	m.scroll(dir*height, 0, shift)
}

func (m *Model) scroll(rows, cols int, shift bool) {
	if shift && !m.selecting {
		m.StartSelection()
	}
	m.viewport.scroll(rows, cols)
	m.moveCursor(MoveInViewport, shift)
}

// PublishViewport computes the scroll position that keeps the cursor visible
// in a width x height window, stores it and returns the top row and column.
func (m *Model) PublishViewport(width, height int) (row, col int) {
	prevRow, prevCol := m.viewport.ScrollTop()
	row = nextScrollTop(prevRow, m.cursor.Row, height)
	col = nextScrollTop(prevCol, m.cursor.Col, width)
	m.viewport.store(row, col, width, height)
	return row, col
}

// CursorDisplayX returns the cell width of the text left of the cursor.
func (m *Model) CursorDisplayX() int {
	return displayWidth(m.lines[m.cursor.Row], m.cursor.Col, m.tabLen)
}

// displayWidth returns the cells taken by the first col characters of line,
// expanding tabs to tab stops.
func displayWidth(line string, col, tabLen int) int {
	w, i := 0, 0
	for _, r := range line {
		if i == col {
			break
		}
		w += runeCells(r, w, tabLen)
		i++
	}
	return w
}

func runeCells(r rune, at, tabLen int) int {
	if r == '\t' {
		if tabLen <= 0 {
			return 0
		}
		return tabLen - at%tabLen
	}
	return runewidth.RuneWidth(r)
}

// Edits

func (m *Model) pushEdit(kind EditKind, text string, chunk []string, before Pos, afterOffset int, origin Cursor) {
	m.history.Push(Edit{
		Kind:         kind,
		Text:         text,
		Chunk:        chunk,
		Before:       before,
		After:        Pos{Row: m.cursor.Row, Col: m.cursor.Col, Offset: afterOffset},
		CursorBefore: origin,
		CursorAfter:  m.cursor,
	})
}

// InsertChar inserts r at the cursor. A newline or carriage return inserts a
// line break.
func (m *Model) InsertChar(r rune) {
	if r == '\n' || r == '\r' {
		m.InsertNewline()
		return
	}
	m.deleteSelection(false)

	origin := m.cursor
	row, col := m.cursor.Row, m.cursor.Col
	line := m.lines[row]
	i := byteOffset(line, col)
	s := string(r)
	m.lines[row] = line[:i] + s + line[i:]
	m.cursor.Col++
	m.pushEdit(InsertChar, s, nil, Pos{row, col, i}, i+len(s), origin)
}

// InsertStr inserts s, which may contain newlines. A trailing '\r' on each
// line is dropped.
func (m *Model) InsertStr(s string) bool {
	modified := m.deleteSelection(false)
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	var inserted bool
	switch len(parts) {
	case 0:
	case 1:
		inserted = m.insertPiece(parts[0])
	default:
		inserted = m.insertChunk(parts)
	}
	return modified || inserted
}

// InsertText inserts text from outside the editor, such as a terminal paste.
// Control characters are dropped; in single-line mode newlines become spaces.
func (m *Model) InsertText(s string) bool {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return m.InsertStr(string(m.sanitizer.Sanitize([]rune(s))))
}

// InsertPiece inserts s, which must not contain a newline.
func (m *Model) InsertPiece(s string) bool {
	m.deleteSelection(false)
	return m.insertPiece(s)
}

// InsertChunk inserts at least two lines. The first joins the current line
// at the cursor and the last is followed by the rest of that line.
func (m *Model) InsertChunk(chunk []string) bool {
	if len(chunk) < 2 {
		return false
	}
	m.deleteSelection(false)
	return m.insertChunk(chunk)
}

func (m *Model) insertPiece(s string) bool {
	if s == "" || strings.Contains(s, "\n") {
		return false
	}
	origin := m.cursor
	row, col := m.cursor.Row, m.cursor.Col
	line := m.lines[row]
	i := byteOffset(line, col)
	m.lines[row] = line[:i] + s + line[i:]
	m.cursor.Col += charCount(s)
	m.pushEdit(InsertStr, s, nil, Pos{row, col, i}, i+len(s), origin)
	return true
}

func (m *Model) insertChunk(chunk []string) bool {
	if len(chunk) < 2 {
		return false
	}
	chunk = append([]string(nil), chunk...)
	n := len(chunk)

	origin := m.cursor
	row, col := m.cursor.Row, m.cursor.Col
	before := Pos{row, col, byteOffset(m.lines[row], col)}

	m.cursor = Cursor{row + n - 1, charCount(chunk[n-1])}
	endOffset := len(chunk[n-1])
	after := Pos{m.cursor.Row, m.cursor.Col, endOffset}
	m.lines = applyEdit(InsertChunk, "", chunk, m.lines, before, after)
	m.pushEdit(InsertChunk, "", chunk, before, endOffset, origin)
	return true
}

// InsertNewline splits the line at the cursor.
func (m *Model) InsertNewline() {
	m.deleteSelection(false)

	origin := m.cursor
	row, col := m.cursor.Row, m.cursor.Col
	line := m.lines[row]
	i := byteOffset(line, col)
	m.lines[row] = line[:i]
	m.lines = insertLines(m.lines, row+1, line[i:])
	m.cursor = Cursor{row + 1, 0}
	m.pushEdit(InsertNewline, "", nil, Pos{row, col, i}, 0, origin)
}

// InsertTab inserts a hard tab or pads with spaces to the next tab stop.
// It does nothing in single-line mode.
func (m *Model) InsertTab() bool {
	if m.singleLine {
		return false
	}
	modified := m.deleteSelection(false)
	if m.tabLen == 0 {
		return modified
	}
	if m.hardTabIndent {
		m.InsertChar('\t')
		return true
	}
	width := displayWidth(m.lines[m.cursor.Row], m.cursor.Col, m.tabLen)
	return m.insertPiece(strings.Repeat(" ", m.tabLen-width%m.tabLen)) || modified
}

// DeleteNewline joins the current line onto the previous one.
func (m *Model) DeleteNewline() bool {
	if m.deleteSelection(false) {
		return true
	}
	return m.deleteNewline(m.cursor)
}

func (m *Model) deleteNewline(origin Cursor) bool {
	row := m.cursor.Row
	if row == 0 {
		return false
	}
	line := m.lines[row]
	m.lines = removeLines(m.lines, row, row+1)
	prevEnd := len(m.lines[row-1])
	m.cursor = Cursor{row - 1, charCount(m.lines[row-1])}
	m.lines[row-1] += line
	m.pushEdit(DeleteNewline, "", nil, Pos{row, 0, 0}, prevEnd, origin)
	return true
}

// DeleteChar deletes the character before the cursor, joining lines at
// column zero.
func (m *Model) DeleteChar() bool {
	if m.deleteSelection(false) {
		return true
	}
	return m.deleteChar(m.cursor)
}

func (m *Model) deleteChar(origin Cursor) bool {
	row, col := m.cursor.Row, m.cursor.Col
	if col == 0 {
		return m.deleteNewline(origin)
	}
	line := m.lines[row]
	off := byteOffset(line, col-1)
	r, size := utf8.DecodeRuneInString(line[off:])
	if size == 0 {
		return false
	}
	m.lines[row] = line[:off] + line[off+size:]
	m.cursor.Col--
	m.pushEdit(DeleteChar, string(r), nil, Pos{row, col, off + size}, off, origin)
	return true
}

// DeleteNextChar deletes the character under the cursor, joining the next
// line at the end of a line.
func (m *Model) DeleteNextChar() bool {
	if m.deleteSelection(false) {
		return true
	}
	origin := m.cursor
	next, ok := nextCursor(MoveForward, m.cursor, m.lines, &m.viewport)
	if !ok {
		return false
	}
	m.cursor = next
	return m.deleteChar(origin)
}

// deletePiece deletes up to chars characters from col on the cursor row and
// yanks them.
func (m *Model) deletePiece(col, chars int, origin Cursor) bool {
	if chars <= 0 {
		return false
	}
	row := m.cursor.Row
	line := m.lines[row]
	if col >= charCount(line) {
		return false
	}
	i := byteOffset(line, col)
	rest := line[i:]
	n := byteOffset(rest, chars)
	removed := rest[:n]

	m.lines[row] = line[:i] + rest[n:]
	m.cursor = Cursor{row, col}
	m.pushEdit(DeleteStr, removed, nil, Pos{row, col + charCount(removed), i + n}, i, origin)
	m.setYank(YankPiece(removed))
	return true
}

// DeleteLineByEnd deletes from the cursor to the end of the line, or the
// line break when already there.
func (m *Model) DeleteLineByEnd() bool {
	if m.deleteSelection(false) {
		return true
	}
	if m.deletePiece(m.cursor.Col, math.MaxInt, m.cursor) {
		return true
	}
	return m.DeleteNextChar()
}

// DeleteLineByHead deletes from the start of the line to the cursor, or the
// preceding line break at column zero.
func (m *Model) DeleteLineByHead() bool {
	if m.deleteSelection(false) {
		return true
	}
	origin := m.cursor
	if m.deletePiece(0, m.cursor.Col, origin) {
		return true
	}
	return m.deleteNewline(origin)
}

// DeleteWord deletes back to the start of the previous word.
func (m *Model) DeleteWord() bool {
	if m.deleteSelection(false) {
		return true
	}
	origin := m.cursor
	c := m.cursor.Col
	if start, ok := wordStartBackward([]rune(m.lines[m.cursor.Row]), c); ok {
		return m.deletePiece(start, c-start, origin)
	}
	if c > 0 {
		return m.deletePiece(0, c, origin)
	}
	return m.deleteNewline(origin)
}

// DeleteNextWord deletes forward to the end of the next word.
func (m *Model) DeleteNextWord() bool {
	if m.deleteSelection(false) {
		return true
	}
	origin := m.cursor
	r, c := m.cursor.Row, m.cursor.Col
	line := []rune(m.lines[r])
	if end, ok := wordEndForward(line, c); ok {
		return m.deletePiece(c, end-c, origin)
	}
	if c < len(line) {
		return m.deletePiece(c, len(line)-c, origin)
	}
	if r+1 < len(m.lines) {
		m.cursor = Cursor{r + 1, 0}
		return m.deleteNewline(origin)
	}
	return false
}

// DeleteStr deletes n characters forward, counting a line break as one,
// and yanks them. It stops at the end of the buffer.
func (m *Model) DeleteStr(n int) bool {
	if m.deleteSelection(false) {
		return true
	}
	if n <= 0 {
		return false
	}
	start := m.cursor
	row, col := start.Row, start.Col
	last := len(m.lines) - 1
	remaining := n
	for {
		lineLen := charCount(m.lines[row])
		if remaining <= lineLen-col {
			col += remaining
			break
		}
		remaining -= lineLen - col
		if row == last {
			col = lineLen
			break
		}
		// The line break counts as one character.
		remaining--
		row++
		col = 0
	}
	end := Cursor{row, col}
	if end == start {
		return false
	}
	m.deleteRange(m.pos(start), m.pos(end), true, start)
	return true
}

func (m *Model) deleteRange(start, end Pos, yank bool, origin Cursor) {
	m.cursor = Cursor{start.Row, start.Col}

	if start.Row == end.Row {
		line := m.lines[start.Row]
		removed := line[start.Offset:end.Offset]
		m.lines[start.Row] = line[:start.Offset] + line[end.Offset:]
		if yank {
			m.setYank(YankPiece(removed))
		}
		m.pushEdit(DeleteStr, removed, nil, end, start.Offset, origin)
		return
	}

	first, lastLine := m.lines[start.Row], m.lines[end.Row]
	deleted := make([]string, 0, end.Row-start.Row+1)
	deleted = append(deleted, first[start.Offset:])
	deleted = append(deleted, m.lines[start.Row+1:end.Row]...)
	deleted = append(deleted, lastLine[:end.Offset])

	m.lines[start.Row] = first[:start.Offset] + lastLine[end.Offset:]
	m.lines = removeLines(m.lines, start.Row+1, end.Row+1)
	if yank {
		m.setYank(YankChunk(deleted))
	}
	m.pushEdit(DeleteChunk, "", deleted, end, start.Offset, origin)
}

// deleteSelection removes the selected text. Undo puts the cursor back at
// the start of the selection, whichever end it was extended from.
func (m *Model) deleteSelection(yank bool) bool {
	start, end, ok := m.takeSelectionRange()
	if !ok {
		return false
	}
	m.deleteRange(start, end, yank, Cursor{start.Row, start.Col})
	return true
}

// Clipboard operations

// Copy yanks the selection and cancels it. The text is not changed.
func (m *Model) Copy() {
	start, end, ok := m.takeSelectionRange()
	if !ok {
		return
	}
	if start.Row == end.Row {
		m.setYank(YankPiece(m.lines[start.Row][start.Offset:end.Offset]))
		return
	}
	chunk := make([]string, 0, end.Row-start.Row+1)
	chunk = append(chunk, m.lines[start.Row][start.Offset:])
	chunk = append(chunk, m.lines[start.Row+1:end.Row]...)
	chunk = append(chunk, m.lines[end.Row][:end.Offset])
	m.setYank(YankChunk(chunk))
}

// Cut deletes the selection into the yank buffer.
func (m *Model) Cut() bool {
	return m.deleteSelection(true)
}

// Paste replaces the selection, if any, with the yank buffer.
func (m *Model) Paste() bool {
	modified := m.deleteSelection(false)
	var inserted bool
	if m.yank.IsChunk() {
		inserted = m.insertChunk(m.yank.Lines())
	} else {
		inserted = m.insertPiece(m.yank.String())
	}
	return modified || inserted
}

// Undo reverts the last edit and restores the cursor from before it.
func (m *Model) Undo() bool {
	lines, cursor, ok := m.history.Undo(m.lines)
	if !ok {
		return false
	}
	m.lines = lines
	m.CancelSelection()
	m.cursor = jumpCursor(cursor.Row, cursor.Col, m.lines)
	return true
}

// Redo reapplies the last undone edit.
func (m *Model) Redo() bool {
	lines, cursor, ok := m.history.Redo(m.lines)
	if !ok {
		return false
	}
	m.lines = lines
	m.CancelSelection()
	m.cursor = jumpCursor(cursor.Row, cursor.Col, m.lines)
	return true
}
