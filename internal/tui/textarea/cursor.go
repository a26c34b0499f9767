package textarea

import "unicode/utf8"

// Cursor is a (row, column) position in characters.
type Cursor struct {
	Row int
	Col int
}

// Less orders cursors by row, then column.
func (c Cursor) Less(o Cursor) bool {
	return c.Row < o.Row || (c.Row == o.Row && c.Col < o.Col)
}

// CursorMove is a cursor motion.
type CursorMove int

const (
	MoveForward CursorMove = iota
	MoveBack
	MoveUp
	MoveDown
	MoveHead
	MoveEnd
	MoveTop
	MoveBottom
	MoveWordForward
	MoveWordBack
	MoveParagraphForward
	MoveParagraphBack
	MoveInViewport
)

var cursorMoveNames = [...]string{
	"Forward", "Back", "Up", "Down", "Head", "End", "Top", "Bottom",
	"WordForward", "WordBack", "ParagraphForward", "ParagraphBack", "InViewport",
}

func (m CursorMove) String() string {
	if m < 0 || int(m) >= len(cursorMoveNames) {
		return "Unknown"
	}
	return cursorMoveNames[m]
}

// vertical motions are disabled in single-line mode.
func (m CursorMove) vertical() bool {
	switch m {
	case MoveUp, MoveDown, MoveTop, MoveBottom, MoveParagraphForward, MoveParagraphBack:
		return true
	}
	return false
}

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

func fitCol(col int, line string) int {
	return min(col, charCount(line))
}

// byteOffset returns the byte offset of column col in line, or len(line)
// when col is at or past the end.
func byteOffset(line string, col int) int {
	i := 0
	for off := range line {
		if i == col {
			return off
		}
		i++
	}
	return len(line)
}

func isBlank(line string) bool {
	return line == ""
}

// nextCursor computes where m moves c. ok is false when the motion is
// rejected and the cursor should stay put.
func nextCursor(m CursorMove, c Cursor, lines []string, vp *Viewport) (next Cursor, ok bool) {
	row, col := c.Row, c.Col
	last := len(lines) - 1

	switch m {
	case MoveForward:
		if col >= charCount(lines[row]) {
			if row < last {
				return Cursor{row + 1, 0}, true
			}
			return c, false
		}
		return Cursor{row, col + 1}, true
	case MoveBack:
		if col == 0 {
			if row > 0 {
				return Cursor{row - 1, charCount(lines[row-1])}, true
			}
			return c, false
		}
		return Cursor{row, col - 1}, true
	case MoveUp:
		if row == 0 {
			return c, false
		}
		return Cursor{row - 1, fitCol(col, lines[row-1])}, true
	case MoveDown:
		if row >= last {
			return c, false
		}
		return Cursor{row + 1, fitCol(col, lines[row+1])}, true
	case MoveHead:
		return Cursor{row, 0}, true
	case MoveEnd:
		return Cursor{row, charCount(lines[row])}, true
	case MoveTop:
		return Cursor{0, 0}, true
	case MoveBottom:
		return Cursor{last, charCount(lines[last])}, true
	case MoveWordForward:
		if next, found := wordStartForward([]rune(lines[row]), col); found {
			return Cursor{row, next}, true
		}
		if row < last {
			return Cursor{row + 1, 0}, true
		}
		return Cursor{row, charCount(lines[row])}, true
	case MoveWordBack:
		if prev, found := wordStartBackward([]rune(lines[row]), col); found {
			return Cursor{row, prev}, true
		}
		if row > 0 {
			return Cursor{row - 1, charCount(lines[row-1])}, true
		}
		return Cursor{row, 0}, true
	case MoveParagraphForward:
		for r := row + 1; r <= last; r++ {
			if isBlank(lines[r]) {
				return Cursor{r, 0}, true
			}
		}
		return Cursor{last, charCount(lines[last])}, true
	case MoveParagraphBack:
		if row == 0 {
			return c, false
		}
		for r := row - 1; r >= 0; r-- {
			if isBlank(lines[r]) {
				return Cursor{r, 0}, true
			}
		}
		return Cursor{0, 0}, true
	case MoveInViewport:
		_, _, width, height := vp.Rect()
		if width == 0 || height == 0 {
			return c, false
		}
		rowTop, colTop, rowBottom, colBottom := vp.bounds()
		r := min(clamp(row, rowTop, rowBottom), last)
		return Cursor{r, fitCol(clamp(col, colTop, colBottom), lines[r])}, true
	}
	return c, false
}

// jumpCursor clamps (row, col) into the buffer.
func jumpCursor(row, col int, lines []string) Cursor {
	row = clamp(row, 0, len(lines)-1)
	return Cursor{row, fitCol(max(col, 0), lines[row])}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
