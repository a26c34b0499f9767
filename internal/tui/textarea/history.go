package textarea

// DefaultHistorySize is the default number of undoable edits.
const DefaultHistorySize = 9999

// History is a bounded undo stack. Edits at or after index are the redo
// branch and are discarded by the next Push.
type History struct {
	edits []Edit
	index int
	max   int
}

// NewHistory creates a History holding at most size edits. A size of zero
// disables recording.
func NewHistory(size int) *History {
	return &History{max: size}
}

// Push records e, dropping the redo branch and, when full, the oldest edit.
func (h *History) Push(e Edit) {
	if h.max <= 0 {
		return
	}
	if len(h.edits) == h.max {
		h.edits = h.edits[1:]
		h.index = max(h.index-1, 0)
	}
	if h.index < len(h.edits) {
		h.edits = h.edits[:h.index]
	}
	h.edits = append(h.edits, e)
	h.index++
}

// Undo reverts the edit before index and returns the cursor to restore.
func (h *History) Undo(lines []string) ([]string, Cursor, bool) {
	if h.index == 0 {
		return lines, Cursor{}, false
	}
	h.index--
	e := h.edits[h.index]
	return e.undo(lines), e.CursorBefore, true
}

// Redo reapplies the edit at index and returns the cursor to restore.
func (h *History) Redo(lines []string) ([]string, Cursor, bool) {
	if h.index == len(h.edits) {
		return lines, Cursor{}, false
	}
	e := h.edits[h.index]
	h.index++
	return e.redo(lines), e.CursorAfter, true
}

// Len returns the number of recorded edits.
func (h *History) Len() int { return len(h.edits) }

// Index returns the position between the undo and redo branches.
func (h *History) Index() int { return h.index }

// Max returns the capacity.
func (h *History) Max() int { return h.max }
