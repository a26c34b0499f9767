package textarea

import "strings"

// Yank is the internal clipboard: a single piece without newlines, or a
// chunk of at least two lines.
type Yank struct {
	piece string
	chunk []string
}

// YankPiece returns a Yank holding s.
func YankPiece(s string) Yank {
	return Yank{piece: s}
}

// YankChunk returns a Yank holding lines. Fewer than two lines collapse to a
// piece.
func YankChunk(lines []string) Yank {
	switch len(lines) {
	case 0:
		return Yank{}
	case 1:
		return Yank{piece: lines[0]}
	}
	return Yank{chunk: append([]string(nil), lines...)}
}

// IsChunk reports whether the yank spans several lines.
func (y Yank) IsChunk() bool {
	return len(y.chunk) > 1
}

// Lines returns the yank as lines; a piece is a single line.
func (y Yank) Lines() []string {
	if y.IsChunk() {
		return append([]string(nil), y.chunk...)
	}
	return []string{y.piece}
}

// String joins the yank with newlines.
func (y Yank) String() string {
	if y.IsChunk() {
		return strings.Join(y.chunk, "\n")
	}
	return y.piece
}
