package textarea

import "fmt"

// EditKind identifies what an Edit changed.
type EditKind int

const (
	InsertChar EditKind = iota
	DeleteChar
	InsertNewline
	DeleteNewline
	InsertStr
	DeleteStr
	InsertChunk
	DeleteChunk
)

var editKindNames = [...]string{
	InsertChar:    "InsertChar",
	DeleteChar:    "DeleteChar",
	InsertNewline: "InsertNewline",
	DeleteNewline: "DeleteNewline",
	InsertStr:     "InsertStr",
	DeleteStr:     "DeleteStr",
	InsertChunk:   "InsertChunk",
	DeleteChunk:   "DeleteChunk",
}

func (k EditKind) String() string {
	if k < 0 || int(k) >= len(editKindNames) {
		return fmt.Sprintf("EditKind(%d)", int(k))
	}
	return editKindNames[k]
}

func (k EditKind) invert() EditKind {
	// Insert and delete kinds are paired as even/odd neighbours.
	return k ^ 1
}

// Pos is a cursor position that also carries the byte offset of Col within
// its line.
type Pos struct {
	Row    int
	Col    int
	Offset int
}

// Edit is one undoable change. Text holds the character or string for the
// char and str kinds; Chunk holds the lines for the chunk kinds.
//
// Before and After are the positions Apply works from. CursorBefore and
// CursorAfter are where the user's cursor was before and after the change
// and are restored by undo and redo.
type Edit struct {
	Kind  EditKind
	Text  string
	Chunk []string

	Before Pos
	After  Pos

	CursorBefore Cursor
	CursorAfter  Cursor
}

func (e Edit) redo(lines []string) []string {
	return applyEdit(e.Kind, e.Text, e.Chunk, lines, e.Before, e.After)
}

func (e Edit) undo(lines []string) []string {
	return applyEdit(e.Kind.invert(), e.Text, e.Chunk, lines, e.After, e.Before)
}

func applyEdit(kind EditKind, text string, chunk []string, lines []string, before, after Pos) []string {
	switch kind {
	case InsertChar, InsertStr:
		line := lines[before.Row]
		lines[before.Row] = line[:before.Offset] + text + line[before.Offset:]
	case DeleteChar:
		line := lines[before.Row]
		lines[before.Row] = line[:after.Offset] + line[after.Offset+len(text):]
	case DeleteStr:
		line := lines[after.Row]
		lines[after.Row] = line[:after.Offset] + line[after.Offset+len(text):]
	case InsertNewline:
		line := lines[before.Row]
		lines[before.Row] = line[:before.Offset]
		lines = insertLines(lines, before.Row+1, line[before.Offset:])
	case DeleteNewline:
		line := lines[before.Row]
		lines = removeLines(lines, before.Row, before.Row+1)
		lines[before.Row-1] += line
	case InsertChunk:
		n := len(chunk)
		line := lines[before.Row]
		first := line[:before.Offset] + chunk[0]
		last := chunk[n-1] + line[before.Offset:]
		lines[before.Row] = first
		inserted := make([]string, 0, n-1)
		inserted = append(inserted, chunk[1:n-1]...)
		inserted = append(inserted, last)
		lines = insertLines(lines, before.Row+1, inserted...)
	case DeleteChunk:
		n := len(chunk)
		last := lines[after.Row+n-1][len(chunk[n-1]):]
		lines[after.Row] = lines[after.Row][:after.Offset] + last
		lines = removeLines(lines, after.Row+1, after.Row+n)
	}
	return lines
}

func insertLines(lines []string, at int, ins ...string) []string {
	out := make([]string, 0, len(lines)+len(ins))
	out = append(out, lines[:at]...)
	out = append(out, ins...)
	return append(out, lines[at:]...)
}

func removeLines(lines []string, from, to int) []string {
	return append(lines[:from], lines[to:]...)
}
