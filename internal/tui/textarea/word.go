package textarea

import "unicode"

type charKind int

const (
	kindSpace charKind = iota
	kindPunct
	kindOther
)

func kindOf(r rune) charKind {
	switch {
	case unicode.IsSpace(r):
		return kindSpace
	case r <= unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
		return kindPunct
	default:
		return kindOther
	}
}

// wordStartForward returns the column of the next word start after col.
func wordStartForward(line []rune, col int) (int, bool) {
	if col >= len(line) {
		return 0, false
	}
	prev := kindOf(line[col])
	for i := col + 1; i < len(line); i++ {
		cur := kindOf(line[i])
		if cur != kindSpace && cur != prev {
			return i, true
		}
		prev = cur
	}
	return 0, false
}

// wordEndForward returns the column just past the word containing or
// following col.
func wordEndForward(line []rune, col int) (int, bool) {
	if col >= len(line) {
		return 0, false
	}
	prev := kindOf(line[col])
	for i := col + 1; i < len(line); i++ {
		cur := kindOf(line[i])
		if prev != kindSpace && cur != prev {
			return i, true
		}
		prev = cur
	}
	return 0, false
}

// wordStartBackward returns the column where the word left of col begins.
func wordStartBackward(line []rune, col int) (int, bool) {
	if col > len(line) {
		col = len(line)
	}
	if col == 0 {
		return 0, false
	}
	cur := kindOf(line[col-1])
	for i := col - 2; i >= 0; i-- {
		next := kindOf(line[i])
		if cur != kindSpace && next != cur {
			return i + 1, true
		}
		cur = next
	}
	if cur != kindSpace {
		return 0, true
	}
	return 0, false
}
