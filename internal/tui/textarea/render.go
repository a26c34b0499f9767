package textarea

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/donghojung/kan/internal/tui/textarea/internal/memoization"
)

type boundaryKind int

// Boundaries at the same offset sort End, Select, Cursor so a closing span
// pops before the next one opens.
const (
	boundaryEnd boundaryKind = iota
	boundarySelect
	boundaryCursor
)

type boundary struct {
	kind   boundaryKind
	offset int
	style  lipgloss.Style
}

type segment struct {
	text  string
	style lipgloss.Style
}

// lineFormatter splits one line into styled segments.
type lineFormatter struct {
	line        string
	boundaries  []boundary
	base        lipgloss.Style
	cursorAtEnd bool
	selectAtEnd bool
	state       StyleState
}

func (f *lineFormatter) cursor(col int) {
	f.base = f.state.CursorLine.Inherit(f.state.Text)
	start := byteOffset(f.line, col)
	if start >= len(f.line) {
		f.cursorAtEnd = true
		return
	}
	_, size := utf8.DecodeRuneInString(f.line[start:])
	f.boundaries = append(f.boundaries,
		boundary{kind: boundaryCursor, offset: start, style: f.state.Cursor},
		boundary{kind: boundaryEnd, offset: start + size},
	)
}

func (f *lineFormatter) selection(row int, start, end Pos) {
	var from, to int
	switch {
	case row == start.Row && start.Row == end.Row:
		from, to = start.Offset, end.Offset
	case row == start.Row:
		from, to = start.Offset, len(f.line)
		f.selectAtEnd = true
	case row == end.Row:
		from, to = 0, end.Offset
	case start.Row < row && row < end.Row:
		from, to = 0, len(f.line)
		f.selectAtEnd = true
	default:
		return
	}
	if from != to {
		f.boundaries = append(f.boundaries,
			boundary{kind: boundarySelect, offset: from, style: f.state.Selection},
			boundary{kind: boundaryEnd, offset: to},
		)
	}
}

func (f *lineFormatter) plain() bool {
	return len(f.boundaries) == 0 && !f.cursorAtEnd && !f.selectAtEnd
}

func (f *lineFormatter) segments(tabLen int, mask rune) []segment {
	b := displayBuilder{tabLen: tabLen, mask: mask}
	var segs []segment
	add := func(text string, style lipgloss.Style) {
		if text != "" {
			segs = append(segs, segment{text: b.build(text), style: style})
		}
	}

	sort.SliceStable(f.boundaries, func(i, j int) bool {
		bi, bj := f.boundaries[i], f.boundaries[j]
		if bi.offset != bj.offset {
			return bi.offset < bj.offset
		}
		return bi.kind < bj.kind
	})

	style, start := f.base, 0
	var stack []lipgloss.Style
	for _, bd := range f.boundaries {
		if start < bd.offset {
			add(f.line[start:bd.offset], style)
		}
		if bd.kind == boundaryEnd {
			style = f.base
			if n := len(stack); n > 0 {
				style, stack = stack[n-1], stack[:n-1]
			}
		} else {
			stack = append(stack, style)
			style = bd.style
		}
		start = max(start, bd.offset)
	}
	add(f.line[start:], style)

	switch {
	case f.cursorAtEnd:
		segs = append(segs, segment{text: " ", style: f.state.Cursor})
	case f.selectAtEnd:
		segs = append(segs, segment{text: " ", style: f.state.Selection})
	}
	return segs
}

// displayBuilder expands tabs to tab stops and applies the mask. Its column
// counter runs across all segments of one line.
type displayBuilder struct {
	tabLen int
	mask   rune
	col    int
}

func (b *displayBuilder) build(s string) string {
	if b.mask != 0 {
		return strings.Repeat(string(b.mask), utf8.RuneCountInString(s))
	}
	if !strings.ContainsRune(s, '\t') {
		b.col += runewidth.StringWidth(s)
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if r != '\t' {
			sb.WriteRune(r)
			b.col += runewidth.RuneWidth(r)
			continue
		}
		if b.tabLen > 0 {
			n := b.tabLen - b.col%b.tabLen
			sb.WriteString(strings.Repeat(" ", n))
			b.col += n
		}
	}
	return sb.String()
}

// clip drops the first skip cells and keeps at most avail cells. A negative
// avail keeps everything. Wide characters cut by either edge become spaces.
func clip(segs []segment, skip, avail int) []segment {
	if skip == 0 && avail < 0 {
		return segs
	}
	out := make([]segment, 0, len(segs))
	col := 0
	for _, s := range segs {
		var sb strings.Builder
		for _, r := range s.text {
			w := runewidth.RuneWidth(r)
			end := col + w
			switch {
			case end <= skip:
			case avail >= 0 && end > skip+avail:
				if col < skip+avail {
					sb.WriteString(strings.Repeat(" ", skip+avail-col))
				}
			case col < skip:
				sb.WriteString(strings.Repeat(" ", end-skip))
			default:
				sb.WriteRune(r)
			}
			col = end
		}
		if sb.Len() > 0 {
			out = append(out, segment{text: sb.String(), style: s.style})
		}
		if avail >= 0 && col >= skip+avail {
			break
		}
	}
	return out
}

func renderSegments(segs []segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.style.Render(s.text))
	}
	return sb.String()
}

func numDigits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

func (m *Model) styleState() StyleState {
	if m.focused {
		return m.Styles.Focused
	}
	return m.Styles.Blurred
}

func (m *Model) gutterWidth() int {
	if !m.showLineNumbers {
		return 0
	}
	return numDigits(len(m.lines)) + 3
}

// View renders the visible lines and publishes the viewport. A zero width
// or height means unbounded in that direction.
func (m *Model) View() string {
	state := m.styleState()
	gutter := m.gutterWidth()
	textWidth := -1
	if m.width > 0 {
		textWidth = max(m.width-gutter, 1)
	}

	if m.Placeholder != "" && m.IsEmpty() {
		m.PublishViewport(max(textWidth, 0), m.height)
		return state.Base.Render(m.renderPlaceholder(state))
	}

	top, left := m.PublishViewport(max(textWidth, 0), m.height)
	bottom := len(m.lines)
	if m.height > 0 {
		bottom = min(top+m.height, len(m.lines))
	}
	selStart, selEnd, hasSel := m.selectionRange()

	out := make([]string, 0, bottom-top)
	for row := top; row < bottom; row++ {
		line := m.lines[row]
		f := lineFormatter{line: line, base: state.Text, state: state}
		if m.focused && row == m.cursor.Row {
			f.cursor(m.cursor.Col)
		}
		if hasSel {
			f.selection(row, selStart, selEnd)
		}

		skip := 0
		if left > 0 {
			skip = m.maskedWidth(line, left)
		}

		var rendered string
		if f.plain() {
			rendered = m.renderPlain(line, f, skip, textWidth)
		} else {
			rendered = renderSegments(clip(f.segments(m.tabLen, m.mask), skip, textWidth))
		}
		if gutter > 0 {
			rendered = state.LineNumber.Render(fmt.Sprintf("%*d) ", gutter-2, row+1)) + rendered
		}
		if m.width > 0 {
			rendered = lipgloss.PlaceHorizontal(m.width, m.alignment.position(), rendered)
		}
		out = append(out, rendered)
	}
	return state.Base.Render(strings.Join(out, "\n"))
}

func (m *Model) renderPlain(line string, f lineFormatter, skip, avail int) string {
	key := memoization.HString(fmt.Sprintf("%t|%d|%d|%d|%d|%s", m.focused, m.tabLen, m.mask, skip, avail, line))
	if s, ok := m.cache.Get(key); ok {
		return s
	}
	s := renderSegments(clip(f.segments(m.tabLen, m.mask), skip, avail))
	m.cache.Set(key, s)
	return s
}

func (m *Model) renderPlaceholder(state StyleState) string {
	lines := strings.Split(m.Placeholder, "\n")
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	for i, l := range lines {
		if m.width > 0 {
			l = runewidth.Truncate(l, m.width, "")
		}
		lines[i] = state.Placeholder.Render(l)
		if m.width > 0 {
			lines[i] = lipgloss.PlaceHorizontal(m.width, m.alignment.position(), lines[i])
		}
	}
	return strings.Join(lines, "\n")
}

// maskedWidth is displayWidth honouring the mask character.
func (m *Model) maskedWidth(line string, col int) int {
	if m.mask != 0 {
		return min(col, charCount(line)) * runewidth.RuneWidth(m.mask)
	}
	return displayWidth(line, col, m.tabLen)
}

// CursorScreenPos returns the cursor cell relative to the top-left of the
// last rendered view, for left aligned buffers.
func (m *Model) CursorScreenPos() (x, y int) {
	top, left := m.viewport.ScrollTop()
	line := m.lines[m.cursor.Row]
	x = m.gutterWidth() + m.maskedWidth(line, m.cursor.Col) - m.maskedWidth(line, left)
	return max(x, 0), m.cursor.Row - top
}
