package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/kanban"
)

const (
	minColumnWidth = 15
	columnGap      = 4
	linesPerCard   = 2
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// KanbanView renders one board as a column per card status.
type KanbanView struct {
	width  int
	height int
	isDark bool
	colors ThemeColors
	zones  *zone.Manager

	board     *kanban.Board
	filterTag string

	// Cards per status, refreshed by Refresh rather than on every render.
	columns [][]*kanban.Card

	scrollOffset int // in cards, shared by all columns
	focused      bool
	focusedCol   int
	selected     []int // selected card index per column

	renderedLines []string
}

// NewKanbanView creates a board view. zones may be nil when mouse support
// is not needed.
func NewKanbanView(isDark bool, zones *zone.Manager) *KanbanView {
	n := len(kanban.Statuses())
	return &KanbanView{
		isDark:   isDark,
		colors:   NewThemeColors(isDark),
		zones:    zones,
		columns:  make([][]*kanban.Card, n),
		selected: make([]int, n),
		focused:  true,
	}
}

// SetSize sets the view dimensions.
func (k *KanbanView) SetSize(width, height int) {
	k.width = width
	k.height = height
	k.ensureVisible()
}

// SetDark switches between the light and dark palette.
func (k *KanbanView) SetDark(isDark bool) {
	k.isDark = isDark
	k.colors = NewThemeColors(isDark)
}

// SetBoard shows b and resets the selection.
func (k *KanbanView) SetBoard(b *kanban.Board) {
	k.board = b
	k.scrollOffset = 0
	for i := range k.selected {
		k.selected[i] = 0
	}
	k.Refresh()
}

// Board returns the board being shown, or nil.
func (k *KanbanView) Board() *kanban.Board {
	return k.board
}

// SetFilterTag limits the view to cards carrying tag. An empty tag clears
// the filter.
func (k *KanbanView) SetFilterTag(tag string) {
	k.filterTag = tag
	k.Refresh()
}

// FilterTag returns the active tag filter.
func (k *KanbanView) FilterTag() string {
	return k.filterTag
}

// Refresh regroups the board's cards by status. Call it after the board
// changes.
func (k *KanbanView) Refresh() {
	for i, status := range kanban.Statuses() {
		k.columns[i] = k.columns[i][:0]
		if k.board == nil {
			continue
		}
		for _, c := range k.board.CardsWithStatus(status) {
			if k.filterTag != "" && !c.HasTag(k.filterTag) {
				continue
			}
			k.columns[i] = append(k.columns[i], c)
		}
		k.selected[i] = max(0, min(k.selected[i], len(k.columns[i])-1))
	}
	k.ensureVisible()
}

// CardCount returns the number of cards currently shown.
func (k *KanbanView) CardCount() int {
	n := 0
	for _, col := range k.columns {
		n += len(col)
	}
	return n
}

// SetFocused sets the focus state of the kanban view.
func (k *KanbanView) SetFocused(focused bool) {
	k.focused = focused
}

// FocusedColumn returns the index of the focused status column.
func (k *KanbanView) FocusedColumn() int {
	return k.focusedCol
}

// MoveColumn moves the focus delta columns, saturating at the edges.
func (k *KanbanView) MoveColumn(delta int) {
	k.focusedCol = max(0, min(k.focusedCol+delta, len(k.columns)-1))
	k.ensureVisible()
}

// MoveCard moves the selection in the focused column.
func (k *KanbanView) MoveCard(delta int) {
	col := k.columns[k.focusedCol]
	if len(col) == 0 {
		return
	}
	k.selected[k.focusedCol] = max(0, min(k.selected[k.focusedCol]+delta, len(col)-1))
	k.ensureVisible()
}

// SelectedCard returns the selected card of the focused column, or nil.
func (k *KanbanView) SelectedCard() *kanban.Card {
	col := k.columns[k.focusedCol]
	if len(col) == 0 {
		return nil
	}
	return col[k.selected[k.focusedCol]]
}

// SelectCard focuses the card with id if it is shown.
func (k *KanbanView) SelectCard(id uuid.UUID) bool {
	for ci, col := range k.columns {
		for i, c := range col {
			if c.ID == id {
				k.focusedCol = ci
				k.selected[ci] = i
				k.ensureVisible()
				return true
			}
		}
	}
	return false
}

// ColumnWidth returns the width of each column inside its border, or 0 when
// the view is too narrow to draw.
func (k *KanbanView) ColumnWidth() int {
	n := len(k.columns)
	// borders, gaps between columns and room for the scrollbar
	w := (k.width - 2*n - columnGap/2*(n-1) - 2) / n
	if w < minColumnWidth {
		return 0
	}
	return w
}

func (k *KanbanView) visibleCards() int {
	return max(1, (k.height-4)/linesPerCard) // borders, header and separator
}

func (k *KanbanView) maxScrollOffset() int {
	longest := 0
	for _, col := range k.columns {
		longest = max(longest, len(col))
	}
	return max(0, longest-k.visibleCards())
}

// ScrollOffset returns the index of the first card drawn in each column.
func (k *KanbanView) ScrollOffset() int {
	return k.scrollOffset
}

// Scroll moves the view by n cards.
func (k *KanbanView) Scroll(n int) {
	k.scrollOffset = max(0, min(k.scrollOffset+n, k.maxScrollOffset()))
}

// NeedsScrollbar returns true if a column has more cards than fit.
func (k *KanbanView) NeedsScrollbar() bool {
	return k.maxScrollOffset() > 0
}

func (k *KanbanView) ensureVisible() {
	if k.height == 0 {
		return
	}
	sel := k.selected[k.focusedCol]
	visible := k.visibleCards()
	switch {
	case sel < k.scrollOffset:
		k.scrollOffset = sel
	case sel >= k.scrollOffset+visible:
		k.scrollOffset = sel - visible + 1
	}
	k.scrollOffset = max(0, min(k.scrollOffset, k.maxScrollOffset()))
}

func cardZoneID(id uuid.UUID) string {
	return "card:" + id.String()
}

func (k *KanbanView) mark(id, s string) string {
	if k.zones == nil {
		return s
	}
	return k.zones.Mark(id, s)
}

func statusColor(c ThemeColors, s kanban.Status) lipgloss.Color {
	switch s {
	case kanban.StatusComplete:
		return c.StatusComplete
	case kanban.StatusStale:
		return c.StatusStale
	default:
		return c.StatusActive
	}
}

func cardMeta(c *kanban.Card) string {
	parts := []string{string(c.Priority)}
	if c.DueDate != nil {
		parts = append(parts, "due "+c.DueDate.Format("2006-01-02"))
	}
	for _, tag := range c.Tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " · ")
}

// Render renders the board using the cards grouped by the last Refresh.
func (k *KanbanView) Render() string {
	columnWidth := k.ColumnWidth()
	if columnWidth == 0 || k.height < 5 {
		k.renderedLines = nil
		return ""
	}
	c := k.colors

	headerStyle := lipgloss.NewStyle().Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(c.TextNormal)
	metaStyle := lipgloss.NewStyle().Foreground(c.TextDim).Italic(true)
	selectedStyle := lipgloss.NewStyle().Background(c.Selected).Bold(true)

	maxHeight := k.height - 2 // borders
	visible := k.visibleCards()
	textWidth := columnWidth - 2

	var columnViews []string
	for colIdx, status := range kanban.Statuses() {
		cards := k.columns[colIdx]
		borderColor := c.BorderNormal
		if k.focused && k.focusedCol == colIdx {
			borderColor = c.BorderFocused
		}
		panelStyle := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Width(columnWidth)

		var content strings.Builder
		header := fmt.Sprintf("%s (%d)", status, len(cards))
		content.WriteString(headerStyle.Foreground(statusColor(c, status)).Render(header))
		content.WriteString("\n")
		content.WriteString(strings.Repeat("─", max(0, textWidth)))

		linesUsed := 2
		end := min(len(cards), k.scrollOffset+visible)
		for i := k.scrollOffset; i < end; i++ {
			card := cards[i]
			name := constants.TruncateWithWidth(card.Name, textWidth)
			meta := constants.TruncateWithWidth(cardMeta(card), textWidth)
			if k.focused && colIdx == k.focusedCol && i == k.selected[colIdx] {
				name = selectedStyle.Render(name)
			} else {
				name = nameStyle.Render(name)
			}
			block := name + "\n" + metaStyle.Render(meta)
			content.WriteString("\n")
			content.WriteString(k.mark(cardZoneID(card.ID), block))
			linesUsed += linesPerCard
		}
		for linesUsed < maxHeight {
			content.WriteString("\n")
			linesUsed++
		}

		columnViews = append(columnViews, panelStyle.Render(content.String()))
		if colIdx < len(k.columns)-1 {
			columnViews = append(columnViews, strings.Repeat(" ", columnGap/2))
		}
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
	if k.NeedsScrollbar() {
		scrollbar := renderVerticalScrollbar(k.maxScrollOffset()+visible, visible, k.scrollOffset, k.isDark)
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, " ", scrollbar)
	}

	k.cacheTextForCopy(board)
	return board
}

// HandleMouse selects a clicked card or scrolls on the wheel. It reports
// whether the event was used.
func (k *KanbanView) HandleMouse(msg tea.MouseMsg) bool {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		k.Scroll(-1)
		return true
	case msg.Button == tea.MouseButtonWheelDown:
		k.Scroll(1)
		return true
	case msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease || k.zones == nil:
		return false
	}
	for ci, col := range k.columns {
		for i, card := range col {
			if k.zones.Get(cardZoneID(card.ID)).InBounds(msg) {
				k.focusedCol = ci
				k.selected[ci] = i
				return true
			}
		}
	}
	return false
}

// cacheTextForCopy keeps a plain text copy of the last render.
func (k *KanbanView) cacheTextForCopy(board string) {
	lines := strings.Split(board, "\n")
	k.renderedLines = make([]string, len(lines))
	for i, line := range lines {
		k.renderedLines[i] = strings.TrimRight(ansi.Strip(line), " ")
	}
}

// PlainText returns the last render without styling.
func (k *KanbanView) PlainText() string {
	return strings.Join(k.renderedLines, "\n")
}

// CopyView copies the last render to the system clipboard as plain text.
func (k *KanbanView) CopyView() error {
	if len(k.renderedLines) == 0 {
		return nil
	}
	return writeClipboard(k.PlainText())
}
