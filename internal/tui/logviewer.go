package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/donghojung/kan/internal/logging"
)

// LogViewer pages through the cold ring with vim-like navigation. The hot
// ring is shown by RenderLogTail instead.
type LogViewer struct {
	logger   *logging.Logger
	viewport viewport.Model
	records  []logging.Record
	lines    []string // filtered, formatted records
	tailMode bool
	minLevel logging.Level
	colors   ThemeColors

	searchMode      bool
	searchQuery     string
	searchInput     string
	searchMatches   []int // indices into lines
	currentMatchIdx int
}

// NewLogViewer creates a viewer over l. Records below minLevel are hidden
// until the filter is cycled with tab.
func NewLogViewer(l *logging.Logger, minLevel logging.Level, isDark bool) *LogViewer {
	return &LogViewer{
		logger:   l,
		viewport: viewport.New(80, 20),
		tailMode: true,
		minLevel: minLevel,
		colors:   NewThemeColors(isDark),
	}
}

// SetSize sets the viewer dimensions, keeping two lines for the header
// and the status line.
func (m *LogViewer) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.render()
}

// MinLevel returns the current level filter.
func (m *LogViewer) MinLevel() logging.Level {
	return m.minLevel
}

// Lines returns the formatted records that pass the level filter.
func (m *LogViewer) Lines() []string {
	return m.lines
}

// Refresh reloads the cold ring. It is called after every drain.
func (m *LogViewer) Refresh() {
	m.records = m.logger.Cold()
	m.rebuild()
}

func (m *LogViewer) rebuild() {
	m.lines = m.lines[:0]
	for _, r := range m.records {
		if r.Level >= m.minLevel {
			m.lines = append(m.lines, r.Format())
		}
	}
	m.findMatches()
	m.render()
}

func (m *LogViewer) levelStyle(line string) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(m.colors.TextNormal)
	switch {
	case strings.Contains(line, "] [ERROR] ["):
		return style.Foreground(m.colors.Error)
	case strings.Contains(line, "] [WARN ] ["):
		return style.Foreground(m.colors.Warning)
	case strings.Contains(line, "] [DEBUG] ["), strings.Contains(line, "] [TRACE] ["):
		return style.Foreground(m.colors.TextDim)
	}
	return style
}

func (m *LogViewer) render() {
	var b strings.Builder
	for i, line := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.highlightSearchMatches(m.levelStyle(line).Render(line), line, m.isCurrentMatchLine(i)))
	}
	m.viewport.SetContent(b.String())
	if m.tailMode {
		m.viewport.GotoBottom()
	}
}

// HandleKey processes a key. It returns true when the viewer should close.
func (m *LogViewer) HandleKey(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	if m.searchMode {
		m.handleSearchKey(msg)
		return false, nil
	}

	switch msg.String() {
	case "q", "ctrl+l":
		return true, nil
	case "esc":
		if m.searchQuery != "" {
			m.clearSearch()
			return false, nil
		}
		return true, nil
	case "/":
		m.searchMode = true
		m.searchInput = ""
		return false, nil
	case "n":
		m.nextMatch(1)
		return false, nil
	case "N":
		m.nextMatch(-1)
		return false, nil
	case "g":
		m.tailMode = false
		m.viewport.GotoTop()
		return false, nil
	case "G":
		m.tailMode = true
		m.viewport.GotoBottom()
		return false, nil
	case "tab":
		// trace -> debug -> info -> warn -> error -> trace
		m.minLevel++
		if m.minLevel > logging.LevelError {
			m.minLevel = logging.LevelTrace
		}
		m.rebuild()
		return false, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	m.tailMode = m.viewport.AtBottom()
	return false, cmd
}

// HandleMouse scrolls on the wheel.
func (m *LogViewer) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.tailMode = m.viewport.AtBottom()
	return cmd
}

func (m *LogViewer) handleSearchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput = ""
	case tea.KeyEnter:
		m.searchMode = false
		m.searchQuery = m.searchInput
		m.currentMatchIdx = 0
		m.findMatches()
		m.scrollToMatch(0)
	case tea.KeyBackspace:
		if r := []rune(m.searchInput); len(r) > 0 {
			m.searchInput = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.searchInput += string(msg.Runes)
	}
}

func (m *LogViewer) clearSearch() {
	m.searchQuery = ""
	m.searchInput = ""
	m.searchMatches = nil
	m.currentMatchIdx = 0
	m.render()
}

// findMatches finds all lines containing the search query.
func (m *LogViewer) findMatches() {
	m.searchMatches = nil
	if m.searchQuery == "" {
		return
	}
	query := strings.ToLower(m.searchQuery)
	for i, line := range m.lines {
		if strings.Contains(strings.ToLower(line), query) {
			m.searchMatches = append(m.searchMatches, i)
		}
	}
	if m.currentMatchIdx >= len(m.searchMatches) {
		m.currentMatchIdx = 0
	}
}

// Matches returns the indices of the lines matching the search.
func (m *LogViewer) Matches() []int {
	return m.searchMatches
}

func (m *LogViewer) nextMatch(dir int) {
	if len(m.searchMatches) == 0 {
		return
	}
	m.currentMatchIdx = (m.currentMatchIdx + dir + len(m.searchMatches)) % len(m.searchMatches)
	m.scrollToMatch(m.currentMatchIdx)
}

// scrollToMatch centers the match at idx unless it is already visible.
func (m *LogViewer) scrollToMatch(idx int) {
	if idx < 0 || idx >= len(m.searchMatches) {
		m.render()
		return
	}
	m.tailMode = false
	m.render()
	line := m.searchMatches[idx]
	top := m.viewport.YOffset
	if line >= top && line < top+m.viewport.Height {
		return
	}
	m.viewport.SetYOffset(line - m.viewport.Height/2)
}

func (m *LogViewer) isCurrentMatchLine(i int) bool {
	return len(m.searchMatches) > 0 && m.searchMatches[m.currentMatchIdx] == i
}

// highlightSearchMatches marks the matching lines. Styled text cannot be
// split safely, so a match restyles the whole plain line.
func (m *LogViewer) highlightSearchMatches(styled, plain string, current bool) string {
	if m.searchQuery == "" || !strings.Contains(strings.ToLower(plain), strings.ToLower(m.searchQuery)) {
		return styled
	}
	style := lipgloss.NewStyle().Background(m.colors.Selected)
	if current {
		style = style.Bold(true).Foreground(m.colors.Accent)
	}
	return style.Render(plain)
}

// View renders the viewer.
func (m *LogViewer) View() string {
	c := m.colors
	header := lipgloss.NewStyle().Bold(true).Foreground(c.Accent).
		Render(fmt.Sprintf("Logs (%s+) %d records, %d seen", m.minLevel.Name(), len(m.lines), m.logger.TotalEventsSeen()))

	var status string
	switch {
	case m.searchMode:
		status = "/" + m.searchInput
	case m.searchQuery != "":
		status = fmt.Sprintf("%q %d matches · n/N next · esc clear", m.searchQuery, len(m.searchMatches))
	default:
		follow := ""
		if m.tailMode {
			follow = " · following"
		}
		status = "tab level · / search · g/G top/bottom · q close" + follow
	}
	return header + "\n" + m.viewport.View() + "\n" + lipgloss.NewStyle().Foreground(c.TextDim).Render(status)
}

// RenderLogTail renders the newest n records of the hot ring, the ones not
// yet drained.
func RenderLogTail(l *logging.Logger, n, width int, colors ThemeColors) string {
	records := l.SnapshotHot()
	if len(records) > n {
		records = records[len(records)-n:]
	}
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(colors.BorderNormal).
		Foreground(colors.TextDim).
		Width(width)
	lines := make([]string, n)
	for i, r := range records {
		lines[i] = truncateCells(r.Format(), width)
	}
	return box.Render(strings.Join(lines, "\n"))
}
