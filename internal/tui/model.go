package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/donghojung/kan/internal/app"
	"github.com/donghojung/kan/internal/config"
	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/logging"
	"github.com/donghojung/kan/internal/palette"
)

var log = logging.For("tui")

const (
	toastDuration = 3 * time.Second
	debugTailRows = 5
	formMaxWidth  = 70
)

type mode int

const (
	modeBoard mode = iota
	modePalette
	modeForm
	modePrompt
	modeLogs
)

type promptKind int

const (
	promptNewBoard promptKind = iota
	promptFilterTag
)

type tickMsg time.Time

type toast struct {
	text  string
	level logging.Level
	until time.Time
}

// Model is the root bubbletea model. Every tick drains the log hot ring
// into the cold ring.
type Model struct {
	app    *app.App
	keys   keyMap
	help   help.Model
	zones  *zone.Manager
	ranker *palette.Ranker

	board   *KanbanView
	palette *CommandPalette
	form    *CardForm
	prompt  *Prompt
	logs    *LogViewer

	mode       mode
	promptKind promptKind
	boardIdx   int
	showDebug  bool
	dirty      bool
	toast      toast

	width  int
	height int
	isDark bool
	now    func() time.Time
}

// NewModel creates the root model over a.Boards. A collection without
// boards gets a default one.
func NewModel(a *app.App) *Model {
	if len(a.Boards.Boards) == 0 {
		a.Boards.AddBoard(kanban.NewBoard("", ""))
	}
	isDark := DetectDarkMode(a.Config.Theme)
	m := &Model{
		app:    a,
		keys:   defaultKeyMap(),
		help:   help.New(),
		zones:  zone.New(),
		ranker: palette.NewRanker(a.Debug),
		isDark: isDark,
		now:    time.Now,
		width:  80,
		height: 24,
	}
	m.board = NewKanbanView(isDark, m.zones)
	m.board.SetBoard(a.Boards.Boards[0])
	m.palette = NewCommandPalette(m.ranker, a.Boards, m.editorOptions(), m.zones)
	m.logs = NewLogViewer(a.Logger, a.Config.DefaultLevel(), isDark)
	m.layout()
	return m
}

func (m *Model) editorOptions() EditorOptions {
	e := m.app.Config.Editor
	return EditorOptions{
		TabLen:        e.TabLen,
		HardTabIndent: e.HardTabIndent,
		HistorySize:   e.HistorySize,
		IsDark:        m.isDark,
	}
}

// Init starts the drain tick.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.app.Config.TickRate(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.drain()
		if !m.toast.until.IsZero() && m.now().After(m.toast.until) {
			m.toast = toast{}
		}
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modePalette:
			return m, m.handlePaletteKey(msg)
		case modeForm:
			m.handleFormKey(msg)
			return m, nil
		case modePrompt:
			m.handlePromptKey(msg)
			return m, nil
		case modeLogs:
			closed, cmd := m.logs.HandleKey(msg)
			if closed {
				m.mode = modeBoard
			}
			return m, cmd
		}
		return m, m.handleBoardKey(msg)
	}
	return m, nil
}

func (m *Model) drain() {
	stats := m.app.Logger.DrainToCold()
	if lost := stats.Lost(); lost > 0 {
		m.notify(logging.LevelWarn, fmt.Sprintf("%d log events lost", lost))
	}
	if stats.Total > 0 {
		m.logs.Refresh()
	}
}

func (m *Model) notify(level logging.Level, text string) {
	m.toast = toast{text: text, level: level, until: m.now().Add(toastDuration)}
}

// layout distributes the terminal among the views. The board gets what the
// header, toast, debug tail and help lines leave.
func (m *Model) layout() {
	m.help.Width = m.width
	reserved := 3 // header, toast, help
	if m.help.ShowAll {
		rows := 0
		for _, col := range m.keys.FullHelp() {
			rows = max(rows, len(col))
		}
		reserved += rows - 1
	}
	if m.showDebug {
		reserved += debugTailRows + 1
	}
	body := max(m.height-reserved, 4)
	m.board.SetSize(m.width, body)
	m.logs.SetSize(m.width, body)
	popup := min(m.width-4, formMaxWidth)
	m.palette.SetWidth(popup)
	if m.form != nil {
		m.form.SetSize(popup, max(body/3, 3))
	}
	if m.prompt != nil {
		m.prompt.SetWidth(min(popup, 50))
	}
}

func (m *Model) currentBoard() *kanban.Board {
	return m.app.Boards.Boards[m.boardIdx]
}

func (m *Model) switchBoard(idx int) {
	n := len(m.app.Boards.Boards)
	m.boardIdx = (idx + n) % n
	m.board.SetBoard(m.currentBoard())
	log.Debug("switched to board %q", m.currentBoard().Name)
}

func (m *Model) handleBoardKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.board.MoveCard(-1)
	case key.Matches(msg, m.keys.Down):
		m.board.MoveCard(1)
	case key.Matches(msg, m.keys.Left):
		m.board.MoveColumn(-1)
	case key.Matches(msg, m.keys.Right):
		m.board.MoveColumn(1)
	case key.Matches(msg, m.keys.PrevBoard):
		m.switchBoard(m.boardIdx - 1)
	case key.Matches(msg, m.keys.NextBoard):
		m.switchBoard(m.boardIdx + 1)
	case key.Matches(msg, m.keys.NewCard):
		m.openForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if c := m.board.SelectedCard(); c != nil {
			m.openForm(c)
		}
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Status):
		m.cycleStatus()
	case key.Matches(msg, m.keys.Priority):
		m.cyclePriority()
	case key.Matches(msg, m.keys.Copy):
		if err := m.board.CopyView(); err != nil {
			log.Warn("copy failed: %v", err)
			m.notify(logging.LevelError, "Copy failed")
		} else {
			m.notify(logging.LevelInfo, "Board copied to clipboard")
		}
	case key.Matches(msg, m.keys.Palette):
		m.openPalette()
	case key.Matches(msg, m.keys.Logs):
		m.mode = modeLogs
		m.logs.Refresh()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return nil
}

func (m *Model) openPalette() {
	m.palette.Open(m.app.Boards)
	m.mode = modePalette
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	sel, closed := m.palette.HandleKey(msg)
	if !closed {
		return nil
	}
	m.mode = modeBoard
	if sel == nil {
		return nil
	}
	return m.dispatch(sel)
}

// dispatch runs a palette selection.
func (m *Model) dispatch(sel *PaletteSelection) tea.Cmd {
	if sel.Match != nil {
		m.jumpTo(*sel.Match)
		return nil
	}
	action, _ := palette.Lookup(sel.Action)
	log.Debug("running action %q", action.Name)

	switch sel.Action {
	case palette.ActionQuit:
		return m.quit()
	case palette.ActionNewCard:
		m.openForm(nil)
	case palette.ActionNewBoard:
		m.openPrompt(promptNewBoard, "New Board", nil)
	case palette.ActionChangeCardStatus:
		m.cycleStatus()
	case palette.ActionChangeCardPriority:
		m.cyclePriority()
	case palette.ActionFilterByTag:
		m.openPrompt(promptFilterTag, "Filter by Tag", m.app.Boards.CalculateTags())
	case palette.ActionClearFilter:
		m.board.SetFilterTag("")
	case palette.ActionToggleDebug:
		m.showDebug = !m.showDebug
		m.layout()
	case palette.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case palette.ActionSave:
		m.save()
	case palette.ActionLoadLocal:
		m.reload()
	case palette.ActionChangeTheme:
		m.setDark(!m.isDark)
	case palette.ActionResetUI:
		m.resetUI()
	case palette.ActionConfigure:
		m.notify(logging.LevelInfo, "Config: "+m.app.ConfigPath)
	case palette.ActionMainMenu:
		m.mode = modeBoard
	default:
		m.notify(logging.LevelInfo, action.Name+" is not available")
	}
	return nil
}

// jumpTo shows the board of a card or board match and selects the card.
func (m *Model) jumpTo(match palette.Match) {
	idx := slices.IndexFunc(m.app.Boards.Boards, func(b *kanban.Board) bool { return b.ID == match.BoardID })
	if idx < 0 {
		return
	}
	m.switchBoard(idx)
	if match.CardID == uuid.Nil {
		return
	}
	if !m.board.SelectCard(match.CardID) {
		// hidden by the tag filter
		m.board.SetFilterTag("")
		m.board.SelectCard(match.CardID)
	}
}

func (m *Model) openForm(card *kanban.Card) {
	m.form = NewCardForm(card, m.app.Boards.CalculateTags(), m.editorOptions())
	m.mode = modeForm
	m.layout()
}

func (m *Model) handleFormKey(msg tea.KeyMsg) {
	switch m.form.HandleKey(msg) {
	case FormCancelled:
		m.mode = modeBoard
	case FormSubmitted:
		card := m.form.Apply(m.currentBoard(), m.now())
		m.board.Refresh()
		m.board.SelectCard(card.ID)
		m.dirty = true
		m.mode = modeBoard
		log.Info("saved card %q", card.Name)
	}
}

func (m *Model) openPrompt(kind promptKind, title string, tags []kanban.TagCount) {
	m.prompt = NewPrompt(title, tags, m.editorOptions())
	m.promptKind = kind
	m.mode = modePrompt
	m.layout()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) {
	switch m.prompt.HandleKey(msg) {
	case FormCancelled:
		m.mode = modeBoard
	case FormSubmitted:
		m.mode = modeBoard
		value := m.prompt.Value()
		switch m.promptKind {
		case promptNewBoard:
			m.app.Boards.AddBoard(kanban.NewBoard(value, ""))
			m.dirty = true
			m.switchBoard(len(m.app.Boards.Boards) - 1)
		case promptFilterTag:
			m.board.SetFilterTag(strings.ToLower(value))
		}
	}
}

func (m *Model) deleteSelected() {
	c := m.board.SelectedCard()
	if c == nil {
		return
	}
	if err := m.currentBoard().RemoveCard(c.ID); err != nil {
		log.Error("delete card: %v", err)
		return
	}
	m.board.Refresh()
	m.dirty = true
	m.notify(logging.LevelInfo, fmt.Sprintf("Deleted %q", c.Name))
}

func cycleNext[T comparable](all []T, v T) T {
	return all[(slices.Index(all, v)+1)%len(all)]
}

func (m *Model) cycleStatus() {
	c := m.board.SelectedCard()
	if c == nil {
		return
	}
	c.Status = cycleNext(kanban.Statuses(), c.Status)
	m.board.Refresh()
	m.board.SelectCard(c.ID)
	m.dirty = true
}

func (m *Model) cyclePriority() {
	c := m.board.SelectedCard()
	if c == nil {
		return
	}
	c.Priority = cycleNext(kanban.Priorities(), c.Priority)
	m.board.Refresh()
	m.dirty = true
}

func (m *Model) save() bool {
	if err := m.app.SaveBoards(); err != nil {
		log.Error("save boards: %v", err)
		m.notify(logging.LevelError, "Save failed: "+err.Error())
		return false
	}
	m.dirty = false
	m.notify(logging.LevelInfo, "Saved to "+m.app.BoardsPath)
	return true
}

func (m *Model) reload() {
	if err := m.app.LoadBoards(); err != nil {
		m.notify(logging.LevelError, "Load failed: "+err.Error())
		return
	}
	if len(m.app.Boards.Boards) == 0 {
		m.app.Boards.AddBoard(kanban.NewBoard("", ""))
	}
	m.dirty = false
	m.switchBoard(0)
	m.notify(logging.LevelInfo, "Loaded "+m.app.BoardsPath)
}

// quit saves pending changes first. A failed save keeps the program running
// so nothing is lost.
func (m *Model) quit() tea.Cmd {
	if m.dirty && !m.save() {
		return nil
	}
	return tea.Quit
}

func (m *Model) setDark(isDark bool) {
	m.isDark = isDark
	setCachedDarkMode(isDark)
	m.board.SetDark(isDark)
	m.logs.colors = NewThemeColors(isDark)
	m.palette = NewCommandPalette(m.ranker, m.app.Boards, m.editorOptions(), m.zones)
	if isDark {
		m.app.Config.Theme = config.ThemeDark
	} else {
		m.app.Config.Theme = config.ThemeLight
	}
	m.layout()
}

func (m *Model) resetUI() {
	m.showDebug = false
	m.help.ShowAll = false
	m.board.SetFilterTag("")
	m.board.SetBoard(m.currentBoard())
	m.layout()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch m.mode {
	case modeBoard:
		m.board.HandleMouse(msg)
	case modePalette:
		if sel, clicked := m.palette.HandleMouse(msg); clicked {
			m.mode = modeBoard
			if sel != nil {
				return m.dispatch(sel)
			}
		}
	case modeLogs:
		return m.logs.HandleMouse(msg)
	}
	return nil
}

// Dirty reports whether there are unsaved changes.
func (m *Model) Dirty() bool {
	return m.dirty
}

// View renders the model.
func (m *Model) View() string {
	c := NewThemeColors(m.isDark)
	bodyHeight := m.board.height

	var body string
	switch m.mode {
	case modeLogs:
		body = m.logs.View()
	case modePalette:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.palette.View())
	case modeForm:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.form.View())
	case modePrompt:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.prompt.View())
	default:
		body = m.board.Render()
	}

	parts := []string{m.header(c), body}
	if m.showDebug {
		parts = append(parts, RenderLogTail(m.app.Logger, debugTailRows, m.width, c))
	}
	parts = append(parts, m.renderToast(c), m.help.View(m.keys))
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) header(c ThemeColors) string {
	b := m.currentBoard()
	title := fmt.Sprintf("%s (%d/%d)", b.Name, m.boardIdx+1, len(m.app.Boards.Boards))
	if m.dirty {
		title += " *"
	}
	if tag := m.board.FilterTag(); tag != "" {
		title += "  #" + tag
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c.Accent).Render(truncateCells(title, m.width))
}

func (m *Model) renderToast(c ThemeColors) string {
	if m.toast.text == "" {
		return ""
	}
	color := c.TextNormal
	switch {
	case m.toast.level >= logging.LevelError:
		color = c.Error
	case m.toast.level == logging.LevelWarn:
		color = c.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Render(truncateCells(m.toast.text, m.width))
}

// Run starts the TUI over a and blocks until the user quits.
func Run(a *app.App) error {
	m := NewModel(a)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m.dirty {
		if err := a.SaveBoards(); err != nil {
			return fmt.Errorf("failed to save boards: %w", err)
		}
	}
	return nil
}
