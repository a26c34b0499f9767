package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donghojung/kan/internal/app"
	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/logging"
	"github.com/donghojung/kan/internal/palette"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("theme: dark\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	env := map[string]string{"KAN_BOARDS_FILE": filepath.Join(dir, "boards.yaml")}
	a, err := app.New(app.Options{
		ConfigPath: configPath,
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })

	m := NewModel(a)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, t tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: t})
	return cmd
}

func TestModelStartsWithDefaultBoard(t *testing.T) {
	m := newTestModel(t)

	if got := len(m.app.Boards.Boards); got != 1 {
		t.Fatalf("boards = %d, want 1", got)
	}
	if got := m.currentBoard().Name; got != "Default Board" {
		t.Errorf("board name = %q", got)
	}
	view := m.View()
	if !strings.Contains(view, "Default Board (1/1)") {
		t.Errorf("header missing from view:\n%s", view)
	}
	if !m.isDark {
		t.Error("theme: dark should select the dark palette")
	}
}

func TestModelTickReportsLostEvents(t *testing.T) {
	m := newTestModel(t)
	l := m.app.Logger

	// the new depth takes effect at the next drain
	l.SetHotDepth(2)
	l.Logf("test", logging.LevelInfo, "seed")
	m.Update(tickMsg(time.Now()))
	if m.toast.text != "" {
		t.Fatalf("unexpected toast %q", m.toast.text)
	}

	for i := range 5 {
		l.Logf("test", logging.LevelInfo, "event %d", i)
	}
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.toast.text != "3 log events lost" || m.toast.level != logging.LevelWarn {
		t.Errorf("toast = %+v", m.toast)
	}
	if !strings.Contains(m.View(), "3 log events lost") {
		t.Error("toast should be rendered")
	}
	cold := l.Cold()
	if last := cold[len(cold)-1]; last.Level != logging.LevelWarn || !strings.Contains(last.Message, "3 events lost") {
		t.Errorf("last cold record = %+v", last)
	}
}

func TestModelToastExpires(t *testing.T) {
	m := newTestModel(t)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.notify(logging.LevelInfo, "hello")
	m.Update(tickMsg(now))
	if m.toast.text != "hello" {
		t.Fatalf("toast cleared too early")
	}
	now = now.Add(toastDuration + time.Millisecond)
	m.Update(tickMsg(now))
	if m.toast.text != "" {
		t.Errorf("toast should expire, got %q", m.toast.text)
	}
}

func TestModelPaletteCreatesCard(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.mode != modePalette {
		t.Fatalf("mode = %v, want palette", m.mode)
	}
	typeText(m, "new c")
	press(m, tea.KeyEnter)
	if m.mode != modeForm {
		t.Fatalf("mode = %v, want form", m.mode)
	}

	typeText(m, "Write docs")
	press(m, tea.KeyEnter)
	press(m, tea.KeyTab)
	typeText(m, "docs")
	press(m, tea.KeyEnter)

	if m.mode != modeBoard {
		t.Fatalf("mode = %v, want board", m.mode)
	}
	cards := m.currentBoard().Cards
	if len(cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(cards))
	}
	if cards[0].Name != "Write docs" || !cards[0].HasTag("docs") {
		t.Errorf("card = %+v", cards[0])
	}
	if m.board.SelectedCard() != cards[0] {
		t.Error("new card should be selected")
	}
	if !m.Dirty() {
		t.Error("model should be dirty after adding a card")
	}
}

func TestModelPaletteEscapeCloses(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	typeText(m, "zzz")
	press(m, tea.KeyEsc)
	if m.mode != modeBoard {
		t.Errorf("mode = %v, want board", m.mode)
	}
	if len(m.currentBoard().Cards) != 0 {
		t.Error("typing in the palette should not reach the board")
	}
}

func TestModelCycleStatusFollowsCard(t *testing.T) {
	m := newTestModel(t)
	card := kanban.NewCard("Fix bug", "", time.Now())
	m.currentBoard().AddCard(card)
	m.board.Refresh()

	typeText(m, "s")
	if card.Status != kanban.StatusComplete {
		t.Errorf("status = %v, want Complete", card.Status)
	}
	if m.board.FocusedColumn() != 1 || m.board.SelectedCard() != card {
		t.Error("selection should follow the card to its new column")
	}
	typeText(m, "p")
	if card.Priority != kanban.PriorityMedium {
		t.Errorf("priority = %v, want Medium", card.Priority)
	}
}

func TestModelBoardSwitching(t *testing.T) {
	m := newTestModel(t)
	m.dispatch(&PaletteSelection{Action: palette.ActionNewBoard})
	if m.mode != modePrompt {
		t.Fatalf("mode = %v, want prompt", m.mode)
	}
	typeText(m, "Home")
	press(m, tea.KeyEnter)

	if got := m.currentBoard().Name; got != "Home" {
		t.Fatalf("current board = %q, want Home", got)
	}
	typeText(m, "]")
	if m.boardIdx != 0 {
		t.Errorf("] should wrap to the first board, got %d", m.boardIdx)
	}
	typeText(m, "[")
	if m.boardIdx != 1 {
		t.Errorf("[ should wrap to the last board, got %d", m.boardIdx)
	}
}

func TestModelJumpToCardMatch(t *testing.T) {
	m := newTestModel(t)
	other := kanban.NewBoard("Home", "")
	card := kanban.NewCard("Buy milk", "", time.Now())
	card.AddTag("errand")
	other.AddCard(card)
	m.app.Boards.AddBoard(other)
	m.board.SetFilterTag("work")

	matches := func() []palette.Match {
		r := palette.NewRanker(false)
		r.Update("milk", m.app.Boards)
		return r.Cards()
	}()
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	m.dispatch(&PaletteSelection{Match: &matches[0]})

	if m.boardIdx != 1 {
		t.Errorf("boardIdx = %d, want 1", m.boardIdx)
	}
	if m.board.SelectedCard() != card {
		t.Error("matched card should be selected")
	}
	if m.board.FilterTag() != "" {
		t.Error("a filter hiding the card should be cleared")
	}
}

func TestModelFilterByTag(t *testing.T) {
	m := newTestModel(t)
	for _, tag := range []string{"docs", "bug"} {
		c := kanban.NewCard(tag, "", time.Now())
		c.AddTag(tag)
		m.currentBoard().AddCard(c)
	}
	m.board.Refresh()

	m.dispatch(&PaletteSelection{Action: palette.ActionFilterByTag})
	typeText(m, "Do")
	if got := m.prompt.Suggestions(); len(got) != 1 || got[0] != "docs" {
		t.Errorf("Suggestions() = %v, want [docs]", got)
	}
	press(m, tea.KeyTab)
	press(m, tea.KeyEnter)
	if got := m.board.FilterTag(); got != "docs" {
		t.Errorf("FilterTag() = %q, want docs", got)
	}
	if got := m.board.CardCount(); got != 1 {
		t.Errorf("CardCount() = %d, want 1", got)
	}

	m.dispatch(&PaletteSelection{Action: palette.ActionClearFilter})
	if got := m.board.CardCount(); got != 2 {
		t.Errorf("after clearing CardCount() = %d, want 2", got)
	}
}

func TestModelDeleteCard(t *testing.T) {
	m := newTestModel(t)
	m.currentBoard().AddCard(kanban.NewCard("Gone soon", "", time.Now()))
	m.board.Refresh()

	typeText(m, "x")
	if len(m.currentBoard().Cards) != 0 {
		t.Error("x should delete the selected card")
	}
	if !strings.Contains(m.toast.text, "Gone soon") {
		t.Errorf("toast = %q", m.toast.text)
	}
}

func TestModelQuitSavesChanges(t *testing.T) {
	m := newTestModel(t)
	m.currentBoard().AddCard(kanban.NewCard("Keep me", "", time.Now()))
	m.dirty = true

	cmd := press(m, tea.KeyCtrlQ)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.Dirty() {
		t.Error("quit should have saved")
	}

	loaded, err := kanban.Load(m.app.BoardsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Boards) != 1 || loaded.Boards[0].Cards[0].Name != "Keep me" {
		t.Errorf("saved boards = %+v", loaded.Boards)
	}
}

func TestModelLogsMode(t *testing.T) {
	m := newTestModel(t)
	m.app.Logger.Logf("kanban", logging.LevelWarn, "disk is slow")
	m.Update(tickMsg(time.Now()))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.mode != modeLogs {
		t.Fatalf("mode = %v, want logs", m.mode)
	}
	if !strings.Contains(m.View(), "disk is slow") {
		t.Error("log viewer should show drained records")
	}
	typeText(m, "q")
	if m.mode != modeBoard {
		t.Errorf("q should close the log viewer, mode = %v", m.mode)
	}
}

func TestModelToggleDebugShowsHotTail(t *testing.T) {
	m := newTestModel(t)
	m.dispatch(&PaletteSelection{Action: palette.ActionToggleDebug})
	m.app.Logger.Logf("tui", logging.LevelInfo, "not yet drained")

	if !strings.Contains(m.View(), "not yet drained") {
		t.Error("debug panel should show the hot ring")
	}
	m.dispatch(&PaletteSelection{Action: palette.ActionResetUI})
	if m.showDebug {
		t.Error("Reset UI should hide the debug panel")
	}
}
