package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/donghojung/kan/internal/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	return logging.NewLogger(logging.Options{
		HotDepth:  8,
		ColdDepth: 64,
		Clock:     func() time.Time { return now },
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLogViewerLevelFilter(t *testing.T) {
	l := testLogger(t)
	l.Logf("kanban", logging.LevelDebug, "loaded")
	l.Logf("kanban", logging.LevelInfo, "saved")
	l.Logf("tui", logging.LevelError, "boom")
	l.DrainToCold()

	v := NewLogViewer(l, logging.LevelInfo, true)
	v.SetSize(80, 10)
	v.Refresh()
	if got := len(v.Lines()); got != 2 {
		t.Fatalf("Lines() = %d records, want 2: %v", got, v.Lines())
	}

	// info -> warn
	v.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if v.MinLevel() != logging.LevelWarn || len(v.Lines()) != 1 {
		t.Errorf("after tab: level %v, %d lines", v.MinLevel(), len(v.Lines()))
	}
	v.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	v.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if v.MinLevel() != logging.LevelTrace || len(v.Lines()) != 3 {
		t.Errorf("filter should wrap to trace: level %v, %d lines", v.MinLevel(), len(v.Lines()))
	}
}

func TestLogViewerSearch(t *testing.T) {
	l := testLogger(t)
	for i := range 5 {
		l.Logf("kanban", logging.LevelInfo, "card %d saved", i)
		l.DrainToCold()
	}
	l.Logf("tui", logging.LevelInfo, "palette opened")
	l.DrainToCold()

	v := NewLogViewer(l, logging.LevelTrace, true)
	v.SetSize(80, 10)
	v.Refresh()

	v.HandleKey(keyRunes("/"))
	for _, r := range "SAVED" {
		v.HandleKey(keyRunes(string(r)))
	}
	v.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(v.Matches()); got != 5 {
		t.Errorf("Matches() = %d, want 5", got)
	}
	if !strings.Contains(v.View(), "5 matches") {
		t.Errorf("status line should report matches:\n%s", v.View())
	}

	v.HandleKey(keyRunes("N"))
	if v.currentMatchIdx != 4 {
		t.Errorf("N should wrap to the last match, got %d", v.currentMatchIdx)
	}

	if closed, _ := v.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); closed {
		t.Error("esc should clear the search before closing")
	}
	if len(v.Matches()) != 0 {
		t.Error("esc should clear the matches")
	}
	if closed, _ := v.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); !closed {
		t.Error("second esc should close the viewer")
	}
}

func TestLogViewerTailMode(t *testing.T) {
	l := testLogger(t)
	for i := range 30 {
		l.Logf("kanban", logging.LevelInfo, "record %d", i)
		l.DrainToCold()
	}
	v := NewLogViewer(l, logging.LevelTrace, true)
	v.SetSize(80, 7)
	v.Refresh()

	if !v.viewport.AtBottom() {
		t.Error("tail mode should start at the bottom")
	}
	v.HandleKey(keyRunes("g"))
	if v.viewport.YOffset != 0 || v.tailMode {
		t.Errorf("g should jump to the top and stop following, offset %d", v.viewport.YOffset)
	}
	l.Logf("kanban", logging.LevelInfo, "late record")
	l.DrainToCold()
	v.Refresh()
	if v.viewport.YOffset != 0 {
		t.Error("refresh should not move the view while not following")
	}
	v.HandleKey(keyRunes("G"))
	if !v.tailMode || !v.viewport.AtBottom() {
		t.Error("G should resume following")
	}
}

func TestRenderLogTail(t *testing.T) {
	l := testLogger(t)
	for i := range 5 {
		l.Logf("tui", logging.LevelInfo, "hot %d", i)
	}
	tail := RenderLogTail(l, 3, 60, NewThemeColors(true))
	for _, want := range []string{"hot 2", "hot 3", "hot 4"} {
		if !strings.Contains(tail, want) {
			t.Errorf("tail missing %q:\n%s", want, tail)
		}
	}
	if strings.Contains(tail, "hot 1") {
		t.Errorf("tail should only show the newest records:\n%s", tail)
	}
}

func TestTruncateCells(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"日本語テキスト", 5, "日本…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.in, tt.width), func(t *testing.T) {
			if got := truncateCells(tt.in, tt.width); got != tt.want {
				t.Errorf("truncateCells(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
