package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/donghojung/kan/internal/kanban"
)

var testCreated = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func testBoard() *kanban.Board {
	b := kanban.NewBoard("Work", "")
	add := func(name string, status kanban.Status, tags ...string) {
		c := kanban.NewCard(name, "", testCreated)
		c.Status = status
		for _, tag := range tags {
			c.AddTag(tag)
		}
		b.AddCard(c)
	}
	add("Write docs", kanban.StatusActive, "docs")
	add("Fix bug", kanban.StatusActive, "bug")
	add("Ship it", kanban.StatusComplete)
	add("Old idea", kanban.StatusStale, "docs")
	return b
}

func newTestKanban(b *kanban.Board) *KanbanView {
	k := NewKanbanView(true, nil)
	k.SetSize(80, 12)
	k.SetBoard(b)
	return k
}

func TestKanbanGroupsByStatus(t *testing.T) {
	k := newTestKanban(testBoard())

	if got := k.CardCount(); got != 4 {
		t.Errorf("CardCount() = %d, want 4", got)
	}
	if got := k.SelectedCard().Name; got != "Write docs" {
		t.Errorf("SelectedCard() = %q, want %q", got, "Write docs")
	}

	k.MoveCard(1)
	if got := k.SelectedCard().Name; got != "Fix bug" {
		t.Errorf("after MoveCard(1) SelectedCard() = %q", got)
	}
	k.MoveCard(5)
	if got := k.SelectedCard().Name; got != "Fix bug" {
		t.Errorf("MoveCard should saturate, got %q", got)
	}

	k.MoveColumn(1)
	if got := k.SelectedCard().Name; got != "Ship it" {
		t.Errorf("complete column SelectedCard() = %q", got)
	}
	k.MoveColumn(10)
	if k.FocusedColumn() != 2 {
		t.Errorf("FocusedColumn() = %d, want 2", k.FocusedColumn())
	}
	k.MoveColumn(-10)
	if k.FocusedColumn() != 0 {
		t.Errorf("FocusedColumn() = %d, want 0", k.FocusedColumn())
	}
}

func TestKanbanEmptyColumn(t *testing.T) {
	b := kanban.NewBoard("Empty", "")
	k := newTestKanban(b)
	if k.SelectedCard() != nil {
		t.Error("empty board should have no selection")
	}
	k.MoveCard(1)
	k.MoveColumn(1)
	if k.SelectedCard() != nil {
		t.Error("empty column should have no selection")
	}
}

func TestKanbanFilterTag(t *testing.T) {
	k := newTestKanban(testBoard())
	k.SetFilterTag("DOCS")

	if got := k.CardCount(); got != 2 {
		t.Errorf("CardCount() with filter = %d, want 2", got)
	}
	if k.FilterTag() != "DOCS" {
		t.Errorf("FilterTag() = %q", k.FilterTag())
	}
	k.SetFilterTag("")
	if got := k.CardCount(); got != 4 {
		t.Errorf("CardCount() after clearing filter = %d, want 4", got)
	}
}

func TestKanbanSelectCard(t *testing.T) {
	b := testBoard()
	k := newTestKanban(b)

	stale := b.Cards[3]
	if !k.SelectCard(stale.ID) {
		t.Fatal("SelectCard() = false for a shown card")
	}
	if k.FocusedColumn() != 2 || k.SelectedCard() != stale {
		t.Errorf("SelectCard() focused column %d card %v", k.FocusedColumn(), k.SelectedCard())
	}

	k.SetFilterTag("bug")
	if k.SelectCard(stale.ID) {
		t.Error("SelectCard() should fail for a filtered out card")
	}
}

func TestKanbanScrollFollowsSelection(t *testing.T) {
	b := kanban.NewBoard("Long", "")
	for i := range 10 {
		b.AddCard(kanban.NewCard(fmt.Sprintf("card %d", i), "", testCreated))
	}
	k := newTestKanban(b) // four cards fit in height 12

	if !k.NeedsScrollbar() {
		t.Fatal("expected a scrollbar for 10 cards")
	}
	k.MoveCard(5)
	if got := k.ScrollOffset(); got != 2 {
		t.Errorf("ScrollOffset() = %d, want 2", got)
	}
	k.MoveCard(-5)
	if got := k.ScrollOffset(); got != 0 {
		t.Errorf("ScrollOffset() = %d, want 0", got)
	}
	k.Scroll(100)
	if got := k.ScrollOffset(); got != 6 {
		t.Errorf("Scroll(100) offset = %d, want 6", got)
	}
	k.Scroll(-100)
	if got := k.ScrollOffset(); got != 0 {
		t.Errorf("Scroll(-100) offset = %d, want 0", got)
	}
}

func TestKanbanRender(t *testing.T) {
	k := newTestKanban(testBoard())
	view := k.Render()
	if view == "" {
		t.Fatal("Render() returned empty output")
	}

	plain := k.PlainText()
	for _, want := range []string{"Active (2)", "Complete (1)", "Stale (1)", "Write docs", "Low · #docs"} {
		if !strings.Contains(plain, want) {
			t.Errorf("rendered board missing %q:\n%s", want, plain)
		}
	}
	if got := len(strings.Split(plain, "\n")); got != 12 {
		t.Errorf("rendered %d lines, want 12", got)
	}
}

func TestKanbanRenderTooNarrow(t *testing.T) {
	k := NewKanbanView(false, nil)
	k.SetSize(30, 12)
	k.SetBoard(testBoard())
	if k.ColumnWidth() != 0 {
		t.Errorf("ColumnWidth() = %d, want 0", k.ColumnWidth())
	}
	if got := k.Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
	if err := k.CopyView(); err != nil {
		t.Errorf("CopyView() with nothing rendered = %v", err)
	}
}

func TestKanbanCopyView(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	var copied string
	writeClipboard = func(s string) error { copied = s; return nil }

	k := newTestKanban(testBoard())
	k.Render()
	if err := k.CopyView(); err != nil {
		t.Fatalf("CopyView() error = %v", err)
	}
	if copied != k.PlainText() || !strings.Contains(copied, "Fix bug") {
		t.Errorf("copied %q", copied)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	if err := k.CopyView(); err == nil {
		t.Error("CopyView() should return the clipboard error")
	}
}
