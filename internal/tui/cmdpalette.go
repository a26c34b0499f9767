package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/palette"
	"github.com/donghojung/kan/internal/tui/textarea"
)

const (
	paletteMaxItems = 12
	paletteMinWidth = 30
)

// PaletteSelection is the result picked in the command palette. Exactly one
// of Action and Match is set.
type PaletteSelection struct {
	Action palette.ActionID
	Match  *palette.Match
}

type paletteSection int

const (
	sectionCommands paletteSection = iota
	sectionCards
	sectionBoards
)

type paletteItem struct {
	section paletteSection
	action  palette.Action
	match   palette.Match
}

// CommandPalette is the popup that ranks actions, cards and boards as the
// user types.
type CommandPalette struct {
	input  *textarea.Model
	ranker *palette.Ranker
	boards *kanban.Collection
	items  []paletteItem
	cursor int
	offset int
	width  int
	colors ThemeColors
	zones  *zone.Manager
}

// NewCommandPalette creates a palette over boards. zones may be nil.
func NewCommandPalette(r *palette.Ranker, boards *kanban.Collection, opts EditorOptions, zones *zone.Manager) *CommandPalette {
	input := newInput("", true, opts)
	input.Placeholder = "Type to search..."
	input.Focus()
	p := &CommandPalette{
		input:  input,
		ranker: r,
		boards: boards,
		colors: NewThemeColors(opts.IsDark),
		zones:  zones,
	}
	p.SetWidth(60)
	p.refresh()
	return p
}

// Open clears the query and ranks the full catalog against boards.
func (p *CommandPalette) Open(boards *kanban.Collection) {
	p.boards = boards
	p.input.Reset()
	p.ranker.Reset()
	p.refresh()
}

// SetWidth sets the popup width.
func (p *CommandPalette) SetWidth(w int) {
	p.width = max(w, paletteMinWidth)
	p.input.SetWidth(p.width - 4)
}

// Query returns the typed text.
func (p *CommandPalette) Query() string {
	return p.input.Value()
}

func (p *CommandPalette) refresh() {
	if !p.ranker.Update(p.input.Value(), p.boards) && p.items != nil {
		return
	}
	p.items = p.items[:0]
	for _, a := range p.ranker.Commands() {
		p.items = append(p.items, paletteItem{section: sectionCommands, action: a})
	}
	for _, m := range p.ranker.Cards() {
		p.items = append(p.items, paletteItem{section: sectionCards, match: m})
	}
	for _, m := range p.ranker.Boards() {
		p.items = append(p.items, paletteItem{section: sectionBoards, match: m})
	}
	p.cursor = 0
	p.offset = 0
}

func (p *CommandPalette) moveCursor(delta int) {
	if len(p.items) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.items)) % len(p.items)
	switch {
	case p.cursor < p.offset:
		p.offset = p.cursor
	case p.cursor >= p.offset+paletteMaxItems:
		p.offset = p.cursor - paletteMaxItems + 1
	}
}

// Selected returns the highlighted result, or nil for the "No Commands
// Found" placeholder.
func (p *CommandPalette) Selected() *PaletteSelection {
	if p.cursor >= len(p.items) {
		return nil
	}
	return selectionOf(p.items[p.cursor])
}

func selectionOf(it paletteItem) *PaletteSelection {
	if it.section == sectionCommands {
		if it.action.ID == palette.ActionNone {
			return nil
		}
		return &PaletteSelection{Action: it.action.ID}
	}
	m := it.match
	return &PaletteSelection{Match: &m}
}

// HandleKey processes a key. It returns the chosen result when the user
// confirms and closed when the palette should be dismissed.
func (p *CommandPalette) HandleKey(msg tea.KeyMsg) (sel *PaletteSelection, closed bool) {
	switch msg.String() {
	case "esc", "ctrl+p":
		return nil, true
	case "enter":
		return p.Selected(), true
	case "up", "ctrl+k", "shift+tab":
		p.moveCursor(-1)
		return nil, false
	case "down", "ctrl+j", "ctrl+n", "tab":
		p.moveCursor(1)
		return nil, false
	}
	p.input.Update(msg)
	p.refresh()
	return nil, false
}

// HandleMouse picks a clicked result.
func (p *CommandPalette) HandleMouse(msg tea.MouseMsg) (sel *PaletteSelection, clicked bool) {
	if p.zones == nil || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return nil, false
	}
	for i := p.offset; i < min(len(p.items), p.offset+paletteMaxItems); i++ {
		if p.zones.Get(paletteZoneID(i)).InBounds(msg) {
			p.cursor = i
			return selectionOf(p.items[i]), true
		}
	}
	return nil, false
}

func paletteZoneID(i int) string {
	return fmt.Sprintf("palette:%d", i)
}

func (it paletteItem) text(width int) string {
	if it.section == sectionCommands {
		return it.action.Name
	}
	return it.match.Visible(width)
}

// View renders the palette popup.
func (p *CommandPalette) View() string {
	c := p.colors
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(c.Accent)
	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.BorderFocused).
		Padding(0, 1).
		Width(p.width - 2)
	sectionStyle := lipgloss.NewStyle().Foreground(c.TextDim).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(c.TextNormal).PaddingLeft(1)
	selectedStyle := lipgloss.NewStyle().Background(c.Selected).Bold(true).PaddingLeft(1)
	helpStyle := lipgloss.NewStyle().Foreground(c.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Command Palette"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(p.input.View()))

	section := paletteSection(-1)
	end := min(len(p.items), p.offset+paletteMaxItems)
	for i := p.offset; i < end; i++ {
		it := p.items[i]
		if it.section != section {
			section = it.section
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render([]string{"Commands", "Cards", "Boards"}[section]))
		}
		style := itemStyle
		if i == p.cursor {
			style = selectedStyle
		}
		line := style.Render(it.text(p.width))
		if p.zones != nil {
			line = p.zones.Mark(paletteZoneID(i), line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	if end < len(p.items) {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("  … %d more", len(p.items)-end)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select · enter run · esc close"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.BorderNormal).
		Padding(0, 1).
		Render(b.String())
}
