package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/palette"
	"github.com/donghojung/kan/internal/tui/textarea"
)

// Prompt asks for one line of text. When tags is set it suggests matching
// tags below the input.
type Prompt struct {
	title  string
	input  *textarea.Model
	tags   []kanban.TagCount
	width  int
	colors ThemeColors
}

// NewPrompt creates a prompt. Only typing, Backspace and Delete edit the
// input; Tab completes a suggested tag.
func NewPrompt(title string, tags []kanban.TagCount, opts EditorOptions) *Prompt {
	in := newInput("", true, opts)
	in.Focus()
	p := &Prompt{title: title, input: in, tags: tags, colors: NewThemeColors(opts.IsDark)}
	p.SetWidth(50)
	return p
}

// SetWidth sets the prompt width.
func (p *Prompt) SetWidth(w int) {
	p.width = w
	p.input.SetWidth(w - 4)
}

// Value returns the trimmed input.
func (p *Prompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

// Suggestions returns matching tags when the prompt asks for a tag.
func (p *Prompt) Suggestions() []string {
	if p.tags == nil || p.Value() == "" {
		return nil
	}
	return palette.TagSuggestions(p.tags, p.Value(), nil)
}

// HandleKey processes a key.
func (p *Prompt) HandleKey(msg tea.KeyMsg) FormResult {
	switch msg.String() {
	case "esc":
		return FormCancelled
	case "enter":
		return FormSubmitted
	case "tab":
		if s := p.Suggestions(); len(s) > 0 {
			p.input.SetValue(s[0])
			p.input.Jump(0, textarea.End)
		}
		return FormContinue
	}
	if msg.Paste {
		p.input.InsertText(string(msg.Runes))
		return FormContinue
	}
	p.input.InputWithoutShortcuts(textarea.KeyFromMsg(msg))
	return FormContinue
}

// View renders the prompt.
func (p *Prompt) View() string {
	c := p.colors
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(c.Accent).Render(p.title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.BorderFocused).
		Padding(0, 1).
		Width(p.width - 2).
		Render(p.input.View()))
	if s := p.Suggestions(); len(s) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(c.TextDim).Render("tab: " + strings.Join(s, "  ")))
	}
	return b.String()
}
