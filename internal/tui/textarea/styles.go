package textarea

import "github.com/charmbracelet/lipgloss"

// Alignment is the horizontal placement of rendered lines.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) position() lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// StyleState is the set of styles used in one focus state.
type StyleState struct {
	Base        lipgloss.Style
	Text        lipgloss.Style
	CursorLine  lipgloss.Style
	Cursor      lipgloss.Style
	Selection   lipgloss.Style
	LineNumber  lipgloss.Style
	Placeholder lipgloss.Style
}

// Styles holds the focused and blurred style states.
type Styles struct {
	Focused StyleState
	Blurred StyleState
}

func lightDark(isDark bool) func(light, dark lipgloss.Color) lipgloss.Color {
	return func(light, dark lipgloss.Color) lipgloss.Color {
		if isDark {
			return dark
		}
		return light
	}
}

// DefaultStyles returns the default styles for a light or dark background.
func DefaultStyles(isDark bool) Styles {
	c := lightDark(isDark)
	dim := c(lipgloss.Color("245"), lipgloss.Color("241"))

	focused := StyleState{
		Base:        lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle().Background(c(lipgloss.Color("255"), lipgloss.Color("236"))),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Selection:   lipgloss.NewStyle().Reverse(true),
		LineNumber:  lipgloss.NewStyle().Foreground(dim),
		Placeholder: lipgloss.NewStyle().Foreground(dim),
	}
	blurred := focused
	blurred.CursorLine = lipgloss.NewStyle()
	blurred.Cursor = lipgloss.NewStyle()
	blurred.Text = lipgloss.NewStyle().Foreground(c(lipgloss.Color("243"), lipgloss.Color("250")))

	return Styles{Focused: focused, Blurred: blurred}
}
