package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderVerticalScrollbar(contentHeight, visibleHeight, scrollOffset int, isDark bool) string {
	if contentHeight <= visibleHeight || visibleHeight <= 0 {
		return ""
	}

	c := lightDark(isDark)
	trackStyle := lipgloss.NewStyle().Foreground(c(lipgloss.Color("250"), lipgloss.Color("238")))
	thumbStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	thumbSize := max(1, visibleHeight*visibleHeight/contentHeight)
	maxOffset := contentHeight - visibleHeight
	thumbPosition := scrollOffset * (visibleHeight - thumbSize) / maxOffset
	thumbPosition = max(0, min(thumbPosition, visibleHeight-thumbSize))

	var sb strings.Builder
	for i := 0; i < visibleHeight; i++ {
		if i >= thumbPosition && i < thumbPosition+thumbSize {
			sb.WriteString(thumbStyle.Render("┃"))
		} else {
			sb.WriteString(trackStyle.Render("│"))
		}
		if i < visibleHeight-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
