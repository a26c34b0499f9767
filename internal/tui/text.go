package tui

import (
	rw "github.com/mattn/go-runewidth"

	"github.com/donghojung/kan/internal/constants"
)

// truncateCells cuts s to at most width terminal cells, marking the cut
// with an ellipsis.
func truncateCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return rw.Truncate(s, width, constants.Ellipsis)
}
