// Package tui provides the terminal user interface for kan.
package tui

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/donghojung/kan/internal/config"
)

const (
	darkModeUnknown int32 = iota
	darkModeLight
	darkModeDark
)

var cachedDarkMode atomic.Int32

// DetectDarkMode returns whether the terminal is in dark mode.
//   - "light": always returns false
//   - "dark": always returns true
//   - "auto" or empty: uses lipgloss.HasDarkBackground() to auto-detect
//
// This function should be called BEFORE bubbletea starts, as
// lipgloss.HasDarkBackground() queries the terminal.
func DetectDarkMode(theme config.Theme) bool {
	switch theme {
	case config.ThemeLight:
		return false
	case config.ThemeDark:
		return true
	default:
		if isDark, ok := cachedDarkModeValue(); ok {
			return isDark
		}
		isDark := detectDarkModeWithRetry()
		setCachedDarkMode(isDark)
		return isDark
	}
}

func cachedDarkModeValue() (bool, bool) {
	switch cachedDarkMode.Load() {
	case darkModeDark:
		return true, true
	case darkModeLight:
		return false, true
	default:
		return false, false
	}
}

func setCachedDarkMode(isDark bool) {
	if isDark {
		cachedDarkMode.Store(darkModeDark)
		return
	}
	cachedDarkMode.Store(darkModeLight)
}

// detectDarkModeWithRetry asks the terminal three times and takes the
// majority. The background color query is unreliable right after startup.
func detectDarkModeWithRetry() bool {
	_ = os.Stdout.Sync()
	time.Sleep(5 * time.Millisecond)

	const attempts = 3
	darkCount := 0
	for i := range attempts {
		if lipgloss.HasDarkBackground() {
			darkCount++
		}
		if i < attempts-1 {
			time.Sleep(10 * time.Millisecond)
		}
	}
	return darkCount >= 2
}

func lightDark(isDark bool) func(light, dark lipgloss.Color) lipgloss.Color {
	return func(light, dark lipgloss.Color) lipgloss.Color {
		if isDark {
			return dark
		}
		return light
	}
}

// ThemeColors is the palette shared by every view.
type ThemeColors struct {
	Accent        lipgloss.Color
	TextNormal    lipgloss.Color
	TextDim       lipgloss.Color
	BorderNormal  lipgloss.Color
	BorderFocused lipgloss.Color
	Selected      lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color

	StatusActive   lipgloss.Color
	StatusComplete lipgloss.Color
	StatusStale    lipgloss.Color
}

// NewThemeColors returns the colors for a light or dark background.
func NewThemeColors(isDark bool) ThemeColors {
	c := lightDark(isDark)
	return ThemeColors{
		Accent:        lipgloss.Color("39"),
		TextNormal:    c(lipgloss.Color("236"), lipgloss.Color("252")),
		TextDim:       c(lipgloss.Color("245"), lipgloss.Color("240")),
		BorderNormal:  c(lipgloss.Color("250"), lipgloss.Color("238")),
		BorderFocused: lipgloss.Color("39"),
		Selected:      c(lipgloss.Color("254"), lipgloss.Color("237")),
		Warning:       lipgloss.Color("220"),
		Error:         lipgloss.Color("203"),

		StatusActive:   lipgloss.Color("40"),
		StatusComplete: lipgloss.Color("245"),
		StatusStale:    lipgloss.Color("203"),
	}
}
