package tui

import (
	"testing"

	"github.com/donghojung/kan/internal/config"
)

func TestDetectDarkMode_CachesBehavior(t *testing.T) {
	t.Cleanup(func() { cachedDarkMode.Store(darkModeUnknown) })

	t.Run("Cache returns light mode correctly", func(t *testing.T) {
		cachedDarkMode.Store(darkModeUnknown)
		setCachedDarkMode(false)

		isDark, ok := cachedDarkModeValue()
		if !ok {
			t.Error("expected cache to be set")
		}
		if isDark {
			t.Errorf("expected isDark=false from cache, got true")
		}
	})

	t.Run("Cache returns dark mode correctly", func(t *testing.T) {
		cachedDarkMode.Store(darkModeUnknown)
		setCachedDarkMode(true)

		isDark, ok := cachedDarkModeValue()
		if !ok {
			t.Error("expected cache to be set")
		}
		if !isDark {
			t.Errorf("expected isDark=true from cache, got false")
		}
	})

	t.Run("Unknown cache reports not set", func(t *testing.T) {
		cachedDarkMode.Store(darkModeUnknown)
		if _, ok := cachedDarkModeValue(); ok {
			t.Error("expected cache to be unset")
		}
	})

	t.Run("DetectDarkMode uses cached value in auto mode", func(t *testing.T) {
		setCachedDarkMode(false)
		if DetectDarkMode(config.ThemeAuto) {
			t.Errorf("expected false (light) from cached detection, got true")
		}
		setCachedDarkMode(true)
		if !DetectDarkMode("") {
			t.Errorf("expected true (dark) from cached detection, got false")
		}
	})
}

func TestDetectDarkMode_ExplicitTheme(t *testing.T) {
	t.Cleanup(func() { cachedDarkMode.Store(darkModeUnknown) })
	setCachedDarkMode(true)

	if DetectDarkMode(config.ThemeLight) {
		t.Error("light theme should ignore the cached value")
	}
	cachedDarkMode.Store(darkModeUnknown)
	if !DetectDarkMode(config.ThemeDark) {
		t.Error("dark theme should not query the terminal")
	}
	if _, ok := cachedDarkModeValue(); ok {
		t.Error("explicit themes should not populate the cache")
	}
}

func TestNewThemeColors(t *testing.T) {
	dark := NewThemeColors(true)
	light := NewThemeColors(false)
	if dark.TextNormal == light.TextNormal {
		t.Error("text color should depend on the background")
	}
	if dark.Accent != light.Accent {
		t.Error("accent color should be the same on both backgrounds")
	}
}
