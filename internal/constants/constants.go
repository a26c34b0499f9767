// Package constants defines shared constants used throughout the kan application.
package constants

import (
	"time"
	"unicode/utf8"
)

// AppName is used for the binary, config directories and the default log target.
const AppName = "kan"

// Environment variables
const (
	EnvDebug      = "KAN_DEBUG"       // "1" enables debug level and the debug palette entry
	EnvLogLevel   = "KAN_LOG_LEVEL"   // overrides log.default_level
	EnvBoardsFile = "KAN_BOARDS_FILE" // overrides boards_file
)

// Directory and file names
const (
	ConfigFileName = "config.yaml"
	BoardsFileName = "boards.yaml"
	LogFileName    = "kan.log"
)

// File modes
const (
	DirPerm  = 0755
	FilePerm = 0644
)

// Default configuration values
const (
	DefaultTickRate    = 250 * time.Millisecond
	DefaultLogLevel    = "info"
	DefaultTabLen      = 2
	DefaultHistorySize = 9999
	DefaultHotDepth    = 1000
	DefaultColdDepth   = 10000
	MaxTabLen          = 255
)

// Kanban defaults
const (
	DefaultBoardName = "Default Board"
	DefaultCardName  = "Default Card"
	FieldNotSet      = "Not Set"
)

// Palette
const (
	NoCommandsFound   = "No Commands Found"
	MaxTagSuggestions = 6
	// PaletteInsetWidth is taken from the popup width before truncating results.
	PaletteInsetWidth = 2
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// TruncateWithWidth shortens s to at most maxLen runes, replacing the tail
// with an ellipsis when it does not fit.
func TruncateWithWidth(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return Ellipsis
	}
	return string([]rune(s)[:maxLen-1]) + Ellipsis
}
