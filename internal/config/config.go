// Package config handles kan configuration loading, validation and saving.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/logging"
)

var (
	// ErrInvalidLevel is returned by Validate for an unknown log level name.
	ErrInvalidLevel = errors.New("invalid log level")
	// ErrInvalidValue is returned by Validate for an out-of-range setting.
	ErrInvalidValue = errors.New("invalid config value")
)

const minTickRateMS = 50

// LogConfig configures the in-memory logger.
type LogConfig struct {
	HotDepth     int               `yaml:"hot_depth"`         // producer ring capacity
	ColdDepth    int               `yaml:"cold_depth"`        // drained history capacity
	DefaultLevel string            `yaml:"default_level"`     // trace, debug, info, warn, error or off
	Targets      map[string]string `yaml:"targets,omitempty"` // per-target thresholds
	File         string            `yaml:"file,omitempty"`    // optional mirror of drained records
}

// EditorConfig configures the text boxes of the card and board forms.
type EditorConfig struct {
	TabLen        int  `yaml:"tab_len"`
	HardTabIndent bool `yaml:"hard_tab_indent"`
	HistorySize   int  `yaml:"history_size"`
}

// PaletteConfig configures the command palette.
type PaletteConfig struct {
	Debug bool `yaml:"debug"` // show "Toggle Debug Panel"
}

// Theme selects the color scheme.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Config represents the kan configuration file.
type Config struct {
	TickRateMS  int           `yaml:"tick_rate_ms"`
	Theme       Theme         `yaml:"theme"`
	Log         LogConfig     `yaml:"log"`
	Editor      EditorConfig  `yaml:"editor"`
	Palette     PaletteConfig `yaml:"palette"`
	BoardsFile  string        `yaml:"boards_file,omitempty"`
	MetricsAddr string        `yaml:"metrics_addr,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TickRateMS: int(constants.DefaultTickRate / time.Millisecond),
		Theme:      ThemeAuto,
		Log: LogConfig{
			HotDepth:     constants.DefaultHotDepth,
			ColdDepth:    constants.DefaultColdDepth,
			DefaultLevel: constants.DefaultLogLevel,
		},
		Editor: EditorConfig{
			TabLen:      constants.DefaultTabLen,
			HistorySize: constants.DefaultHistorySize,
		},
	}
}

// xdgDir returns $<env>/kan, falling back to ~/<fallback>/kan.
func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, constants.AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+constants.AppName)
	}
	return filepath.Join(home, fallback, constants.AppName)
}

// DefaultPath returns $XDG_CONFIG_HOME/kan/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), constants.ConfigFileName)
}

// DataDir returns $XDG_DATA_HOME/kan.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return parseConfig(data)
}

// parseConfig decodes YAML over the defaults so omitted keys keep them.
func parseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv applies KAN_DEBUG, KAN_LOG_LEVEL and KAN_BOARDS_FILE using lookup,
// which is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(constants.EnvDebug); ok && v == "1" {
		c.Log.DefaultLevel = "debug"
		c.Palette.Debug = true
	}
	if v, ok := lookup(constants.EnvLogLevel); ok && v != "" {
		c.Log.DefaultLevel = v
	}
	if v, ok := lookup(constants.EnvBoardsFile); ok && v != "" {
		c.BoardsFile = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.DefaultLevel); err != nil {
		return fmt.Errorf("%w: log.default_level %q", ErrInvalidLevel, c.Log.DefaultLevel)
	}
	for target, level := range c.Log.Targets {
		if _, err := logging.ParseLevel(level); err != nil {
			return fmt.Errorf("%w: log.targets.%s %q", ErrInvalidLevel, target, level)
		}
	}
	switch {
	case c.Log.HotDepth <= 0:
		return fmt.Errorf("%w: log.hot_depth must be positive, got %d", ErrInvalidValue, c.Log.HotDepth)
	case c.Log.ColdDepth <= 0:
		return fmt.Errorf("%w: log.cold_depth must be positive, got %d", ErrInvalidValue, c.Log.ColdDepth)
	case c.Editor.TabLen < 0 || c.Editor.TabLen > constants.MaxTabLen:
		return fmt.Errorf("%w: editor.tab_len must be between 0 and %d, got %d", ErrInvalidValue, constants.MaxTabLen, c.Editor.TabLen)
	case c.Editor.HistorySize < 0:
		return fmt.Errorf("%w: editor.history_size must not be negative, got %d", ErrInvalidValue, c.Editor.HistorySize)
	case c.TickRateMS <= 0:
		return fmt.Errorf("%w: tick_rate_ms must be positive, got %d", ErrInvalidValue, c.TickRateMS)
	}
	switch c.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: theme must be auto, light or dark, got %q", ErrInvalidValue, c.Theme)
	}
	return nil
}

// Normalize adjusts settings that are valid but unhelpful and returns a
// warning for each change.
func (c *Config) Normalize() []string {
	var warnings []string
	if c.TickRateMS > 0 && c.TickRateMS < minTickRateMS {
		warnings = append(warnings, fmt.Sprintf("tick_rate_ms %d is too fast, using %d", c.TickRateMS, minTickRateMS))
		c.TickRateMS = minTickRateMS
	}
	if c.Log.HotDepth > 0 && c.Log.ColdDepth > 0 && c.Log.ColdDepth < c.Log.HotDepth {
		warnings = append(warnings, fmt.Sprintf("log.cold_depth %d is smaller than log.hot_depth, using %d", c.Log.ColdDepth, c.Log.HotDepth))
		c.Log.ColdDepth = c.Log.HotDepth
	}
	if c.Editor.HistorySize == 0 {
		warnings = append(warnings, "editor.history_size is 0, undo is disabled")
	}
	return warnings
}

// TickRate returns the UI tick interval.
func (c *Config) TickRate() time.Duration {
	return time.Duration(c.TickRateMS) * time.Millisecond
}

// DefaultLevel returns the parsed default log level. Call Validate first.
func (c *Config) DefaultLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.DefaultLevel)
	return level
}

// TargetLevels returns the parsed per-target thresholds, skipping invalid
// entries.
func (c *Config) TargetLevels() map[string]logging.Level {
	levels := make(map[string]logging.Level, len(c.Log.Targets))
	for target, name := range c.Log.Targets {
		if level, err := logging.ParseLevel(name); err == nil {
			levels[target] = level
		}
	}
	return levels
}

// BoardsPath returns the boards file, defaulting to the data directory.
func (c *Config) BoardsPath() string {
	if c.BoardsFile != "" {
		return c.BoardsFile
	}
	return filepath.Join(DataDir(), constants.BoardsFileName)
}

const header = `# kan configuration
#
# log.default_level and log.targets accept: trace, debug, info, warn, error, off
# Environment overrides: KAN_DEBUG=1, KAN_LOG_LEVEL, KAN_BOARDS_FILE
`

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), data...), constants.FilePerm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Exists checks if a configuration file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
