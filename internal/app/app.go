// Package app provides the main application context and dependency injection.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/donghojung/kan/internal/config"
	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/logging"
)

// Options controls how New builds the application context.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string
	// LookupEnv reads environment overrides; defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Clock stamps log records; defaults to time.Now.
	Clock func() time.Time
}

// App represents the main application context with all dependencies.
type App struct {
	// Paths
	ConfigPath string // config file, which may not exist
	BoardsPath string // boards file, which may not exist
	LogPath    string // mirror file for drained log records, empty if disabled

	// State
	Config *config.Config     // Effective configuration after env overrides
	Boards *kanban.Collection // Loaded by LoadBoards
	Logger *logging.Logger    // Process-wide log sink, also installed as the global
	Debug  bool               // Debug mode enabled

	// Metrics
	Registry *prometheus.Registry
	Metrics  *logging.Metrics
}

// New loads the configuration, applies environment overrides and creates
// the logger. The logger is installed as the global before New returns.
func New(opts Options) (*App, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(opts.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", opts.ConfigPath, err)
	}
	warnings := cfg.Normalize()

	a := &App{
		ConfigPath: opts.ConfigPath,
		BoardsPath: cfg.BoardsPath(),
		Config:     cfg,
		Boards:     &kanban.Collection{},
		Debug:      cfg.Palette.Debug,
		Registry:   prometheus.NewRegistry(),
	}
	a.Metrics = logging.NewMetrics(a.Registry)

	logOpts := logging.Options{
		HotDepth:     cfg.Log.HotDepth,
		ColdDepth:    cfg.Log.ColdDepth,
		DefaultLevel: cfg.DefaultLevel(),
		Metrics:      a.Metrics,
		Clock:        opts.Clock,
	}
	if cfg.Log.File != "" {
		a.LogPath = expandHome(cfg.Log.File)
		if err := os.MkdirAll(filepath.Dir(a.LogPath), constants.DirPerm); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := logging.OpenFile(a.LogPath)
		if err != nil {
			return nil, err
		}
		logOpts.Output = f
	}

	a.Logger = logging.NewLogger(logOpts)
	for target, level := range cfg.TargetLevels() {
		a.Logger.SetTargetLevel(target, level)
	}
	logging.SetGlobal(a.Logger)

	for _, warning := range warnings {
		logging.Warn("config: %s", warning)
	}
	logging.Debug("config loaded from %s (exists=%v)", a.ConfigPath, config.Exists(a.ConfigPath))
	return a, nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// LoadBoards reads the boards file into a.Boards.
func (a *App) LoadBoards() error {
	boards, err := kanban.Load(a.BoardsPath)
	if err != nil {
		return err
	}
	a.Boards = boards
	return nil
}

// SaveBoards writes a.Boards to the boards file.
func (a *App) SaveBoards() error {
	return a.Boards.Save(a.BoardsPath)
}

// SaveConfig writes the effective configuration back to the config file.
func (a *App) SaveConfig() error {
	return a.Config.Save(a.ConfigPath)
}

// Close drains pending log records and closes the log file. It reports the
// first write error the mirror file hit, if any.
func (a *App) Close() error {
	closeErr := a.Logger.Close()
	return errors.Join(a.Logger.OutputError(), closeErr)
}
