// Package main provides the entry point for the kan CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/donghojung/kan/internal/app"
	"github.com/donghojung/kan/internal/logging"
	"github.com/donghojung/kan/internal/tui"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"
	// Commit is the git commit hash, set at build time via ldflags
	Commit = "unknown"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kan",
	Short: "kan - a terminal kanban board",
	Long: `kan keeps boards of cards in a YAML file and edits them in the terminal.
Run without arguments to open the board view.`,
	RunE:         runMain,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/kan/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(tagsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}

func printVersion() {
	fmt.Printf("kan %s (%s)\n", Version, Commit)
}

func newApp() (*app.App, error) {
	a, err := app.New(app.Options{ConfigPath: configPath})
	if err != nil {
		return nil, fmt.Errorf("failed to create app: %w", err)
	}
	return a, nil
}

// runMain opens the board view.
func runMain(cmd *cobra.Command, args []string) (err error) {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := a.LoadBoards(); err != nil {
		return err
	}

	if addr := a.Config.MetricsAddr; addr != "" {
		srv := newMetricsServer(addr, a)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				logging.For("metrics").Warn("metrics server stopped: %v", err)
			}
		}()
		defer func() { _ = srv.Shutdown(context.Background()) }()
	}

	logging.Info("opening %s", a.BoardsPath)
	return tui.Run(a)
}
