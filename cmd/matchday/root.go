// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration and sets up the structured logger before any subcommand runs

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/config"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool
	cfg        *config.Config
	logger     *slog.Logger
	current    *app
)

var rootCmd = &cobra.Command{
	Use:   "matchday",
	Short: "Sports content aggregator with HTTP and MCP surfaces",
	Long: `
███╗   ███╗ █████╗ ████████╗ ██████╗██╗  ██╗██████╗  █████╗ ██╗   ██╗
████╗ ████║██╔══██╗╚══██╔══╝██╔════╝██║  ██║██╔══██╗██╔══██╗╚██╗ ██╔╝
██╔████╔██║███████║   ██║   ██║     ███████║██║  ██║███████║ ╚████╔╝
██║╚██╔╝██║██╔══██║   ██║   ██║     ██╔══██║██║  ██║██╔══██║  ╚██╔╝
██║ ╚═╝ ██║██║  ██║   ██║   ╚██████╗██║  ██║██████╔╝██║  ██║   ██║
╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝   ╚═╝

Sports news and fixtures from feeds, scoreboards, and the content store.

Sources are fetched in parallel, cleaned, deduplicated, and merged into
pages. Failing sources fall back to their last cached payload.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(config.ExpandPath(configPath))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current != nil {
			err := current.Close()
			current = nil
			if err != nil {
				return fmt.Errorf("failed to close cache: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ~/.config/matchday/sources.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of formatted text")
}

// newLogger logs to stderr so stdout stays clean for output and MCP framing.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadApp builds the engine for commands that aggregate. It is closed by the
// root command after the subcommand finishes.
func loadApp() (*app, error) {
	if current != nil {
		return current, nil
	}
	a, err := newApp(cfg, os.Getenv, logger)
	if err != nil {
		return nil, err
	}
	current = a
	return a, nil
}
