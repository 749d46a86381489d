// package main is the entry point for the pr-describer tool
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alan/pr-describer/cmd"
	configcmd "github.com/alan/pr-describer/cmd/config"
	"github.com/alan/pr-describer/cmd/describe"
	"github.com/alan/pr-describer/cmd/render"
	"github.com/alan/pr-describer/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var configFile string
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "pr-describer",
		Short: "A CLI tool for generating managed GitHub pull request descriptions",
		Long: `pr-describer builds a pull request description from its commits, changed
files and reviews: a commit summary grouped by conventional-commit type and
a checklist, while keeping the text the author wrote between the
user-additions markers.`,
		PersistentPreRun: func(cobraCmd *cobra.Command, _ []string) {
			setupLogger(cobraCmd.ErrOrStderr(), logLevel, logFormat)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", cmd.DefaultConfigFile, "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	// Create commands with access to the global config file
	rootCmd.AddCommand(configcmd.NewConfigCmd(&configFile, config.LoadConfig, config.SaveConfig))
	rootCmd.AddCommand(describe.NewDescribeCmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(render.NewRenderCmd(&configFile, config.LoadConfig))

	return rootCmd
}

// setupLogger writes logs to w so that rendered descriptions on stdout stay pipeable
func setupLogger(w io.Writer, level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
}
