// Package cli defines the command-line interface for forge.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ning3739/forge/internal/logging"
	"github.com/ning3739/forge/internal/ui"
	"github.com/ning3739/forge/internal/version"
)

// Options stores global CLI options shared between commands.
type Options struct {
	// ProjectDir is the directory projects are created in and looked up
	// from. Empty means the working directory.
	ProjectDir string
	// NoInput disables interactive prompts for every command.
	NoInput bool
	// LogLevel is the textual log level applied before each run.
	LogLevel string
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{LogLevel: "info"}
	if err := loadSettings(rootOpts); err != nil {
		return err
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "forge",
		Short:   "forge is a FastAPI project scaffolding tool",
		Long:    "forge generates production-ready FastAPI projects with a configurable database layer, JWT authentication, email service, Alembic migrations, Docker setup, and a pytest suite.",
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Banner(version.Version))
			return cmd.Help()
		},
	}

	cmd.SetVersionTemplate("Forge CLI v{{.Version}}\n")

	cmd.PersistentFlags().String("log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.ProjectDir, "project-dir", opts.ProjectDir, "Directory to create projects in (defaults to the working directory)")

	cmd.AddCommand(
		newInitCommand(opts),
		newDockerCommand(opts),
		newInfoCommand(opts),
	)

	return cmd
}

// resolveProjectDir returns the directory projects are created in.
func resolveProjectDir(opts *Options) (string, error) {
	if opts.ProjectDir != "" {
		return opts.ProjectDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return dir, nil
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
