package cli

import (
	"fmt"
	"os"

	envparse "github.com/caarlos0/env/v11"

	"github.com/ning3739/forge/internal/env"
)

// settingsEnv defines root CLI defaults sourced from FORGE_* env vars.
type settingsEnv struct {
	// LogLevel is the logging level from FORGE_LOG_LEVEL.
	LogLevel string `env:"FORGE_LOG_LEVEL"`
	// NoInput disables interactive prompts from FORGE_NO_INPUT.
	NoInput bool `env:"FORGE_NO_INPUT"`
	// ProjectDir is the project parent directory from FORGE_PROJECT_DIR.
	ProjectDir string `env:"FORGE_PROJECT_DIR"`
}

// loadSettings folds the working directory's .forge.env file and FORGE_*
// env vars into opts. Values already set in the process environment win
// over file values.
func loadSettings(opts *Options) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	if err := env.LoadForgeEnv(cwd); err != nil {
		return err
	}

	var settings settingsEnv
	if err := envparse.Parse(&settings); err != nil {
		return fmt.Errorf("parse FORGE_* environment variables: %w", err)
	}

	if settings.LogLevel != "" {
		opts.LogLevel = settings.LogLevel
	}
	if settings.NoInput {
		opts.NoInput = true
	}
	if settings.ProjectDir != "" {
		opts.ProjectDir = settings.ProjectDir
	}

	return nil
}
