package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ning3739/forge/internal/version"
)

const (
	// Dir is the project-local directory holding forge metadata.
	Dir = ".forge"
	// FileName is the configuration file name inside Dir.
	FileName = "config.json"
)

// FilePath returns the config file path for a project directory.
func FilePath(projectPath string) string {
	return filepath.Join(projectPath, Dir, FileName)
}

// Exists reports whether a project directory contains a forge config file.
func Exists(projectPath string) bool {
	_, err := os.Stat(FilePath(projectPath))
	return err == nil
}

// Load reads and parses the config file of an existing project.
func Load(projectPath string) (*Config, error) {
	path := FilePath(projectPath)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s (run 'forge init' first to create it)", path)
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config file for a project, stamping metadata with the
// current time and forge version.
func Save(projectPath string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	cfg.Metadata = &Metadata{
		CreatedAt:    time.Now().Format(time.RFC3339),
		ForgeVersion: version.Version,
	}

	dir := filepath.Join(projectPath, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}

	return nil
}

// Default returns the configuration used by non-interactive init runs:
// PostgreSQL with SQLAlchemy and Alembic, complete auth, and every
// optional feature enabled.
func Default(name string) *Config {
	if strings.TrimSpace(name) == "" {
		name = "my-fastapi-project"
	}

	return &Config{
		ProjectName: name,
		Database: &DatabaseConfig{
			Type:          DatabasePostgreSQL,
			ORM:           ORMSQLAlchemy,
			MigrationTool: MigrationAlembic,
		},
		Features: Features{
			Auth: AuthConfig{
				Type:         AuthComplete,
				RefreshToken: true,
				Features:     CompleteAuthFeatures,
			},
			CORS:     true,
			DevTools: true,
			Testing:  true,
			Docker:   true,
		},
	}
}
