// Package config contains the loader and strongly typed model for the
// project configuration stored at .forge/config.json.
package config

import (
	"fmt"
	"strings"
)

// Database types supported by generated projects.
const (
	DatabasePostgreSQL = "PostgreSQL"
	DatabaseMySQL      = "MySQL"
)

// ORM layers supported by generated projects.
const (
	ORMSQLModel   = "SQLModel"
	ORMSQLAlchemy = "SQLAlchemy"
)

// MigrationAlembic is the only migration tool emitted by the generators.
const MigrationAlembic = "Alembic"

// Authentication levels for generated projects.
const (
	AuthNone     = "none"
	AuthBasic    = "basic"
	AuthComplete = "complete"
)

// CompleteAuthFeatures lists the extras bundled with complete authentication.
var CompleteAuthFeatures = []string{
	"Email Verification",
	"Password Reset",
	"Email Service",
}

// Config mirrors the structure of .forge/config.json. Field order matches
// the order the file is written in.
type Config struct {
	// ProjectName is the generated project directory and package name.
	ProjectName string `json:"project_name"`
	// Database holds database settings, nil when the project is API-only.
	Database *DatabaseConfig `json:"database,omitempty"`
	// Features toggles the optional parts of the generated project.
	Features Features `json:"features"`
	// Metadata records when and by which forge version the config was written.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// DatabaseConfig describes the database layer of a generated project.
type DatabaseConfig struct {
	// Type is the database engine (PostgreSQL or MySQL).
	Type string `json:"type"`
	// ORM selects the object mapper (SQLModel or SQLAlchemy).
	ORM string `json:"orm"`
	// MigrationTool names the migration tool, empty when migrations are disabled.
	MigrationTool string `json:"migration_tool,omitempty"`
}

// Features toggles optional capabilities of the generated project.
type Features struct {
	// Auth configures the authentication level.
	Auth AuthConfig `json:"auth"`
	// CORS enables the CORS middleware.
	CORS bool `json:"cors"`
	// DevTools includes formatter and linter configuration.
	DevTools bool `json:"dev_tools"`
	// Testing includes the pytest test suite.
	Testing bool `json:"testing"`
	// Docker includes Dockerfile and docker-compose configuration.
	Docker bool `json:"docker"`
}

// AuthConfig describes the authentication setup of a generated project.
type AuthConfig struct {
	// Type is the auth level: none, basic, or complete.
	Type string `json:"type"`
	// RefreshToken enables refresh token support (complete auth only).
	RefreshToken bool `json:"refresh_token"`
	// Features lists the extras bundled with the auth level.
	Features []string `json:"features"`
}

// Metadata records provenance information for a written config file.
type Metadata struct {
	// CreatedAt is the RFC 3339 timestamp the config was written at.
	CreatedAt string `json:"created_at"`
	// ForgeVersion is the forge release that wrote the config.
	ForgeVersion string `json:"forge_version"`
}

// Validate checks the config for the fields the generators depend on.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.ProjectName) == "" {
		return fmt.Errorf("missing required field in config: project_name")
	}
	if c.Database != nil {
		if strings.TrimSpace(c.Database.Type) == "" {
			return fmt.Errorf("database config is missing the type field")
		}
		if strings.TrimSpace(c.Database.ORM) == "" {
			return fmt.Errorf("database config is missing the orm field")
		}
	}
	switch c.Features.Auth.Type {
	case "", AuthNone, AuthBasic, AuthComplete:
	default:
		return fmt.Errorf("unknown auth type %q", c.Features.Auth.Type)
	}
	if c.HasAuth() && !c.HasDatabase() {
		return fmt.Errorf("authentication requires a database")
	}
	return nil
}

// HasDatabase reports whether a database layer is configured.
func (c *Config) HasDatabase() bool {
	return c.Database != nil
}

// DatabaseType returns the database engine, or empty when none is configured.
func (c *Config) DatabaseType() string {
	if c.Database == nil {
		return ""
	}
	return c.Database.Type
}

// ORMType returns the configured ORM, or empty when no database is configured.
func (c *Config) ORMType() string {
	if c.Database == nil {
		return ""
	}
	return c.Database.ORM
}

// MigrationToolName returns the migration tool, or empty when disabled.
func (c *Config) MigrationToolName() string {
	if c.Database == nil {
		return ""
	}
	return c.Database.MigrationTool
}

// HasMigration reports whether database migrations are enabled.
func (c *Config) HasMigration() bool {
	return c.MigrationToolName() != ""
}

// HasAuth reports whether any authentication level is enabled.
func (c *Config) HasAuth() bool {
	t := c.Features.Auth.Type
	return t != "" && t != AuthNone
}

// AuthType returns the configured auth level (none when unset).
func (c *Config) AuthType() string {
	if c.Features.Auth.Type == "" {
		return AuthNone
	}
	return c.Features.Auth.Type
}

// HasCompleteAuth reports whether the complete auth level is enabled.
func (c *Config) HasCompleteAuth() bool {
	return c.Features.Auth.Type == AuthComplete
}

// HasRefreshToken reports whether refresh token support is enabled.
func (c *Config) HasRefreshToken() bool {
	return c.Features.Auth.RefreshToken
}

// HasCORS reports whether the CORS middleware is enabled.
func (c *Config) HasCORS() bool {
	return c.Features.CORS
}

// HasDevTools reports whether dev tooling configuration is included.
func (c *Config) HasDevTools() bool {
	return c.Features.DevTools
}

// HasTesting reports whether the test suite is included.
func (c *Config) HasTesting() bool {
	return c.Features.Testing
}

// HasDocker reports whether Docker configuration is included.
func (c *Config) HasDocker() bool {
	return c.Features.Docker
}

// ProjectSlug returns the project name lowered with dashes and spaces
// replaced by underscores, usable as a database or Python identifier.
func (c *Config) ProjectSlug() string {
	s := strings.ToLower(c.ProjectName)
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// CreatedAt returns the metadata timestamp, or empty when absent.
func (c *Config) CreatedAt() string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata.CreatedAt
}

// ForgeVersion returns the forge release recorded in metadata, or empty.
func (c *Config) ForgeVersion() string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata.ForgeVersion
}
