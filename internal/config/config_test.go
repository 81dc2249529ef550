package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfigJSON = `{
  "project_name": "blog-api",
  "database": {
    "type": "PostgreSQL",
    "orm": "SQLModel",
    "migration_tool": "Alembic"
  },
  "features": {
    "auth": {
      "type": "complete",
      "refresh_token": true,
      "features": ["Email Verification", "Password Reset", "Email Service"]
    },
    "cors": true,
    "dev_tools": true,
    "testing": true,
    "docker": true
  },
  "metadata": {
    "created_at": "2025-03-14T09:26:53Z",
    "forge_version": "0.1.2"
  }
}`

func TestConfigAccessorsFull(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(fullConfigJSON), &cfg))

	assert.Equal(t, "blog-api", cfg.ProjectName)
	assert.True(t, cfg.HasDatabase())
	assert.Equal(t, DatabasePostgreSQL, cfg.DatabaseType())
	assert.Equal(t, ORMSQLModel, cfg.ORMType())
	assert.Equal(t, MigrationAlembic, cfg.MigrationToolName())
	assert.True(t, cfg.HasMigration())
	assert.True(t, cfg.HasAuth())
	assert.Equal(t, AuthComplete, cfg.AuthType())
	assert.True(t, cfg.HasCompleteAuth())
	assert.True(t, cfg.HasRefreshToken())
	assert.True(t, cfg.HasCORS())
	assert.True(t, cfg.HasDevTools())
	assert.True(t, cfg.HasTesting())
	assert.True(t, cfg.HasDocker())
	assert.Equal(t, "2025-03-14T09:26:53Z", cfg.CreatedAt())
	assert.Equal(t, "0.1.2", cfg.ForgeVersion())

	require.NoError(t, cfg.Validate())
}

func TestConfigAccessorsAPIOnly(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(`{
		"project_name": "api-only",
		"features": {
			"auth": {"type": "none", "refresh_token": false, "features": []},
			"cors": true,
			"dev_tools": false,
			"testing": false,
			"docker": false
		}
	}`), &cfg))

	assert.False(t, cfg.HasDatabase())
	assert.Empty(t, cfg.DatabaseType())
	assert.Empty(t, cfg.ORMType())
	assert.False(t, cfg.HasMigration())
	assert.False(t, cfg.HasAuth())
	assert.Equal(t, AuthNone, cfg.AuthType())
	assert.False(t, cfg.HasRefreshToken())
	assert.Empty(t, cfg.CreatedAt())

	require.NoError(t, cfg.Validate())
}

func TestConfigNullMigrationTool(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(`{
		"project_name": "p",
		"database": {"type": "MySQL", "orm": "SQLAlchemy", "migration_tool": null},
		"features": {"auth": {"type": "basic", "refresh_token": false, "features": []}}
	}`), &cfg))

	assert.Equal(t, DatabaseMySQL, cfg.DatabaseType())
	assert.False(t, cfg.HasMigration())
	assert.True(t, cfg.HasAuth())
	assert.Equal(t, AuthBasic, cfg.AuthType())
	assert.False(t, cfg.HasCompleteAuth())
}

func TestValidate(t *testing.T) {
	t.Run("missing project name", func(t *testing.T) {
		cfg := &Config{}
		require.Error(t, cfg.Validate())
		assert.Contains(t, cfg.Validate().Error(), "project_name")
	})

	t.Run("incomplete database block", func(t *testing.T) {
		cfg := &Config{ProjectName: "p", Database: &DatabaseConfig{Type: DatabasePostgreSQL}}
		require.Error(t, cfg.Validate())
	})

	t.Run("unknown auth type", func(t *testing.T) {
		cfg := &Config{ProjectName: "p", Features: Features{Auth: AuthConfig{Type: "oauth"}}}
		require.Error(t, cfg.Validate())
	})

	t.Run("auth without database", func(t *testing.T) {
		cfg := &Config{ProjectName: "p", Features: Features{Auth: AuthConfig{Type: AuthBasic}}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a database")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default("")
	assert.Equal(t, "my-fastapi-project", cfg.ProjectName)
	assert.Equal(t, DatabasePostgreSQL, cfg.DatabaseType())
	assert.Equal(t, ORMSQLAlchemy, cfg.ORMType())
	assert.True(t, cfg.HasMigration())
	assert.True(t, cfg.HasCompleteAuth())
	assert.True(t, cfg.HasRefreshToken())
	assert.True(t, cfg.HasDocker())
	require.NoError(t, cfg.Validate())

	named := Default("blog")
	assert.Equal(t, "blog", named.ProjectName)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	cfg := Default("roundtrip")
	require.NoError(t, Save(dir, cfg))
	assert.True(t, Exists(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", loaded.ProjectName)
	assert.Equal(t, DatabasePostgreSQL, loaded.DatabaseType())
	assert.NotEmpty(t, loaded.CreatedAt(), "save stamps metadata")
	assert.NotEmpty(t, loaded.ForgeVersion())
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, Exists(dir))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forge init")
}
