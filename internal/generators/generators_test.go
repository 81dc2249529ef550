package generators_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/generators"
	"github.com/ning3739/forge/internal/orchestrator"
)

// generate runs every built-in unit against a fresh directory and returns
// the report together with the tree.
func generate(t *testing.T, cfg *config.Config, opts orchestrator.Options) (*orchestrator.Report, *fsutil.Tree) {
	t.Helper()

	reg := orchestrator.NewRegistry()
	generators.RegisterBuiltins(reg)

	tree := fsutil.NewTree(t.TempDir())
	report, err := orchestrator.New(reg, nil).Run(context.Background(), tree, cfg, opts)
	require.NoError(t, err)
	require.Equal(t, orchestrator.PhaseCompleted, report.Phase)
	return report, tree
}

func TestGenerateFullProject(t *testing.T) {
	cfg := config.Default("demo-api")
	report, tree := generate(t, cfg, orchestrator.Options{})

	// Every registered unit is enabled under the default configuration.
	assert.Len(t, report.Completed, len(report.Planned))

	for _, rel := range []string{
		"pyproject.toml",
		"README.md",
		".gitignore",
		"secret/.env.example",
		"secret/.env.development",
		"app/__init__.py",
		"app/main.py",
		"app/core/config/settings.py",
		"app/core/logger.py",
		"app/core/database/connection.py",
		"app/core/security.py",
		"app/models/user.py",
		"app/schemas/user.py",
		"app/crud/user.py",
		"app/models/token.py",
		"app/services/auth.py",
		"app/utils/email.py",
		"app/utils/email_templates.py",
		"app/routers/v1/auth.py",
		"app/routers/v1/users.py",
		"app/routers/v1/__init__.py",
		"alembic.ini",
		"alembic/env.py",
		"Dockerfile",
		"docker-compose.yml",
		".dockerignore",
		"tests/conftest.py",
		"tests/test_main.py",
		"tests/test_auth.py",
		"tests/api/test_users.py",
	} {
		assert.True(t, tree.Exists(rel), "expected %s to be generated", rel)
	}
}

func TestGenerateMinimalProject(t *testing.T) {
	cfg := &config.Config{
		ProjectName: "tiny",
		Features: config.Features{
			Auth: config.AuthConfig{Type: config.AuthNone, Features: []string{}},
		},
	}
	require.NoError(t, cfg.Validate())

	_, tree := generate(t, cfg, orchestrator.Options{})

	assert.True(t, tree.Exists("pyproject.toml"))
	assert.True(t, tree.Exists("app/main.py"))

	// Nothing database-, auth-, docker-, or test-related is written.
	for _, rel := range []string{
		"app/core/database",
		"app/core/security.py",
		"app/models",
		"app/services",
		"app/routers",
		"alembic.ini",
		"Dockerfile",
		"docker-compose.yml",
		"tests",
	} {
		assert.False(t, tree.Exists(rel), "did not expect %s for a minimal project", rel)
	}
}

func TestGenerateBasicAuthSkipsEmailAndTokens(t *testing.T) {
	cfg := config.Default("basic-api")
	cfg.Features.Auth = config.AuthConfig{Type: config.AuthBasic, Features: []string{}}

	_, tree := generate(t, cfg, orchestrator.Options{})

	assert.True(t, tree.Exists("app/core/security.py"))
	assert.True(t, tree.Exists("app/routers/v1/auth.py"))
	assert.False(t, tree.Exists("app/models/token.py"))
	assert.False(t, tree.Exists("app/utils/email.py"))
	assert.False(t, tree.Exists("app/core/config/modules/email.py"))
}

func TestGenerateMySQLProject(t *testing.T) {
	cfg := config.Default("mysql-api")
	cfg.Database.Type = config.DatabaseMySQL
	cfg.Database.ORM = config.ORMSQLModel

	_, tree := generate(t, cfg, orchestrator.Options{})

	compose, err := os.ReadFile(tree.Path("docker-compose.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(compose), "mysql")
	assert.NotContains(t, string(compose), "postgres")

	pyproject, err := os.ReadFile(tree.Path("pyproject.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(pyproject), "sqlmodel")
}

func TestGenerateDeploymentOnly(t *testing.T) {
	cfg := config.Default("redeploy")

	reg := orchestrator.NewRegistry()
	generators.RegisterBuiltins(reg)

	tree := fsutil.NewTree(t.TempDir())
	opts := orchestrator.Options{OnlyCategories: []string{"deployment"}, RelaxedRequires: true}
	report, err := orchestrator.New(reg, nil).Run(context.Background(), tree, cfg, opts)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"dockerfile", "docker-compose", "dockerignore"}, report.Completed)
	assert.True(t, tree.Exists("Dockerfile"))
	assert.True(t, tree.Exists("docker-compose.yml"))
	assert.True(t, tree.Exists(".dockerignore"))
	assert.False(t, tree.Exists("app"))
}

// Every requires reference of every built-in unit must stay resolvable for
// any feature combination that enables the dependent, so a configuration
// choice can never fail resolution.
func TestBuiltinRosterResolvesForAllConfigurations(t *testing.T) {
	databases := []*config.DatabaseConfig{
		nil,
		{Type: config.DatabasePostgreSQL, ORM: config.ORMSQLAlchemy, MigrationTool: config.MigrationAlembic},
		{Type: config.DatabasePostgreSQL, ORM: config.ORMSQLModel},
		{Type: config.DatabaseMySQL, ORM: config.ORMSQLAlchemy},
	}
	auths := []string{config.AuthNone, config.AuthBasic, config.AuthComplete}

	for _, db := range databases {
		for _, auth := range auths {
			if db == nil && auth != config.AuthNone {
				continue
			}
			for _, flags := range []bool{false, true} {
				cfg := &config.Config{
					ProjectName: "matrix",
					Database:    db,
					Features: config.Features{
						Auth:     config.AuthConfig{Type: auth, RefreshToken: auth == config.AuthComplete, Features: []string{}},
						CORS:     flags,
						DevTools: flags,
						Testing:  flags,
						Docker:   flags,
					},
				}
				require.NoError(t, cfg.Validate())

				reg := orchestrator.NewRegistry()
				generators.RegisterBuiltins(reg)

				tree := fsutil.NewTree(t.TempDir())
				report, err := orchestrator.New(reg, nil).Run(context.Background(), tree, cfg, orchestrator.Options{})
				require.NoError(t, err, "db=%v auth=%s flags=%v", db, auth, flags)
				assert.Equal(t, orchestrator.PhaseCompleted, report.Phase)
			}
		}
	}
}
