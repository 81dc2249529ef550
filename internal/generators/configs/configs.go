// Package configs registers the units that write project-level
// configuration files: pyproject.toml, README, .gitignore, and the
// environment file pair under secret/.
package configs

import (
	"context"
	"fmt"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the project configuration units to the registry.
func Register(reg *orchestrator.Registry) {
	reg.MustRegister(orchestrator.Unit{
		Name:        "pyproject",
		Category:    "config",
		Priority:    10,
		Description: "Write pyproject.toml with dependencies for the selected features",
		Generate:    generatePyproject,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "readme",
		Category:    "config",
		Priority:    11,
		Description: "Write the project README",
		Generate:    generateReadme,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "gitignore",
		Category:    "config",
		Priority:    12,
		Description: "Write .gitignore",
		Generate:    generateGitignore,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "env-file",
		Category:    "config",
		Priority:    13,
		Description: "Write the development and example environment files",
		Generate:    generateEnvFiles,
	})
}

func generatePyproject(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	deps := []string{
		"fastapi>=0.110.0",
		"uvicorn[standard]>=0.29.0",
		"pydantic>=2.6.0",
		"pydantic-settings>=2.2.0",
		"python-dotenv>=1.0.0",
		"loguru>=0.7.2",
	}

	if cfg.HasDatabase() {
		if cfg.ORMType() == config.ORMSQLModel {
			deps = append(deps, "sqlmodel>=0.0.16")
		} else {
			deps = append(deps, "sqlalchemy>=2.0.25")
		}
		switch cfg.DatabaseType() {
		case config.DatabasePostgreSQL:
			deps = append(deps, "asyncpg>=0.29.0", "psycopg2-binary>=2.9.9")
		case config.DatabaseMySQL:
			deps = append(deps, "aiomysql>=0.2.0", "pymysql>=1.1.0")
		}
	}
	if cfg.HasMigration() {
		deps = append(deps, "alembic>=1.13.0")
	}
	if cfg.HasAuth() {
		deps = append(deps,
			"python-jose[cryptography]>=3.3.0",
			"passlib[bcrypt]>=1.7.4",
			"email-validator>=2.1.0",
		)
	}
	if cfg.HasCompleteAuth() {
		deps = append(deps, "aiosmtplib>=3.0.0")
	}

	var dev []string
	if cfg.HasTesting() {
		dev = append(dev, "pytest>=8.0.0", "pytest-asyncio>=0.23.0", "httpx>=0.27.0")
	}
	if cfg.HasDevTools() {
		dev = append(dev, "ruff>=0.3.0", "mypy>=1.9.0")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `[project]
name = %q
version = "0.1.0"
description = "%s is a FastAPI application."
readme = "README.md"
requires-python = ">=3.10"
dependencies = [
%s]
`, cfg.ProjectSlug(), cfg.ProjectName, tomlList(deps))

	if len(dev) > 0 {
		fmt.Fprintf(&b, `
[dependency-groups]
dev = [
%s]
`, tomlList(dev))
	}

	b.WriteString(`
[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"

[tool.hatch.build.targets.wheel]
packages = ["app"]
`)

	if cfg.HasDevTools() {
		b.WriteString(`
[tool.ruff]
line-length = 100
target-version = "py310"

[tool.mypy]
python_version = "3.10"
ignore_missing_imports = true
`)
	}
	if cfg.HasTesting() {
		b.WriteString(`
[tool.pytest.ini_options]
asyncio_mode = "auto"
testpaths = ["tests"]
`)
	}

	return tree.WriteString("pyproject.toml", b.String())
}

func tomlList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "    %q,\n", item)
	}
	return b.String()
}
