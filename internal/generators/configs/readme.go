package configs

import (
	"context"
	"fmt"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

func generateReadme(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	var features []string
	features = append(features, "FastAPI application with async lifespan management")
	if cfg.HasDatabase() {
		features = append(features, fmt.Sprintf("%s database with %s ORM", cfg.DatabaseType(), cfg.ORMType()))
	}
	if cfg.HasMigration() {
		features = append(features, "Database migrations with Alembic")
	}
	switch cfg.AuthType() {
	case config.AuthBasic:
		features = append(features, "JWT authentication (access tokens)")
	case config.AuthComplete:
		features = append(features, "Complete JWT authentication (refresh tokens, email verification, password reset)")
	}
	if cfg.HasCORS() {
		features = append(features, "CORS middleware")
	}
	if cfg.HasTesting() {
		features = append(features, "Pytest test suite")
	}
	if cfg.HasDocker() {
		features = append(features, "Docker and docker-compose deployment")
	}

	var list strings.Builder
	for _, f := range features {
		fmt.Fprintf(&list, "- %s\n", f)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `# %s

%s is a FastAPI application scaffolded with forge.

## Features

%s
## Quick start

Install the dependencies:

`+"```bash\nuv sync\n```"+`

Run the development server:

`+"```bash\nuvicorn app.main:app --reload\n```"+`

The interactive API documentation is served at http://127.0.0.1:8000/docs.

## Configuration

Settings are read from environment variables. Copy the example file and
adjust it before starting the server:

`+"```bash\ncp secret/.env.example secret/.env.development\n```"+`
`, cfg.ProjectName, cfg.ProjectName, list.String())

	if cfg.HasMigration() {
		b.WriteString(`
## Migrations

` + "```bash\nalembic revision --autogenerate -m \"describe your change\"\nalembic upgrade head\n```" + `
`)
	}
	if cfg.HasTesting() {
		b.WriteString(`
## Tests

` + "```bash\npytest\n```" + `
`)
	}
	if cfg.HasDocker() {
		b.WriteString(`
## Docker

` + "```bash\ndocker compose up --build\n```" + `
`)
	}

	return tree.WriteString("README.md", b.String())
}
