// Package deployment registers the units that write the generated
// application's container setup: Dockerfile, docker-compose.yml, and
// .dockerignore.
package deployment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
	"github.com/ning3739/forge/internal/orchestrator"
)

// Register adds the deployment units to the registry.
func Register(reg *orchestrator.Registry) {
	dockerEnabled := func(cfg *config.Config) bool { return cfg.HasDocker() }

	reg.MustRegister(orchestrator.Unit{
		Name:        "dockerfile",
		Category:    "deployment",
		Priority:    100,
		EnabledWhen: dockerEnabled,
		Description: "Write the application Dockerfile",
		Generate:    generateDockerfile,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "docker-compose",
		Category:    "deployment",
		Priority:    101,
		Requires:    []string{"dockerfile"},
		EnabledWhen: dockerEnabled,
		Description: "Write docker-compose.yml",
		Generate:    generateCompose,
	})
	reg.MustRegister(orchestrator.Unit{
		Name:        "dockerignore",
		Category:    "deployment",
		Priority:    102,
		EnabledWhen: dockerEnabled,
		Description: "Write .dockerignore",
		Generate:    generateDockerignore,
	})
}

func generateDockerfile(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	buildDeps := "gcc"
	switch cfg.DatabaseType() {
	case config.DatabasePostgreSQL:
		buildDeps = "gcc \\\n    libpq-dev"
	case config.DatabaseMySQL:
		buildDeps = "gcc \\\n    default-libmysqlclient-dev"
	}

	content := fmt.Sprintf(`FROM python:3.10-slim

WORKDIR /app

RUN apt-get update && apt-get install -y --no-install-recommends \
    %s \
    && rm -rf /var/lib/apt/lists/*

COPY pyproject.toml ./

RUN pip install --no-cache-dir --upgrade pip \
    && pip install --no-cache-dir -e .

COPY ./app ./app

EXPOSE 8000

CMD ["uvicorn", "app.main:app", "--host", "0.0.0.0", "--port", "8000"]
`, buildDeps)

	return tree.WriteString("Dockerfile", content)
}

// Compose file structure, marshalled with yaml.v3. Field order here is
// the order the keys appear in the written file.
type composeFile struct {
	Version  string                    `yaml:"version"`
	Services map[string]composeService `yaml:"services"`
	Volumes  map[string]struct{}       `yaml:"volumes,omitempty"`
	Networks map[string]composeNetwork `yaml:"networks"`
}

type composeService struct {
	Build         string   `yaml:"build,omitempty"`
	Image         string   `yaml:"image,omitempty"`
	ContainerName string   `yaml:"container_name,omitempty"`
	Ports         []string `yaml:"ports,omitempty"`
	Environment   []string `yaml:"environment,omitempty"`
	Volumes       []string `yaml:"volumes,omitempty"`
	DependsOn     []string `yaml:"depends_on,omitempty"`
	Restart       string   `yaml:"restart,omitempty"`
	Networks      []string `yaml:"networks,omitempty"`
}

type composeNetwork struct {
	Driver string `yaml:"driver"`
}

func generateCompose(_ context.Context, tree *fsutil.Tree, cfg *config.Config) error {
	slug := cfg.ProjectSlug()

	app := composeService{
		Build:         ".",
		ContainerName: slug,
		Ports:         []string{"8000:8000"},
		Environment:   []string{"APP_ENV=production"},
		Volumes:       []string{"./app:/app/app"},
		Restart:       "unless-stopped",
		Networks:      []string{"app-network"},
	}

	services := map[string]composeService{}
	volumes := map[string]struct{}{}

	switch cfg.DatabaseType() {
	case config.DatabasePostgreSQL:
		app.Environment = append(app.Environment,
			fmt.Sprintf("DATABASE_URL=postgresql://postgres:postgres@db:5432/%s", slug))
		app.DependsOn = []string{"db"}
		services["db"] = composeService{
			Image: "postgres:15-alpine",
			Environment: []string{
				"POSTGRES_USER=postgres",
				"POSTGRES_PASSWORD=postgres",
				"POSTGRES_DB=" + slug,
			},
			Ports:    []string{"5432:5432"},
			Volumes:  []string{"postgres_data:/var/lib/postgresql/data"},
			Restart:  "unless-stopped",
			Networks: []string{"app-network"},
		}
		volumes["postgres_data"] = struct{}{}
	case config.DatabaseMySQL:
		app.Environment = append(app.Environment,
			fmt.Sprintf("DATABASE_URL=mysql://root:mysql@db:3306/%s", slug))
		app.DependsOn = []string{"db"}
		services["db"] = composeService{
			Image: "mysql:8.0",
			Environment: []string{
				"MYSQL_ROOT_PASSWORD=mysql",
				"MYSQL_DATABASE=" + slug,
			},
			Ports:    []string{"3306:3306"},
			Volumes:  []string{"mysql_data:/var/lib/mysql"},
			Restart:  "unless-stopped",
			Networks: []string{"app-network"},
		}
		volumes["mysql_data"] = struct{}{}
	}

	services["app"] = app

	return tree.WriteYAML("docker-compose.yml", composeFile{
		Version:  "3.8",
		Services: services,
		Volumes:  volumes,
		Networks: map[string]composeNetwork{
			"app-network": {Driver: "bridge"},
		},
	})
}

func generateDockerignore(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
	sections := []struct {
		title string
		lines []string
	}{
		{"Python", []string{
			"__pycache__/",
			"*.py[cod]",
			"*.egg-info/",
			"build/",
			"dist/",
			".eggs/",
		}},
		{"Virtual environment", []string{
			".venv/",
			"venv/",
			"ENV/",
			"env/",
		}},
		{"IDE", []string{
			".vscode/",
			".idea/",
			"*.swp",
			"*.swo",
		}},
		{"Git", []string{
			".git/",
			".gitignore",
		}},
		{"Environment variables", []string{
			".env",
			".env.*",
			"!.env.example",
			"secret/",
		}},
		{"Testing", []string{
			".pytest_cache/",
			".coverage",
			"htmlcov/",
			".tox/",
			"tests/",
		}},
		{"Documentation", []string{
			"*.md",
			"docs/",
		}},
		{"Misc", []string{
			".DS_Store",
			"Thumbs.db",
			"*.log",
			"logs/",
			".forge/",
			"docker-compose.yml",
			"Dockerfile",
		}},
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s\n", s.title)
		for _, line := range s.lines {
			b.WriteString(line + "\n")
		}
	}

	return tree.WriteString(".dockerignore", b.String())
}
