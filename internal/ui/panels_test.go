package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/ning3739/forge/internal/config"
)

func fullConfig() *config.Config {
	return config.Default("my-api")
}

func TestBanner(t *testing.T) {
	out := Banner("0.1.2")

	assert.Contains(t, out, "v0.1.2", "expected version tagline")
	assert.Contains(t, out, "FastAPI project scaffolding tool", "expected tagline text")
}

func TestPanel_TitleAndBorders(t *testing.T) {
	out := Panel("Test Panel", PinkColor, []string{"first", "second"})

	assert.Contains(t, out, "Test Panel", "expected title in top border")
	assert.Contains(t, out, "╭─", "expected rounded top border")
	assert.Contains(t, out, "╰", "expected rounded bottom border")
	assert.Contains(t, out, "first", "expected content line")
	assert.Contains(t, out, "second", "expected content line")
}

func TestPanel_UniformWidth(t *testing.T) {
	out := Panel("T", PinkColor, []string{"short", strings.Repeat("x", 70)})

	rows := strings.Split(out, "\n")
	width := lipgloss.Width(rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, width, lipgloss.Width(row), "expected every row to share the border width")
	}
}

func TestSummary_FullConfig(t *testing.T) {
	out := Summary(fullConfig())

	assert.Contains(t, out, "Configuration Summary", "expected panel title")
	assert.Contains(t, out, "my-api", "expected project name")
	assert.Contains(t, out, "PostgreSQL with SQLAlchemy", "expected database line")
	assert.Contains(t, out, "Alembic", "expected migration line")
	assert.Contains(t, out, "Complete JWT Auth (with Refresh Token)", "expected auth line")
	assert.Contains(t, out, "Email Verification, Password Reset, Email Service", "expected auth extras")
	assert.Contains(t, out, "CORS, Input Validation, Password Hashing", "expected security line")
	assert.Contains(t, out, "API Docs, Black, Ruff", "expected dev tools line")
	assert.Contains(t, out, "pytest, httpx, coverage", "expected testing line")
	assert.Contains(t, out, "Docker, Docker Compose", "expected deployment line")
}

func TestSummary_NoDatabase(t *testing.T) {
	cfg := &config.Config{
		ProjectName: "api-only",
		Features: config.Features{
			Auth:    config.AuthConfig{Type: config.AuthNone, Features: []string{}},
			Testing: true,
		},
	}

	out := Summary(cfg)

	assert.Contains(t, out, "None (API only)", "expected the no-database line")
	assert.NotContains(t, out, "Alembic", "expected no migration line")
	assert.NotContains(t, out, "JWT Auth", "expected no auth line")
	assert.Contains(t, out, "Input Validation, Password Hashing", "expected security line without CORS")
	assert.NotContains(t, out, "CORS,", "expected CORS to be omitted")
}

func TestSummary_BasicAuth(t *testing.T) {
	cfg := fullConfig()
	cfg.Features.Auth = config.AuthConfig{Type: config.AuthBasic, Features: []string{}}

	out := Summary(cfg)

	assert.Contains(t, out, "Basic JWT Auth", "expected basic auth line")
	assert.NotContains(t, out, "Refresh Token", "expected no refresh token suffix")
	assert.NotContains(t, out, "Email Verification", "expected no complete auth extras")
}

func TestEmailWarning(t *testing.T) {
	out := EmailWarning()

	assert.Contains(t, out, "Email Configuration", "expected panel title")
	assert.Contains(t, out, "EMAIL_HOST=smtp.gmail.com", "expected SMTP host setting")
	assert.Contains(t, out, "EMAIL_HOST_PASSWORD=your-app-password", "expected password setting")
	assert.Contains(t, out, "secret/.env.development", "expected the env file path")
}

func TestNextSteps(t *testing.T) {
	cfg := fullConfig()
	out := NextSteps(cfg, "/tmp/my-api")

	assert.Contains(t, out, "Project created successfully", "expected success line")
	assert.Contains(t, out, "/tmp/my-api", "expected project location")
	assert.Contains(t, out, "cd my-api", "expected cd step")
	assert.Contains(t, out, "uv sync", "expected install step")
	assert.Contains(t, out, "alembic upgrade head", "expected migration step")
	assert.Contains(t, out, "uvicorn app.main:app --reload", "expected server step")
	assert.Contains(t, out, "docker compose up --build", "expected docker step")
}

func TestNextSteps_Minimal(t *testing.T) {
	cfg := &config.Config{
		ProjectName: "api-only",
		Features: config.Features{
			Auth: config.AuthConfig{Type: config.AuthNone, Features: []string{}},
		},
	}

	out := NextSteps(cfg, "/tmp/api-only")

	assert.NotContains(t, out, "alembic", "expected no migration step")
	assert.NotContains(t, out, "docker compose", "expected no docker step")
	assert.Contains(t, out, "uvicorn app.main:app --reload", "expected server step")
}

func TestInfo(t *testing.T) {
	out := Info("0.1.2", "22.3k")

	assert.Contains(t, out, "Forge Info", "expected panel title")
	assert.Contains(t, out, "v0.1.2", "expected version")
	assert.Contains(t, out, "22.3k", "expected download count")
	assert.Contains(t, out, "MIT License", "expected license")
}
