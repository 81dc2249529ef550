package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ning3739/forge/internal/config"
)

// minPanelInner is the minimum content width of a panel, border cells excluded.
const minPanelInner = 50

// Panel renders a rounded-border box with the title inline in the top
// border. The width grows to fit the widest content line.
func Panel(title string, accent lipgloss.TerminalColor, lines []string) string {
	inner := minPanelInner
	for _, l := range lines {
		if w := lipgloss.Width(l) + 2; w > inner {
			inner = w
		}
	}
	if w := lipgloss.Width(title) + 4; w > inner {
		inner = w
	}

	border := lipgloss.NewStyle().Foreground(accent)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)

	dashes := inner - lipgloss.Width(title) - 3
	top := border.Render("╭─ ") + titleStyle.Render(title) +
		border.Render(" "+strings.Repeat("─", dashes)+"╮")

	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		pad := strings.Repeat(" ", inner-1-lipgloss.Width(l))
		rows = append(rows, border.Render("│")+" "+l+pad+border.Render("│"))
	}

	bottom := border.Render("╰" + strings.Repeat("─", inner) + "╯")

	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}

// Summary renders the configuration summary shown after generation.
func Summary(cfg *config.Config) string {
	label := func(s string) string { return LabelStyle.Render(s+":") + " " }

	var lines []string
	lines = append(lines, label("Project")+TitleStyle.Render(cfg.ProjectName))

	if cfg.HasDatabase() {
		lines = append(lines, label("Database")+ValueStyle.Render(cfg.DatabaseType()+" with "+cfg.ORMType()))
		if cfg.HasMigration() {
			lines = append(lines, label("Migration")+ValueStyle.Render(cfg.MigrationToolName()))
		}
	} else {
		lines = append(lines, label("Database")+MutedStyle.Render("None (API only)"))
	}

	if cfg.HasAuth() {
		name := "Basic JWT Auth"
		if cfg.HasCompleteAuth() {
			name = "Complete JWT Auth"
		}
		if cfg.HasRefreshToken() {
			name += " (with Refresh Token)"
		}
		lines = append(lines, label("Authentication")+ValueStyle.Render(name))
		if cfg.HasCompleteAuth() && len(cfg.Features.Auth.Features) > 0 {
			lines = append(lines, MutedStyle.Render("  • "+strings.Join(cfg.Features.Auth.Features, ", ")))
		}
	}

	security := make([]string, 0, 3)
	if cfg.HasCORS() {
		security = append(security, "CORS")
	}
	security = append(security, "Input Validation", "Password Hashing")
	lines = append(lines, label("Security")+MutedStyle.Render(strings.Join(security, ", ")))

	if cfg.HasDevTools() {
		lines = append(lines, label("Dev Tools")+MutedStyle.Render("API Docs, Black, Ruff"))
	}
	if cfg.HasTesting() {
		lines = append(lines, label("Testing")+MutedStyle.Render("pytest, httpx, coverage"))
	}
	if cfg.HasDocker() {
		lines = append(lines, label("Deployment")+MutedStyle.Render("Docker, Docker Compose"))
	}

	return Panel("Configuration Summary", PinkColor, lines)
}

// EmailWarning renders the reminder to fill in SMTP credentials before
// running a project generated with complete authentication.
func EmailWarning() string {
	lines := []string{
		WarningStyle.Render("Important: configure the email service"),
		"",
		MutedStyle.Render("Update these settings in secret/.env.development"),
		MutedStyle.Render("before running the application:"),
		"",
		ValueStyle.Render("  EMAIL_HOST=smtp.gmail.com"),
		ValueStyle.Render("  EMAIL_PORT=587"),
		ValueStyle.Render("  EMAIL_HOST_USER=your-email@gmail.com"),
		ValueStyle.Render("  EMAIL_HOST_PASSWORD=your-app-password"),
		ValueStyle.Render("  EMAIL_FROM_EMAIL=noreply@yourdomain.com"),
		"",
		MutedStyle.Render("Gmail app passwords: https://support.google.com/accounts/answer/185833"),
	}
	return Panel("Email Configuration", WarningColor, lines)
}

// NextSteps renders the post-generation instructions.
func NextSteps(cfg *config.Config, projectPath string) string {
	step := func(cmd, note string) string {
		return ValueStyle.Render("  "+cmd) + MutedStyle.Render("  # "+note)
	}

	lines := []string{
		SuccessStyle.Render("✓ Project created successfully!"),
		"",
		MutedStyle.Render("Project location:"),
		TitleStyle.Render("  " + projectPath),
		"",
		MutedStyle.Render("Next steps:"),
		ValueStyle.Render("  cd " + cfg.ProjectName),
		step("uv sync", "install dependencies"),
	}
	if cfg.HasMigration() {
		lines = append(lines, step("alembic upgrade head", "apply migrations"))
	}
	lines = append(lines, step("uvicorn app.main:app --reload", "start the server"))
	if cfg.HasDocker() {
		lines = append(lines, step("docker compose up --build", "or run in Docker"))
	}

	return Panel("Next Steps", PinkColor, lines)
}

// Info renders the forge info panel for the info command.
func Info(version, downloads string) string {
	label := func(s string) string { return LabelStyle.Render(s+":") + " " }

	lines := []string{
		TitleStyle.Render("Forge") + " " + MutedStyle.Render("FastAPI project scaffolding"),
		"",
		label("Version") + ValueStyle.Render("v"+version),
		label("Author") + ValueStyle.Render("@ning3739"),
		label("License") + ValueStyle.Render("MIT License"),
		label("Downloads") + SuccessStyle.Render(downloads),
		label("Docs") + ValueStyle.Render("https://github.com/ning3739/forge"),
	}
	return Panel("Forge Info", PinkColor, lines)
}
