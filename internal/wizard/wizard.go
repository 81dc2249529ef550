// Package wizard implements the interactive project setup flow. It asks
// one question per step and turns the answers into a project
// configuration. The model is pure: feeding key messages through Update
// drives the whole flow, which keeps it unit-testable.
package wizard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/ui"
)

// defaultProjectName is used when the name question is left empty.
const defaultProjectName = "forge-project"

// Step identifies the current question.
type Step int

const (
	StepName Step = iota
	StepOverwrite
	StepDatabase
	StepORM
	StepMigrations
	StepAuth
	StepCORS
	StepDevTools
	StepTesting
	StepDocker
	StepDone
)

// choice is one selectable option of a list step.
type choice struct {
	label string
	value string
}

const (
	confirmYes = "yes"
	confirmNo  = "no"
)

const (
	overwriteCancel     = "cancel"
	overwriteRegenerate = "overwrite"
)

var (
	databaseChoices = []choice{
		{label: "PostgreSQL (Recommended)", value: config.DatabasePostgreSQL},
		{label: "MySQL", value: config.DatabaseMySQL},
		{label: "None - Skip database", value: ""},
	}
	ormChoices = []choice{
		{label: "SQLModel (Recommended)", value: config.ORMSQLModel},
		{label: "SQLAlchemy", value: config.ORMSQLAlchemy},
	}
	authChoices = []choice{
		{label: "Complete JWT Auth (Recommended)", value: config.AuthComplete},
		{label: "Basic JWT Auth (login/register only)", value: config.AuthBasic},
		{label: "None - Skip authentication", value: config.AuthNone},
	}
	confirmChoices = []choice{
		{label: "Yes", value: confirmYes},
		{label: "No", value: confirmNo},
	}
	overwriteChoices = []choice{
		{label: "Cancel - Keep existing project", value: overwriteCancel},
		{label: "Overwrite - Regenerate entire project", value: overwriteRegenerate},
	}
)

// answers collects everything the flow asks for.
type answers struct {
	name       string
	database   string // empty means API only
	orm        string
	migrations bool
	auth       string
	overwrite  bool
	cors       bool
	devTools   bool
	testing    bool
	docker     bool
}

// toConfig builds the project configuration from the collected answers.
// Complete auth always carries a refresh token and the bundled extras.
func (a answers) toConfig() *config.Config {
	cfg := &config.Config{
		ProjectName: a.name,
		Features: config.Features{
			Auth:     config.AuthConfig{Type: config.AuthNone, Features: []string{}},
			CORS:     a.cors,
			DevTools: a.devTools,
			Testing:  a.testing,
			Docker:   a.docker,
		},
	}
	if a.database == "" {
		return cfg
	}

	db := &config.DatabaseConfig{Type: a.database, ORM: a.orm}
	if a.migrations {
		db.MigrationTool = config.MigrationAlembic
	}
	cfg.Database = db

	switch a.auth {
	case config.AuthBasic:
		cfg.Features.Auth = config.AuthConfig{Type: config.AuthBasic, Features: []string{}}
	case config.AuthComplete:
		cfg.Features.Auth = config.AuthConfig{
			Type:         config.AuthComplete,
			RefreshToken: true,
			Features:     append([]string(nil), config.CompleteAuthFeatures...),
		}
	}
	return cfg
}

// Model holds the wizard state.
type Model struct {
	dir string // directory new projects are created under

	step    Step
	input   textinput.Model
	cursor  int
	answers answers

	done      bool
	cancelled bool
	width     int
}

// New creates the wizard. A non-empty name answers the first question up
// front, the way a name argument on the command line does. Confirm steps
// default to yes, matching the non-interactive defaults.
func New(dir, name string) Model {
	ti := textinput.New()
	ti.Placeholder = defaultProjectName
	ti.Prompt = ""
	ti.Width = 40
	ti.Focus()

	m := Model{
		dir:   dir,
		step:  StepName,
		input: ti,
		answers: answers{
			migrations: true,
			cors:       true,
			devTools:   true,
			testing:    true,
			docker:     true,
		},
	}

	if name = strings.TrimSpace(name); name != "" {
		m.answers.name = name
		m.input.SetValue(name)
		if config.Exists(filepath.Join(dir, name)) {
			m.step = StepOverwrite
		} else {
			m.step = StepDatabase
		}
	}
	return m
}

// Done reports whether the flow finished with a complete set of answers.
func (m Model) Done() bool { return m.done }

// Cancelled reports whether the user aborted the flow.
func (m Model) Cancelled() bool { return m.cancelled }

// Overwrite reports whether the user chose to regenerate an existing project.
func (m Model) Overwrite() bool { return m.answers.overwrite }

// Config builds the project configuration from the answers. Only valid
// once Done reports true.
func (m Model) Config() *config.Config { return m.answers.toConfig() }

// Init starts the cursor blink of the name input.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.step = StepDone
			return m, tea.Quit
		}
		if m.step == StepName {
			return m.updateName(msg)
		}
		return m.updateChoice(msg)
	}
	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			name = defaultProjectName
		}
		m.answers.name = name
		m.input.Blur()

		if config.Exists(filepath.Join(m.dir, name)) {
			return m.advance(StepOverwrite), nil
		}
		return m.advance(StepDatabase), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.choices())-1 {
			m.cursor++
		}
		return m, nil

	case "y", "Y":
		if m.isConfirm() {
			return m.accept(0)
		}
		return m, nil

	case "n", "N":
		if m.isConfirm() {
			return m.accept(1)
		}
		return m, nil

	case "enter":
		return m.accept(m.cursor)
	}
	return m, nil
}

// accept applies the choice at idx for the current step and moves on.
func (m Model) accept(idx int) (tea.Model, tea.Cmd) {
	opts := m.choices()
	if idx < 0 || idx >= len(opts) {
		return m, nil
	}
	val := opts[idx].value

	switch m.step {
	case StepOverwrite:
		if val == overwriteCancel {
			m.cancelled = true
			m.step = StepDone
			return m, tea.Quit
		}
		m.answers.overwrite = true
		return m.advance(StepDatabase), nil

	case StepDatabase:
		m.answers.database = val
		if val == "" {
			// Authentication requires a database, skip straight to CORS.
			return m.advance(StepCORS), nil
		}
		return m.advance(StepORM), nil

	case StepORM:
		m.answers.orm = val
		return m.advance(StepMigrations), nil

	case StepMigrations:
		m.answers.migrations = val == confirmYes
		return m.advance(StepAuth), nil

	case StepAuth:
		m.answers.auth = val
		return m.advance(StepCORS), nil

	case StepCORS:
		m.answers.cors = val == confirmYes
		return m.advance(StepDevTools), nil

	case StepDevTools:
		m.answers.devTools = val == confirmYes
		return m.advance(StepTesting), nil

	case StepTesting:
		m.answers.testing = val == confirmYes
		return m.advance(StepDocker), nil

	case StepDocker:
		m.answers.docker = val == confirmYes
		m.done = true
		m.step = StepDone
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) advance(next Step) Model {
	m.step = next
	m.cursor = 0
	return m
}

func (m Model) choices() []choice {
	switch m.step {
	case StepOverwrite:
		return overwriteChoices
	case StepDatabase:
		return databaseChoices
	case StepORM:
		return ormChoices
	case StepAuth:
		return authChoices
	case StepMigrations, StepCORS, StepDevTools, StepTesting, StepDocker:
		return confirmChoices
	}
	return nil
}

func (m Model) isConfirm() bool {
	switch m.step {
	case StepMigrations, StepCORS, StepDevTools, StepTesting, StepDocker:
		return true
	}
	return false
}

func (m Model) prompt() string {
	switch m.step {
	case StepName:
		return "Project name:"
	case StepOverwrite:
		return fmt.Sprintf("Project %q already exists. What would you like to do?", m.answers.name)
	case StepDatabase:
		return "Database:"
	case StepORM:
		return "ORM:"
	case StepMigrations:
		return "Enable database migrations (Alembic)?"
	case StepAuth:
		return "Authentication:"
	case StepCORS:
		return "Enable CORS?"
	case StepDevTools:
		return "Include dev tools (Black + Ruff)?"
	case StepTesting:
		return "Include testing setup (pytest)?"
	case StepDocker:
		return "Include Docker configs?"
	}
	return ""
}

// View renders the answered questions followed by the current one.
func (m Model) View() string {
	if m.step == StepDone {
		return ""
	}

	var b strings.Builder
	for _, line := range m.recap() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(ui.TitleStyle.Render(m.prompt()))
	b.WriteString("\n")

	if m.step == StepName {
		b.WriteString("> " + m.input.View() + "\n")
	} else {
		for i, opt := range m.choices() {
			if i == m.cursor {
				b.WriteString(ui.SelectionStyle.Render("> "+opt.label) + "\n")
			} else {
				b.WriteString("  " + opt.label + "\n")
			}
		}
	}

	hint := "enter confirm • esc cancel"
	if m.isConfirm() {
		hint = "y/n or enter • esc cancel"
	} else if m.step != StepName {
		hint = "↑/↓ move • enter confirm • esc cancel"
	}
	b.WriteString("\n" + ui.MutedStyle.Render(hint) + "\n")

	return b.String()
}

// recap lists the already answered questions, one line each.
func (m Model) recap() []string {
	mark := ui.SuccessStyle.Render("✓") + " "
	yesNo := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}
	answered := func(prompt, answer string) string {
		return mark + ui.MutedStyle.Render(prompt) + " " + ui.ValueStyle.Render(answer)
	}

	var lines []string
	if m.step > StepName {
		lines = append(lines, answered("Project name:", m.answers.name))
	}
	if m.step > StepDatabase {
		db := m.answers.database
		if db == "" {
			db = "None"
		}
		lines = append(lines, answered("Database:", db))
	}
	if m.answers.database != "" {
		if m.step > StepORM {
			lines = append(lines, answered("ORM:", m.answers.orm))
		}
		if m.step > StepMigrations {
			lines = append(lines, answered("Migrations:", yesNo(m.answers.migrations)))
		}
		if m.step > StepAuth {
			lines = append(lines, answered("Authentication:", m.answers.auth))
		}
	}
	if m.step > StepCORS {
		lines = append(lines, answered("CORS:", yesNo(m.answers.cors)))
	}
	if m.step > StepDevTools {
		lines = append(lines, answered("Dev tools:", yesNo(m.answers.devTools)))
	}
	if m.step > StepTesting {
		lines = append(lines, answered("Testing:", yesNo(m.answers.testing)))
	}
	return lines
}

// Run executes the wizard inline in the terminal and returns the final
// model once the user finishes or cancels.
func Run(dir, name string) (Model, error) {
	p := tea.NewProgram(New(dir, name))
	final, err := p.Run()
	if err != nil {
		return Model{}, fmt.Errorf("running setup wizard: %w", err)
	}
	return final.(Model), nil
}
