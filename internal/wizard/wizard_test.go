package wizard

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ning3739/forge/internal/config"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press feeds key messages through Update and returns the new model.
func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func TestWizard_New(t *testing.T) {
	m := New(t.TempDir(), "")

	assert.Equal(t, StepName, m.step, "expected flow to start at the name step")
	assert.False(t, m.Done(), "expected flow not done")
	assert.False(t, m.Cancelled(), "expected flow not cancelled")

	// Confirm steps default to yes.
	assert.True(t, m.answers.migrations, "expected migrations to default on")
	assert.True(t, m.answers.cors, "expected CORS to default on")
	assert.True(t, m.answers.devTools, "expected dev tools to default on")
	assert.True(t, m.answers.testing, "expected testing to default on")
	assert.True(t, m.answers.docker, "expected docker to default on")
}

func TestWizard_FullFlow_Defaults(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("my-api")

	// Name, then accept the first choice of every remaining step.
	m = press(t, m, keyEnter) // name
	assert.Equal(t, StepDatabase, m.step, "expected database step after name")

	m = press(t, m, keyEnter) // PostgreSQL
	assert.Equal(t, StepORM, m.step, "expected ORM step after database")

	m = press(t, m, keyEnter) // SQLModel
	assert.Equal(t, StepMigrations, m.step, "expected migrations step after ORM")

	m = press(t, m, keyEnter) // migrations yes
	assert.Equal(t, StepAuth, m.step, "expected auth step after migrations")

	m = press(t, m, keyEnter) // complete auth
	assert.Equal(t, StepCORS, m.step, "expected CORS step after auth")

	m = press(t, m, keyEnter, keyEnter, keyEnter) // CORS, dev tools, testing

	next, cmd := m.Update(keyEnter) // docker, final step
	m = next.(Model)

	require.NotNil(t, cmd, "expected a quit command after the last step")
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "expected the final command to quit the program")

	assert.True(t, m.Done(), "expected flow done")
	assert.False(t, m.Cancelled(), "expected flow not cancelled")

	cfg := m.Config()
	assert.Equal(t, "my-api", cfg.ProjectName, "expected project name")
	require.NotNil(t, cfg.Database, "expected database config")
	assert.Equal(t, config.DatabasePostgreSQL, cfg.Database.Type, "expected PostgreSQL")
	assert.Equal(t, config.ORMSQLModel, cfg.Database.ORM, "expected SQLModel")
	assert.Equal(t, config.MigrationAlembic, cfg.Database.MigrationTool, "expected Alembic")
	assert.Equal(t, config.AuthComplete, cfg.Features.Auth.Type, "expected complete auth")
	assert.True(t, cfg.Features.Auth.RefreshToken, "expected refresh token with complete auth")
	assert.Equal(t, config.CompleteAuthFeatures, cfg.Features.Auth.Features, "expected bundled auth extras")
	assert.True(t, cfg.Features.CORS, "expected CORS enabled")
	assert.True(t, cfg.Features.DevTools, "expected dev tools enabled")
	assert.True(t, cfg.Features.Testing, "expected testing enabled")
	assert.True(t, cfg.Features.Docker, "expected docker enabled")
	require.NoError(t, cfg.Validate(), "expected a valid config")
}

func TestWizard_EmptyNameUsesDefault(t *testing.T) {
	m := New(t.TempDir(), "")

	m = press(t, m, keyEnter)

	assert.Equal(t, defaultProjectName, m.answers.name, "expected the default project name")
	assert.Equal(t, StepDatabase, m.step, "expected database step after name")
}

func TestWizard_NoDatabase_SkipsDependentSteps(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("api-only")
	m = press(t, m, keyEnter)

	// Select "None - Skip database".
	m = press(t, m, keyDown, keyDown, keyEnter)
	assert.Equal(t, StepCORS, m.step, "expected ORM, migrations and auth to be skipped")

	m = press(t, m, keyEnter, keyEnter, keyEnter, keyEnter)
	assert.True(t, m.Done(), "expected flow done")

	cfg := m.Config()
	assert.Nil(t, cfg.Database, "expected no database config")
	assert.Equal(t, config.AuthNone, cfg.Features.Auth.Type, "expected auth to stay disabled")
	require.NoError(t, cfg.Validate(), "expected a valid config")
}

func TestWizard_BasicAuth(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter, keyEnter, keyEnter, keyEnter)
	require.Equal(t, StepAuth, m.step, "expected auth step")

	// Second choice is basic auth.
	m = press(t, m, keyDown, keyEnter)
	m = press(t, m, keyEnter, keyEnter, keyEnter, keyEnter)

	cfg := m.Config()
	assert.Equal(t, config.AuthBasic, cfg.Features.Auth.Type, "expected basic auth")
	assert.False(t, cfg.Features.Auth.RefreshToken, "expected no refresh token with basic auth")
	assert.Empty(t, cfg.Features.Auth.Features, "expected no auth extras with basic auth")
}

func TestWizard_MySQLAndSQLAlchemy(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter)

	m = press(t, m, keyDown, keyEnter) // MySQL
	m = press(t, m, keyDown, keyEnter) // SQLAlchemy
	m = press(t, m, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter)

	cfg := m.Config()
	require.NotNil(t, cfg.Database, "expected database config")
	assert.Equal(t, config.DatabaseMySQL, cfg.Database.Type, "expected MySQL")
	assert.Equal(t, config.ORMSQLAlchemy, cfg.Database.ORM, "expected SQLAlchemy")
}

func TestWizard_ConfirmShortcuts(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter, keyEnter, keyEnter)
	require.Equal(t, StepMigrations, m.step, "expected migrations step")

	// n answers a confirm without moving the cursor first.
	m = press(t, m, runeKey('n'))
	assert.Equal(t, StepAuth, m.step, "expected n to answer and advance")
	assert.False(t, m.answers.migrations, "expected migrations off")

	m = press(t, m, keyEnter) // complete auth
	m = press(t, m, runeKey('y'))
	assert.True(t, m.answers.cors, "expected y to answer CORS on")
	assert.Equal(t, StepDevTools, m.step, "expected y to advance")

	m = press(t, m, runeKey('n'), runeKey('n'), runeKey('n'))
	assert.True(t, m.Done(), "expected flow done")

	cfg := m.Config()
	assert.Empty(t, cfg.Database.MigrationTool, "expected no migration tool")
	assert.False(t, cfg.Features.DevTools, "expected dev tools off")
	assert.False(t, cfg.Features.Testing, "expected testing off")
	assert.False(t, cfg.Features.Docker, "expected docker off")
}

func TestWizard_NavigationKeys(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter)
	require.Equal(t, StepDatabase, m.step, "expected database step")

	// Cursor is clamped at both ends.
	m = press(t, m, keyUp)
	assert.Equal(t, 0, m.cursor, "expected cursor to stay at the top")

	m = press(t, m, keyDown, keyDown, keyDown, keyDown)
	assert.Equal(t, 2, m.cursor, "expected cursor to stop at the last choice")

	// Vim keys work too.
	m = press(t, m, runeKey('k'))
	assert.Equal(t, 1, m.cursor, "expected k to move up")
	m = press(t, m, runeKey('j'))
	assert.Equal(t, 2, m.cursor, "expected j to move down")
}

func TestWizard_CancelEsc(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter, keyEnter)

	next, cmd := m.Update(keyEsc)
	m = next.(Model)

	require.NotNil(t, cmd, "expected a quit command on esc")
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "expected esc to quit the program")
	assert.True(t, m.Cancelled(), "expected flow cancelled")
	assert.False(t, m.Done(), "expected flow not done")
}

func TestWizard_ExistingProject_Cancel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Save(filepath.Join(dir, "my-api"), config.Default("my-api")))

	m := New(dir, "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter)
	require.Equal(t, StepOverwrite, m.step, "expected overwrite prompt for existing project")

	next, cmd := m.Update(keyEnter) // first choice keeps the project
	m = next.(Model)

	require.NotNil(t, cmd, "expected a quit command")
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "expected cancel to quit the program")
	assert.True(t, m.Cancelled(), "expected flow cancelled")
	assert.False(t, m.Overwrite(), "expected no overwrite")
}

func TestWizard_ExistingProject_Overwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Save(filepath.Join(dir, "my-api"), config.Default("my-api")))

	m := New(dir, "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter)
	require.Equal(t, StepOverwrite, m.step, "expected overwrite prompt for existing project")

	m = press(t, m, keyDown, keyEnter)
	assert.True(t, m.Overwrite(), "expected overwrite chosen")
	assert.False(t, m.Cancelled(), "expected flow to continue")
	assert.Equal(t, StepDatabase, m.step, "expected database step after overwrite")
}

func TestWizard_NewProject_NoOverwritePrompt(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("fresh")
	m = press(t, m, keyEnter)

	assert.Equal(t, StepDatabase, m.step, "expected no overwrite prompt for a new project")
}

func TestWizard_NameArgument_SkipsNameStep(t *testing.T) {
	m := New(t.TempDir(), "my-api")

	assert.Equal(t, StepDatabase, m.step, "expected the name step to be skipped")
	assert.Equal(t, "my-api", m.answers.name, "expected the supplied name")

	m = press(t, m, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter)
	require.True(t, m.Done(), "expected flow done")
	assert.Equal(t, "my-api", m.Config().ProjectName, "expected the supplied name in the config")
}

func TestWizard_NameArgument_ExistingProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Save(filepath.Join(dir, "my-api"), config.Default("my-api")))

	m := New(dir, "my-api")

	assert.Equal(t, StepOverwrite, m.step, "expected the overwrite prompt for an existing project")
	assert.Equal(t, "my-api", m.answers.name, "expected the supplied name")
}

func TestWizard_View(t *testing.T) {
	m := New(t.TempDir(), "")

	view := m.View()
	assert.Contains(t, view, "Project name:", "expected the name prompt")

	m.input.SetValue("my-api")
	m = press(t, m, keyEnter)

	view = m.View()
	assert.Contains(t, view, "Database:", "expected the database prompt")
	assert.Contains(t, view, "PostgreSQL (Recommended)", "expected database choices")
	assert.Contains(t, view, "MySQL", "expected database choices")
	assert.Contains(t, view, "my-api", "expected the answered name in the recap")

	m = press(t, m, keyEnter)
	view = m.View()
	assert.Contains(t, view, "ORM:", "expected the ORM prompt")
	assert.Contains(t, view, "PostgreSQL", "expected the answered database in the recap")
}

func TestWizard_ViewDone(t *testing.T) {
	m := New(t.TempDir(), "")
	m.input.SetValue("my-api")
	m = press(t, m, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter, keyEnter)

	require.True(t, m.Done(), "expected flow done")
	assert.Empty(t, m.View(), "expected an empty view after the flow finished")
}

func TestWizard_TypingName(t *testing.T) {
	m := New(t.TempDir(), "")

	m = press(t, m, runeKey('a'), runeKey('p'), runeKey('i'))
	assert.Equal(t, "api", m.input.Value(), "expected typed characters in the input")

	m = press(t, m, keyEnter)
	assert.Equal(t, "api", m.answers.name, "expected the typed name")
}
