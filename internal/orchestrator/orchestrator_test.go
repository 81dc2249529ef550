package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

// recordingUnit returns a unit whose generate function appends its name to
// ran when invoked.
func recordingUnit(name string, priority int, ran *[]string, requires ...string) Unit {
	u := testUnit(name, priority, requires...)
	u.Generate = func(context.Context, *fsutil.Tree, *config.Config) error {
		*ran = append(*ran, name)
		return nil
	}
	return u
}

func TestOrchestratorRun(t *testing.T) {
	var ran []string
	reg := NewRegistry()
	reg.MustRegister(recordingUnit("A", 1, &ran))
	reg.MustRegister(recordingUnit("B", 5, &ran, "A"))
	reg.MustRegister(recordingUnit("C", 2, &ran))

	tree := fsutil.NewTree(t.TempDir())
	report, err := New(reg, nil).Run(context.Background(), tree, &config.Config{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, report.Phase)
	assert.Equal(t, []string{"A", "C", "B"}, report.Planned)
	assert.Equal(t, []string{"A", "C", "B"}, report.Completed)
	assert.Empty(t, report.Failed)
	assert.Equal(t, []string{"A", "C", "B"}, ran)
}

func TestOrchestratorRunWritesThroughTree(t *testing.T) {
	reg := NewRegistry()
	u := testUnit("writer", 1)
	u.Generate = func(_ context.Context, tree *fsutil.Tree, _ *config.Config) error {
		return tree.WriteString("out/hello.txt", "hello\n")
	}
	reg.MustRegister(u)

	tree := fsutil.NewTree(t.TempDir())
	report, err := New(reg, nil).Run(context.Background(), tree, &config.Config{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, report.Phase)
	assert.True(t, tree.Exists("out/hello.txt"))
}

func TestOrchestratorRunHaltsOnFailure(t *testing.T) {
	boom := errors.New("disk full")

	var ran []string
	reg := NewRegistry()
	reg.MustRegister(recordingUnit("X", 1, &ran))

	failing := testUnit("Y", 2)
	failing.Generate = func(context.Context, *fsutil.Tree, *config.Config) error {
		ran = append(ran, "Y")
		return boom
	}
	reg.MustRegister(failing)
	reg.MustRegister(recordingUnit("Z", 3, &ran))

	tree := fsutil.NewTree(t.TempDir())
	report, err := New(reg, nil).Run(context.Background(), tree, &config.Config{}, Options{})
	require.Error(t, err)

	require.True(t, IsUnitExecutionError(err))
	assert.ErrorIs(t, err, boom, "the unit error must be preserved unmodified")
	assert.Contains(t, err.Error(), "Y")

	assert.Equal(t, PhaseFailed, report.Phase)
	assert.Equal(t, []string{"X", "Y", "Z"}, report.Planned)
	assert.Equal(t, []string{"X"}, report.Completed)
	assert.Equal(t, "Y", report.Failed)
	assert.Equal(t, []string{"X", "Y"}, ran, "Z must not run after Y fails")
}

func TestOrchestratorRunFiltersDisabledUnits(t *testing.T) {
	var ran []string
	reg := NewRegistry()
	reg.MustRegister(recordingUnit("always", 1, &ran))

	gated := recordingUnit("gated", 2, &ran)
	gated.EnabledWhen = func(cfg *config.Config) bool { return cfg.HasDocker() }
	reg.MustRegister(gated)

	tree := fsutil.NewTree(t.TempDir())
	report, err := New(reg, nil).Run(context.Background(), tree, &config.Config{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"always"}, report.Planned)
	assert.Equal(t, []string{"always"}, ran)
}

func TestOrchestratorRunResolutionFailureRunsNothing(t *testing.T) {
	var ran []string
	reg := NewRegistry()
	reg.MustRegister(recordingUnit("A", 1, &ran, "Ghost"))

	tree := fsutil.NewTree(t.TempDir())
	report, err := New(reg, nil).Run(context.Background(), tree, &config.Config{}, Options{})
	require.Error(t, err)
	assert.True(t, IsUnresolvableDependencyError(err))

	assert.Equal(t, PhaseFailed, report.Phase)
	assert.Empty(t, report.Planned)
	assert.Empty(t, report.Completed)
	assert.Empty(t, ran, "no unit may run when resolution fails")
}

func TestOrchestratorRunCategoryFilters(t *testing.T) {
	var ran []string
	core := recordingUnit("core-unit", 1, &ran)
	core.Category = "core"
	deploy := recordingUnit("deploy-unit", 2, &ran)
	deploy.Category = "deployment"

	newReg := func() *Registry {
		reg := NewRegistry()
		reg.MustRegister(core)
		reg.MustRegister(deploy)
		return reg
	}

	t.Run("only", func(t *testing.T) {
		ran = nil
		tree := fsutil.NewTree(t.TempDir())
		report, err := New(newReg(), nil).Run(context.Background(), tree, &config.Config{},
			Options{OnlyCategories: []string{"deployment"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"deploy-unit"}, report.Completed)
		assert.Equal(t, []string{"deploy-unit"}, ran)
	})

	t.Run("skip", func(t *testing.T) {
		ran = nil
		tree := fsutil.NewTree(t.TempDir())
		report, err := New(newReg(), nil).Run(context.Background(), tree, &config.Config{},
			Options{SkipCategories: []string{"deployment"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"core-unit"}, report.Completed)
		assert.Equal(t, []string{"core-unit"}, ran)
	})
}

func TestOrchestratorRunFreezesRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(testUnit("A", 1))

	tree := fsutil.NewTree(t.TempDir())
	_, err := New(reg, nil).Run(context.Background(), tree, &config.Config{}, Options{})
	require.NoError(t, err)

	err = reg.Register(testUnit("late", 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frozen")
}
