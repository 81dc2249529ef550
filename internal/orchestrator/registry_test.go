package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

func noopGenerate(context.Context, *fsutil.Tree, *config.Config) error {
	return nil
}

func testUnit(name string, priority int, requires ...string) Unit {
	return Unit{
		Name:     name,
		Category: "test",
		Priority: priority,
		Requires: requires,
		Generate: noopGenerate,
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(testUnit("alpha", 1)))
	require.NoError(t, reg.Register(testUnit("beta", 2)))
	assert.Equal(t, 2, reg.Len())

	u, ok := reg.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", u.Name)

	_, ok = reg.Lookup("gamma")
	assert.False(t, ok)
}

func TestRegistryDuplicateName(t *testing.T) {
	reg := NewRegistry()

	first := testUnit("alpha", 1)
	first.Description = "the original"
	require.NoError(t, reg.Register(first))

	second := testUnit("alpha", 9)
	second.Description = "the impostor"
	err := reg.Register(second)
	require.Error(t, err)
	assert.True(t, IsDuplicateUnitError(err))
	assert.Contains(t, err.Error(), "alpha")

	// The losing registration must not replace the original entry.
	u, ok := reg.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "the original", u.Description)
	assert.Equal(t, 1, u.Priority)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryRejectsInvalidUnits(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register(testUnit("", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	err = reg.Register(Unit{Name: "no-generate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate")
}

func TestRegistryFreeze(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testUnit("alpha", 1)))

	reg.Freeze()

	err := reg.Register(testUnit("beta", 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frozen")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(testUnit("alpha", 1))

	assert.Panics(t, func() {
		reg.MustRegister(testUnit("alpha", 2))
	})
}

func TestRegistryUnitsSortedByName(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(testUnit("zeta", 1))
	reg.MustRegister(testUnit("alpha", 3))
	reg.MustRegister(testUnit("mid", 2))

	units := reg.Units()
	require.Len(t, units, 3)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, unitNames(units))
}
