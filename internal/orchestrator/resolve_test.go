package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ning3739/forge/internal/config"
)

// registryOf registers every unit and returns the registry together with the
// enabled set for an empty configuration.
func registryOf(t *testing.T, units ...Unit) (*Registry, []Unit) {
	t.Helper()
	reg := NewRegistry()
	for _, u := range units {
		require.NoError(t, reg.Register(u))
	}
	return reg, collectEnabled(reg, &config.Config{}, Options{})
}

func TestResolveOrderPriorityAndDependencies(t *testing.T) {
	// B depends on A and carries the highest priority value; C is
	// independent. Priority decides wherever dependencies allow: A, C, B.
	reg, enabled := registryOf(t,
		testUnit("A", 1),
		testUnit("B", 5, "A"),
		testUnit("C", 2),
	)

	order, err := resolveOrder(enabled, reg, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, unitNames(order))
}

func TestResolveOrderDependencyBeatsPriority(t *testing.T) {
	// The dependent has the lower priority value but still runs after its
	// prerequisite.
	reg, enabled := registryOf(t,
		testUnit("early", 0, "late"),
		testUnit("late", 100),
	)

	order, err := resolveOrder(enabled, reg, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "early"}, unitNames(order))
}

func TestResolveOrderTieBreaksByName(t *testing.T) {
	reg, enabled := registryOf(t,
		testUnit("cherry", 7),
		testUnit("apple", 7),
		testUnit("banana", 7),
	)

	order, err := resolveOrder(enabled, reg, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, unitNames(order))
}

func TestResolveOrderMissingDependency(t *testing.T) {
	reg, enabled := registryOf(t,
		testUnit("A", 1, "Ghost"),
	)

	_, err := resolveOrder(enabled, reg, Options{})
	require.Error(t, err)
	require.True(t, IsUnresolvableDependencyError(err))

	var depErr *UnresolvableDependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "A", depErr.Unit)
	assert.Equal(t, "Ghost", depErr.Requires)
	assert.False(t, depErr.Disabled)
	assert.Contains(t, err.Error(), "not registered")
}

func TestResolveOrderDisabledDependency(t *testing.T) {
	disabled := testUnit("B", 1)
	disabled.EnabledWhen = func(*config.Config) bool { return false }

	reg, enabled := registryOf(t,
		testUnit("A", 2, "B"),
		disabled,
	)
	require.Len(t, enabled, 1, "B must be filtered out")

	_, err := resolveOrder(enabled, reg, Options{})
	require.Error(t, err)
	require.True(t, IsUnresolvableDependencyError(err))

	var depErr *UnresolvableDependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "A", depErr.Unit)
	assert.Equal(t, "B", depErr.Requires)
	assert.True(t, depErr.Disabled)
	assert.Contains(t, err.Error(), "disabled")
}

func TestResolveOrderRelaxedRequiresSkipsDisabledEdge(t *testing.T) {
	disabled := testUnit("B", 1)
	disabled.EnabledWhen = func(*config.Config) bool { return false }

	reg, enabled := registryOf(t,
		testUnit("A", 2, "B"),
		disabled,
	)

	order, err := resolveOrder(enabled, reg, Options{RelaxedRequires: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, unitNames(order))

	// A reference that was never registered stays fatal even in relaxed mode.
	reg2, enabled2 := registryOf(t, testUnit("A", 2, "Ghost"))
	_, err = resolveOrder(enabled2, reg2, Options{RelaxedRequires: true})
	require.Error(t, err)
	assert.True(t, IsUnresolvableDependencyError(err))
}

func TestResolveOrderCycle(t *testing.T) {
	reg, enabled := registryOf(t,
		testUnit("A", 1, "B"),
		testUnit("B", 2, "A"),
	)

	_, err := resolveOrder(enabled, reg, Options{})
	require.Error(t, err)
	require.True(t, IsCyclicDependencyError(err))

	var cycleErr *CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"A", "B"}, cycleErr.Units)
}

func TestResolveOrderCycleExcludesDownstreamUnits(t *testing.T) {
	// C depends on the cycle but is not part of it; the error must name
	// only the cycle members.
	reg, enabled := registryOf(t,
		testUnit("A", 1, "B"),
		testUnit("B", 2, "A"),
		testUnit("C", 3, "B"),
	)

	_, err := resolveOrder(enabled, reg, Options{})
	require.Error(t, err)

	var cycleErr *CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"A", "B"}, cycleErr.Units)
}

func TestResolveOrderSelfReference(t *testing.T) {
	reg, enabled := registryOf(t,
		testUnit("selfish", 1, "selfish"),
	)

	_, err := resolveOrder(enabled, reg, Options{})
	require.Error(t, err)

	var cycleErr *CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"selfish"}, cycleErr.Units)
}

func TestResolveOrderDuplicateRequiresTolerated(t *testing.T) {
	reg, enabled := registryOf(t,
		testUnit("base", 1),
		testUnit("dep", 2, "base", "base"),
	)

	order, err := resolveOrder(enabled, reg, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "dep"}, unitNames(order))
}

func TestResolveOrderDiamond(t *testing.T) {
	// root -> left/right -> join; priorities pick left before right.
	reg, enabled := registryOf(t,
		testUnit("join", 1, "left", "right"),
		testUnit("left", 10, "root"),
		testUnit("right", 20, "root"),
		testUnit("root", 5),
	)

	order, err := resolveOrder(enabled, reg, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "left", "right", "join"}, unitNames(order))
}

func TestResolveOrderIndependentOfInputOrder(t *testing.T) {
	units := []Unit{
		testUnit("d", 4, "b", "c"),
		testUnit("c", 3, "a"),
		testUnit("b", 2, "a"),
		testUnit("a", 1),
	}
	reg := NewRegistry()
	for _, u := range units {
		require.NoError(t, reg.Register(u))
	}

	forward, err := resolveOrder(units, reg, Options{})
	require.NoError(t, err)

	reversed := make([]Unit, len(units))
	for i, u := range units {
		reversed[len(units)-1-i] = u
	}
	backward, err := resolveOrder(reversed, reg, Options{})
	require.NoError(t, err)

	assert.Equal(t, unitNames(forward), unitNames(backward))
	assert.Equal(t, []string{"a", "b", "c", "d"}, unitNames(forward))
}
