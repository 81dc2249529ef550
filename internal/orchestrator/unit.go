package orchestrator

import (
	"context"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

// GenerateFunc performs a unit's generation work against the project tree.
// It may write any number of files; failure is signalled by the returned
// error and halts the run.
type GenerateFunc func(ctx context.Context, tree *fsutil.Tree, cfg *config.Config) error

// Predicate decides whether a unit participates in a run for the given
// configuration. Implementations must be pure queries of the configuration
// with no side effects; evaluation order across units is unspecified.
type Predicate func(cfg *config.Config) bool

// Unit describes a single registered generation step together with the
// metadata the orchestrator needs to place it in an execution order.
// Units are immutable after registration.
type Unit struct {
	// Name uniquely identifies the unit across the registry.
	Name string
	// Category groups units for diagnostics and category filtering.
	Category string
	// Priority orders units wherever dependencies allow; lower runs earlier.
	Priority int
	// Requires lists units that must complete successfully before this one runs.
	Requires []string
	// EnabledWhen decides per-run participation; nil means always enabled.
	EnabledWhen Predicate
	// Description is a short human-readable summary of the unit's output.
	Description string
	// Generate performs the unit's file generation.
	Generate GenerateFunc
}

// Enabled reports whether the unit participates for the given configuration.
func (u Unit) Enabled(cfg *config.Config) bool {
	if u.EnabledWhen == nil {
		return true
	}
	return u.EnabledWhen(cfg)
}
