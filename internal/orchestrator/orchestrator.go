// Package orchestrator plans and runs project generation. Generation units
// are registered with metadata describing their category, priority,
// prerequisites, and an optional enablement predicate; the orchestrator
// filters the registered set against the project configuration, resolves a
// deterministic execution order, and runs the units sequentially against
// the target tree.
package orchestrator

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

// Orchestrator drives full generation runs over one unit registry.
type Orchestrator struct {
	registry *Registry
	logger   *slog.Logger
}

// New constructs an Orchestrator over a populated registry.
func New(reg *Registry, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{registry: reg, logger: logger}
}

// Run performs discovery, filtering, resolution, and execution against the
// target tree, and reports the outcome. The report is non-nil even when Run
// returns an error. Resolution errors surface before any file is written;
// execution halts at the first unit failure with the partial output left in
// place. The run is fully sequential, and the target tree must not be
// shared with a concurrent run.
func (o *Orchestrator) Run(ctx context.Context, tree *fsutil.Tree, cfg *config.Config, opts Options) (*Report, error) {
	report := &Report{Phase: PhaseIdle}

	report.Phase = PhaseDiscovering
	o.registry.Freeze()
	o.logger.Debug("discovered units", "registered", o.registry.Len())

	report.Phase = PhaseFiltering
	enabled := collectEnabled(o.registry, cfg, opts)
	o.logger.Debug("filtered units", "enabled", len(enabled))

	report.Phase = PhaseResolving
	plan, err := resolveOrder(enabled, o.registry, opts)
	if err != nil {
		report.Phase = PhaseFailed
		return report, err
	}
	report.Planned = unitNames(plan)
	o.logger.Debug("resolved execution order", "units", len(plan))

	report.Phase = PhaseExecuting
	completed, err := execute(ctx, plan, tree, cfg, o.logger)
	report.Completed = completed
	if err != nil {
		report.Phase = PhaseFailed
		var unitErr *UnitExecutionError
		if errors.As(err, &unitErr) {
			report.Failed = unitErr.Unit
		}
		return report, err
	}

	report.Phase = PhaseCompleted
	return report, nil
}

// unitNames extracts unit names preserving order.
func unitNames(units []Unit) []string {
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, u.Name)
	}
	return names
}
