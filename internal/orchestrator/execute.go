package orchestrator

import (
	"context"
	"log/slog"

	"github.com/ning3739/forge/internal/config"
	"github.com/ning3739/forge/internal/fsutil"
)

// execute runs the plan strictly in order against the tree, halting at the
// first failure. Completed units are never rolled back: on failure the
// partially generated output is left in place for inspection and the
// returned error names the failing unit and preserves its own error.
func execute(ctx context.Context, plan []Unit, tree *fsutil.Tree, cfg *config.Config, logger *slog.Logger) ([]string, error) {
	completed := make([]string, 0, len(plan))
	for _, u := range plan {
		logger.Debug("running unit", "unit", u.Name, "category", u.Category)
		if err := u.Generate(ctx, tree, cfg); err != nil {
			return completed, &UnitExecutionError{Unit: u.Name, Err: err}
		}
		completed = append(completed, u.Name)
	}
	return completed, nil
}
