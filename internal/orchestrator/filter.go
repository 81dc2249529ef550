package orchestrator

import (
	"strings"

	"github.com/ning3739/forge/internal/config"
)

// Options adjusts which registered units participate in a run.
type Options struct {
	// OnlyCategories restricts the run to the listed categories when non-empty.
	OnlyCategories []string
	// SkipCategories excludes the listed categories from the run.
	SkipCategories []string
	// RelaxedRequires treats a prerequisite that is registered but excluded
	// from the run as satisfied instead of failing resolution. The default is
	// the strict behavior: an excluded prerequisite fails the run before any
	// file is written.
	RelaxedRequires bool
}

// collectEnabled gathers every registered unit that passes the category
// filters and is enabled for the configuration. The returned order carries
// no meaning; resolution establishes the execution order.
func collectEnabled(reg *Registry, cfg *config.Config, opts Options) []Unit {
	only := categorySet(opts.OnlyCategories)
	skip := categorySet(opts.SkipCategories)

	var enabled []Unit
	for _, u := range reg.Units() {
		if !categoryIncluded(u.Category, only, skip) {
			continue
		}
		if !u.Enabled(cfg) {
			continue
		}
		enabled = append(enabled, u)
	}
	return enabled
}

// categorySet normalizes category names into a lookup set.
func categorySet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// categoryIncluded applies only/skip category filters to a unit category.
func categoryIncluded(category string, only, skip map[string]struct{}) bool {
	key := strings.ToLower(strings.TrimSpace(category))
	if len(only) > 0 {
		if _, ok := only[key]; !ok {
			return false
		}
	}
	if _, ok := skip[key]; ok {
		return false
	}
	return true
}
