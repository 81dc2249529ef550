package orchestrator

import "sort"

// resolveOrder turns the enabled unit set into the execution plan: a
// topological sort of the requires graph where, among units whose
// prerequisites are all placed, the lowest priority runs next and name order
// breaks remaining ties. The result is a deterministic function of the
// enabled set, independent of registration order.
//
// Requires references resolve strictly by default: a reference to a unit
// that is registered but excluded from this run fails resolution, so a
// disabled prerequisite can never be skipped silently. Options.RelaxedRequires
// drops such edges instead. A reference to a name that was never registered
// is always fatal.
func resolveOrder(enabled []Unit, reg *Registry, opts Options) ([]Unit, error) {
	// Names are resolved to indices once; the graph work below is index-based.
	index := make(map[string]int, len(enabled))
	for i, u := range enabled {
		index[u.Name] = i
	}

	dependents := make([][]int, len(enabled))
	indegree := make([]int, len(enabled))
	for i, u := range enabled {
		seen := make(map[int]struct{}, len(u.Requires))
		for _, req := range u.Requires {
			j, ok := index[req]
			if !ok {
				if _, registered := reg.Lookup(req); registered {
					if opts.RelaxedRequires {
						continue
					}
					return nil, &UnresolvableDependencyError{Unit: u.Name, Requires: req, Disabled: true}
				}
				return nil, &UnresolvableDependencyError{Unit: u.Name, Requires: req}
			}
			// Requires is a set; a repeated reference adds one edge.
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			dependents[j] = append(dependents[j], i)
			indegree[i]++
		}
	}

	order := make([]Unit, 0, len(enabled))
	placed := make([]bool, len(enabled))

	for len(order) < len(enabled) {
		next := -1
		for i := range enabled {
			if placed[i] || indegree[i] > 0 {
				continue
			}
			if next < 0 || unitBefore(enabled[i], enabled[next]) {
				next = i
			}
		}
		if next < 0 {
			return nil, &CyclicDependencyError{Units: cycleUnits(enabled, placed, dependents)}
		}
		placed[next] = true
		order = append(order, enabled[next])
		for _, dep := range dependents[next] {
			indegree[dep]--
		}
	}

	return order, nil
}

// unitBefore orders ready units by priority, then name.
func unitBefore(a, b Unit) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.Name < b.Name
}

// cycleUnits extracts the units actually on a cycle from the unplaced set.
// Unplaced units that merely depend on a cycle have no unplaced dependents
// of their own and are peeled away until only cycle members remain.
func cycleUnits(units []Unit, placed []bool, dependents [][]int) []string {
	stuck := make(map[int]struct{})
	for i := range units {
		if !placed[i] {
			stuck[i] = struct{}{}
		}
	}

	for {
		var leaves []int
		for i := range stuck {
			onStuckPath := false
			for _, dep := range dependents[i] {
				if _, ok := stuck[dep]; ok {
					onStuckPath = true
					break
				}
			}
			if !onStuckPath {
				leaves = append(leaves, i)
			}
		}
		if len(leaves) == 0 {
			break
		}
		for _, i := range leaves {
			delete(stuck, i)
		}
	}

	names := make([]string, 0, len(stuck))
	for i := range stuck {
		names = append(names, units[i].Name)
	}
	sort.Strings(names)
	return names
}
