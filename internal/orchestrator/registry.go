package orchestrator

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maintains the table of registered generation units. It is
// populated by an explicit bootstrap pass, frozen before the first run
// resolves an execution order, and read-only from then on. The execution
// model is single-threaded; the registry is not safe for concurrent writers.
type Registry struct {
	units  map[string]Unit
	frozen bool
}

// NewRegistry returns an empty unit registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]Unit)}
}

// Register inserts a unit into the registry. It fails when the registry is
// already frozen, the unit is invalid, or the name is taken; a failed
// registration leaves the registry unchanged.
func (r *Registry) Register(u Unit) error {
	if r.frozen {
		return fmt.Errorf("registry is frozen, cannot register unit %q", u.Name)
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("unit name must not be empty")
	}
	if u.Generate == nil {
		return fmt.Errorf("unit %q has no generate function", u.Name)
	}
	if _, exists := r.units[u.Name]; exists {
		return &DuplicateUnitError{Name: u.Name}
	}
	r.units[u.Name] = u
	return nil
}

// MustRegister registers a unit and panics on failure. Built-in unit
// packages use it during bootstrap, where a failure is a programming error.
func (r *Registry) MustRegister(u Unit) {
	if err := r.Register(u); err != nil {
		panic(err)
	}
}

// Freeze seals the registry against further registrations.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	return len(r.units)
}

// Lookup returns the unit registered under name.
func (r *Registry) Lookup(name string) (Unit, bool) {
	u, ok := r.units[name]
	return u, ok
}

// Units returns every registered unit sorted by name. Sorting here keeps all
// downstream phases independent of registration order.
func (r *Registry) Units() []Unit {
	out := make([]Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
