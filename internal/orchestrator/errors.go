package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// DuplicateUnitError indicates that two registrations used the same unit name.
type DuplicateUnitError struct {
	// Name is the colliding unit name.
	Name string
}

func (e *DuplicateUnitError) Error() string {
	if e == nil {
		return "duplicate unit"
	}
	return fmt.Sprintf("unit %q is already registered", e.Name)
}

// IsDuplicateUnitError reports whether err indicates a unit name collision.
func IsDuplicateUnitError(err error) bool {
	var target *DuplicateUnitError
	return errors.As(err, &target)
}

// UnresolvableDependencyError indicates that a unit requires a prerequisite
// that is not part of the current run, either because no unit was registered
// under that name or because the prerequisite was disabled by configuration.
type UnresolvableDependencyError struct {
	// Unit is the dependent unit whose requirement cannot be satisfied.
	Unit string
	// Requires is the prerequisite name that failed to resolve.
	Requires string
	// Disabled is true when the prerequisite is registered but excluded
	// from the run, and false when it is not registered at all.
	Disabled bool
}

func (e *UnresolvableDependencyError) Error() string {
	if e == nil {
		return "unresolvable dependency"
	}
	if e.Disabled {
		return fmt.Sprintf("unit %q requires %q, which is registered but disabled for this run", e.Unit, e.Requires)
	}
	return fmt.Sprintf("unit %q requires %q, which is not registered", e.Unit, e.Requires)
}

// IsUnresolvableDependencyError reports whether err indicates a missing or
// disabled prerequisite.
func IsUnresolvableDependencyError(err error) bool {
	var target *UnresolvableDependencyError
	return errors.As(err, &target)
}

// CyclicDependencyError indicates that the dependency graph among the units
// selected for a run contains a cycle.
type CyclicDependencyError struct {
	// Units holds the names of the units on the cycle, sorted.
	Units []string
}

func (e *CyclicDependencyError) Error() string {
	if e == nil {
		return "dependency cycle"
	}
	return fmt.Sprintf("dependency cycle among units: %s", strings.Join(e.Units, ", "))
}

// IsCyclicDependencyError reports whether err indicates a dependency cycle.
func IsCyclicDependencyError(err error) bool {
	var target *CyclicDependencyError
	return errors.As(err, &target)
}

// UnitExecutionError wraps a failure returned by a unit's generate function.
type UnitExecutionError struct {
	// Unit is the name of the unit that failed.
	Unit string
	// Err is the unit's own failure, preserved unmodified.
	Err error
}

func (e *UnitExecutionError) Error() string {
	if e == nil {
		return "unit execution failed"
	}
	return fmt.Sprintf("unit %q failed: %v", e.Unit, e.Err)
}

// Unwrap exposes the unit's underlying failure to errors.Is and errors.As.
func (e *UnitExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsUnitExecutionError reports whether err indicates a mid-run unit failure.
func IsUnitExecutionError(err error) bool {
	var target *UnitExecutionError
	return errors.As(err, &target)
}
