package orchestrator

// Phase identifies how far an orchestration run has progressed.
type Phase string

// Run phases, in order of progression. Completed and Failed are terminal.
const (
	PhaseIdle        Phase = "idle"
	PhaseDiscovering Phase = "discovering"
	PhaseFiltering   Phase = "filtering"
	PhaseResolving   Phase = "resolving"
	PhaseExecuting   Phase = "executing"
	PhaseCompleted   Phase = "completed"
	PhaseFailed      Phase = "failed"
)

// Report summarizes an orchestration run for the caller. A failed report
// with no planned units failed during resolution, before any file was
// written; a failed report with planned units names the unit the run
// stopped at in Failed.
type Report struct {
	// Phase is the phase the run ended in: PhaseCompleted or PhaseFailed.
	Phase Phase
	// Planned lists unit names in execution order.
	Planned []string
	// Completed lists the units that finished successfully, in run order.
	Completed []string
	// Failed names the unit whose failure halted the run, empty on success.
	Failed string
}
