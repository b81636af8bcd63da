package bootstrap

import "context"

// Mode selects simulate or execute for a whole run. It is fixed at
// invocation; there is no switching mid-run.
type Mode int

const (
	// ModeSimulate reports what each step would do and mutates nothing
	ModeSimulate Mode = iota
	// ModeExecute performs each step's mutation
	ModeExecute
)

// String returns the string representation of a mode
func (m Mode) String() string {
	switch m {
	case ModeSimulate:
		return "simulate"
	case ModeExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// Step is one ordered unit of the provisioning plan. Steps are built fresh
// per invocation and never persisted; both modes walk the same Step values.
type Step struct {
	// Description is the stable, human-readable identity of the step
	Description string
	// Detail is the planned effect (paths, rendered content) shown in
	// simulate mode and confirmation output
	Detail string
	// IsApplied reports whether the step's effect is already present. It
	// must be side-effect-free. Nil means the step is idempotent by
	// overwrite and is always applied.
	IsApplied func(ctx context.Context) (bool, error)
	// Apply performs the mutation
	Apply func(ctx context.Context) error
}

// Report is the outcome of walking a plan.
type Report struct {
	// Planned lists step descriptions visited in simulate mode
	Planned []string
	// Succeeded lists steps whose Apply ran and returned nil
	Succeeded []string
	// Skipped lists steps whose IsApplied reported true
	Skipped []string
	// Failed names the step that stopped the run, empty if none did
	Failed string
	// Err is the failure that stopped the run, nil on success
	Err error
}
