package bootstrap

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConfigured means the include directive is present: this
	// node has been through a successful run and must not be touched again
	ErrAlreadyConfigured = errors.New("node already configured for replication")
	// ErrMissingPath marks a precondition path that does not exist
	ErrMissingPath = errors.New("required path missing")
)

// MissingPathError reports which precondition path is absent.
type MissingPathError struct {
	What string
	Path string
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("%s not found at %s", e.What, e.Path)
}

func (e *MissingPathError) Unwrap() error { return ErrMissingPath }

// StepApplyError wraps a failure inside a step with the step's identity.
type StepApplyError struct {
	Step  string
	Cause error
}

func (e *StepApplyError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Cause)
}

func (e *StepApplyError) Unwrap() error { return e.Cause }
