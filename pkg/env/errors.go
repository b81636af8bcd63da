package env

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingVariable marks a required environment variable that is
	// absent or empty
	ErrMissingVariable = errors.New("required environment variable not set")
	// ErrMissingExecutable marks a required binary that is not on PATH
	ErrMissingExecutable = errors.New("required executable not found on PATH")
)

// MissingVariableError names the environment variable that failed the check.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("required environment variable %s not set", e.Name)
}

func (e *MissingVariableError) Unwrap() error { return ErrMissingVariable }

// MissingExecutableError names the binary that could not be resolved.
type MissingExecutableError struct {
	Name string
}

func (e *MissingExecutableError) Error() string {
	return fmt.Sprintf("required executable %s not found on PATH", e.Name)
}

func (e *MissingExecutableError) Unwrap() error { return ErrMissingExecutable }

// InvalidVariableError reports a variable that is present but unparseable.
type InvalidVariableError struct {
	Name  string
	Value string
}

func (e *InvalidVariableError) Error() string {
	return fmt.Sprintf("environment variable %s has invalid value %q", e.Name, e.Value)
}
