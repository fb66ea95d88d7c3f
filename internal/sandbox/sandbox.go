package sandbox

import (
	"context"
	"fmt"
)

// Status tells whether a run actually executed anything.
type Status string

const (
	StatusExecuted    Status = "executed"
	StatusUnsupported Status = "unsupported"
)

// Outcome is the result of running generated tests.
type Outcome struct {
	Language    string
	Status      Status
	FailedTests []string // in output order, duplicates kept
}

// Executed reports whether tests were run for this outcome.
func (o *Outcome) Executed() bool {
	return o.Status == StatusExecuted
}

// Sandbox runs a program together with its generated tests in an isolated
// environment and reports the failing tests.
type Sandbox interface {
	Run(ctx context.Context, source, language, tests string) (*Outcome, error)
}

// ExecutionError reports a failed image build or container run.
type ExecutionError struct {
	Stage  string // "build" or "run"
	Output string // stderr, or the OS error text when stderr was empty
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("docker %s failed: %s", e.Stage, e.Output)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
