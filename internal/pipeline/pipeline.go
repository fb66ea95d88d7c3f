// Package pipeline wires test generation and sandboxed execution together.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/michaelbrown/casegen/internal/sandbox"
)

// TestGenerator produces test code for a program.
type TestGenerator interface {
	Generate(ctx context.Context, source, language string) (string, error)
}

// Pipeline reads a source file, generates tests for it and runs them.
type Pipeline struct {
	gen     TestGenerator
	sandbox sandbox.Sandbox
}

// New creates a Pipeline.
func New(gen TestGenerator, sb sandbox.Sandbox) *Pipeline {
	return &Pipeline{gen: gen, sandbox: sb}
}

// RunFile reads the program at path and runs the pipeline on it.
func (p *Pipeline) RunFile(ctx context.Context, path, language string) (*sandbox.Outcome, error) {
	source, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, source, language)
}

// Run generates tests for source and executes them. A generation failure
// stops the pipeline before anything is executed.
func (p *Pipeline) Run(ctx context.Context, source, language string) (*sandbox.Outcome, error) {
	tests, err := p.gen.Generate(ctx, source, language)
	if err != nil {
		return nil, err
	}

	outcome, err := p.sandbox.Run(ctx, source, language, tests)
	if err != nil {
		return nil, fmt.Errorf("running test cases: %w", err)
	}
	return outcome, nil
}

// ReadSource loads a program from disk. Relative paths resolve against the
// working directory.
func ReadSource(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("reading source file: %w", err)
	}
	return string(data), nil
}
