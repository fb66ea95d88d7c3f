package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/michaelbrown/casegen/internal/config"
	"github.com/michaelbrown/casegen/internal/fence"
)

// CommandRunner executes an external command and returns its captured output.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

// ExecCommand runs the command with os/exec.
func ExecCommand(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Options configures a DockerSandbox.
type Options struct {
	WorkDir    string              // parent of the per-run scratch directories
	ContextDir string              // docker build context, "." when empty
	Policy     Policy              // docker run limits
	Languages  map[string]Language // keyed by lowercase name
	Command    CommandRunner       // defaults to ExecCommand
}

// DockerSandbox builds a per-language image and runs the combined
// program+tests file in a container.
type DockerSandbox struct {
	workDir    string
	contextDir string
	policy     Policy
	languages  map[string]Language
	command    CommandRunner
	removeAll  func(string) error
}

// NewDockerSandbox creates a sandbox from opts.
func NewDockerSandbox(opts Options) *DockerSandbox {
	if opts.Command == nil {
		opts.Command = ExecCommand
	}
	if opts.ContextDir == "" {
		opts.ContextDir = "."
	}
	langs := make(map[string]Language, len(opts.Languages))
	for name, l := range opts.Languages {
		langs[strings.ToLower(name)] = l
	}
	return &DockerSandbox{
		workDir:    opts.WorkDir,
		contextDir: opts.ContextDir,
		policy:     opts.Policy,
		languages:  langs,
		command:    opts.Command,
		removeAll:  os.RemoveAll,
	}
}

// FromConfig creates a sandbox for the configured languages.
func FromConfig(cfg config.SandboxConfig) *DockerSandbox {
	policy := DefaultPolicy()
	if cfg.MaxMemory != "" {
		policy.MaxMemory = cfg.MaxMemory
	}
	policy.Network = cfg.Network

	return NewDockerSandbox(Options{
		WorkDir:    cfg.WorkDir,
		ContextDir: cfg.ContextDir,
		Policy:     policy,
		Languages:  LanguagesFromConfig(cfg.Languages),
	})
}

func (d *DockerSandbox) lookup(language string) (Language, bool) {
	l, ok := d.languages[strings.ToLower(strings.TrimSpace(language))]
	return l, ok
}

// Run writes source and tests into a fresh scratch directory, runs them in
// the language's container and returns the failing tests. For a language
// without a runner nothing is written or executed and the outcome is
// StatusUnsupported. The scratch directory is always removed before Run
// returns.
func (d *DockerSandbox) Run(ctx context.Context, source, language, tests string) (*Outcome, error) {
	lang, ok := d.lookup(language)
	if !ok {
		log.Printf("No test runner for language %q, skipping execution", language)
		return &Outcome{Language: language, Status: StatusUnsupported, FailedTests: []string{}}, nil
	}

	root, err := filepath.Abs(d.workDir)
	if err != nil {
		return nil, fmt.Errorf("resolving work dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating work dir: %w", err)
	}

	scratch := filepath.Join(root, uuid.NewString())
	if err := os.Mkdir(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer d.clean(scratch)

	if err := writeTestFile(filepath.Join(scratch, lang.TestFile), source, tests, lang.FenceTag); err != nil {
		return nil, err
	}

	if err := d.build(ctx, root, lang); err != nil {
		return nil, err
	}

	stdout, err := d.run(ctx, scratch, lang)
	if err != nil {
		return nil, err
	}
	log.Printf("Docker output:\n%s", stdout)

	return &Outcome{
		Language:    lang.Name,
		Status:      StatusExecuted,
		FailedTests: ExtractFailures(stdout),
	}, nil
}

// writeTestFile writes source and tests to path, then strips markdown fence
// markers from the file in place.
func writeTestFile(path, source, tests, fenceTag string) error {
	if err := os.WriteFile(path, []byte(source+"\n"+tests), 0o644); err != nil {
		return fmt.Errorf("writing test file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading test file: %w", err)
	}
	if err := os.WriteFile(path, []byte(fence.Strip(string(data), fenceTag)), 0o644); err != nil {
		return fmt.Errorf("rewriting test file: %w", err)
	}
	return nil
}

func (d *DockerSandbox) build(ctx context.Context, root string, lang Language) error {
	lock := newBuildLock(root, lang.Image)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	args := []string{"build", "-f", lang.Dockerfile, "-t", lang.Image, d.contextDir}
	_, stderr, err := d.command(ctx, "docker", args...)
	if err != nil {
		return executionError("build", stderr, err)
	}
	return nil
}

func (d *DockerSandbox) run(ctx context.Context, scratch string, lang Language) (string, error) {
	args := []string{"run", "--rm"}
	args = append(args, d.policy.runArgs()...)
	args = append(args, "-v", scratch+":"+lang.MountPath, lang.Image)

	stdout, stderr, err := d.command(ctx, "docker", args...)
	if err != nil {
		return "", executionError("run", stderr, err)
	}
	return stdout, nil
}

func executionError(stage, stderr string, err error) *ExecutionError {
	output := stderr
	if output == "" {
		output = err.Error()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Printf("Docker %s exited with code %d: %s", stage, exitErr.ExitCode(), output)
	} else {
		log.Printf("Docker %s error: %s", stage, output)
	}
	return &ExecutionError{Stage: stage, Output: output, Err: err}
}

// clean removes the scratch directory. Failures are only logged.
func (d *DockerSandbox) clean(dir string) {
	if err := d.removeAll(dir); err != nil {
		log.Printf("Warning: cleaning directory %s: %v", dir, err)
		return
	}
	log.Printf("Directory %s has been cleaned.", dir)
}
