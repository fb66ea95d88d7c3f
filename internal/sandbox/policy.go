package sandbox

import (
	"strings"

	"github.com/michaelbrown/casegen/internal/config"
)

// Policy defines resource limits for test containers.
type Policy struct {
	MaxMemory string // Docker memory limit (e.g. "256m"); empty means no limit
	Network   bool   // Whether network access is allowed
}

// DefaultPolicy returns safe defaults for test execution.
func DefaultPolicy() Policy {
	return Policy{
		MaxMemory: "512m",
		Network:   false,
	}
}

// runArgs returns the docker run flags the policy implies.
func (p Policy) runArgs() []string {
	var args []string
	if p.MaxMemory != "" {
		args = append(args, "--memory", p.MaxMemory)
	}
	if !p.Network {
		args = append(args, "--network=none")
	}
	return args
}

// Language describes how one language's tests are built and run.
type Language struct {
	Name       string
	Dockerfile string // path handed to docker build -f
	Image      string // tag for the built image
	TestFile   string // name of the combined source+tests file
	FenceTag   string // markdown info string stripped from the file
	MountPath  string // where the scratch directory appears in the container
}

// Python is the built-in pytest runner.
var Python = Language{
	Name:       "python",
	Dockerfile: "docker/Dockerfile.python",
	Image:      "code-runner",
	TestFile:   "test_program.py",
	FenceTag:   "python",
	MountPath:  "/app",
}

// LanguagesFromConfig converts configured runners, keyed by lowercase name.
func LanguagesFromConfig(langs map[string]config.LanguageConfig) map[string]Language {
	out := make(map[string]Language, len(langs))
	for name, lc := range langs {
		name = strings.ToLower(name)
		mount := lc.MountPath
		if mount == "" {
			mount = "/app"
		}
		out[name] = Language{
			Name:       name,
			Dockerfile: lc.Dockerfile,
			Image:      lc.Image,
			TestFile:   lc.TestFile,
			FenceTag:   lc.FenceTag,
			MountPath:  mount,
		}
	}
	return out
}
