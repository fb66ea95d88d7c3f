package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type ProviderConfig struct {
	BaseURL string            `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string            `mapstructure:"api_key" yaml:"api_key"`
	Models  map[string]string `mapstructure:"models" yaml:"models"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// LanguageConfig describes how generated tests for one language are built and run.
type LanguageConfig struct {
	Dockerfile string `mapstructure:"dockerfile" yaml:"dockerfile"`
	Image      string `mapstructure:"image" yaml:"image"`
	TestFile   string `mapstructure:"test_file" yaml:"test_file"`
	FenceTag   string `mapstructure:"fence_tag" yaml:"fence_tag"`
	MountPath  string `mapstructure:"mount_path" yaml:"mount_path"`
}

type SandboxConfig struct {
	WorkDir    string                    `mapstructure:"work_dir" yaml:"work_dir"`
	ContextDir string                    `mapstructure:"context_dir" yaml:"context_dir"`
	MaxMemory  string                    `mapstructure:"max_memory" yaml:"max_memory"`
	Network    bool                      `mapstructure:"network" yaml:"network"`
	Languages  map[string]LanguageConfig `mapstructure:"languages" yaml:"languages"`
}

type Config struct {
	Providers       map[string]ProviderConfig `mapstructure:"providers" yaml:"providers"`
	DefaultProvider string                    `mapstructure:"default_provider" yaml:"default_provider"`
	Server          ServerConfig              `mapstructure:"server" yaml:"server"`
	Sandbox         SandboxConfig             `mapstructure:"sandbox" yaml:"sandbox"`
}

// LoadFile reads configuration from path, or from casegen.yaml in the
// working directory or $HOME/.casegen when path is empty. A missing default
// file is not an error; the defaults describe a working setup.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("casegen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.casegen")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Expand environment variables in API keys
	for name, p := range cfg.Providers {
		if strings.HasPrefix(p.APIKey, "${") && strings.HasSuffix(p.APIKey, "}") {
			envVar := p.APIKey[2 : len(p.APIKey)-1]
			p.APIKey = os.Getenv(envVar)
			cfg.Providers[name] = p
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_provider", "openai")
	v.SetDefault("providers.openai.base_url", "https://api.openai.com/v1/")
	v.SetDefault("providers.openai.api_key", "${OPENAI_API_KEY}")
	v.SetDefault("providers.openai.models.default", "o1-preview")

	v.SetDefault("server.port", 3000)

	v.SetDefault("sandbox.work_dir", "dockerspace")
	v.SetDefault("sandbox.context_dir", ".")
	v.SetDefault("sandbox.max_memory", "512m")
	v.SetDefault("sandbox.network", false)
	v.SetDefault("sandbox.languages.python.dockerfile", "docker/Dockerfile.python")
	v.SetDefault("sandbox.languages.python.image", "code-runner")
	v.SetDefault("sandbox.languages.python.test_file", "test_program.py")
	v.SetDefault("sandbox.languages.python.fence_tag", "python")
	v.SetDefault("sandbox.languages.python.mount_path", "/app")
}

// Validate checks the fields the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.Sandbox.WorkDir == "" {
		return fmt.Errorf("sandbox.work_dir is required")
	}
	for name, lang := range c.Sandbox.Languages {
		if lang.Dockerfile == "" || lang.Image == "" || lang.TestFile == "" {
			return fmt.Errorf("sandbox.languages.%s: dockerfile, image and test_file are required", name)
		}
	}
	return nil
}

// Provider returns the config for a named provider, falling back to the default.
func (c *Config) Provider(name string) (ProviderConfig, error) {
	if name == "" {
		name = c.DefaultProvider
	}
	p, ok := c.Providers[name]
	if !ok {
		return ProviderConfig{}, fmt.Errorf("unknown provider: %s", name)
	}
	return p, nil
}
