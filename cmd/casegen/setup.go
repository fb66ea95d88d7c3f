package main

import (
	"fmt"

	"github.com/michaelbrown/casegen/internal/config"
	"github.com/michaelbrown/casegen/internal/generator"
	"github.com/michaelbrown/casegen/internal/llm"
	"github.com/michaelbrown/casegen/internal/pipeline"
	"github.com/michaelbrown/casegen/internal/sandbox"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configFlag)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newPipeline builds the pipeline once from the loaded configuration and
// the --provider/--model overrides.
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	provider, err := cfg.Provider(providerFlag)
	if err != nil {
		return nil, err
	}

	model := modelFlag
	if model == "" {
		model = provider.Models["default"]
	}
	if model == "" {
		return nil, fmt.Errorf("no model configured for provider")
	}

	client := llm.NewClient(provider.BaseURL, provider.APIKey, model)
	return pipeline.New(generator.New(client), sandbox.FromConfig(cfg.Sandbox)), nil
}
