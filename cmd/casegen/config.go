package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/michaelbrown/casegen/internal/config"
)

var showSecretsFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out, err := renderConfig(cfg, showSecretsFlag)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&showSecretsFlag, "show-secrets", false, "Print API keys instead of masking them")
	rootCmd.AddCommand(configCmd)
}

// renderConfig marshals cfg to YAML, masking API keys unless asked not to.
func renderConfig(cfg *config.Config, showSecrets bool) (string, error) {
	c := *cfg
	if !showSecrets {
		c.Providers = make(map[string]config.ProviderConfig, len(cfg.Providers))
		for name, p := range cfg.Providers {
			if p.APIKey != "" {
				p.APIKey = "********"
			}
			c.Providers[name] = p
		}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}
