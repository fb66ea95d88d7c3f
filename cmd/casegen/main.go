package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configFlag   string
	providerFlag string
	modelFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "casegen",
	Short: "casegen - generate and run unit tests with an LLM",
	Long: `casegen asks a language model to write unit tests for a source file,
runs them inside a Docker container and reports which tests failed.

Use "casegen run" for a one-shot run or "casegen serve" for the HTTP API.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: ./casegen.yaml or $HOME/.casegen/casegen.yaml)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "LLM provider (overrides default_provider)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model to use (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
