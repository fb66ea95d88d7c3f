package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/michaelbrown/casegen/internal/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the test pipeline as an MCP tool over stdio",
	Long: `Run an MCP server on stdin/stdout exposing the generate_and_run_tests tool.

Logs go to stderr so they do not corrupt the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}

		log.SetOutput(cmd.ErrOrStderr())
		return mcptool.Serve(p, version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
