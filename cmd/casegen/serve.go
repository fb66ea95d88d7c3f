package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/michaelbrown/casegen/internal/server"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the casegen HTTP server",
	Long: `Start the HTTP server exposing POST /run-test-cases.

The request body is {"codeFile": "<path>", "language": "<language>"}.

Examples:
  casegen serve
  casegen serve --port 9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	// Determine port
	port := cfg.Server.Port
	if portFlag > 0 {
		port = portFlag
	}

	srv := server.New(p)

	// Graceful shutdown on SIGINT/SIGTERM; in-flight requests finish first
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, port); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
