package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/michaelbrown/casegen/internal/sandbox"
)

var (
	listFlag    bool
	noColorFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run <path-to-source-file> <language>",
	Short: "Generate tests for a file and run them once",
	Long: `Generate unit tests for a source file, run them in a Docker container and
log the result.

The "Failed Tests:" label goes to stdout. Pipeline errors are logged and the
command still exits 0.

Examples:
  casegen run examples/divide.py python
  casegen run examples/divide.py python --list`,
	Args: cobra.ExactArgs(2),
	Run:  runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&listFlag, "list", false, "Print each failing test after the summary label")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) {
	codeFile, language := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	p, err := newPipeline(cfg)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := p.RunFile(ctx, codeFile, language)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Failed Tests:")
	if listFlag {
		printOutcome(cmd.OutOrStdout(), outcome, useColor())
	}
}

func useColor() bool {
	if noColorFlag {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func printOutcome(w io.Writer, o *sandbox.Outcome, colored bool) {
	fail := color.New(color.FgRed)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	if !colored {
		fail.DisableColor()
		ok.DisableColor()
		warn.DisableColor()
	}

	switch {
	case !o.Executed():
		warn.Fprintf(w, "No test runner for language %q; nothing was executed.\n", o.Language)
	case len(o.FailedTests) == 0:
		ok.Fprintln(w, "All generated tests passed.")
	default:
		for _, name := range o.FailedTests {
			fail.Fprintln(w, name)
		}
		fmt.Fprintf(w, "%d failing test(s)\n", len(o.FailedTests))
	}
}
