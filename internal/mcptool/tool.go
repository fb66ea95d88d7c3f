// Package mcptool exposes the test pipeline as an MCP tool over stdio.
package mcptool

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/michaelbrown/casegen/internal/sandbox"
)

// ToolName is the name clients call.
const ToolName = "generate_and_run_tests"

// Runner runs the generate-and-execute pipeline for a file on disk.
type Runner interface {
	RunFile(ctx context.Context, path, language string) (*sandbox.Outcome, error)
}

// NewServer creates an MCP server with the pipeline tool registered.
func NewServer(runner Runner, version string) *server.MCPServer {
	s := server.NewMCPServer("casegen", version)
	s.AddTool(Tool(), Handler(runner))
	return s
}

// Serve runs the MCP server on stdin/stdout until the client disconnects.
func Serve(runner Runner, version string) error {
	return server.ServeStdio(NewServer(runner, version))
}

// Tool describes the pipeline tool's input schema.
func Tool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolName,
		Description: "Generate unit tests for a source file with a language model, run them in a Docker sandbox and list the failing tests.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"codeFile": map[string]any{
					"type":        "string",
					"description": "Path to the source file to test",
				},
				"language": map[string]any{
					"type":        "string",
					"description": "Language of the source file (e.g. python)",
				},
			},
			Required: []string{"codeFile", "language"},
		},
	}
}

// Handler returns the tool's call handler.
func Handler(runner Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		if args == nil {
			return errResult("error: invalid arguments"), nil
		}

		codeFile, _ := args["codeFile"].(string)
		language, _ := args["language"].(string)
		if codeFile == "" || language == "" {
			return errResult("error: 'codeFile' and 'language' are required"), nil
		}

		outcome, err := runner.RunFile(ctx, codeFile, language)
		if err != nil {
			return errResult(fmt.Sprintf("error: %v", err)), nil
		}

		return textResult(formatOutcome(outcome)), nil
	}
}

func formatOutcome(o *sandbox.Outcome) string {
	switch {
	case !o.Executed():
		return fmt.Sprintf("No test runner for language %q; nothing was executed.", o.Language)
	case len(o.FailedTests) == 0:
		return "All generated tests passed."
	default:
		return fmt.Sprintf("Failed tests (%d):\n%s", len(o.FailedTests), strings.Join(o.FailedTests, "\n"))
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

func errResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
		IsError: true,
	}
}
