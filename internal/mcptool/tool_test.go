package mcptool

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelbrown/casegen/internal/sandbox"
)

type fakeRunner struct {
	outcome *sandbox.Outcome
	err     error
	calls   int
}

func (f *fakeRunner) RunFile(ctx context.Context, path, language string) (*sandbox.Outcome, error) {
	f.calls++
	return f.outcome, f.err
}

func call(t *testing.T, runner Runner, args any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolName
	req.Params.Arguments = args

	res, err := Handler(runner)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestHandlerRequiresArguments(t *testing.T) {
	runner := &fakeRunner{}

	res := call(t, runner, nil)
	assert.True(t, res.IsError)

	res = call(t, runner, map[string]any{"codeFile": "prog.py"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "required")
	assert.Equal(t, 0, runner.calls)
}

func TestHandlerReportsFailures(t *testing.T) {
	runner := &fakeRunner{outcome: &sandbox.Outcome{
		Language:    "python",
		Status:      sandbox.StatusExecuted,
		FailedTests: []string{"FAILED t::a", "FAILED t::b"},
	}}

	res := call(t, runner, map[string]any{"codeFile": "prog.py", "language": "python"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Failed tests (2):\nFAILED t::a\nFAILED t::b", text(t, res))
}

func TestHandlerAllPassing(t *testing.T) {
	runner := &fakeRunner{outcome: &sandbox.Outcome{Status: sandbox.StatusExecuted, FailedTests: []string{}}}

	res := call(t, runner, map[string]any{"codeFile": "prog.py", "language": "python"})
	assert.Equal(t, "All generated tests passed.", text(t, res))
}

func TestHandlerUnsupported(t *testing.T) {
	runner := &fakeRunner{outcome: &sandbox.Outcome{Language: "cobol", Status: sandbox.StatusUnsupported}}

	res := call(t, runner, map[string]any{"codeFile": "prog.cbl", "language": "cobol"})
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"cobol"`)
}

func TestHandlerPipelineError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("docker run failed")}

	res := call(t, runner, map[string]any{"codeFile": "prog.py", "language": "python"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "docker run failed")
}

func TestToolSchema(t *testing.T) {
	tool := Tool()
	assert.Equal(t, ToolName, tool.Name)
	assert.ElementsMatch(t, []string{"codeFile", "language"}, tool.InputSchema.Required)
}
