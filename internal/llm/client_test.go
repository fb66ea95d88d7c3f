package llm

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProvider(t *testing.T, status int, body string, hits *atomic.Int32, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if gotBody != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, gotBody)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatCompletionReturnsFirstChoice(t *testing.T) {
	var hits atomic.Int32
	var sent map[string]any
	srv := fakeProvider(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "test-model",
		"choices": [
			{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "def test_one():\n    assert True"}},
			{"index": 1, "finish_reason": "stop", "message": {"role": "assistant", "content": "ignored"}}
		]
	}`, &hits, &sent)

	c := NewClient(srv.URL+"/", "sk-test", "test-model")
	resp, err := c.ChatCompletion(t.Context(), []Message{UserMessage("write tests")})
	require.NoError(t, err)

	assert.Equal(t, RoleAssistant, resp.Message.Role)
	assert.Equal(t, "def test_one():\n    assert True", resp.Message.Content)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "test-model", sent["model"])

	msgs, ok := sent["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
}

func TestChatCompletionNoChoices(t *testing.T) {
	var hits atomic.Int32
	srv := fakeProvider(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`, &hits, nil)

	c := NewClient(srv.URL+"/", "sk-test", "m")
	_, err := c.ChatCompletion(t.Context(), []Message{UserMessage("hi")})
	assert.True(t, errors.Is(err, ErrNoChoices))
}

func TestChatCompletionSingleAttempt(t *testing.T) {
	var hits atomic.Int32
	srv := fakeProvider(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, &hits, nil)

	c := NewClient(srv.URL+"/", "sk-test", "m")
	_, err := c.ChatCompletion(t.Context(), []Message{UserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion")
	assert.Equal(t, int32(1), hits.Load(), "failed calls must not be retried")
}

func TestConvertMessagesSkipsUnknownRoles(t *testing.T) {
	out := convertMessages([]Message{
		{Role: RoleSystem, Content: "sys"},
		UserMessage("user"),
		{Role: RoleAssistant, Content: "assistant"},
		{Role: "tool", Content: "dropped"},
	})
	assert.Len(t, out, 3)
}
