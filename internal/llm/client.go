package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrNoChoices is returned when the provider answers without any completion.
var ErrNoChoices = errors.New("no choices returned")

// Client is the interface for LLM interactions.
type Client interface {
	ChatCompletion(ctx context.Context, messages []Message) (*Response, error)
}

// OpenAICompatClient works with any OpenAI-compatible API.
type OpenAICompatClient struct {
	client *openai.Client
	model  string
}

// NewClient creates an LLM client for the given provider.
// Requests are attempted exactly once; the SDK's retry loop is disabled.
func NewClient(baseURL, apiKey, model string) *OpenAICompatClient {
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	return &OpenAICompatClient{
		client: &client,
		model:  model,
	}
}

func (c *OpenAICompatClient) ChatCompletion(ctx context.Context, messages []Message) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: convertMessages(messages),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, ErrNoChoices
	}

	choice := completion.Choices[0]
	return &Response{
		Message: Message{
			Role:    RoleAssistant,
			Content: choice.Message.Content,
		},
		Model: completion.Model,
	}, nil
}

func convertMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	var out []openai.ChatCompletionMessageParamUnion
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		}
	}
	return out
}
