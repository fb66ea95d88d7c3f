// Package generator asks a language model to write unit tests for a program.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/michaelbrown/casegen/internal/llm"
)

// ErrEmptySource is returned when there is no code to write tests for.
var ErrEmptySource = errors.New("source code is empty")

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("completion has no content")

// GenerationError reports that tests could not be generated.
type GenerationError struct {
	Language string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %s test cases: %v", e.Language, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator turns source code into test code with one completion call.
type Generator struct {
	llm llm.Client
}

// New creates a Generator backed by the given client.
func New(client llm.Client) *Generator {
	return &Generator{llm: client}
}

// Generate returns the raw test code produced for source. The text is not
// validated beyond being non-empty.
func (g *Generator) Generate(ctx context.Context, source, language string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", &GenerationError{Language: language, Err: ErrEmptySource}
	}

	resp, err := g.llm.ChatCompletion(ctx, []llm.Message{
		llm.UserMessage(BuildPrompt(source, language)),
	})
	if err != nil {
		log.Printf("Test cases could not be generated: %v", err)
		return "", &GenerationError{Language: language, Err: err}
	}
	if resp == nil || resp.Message.Content == "" {
		log.Printf("Test cases could not be generated: %v", ErrEmptyCompletion)
		return "", &GenerationError{Language: language, Err: ErrEmptyCompletion}
	}

	return resp.Message.Content, nil
}
