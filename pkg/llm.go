package pkg

import (
	"careers"
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator is the narrow contract the insight generator consumes: one
// prompt in, one completion out. Failures are handled by the caller's
// fallback path, never retried here.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var ErrLLMNotConfigured = errors.New("llm api key not configured")

type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator() *OpenAIGenerator {
	cfg := careers.GetConfig().LLMConfig
	if cfg.APIKey == "" {
		return &OpenAIGenerator{client: nil, model: cfg.Model}
	}
	return &OpenAIGenerator{
		client: openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
	}
}

func (slf *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if slf.client == nil {
		return "", ErrLLMNotConfigured
	}

	resp, err := slf.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       slf.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
