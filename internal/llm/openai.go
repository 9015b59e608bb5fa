package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient is the production ChatCompleter. Any OpenAI-compatible
// chat-completions endpoint works via BaseURL.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient builds a client for the given key, base URL and model.
// An empty base URL uses the default OpenAI endpoint.
func NewOpenAIClient(key, baseURL, model string) (*OpenAIClient, error) {
	if key == "" {
		return nil, errors.New("llm: API key is not configured")
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...), model: model}, nil
}

// Complete sends system + few-shot + user(text, images) and returns the
// first choice's content verbatim. Fence stripping and JSON parsing are the
// caller's job.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.FewShot)+2)
	messages = append(messages, openai.SystemMessage(req.System))
	for _, m := range req.FewShot {
		switch m.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Text),
	}
	for _, url := range req.Images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    url,
			Detail: "auto",
		}))
	}
	messages = append(messages, openai.UserMessage(parts))

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}
