package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/MikeSquared-Agency/namepal/internal/llm"
)

// Client adapts the OpenAI chat-completions API to llm.Client.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient builds a client for model. baseURL is optional and targets an
// OpenAI-compatible gateway, e.g. "https://gateway.internal/v1".
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   goopenai.NewClientWithConfig(cfg),
		model: model,
	}
}

func (c *Client) Model() string { return c.model }

// Complete sends system first, then messages unchanged. System-role entries
// are allowed anywhere in messages.
func (c *Client) Complete(ctx context.Context, system string, messages []llm.Message, p llm.Params) (string, error) {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: system})
	}
	for _, m := range messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: toRole(m.Role), Content: m.Content})
	}

	req := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   p.MaxTokens,
		Temperature: float32(p.Temperature),
	}
	if p.JSON {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", llm.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func toRole(role string) string {
	switch role {
	case llm.RoleAssistant:
		return goopenai.ChatMessageRoleAssistant
	case llm.RoleSystem:
		return goopenai.ChatMessageRoleSystem
	default:
		return goopenai.ChatMessageRoleUser
	}
}
