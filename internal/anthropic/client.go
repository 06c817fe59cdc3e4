package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/namepal/internal/llm"
)

const defaultBaseURL = "https://api.anthropic.com"

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) Model() string { return c.model }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Messages    []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the conversation to the Messages API and returns the text
// response. System-role entries in messages are appended to the system prompt
// since the API only accepts user and assistant turns.
func (c *Client) Complete(ctx context.Context, system string, messages []llm.Message, p llm.Params) (string, error) {
	reqBody := request{
		Model:     c.model,
		MaxTokens: p.MaxTokens,
	}
	if reqBody.MaxTokens <= 0 {
		reqBody.MaxTokens = 1024
	}
	if p.Temperature > 0 {
		t := p.Temperature
		reqBody.Temperature = &t
	}

	systemParts := []string{}
	if system != "" {
		systemParts = append(systemParts, system)
	}
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		reqBody.Messages = append(reqBody.Messages, message{Role: m.Role, Content: m.Content})
	}
	reqBody.System = strings.Join(systemParts, "\n\n")

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Type != "" {
			return "", fmt.Errorf("api error %d: %s: %s", resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", llm.ErrEmptyResponse
	}

	return sb.String(), nil
}
