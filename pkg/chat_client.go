package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CompletionError wraps a failed chat completion call
type CompletionError struct {
	Status  int
	Timeout bool
	Err     error
}

func (e *CompletionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("chat completion timed out: %v", e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("chat completion failed with status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("chat completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is the model's request to invoke a named tool
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

type RequestMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Name       string     `json:"name,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

type ResponseMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

type ResponseFormat struct {
	Type   string           `json:"type"`
	Schema *json.RawMessage `json:"schema,omitempty"`
}

type ChatCompletionRequest struct {
	Model            string           `json:"model"`
	Messages         []RequestMessage `json:"messages"`
	MaxTokens        uint32           `json:"max_tokens"`
	Temperature      *float32         `json:"temperature,omitempty"`
	TopP             *float32         `json:"top_p,omitempty"`
	N                *uint32          `json:"n,omitempty"`
	Stream           *bool            `json:"stream,omitempty"`
	Stop             []string         `json:"stop,omitempty"`
	PresencePenalty  *float32         `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float32         `json:"frequency_penalty,omitempty"`
	ResponseFormat   *ResponseFormat  `json:"response_format,omitempty"`
	Seed             *uint32          `json:"seed,omitempty"`
	User             *string          `json:"user,omitempty"`
}

type ChatChoice struct {
	Index        uint32          `json:"index"`
	Message      ResponseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     uint32 `json:"prompt_tokens"`
	CompletionTokens uint32 `json:"completion_tokens"`
	TotalTokens      uint32 `json:"total_tokens"`
}

type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created uint64       `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *Usage       `json:"usage,omitempty"`
}

// ChatClient calls an OpenAI-compatible chat completions API
type ChatClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
	timeout time.Duration
}

func NewChatClient(apiKey, baseURL string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		client:  &http.Client{},
		apiKey:  apiKey,
		baseURL: baseURL,
		timeout: timeout,
	}
}

func (c *ChatClient) post(ctx context.Context, endpoint string, body interface{}) (*http.Response, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &CompletionError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", string(bodyBytes)),
		}
	}

	return resp, nil
}

// CreateChatCompletion performs one synchronous completion call. The
// configured timeout bounds the whole call; expiry surfaces as a
// CompletionError with Timeout set.
func (c *ChatClient) CreateChatCompletion(ctx context.Context, request ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.post(ctx, "chat/completions", request)
	if err != nil {
		var ce *CompletionError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &CompletionError{
			Timeout: errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CompletionError{Err: fmt.Errorf("failed to read response body: %v", err)}
	}

	var response ChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &CompletionError{Err: fmt.Errorf("failed to unmarshal response: %v", err)}
	}

	return &response, nil
}
