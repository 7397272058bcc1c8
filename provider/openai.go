package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/hanscan"
)

// Defaults point at DeepSeek's OpenAI-compatible endpoint.
const (
	DefaultBaseURL     = "https://api.deepseek.com/v1"
	DefaultModel       = "deepseek-chat"
	DefaultTemperature = 0.3
	DefaultTimeout     = 30 * time.Second
)

// OpenAIProvider suggests keys through any OpenAI-compatible chat API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the provider.
type OpenAIConfig struct {
	APIKey      string        // Bearer token
	Model       string        // Model to use (default: "deepseek-chat")
	Temperature float32       // Temperature for generation (default: 0.3)
	BaseURL     string        // API base URL (default: DeepSeek)
	Timeout     time.Duration // Per-request timeout (default: 30s)
}

// NewOpenAIProvider creates a new provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// SuggestKeys asks the model for one constant-style key per value.
// The returned keys are raw; callers sanitize and prefix them.
func (p *OpenAIProvider) SuggestKeys(ctx context.Context, req KeyRequest) ([]string, error) {
	if len(req.Values) == 0 {
		return []string{}, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &hanscan.ProviderError{
			Message:   "key suggestion call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &hanscan.ProviderError{
			Message:   "empty response from provider",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Values))
}

func (p *OpenAIProvider) buildSystemPrompt(req KeyRequest) string {
	contextText := "No module context is available."
	if req.Scope != "" {
		contextText = fmt.Sprintf("All strings belong to the game module %q. Do not repeat the module name in the key.", req.Scope)
	}

	return fmt.Sprintf(`# Role
You name localization keys for a C# game code base.

# Context
%s

# Task
For every input string, write an English constant name in C# constant style: upper case ASCII letters and digits, words separated by single underscores.

# Rules
- Describe the meaning of the string, not its characters.
- Placeholders such as {0} or {1} stand for runtime values; do not spell them out.
- Keep each key under 40 characters.

# Example
抽卡道具不足 -> DRAW_CARD_ITEM_INSUFFICIENT

# Format
Return a valid JSON object with a single key "keys" containing an array of strings in the exact same order as the input.
Example: { "keys": ["DRAW_CARD_ITEM_INSUFFICIENT", "BATTLE_VICTORY"] }
- Do NOT wrap in Markdown code blocks.`, contextText)
}

func (p *OpenAIProvider) buildUserMessage(req KeyRequest) string {
	data, _ := json.Marshal(req.Values)
	return string(data)
}

func (p *OpenAIProvider) parseResponse(content string, expectedCount int) ([]string, error) {
	content = strings.TrimSpace(content)

	var objResult map[string]interface{}
	if err := json.Unmarshal([]byte(content), &objResult); err == nil {
		if keys, ok := objResult["keys"].([]interface{}); ok {
			return toStringSlice(keys, expectedCount)
		}
		for _, v := range objResult {
			if arr, ok := v.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
	}

	var arrResult []interface{}
	if err := json.Unmarshal([]byte(content), &arrResult); err == nil {
		return toStringSlice(arrResult, expectedCount)
	}

	return nil, &hanscan.ProviderError{
		Message: "invalid response format from provider",
	}
}

func toStringSlice(arr []interface{}, expectedCount int) ([]string, error) {
	if len(arr) != expectedCount {
		return nil, &hanscan.CountMismatchError{
			Expected: expectedCount,
			Got:      len(arr),
		}
	}

	result := make([]string, len(arr))
	for i, v := range arr {
		if s, ok := v.(string); ok {
			result[i] = s
		} else if v != nil {
			result[i] = fmt.Sprintf("%v", v)
		}
	}
	return result, nil
}

func isRetryableError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"rate limit", "timeout", "connection refused", "connection reset", "temporary"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

var _ KeyProvider = (*OpenAIProvider)(nil)
