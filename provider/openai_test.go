package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/hanscan"
)

func TestBuildSystemPrompt(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	prompt := p.buildSystemPrompt(KeyRequest{Scope: "Battle", Values: []string{"胜利"}})

	if !strings.Contains(prompt, `"Battle"`) {
		t.Error("Prompt should contain the scope")
	}
	if !strings.Contains(prompt, "DRAW_CARD_ITEM_INSUFFICIENT") {
		t.Error("Prompt should contain the naming example")
	}
	if !strings.Contains(prompt, `"keys"`) {
		t.Error("Prompt should describe the response object")
	}
}

func TestBuildSystemPrompt_NoScope(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	prompt := p.buildSystemPrompt(KeyRequest{Values: []string{"胜利"}})
	if !strings.Contains(prompt, "No module context") {
		t.Error("Prompt should say there is no context")
	}
}

func TestBuildUserMessage(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	msg := p.buildUserMessage(KeyRequest{Values: []string{"确定", "获得{0}金币"}})
	if msg != `["确定","获得{0}金币"]` {
		t.Errorf("Expected JSON array, got: %s", msg)
	}
}

func TestParseResponse_KeysObject(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	got, err := p.parseResponse(`{"keys": ["CONFIRM", "CANCEL"]}`, 2)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if diff := cmp.Diff([]string{"CONFIRM", "CANCEL"}, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResponse_DirectArray(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	got, err := p.parseResponse(` ["CONFIRM"] `, 1)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if got[0] != "CONFIRM" {
		t.Errorf("got %v", got)
	}
}

func TestParseResponse_FallbackArrayKey(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	got, err := p.parseResponse(`{"result": ["BATTLE_VICTORY"]}`, 1)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if got[0] != "BATTLE_VICTORY" {
		t.Errorf("got %v", got)
	}
}

func TestParseResponse_CountMismatch(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	_, err := p.parseResponse(`{"keys": ["ONE"]}`, 2)
	var mismatch *hanscan.CountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CountMismatchError, got %v", err)
	}
	if mismatch.Expected != 2 || mismatch.Got != 1 {
		t.Errorf("unexpected mismatch %+v", mismatch)
	}
}

func TestParseResponse_Invalid(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})

	_, err := p.parseResponse("DRAW_CARD", 1)
	var providerErr *hanscan.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

// chatServer answers chat completion calls with content.
func chatServer(t *testing.T, status int, content string, seen *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		if seen != nil {
			body, _ := io.ReadAll(r.Body)
			*seen = append(*seen, string(body))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error": {"message": "slow down", "type": "rate_limit"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "deepseek-chat",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			}},
		})
	}))
}

func TestSuggestKeys_Server(t *testing.T) {
	var bodies []string
	srv := chatServer(t, http.StatusOK, `{"keys": ["BATTLE_VICTORY", "BATTLE_DEFEAT"]}`, &bodies)
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	got, err := p.SuggestKeys(context.Background(), KeyRequest{Scope: "Battle", Values: []string{"胜利", "失败"}})
	if err != nil {
		t.Fatalf("SuggestKeys failed: %v", err)
	}
	if diff := cmp.Diff([]string{"BATTLE_VICTORY", "BATTLE_DEFEAT"}, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	if len(bodies) != 1 {
		t.Fatalf("expected one request, got %d", len(bodies))
	}
	var sent struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal([]byte(bodies[0]), &sent); err != nil {
		t.Fatalf("bad request body: %v", err)
	}
	if sent.Model != DefaultModel {
		t.Errorf("model = %q, want %q", sent.Model, DefaultModel)
	}
	if len(sent.Messages) != 2 || sent.Messages[1].Content != `["胜利","失败"]` {
		t.Errorf("unexpected messages %+v", sent.Messages)
	}
}

func TestSuggestKeys_EmptyRequest(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: "http://127.0.0.1:1"})

	got, err := p.SuggestKeys(context.Background(), KeyRequest{})
	if err != nil || len(got) != 0 {
		t.Errorf("expected no call for an empty request, got %v, %v", got, err)
	}
}

func TestSuggestKeys_RateLimitedIsRetryable(t *testing.T) {
	srv := chatServer(t, http.StatusTooManyRequests, "", nil)
	defer srv.Close()

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := p.SuggestKeys(context.Background(), KeyRequest{Values: []string{"胜利"}})

	var providerErr *hanscan.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !providerErr.Retryable {
		t.Error("429 should be retryable")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&openai.APIError{HTTPStatusCode: 429}, true},
		{&openai.APIError{HTTPStatusCode: 503}, true},
		{&openai.APIError{HTTPStatusCode: 400}, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("invalid api key"), false},
	}
	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider()

	got, err := mock.SuggestKeys(context.Background(), KeyRequest{Scope: "UI", Values: []string{"确定", "未知"}})
	if err != nil {
		t.Fatalf("SuggestKeys failed: %v", err)
	}
	if diff := cmp.Diff([]string{"CONFIRM", ""}, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if mock.CallCount != 1 || mock.LastRequest.Scope != "UI" {
		t.Errorf("unexpected call record %d %+v", mock.CallCount, mock.LastRequest)
	}

	mock.Err = errors.New("down")
	if _, err := mock.SuggestKeys(context.Background(), KeyRequest{Values: []string{"确定"}}); err == nil {
		t.Error("expected scripted error")
	}

	mock.Reset()
	if mock.CallCount != 0 || mock.LastRequest != nil {
		t.Error("Reset should clear call state")
	}
}
