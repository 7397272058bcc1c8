package provider

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/hanscan"
)

// MockProvider is a scripted key provider for tests.
type MockProvider struct {
	mu          sync.Mutex
	Keys        map[string]string // Value to suggested key
	Err         error             // Returned by every call when set
	CallCount   int
	LastRequest *KeyRequest
}

// NewMockProvider creates a mock with a few common game strings.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Keys: map[string]string{
			"抽卡道具不足": "DRAW_CARD_ITEM_INSUFFICIENT",
			"确定":     "CONFIRM",
			"取消":     "CANCEL",
		},
	}
}

// SuggestKeys returns the scripted keys; unknown values get "".
func (m *MockProvider) SuggestKeys(ctx context.Context, req KeyRequest) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, &hanscan.ProviderError{Message: "request cancelled", Cause: err}
	}

	keys := make([]string, len(req.Values))
	for i, v := range req.Values {
		keys[i] = m.Keys[v]
	}
	return keys, nil
}

// Reset clears the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

var _ KeyProvider = (*MockProvider)(nil)
