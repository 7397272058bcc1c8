package hanscan

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mapCache is a minimal KeyCache.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
	failSet bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(key, value string) error {
	if c.failSet {
		return &CacheError{Message: "read-only"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

// scriptedProvider answers from a table and records every request.
type scriptedProvider struct {
	keys     map[string]string
	err      error
	short    bool
	requests []KeyRequest
}

func (p *scriptedProvider) SuggestKeys(ctx context.Context, req KeyRequest) ([]string, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	out := make([]string, 0, len(req.Values))
	for _, v := range req.Values {
		out = append(out, p.keys[v])
	}
	if p.short {
		out = out[:len(out)-1]
	}
	return out, nil
}

func TestKeyAssigner_DefaultOnly(t *testing.T) {
	a := NewKeyAssigner(ScriptHan)

	got := a.AssignAll(context.Background(), "Draw", []string{"抽卡道具不足", "{0}/{1}"})
	want := []string{"DRAW_DRAW_CARD_ITEM_PROP_NOT_SUFFICIENT", "DRAW_PARAM_2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AssignAll mismatch (-want +got):\n%s", diff)
	}

	if key := a.Assign(context.Background(), "你好", "Draw"); key != "DRAW_TEXT" {
		t.Errorf("Assign = %q", key)
	}
}

func TestKeyAssigner_CacheHitAndWriteBack(t *testing.T) {
	c := newMapCache()
	c.entries["Draw:抽卡"] = "CARD_DRAW" // legacy entry without prefix
	p := &scriptedProvider{keys: map[string]string{"道具": "item prop"}}

	a := NewKeyAssigner(ScriptHan, WithCache(c), WithProvider(p))
	keys, sources := a.assign(context.Background(), "Draw", []string{"抽卡", "道具"})

	if diff := cmp.Diff([]string{"DRAW_CARD_DRAW", "DRAW_ITEM_PROP"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]KeySource{KeyFromCache, KeyFromProvider}, sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	if len(p.requests) != 1 || len(p.requests[0].Values) != 1 || p.requests[0].Values[0] != "道具" {
		t.Errorf("provider should only see cache misses, got %+v", p.requests)
	}
	if got := c.entries["Draw:道具"]; got != "DRAW_ITEM_PROP" {
		t.Errorf("provider key not cached, got %q", got)
	}
	if got := c.entries["Draw:抽卡"]; got != "CARD_DRAW" {
		t.Errorf("cache hit should not be rewritten, got %q", got)
	}
}

func TestKeyAssigner_ProviderFailureFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider *scriptedProvider
	}{
		{"error", &scriptedProvider{err: &ProviderError{Message: "timeout", Retryable: true}}},
		{"count mismatch", &scriptedProvider{short: true, keys: map[string]string{}}},
		{"unusable key", &scriptedProvider{keys: map[string]string{"抽卡": "抽卡"}}},
		{"cancelled", &scriptedProvider{err: context.Canceled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMapCache()
			a := NewKeyAssigner(ScriptHan, WithCache(c), WithProvider(tt.provider))

			keys, sources := a.assign(context.Background(), "Draw", []string{"抽卡"})
			if keys[0] != "DRAW_DRAW_CARD" || sources[0] != KeyFromDefault {
				t.Errorf("got %q (%v), want generated key", keys[0], sources[0])
			}
			if c.entries["Draw:抽卡"] != "DRAW_DRAW_CARD" {
				t.Errorf("generated key should be cached, got %q", c.entries["Draw:抽卡"])
			}
		})
	}
}

func TestKeyAssigner_Batches(t *testing.T) {
	p := &scriptedProvider{keys: map[string]string{}}
	values := []string{"一", "二", "三", "四", "五"}
	for _, v := range values {
		p.keys[v] = "K"
	}

	a := NewKeyAssigner(ScriptHan, WithProvider(p), WithBatchSize(2))
	keys := a.AssignAll(context.Background(), "N", values)

	if len(p.requests) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(p.requests))
	}
	if diff := cmp.Diff([]string{"五"}, p.requests[2].Values); diff != "" {
		t.Errorf("last batch mismatch (-want +got):\n%s", diff)
	}
	for i, k := range keys {
		if k != "N_K" {
			t.Errorf("key %d = %q, want N_K", i, k)
		}
	}
}

func TestKeyAssigner_CacheSetErrorIgnored(t *testing.T) {
	c := newMapCache()
	c.failSet = true
	a := NewKeyAssigner(ScriptHan, WithCache(c))

	if key := a.Assign(context.Background(), "确定", "UI"); !strings.HasPrefix(key, "UI_") {
		t.Errorf("unexpected key %q", key)
	}
}

func TestKeyAssigner_ParallelLookup(t *testing.T) {
	c := newMapCache()
	values := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		v := string(rune('一' + i))
		values = append(values, v)
		if i%2 == 0 {
			c.entries[CacheKey("P", v)] = "P_HIT"
		}
	}

	a := NewKeyAssigner(ScriptHan, WithCache(c), WithParallelLookup(5))
	_, sources := a.assign(context.Background(), "P", values)

	for i, src := range sources {
		want := KeyFromDefault
		if i%2 == 0 {
			want = KeyFromCache
		}
		if src != want {
			t.Errorf("value %d source = %v, want %v", i, src, want)
		}
	}
}

func TestKeyAssigner_EmptyInput(t *testing.T) {
	p := &scriptedProvider{err: errors.New("must not be called")}
	a := NewKeyAssigner(ScriptHan, WithProvider(p), WithCache(newMapCache()))

	if keys := a.AssignAll(context.Background(), "X", nil); len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
	if len(p.requests) != 0 {
		t.Error("provider should not be called without values")
	}
}
