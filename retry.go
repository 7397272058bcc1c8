package hanscan

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Retries after the first attempt
	BaseDelay  time.Duration // Delay before the first retry, doubled each time
	MaxDelay   time.Duration // Upper bound on a single delay
}

// DefaultRetryConfig returns the retry policy used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// backoff returns the delay before retry number attempt (0-based).
func (c RetryConfig) backoff(attempt int) time.Duration {
	delay := c.BaseDelay << attempt
	if delay <= 0 || delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// WithRetry calls fn until it succeeds, returns a non-retryable error or
// the retries are used up. Only errors for which IsRetryable is true are
// retried.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == cfg.MaxRetries {
			break
		}

		delay := cfg.backoff(attempt)
		log.Debug().Err(err).Int("attempt", attempt+1).Dur("backoff", delay).Msg("Retrying key suggestion")

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether err is a ProviderError marked retryable.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// RetryableProvider wraps a KeyProvider with retry logic.
type RetryableProvider struct {
	provider KeyProvider
	config   RetryConfig
}

// NewRetryableProvider creates a provider that retries transient failures.
func NewRetryableProvider(provider KeyProvider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{
		provider: provider,
		config:   cfg,
	}
}

// SuggestKeys implements KeyProvider.
func (p *RetryableProvider) SuggestKeys(ctx context.Context, req KeyRequest) ([]string, error) {
	return WithRetry(ctx, p.config, func() ([]string, error) {
		return p.provider.SuggestKeys(ctx, req)
	})
}
