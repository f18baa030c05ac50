// Package backoff wraps remote operations with exponential-delay retries.
package backoff

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"story-production-api/application/ports/outbound"
	"story-production-api/domain"
)

const (
	DefaultMaxRetries   = 5
	DefaultInitialDelay = 3 * time.Second

	maxJitter = time.Second
)

type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
}

// Execute runs op, retrying retryable failures up to the attempt budget with
// delay base*2^(attempt-1) plus random jitter. Non-retryable failures and
// exhausted budgets propagate the operation's error unchanged.
func Execute[T any](ctx context.Context, logger outbound.LoggerPort, cfg Config, op func() (T, error)) (T, error) {
	var zero T

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	initialDelay := cfg.InitialDelay
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}

	var lastErr error
	attempt := 0
	for attempt <= maxRetries {
		result, err := op()
		if err == nil {
			return result, nil
		}

		attempt++
		lastErr = err

		if !domain.IsRetryable(err) || attempt > maxRetries {
			return zero, err
		}

		jitter := time.Duration(rand.Int63n(int64(maxJitter)))
		delay := initialDelay*time.Duration(1<<(attempt-1)) + jitter

		logger.WarnWithFields("retryable error, backing off", map[string]interface{}{
			"attempt":     attempt,
			"max_retries": maxRetries,
			"delay_ms":    delay.Milliseconds(),
			"error":       err.Error(),
		})

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	if lastErr != nil {
		return zero, lastErr
	}
	// Unreachable given the loop invariant; kept so the executor can never
	// terminate silently.
	return zero, errors.New("max retries exceeded")
}
