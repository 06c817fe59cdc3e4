// Package llm is the provider-neutral model client and its retry loop.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

var (
	// ErrEmptyResponse is returned by adapters when the provider answered
	// without any text content.
	ErrEmptyResponse = errors.New("empty response content")

	// ErrRetryExhausted indicates every attempt allowed by a RetryPolicy failed.
	ErrRetryExhausted = errors.New("model retry attempts exhausted")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Params tunes a single completion.
type Params struct {
	MaxTokens   int
	Temperature float64
	JSON        bool // request a JSON-object response where the provider supports it
}

// Client is a hosted completion model. Implementations return the raw text of
// the first choice.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message, p Params) (string, error)
}

// RetryPolicy bounds CompleteWithRetry. The overall deadline comes from the
// caller's context.
type RetryPolicy struct {
	MaxAttempts    int
	Delay          time.Duration
	AttemptTimeout time.Duration
}

// CompleteWithRetry calls c until it succeeds or the policy is used up. It
// returns the text and the number of attempts made.
func CompleteWithRetry(ctx context.Context, c Client, system string, messages []Message, p Params, policy RetryPolicy) (string, int, error) {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	made := 0
	for i := 0; i < attempts; i++ {
		made++
		text, err := completeOnce(ctx, c, system, messages, p, policy.AttemptTimeout)
		if err == nil {
			return text, made, nil
		}
		lastErr = err

		// Don't retry once the caller has given up.
		if ctx.Err() != nil {
			break
		}
		if i == attempts-1 {
			break
		}
		if policy.Delay > 0 {
			timer := time.NewTimer(policy.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", made, fmt.Errorf("%w: %v", ErrRetryExhausted, ctx.Err())
			case <-timer.C:
			}
		}
	}

	return "", made, fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, made, lastErr)
}

func completeOnce(ctx context.Context, c Client, system string, messages []Message, p Params, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.Complete(ctx, system, messages, p)
}
