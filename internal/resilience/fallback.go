// Package resilience provides a fallback chain over LLM providers: when the
// primary fails, the next configured provider is tried in order. A summarize
// run against a flaky local model can then fall back to a hosted one instead
// of failing outright.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hushnote/hushnote/pkg/provider/llm"
)

// ErrAllFailed is returned when every provider in the chain fails.
var ErrAllFailed = errors.New("resilience: all providers failed")

// LLMFallback is an [llm.Provider] that delegates to a primary provider and
// zero or more fallbacks, tried in registration order.
//
// LLMFallback is read-only after construction and safe for concurrent use.
type LLMFallback struct {
	providers []llm.Provider
}

var _ llm.Provider = (*LLMFallback)(nil)

// NewLLMFallback creates a chain with primary as the first entry.
// Additional providers are registered via [LLMFallback.AddFallback].
func NewLLMFallback(primary llm.Provider) *LLMFallback {
	return &LLMFallback{providers: []llm.Provider{primary}}
}

// AddFallback appends a fallback provider. Fallbacks are tried in the order
// they are added, after the primary.
func (f *LLMFallback) AddFallback(p llm.Provider) {
	f.providers = append(f.providers, p)
}

// Name implements [llm.Provider]. It reports the primary provider's name.
func (f *LLMFallback) Name() string {
	return f.providers[0].Name()
}

// Complete implements [llm.Provider]. Each provider is tried in order until
// one succeeds; a cancelled or expired context stops the chain.
func (f *LLMFallback) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	var lastErr error
	for _, p := range f.providers {
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			break
		}
		resp, err := p.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		slog.Warn("provider failed, trying next", "provider", p.Name(), "error", err)
	}
	return nil, fmt.Errorf("%w: %v", ErrAllFailed, lastErr)
}
