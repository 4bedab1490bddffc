// Package mock provides a test double for the llm.Provider interface.
//
// Use Provider in unit tests to verify the requests the summarizer sends and
// to feed controlled responses without a live backend. Set response fields
// before calling any method; mutating them during a concurrent call is the
// caller's responsibility.
//
// Example:
//
//	p := &mock.Provider{
//	    CompleteResponses: []*llm.CompletionResponse{{Content: "## Summary"}},
//	}
//	resp, err := p.Complete(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/hushnote/hushnote/pkg/provider/llm"
)

// CompleteCall records a single invocation of Complete.
type CompleteCall struct {
	// Ctx is the context passed to Complete.
	Ctx context.Context
	// Req is the CompletionRequest passed to Complete.
	Req llm.CompletionRequest
}

// Provider is a mock implementation of llm.Provider. Responses are consumed
// in order; when the response list is exhausted, the last entry is repeated.
// Set Err to inject a failure on every call.
type Provider struct {
	mu sync.Mutex

	// CompleteResponses is the sequence of responses returned by Complete.
	// May be empty (Complete then returns an empty response).
	CompleteResponses []*llm.CompletionResponse

	// Err, if non-nil, is returned as the error from Complete.
	Err error

	// ProviderName is returned by Name. Defaults to "mock".
	ProviderName string

	// CompleteCalls records every invocation of Complete in order.
	CompleteCalls []CompleteCall
}

var _ llm.Provider = (*Provider)(nil)

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.CompleteCalls = append(p.CompleteCalls, CompleteCall{Ctx: ctx, Req: req})
	if p.Err != nil {
		return nil, p.Err
	}
	if len(p.CompleteResponses) == 0 {
		return &llm.CompletionResponse{}, nil
	}
	idx := len(p.CompleteCalls) - 1
	if idx >= len(p.CompleteResponses) {
		idx = len(p.CompleteResponses) - 1
	}
	return p.CompleteResponses[idx], nil
}

// Name implements llm.Provider.
func (p *Provider) Name() string {
	if p.ProviderName != "" {
		return p.ProviderName
	}
	return "mock"
}
