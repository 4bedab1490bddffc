// Package llm defines the Provider interface for text-generation backends.
//
// A provider wraps a remote or local model API (e.g., a local Ollama
// instance, OpenAI, Anthropic) and exposes a uniform interface for the
// summarization stage without coupling it to any specific SDK. The transcript
// pipeline is a batch process, so the interface is completion-only; there is
// no streaming surface.
//
// Implementations must be safe for concurrent use and must propagate context
// cancellation promptly.
package llm

import "context"

// Message is one turn of a conversation sent to the model.
type Message struct {
	// Role is "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Usage holds token accounting information returned by the backend. Counts
// are in the model's native token unit and may differ between providers for
// the same textual content.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CompletionRequest carries everything the model needs to produce a response.
// At minimum Messages must be non-empty.
type CompletionRequest struct {
	// Messages is the ordered conversation. The last message is typically
	// from the "user" role and drives the response.
	Messages []Message

	// SystemPrompt is an optional high-priority instruction injected before
	// the conversation. Providers without a dedicated system slot prepend it
	// as a "system"-role message.
	SystemPrompt string

	// Temperature controls output randomness in [0.0, 2.0]. Zero means use
	// the provider default.
	Temperature float64

	// MaxTokens caps the number of completion tokens. Zero means use the
	// provider default.
	MaxTokens int
}

// CompletionResponse is the full, non-streamed model reply.
type CompletionResponse struct {
	// Content is the complete text of the reply.
	Content string

	// Usage contains token accounting for this request/response pair.
	Usage Usage
}

// Provider is the abstraction over any text-generation backend.
type Provider interface {
	// Complete sends req to the model and waits for the full response.
	// A timeout or non-success response fails the whole call; there are no
	// partial results.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Name identifies the backend for logging (e.g., "ollama", "openai").
	Name() string
}
