// Package summarize generates meeting notes and action items from a rendered
// transcript by calling a text-generation provider.
//
// The provider is an external collaborator: it receives a prompt string and
// returns a single generated string within a bounded timeout. A timeout or
// non-success response fails the whole operation; there are no partial
// results.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hushnote/hushnote/internal/observe"
	"github.com/hushnote/hushnote/internal/transcript"
	"github.com/hushnote/hushnote/pkg/provider/llm"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 5 * time.Minute

// Result holds the generated meeting notes.
type Result struct {
	// Summary is the markdown meeting summary.
	Summary string

	// ActionItems is the markdown action-item checklist. Empty unless action
	// items were requested.
	ActionItems string
}

// Option is a functional option for [Summarizer].
type Option func(*Summarizer)

// WithTimeout overrides the per-operation timeout. Default: [DefaultTimeout].
func WithTimeout(d time.Duration) Option {
	return func(s *Summarizer) {
		s.timeout = d
	}
}

// WithActionItems requests a separate action-item extraction pass in
// addition to the summary.
func WithActionItems() Option {
	return func(s *Summarizer) {
		s.actionItems = true
	}
}

// Summarizer generates meeting notes from transcript text through an
// [llm.Provider].
type Summarizer struct {
	provider    llm.Provider
	timeout     time.Duration
	actionItems bool
}

// New returns a Summarizer backed by the given provider.
func New(provider llm.Provider, opts ...Option) *Summarizer {
	s := &Summarizer{
		provider: provider,
		timeout:  DefaultTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Summarize generates the meeting summary (and, when configured, the
// action-item checklist) for the given transcript text. The two generations
// are independent prompts and run concurrently; if either fails the whole
// operation fails with [transcript.ErrUpstreamFailure].
func (s *Summarizer) Summarize(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("summarize: transcript text is empty: %w", transcript.ErrMalformedInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := &Result{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := s.generate(gctx, fmt.Sprintf(summaryPrompt, text))
		if err != nil {
			return fmt.Errorf("summarize: summary: %w", err)
		}
		result.Summary = out
		return nil
	})

	if s.actionItems {
		g.Go(func() error {
			out, err := s.generate(gctx, fmt.Sprintf(actionItemsPrompt, text))
			if err != nil {
				return fmt.Errorf("summarize: action items: %w", err)
			}
			result.ActionItems = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// generate issues one completion request and times it.
func (s *Summarizer) generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: prompt}},
	})
	elapsed := time.Since(start)

	obs := observe.Default()
	obs.RecordLLMCall(ctx, s.provider.Name(), elapsed, err)

	if err != nil {
		return "", fmt.Errorf("provider %s: %v: %w", s.provider.Name(), err, transcript.ErrUpstreamFailure)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("provider %s returned an empty response: %w", s.provider.Name(), transcript.ErrUpstreamFailure)
	}

	slog.Debug("generation finished",
		"provider", s.provider.Name(),
		"elapsed", elapsed.Truncate(time.Millisecond),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return resp.Content, nil
}

// Markdown renders the result as a single markdown document: the summary,
// then the action items under their own heading when present.
func (r *Result) Markdown() string {
	var b strings.Builder
	b.WriteString("# Meeting Summary\n\n")
	b.WriteString(strings.TrimSpace(r.Summary))
	b.WriteString("\n")
	if strings.TrimSpace(r.ActionItems) != "" {
		b.WriteString("\n## Action Items\n\n")
		b.WriteString(strings.TrimSpace(r.ActionItems))
		b.WriteString("\n")
	}
	return b.String()
}
