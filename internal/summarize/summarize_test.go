package summarize_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hushnote/hushnote/internal/summarize"
	"github.com/hushnote/hushnote/internal/transcript"
	"github.com/hushnote/hushnote/pkg/provider/llm"
	"github.com/hushnote/hushnote/pkg/provider/llm/mock"
)

const transcriptText = "[Alice] We ship on Friday.\n[Bob] I'll update the changelog."

func TestSummarizer_Summary(t *testing.T) {
	t.Parallel()

	p := &mock.Provider{
		CompleteResponses: []*llm.CompletionResponse{
			{Content: "## Overview\nShipping Friday."},
		},
	}
	s := summarize.New(p)

	result, err := s.Summarize(context.Background(), transcriptText)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if !strings.Contains(result.Summary, "Shipping Friday") {
		t.Errorf("Summary = %q, want provider content", result.Summary)
	}
	if result.ActionItems != "" {
		t.Errorf("ActionItems = %q, want empty without WithActionItems", result.ActionItems)
	}

	if len(p.CompleteCalls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(p.CompleteCalls))
	}
	prompt := p.CompleteCalls[0].Req.Messages[0].Content
	if !strings.Contains(prompt, transcriptText) {
		t.Errorf("prompt should embed the transcript text, got: %q", prompt)
	}
}

func TestSummarizer_WithActionItems(t *testing.T) {
	t.Parallel()

	p := &mock.Provider{
		CompleteResponses: []*llm.CompletionResponse{
			{Content: "generated notes"},
		},
	}
	s := summarize.New(p, summarize.WithActionItems())

	result, err := s.Summarize(context.Background(), transcriptText)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if result.Summary == "" {
		t.Error("Summary should be set")
	}
	if result.ActionItems == "" {
		t.Error("ActionItems should be set")
	}
	if len(p.CompleteCalls) != 2 {
		t.Errorf("provider calls = %d, want 2 (summary + action items)", len(p.CompleteCalls))
	}
}

func TestSummarizer_EmptyTextFails(t *testing.T) {
	t.Parallel()

	s := summarize.New(&mock.Provider{})
	_, err := s.Summarize(context.Background(), "   \n ")
	if !errors.Is(err, transcript.ErrMalformedInput) {
		t.Fatalf("Summarize() error = %v, want ErrMalformedInput", err)
	}
}

func TestSummarizer_ProviderErrorIsUpstreamFailure(t *testing.T) {
	t.Parallel()

	p := &mock.Provider{Err: errors.New("model not loaded")}
	s := summarize.New(p)

	_, err := s.Summarize(context.Background(), transcriptText)
	if !errors.Is(err, transcript.ErrUpstreamFailure) {
		t.Fatalf("Summarize() error = %v, want ErrUpstreamFailure", err)
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("error should carry the provider message, got: %v", err)
	}
}

func TestSummarizer_EmptyResponseIsUpstreamFailure(t *testing.T) {
	t.Parallel()

	p := &mock.Provider{
		CompleteResponses: []*llm.CompletionResponse{{Content: "  "}},
	}
	s := summarize.New(p)

	_, err := s.Summarize(context.Background(), transcriptText)
	if !errors.Is(err, transcript.ErrUpstreamFailure) {
		t.Fatalf("Summarize() error = %v, want ErrUpstreamFailure", err)
	}
}

func TestResult_Markdown(t *testing.T) {
	t.Parallel()

	t.Run("summary only", func(t *testing.T) {
		t.Parallel()
		r := &summarize.Result{Summary: "The team met.\n"}
		got := r.Markdown()
		want := "# Meeting Summary\n\nThe team met.\n"
		if got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})

	t.Run("with action items", func(t *testing.T) {
		t.Parallel()
		r := &summarize.Result{Summary: "The team met.", ActionItems: "- [ ] Ship it"}
		got := r.Markdown()
		if !strings.Contains(got, "## Action Items") {
			t.Errorf("Markdown() missing action items heading: %q", got)
		}
		if !strings.HasSuffix(got, "- [ ] Ship it\n") {
			t.Errorf("Markdown() = %q, want trailing checklist", got)
		}
	})
}
