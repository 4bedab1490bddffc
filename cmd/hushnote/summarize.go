package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/hushnote/hushnote/internal/config"
	"github.com/hushnote/hushnote/internal/render"
	"github.com/hushnote/hushnote/internal/resilience"
	"github.com/hushnote/hushnote/internal/summarize"
	"github.com/hushnote/hushnote/internal/transcript"
	"github.com/hushnote/hushnote/pkg/provider/llm"
	"github.com/hushnote/hushnote/pkg/provider/llm/anyllm"
	"github.com/hushnote/hushnote/pkg/provider/llm/openai"
)

// runSummarize implements "hushnote summarize <transcript.txt|.json>".
func runSummarize(ctx context.Context, cfg *config.Config, args []string) error {
	flags := flag.NewFlagSet("summarize", flag.ContinueOnError)
	output := flags.String("o", "", "output file (default: <input>_summary.md)")
	actions := flags.Bool("actions", false, "also extract an action-item checklist")
	if err := requireArgs(flags, args, 1, "summarize [-o out.md] [-actions] <transcript.txt|.json>"); err != nil {
		return err
	}
	inputPath := flags.Arg(0)

	text, err := loadTranscriptText(inputPath)
	if err != nil {
		return err
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	slog.Info("generating meeting notes", "provider", provider.Name(), "model", cfg.LLM.Model)

	opts := []summarize.Option{}
	if cfg.LLM.Timeout > 0 {
		opts = append(opts, summarize.WithTimeout(cfg.LLM.Timeout.Std()))
	}
	if *actions {
		opts = append(opts, summarize.WithActionItems())
	}

	result, err := summarize.New(provider, opts...).Summarize(ctx, text)
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		outPath = transcript.SummaryOutputPath(inputPath)
	}
	if err := transcript.WriteFileAtomic(outPath, []byte(result.Markdown())); err != nil {
		return err
	}

	slog.Info("saved meeting notes", "output", outPath)
	return nil
}

// loadTranscriptText accepts either a rendered transcript or a labeled JSON
// document; documents are rendered to txt in-process first.
func loadTranscriptText(path string) (string, error) {
	if strings.HasSuffix(path, ".json") {
		doc, err := transcript.LoadDocument(path)
		if err != nil {
			return "", err
		}
		return render.Render(doc, render.FormatTxt)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("summarize: %s: %w", path, transcript.ErrNotFound)
		}
		return "", fmt.Errorf("summarize: read %s: %w", path, err)
	}
	return string(data), nil
}

// buildProvider wires the configured provider through the registry: "openai"
// uses the direct client, every other known name goes through the any-llm
// multiplexer. When llm_fallbacks are configured the primary is wrapped in a
// fallback chain tried in configuration order.
func buildProvider(cfg *config.Config) (llm.Provider, error) {
	reg := config.NewRegistry()
	registerBuiltinProviders(reg)
	primary, err := reg.CreateLLM(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm provider %q: %w", cfg.LLM.Name, err)
	}
	if len(cfg.LLMFallbacks) == 0 {
		return primary, nil
	}

	chain := resilience.NewLLMFallback(primary)
	for _, entry := range cfg.LLMFallbacks {
		fb, err := reg.CreateLLM(entry)
		if err != nil {
			return nil, fmt.Errorf("create fallback provider %q: %w", entry.Name, err)
		}
		chain.AddFallback(fb)
	}
	return chain, nil
}

// registerBuiltinProviders wires all built-in provider factories into reg.
func registerBuiltinProviders(reg *config.Registry) {
	reg.RegisterLLM("openai", func(entry config.ProviderEntry) (llm.Provider, error) {
		var opts []openai.Option
		if entry.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(entry.BaseURL))
		}
		if entry.Timeout > 0 {
			opts = append(opts, openai.WithTimeout(entry.Timeout.Std()))
		}
		return openai.New(entry.APIKey, entry.Model, opts...)
	})

	// The remaining backends share the same pattern: optional APIKey +
	// optional BaseURL through the any-llm multiplexer.
	for _, providerName := range []string{
		"ollama", "anthropic", "gemini", "groq",
		"mistral", "deepseek", "llamacpp", "llamafile",
	} {
		reg.RegisterLLM(providerName, func(entry config.ProviderEntry) (llm.Provider, error) {
			var opts []anyllmlib.Option
			if entry.APIKey != "" {
				opts = append(opts, anyllmlib.WithAPIKey(entry.APIKey))
			}
			if entry.BaseURL != "" {
				opts = append(opts, anyllmlib.WithBaseURL(entry.BaseURL))
			}
			return anyllm.New(providerName, entry.Model, opts...)
		})
	}
}
