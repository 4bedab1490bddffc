package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists the known LLM provider names. Used by [Validate]
// to warn about unrecognised names without rejecting third-party ones.
var ValidProviderNames = []string{
	"ollama", "openai", "anthropic", "gemini", "groq",
	"mistral", "deepseek", "llamacpp", "llamafile",
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. A missing file is not an error: the defaults are returned, so
// hushnote runs without any configuration at all.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, fills defaults for unset
// fields, and validates the result. Useful in tests where configs are
// constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.LLM.Name != "" && !slices.Contains(ValidProviderNames, cfg.LLM.Name) {
		slog.Warn("unknown provider name, may be a typo or a third-party provider",
			"name", cfg.LLM.Name,
			"known", ValidProviderNames,
		)
	}
	if cfg.LLM.Timeout < 0 {
		errs = append(errs, fmt.Errorf("llm.timeout %v must not be negative", cfg.LLM.Timeout.Std()))
	}

	for i, fb := range cfg.LLMFallbacks {
		prefix := fmt.Sprintf("llm_fallbacks[%d]", i)
		if fb.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if !slices.Contains(ValidProviderNames, fb.Name) {
			slog.Warn("unknown provider name, may be a typo or a third-party provider",
				"name", fb.Name,
				"known", ValidProviderNames,
			)
		}
		if fb.Timeout < 0 {
			errs = append(errs, fmt.Errorf("%s.timeout %v must not be negative", prefix, fb.Timeout.Std()))
		}
	}

	seen := make(map[string]int, len(cfg.Attendees))
	for i, a := range cfg.Attendees {
		prefix := fmt.Sprintf("attendees[%d]", i)
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		if prev, ok := seen[a.Name]; ok {
			errs = append(errs, fmt.Errorf("%s.name %q is a duplicate of attendees[%d]", prefix, a.Name, prev))
		}
		seen[a.Name] = i
	}

	return errors.Join(errs...)
}
