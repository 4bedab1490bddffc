package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hushnote/hushnote/internal/config"
	"github.com/hushnote/hushnote/pkg/provider/llm"
	"github.com/hushnote/hushnote/pkg/provider/llm/mock"
)

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: debug
metrics_addr: ":9464"
llm:
  name: openai
  model: gpt-4o-mini
  api_key: sk-test
  timeout: 90s
directory:
  postgres_dsn: postgres://localhost:5432/hushnote
attendees:
  - name: Alice Chen
    email: alice@example.com
    role: engineer
  - name: Bob Park
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() unexpected error: %v", err)
	}
	if cfg.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.MetricsAddr != ":9464" {
		t.Errorf("MetricsAddr = %q, want :9464", cfg.MetricsAddr)
	}
	if cfg.LLM.Name != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM = %+v, want openai/gpt-4o-mini", cfg.LLM)
	}
	if cfg.LLM.Timeout.Std() != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.LLM.Timeout.Std())
	}
	if cfg.Directory.PostgresDSN == "" {
		t.Error("Directory.PostgresDSN should be set")
	}
	if len(cfg.Attendees) != 2 || cfg.Attendees[0].Email != "alice@example.com" {
		t.Errorf("Attendees = %+v", cfg.Attendees)
	}
}

func TestLoadFromReader_Fallbacks(t *testing.T) {
	t.Parallel()
	yaml := `
llm_fallbacks:
  - name: openai
    model: gpt-4o-mini
    api_key: sk-test
  - name: groq
    model: llama-3.1-70b-versatile
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() unexpected error: %v", err)
	}
	if len(cfg.LLMFallbacks) != 2 {
		t.Fatalf("LLMFallbacks has %d entries, want 2", len(cfg.LLMFallbacks))
	}
	if cfg.LLMFallbacks[0].Name != "openai" || cfg.LLMFallbacks[1].Name != "groq" {
		t.Errorf("LLMFallbacks = %+v", cfg.LLMFallbacks)
	}
}

func TestValidate_FallbackNameRequired(t *testing.T) {
	t.Parallel()
	yaml := `
llm_fallbacks:
  - model: gpt-4o-mini
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for fallback without name, got nil")
	}
	if !strings.Contains(err.Error(), "llm_fallbacks[0].name") {
		t.Errorf("error should name the fallback entry, got: %v", err)
	}
}

func TestLoadFromReader_DefaultsPreserved(t *testing.T) {
	t.Parallel()
	// A file that only overrides the log level keeps provider defaults.
	cfg, err := config.LoadFromReader(strings.NewReader("log_level: warn\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() unexpected error: %v", err)
	}
	if cfg.LLM.Name != "ollama" {
		t.Errorf("LLM.Name = %q, want default 'ollama'", cfg.LLM.Name)
	}
	if cfg.LLM.Timeout.Std() != 5*time.Minute {
		t.Errorf("Timeout = %v, want default 5m", cfg.LLM.Timeout.Std())
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("log_leven: debug\n"))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadFromReader_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("log_level: loud\n"))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestLoadFromReader_InvalidDuration(t *testing.T) {
	t.Parallel()
	yaml := `
llm:
  timeout: five minutes
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid duration, got nil")
	}
}

func TestValidate_DuplicateAttendees(t *testing.T) {
	t.Parallel()
	yaml := `
attendees:
  - name: Alice Chen
  - name: Alice Chen
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for duplicate attendees, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
}

func TestValidate_AttendeeNameRequired(t *testing.T) {
	t.Parallel()
	yaml := `
attendees:
  - email: nobody@example.com
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for attendee without name, got nil")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("error should mention required name, got: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if cfg.LLM.Name != "ollama" {
		t.Errorf("LLM.Name = %q, want default 'ollama'", cfg.LLM.Name)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hushnote.yaml")
	if err := os.WriteFile(path, []byte("log_level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != config.LogError {
		t.Errorf("LogLevel = %q, want error", cfg.LogLevel)
	}
}

func TestRegistry_CreateLLM(t *testing.T) {
	t.Parallel()

	reg := config.NewRegistry()
	reg.RegisterLLM("mock", func(entry config.ProviderEntry) (llm.Provider, error) {
		return &mock.Provider{ProviderName: entry.Name}, nil
	})

	p, err := reg.CreateLLM(config.ProviderEntry{Name: "mock"})
	if err != nil {
		t.Fatalf("CreateLLM() unexpected error: %v", err)
	}
	if p.Name() != "mock" {
		t.Errorf("Name() = %q, want 'mock'", p.Name())
	}

	_, err = reg.CreateLLM(config.ProviderEntry{Name: "unregistered"})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Errorf("CreateLLM() error = %v, want ErrProviderNotRegistered", err)
	}
}

func TestLogLevel_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   config.LogLevel
		want string
	}{
		{config.LogDebug, "DEBUG"},
		{config.LogInfo, "INFO"},
		{config.LogWarn, "WARN"},
		{config.LogError, "ERROR"},
		{config.LogLevel(""), "INFO"},
	}
	for _, tt := range tests {
		if got := tt.in.Level().String(); got != tt.want {
			t.Errorf("Level(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
