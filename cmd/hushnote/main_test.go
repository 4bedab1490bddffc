package main

import "testing"

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"transmogrify"}},
		{"merge missing args", []string{"merge"}},
		{"label missing args", []string{"label"}},
		{"render missing args", []string{"render"}},
		{"summarize missing args", []string{"summarize"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != 2 {
				t.Errorf("run(%v) = %d, want exit code 2", tt.args, got)
			}
		})
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	if got := run([]string{"render", "does-not-exist.json"}); got != 1 {
		t.Errorf("run(render missing file) = %d, want exit code 1", got)
	}
}

func TestRun_UnsupportedFormat(t *testing.T) {
	if got := run([]string{"render", "-f", "pdf", "whatever.json"}); got != 2 {
		t.Errorf("run(render -f pdf) = %d, want exit code 2", got)
	}
}
