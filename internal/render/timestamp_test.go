package render_test

import (
	"testing"

	"github.com/hushnote/hushnote/internal/render"
)

func TestTimestamps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		seconds float64
		srt     string
		vtt     string
	}{
		{0, "00:00:00,000", "00:00:00.000"},
		{3725.25, "01:02:05,250", "01:02:05.250"},
		{59.5, "00:00:59,500", "00:00:59.500"},
		{60, "00:01:00,000", "00:01:00.000"},
		{3599.75, "00:59:59,750", "00:59:59.750"},
		{7322.125, "02:02:02,125", "02:02:02.125"},
	}
	for _, tc := range cases {
		if got := render.SRTTimestamp(tc.seconds); got != tc.srt {
			t.Errorf("SRTTimestamp(%v) = %q, want %q", tc.seconds, got, tc.srt)
		}
		if got := render.VTTTimestamp(tc.seconds); got != tc.vtt {
			t.Errorf("VTTTimestamp(%v) = %q, want %q", tc.seconds, got, tc.vtt)
		}
	}
}
