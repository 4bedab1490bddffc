package label_test

import (
	"math/rand"
	"testing"

	"github.com/hushnote/hushnote/internal/label"
	"github.com/hushnote/hushnote/internal/transcript"
)

func segs(n int) []transcript.MergedSegment {
	out := make([]transcript.MergedSegment, n)
	for i := range out {
		out[i] = transcript.MergedSegment{
			SpeakerID: "SPEAKER_00",
			Start:     float64(i),
			End:       float64(i + 1),
			Text:      "quote",
		}
	}
	return out
}

func TestPositionalSamples(t *testing.T) {
	t.Parallel()

	t.Run("first middle last", func(t *testing.T) {
		t.Parallel()
		got := label.PositionalSamples(segs(7))
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		wantStarts := []float64{0, 3, 6}
		for i, want := range wantStarts {
			if got[i].Start != want {
				t.Errorf("sample[%d].Start = %v, want %v", i, got[i].Start, want)
			}
		}
	})

	t.Run("fewer than three returns all in order", func(t *testing.T) {
		t.Parallel()
		got := label.PositionalSamples(segs(2))
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Start != 0 || got[1].Start != 1 {
			t.Errorf("samples out of order: %v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		if got := label.PositionalSamples(nil); got != nil {
			t.Errorf("PositionalSamples(nil) = %v, want nil", got)
		}
	})

	t.Run("exactly three", func(t *testing.T) {
		t.Parallel()
		got := label.PositionalSamples(segs(3))
		wantStarts := []float64{0, 1, 2}
		for i, want := range wantStarts {
			if got[i].Start != want {
				t.Errorf("sample[%d].Start = %v, want %v", i, got[i].Start, want)
			}
		}
	})
}

func TestRandomSamples(t *testing.T) {
	t.Parallel()

	t.Run("without replacement", func(t *testing.T) {
		t.Parallel()
		rng := rand.New(rand.NewSource(42))
		got := label.RandomSamples(segs(20), 5, rng)
		if len(got) != 5 {
			t.Fatalf("len = %d, want 5", len(got))
		}
		seen := make(map[float64]bool)
		for _, s := range got {
			if seen[s.Start] {
				t.Errorf("segment at %v drawn twice", s.Start)
			}
			seen[s.Start] = true
		}
	})

	t.Run("fewer segments than requested returns all", func(t *testing.T) {
		t.Parallel()
		rng := rand.New(rand.NewSource(42))
		got := label.RandomSamples(segs(3), 5, rng)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
	})
}
