package label

import (
	"math/rand"

	"github.com/hushnote/hushnote/internal/transcript"
)

const (
	// positionalSampleCount is the number of quotes shown when a speaker is
	// first presented: first, middle and last utterance.
	positionalSampleCount = 3

	// randomSampleCount is the number of quotes drawn when the user asks for
	// more.
	randomSampleCount = 5
)

// PositionalSamples picks up to three representative quotes spread across the
// speaker's timeline: the first, the middle (count/2) and the last segment.
// With fewer than three segments all of them are returned in original order.
func PositionalSamples(segments []transcript.MergedSegment) []transcript.MergedSegment {
	if len(segments) == 0 {
		return nil
	}
	if len(segments) < positionalSampleCount {
		return segments
	}
	return []transcript.MergedSegment{
		segments[0],
		segments[len(segments)/2],
		segments[len(segments)-1],
	}
}

// RandomSamples draws up to n segments uniformly at random without
// replacement. Speakers with n or fewer segments get all of them.
func RandomSamples(segments []transcript.MergedSegment, n int, rng *rand.Rand) []transcript.MergedSegment {
	if len(segments) <= n {
		return segments
	}
	samples := make([]transcript.MergedSegment, 0, n)
	for _, i := range rng.Perm(len(segments))[:n] {
		samples = append(samples, segments[i])
	}
	return samples
}
