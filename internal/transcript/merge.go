package transcript

import (
	"fmt"
	"strings"
	"time"
)

// Merge fuses a diarization timeline with a transcription timeline into a
// single speaker-attributed document.
//
// Each text segment is assigned exactly one speaker by [SpeakerAt], using
// only the segment's start timestamp. The output segment sequence has the
// same length and order as the transcription input; temporal order is
// inherited, not recomputed.
//
// Both inputs must carry at least one segment, otherwise Merge fails with
// [ErrMalformedInput]. Overlapping or out-of-order speaker intervals are
// tolerated.
func Merge(diar *Diarization, trans *Transcription) (*Document, error) {
	if len(diar.Segments) == 0 {
		return nil, fmt.Errorf("transcript: diarization has no speaker segments: %w", ErrMalformedInput)
	}
	if len(trans.Segments) == 0 {
		return nil, fmt.Errorf("transcript: transcription has no text segments: %w", ErrMalformedInput)
	}
	for i, iv := range diar.Segments {
		if iv.SpeakerID == "" {
			return nil, fmt.Errorf("transcript: diarization segment %d is missing a speaker_id: %w", i, ErrMalformedInput)
		}
	}

	merged := make([]MergedSegment, 0, len(trans.Segments))
	for _, seg := range trans.Segments {
		merged = append(merged, MergedSegment{
			SpeakerID: SpeakerAt(seg.Start, diar.Segments),
			Start:     seg.Start,
			End:       seg.End,
			Text:      seg.Text,
		})
	}

	duration := trans.Duration
	if duration == 0 {
		duration = diar.Duration
	}
	transcriptionModel := trans.TranscriptionModel
	if transcriptionModel == "" {
		transcriptionModel = "faster-whisper"
	}

	doc := &Document{
		Version:            Version,
		AudioFile:          diar.AudioFile,
		AudioPath:          diar.AudioPath,
		Duration:           duration,
		Language:           trans.Language,
		DiarizationModel:   diar.DiarizationModel,
		TranscriptionModel: transcriptionModel,
		CreatedAt:          time.Now().UTC(),
		Segments:           merged,
		Labels:             map[string]LabelEntry{},
		Source:             "merged",
	}
	doc.RecomputeStats()
	return doc, nil
}

// SpeakerAt resolves which speaker owns the given timestamp.
//
// Containment wins: the first interval (in input order) that contains the
// timestamp is chosen, so overlapping intervals are resolved by encounter
// order rather than treated as an error. When no interval contains the
// timestamp, the interval with the smallest boundary distance is chosen,
// ties broken by first encounter. An empty interval collection yields
// [UnknownSpeaker].
//
// The fallback is a nearest-neighbour heuristic, not a classifier: it never
// consults the segment's end time and never splits one text segment across
// speakers.
func SpeakerAt(timestamp float64, intervals []SpeakerInterval) string {
	for _, iv := range intervals {
		if iv.Start <= timestamp && timestamp <= iv.End {
			return iv.SpeakerID
		}
	}

	closest := UnknownSpeaker
	minDistance := -1.0
	for _, iv := range intervals {
		var distance float64
		switch {
		case timestamp < iv.Start:
			distance = iv.Start - timestamp
		case timestamp > iv.End:
			distance = timestamp - iv.End
		}
		// Strict less-than keeps the first-encountered interval on ties.
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
			closest = iv.SpeakerID
		}
	}
	return closest
}

// RecomputeStats rebuilds SpeakerStats and NumSpeakers from the segments.
// Any previously stored stats are discarded.
func (d *Document) RecomputeStats() {
	stats := make(map[string]SpeakerStats)
	for _, seg := range d.Segments {
		s := stats[seg.SpeakerID]
		s.TotalTime += seg.End - seg.Start
		s.SegmentCount++
		s.WordCount += len(strings.Fields(seg.Text))
		stats[seg.SpeakerID] = s
	}
	d.SpeakerStats = stats
	d.NumSpeakers = len(stats)
}

func trimmed(s string) string { return strings.TrimSpace(s) }
