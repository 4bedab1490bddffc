// Package transcript defines the speaker-attributed transcript document that
// every pipeline stage reads and writes, and the merge engine that produces
// it from a diarization timeline and a transcription timeline.
//
// The persisted form is a self-describing JSON document so each stage can run
// independently and the pipeline is resumable at any point. No stage holds a
// live reference into another stage's state: a stage loads a full document
// and saves a full document.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Version is the document schema version written by this build.
const Version = "1.0"

// UnknownSpeaker is the sentinel speaker identifier assigned when the
// diarization timeline offers no interval to attribute a segment to.
const UnknownSpeaker = "UNKNOWN"

// SpeakerInterval is one turn in the diarization timeline: an opaque speaker
// identifier and the interval during which that speaker was talking.
// Intervals may overlap and need not be sorted; both are tolerated.
type SpeakerInterval struct {
	SpeakerID string  `json:"speaker_id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// TextSegment is one utterance unit in the transcription timeline.
type TextSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// MergedSegment is a text segment with exactly one owning speaker. Segments
// keep the order of the transcription timeline they were merged from.
type MergedSegment struct {
	SpeakerID string  `json:"speaker_id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Text      string  `json:"text"`
}

// SpeakerStats aggregates per-speaker talk time over merged segments. It is
// derived data: recomputable from the segments at any time, never hand-edited.
type SpeakerStats struct {
	// TotalTime is the sum of (end - start) over the speaker's segments, in
	// seconds. Overlapping talk time is counted once per speaker, not
	// de-duplicated across speakers.
	TotalTime float64 `json:"total_time"`

	// SegmentCount is the number of merged segments owned by the speaker.
	SegmentCount int `json:"segment_count"`

	// WordCount is the sum of whitespace-delimited tokens across the
	// speaker's segments.
	WordCount int `json:"word_count"`
}

// LabelSource records how a speaker label came to be.
type LabelSource string

const (
	// LabelManual means a human typed the name during the labeling workflow.
	LabelManual LabelSource = "manual"

	// LabelSkipped means the human explicitly declined to name the speaker;
	// the raw speaker identifier is used as the display name.
	LabelSkipped LabelSource = "skipped"

	// LabelDirectory means the name was canonicalized against the shared
	// speaker directory.
	LabelDirectory LabelSource = "directory"
)

// LabelEntry maps an anonymous speaker identifier to a display name. Once
// set, an entry is stable until explicitly overwritten.
type LabelEntry struct {
	Name      string      `json:"name"`
	Email     string      `json:"email,omitempty"`
	Role      string      `json:"role,omitempty"`
	Source    LabelSource `json:"source"`
	LabeledAt time.Time   `json:"labeled_at"`
}

// Diarization is the speaker-turn timeline document, as produced by an
// external diarization model.
type Diarization struct {
	Version          string            `json:"version,omitempty"`
	AudioFile        string            `json:"audio_file,omitempty"`
	AudioPath        string            `json:"audio_path,omitempty"`
	Duration         float64           `json:"duration,omitempty"`
	DiarizationModel string            `json:"diarization_model,omitempty"`
	NumSpeakers      int               `json:"num_speakers,omitempty"`
	Segments         []SpeakerInterval `json:"segments"`
}

// Transcription is the text timeline document, as produced by an external
// speech-to-text model.
type Transcription struct {
	Version            string        `json:"version,omitempty"`
	Duration           float64       `json:"duration,omitempty"`
	Language           string        `json:"language,omitempty"`
	TranscriptionModel string        `json:"transcription_model,omitempty"`
	Segments           []TextSegment `json:"segments"`
}

// Document is the top-level persisted unit threaded through every pipeline
// stage: merged segments, derived speaker statistics, and the label mapping.
type Document struct {
	Version            string                  `json:"version"`
	AudioFile          string                  `json:"audio_file,omitempty"`
	AudioPath          string                  `json:"audio_path,omitempty"`
	Duration           float64                 `json:"duration,omitempty"`
	Language           string                  `json:"language,omitempty"`
	DiarizationModel   string                  `json:"diarization_model,omitempty"`
	TranscriptionModel string                  `json:"transcription_model,omitempty"`
	NumSpeakers        int                     `json:"num_speakers"`
	CreatedAt          time.Time               `json:"created_at"`
	Segments           []MergedSegment         `json:"segments"`
	SpeakerStats       map[string]SpeakerStats `json:"speaker_stats"`
	Labels             map[string]LabelEntry   `json:"labels"`
	Source             string                  `json:"source"`
}

// Validate reports whether doc is structurally usable by downstream stages.
// A document whose segments carry no text at all was not produced by the
// merge stage and is rejected.
func (d *Document) Validate() error {
	if len(d.Segments) == 0 {
		return fmt.Errorf("transcript: document has no segments: %w", ErrMalformedInput)
	}
	for _, seg := range d.Segments {
		if trimmed(seg.Text) != "" {
			return nil
		}
	}
	return fmt.Errorf("transcript: no segment has any text: %w", ErrMalformedInput)
}

// SpeakerIDs returns the distinct speaker identifiers across all segments in
// ascending lexical order. The ordering is deterministic so reruns of the
// labeling workflow visit speakers in the same sequence.
func (d *Document) SpeakerIDs() []string {
	seen := make(map[string]struct{})
	for _, seg := range d.Segments {
		seen[seg.SpeakerID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SpeakerSegments returns the speaker's merged segments whose trimmed text is
// non-empty, in document order.
func (d *Document) SpeakerSegments(speakerID string) []MergedSegment {
	var segs []MergedSegment
	for _, seg := range d.Segments {
		if seg.SpeakerID == speakerID && trimmed(seg.Text) != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// LoadDocument reads and validates a transcript document from path.
func LoadDocument(path string) (*Document, error) {
	doc := &Document{}
	if err := loadJSON(path, doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDiarization reads a speaker-turn timeline document from path.
func LoadDiarization(path string) (*Diarization, error) {
	d := &Diarization{}
	if err := loadJSON(path, d); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadTranscription reads a text timeline document from path.
func LoadTranscription(path string) (*Transcription, error) {
	t := &Transcription{}
	if err := loadJSON(path, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Save writes the document to path as indented JSON. The write is atomic:
// the document is written to a temporary file in the destination directory
// and renamed into place, so an interrupted stage never leaves a truncated
// document behind.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("transcript: marshal document: %w", err)
	}
	return WriteFileAtomic(path, append(data, '\n'))
}

// loadJSON reads path into v, mapping missing files to [ErrNotFound] and
// unparseable content to [ErrMalformedInput].
func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("transcript: %s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("transcript: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("transcript: parse %s: %v: %w", path, err, ErrMalformedInput)
	}
	return nil
}

// WriteFileAtomic writes data to path via a temp file + rename in the same
// directory. Rendered artifacts use it too, so no stage can leave a partial
// output file on failure.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("transcript: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("transcript: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("transcript: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("transcript: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("transcript: rename to %s: %w", path, err)
	}
	return nil
}
