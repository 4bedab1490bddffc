// Package render serializes a labeled transcript document into the final
// transcript formats: plain text, markdown, JSON, SRT, and WebVTT.
//
// All formats share the same preprocessing: each segment's display name is
// resolved through the label mapping, and segments whose trimmed text is
// empty are dropped so they never produce empty blocks, numbered cues, or
// timestamp pairs.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hushnote/hushnote/internal/transcript"
)

// Format identifies a render target.
type Format string

const (
	FormatTxt  Format = "txt"
	FormatMd   Format = "md"
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// Formats lists all supported render targets in CLI display order.
var Formats = []Format{FormatTxt, FormatMd, FormatJSON, FormatSRT, FormatVTT}

// ParseFormat validates a format tag from the CLI.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("render: format %q (valid: txt, md, json, srt, vtt): %w", s, transcript.ErrUnsupportedFormat)
}

// Resolve returns the display name for a speaker identifier: the labeled
// name when present, otherwise the identifier unchanged. It never fails and
// has no side effects on the label mapping.
func Resolve(speakerID string, labels map[string]transcript.LabelEntry) string {
	if entry, ok := labels[speakerID]; ok && entry.Name != "" {
		return entry.Name
	}
	return speakerID
}

// Render serializes doc into the given format and returns the complete
// artifact as a string. Rendering never mutates doc, so rendering the same
// document twice produces byte-identical output.
func Render(doc *transcript.Document, format Format) (string, error) {
	segs, err := surviving(doc)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatTxt, FormatMd:
		return renderGrouped(segs, format), nil
	case FormatJSON:
		return renderJSON(doc, segs)
	case FormatSRT:
		return renderSRT(segs), nil
	case FormatVTT:
		return renderVTT(segs), nil
	default:
		return "", fmt.Errorf("render: format %q: %w", format, transcript.ErrUnsupportedFormat)
	}
}

// segment is a merged segment after shared preprocessing: resolved display
// name attached, text trimmed, empty segments already dropped.
type segment struct {
	Name      string
	SpeakerID string
	Start     float64
	End       float64
	Text      string
}

// surviving applies the shared preprocessing to doc's segments. Negative
// timestamps are a contract violation upstream; fail rather than render
// garbage cues.
func surviving(doc *transcript.Document) ([]segment, error) {
	var segs []segment
	for i, seg := range doc.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if seg.Start < 0 || seg.End < 0 {
			return nil, fmt.Errorf("render: segment %d has a negative timestamp (%v, %v): %w",
				i, seg.Start, seg.End, transcript.ErrMalformedInput)
		}
		segs = append(segs, segment{
			Name:      Resolve(seg.SpeakerID, doc.Labels),
			SpeakerID: seg.SpeakerID,
			Start:     seg.Start,
			End:       seg.End,
			Text:      text,
		})
	}
	return segs, nil
}

// renderGrouped produces the txt and md formats. Consecutive segments with
// the same resolved display name collapse into one attributed block; a new
// block starts only when the name changes.
func renderGrouped(segs []segment, format Format) string {
	var blocks []string
	currentName := ""
	var block strings.Builder

	flush := func() {
		if block.Len() > 0 {
			blocks = append(blocks, block.String())
			block.Reset()
		}
	}

	for _, seg := range segs {
		if seg.Name != currentName {
			flush()
			if format == FormatMd {
				fmt.Fprintf(&block, "**%s**: %s", seg.Name, seg.Text)
			} else {
				fmt.Fprintf(&block, "[%s] %s", seg.Name, seg.Text)
			}
			currentName = seg.Name
			continue
		}
		block.WriteString(" ")
		block.WriteString(seg.Text)
	}
	flush()

	return strings.TrimSpace(strings.Join(blocks, "\n"))
}

// jsonSegment retains the resolved name and the raw identifier side by side
// so the JSON rendering is lossless.
type jsonSegment struct {
	Speaker   string  `json:"speaker"`
	SpeakerID string  `json:"speaker_id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Text      string  `json:"text"`
}

type jsonDocument struct {
	AudioFile   string                           `json:"audio_file,omitempty"`
	Duration    float64                          `json:"duration,omitempty"`
	Language    string                           `json:"language,omitempty"`
	NumSpeakers int                              `json:"num_speakers"`
	Segments    []jsonSegment                    `json:"segments"`
	Labels      map[string]transcript.LabelEntry `json:"labels"`
}

func renderJSON(doc *transcript.Document, segs []segment) (string, error) {
	out := jsonDocument{
		AudioFile:   doc.AudioFile,
		Duration:    doc.Duration,
		Language:    doc.Language,
		NumSpeakers: doc.NumSpeakers,
		Segments:    make([]jsonSegment, 0, len(segs)),
		Labels:      doc.Labels,
	}
	if out.Labels == nil {
		out.Labels = map[string]transcript.LabelEntry{}
	}
	for _, seg := range segs {
		out.Segments = append(out.Segments, jsonSegment{
			Speaker:   seg.Name,
			SpeakerID: seg.SpeakerID,
			Start:     seg.Start,
			End:       seg.End,
			Text:      seg.Text,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render: marshal json: %w", err)
	}
	return string(data), nil
}

// renderSRT numbers cues 1-based over the surviving segments only, so a
// blank-text segment sandwiched between real ones never leaves a numbering
// gap or an empty cue.
func renderSRT(segs []segment) string {
	var b strings.Builder
	for i, seg := range segs {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", SRTTimestamp(seg.Start), SRTTimestamp(seg.End))
		fmt.Fprintf(&b, "[%s] %s\n\n", seg.Name, seg.Text)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderVTT(segs []segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, seg := range segs {
		fmt.Fprintf(&b, "%s --> %s\n", VTTTimestamp(seg.Start), VTTTimestamp(seg.End))
		fmt.Fprintf(&b, "[%s] %s\n\n", seg.Name, seg.Text)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
