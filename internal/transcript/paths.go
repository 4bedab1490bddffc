package transcript

import (
	"path/filepath"
	"strings"
)

// Default output-path derivation for each pipeline stage. These are pure
// path transforms with no filesystem access; the CLI applies them only when
// the user did not pass an explicit -o flag.

// MergeOutputPath derives the merged-document path from the transcription
// input path: "talk.json" becomes "talk_diarized.json" in the same directory.
func MergeOutputPath(transcriptionPath string) string {
	dir := filepath.Dir(transcriptionPath)
	stem := stem(transcriptionPath)
	return filepath.Join(dir, stem+"_diarized.json")
}

// LabelOutputPath derives the labeled-document path from the merged-document
// path: "talk_diarized.json" becomes "talk_speakers_labeled.json"; inputs
// without the "_diarized" suffix get "_labeled" appended instead.
func LabelOutputPath(mergedPath string) string {
	dir := filepath.Dir(mergedPath)
	s := stem(mergedPath)
	if base, ok := strings.CutSuffix(s, "_diarized"); ok {
		return filepath.Join(dir, base+"_speakers_labeled.json")
	}
	return filepath.Join(dir, s+"_labeled.json")
}

// RenderOutputPath derives the rendered-transcript path from the labeled
// document's location, its audio file name, and the render format:
// the transcript lands beside the labeled document as "<audio stem>.<format>".
// When the document carries no audio file name, "transcript" is used.
func RenderOutputPath(labeledPath, audioFile, format string) string {
	dir := filepath.Dir(labeledPath)
	base := "transcript"
	if audioFile != "" {
		base = stem(audioFile)
	}
	return filepath.Join(dir, base+"."+format)
}

// SummaryOutputPath derives the summary path from the transcript input path:
// "meeting.txt" becomes "meeting_summary.md".
func SummaryOutputPath(transcriptPath string) string {
	dir := filepath.Dir(transcriptPath)
	return filepath.Join(dir, stem(transcriptPath)+"_summary.md")
}

// stem returns the base name of path without its final extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
