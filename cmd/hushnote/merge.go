package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/hushnote/hushnote/internal/observe"
	"github.com/hushnote/hushnote/internal/transcript"
)

// runMerge implements "hushnote merge <speakers.json> <transcription.json>".
func runMerge(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	output := fs.String("o", "", "output file (default: <transcription>_diarized.json)")
	if err := requireArgs(fs, args, 2, "merge [-o out.json] <speakers.json> <transcription.json>"); err != nil {
		return err
	}
	speakersPath, transcriptionPath := fs.Arg(0), fs.Arg(1)

	diar, err := transcript.LoadDiarization(speakersPath)
	if err != nil {
		return err
	}
	trans, err := transcript.LoadTranscription(transcriptionPath)
	if err != nil {
		return err
	}

	start := time.Now()
	doc, err := transcript.Merge(diar, trans)
	if err != nil {
		return err
	}
	observe.Default().RecordMerge(ctx, len(doc.Segments), time.Since(start))

	outPath := *output
	if outPath == "" {
		outPath = transcript.MergeOutputPath(transcriptionPath)
	}
	if err := doc.Save(outPath); err != nil {
		return err
	}

	slog.Info("merged timelines",
		"segments", len(doc.Segments),
		"speakers", doc.NumSpeakers,
		"output", outPath,
	)
	return nil
}
