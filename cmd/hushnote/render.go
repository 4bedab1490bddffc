package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hushnote/hushnote/internal/observe"
	"github.com/hushnote/hushnote/internal/render"
	"github.com/hushnote/hushnote/internal/transcript"
)

// runRender implements "hushnote render <labeled.json>".
func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	formatName := fs.String("f", "txt", "output format: txt, md, json, srt or vtt")
	output := fs.String("o", "", "output file (default: <audio stem>.<format>)")
	if err := requireArgs(fs, args, 1, "render [-f format] [-o out] <labeled.json>"); err != nil {
		return err
	}
	inputPath := fs.Arg(0)

	format, err := render.ParseFormat(*formatName)
	if err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	doc, err := transcript.LoadDocument(inputPath)
	if err != nil {
		return err
	}

	out, err := render.Render(doc, format)
	if err != nil {
		return err
	}
	observe.Default().RecordRender(ctx, string(format))

	outPath := *output
	if outPath == "" {
		outPath = transcript.RenderOutputPath(inputPath, doc.AudioFile, string(format))
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if err := transcript.WriteFileAtomic(outPath, []byte(out)); err != nil {
		return err
	}

	slog.Info("rendered transcript", "format", format, "output", outPath)
	return nil
}
