// Command hushnote is the meeting transcript pipeline: it merges a speaker
// diarization timeline with a transcription into speaker-attributed segments,
// drives the interactive speaker labeling session, renders the labeled
// transcript to text formats, and generates meeting notes through an LLM.
//
// Each stage reads a complete JSON document and writes a complete one, so the
// pipeline is resumable at any point:
//
//	hushnote merge meeting_speakers.json meeting_transcription.json
//	hushnote label meeting_diarized.json
//	hushnote render meeting_speakers_labeled.json -f md
//	hushnote summarize meeting.txt --actions
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hushnote/hushnote/internal/config"
	"github.com/hushnote/hushnote/internal/observe"
	"github.com/hushnote/hushnote/internal/transcript"
)

// version is overridden at build time via -ldflags.
var version = "dev"

const usageText = `hushnote - meeting transcript pipeline

Usage:
  hushnote [-config file] <command> [arguments]

Commands:
  merge      merge a diarization timeline with a transcription
  label      interactively label speakers in a merged transcript
  render     render a labeled transcript to txt, md, json, srt or vtt
  summarize  generate meeting notes from a transcript

Run "hushnote <command> -h" for command flags.
`

// errUsage marks failures in command-line handling. They exit with status 2;
// everything else exits with 1.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("hushnote", flag.ContinueOnError)
	global.Usage = func() { fmt.Fprint(os.Stderr, usageText) }
	configPath := global.String("config", config.DefaultPath, "path to the YAML configuration file")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hushnote: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceName:    "hushnote",
			ServiceVersion: version,
			ListenAddr:     cfg.MetricsAddr,
		})
		if err != nil {
			slog.Error("failed to initialise metrics", "err", err)
			return 1
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("metrics shutdown error", "err", err)
			}
		}()
	}

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "merge":
		err = runMerge(ctx, rest)
	case "label":
		err = runLabel(ctx, cfg, rest)
	case "render":
		err = runRender(ctx, rest)
	case "summarize":
		err = runSummarize(ctx, cfg, rest)
	default:
		fmt.Fprintf(os.Stderr, "hushnote: unknown command %q\n\n", command)
		global.Usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	case errors.Is(err, transcript.ErrUserAbort):
		fmt.Fprintln(os.Stderr, "\nhushnote: interrupted")
		return 1
	default:
		fmt.Fprintf(os.Stderr, "hushnote: %v\n", err)
		return 1
	}
}

// requireArgs parses fs and checks the positional argument count.
func requireArgs(fs *flag.FlagSet, args []string, want int, usage string) error {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hushnote %s\n", usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() != want {
		fs.Usage()
		return errUsage
	}
	return nil
}

func newLogger(level config.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level.Level()}))
}
