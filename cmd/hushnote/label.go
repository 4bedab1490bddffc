package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hushnote/hushnote/internal/config"
	"github.com/hushnote/hushnote/internal/label"
	"github.com/hushnote/hushnote/internal/label/directory"
	"github.com/hushnote/hushnote/internal/transcript"
)

// runLabel implements "hushnote label <diarized.json>".
func runLabel(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("label", flag.ContinueOnError)
	output := fs.String("o", "", "output file (default: <input>_speakers_labeled.json)")
	nonInteractive := fs.Bool("non-interactive", false, "skip the interactive prompts and pass the document through")
	relabel := fs.Bool("relabel", false, "re-offer speakers that already carry a label")
	if err := requireArgs(fs, args, 1, "label [-o out.json] [-non-interactive] [-relabel] <diarized.json>"); err != nil {
		return err
	}
	inputPath := fs.Arg(0)

	doc, err := transcript.LoadDocument(inputPath)
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		outPath = transcript.LabelOutputPath(inputPath)
	}

	if *nonInteractive {
		slog.Info("non-interactive mode: skipping speaker labeling")
	} else {
		store, closeStore, err := openDirectory(ctx, cfg)
		if err != nil {
			return err
		}
		if closeStore != nil {
			defer closeStore()
		}

		opts := []label.Option{label.WithRelabel(*relabel)}
		if store != nil {
			opts = append(opts, label.WithDirectory(store))
		}
		w := label.New(label.NewConsole(os.Stdin, os.Stdout), opts...)
		if err := w.Run(ctx, doc); err != nil {
			return err
		}
	}

	if err := doc.Save(outPath); err != nil {
		return err
	}
	slog.Info("saved labeled transcript", "labels", len(doc.Labels), "output", outPath)
	return nil
}

// openDirectory builds the speaker directory from config: a Postgres store
// when a DSN is set, an in-memory roster when attendees are listed, nothing
// otherwise.
func openDirectory(ctx context.Context, cfg *config.Config) (directory.Store, func(), error) {
	if dsn := cfg.Directory.PostgresDSN; dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connect speaker directory: %w", err)
		}
		store := directory.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		for _, a := range cfg.Attendees {
			if err := store.Upsert(ctx, directory.Person{Name: a.Name, Email: a.Email, Role: a.Role}); err != nil {
				slog.Warn("failed to seed attendee", "name", a.Name, "err", err)
			}
		}
		return store, pool.Close, nil
	}

	if len(cfg.Attendees) == 0 {
		return nil, nil, nil
	}
	people := make([]directory.Person, 0, len(cfg.Attendees))
	for _, a := range cfg.Attendees {
		people = append(people, directory.Person{Name: a.Name, Email: a.Email, Role: a.Role})
	}
	return directory.NewMemStore(people...), nil, nil
}
