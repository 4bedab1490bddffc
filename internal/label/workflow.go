// Package label implements the interactive speaker labeling workflow: it
// walks every unlabeled speaker in a merged transcript, shows representative
// quotes, and records the names a human assigns.
//
// The workflow is an explicit loop over speakers in ascending lexical order
// driven through the [Prompter] capability, so the same logic runs against a
// terminal in production and against scripted responses in tests.
package label

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/hushnote/hushnote/internal/label/directory"
	"github.com/hushnote/hushnote/internal/observe"
	"github.com/hushnote/hushnote/internal/transcript"
)

// maxQuoteLen is the display length quotes are truncated to.
const maxQuoteLen = 100

// Prompter is the interactive capability the workflow drives.
type Prompter interface {
	// Print displays one line of output to the user.
	Print(line string)

	// ReadLine displays prompt and returns the user's next input line
	// without the trailing newline. An error (io.EOF included) means the
	// session ended and the workflow must abort.
	ReadLine(prompt string) (string, error)
}

// Option is a functional option for configuring a [Workflow].
type Option func(*Workflow)

// WithDirectory attaches a speaker directory. Entered names are looked up and
// fuzzy-matched against it, and committed names are recorded back into it.
func WithDirectory(store directory.Store) Option {
	return func(w *Workflow) {
		w.store = store
	}
}

// WithRand sets the randomness source used by the "more quotes" sampler.
// Tests inject a seeded source for deterministic sampling.
func WithRand(rng *rand.Rand) Option {
	return func(w *Workflow) {
		w.rng = rng
	}
}

// WithRelabel makes the workflow re-offer speakers that already carry a
// label. By default labeled speakers are skipped so reruns only visit what
// is still unlabeled.
func WithRelabel(relabel bool) Option {
	return func(w *Workflow) {
		w.relabel = relabel
	}
}

// WithLogger sets the logger. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithClock sets the time source for labeled_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

// Workflow is the per-document labeling state machine.
type Workflow struct {
	prompter Prompter
	store    directory.Store
	matcher  *directory.Matcher
	rng      *rand.Rand
	relabel  bool
	logger   *slog.Logger
	now      func() time.Time
}

// New returns a workflow that prompts through p.
func New(p Prompter, opts ...Option) *Workflow {
	w := &Workflow{
		prompter: p,
		matcher:  directory.NewMatcher(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run labels every speaker in doc. Labels are committed into doc.Labels one
// speaker at a time, so an aborted session keeps everything committed before
// the in-flight prompt and returns [transcript.ErrUserAbort].
func (w *Workflow) Run(ctx context.Context, doc *transcript.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	speakers := doc.SpeakerIDs()
	if doc.Labels == nil {
		doc.Labels = make(map[string]transcript.LabelEntry, len(speakers))
	}

	audio := doc.AudioFile
	if audio == "" {
		audio = "audio"
	}
	w.prompter.Print("")
	w.prompter.Print("HushNote Speaker Labeling")
	w.prompter.Print(strings.Repeat("═", 70))
	w.prompter.Print("")
	w.prompter.Print(fmt.Sprintf("Found %d speaker(s) in %s", len(speakers), audio))
	w.prompter.Print("")

	for _, speakerID := range speakers {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("label: %v: %w", err, transcript.ErrUserAbort)
		}
		if _, ok := doc.Labels[speakerID]; ok && !w.relabel {
			w.logger.Debug("speaker already labeled, skipping", "speaker_id", speakerID)
			continue
		}
		entry, err := w.labelSpeaker(ctx, doc, speakerID)
		if err != nil {
			return err
		}
		doc.Labels[speakerID] = entry
		observe.Default().RecordLabel(ctx, string(entry.Source))
		w.prompter.Print("")
	}

	w.prompter.Print(strings.Repeat("─", 70))
	w.prompter.Print("✓ All speakers labeled!")
	w.prompter.Print("")

	w.logger.Info("labeling complete", "speakers", len(speakers))
	return nil
}

// labelSpeaker runs the prompt loop for one speaker until a label commits.
func (w *Workflow) labelSpeaker(ctx context.Context, doc *transcript.Document, speakerID string) (transcript.LabelEntry, error) {
	stats := doc.SpeakerStats[speakerID]

	w.prompter.Print(strings.Repeat("─", 70))
	w.prompter.Print(fmt.Sprintf("%s (%s, %d segments)", speakerID, formatClock(stats.TotalTime), stats.SegmentCount))
	w.prompter.Print("")

	segments := doc.SpeakerSegments(speakerID)
	w.showQuotes(PositionalSamples(segments))
	w.prompter.Print("")

	for {
		if err := ctx.Err(); err != nil {
			return transcript.LabelEntry{}, fmt.Errorf("label: %v: %w", err, transcript.ErrUserAbort)
		}
		response, err := w.prompter.ReadLine(fmt.Sprintf("Who is %s? (or 'm' for more quotes) ", speakerID))
		if err != nil {
			return transcript.LabelEntry{}, fmt.Errorf("label: read input: %v: %w", err, transcript.ErrUserAbort)
		}
		response = strings.TrimSpace(response)

		if strings.EqualFold(response, "m") {
			w.prompter.Print("")
			w.showQuotes(RandomSamples(segments, randomSampleCount, w.rng))
			w.prompter.Print("")
			continue
		}

		if response != "" {
			entry, err := w.commitName(ctx, response)
			if err != nil {
				return transcript.LabelEntry{}, err
			}
			w.prompter.Print(fmt.Sprintf("✓ Labeled as %q", entry.Name))
			return entry, nil
		}

		skip, err := w.prompter.ReadLine("Skip this speaker? (y/n) ")
		if err != nil {
			return transcript.LabelEntry{}, fmt.Errorf("label: read input: %v: %w", err, transcript.ErrUserAbort)
		}
		if strings.EqualFold(strings.TrimSpace(skip), "y") {
			w.prompter.Print(fmt.Sprintf("⊘ Skipped, will use %s", speakerID))
			return transcript.LabelEntry{
				Name:      speakerID,
				Source:    transcript.LabelSkipped,
				LabeledAt: w.now().UTC(),
			}, nil
		}
		// Anything else re-prompts for a name.
	}
}

// commitName turns a typed name into a label entry, consulting the directory
// when one is attached: an exact hit canonicalizes the name and carries
// email/role, a fuzzy hit is offered as a correction, and the final name is
// recorded back for future meetings.
func (w *Workflow) commitName(ctx context.Context, typed string) (transcript.LabelEntry, error) {
	entry := transcript.LabelEntry{
		Name:      typed,
		Source:    transcript.LabelManual,
		LabeledAt: w.now().UTC(),
	}
	if w.store == nil {
		return entry, nil
	}

	person, err := w.store.Lookup(ctx, typed)
	switch {
	case err == nil:
		entry.Name = person.Name
		entry.Email = person.Email
		entry.Role = person.Role
		entry.Source = transcript.LabelDirectory
	case errors.Is(err, directory.ErrNotFound):
		if err := w.suggestName(ctx, typed, &entry); err != nil {
			return transcript.LabelEntry{}, err
		}
	default:
		w.logger.Warn("directory lookup failed", "name", typed, "error", err)
	}

	if err := w.store.Upsert(ctx, directory.Person{Name: entry.Name, Email: entry.Email, Role: entry.Role}); err != nil {
		w.logger.Warn("directory upsert failed", "name", entry.Name, "error", err)
	}
	return entry, nil
}

// suggestName fuzzy-matches typed against the directory and offers the best
// candidate. On confirmation it rewrites entry in place.
func (w *Workflow) suggestName(ctx context.Context, typed string, entry *transcript.LabelEntry) error {
	people, err := w.store.List(ctx)
	if err != nil {
		w.logger.Warn("directory list failed", "error", err)
		return nil
	}
	match, score, ok := w.matcher.Suggest(typed, people)
	if !ok {
		return nil
	}

	answer, err := w.prompter.ReadLine(fmt.Sprintf("Did you mean %q? (y/n) ", match.Name))
	if err != nil {
		return fmt.Errorf("label: read input: %v: %w", err, transcript.ErrUserAbort)
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return nil
	}

	w.logger.Debug("directory suggestion accepted", "typed", typed, "name", match.Name, "score", score)
	entry.Name = match.Name
	entry.Email = match.Email
	entry.Role = match.Role
	entry.Source = transcript.LabelDirectory
	return nil
}

// showQuotes prints sample quotes with their start timestamps, truncating
// long ones for readability.
func (w *Workflow) showQuotes(samples []transcript.MergedSegment) {
	if len(samples) == 0 {
		w.prompter.Print("  (No quotes available)")
		return
	}
	w.prompter.Print("Sample quotes:")
	for _, s := range samples {
		text := strings.TrimSpace(s.Text)
		if runes := []rune(text); len(runes) > maxQuoteLen {
			text = string(runes[:maxQuoteLen]) + "..."
		}
		w.prompter.Print(fmt.Sprintf("  [%s] %q", formatClock(s.Start), text))
	}
}

// formatClock renders seconds as M:SS the way the stats headers show talk
// time.
func formatClock(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
