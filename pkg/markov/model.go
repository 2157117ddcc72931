package markov

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
)

// ErrInsufficientCorpus is returned by Generate when fewer than three words
// have been fed: no seed pair with a recorded successor exists, so a random
// walk cannot start.
var ErrInsufficientCorpus = errors.New("markov: corpus has fewer than three words")

// Generator is an order-2 Markov chain model over a word stream. Feeding
// words records every trigram transition into the backing Store, and
// Generate performs a weighted random walk over those transitions, seeded
// from a random position in the ingested history.
//
// A Generator is not safe for concurrent use. Feeding mutates both the
// store and the retained history, and generation reads both; callers that
// share a Generator across goroutines must serialize access with a single
// lock around the whole instance.
type Generator struct {
	store  Store
	words  []string
	window Window
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Generator created by New.
type Option func(*Generator)

// WithRand sets the random source used to pick the walk's starting position
// and to sample successors. A seeded source makes generation reproducible;
// by default each Generator draws from a freshly seeded PCG.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithLogger sets the logger for ingestion and generation events. By
// default all log output is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a Generator backed by store, which should start empty. The
// Generator owns all writes to the store for its lifetime.
func New(store Store, opts ...Option) *Generator {
	g := &Generator{
		store:  store,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Feed records words into the model: every overlapping trigram, including
// the ones spanning the boundary with previously fed words, is appended to
// the store, and the batch joins the retained history. Feeding an empty
// batch is a no-op.
//
// The trigram window persists across calls, so feeding a corpus in pieces
// trains exactly the same model as feeding it whole.
func (g *Generator) Feed(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}

	// On a store failure the window is restored to the batch boundary, so
	// history and window stay aligned for the next batch.
	window := g.window
	for _, word := range words {
		t, ok := g.window.Slide(word)
		if !ok {
			continue
		}
		if err := g.store.Put(ctx, t.Prefix(), t.Third); err != nil {
			g.window = window
			return fmt.Errorf("markov: record transition (%s, %s) -> %s: %w", t.First, t.Second, t.Third, err)
		}
	}
	g.words = append(g.words, words...)

	g.logger.DebugContext(ctx, "Batch fed",
		slog.Int("batch_words", len(words)),
		slog.Int("corpus_words", len(g.words)),
	)
	return nil
}

// FeedFromReader ingests a line-oriented text stream: each line is split
// into whitespace-delimited words, empty tokens are dropped, and every
// non-empty line is fed as one batch. Trigrams spanning line breaks are
// captured by the persistent window. On a read error the model keeps every
// line fed before the failure.
func (g *Generator) FeedFromReader(ctx context.Context, r io.Reader) error {
	var lines, words int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.Fields(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if err := g.Feed(ctx, line); err != nil {
			return err
		}
		lines++
		words += len(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("markov: read corpus: %w", err)
	}

	g.logger.InfoContext(ctx, "Corpus ingested",
		slog.Int("lines", lines),
		slog.Int("words", words),
		slog.Int("corpus_words", len(g.words)),
	)
	return nil
}

// FeedFromFile ingests the file at path line by line. A file that cannot
// be opened leaves the model untouched.
func (g *Generator) FeedFromFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("markov: open corpus: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	return g.FeedFromReader(ctx, f)
}

// Generate performs a weighted random walk of up to length words over the
// recorded transitions and returns them joined by single spaces. The walk
// starts from a uniformly random pair of consecutive history words and
// advances by sampling a successor of the current pair, weighted by
// observed frequency. Reaching a pair with no recorded successor ends the
// walk early, so a successful result has between 1 and length words.
//
// Generate returns ErrInsufficientCorpus when fewer than three words have
// been fed.
func (g *Generator) Generate(ctx context.Context, length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("markov: generation length must be at least 1, got %d", length)
	}
	if len(g.words) < 3 {
		return "", ErrInsufficientCorpus
	}

	// Every pair starting at an index up to len-3 was recorded with at
	// least one successor, so the first lookup always advances.
	seed := g.rng.IntN(len(g.words) - 2)
	w1, w2 := g.words[seed], g.words[seed+1]

	// length is only an upper bound, so keep the allocation hint modest.
	out := make([]string, 0, min(length, 1024))
	for {
		out = append(out, w1)
		if len(out) == length {
			break
		}
		successors, err := g.store.Get(ctx, Prefix{First: w1, Second: w2})
		if err != nil {
			return "", fmt.Errorf("markov: look up transitions for (%s, %s): %w", w1, w2, err)
		}
		if len(successors) == 0 {
			// Dead end: emit the pending second word and stop short.
			out = append(out, w2)
			g.logger.DebugContext(ctx, "Walk exhausted",
				slog.String("first", w1),
				slog.String("second", w2),
				slog.Int("generated", len(out)),
			)
			break
		}
		w1, w2 = w2, successors[g.rng.IntN(len(successors))]
	}

	g.logger.DebugContext(ctx, "Text generated",
		slog.Int("requested_words", length),
		slog.Int("generated_words", len(out)),
		slog.Int("seed_position", seed),
	)
	return strings.Join(out, " "), nil
}

// WordCount returns the number of words in the retained history.
func (g *Generator) WordCount() int {
	return len(g.words)
}
