package encode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/storage"
)

// Encoder runs the validate, pack, compress, write and verify pipeline over
// a set of entries.
type Encoder struct {
	sink      storage.Sink
	config    *Config
	codec     compress.Codec
	progress  io.Writer
	logger    *slog.Logger
	processor processor
}

// Option configures an Encoder.
type Option func(*Encoder) error

// WithLogger sets a custom logger.
// Defaults to slog.Default() if not specified.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithProgress sets where progress lines and the start banner are written.
// Defaults to io.Discard.
func WithProgress(w io.Writer) Option {
	return func(e *Encoder) error {
		if w == nil {
			w = io.Discard
		}
		e.progress = w
		return nil
	}
}

// NewEncoder creates an encoder that writes artifacts to sink.
// A nil config uses DefaultConfig().
func NewEncoder(sink storage.Sink, config *Config, opts ...Option) (*Encoder, error) {
	if sink == nil {
		return nil, ErrSinkRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	resolved, err := config.resolved()
	if err != nil {
		return nil, err
	}

	codec, err := compress.New(resolved.Codec, resolved.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := &Encoder{
		sink:     sink,
		config:   resolved,
		codec:    codec,
		progress: io.Discard,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	// Built after options so processors get the final logger
	writer := artifactWriter{
		sink:   sink,
		codec:  codec,
		verify: resolved.Verify,
		logger: e.logger,
	}
	if resolved.Mode == core.ModeWord {
		e.processor = &wordProcessor{artifactWriter: writer, width: resolved.Width}
	} else {
		e.processor = &chunkProcessor{artifactWriter: writer, width: resolved.Width}
	}

	return e, nil
}

// Config returns the configuration in effect, with mode defaults applied.
func (e *Encoder) Config() Config {
	return *e.config
}

// Run encodes entries and returns the run summary.
// Individual failures are recorded in the summary; an error is returned only
// when the run cannot continue, such as on context cancellation.
func (e *Encoder) Run(ctx context.Context, entries []core.Entry) (*Summary, error) {
	start := time.Now()

	summary := &Summary{
		Mode:   e.config.Mode,
		Width:  e.config.Width,
		Codec:  e.codec.Name(),
		Loaded: len(entries),
	}

	valid, dim, rejected := e.validate(entries)
	summary.Dimension = dim
	summary.Valid = len(valid)
	summary.Skipped = len(rejected)
	summary.Errors = rejected

	items, err := e.plan(ctx, valid)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(e.progress, "Encoding %d of %d entries into %d artifacts (%s mode, float%d, %s level %d)\n",
		len(valid), len(entries), len(items), e.config.Mode, e.config.Width, e.codec.Name(), e.config.Level)
	e.logger.Info("encoding started", "entries", len(entries), "valid", len(valid),
		"artifacts", len(items), "dimension", dim, "workers", e.config.Workers)

	tracker := NewProgressTracker(e.progress, len(valid), e.config.ReportInterval)
	tracker.Start()

	results, err := runItems(ctx, e.config.Workers, items, func(it item) itemResult {
		r := e.processor.process(ctx, it)
		tracker.Increment(r.entries)
		return r
	})
	if err != nil {
		fmt.Fprintln(e.progress)
		e.logger.Warn("encoding interrupted", "processed", tracker.Current(), "of", len(valid),
			"elapsed", tracker.Elapsed(), "err", err)
		return nil, err
	}
	tracker.Finish()

	for _, r := range results {
		summary.add(r)
	}
	summary.Elapsed = time.Since(start)

	e.logger.Info("encoding finished", "written", summary.ArtifactsWritten,
		"failed", summary.ArtifactsFailed, "skipped", summary.Skipped, "elapsed", summary.Elapsed)

	return summary, nil
}

// validate splits entries into those that can be encoded and the errors for
// the rest. A configured dimension of zero adopts the length of the first
// well-formed entry.
func (e *Encoder) validate(entries []core.Entry) ([]core.Entry, int, []*EntryError) {
	dim := e.config.Dimension
	if dim == 0 {
		for _, entry := range entries {
			if entry.Word != "" && entry.Malformed == nil && entry.Vector != nil {
				dim = len(entry.Vector)
				break
			}
		}
	}

	var (
		valid    = make([]core.Entry, 0, len(entries))
		rejected []*EntryError
	)
	for i := range entries {
		entry := &entries[i]

		err := core.ValidateEntry(entry, dim, e.config.Width)
		if err == nil && e.config.Mode == core.ModeWord {
			if nameErr := core.ValidateWordName(entry.Word); nameErr != nil {
				err = fmt.Errorf("%w: %w", core.ErrInvalidEntry, nameErr)
			}
		}
		if err != nil {
			e.logger.Debug("skipping entry", "word", entry.Word, "err", err)
			rejected = append(rejected, &EntryError{Word: entry.Word, Chunk: NoChunk, Stage: StageValidate, Err: err})
			continue
		}
		valid = append(valid, *entry)
	}

	return valid, dim, rejected
}

// plan groups valid entries into artifacts in input order.
func (e *Encoder) plan(ctx context.Context, valid []core.Entry) ([]item, error) {
	if e.config.Mode == core.ModeWord {
		items := make([]item, len(valid))
		for i := range valid {
			items[i] = item{chunk: NoChunk, entries: valid[i : i+1 : i+1]}
		}
		return items, ctx.Err()
	}

	it := NewChunkIterator(valid, e.config.ChunkSize)
	items := make([]item, 0, it.Count())
	err := it.ForEach(ctx, func(index int, chunk []core.Entry) error {
		items = append(items, item{chunk: index, entries: chunk})
		return nil
	})
	return items, err
}
