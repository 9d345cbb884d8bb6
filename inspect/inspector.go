package inspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/encode"
	"github.com/poiesic/vecpack/storage"
)

// Inspector reads artifacts back from a sink.
type Inspector struct {
	sink   storage.Sink
	width  core.FloatWidth
	logger *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// WithWidth fixes the float width used to decode artifacts.
// The default of zero lets Decode pick per artifact.
func WithWidth(width core.FloatWidth) Option {
	return func(i *Inspector) error {
		if width != 0 {
			if _, err := core.ParseFloatWidth(int(width)); err != nil {
				return err
			}
		}
		i.width = width
		return nil
	}
}

// NewInspector creates an inspector over sink.
func NewInspector(sink storage.Sink, opts ...Option) (*Inspector, error) {
	if sink == nil {
		return nil, ErrSinkRequired
	}

	i := &Inspector{
		sink:   sink,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// Read fetches and decodes the artifact stored under name.
func (i *Inspector) Read(ctx context.Context, name string) (*Artifact, error) {
	data, err := i.sink.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decode(name, data, i.width)
}

// LookupResult locates a word inside a chunk artifact.
type LookupResult struct {
	Word   string
	Vector []float32
	// Name is the artifact holding the word
	Name string
	// Chunk is the index of that artifact
	Chunk int
	// Scanned is the number of chunk artifacts decoded to find the word
	Scanned int
}

// Lookup finds word by decoding chunk artifacts in index order.
// There is no word to chunk index, so the cost grows with the chunk count.
func (i *Inspector) Lookup(ctx context.Context, word string) (*LookupResult, error) {
	return i.LookupWithMonitor(ctx, word, nil)
}

// LookupWithMonitor is Lookup with callbacks for each scanned chunk.
func (i *Inspector) LookupWithMonitor(ctx context.Context, word string, monitor ScanMonitor) (*LookupResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(word)

	chunks, err := i.ChunkNames(ctx)
	if err != nil {
		return nil, err
	}

	for n, name := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		artifact, err := i.Read(ctx, name)
		if err != nil {
			i.logger.Error("error reading chunk", "name", name, "err", err)
			return nil, err
		}
		monitor.ChunkScanned(name, len(artifact.Entries))

		for _, entry := range artifact.Entries {
			if entry.Word != word {
				continue
			}
			index, _ := chunkIndex(name)
			result := &LookupResult{
				Word:    word,
				Vector:  entry.Vector,
				Name:    name,
				Chunk:   index,
				Scanned: n + 1,
			}
			monitor.Finish(result)
			return result, nil
		}
	}

	monitor.Finish(nil)
	return nil, fmt.Errorf("%w: %q in %d chunks", ErrWordNotFound, word, len(chunks))
}

// ChunkNames lists chunk artifacts ordered by chunk index.
func (i *Inspector) ChunkNames(ctx context.Context) ([]string, error) {
	names, err := i.sink.List(ctx, encode.ChunkPrefix)
	if err != nil {
		return nil, err
	}

	chunks := names[:0]
	for _, name := range names {
		if _, ok := chunkIndex(name); ok {
			chunks = append(chunks, name)
		}
	}
	sort.SliceStable(chunks, func(a, b int) bool {
		ia, _ := chunkIndex(chunks[a])
		ib, _ := chunkIndex(chunks[b])
		return ia < ib
	})
	return chunks, nil
}

// WordVector reads the vector for word.
// In word mode the per-word artifact is read directly, trying every codec
// suffix; in chunked mode the chunks are scanned.
func (i *Inspector) WordVector(ctx context.Context, word string, mode core.Mode) ([]float32, error) {
	if mode == core.ModeChunked {
		result, err := i.Lookup(ctx, word)
		if err != nil {
			return nil, err
		}
		return result.Vector, nil
	}

	if err := core.ValidateWordName(word); err != nil {
		return nil, err
	}
	for _, name := range compress.Names() {
		codec, err := compress.New(name, compress.DefaultLevel)
		if err != nil {
			return nil, err
		}
		artifact, err := i.Read(ctx, encode.WordArtifactName(word, codec))
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return artifact.Vector, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrWordNotFound, word)
}

// Similarity returns the cosine similarity of two stored words.
func (i *Inspector) Similarity(ctx context.Context, a, b string, mode core.Mode) (float64, error) {
	va, err := i.WordVector(ctx, a, mode)
	if err != nil {
		return 0, err
	}
	vb, err := i.WordVector(ctx, b, mode)
	if err != nil {
		return 0, err
	}
	return CosineSimilarity(va, vb)
}

// chunkIndex parses the index out of an embeddings_chunk_{i}.ext name.
func chunkIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, encode.ChunkPrefix)
	if !ok {
		return 0, false
	}
	digits, _, _ := strings.Cut(rest, ".")
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
