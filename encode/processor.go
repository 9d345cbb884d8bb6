package encode

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/pack"
	"github.com/poiesic/vecpack/storage"
)

// item is one artifact worth of work.
type item struct {
	// chunk is the chunk index, or NoChunk in word mode
	chunk   int
	entries []core.Entry
}

// itemResult is the outcome of processing one item.
type itemResult struct {
	name    string
	entries int
	size    int64
	err     *EntryError
}

// processor turns one item into a stored artifact.
type processor interface {
	process(ctx context.Context, it item) itemResult
}

// artifactWriter compresses payloads and hands them to the sink.
type artifactWriter struct {
	sink   storage.Sink
	codec  compress.Codec
	verify bool
	logger *slog.Logger
}

// write compresses payload and stores it under name. On failure the returned
// EntryError has Stage and Err set and the caller fills in the rest.
func (w *artifactWriter) write(ctx context.Context, name string, payload []byte, wantLen int) (int64, *EntryError) {
	compressed, err := w.codec.Compress(payload)
	if err != nil {
		return 0, &EntryError{Stage: StageCompress, Err: err}
	}

	var verify storage.VerifyFunc
	if w.verify {
		verify = newVerifier(w.codec, wantLen, payload)
	}

	if err := w.sink.Put(ctx, name, compressed, verify); err != nil {
		stage := StageWrite
		if errors.Is(err, storage.ErrVerificationFailed) {
			stage = StageVerify
		}
		w.logger.Warn("artifact not written", "name", name, "stage", stage, "err", err)
		return 0, &EntryError{Stage: stage, Err: err}
	}

	w.logger.Debug("artifact written", "name", name, "payload", len(payload), "stored", len(compressed))
	return int64(len(compressed)), nil
}

// wordProcessor writes one length-prefixed record per word.
type wordProcessor struct {
	artifactWriter
	width core.FloatWidth
}

func (p *wordProcessor) name(it item) string {
	return WordArtifactName(it.entries[0].Word, p.codec)
}

func (p *wordProcessor) process(ctx context.Context, it item) itemResult {
	entry := it.entries[0]
	result := itemResult{name: p.name(it), entries: 1}

	record, err := pack.PackRecord(entry.Vector, p.width)
	if err != nil {
		result.err = &EntryError{Word: entry.Word, Chunk: NoChunk, Stage: StagePack, Err: err}
		return result
	}

	size, werr := p.write(ctx, result.name, record, pack.RecordSize(len(entry.Vector), p.width))
	if werr != nil {
		werr.Word = entry.Word
		werr.Chunk = NoChunk
		result.err = werr
		return result
	}

	result.size = size
	return result
}

// chunkProcessor writes one JSON object of base64 float runs per chunk.
type chunkProcessor struct {
	artifactWriter
	width core.FloatWidth
}

func (p *chunkProcessor) name(it item) string {
	return ChunkArtifactName(it.chunk, p.codec)
}

func (p *chunkProcessor) process(ctx context.Context, it item) itemResult {
	result := itemResult{name: p.name(it), entries: len(it.entries)}

	payload, err := MarshalChunk(it.entries, p.width)
	if err != nil {
		ee := &EntryError{Chunk: it.chunk, Stage: StagePack, Err: err}
		var cerr *chunkEntryError
		if errors.As(err, &cerr) {
			ee.Word = cerr.word
			ee.Err = cerr.err
		}
		result.err = ee
		return result
	}

	size, werr := p.write(ctx, result.name, payload, len(payload))
	if werr != nil {
		werr.Chunk = it.chunk
		result.err = werr
		return result
	}

	result.size = size
	return result
}
