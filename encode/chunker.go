package encode

import (
	"context"

	"github.com/poiesic/vecpack/core"
)

// Chunk partitions entries into consecutive groups of at most size entries.
// The last group may be shorter. Group i starts at entry i*size.
// The returned groups share the backing array of entries.
func Chunk(entries []core.Entry, size int) [][]core.Entry {
	if size <= 0 || len(entries) == 0 {
		return nil
	}

	chunks := make([][]core.Entry, 0, (len(entries)+size-1)/size)
	for i := 0; i < len(entries); i += size {
		end := min(i+size, len(entries))
		chunks = append(chunks, entries[i:end:end])
	}
	return chunks
}

// ChunkIterator walks entries in chunk order.
type ChunkIterator struct {
	entries []core.Entry
	size    int
}

// NewChunkIterator creates an iterator over entries in groups of size.
// size: number of entries per chunk (values <= 0 select DefaultChunkSize)
func NewChunkIterator(entries []core.Entry, size int) *ChunkIterator {
	if size <= 0 {
		size = DefaultChunkSize
	}

	return &ChunkIterator{
		entries: entries,
		size:    size,
	}
}

// Count returns the number of chunks the iterator will produce.
func (it *ChunkIterator) Count() int {
	return (len(it.entries) + it.size - 1) / it.size
}

// ForEach calls fn for every chunk with its index.
// Iteration stops on first error from fn.
// Context cancellation is checked between chunks.
func (it *ChunkIterator) ForEach(ctx context.Context, fn func(index int, chunk []core.Entry) error) error {
	for i, chunk := range Chunk(it.entries, it.size) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := fn(i, chunk); err != nil {
			return err
		}
	}
	return nil
}
