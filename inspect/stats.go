package inspect

import (
	"context"
	"strings"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/encode"
)

// Stats counts the artifacts held by a sink.
type Stats struct {
	WordArtifacts  int
	WordBytes      int64
	ChunkArtifacts int
	ChunkBytes     int64
	OtherArtifacts int
	OtherBytes     int64
}

// Total returns the number of artifacts of every kind.
func (s *Stats) Total() int {
	return s.WordArtifacts + s.ChunkArtifacts + s.OtherArtifacts
}

// TotalBytes returns the stored size of every artifact.
func (s *Stats) TotalBytes() int64 {
	return s.WordBytes + s.ChunkBytes + s.OtherBytes
}

// Stats walks every artifact in the sink and sums sizes by kind.
func (i *Inspector) Stats(ctx context.Context) (*Stats, error) {
	names, err := i.sink.List(ctx, "")
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, name := range names {
		size, err := i.sink.Stat(ctx, name)
		if err != nil {
			return nil, err
		}

		switch {
		case IsChunkName(name):
			stats.ChunkArtifacts++
			stats.ChunkBytes += size
		case IsWordName(name):
			stats.WordArtifacts++
			stats.WordBytes += size
		default:
			stats.OtherArtifacts++
			stats.OtherBytes += size
		}
	}

	i.logger.Debug("collected artifact stats", "artifacts", stats.Total(), "bytes", stats.TotalBytes())
	return stats, nil
}

// IsWordName reports whether name looks like a per-word artifact.
func IsWordName(name string) bool {
	if strings.HasSuffix(name, encode.WordSuffix) {
		return len(name) > len(encode.WordSuffix)
	}
	for _, codecName := range compress.Names() {
		codec, err := compress.New(codecName, compress.DefaultLevel)
		if err != nil {
			continue
		}
		suffix := encode.WordSuffix + codec.Extension()
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return true
		}
	}
	return false
}
