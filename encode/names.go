package encode

import (
	"strconv"

	"github.com/poiesic/vecpack/compress"
)

const (
	// ChunkPrefix starts the name of every chunk artifact.
	ChunkPrefix = "embeddings_chunk_"

	// WordSuffix follows the word in every per-word artifact name.
	WordSuffix = ".vec"
)

// ChunkArtifactName returns the artifact name for chunk index i.
func ChunkArtifactName(i int, codec compress.Codec) string {
	return ChunkPrefix + strconv.Itoa(i) + codec.Extension()
}

// WordArtifactName returns the artifact name for a word.
// Raw DEFLATE records use the bare .vec suffix.
func WordArtifactName(word string, codec compress.Codec) string {
	if codec.Name() == compress.Deflate {
		return word + WordSuffix
	}
	return word + WordSuffix + codec.Extension()
}
