package compress

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// DefaultLevel is the compression level used when none is configured.
const DefaultLevel = 9

// DeflateWindowBits is the window size, as a power of two, used by raw
// DEFLATE streams. It is a protocol constant shared with decoders.
const DeflateWindowBits = 15

// Codec names.
const (
	Gzip    = "gzip"
	Deflate = "deflate"
	Zstd    = "zstd"
	LZ4     = "lz4"
)

// Codec compresses and decompresses whole payloads.
// Implementations are safe for concurrent use.
type Codec interface {
	// Name returns the codec name used in configuration.
	Name() string
	// Extension returns the file suffix for artifacts in this codec, with leading dot.
	Extension() string
	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)
	// Decompress returns the original payload.
	Decompress(data []byte) ([]byte, error)
}

type factory func(level int) (Codec, error)

var registry = map[string]factory{
	Gzip:    newGzip,
	Deflate: newDeflate,
	Zstd:    newZstd,
	LZ4:     newLZ4,
}

// New returns the codec with the given name at the given level.
func New(name string, level int) (Codec, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownCodec, name, Names())
	}
	return f(level)
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect returns a decoding codec for data based on its magic bytes.
// Data without a known magic is treated as raw DEFLATE.
func Detect(data []byte) Codec {
	var name string
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		name = Gzip
	case bytes.HasPrefix(data, zstdMagic):
		name = Zstd
	case bytes.HasPrefix(data, lz4Magic):
		name = LZ4
	default:
		name = Deflate
	}
	c, _ := New(name, DefaultLevel)
	return c
}

// ForExtension returns a decoding codec matching a file name suffix, or nil.
func ForExtension(name string) Codec {
	for _, codec := range Names() {
		c, _ := New(codec, DefaultLevel)
		if strings.HasSuffix(name, c.Extension()) {
			return c
		}
	}
	return nil
}
