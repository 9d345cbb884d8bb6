package inspect

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/encode"
	"github.com/poiesic/vecpack/pack"
	"github.com/tidwall/gjson"
)

// Kind is the layout of a decoded artifact.
type Kind string

const (
	KindRecord Kind = "record"
	KindChunk  Kind = "chunk"
)

// ChunkEntry is one word decoded from a chunk.
type ChunkEntry struct {
	Word   string
	Vector []float32
}

// Artifact is a decoded artifact.
type Artifact struct {
	Name        string
	Kind        Kind
	Codec       string
	Width       core.FloatWidth
	StoredSize  int
	PayloadSize int

	// Vector is set for records
	Vector []float32
	// Entries is set for chunks, in stored order
	Entries []ChunkEntry
}

// CodecFor picks the codec for an artifact from its name, falling back to
// magic byte detection.
func CodecFor(name string, data []byte) compress.Codec {
	if codec := compress.ForExtension(name); codec != nil {
		return codec
	}
	return compress.Detect(data)
}

// IsChunkName reports whether name looks like a chunk artifact.
func IsChunkName(name string) bool {
	return strings.HasPrefix(name, encode.ChunkPrefix)
}

// Decode decompresses and decodes a stored artifact.
// A zero width selects float32 for records, inferred from the record size
// when possible, and float16 for chunks.
func Decode(name string, data []byte, width core.FloatWidth) (*Artifact, error) {
	codec := CodecFor(name, data)
	payload, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s: decompress %s: %w", name, codec.Name(), err)
	}

	a := &Artifact{
		Name:        name,
		Codec:       codec.Name(),
		StoredSize:  len(data),
		PayloadSize: len(payload),
	}

	// Unknown names holding a JSON object are treated as chunks
	isChunk := IsChunkName(name) || (!IsWordName(name) && len(payload) > 0 && payload[0] == '{')
	if isChunk {
		if width == 0 {
			width = core.Float16
		}
		a.Kind = KindChunk
		a.Width = width
		a.Entries, err = DecodeChunk(payload, width)
	} else {
		if width == 0 {
			width = InferRecordWidth(payload)
		}
		a.Kind = KindRecord
		a.Width = width
		a.Vector, err = pack.UnpackRecord(payload, width)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

// InferRecordWidth guesses the float width of a length-prefixed record from
// its size. Records that fit neither width report float32.
func InferRecordWidth(record []byte) core.FloatWidth {
	if len(record) < pack.HeaderSize {
		return core.Float32
	}
	n := int(binary.LittleEndian.Uint32(record))
	if n > 0 && len(record) == pack.RecordSize(n, core.Float16) {
		return core.Float16
	}
	return core.Float32
}

// DecodeChunk decodes a chunk payload into its entries in stored order.
func DecodeChunk(payload []byte, width core.FloatWidth) ([]ChunkEntry, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedChunk)
	}
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedChunk)
	}

	var (
		entries []ChunkEntry
		decErr  error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			decErr = fmt.Errorf("%w: value for %q is %s", ErrMalformedChunk, key.String(), value.Type)
			return false
		}
		raw, err := base64.StdEncoding.DecodeString(value.String())
		if err != nil {
			decErr = fmt.Errorf("%w: value for %q: %w", ErrMalformedChunk, key.String(), err)
			return false
		}
		vec, err := pack.UnpackValues(raw, width)
		if err != nil {
			decErr = fmt.Errorf("value for %q: %w", key.String(), err)
			return false
		}
		entries = append(entries, ChunkEntry{Word: key.String(), Vector: vec})
		return true
	})
	if decErr != nil {
		return nil, decErr
	}
	return entries, nil
}
