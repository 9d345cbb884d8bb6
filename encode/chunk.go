package encode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/pack"
)

// chunkEntryError identifies the entry that stopped a chunk from serializing.
type chunkEntryError struct {
	word string
	err  error
}

func (e *chunkEntryError) Error() string { return fmt.Sprintf("%q: %v", e.word, e.err) }
func (e *chunkEntryError) Unwrap() error { return e.err }

// MarshalChunk serializes entries as a JSON object mapping each word to the
// standard base64 encoding of its bare float run at width.
// Keys appear in the order of entries.
func MarshalChunk(entries []core.Entry, width core.FloatWidth) ([]byte, error) {
	var buf bytes.Buffer
	if len(entries) > 0 {
		perEntry := base64.StdEncoding.EncodedLen(len(entries[0].Vector)*width.Bytes()) + len(entries[0].Word) + 6
		buf.Grow(len(entries) * perEntry)
	}

	buf.WriteByte('{')
	for i, entry := range entries {
		values, err := pack.PackValues(entry.Vector, width)
		if err != nil {
			return nil, &chunkEntryError{word: entry.Word, err: err}
		}
		key, err := json.Marshal(entry.Word)
		if err != nil {
			return nil, &chunkEntryError{word: entry.Word, err: err}
		}

		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteString(`:"`)
		buf.WriteString(base64.StdEncoding.EncodeToString(values))
		buf.WriteByte('"')
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
