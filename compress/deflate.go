package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// deflateCodec writes headerless DEFLATE streams. The encoder always uses a
// 1<<DeflateWindowBits byte window.
type deflateCodec struct {
	level int
}

func newDeflate(level int) (Codec, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, fmt.Errorf("%w: deflate level %d", ErrInvalidLevel, level)
	}
	return &deflateCodec{level: level}, nil
}

func (c *deflateCodec) Name() string      { return Deflate }
func (c *deflateCodec) Extension() string { return ".deflate" }

func (c *deflateCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, c.level)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *deflateCodec) Decompress(data []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	return io.ReadAll(fr)
}
