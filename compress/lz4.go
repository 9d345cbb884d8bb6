package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1,
	lz4.Level2,
	lz4.Level3,
	lz4.Level4,
	lz4.Level5,
	lz4.Level6,
	lz4.Level7,
	lz4.Level8,
	lz4.Level9,
}

type lz4Codec struct {
	level lz4.CompressionLevel
}

func newLZ4(level int) (Codec, error) {
	if level < 0 || level >= len(lz4Levels) {
		return nil, fmt.Errorf("%w: lz4 level %d", ErrInvalidLevel, level)
	}
	return &lz4Codec{level: lz4Levels[level]}, nil
}

func (c *lz4Codec) Name() string      { return LZ4 }
func (c *lz4Codec) Extension() string { return ".lz4" }

func (c *lz4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *lz4Codec) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}
