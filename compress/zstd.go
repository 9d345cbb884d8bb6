package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

type zstdCodec struct {
	level zstd.EncoderLevel

	once    sync.Once
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	initErr error
}

func newZstd(level int) (Codec, error) {
	if level < 1 || level > 22 {
		return nil, fmt.Errorf("%w: zstd level %d", ErrInvalidLevel, level)
	}
	return &zstdCodec{level: zstd.EncoderLevelFromZstd(level)}, nil
}

func (c *zstdCodec) Name() string      { return Zstd }
func (c *zstdCodec) Extension() string { return ".zst" }

// init builds the shared encoder and decoder. Both are safe for concurrent
// EncodeAll/DecodeAll calls.
func (c *zstdCodec) init() error {
	c.once.Do(func() {
		c.enc, c.initErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(c.level))
		if c.initErr != nil {
			return
		}
		c.dec, c.initErr = zstd.NewReader(nil)
	})
	return c.initErr
}

func (c *zstdCodec) Compress(data []byte) ([]byte, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.enc.EncodeAll(data, nil), nil
}

func (c *zstdCodec) Decompress(data []byte) ([]byte, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	return c.dec.DecodeAll(data, nil)
}
