package encode

import (
	"testing"

	"github.com/poiesic/vecpack/compress"
	"github.com/stretchr/testify/require"
)

func mustCodec(t *testing.T, name string) compress.Codec {
	t.Helper()
	codec, err := compress.New(name, compress.DefaultLevel)
	require.NoError(t, err)
	return codec
}
