package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "concept_embeds.json", cfg.Input)
	assert.Equal(t, "public/data/embeddings_chunks", cfg.Output)
	assert.Equal(t, StoreFS, cfg.Store)
	assert.False(t, cfg.Strict)

	ec := cfg.EncodeConfig()
	assert.Equal(t, core.ModeChunked, ec.Mode)
	assert.Equal(t, 10000, ec.ChunkSize)
	assert.Equal(t, core.Float16, ec.Width)
	assert.Equal(t, compress.Gzip, ec.Codec)
	assert.Equal(t, 9, ec.Level)
	assert.Equal(t, 300, ec.Dimension)
	assert.True(t, ec.Verify)
	assert.Equal(t, 1, ec.Workers)
	assert.Equal(t, 1000, ec.ReportInterval)
	assert.Equal(t, 10, ec.MaxErrors)
}

func TestParse_WordModeDefaults(t *testing.T) {
	cfg, err := Parse([]byte("encode:\n  mode: word\n"))
	require.NoError(t, err)

	ec := cfg.EncodeConfig()
	assert.Equal(t, core.ModeWord, ec.Mode)
	assert.Equal(t, core.Float32, ec.Width)
	assert.Equal(t, compress.Deflate, ec.Codec)
}

func TestParse_ExplicitZeroes(t *testing.T) {
	cfg, err := Parse([]byte(`
encode:
  level: 0
  dimension: 0
  verify: false
  max_errors: 0
`))
	require.NoError(t, err)

	ec := cfg.EncodeConfig()
	assert.Equal(t, 0, ec.Level)
	assert.Equal(t, 0, ec.Dimension)
	assert.False(t, ec.Verify)
	assert.Equal(t, 0, ec.MaxErrors)
}

func TestParse_FullFile(t *testing.T) {
	t.Setenv("VECPACK_OUT", "/tmp/vecs")

	cfg, err := Parse([]byte(`
input: data/words.json
output: ${VECPACK_OUT}
store: badger
strict: true
encode:
  mode: chunked
  chunk_size: 500
  width: 32
  codec: zstd
  level: 19
  workers: 4
  report_interval: 50
`))
	require.NoError(t, err)

	assert.Equal(t, "data/words.json", cfg.Input)
	assert.Equal(t, "/tmp/vecs", cfg.Output)
	assert.Equal(t, StoreBadger, cfg.Store)
	assert.True(t, cfg.Strict)

	ec := cfg.EncodeConfig()
	assert.Equal(t, 500, ec.ChunkSize)
	assert.Equal(t, core.Float32, ec.Width)
	assert.Equal(t, compress.Zstd, ec.Codec)
	assert.Equal(t, 19, ec.Level)
	assert.Equal(t, 4, ec.Workers)
	assert.Equal(t, 50, ec.ReportInterval)
}

func TestParse_MissingEnvVar(t *testing.T) {
	_, err := Parse([]byte("output: ${VECPACK_DEFINITELY_UNSET_VAR}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VECPACK_DEFINITELY_UNSET_VAR")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{name: "bad yaml", yaml: "encode: [", want: nil},
		{name: "bad store", yaml: "store: s3\n", want: nil},
		{name: "bad mode", yaml: "encode:\n  mode: tarball\n", want: core.ErrInvalidMode},
		{name: "bad width", yaml: "encode:\n  width: 8\n", want: core.ErrInvalidFloatWidth},
		{name: "bad codec", yaml: "encode:\n  codec: brotli\n", want: compress.ErrUnknownCodec},
		{name: "bad level", yaml: "encode:\n  level: 12\n", want: compress.ErrInvalidLevel},
		{name: "negative chunk size", yaml: "encode:\n  chunk_size: -1\n", want: nil},
		{name: "negative dimension", yaml: "encode:\n  dimension: -3\n", want: nil},
		{name: "negative max errors", yaml: "encode:\n  max_errors: -1\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("encode:\n  chunk_size: 42\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Encode.ChunkSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default().EncodeConfig(), cfg.EncodeConfig())
}
