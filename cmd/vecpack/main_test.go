package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/vecpack/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorJSON(n int, v string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = v
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func writeInput(t *testing.T) string {
	t.Helper()
	doc := `{"cat": ` + vectorJSON(300, "0.1") + `, "dog": ` + vectorJSON(300, "0.2") + `, "": [1, 2, 3]}`
	path := filepath.Join(t.TempDir(), "concept_embeds.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func run(args ...string) error {
	return newApp().Run(append([]string{"vecpack", "--log-level", "error"}, args...))
}

func TestEncode_Chunked(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "chunks")

	require.NoError(t, run("encode", "--input", input, "--output", out, "--chunk-size", "1"))

	assert.FileExists(t, filepath.Join(out, "embeddings_chunk_0.gz"))
	assert.FileExists(t, filepath.Join(out, "embeddings_chunk_1.gz"))
	assert.NoFileExists(t, filepath.Join(out, "embeddings_chunk_2.gz"))

	require.NoError(t, run("lookup", "--dir", out, "dog"))
	require.NoError(t, run("similarity", "--dir", out, "--mode", "chunked", "cat", "dog"))
	require.NoError(t, run("stats", "--dir", out))
	require.NoError(t, run("inspect", filepath.Join(out, "embeddings_chunk_0.gz")))
}

func TestEncode_WordModeBadger(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "db")

	require.NoError(t, run("encode", "--input", input, "--output", out, "--mode", "word", "--store", "badger", "--workers", "2"))
	require.NoError(t, run("similarity", "--dir", out, "--store", "badger", "cat", "dog"))
	assert.Error(t, run("similarity", "--dir", out, "--store", "badger", "cat", "eel"))
}

func TestEncode_ConfigFile(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "words")
	cfgPath := filepath.Join(t.TempDir(), "vecpack.yaml")
	cfg := "input: " + input + "\noutput: " + out + "\nencode:\n  mode: word\n  codec: zstd\n  level: 3\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	require.NoError(t, run("encode", "--config", cfgPath))
	assert.FileExists(t, filepath.Join(out, "cat.vec.zst"))
	assert.FileExists(t, filepath.Join(out, "dog.vec.zst"))

	require.NoError(t, run("inspect", filepath.Join(out, "cat.vec.zst")))
}

func TestEncode_ModeFlagResetsDefaults(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "words")

	require.NoError(t, run("encode", "--input", input, "--output", out, "--mode", "word"))
	assert.FileExists(t, filepath.Join(out, "cat.vec"))
}

func TestEncode_MissingInputIsFatal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	err := run("encode", "--input", filepath.Join(t.TempDir(), "missing.json"), "--output", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrParse)
	assert.NoDirExists(t, out, "nothing is written when the source cannot be parsed")
}

func TestEncode_InvalidFlags(t *testing.T) {
	input := writeInput(t)
	out := t.TempDir()

	assert.Error(t, run("encode", "--input", input, "--output", out, "--width", "8"))
	assert.Error(t, run("encode", "--input", input, "--output", out, "--codec", "brotli"))
	assert.Error(t, run("encode", "--input", input, "--output", out, "--store", "s3"))
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	err := newApp().Run([]string{"vecpack", "--log-level", "loud", "stats", "--dir", t.TempDir()})
	assert.Error(t, err)
}
