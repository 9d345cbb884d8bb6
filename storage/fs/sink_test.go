package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/vecpack/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSink(t *testing.T) *Sink {
	t.Helper()
	sink, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	return sink
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink, err := Open(dir)
	require.NoError(t, err)
	defer sink.Close()

	assert.DirExists(t, dir)
	assert.Equal(t, dir, sink.Dir())
}

func TestOpen_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestSink_PutWritesFile(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()
	data := []byte("compressed")

	var seen []byte
	require.NoError(t, sink.Put(ctx, "cat.vec", data, func(stored []byte) error {
		seen = stored
		return nil
	}))
	assert.Equal(t, data, seen)

	onDisk, err := os.ReadFile(filepath.Join(sink.Dir(), "cat.vec"))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
	assert.Equal(t, []string{"cat.vec"}, dirNames(t, sink.Dir()))

	size, err := sink.Stat(ctx, "cat.vec")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
}

func TestSink_FailedVerifyLeavesNoFile(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()
	boom := errors.New("length mismatch")

	err := sink.Put(ctx, "cat.vec", []byte("bad"), func([]byte) error { return boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrVerificationFailed)
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, dirNames(t, sink.Dir()), "neither the artifact nor the staging file should remain")
}

func TestSink_FailedVerifyRemovesPreviousFile(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "cat.vec", []byte("good"), nil))
	err := sink.Put(ctx, "cat.vec", []byte("bad"), func([]byte) error { return errors.New("no") })
	require.ErrorIs(t, err, storage.ErrVerificationFailed)

	_, err = sink.Get(ctx, "cat.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, dirNames(t, sink.Dir()))
}

func TestSink_FailedVerifyLeavesOtherFiles(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "dog.vec", []byte("good"), nil))
	require.Error(t, sink.Put(ctx, "cat.vec", []byte("bad"), func([]byte) error { return errors.New("no") }))

	assert.Equal(t, []string{"dog.vec"}, dirNames(t, sink.Dir()))
}

func TestSink_Overwrite(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "embeddings_chunk_0.gz", []byte("one"), nil))
	require.NoError(t, sink.Put(ctx, "embeddings_chunk_0.gz", []byte("two"), nil))

	got, err := sink.Get(ctx, "embeddings_chunk_0.gz")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestSink_NotFound(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	_, err := sink.Get(ctx, "missing.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = sink.Stat(ctx, "missing.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, sink.Delete(ctx, "missing.vec"), storage.ErrNotFound)
}

func TestSink_ListSkipsStagingFiles(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	for _, name := range []string{"dog.vec", "cat.vec", "embeddings_chunk_0.gz"} {
		require.NoError(t, sink.Put(ctx, name, []byte(name), nil))
	}
	require.NoError(t, os.WriteFile(filepath.Join(sink.Dir(), ".vecpack-123.tmp"), nil, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(sink.Dir(), "subdir"), 0o755))

	all, err := sink.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat.vec", "dog.vec", "embeddings_chunk_0.gz"}, all)

	chunks, err := sink.List(ctx, "embeddings_chunk_")
	require.NoError(t, err)
	assert.Equal(t, []string{"embeddings_chunk_0.gz"}, chunks)
}

func TestSink_InvalidName(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	for _, name := range []string{"../escape.vec", "a/b.vec", ".."} {
		assert.ErrorIs(t, sink.Put(ctx, name, []byte("x"), nil), storage.ErrInvalidName, name)
	}
}

func TestSink_Closed(t *testing.T) {
	sink, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	assert.ErrorIs(t, sink.Put(context.Background(), "cat.vec", nil, nil), storage.ErrStorageClosed)
}

func TestSink_CanceledContext(t *testing.T) {
	sink := newTestSink(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sink.Put(ctx, "cat.vec", []byte("x"), nil), context.Canceled)
	assert.Empty(t, dirNames(t, sink.Dir()))
}
