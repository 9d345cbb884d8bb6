package badger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/poiesic/vecpack/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSink(t *testing.T) *Sink {
	t.Helper()
	sink, err := NewMemorySink()
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	return sink
}

func TestSink_PutGet(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()
	data := []byte("compressed bytes")

	var seen []byte
	err := sink.Put(ctx, "cat.vec", data, func(stored []byte) error {
		seen = stored
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, data, seen)

	got, err := sink.Get(ctx, "cat.vec")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	size, err := sink.Stat(ctx, "cat.vec")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
}

func TestSink_PutNilVerify(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "dog.vec", []byte{1, 2, 3}, nil))
	got, err := sink.Get(ctx, "dog.vec")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestSink_FailedVerifyLeavesNothing(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()
	boom := errors.New("digest mismatch")

	err := sink.Put(ctx, "cat.vec", []byte("bad"), func([]byte) error { return boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrVerificationFailed)
	assert.ErrorIs(t, err, boom)

	_, err = sink.Get(ctx, "cat.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSink_FailedVerifyRemovesPreviousValue(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "cat.vec", []byte("good"), nil))
	require.NoError(t, sink.Put(ctx, "dog.vec", []byte("good"), nil))
	err := sink.Put(ctx, "cat.vec", []byte("bad"), func([]byte) error { return errors.New("no") })
	require.ErrorIs(t, err, storage.ErrVerificationFailed)

	_, err = sink.Get(ctx, "cat.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	names, err := sink.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"dog.vec"}, names)
}

func TestSink_PutTooLarge(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	limit := sink.backend.MaxValueSize(len(makeArtifactKey("big.vec")))
	require.Positive(t, limit)

	require.NoError(t, sink.Put(ctx, "big.vec", []byte("small"), nil))
	err := sink.Put(ctx, "big.vec", make([]byte, limit+1), nil)
	assert.ErrorIs(t, err, ErrValueTooLarge)

	_, err = sink.Get(ctx, "big.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, sink.Put(ctx, "big.vec", make([]byte, limit), nil))
	size, err := sink.Stat(ctx, "big.vec")
	require.NoError(t, err)
	assert.Equal(t, limit, size)
}

func TestSink_Overwrite(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "cat.vec", []byte("one"), nil))
	require.NoError(t, sink.Put(ctx, "cat.vec", []byte("two"), nil))

	got, err := sink.Get(ctx, "cat.vec")
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

	err = sink.Delete(ctx, "missing.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSink_Delete(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	require.NoError(t, sink.Put(ctx, "cat.vec", []byte("x"), nil))
	require.NoError(t, sink.Delete(ctx, "cat.vec"))

	_, err := sink.Get(ctx, "cat.vec")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSink_List(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()

	for _, name := range []string{"embeddings_chunk_1.gz", "cat.vec", "embeddings_chunk_0.gz", "dog.vec"} {
		require.NoError(t, sink.Put(ctx, name, []byte(name), nil))
	}

	all, err := sink.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat.vec", "dog.vec", "embeddings_chunk_0.gz", "embeddings_chunk_1.gz"}, all)

	chunks, err := sink.List(ctx, "embeddings_chunk_")
	require.NoError(t, err)
	assert.Equal(t, []string{"embeddings_chunk_0.gz", "embeddings_chunk_1.gz"}, chunks)
}

func TestSink_LargeValue(t *testing.T) {
	sink := newTestSink(t)
	ctx := context.Background()
	data := bytes.Repeat([]byte{0xAB}, 512<<10)

	require.NoError(t, sink.Put(ctx, "embeddings_chunk_0.gz", data, func(stored []byte) error {
		if !bytes.Equal(stored, data) {
			return errors.New("mismatch")
		}
		return nil
	}))

	size, err := sink.Stat(ctx, "embeddings_chunk_0.gz")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
}

func TestSink_InvalidName(t *testing.T) {
	sink := newTestSink(t)
	err := sink.Put(context.Background(), "../cat.vec", []byte("x"), nil)
	assert.ErrorIs(t, err, storage.ErrInvalidName)
}

func TestSink_Closed(t *testing.T) {
	sink, err := NewMemorySink()
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())

	err = sink.Put(context.Background(), "cat.vec", []byte("x"), nil)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestSink_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	sink, err := OpenSink(dir)
	require.NoError(t, err)
	require.NoError(t, sink.Put(ctx, "cat.vec", []byte("meow"), nil))
	require.NoError(t, sink.Close())

	sink, err = OpenSink(dir)
	require.NoError(t, err)
	defer sink.Close()

	got, err := sink.Get(ctx, "cat.vec")
	require.NoError(t, err)
	assert.Equal(t, []byte("meow"), got)
}
