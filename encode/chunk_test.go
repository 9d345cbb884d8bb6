package encode

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/pack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalChunk_Layout(t *testing.T) {
	entries := []core.Entry{
		{Word: "zebra", Vector: []float64{1, -2}},
		{Word: "apple", Vector: []float64{0.5, 0}},
	}

	data, err := MarshalChunk(entries, core.Float16)
	require.NoError(t, err)

	// 1.0, -2.0 as float16 little endian
	zebra := base64.StdEncoding.EncodeToString([]byte{0x00, 0x3C, 0x00, 0xC0})
	apple := base64.StdEncoding.EncodeToString([]byte{0x00, 0x38, 0x00, 0x00})
	assert.Equal(t, `{"zebra":"`+zebra+`","apple":"`+apple+`"}`, string(data))
}

func TestMarshalChunk_DecodesBack(t *testing.T) {
	entries := []core.Entry{
		{Word: `quote"d`, Vector: []float64{0.1, 0.2, 0.3}},
		{Word: "café", Vector: []float64{-1.5, 2.25, 100}},
	}

	for _, width := range []core.FloatWidth{core.Float16, core.Float32} {
		data, err := MarshalChunk(entries, width)
		require.NoError(t, err)

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 2)

		for _, e := range entries {
			raw, err := base64.StdEncoding.DecodeString(decoded[e.Word])
			require.NoError(t, err)
			require.Len(t, raw, len(e.Vector)*width.Bytes(), "no length prefix in chunk values")

			got, err := pack.UnpackValues(raw, width)
			require.NoError(t, err)
			for i, v := range e.Vector {
				assert.Equal(t, pack.Round(v, width), got[i])
			}
		}
	}
}

func TestMarshalChunk_Empty(t *testing.T) {
	data, err := MarshalChunk(nil, core.Float16)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestMarshalChunk_PackError(t *testing.T) {
	entries := []core.Entry{
		{Word: "ok", Vector: []float64{1}},
		{Word: "huge", Vector: []float64{1e9}},
	}

	_, err := MarshalChunk(entries, core.Float16)
	require.Error(t, err)
	assert.ErrorIs(t, err, pack.ErrNonFinite)

	var cerr *chunkEntryError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "huge", cerr.word)
}
