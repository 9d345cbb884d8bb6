package pack

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/poiesic/vecpack/core"
	"github.com/x448/float16"
)

// HeaderSize is the size of the record length prefix.
const HeaderSize = 4

// RecordSize returns the packed size of a record with n components.
func RecordSize(n int, width core.FloatWidth) int {
	return HeaderSize + n*width.Bytes()
}

// PackRecord serializes a vector as a length-prefixed record.
func PackRecord(vec []float64, width core.FloatWidth) ([]byte, error) {
	if uint64(len(vec)) > math.MaxUint32 {
		return nil, fmt.Errorf("vector of %d components exceeds record limit", len(vec))
	}
	buf := make([]byte, RecordSize(len(vec), width))
	binary.LittleEndian.PutUint32(buf, uint32(len(vec)))
	if err := putValues(buf[HeaderSize:], vec, width); err != nil {
		return nil, err
	}
	return buf, nil
}

// PackValues serializes a vector as a bare float run.
func PackValues(vec []float64, width core.FloatWidth) ([]byte, error) {
	buf := make([]byte, len(vec)*width.Bytes())
	if err := putValues(buf, vec, width); err != nil {
		return nil, err
	}
	return buf, nil
}

// UnpackRecord decodes a length-prefixed record.
func UnpackRecord(data []byte, width core.FloatWidth) ([]float32, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedRecord, len(data))
	}
	n := int(binary.LittleEndian.Uint32(data))
	want := RecordSize(n, width)
	switch {
	case len(data) < want:
		return nil, fmt.Errorf("%w: header says %d components, have %d bytes", ErrTruncatedRecord, n, len(data))
	case len(data) > want:
		return nil, fmt.Errorf("%w: %d extra", ErrTrailingBytes, len(data)-want)
	}
	return UnpackValues(data[HeaderSize:], width)
}

// UnpackValues decodes a bare float run.
func UnpackValues(data []byte, width core.FloatWidth) ([]float32, error) {
	size := width.Bytes()
	if size == 0 || len(data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes at float%d", ErrRaggedValues, len(data), width)
	}
	out := make([]float32, len(data)/size)
	for i := range out {
		off := i * size
		if width == core.Float16 {
			out[i] = float16.Frombits(binary.LittleEndian.Uint16(data[off:])).Float32()
		} else {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}

// Round returns v as it will be reproduced after packing at width.
func Round(v float64, width core.FloatWidth) float32 {
	if width == core.Float16 {
		return core.ToFloat16(v).Float32()
	}
	return float32(v)
}

func putValues(dst []byte, vec []float64, width core.FloatWidth) error {
	switch width {
	case core.Float16:
		for i, v := range vec {
			h := core.ToFloat16(v)
			if h.IsInf(0) || h.IsNaN() {
				return fmt.Errorf("%w: component %d = %g", ErrNonFinite, i, v)
			}
			binary.LittleEndian.PutUint16(dst[i*2:], h.Bits())
		}
	case core.Float32:
		for i, v := range vec {
			f := float32(v)
			if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
				return fmt.Errorf("%w: component %d = %g", ErrNonFinite, i, v)
			}
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
		}
	default:
		return fmt.Errorf("%w: %d", core.ErrInvalidFloatWidth, width)
	}
	return nil
}
