package core

import (
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// DefaultDimension is the vector length expected when none is configured.
const DefaultDimension = 300

// FloatWidth is the bit width used to store each vector component.
type FloatWidth int

const (
	// Float16 stores components as IEEE-754 binary16.
	Float16 FloatWidth = 16
	// Float32 stores components as IEEE-754 binary32.
	Float32 FloatWidth = 32
)

// Bytes returns the number of bytes used by one component.
func (w FloatWidth) Bytes() int {
	return int(w) / 8
}

// ParseFloatWidth converts 16 or 32 into a FloatWidth.
func ParseFloatWidth(bits int) (FloatWidth, error) {
	switch FloatWidth(bits) {
	case Float16, Float32:
		return FloatWidth(bits), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidFloatWidth, bits)
	}
}

// Mode selects the artifact layout written by an encoding run.
type Mode string

const (
	// ModeChunked groups consecutive entries into one artifact per chunk.
	ModeChunked Mode = "chunked"
	// ModeWord writes one artifact per word.
	ModeWord Mode = "word"
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeChunked, ModeWord:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Entry is a single word and its embedding vector as read from the source file.
type Entry struct {
	Word   string
	Vector []float64
	// Malformed is set by the loader when the source value was not a list of
	// numbers. Such entries carry no vector and are rejected by validation.
	Malformed error
}

// Vector32 returns the vector narrowed to float32.
func (e *Entry) Vector32() []float32 {
	out := make([]float32, len(e.Vector))
	for i, v := range e.Vector {
		out[i] = float32(v)
	}
	return out
}

// DigestSize is the length in bytes of a payload digest.
const DigestSize = 32

// Digest returns the BLAKE2b-256 digest of a payload.
// Identical payloads always produce identical digests.
func Digest(payload []byte) [DigestSize]byte {
	h, _ := blake2b.New(DigestSize, nil)
	h.Write(payload)
	var out [DigestSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
