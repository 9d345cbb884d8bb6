package compress

import "errors"

var (
	// ErrUnknownCodec is returned when a codec name is not recognised.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrInvalidLevel is returned when a compression level is out of range for a codec.
	ErrInvalidLevel = errors.New("invalid compression level")
)
