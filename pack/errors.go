package pack

import "errors"

var (
	// ErrTruncatedRecord is returned when a record is shorter than its header claims.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrTrailingBytes is returned when a record is longer than its header claims.
	ErrTrailingBytes = errors.New("trailing bytes after record")

	// ErrRaggedValues is returned when a value run is not a whole number of floats.
	ErrRaggedValues = errors.New("value run length is not a multiple of the float width")

	// ErrNonFinite is returned when a component would not be finite at the target width.
	ErrNonFinite = errors.New("non-finite component")
)
