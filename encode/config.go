package encode

import (
	"fmt"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
)

const (
	// DefaultChunkSize is the number of entries per chunk artifact.
	DefaultChunkSize = 10000

	// DefaultReportInterval is how often progress is printed, in entries.
	DefaultReportInterval = 1000

	// DefaultMaxErrors is how many error messages the summary displays.
	DefaultMaxErrors = 10
)

// Config holds configuration for an encoding run.
type Config struct {
	// Mode selects per-word or chunked artifacts
	Mode core.Mode

	// ChunkSize is the maximum number of entries per chunk (chunked mode only)
	ChunkSize int

	// Width is the float width; zero selects the mode default
	Width core.FloatWidth

	// Codec is the compression codec name; empty selects the mode default
	Codec string

	// Level is the compression level
	Level int

	// Dimension is the expected vector length; zero adopts the first valid entry's length
	Dimension int

	// Verify enables read-back verification of every artifact
	Verify bool

	// Workers is the number of artifacts processed concurrently
	Workers int

	// ReportInterval is how often to report progress (number of entries)
	ReportInterval int

	// MaxErrors caps the error messages shown in the summary report
	MaxErrors int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:           core.ModeChunked,
		ChunkSize:      DefaultChunkSize,
		Level:          compress.DefaultLevel,
		Dimension:      core.DefaultDimension,
		Verify:         true,
		Workers:        1,
		ReportInterval: DefaultReportInterval,
		MaxErrors:      DefaultMaxErrors,
	}
}

// DefaultWidth returns the float width used by mode when none is configured.
func DefaultWidth(mode core.Mode) core.FloatWidth {
	if mode == core.ModeWord {
		return core.Float32
	}
	return core.Float16
}

// DefaultCodec returns the codec used by mode when none is configured.
func DefaultCodec(mode core.Mode) string {
	if mode == core.ModeWord {
		return compress.Deflate
	}
	return compress.Gzip
}

// resolved returns a copy of c with mode defaults filled in, or an error if
// the result is not usable.
func (c *Config) resolved() (*Config, error) {
	out := *c

	if _, err := core.ParseMode(string(out.Mode)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if out.Width == 0 {
		out.Width = DefaultWidth(out.Mode)
	}
	if _, err := core.ParseFloatWidth(int(out.Width)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if out.Codec == "" {
		out.Codec = DefaultCodec(out.Mode)
	}
	if out.Workers == 0 {
		out.Workers = 1
	}
	if out.ReportInterval == 0 {
		out.ReportInterval = DefaultReportInterval
	}

	switch {
	case out.Mode == core.ModeChunked && out.ChunkSize <= 0:
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, out.ChunkSize)
	case out.Dimension < 0:
		return nil, fmt.Errorf("%w: dimension must not be negative, got %d", ErrInvalidConfig, out.Dimension)
	case out.Workers < 0:
		return nil, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, out.Workers)
	case out.ReportInterval < 0:
		return nil, fmt.Errorf("%w: report interval must be positive, got %d", ErrInvalidConfig, out.ReportInterval)
	case out.MaxErrors < 0:
		return nil, fmt.Errorf("%w: max errors must not be negative, got %d", ErrInvalidConfig, out.MaxErrors)
	}

	return &out, nil
}
