package encode

import (
	"fmt"
	"io"
	"time"

	"github.com/poiesic/vecpack/core"
)

// Stage names the step of the pipeline at which an entry failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StagePack     Stage = "pack"
	StageCompress Stage = "compress"
	StageWrite    Stage = "write"
	StageVerify   Stage = "verify"
)

// NoChunk marks an EntryError that is not tied to a chunk.
const NoChunk = -1

// EntryError records why a single entry or chunk was not written.
type EntryError struct {
	// Word is the offending word, if one is known
	Word string
	// Chunk is the chunk index, or NoChunk
	Chunk int
	Stage Stage
	Err   error
}

func (e *EntryError) Error() string {
	switch {
	case e.Chunk != NoChunk && e.Word != "":
		return fmt.Sprintf("chunk %d, word %q: %s: %v", e.Chunk, e.Word, e.Stage, e.Err)
	case e.Chunk != NoChunk:
		return fmt.Sprintf("chunk %d: %s: %v", e.Chunk, e.Stage, e.Err)
	default:
		return fmt.Sprintf("word %q: %s: %v", e.Word, e.Stage, e.Err)
	}
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Summary is the outcome of an encoding run.
type Summary struct {
	Mode      core.Mode
	Width     core.FloatWidth
	Codec     string
	Dimension int

	// Loaded is the number of entries read from the source
	Loaded int
	// Valid is the number of entries that passed validation
	Valid int
	// Skipped is the number of entries rejected by validation
	Skipped int

	ArtifactsWritten int
	ArtifactsFailed  int
	EntriesWritten   int
	EntriesFailed    int

	// BytesWritten is the total stored size of written artifacts
	BytesWritten int64

	Elapsed time.Duration

	// Errors holds every failure in input order, validation failures first.
	Errors []*EntryError
}

// Failed reports whether any entry was skipped or not written.
func (s *Summary) Failed() bool {
	return len(s.Errors) > 0
}

// add folds one artifact result into the summary.
func (s *Summary) add(r itemResult) {
	if r.err != nil {
		s.ArtifactsFailed++
		s.EntriesFailed += r.entries
		s.Errors = append(s.Errors, r.err)
		return
	}
	s.ArtifactsWritten++
	s.EntriesWritten += r.entries
	s.BytesWritten += r.size
}

// Report writes a human readable summary to w, listing at most maxErrors
// error messages followed by a count of the remainder.
func (s *Summary) Report(w io.Writer, maxErrors int) {
	fmt.Fprintf(w, "Encoding complete in %v (%s mode, float%d, %s)\n",
		s.Elapsed.Round(time.Millisecond), s.Mode, s.Width, s.Codec)
	fmt.Fprintf(w, "  Entries loaded:    %d\n", s.Loaded)
	fmt.Fprintf(w, "  Entries valid:     %d\n", s.Valid)
	fmt.Fprintf(w, "  Entries skipped:   %d\n", s.Skipped)
	fmt.Fprintf(w, "  Entries written:   %d\n", s.EntriesWritten)
	fmt.Fprintf(w, "  Entries failed:    %d\n", s.EntriesFailed)
	fmt.Fprintf(w, "  Artifacts written: %d (%d bytes)\n", s.ArtifactsWritten, s.BytesWritten)
	fmt.Fprintf(w, "  Artifacts failed:  %d\n", s.ArtifactsFailed)

	if len(s.Errors) == 0 {
		return
	}

	fmt.Fprintf(w, "Errors (%d):\n", len(s.Errors))
	shown := min(len(s.Errors), max(maxErrors, 0))
	for _, err := range s.Errors[:shown] {
		fmt.Fprintf(w, "  - %v\n", err)
	}
	if rest := len(s.Errors) - shown; rest > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", rest)
	}
}
