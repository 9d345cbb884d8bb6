// Package dataset loads word embedding dictionaries from JSON files.
//
// The source document is a single JSON object whose keys are words and whose
// values are arrays of numbers. Entries are returned in document order, which
// downstream chunking depends on for reproducible output.
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/vecpack/core"
	"github.com/tidwall/gjson"
)

// Options controls how strictly a source document is interpreted.
type Options struct {
	// Strict makes a value that is not an array of numbers a fatal ParseError.
	// When false such entries are returned with Entry.Malformed set.
	Strict bool

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Load reads and parses the embeddings file at path.
// The whole file is held in memory.
func Load(path string, opts Options) ([]core.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		reason := "cannot read file"
		if errors.Is(err, os.ErrNotExist) {
			reason = "file does not exist"
		}
		return nil, &ParseError{Path: path, Reason: reason, Err: err}
	}

	entries, err := Parse(data, opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return entries, nil
}

// Parse parses an embeddings document.
// Duplicate keys keep the position of their first occurrence and the value of the last.
func Parse(data []byte, opts Options) ([]core.Entry, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Reason: "not valid JSON"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Reason: "top-level value is not an object"}
	}

	var (
		entries  []core.Entry
		position = make(map[string]int)
		parseErr error
	)

	root.ForEach(func(key, value gjson.Result) bool {
		word := key.String()
		entry := core.Entry{Word: word}

		vector, err := parseVector(value)
		if err != nil {
			if opts.Strict {
				parseErr = &ParseError{Reason: fmt.Sprintf("value for %q", word), Err: err}
				return false
			}
			entry.Malformed = err
		} else {
			entry.Vector = vector
		}

		if i, seen := position[word]; seen {
			logger.Debug("duplicate word in source, keeping last value", "word", word)
			entries[i] = entry
			return true
		}
		position[word] = len(entries)
		entries = append(entries, entry)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	logger.Debug("parsed embeddings document", "entries", len(entries), "bytes", len(data))
	return entries, nil
}

func parseVector(value gjson.Result) ([]float64, error) {
	if !value.IsArray() {
		return nil, fmt.Errorf("%w: got %s", core.ErrMalformedVector, value.Type)
	}

	elems := value.Array()
	vector := make([]float64, len(elems))
	for i, el := range elems {
		if el.Type != gjson.Number {
			return nil, fmt.Errorf("%w: element %d is %s", core.ErrMalformedVector, i, el.Type)
		}
		vector[i] = el.Num
	}
	return vector, nil
}
