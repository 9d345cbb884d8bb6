// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ValidateEntry validates an Entry according to domain rules.
//
// Validation rules:
//   - Word must not be empty
//   - Word must be valid UTF-8
//   - Vector must have been a list of numbers in the source
//   - Vector length must equal dim
//   - Every component must be finite once narrowed to width
//
// Word safety as a file name is checked separately by ValidateWordName,
// since only per-word output needs it.
func ValidateEntry(entry *Entry, dim int, width FloatWidth) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Word == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyWord)
	}

	if !utf8.ValidString(entry.Word) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidEntry, ErrInvalidWordEncoding, entry.Word)
	}

	if entry.Malformed != nil || entry.Vector == nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrMalformedVector)
	}

	if len(entry.Vector) != dim {
		return fmt.Errorf("%w: %w: got %d, want %d", ErrInvalidEntry, ErrDimensionMismatch, len(entry.Vector), dim)
	}

	for i, v := range entry.Vector {
		if !IsRepresentable(v, width) {
			return fmt.Errorf("%w: %w: component %d = %g for float%d", ErrInvalidEntry, ErrValueOutOfRange, i, v, width)
		}
	}

	return nil
}

// ValidateWordName checks that a word can be used as an artifact name.
func ValidateWordName(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	if word == "." || word == ".." || strings.ContainsAny(word, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrUnsafeWord, word)
	}
	return nil
}

// IsRepresentable reports whether v stays finite when stored at width.
func IsRepresentable(v float64, width FloatWidth) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	f := float32(v)
	if math.IsInf(float64(f), 0) {
		return false
	}
	if width == Float16 {
		return !ToFloat16(v).IsInf(0)
	}
	return true
}
