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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates an Entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrEmptyWord indicates the Word field is empty.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrInvalidWordEncoding indicates the word is not valid UTF-8.
	ErrInvalidWordEncoding = errors.New("word is not valid UTF-8")

	// ErrUnsafeWord indicates the word cannot be used as an artifact name.
	ErrUnsafeWord = errors.New("word is not a safe artifact name")

	// ErrMalformedVector indicates the vector is not a list of numbers.
	ErrMalformedVector = errors.New("vector is not a list of numbers")

	// ErrDimensionMismatch indicates the vector length differs from the expected dimension.
	ErrDimensionMismatch = errors.New("vector length mismatch")

	// ErrValueOutOfRange indicates a component cannot be represented at the target width.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidFloatWidth indicates an unsupported float width.
	ErrInvalidFloatWidth = errors.New("float width must be 16 or 32")

	// ErrInvalidMode indicates an unsupported output mode.
	ErrInvalidMode = errors.New("mode must be chunked or word")
)
