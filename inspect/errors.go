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


package inspect

import "errors"

var (
	// ErrSinkRequired is returned when a storage sink is not provided.
	ErrSinkRequired = errors.New("storage sink required")

	// ErrWordNotFound is returned when no artifact holds the requested word.
	ErrWordNotFound = errors.New("word not found")

	// ErrMalformedChunk indicates a chunk payload that is not an object of base64 strings.
	ErrMalformedChunk = errors.New("malformed chunk payload")

	// ErrDimensionMismatch is returned when comparing vectors of different lengths.
	ErrDimensionMismatch = errors.New("vector dimensions differ")

	// ErrZeroVector is returned when a similarity involves a zero-magnitude vector.
	ErrZeroVector = errors.New("zero vector")
)
