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


package encode

import "errors"

var (
	// ErrSinkRequired is returned when an Encoder is created without a sink.
	ErrSinkRequired = errors.New("storage sink is required")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid encode config")

	// ErrLengthMismatch indicates a decompressed artifact of the wrong size.
	ErrLengthMismatch = errors.New("decompressed length mismatch")

	// ErrDigestMismatch indicates a decompressed artifact whose contents differ from what was packed.
	ErrDigestMismatch = errors.New("decompressed digest mismatch")
)
