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


// Package storage provides the artifact storage abstraction for vecpack.
//
// This package defines the Sink interface that decouples where encoded
// artifacts land from the encoding pipeline. Two backends exist:
//
//   - fs: one file per artifact in a directory (the format clients download)
//   - badger: one key per artifact in a BadgerDB database
//
// # Staged writes
//
// Sink.Put never exposes a half-written artifact under its final name. The
// data is staged, read back, handed to a VerifyFunc, and only then published.
// The fs backend stages in a temporary file and renames it into place; the
// badger backend stages inside a write transaction and commits it.
//
//	err := sink.Put(ctx, "cat.vec", compressed, func(stored []byte) error {
//	    return checkLength(stored)
//	})
//
// When verification fails the error wraps ErrVerificationFailed and nothing
// remains under the name.
//
// # Thread Safety
//
// Sinks support concurrent Put calls for distinct names.
package storage
