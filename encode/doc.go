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


// Package encode turns validated word embeddings into compressed binary
// artifacts.
//
// An encoding run validates every entry, then either packs each vector into
// its own length-prefixed record (word mode) or groups consecutive entries
// into chunks serialized as JSON objects of base64 float runs (chunked mode).
// Each artifact is compressed and handed to a storage.Sink, which stages it,
// reads it back for verification and only then publishes it.
//
// Failures of a single entry or chunk are recorded in the run Summary and do
// not stop the run. Results are reduced in input order after all work
// completes, so the Summary is identical for sequential and pooled runs.
package encode
