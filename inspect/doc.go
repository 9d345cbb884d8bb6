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


// Package inspect reads artifacts produced by an encoding run back into
// vectors.
//
// It decodes single artifacts of either layout, finds a word by scanning
// chunk artifacts in index order, computes cosine similarity between stored
// words and summarizes what a sink holds.
package inspect
