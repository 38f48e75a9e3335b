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


// Package graphstore persists documents and knowledge-graph topology in a
// local BadgerDB under the engine's working directory.
//
// Embeddings live in the remote vector index; this store keeps what the
// remote side cannot: the full document record (including the vector IDs it
// produced, so deletion can find them), merged entity nodes, and relation
// edges with a per-entity index for neighborhood lookups.
//
// All operations are safe for concurrent use. Values are JSON-encoded;
// entity and relation records are small and schema changes must stay
// backward-readable.
package graphstore
