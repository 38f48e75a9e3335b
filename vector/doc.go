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


// Package vector defines the storage contract the knowledge-graph engine
// depends on, along with the pieces shared by all backends.
//
// The engine stores three logically distinct kinds of vectors - entities,
// relationships, and text chunks - and each kind lives in its own isolated
// partition of the backing index. This package provides:
//
//   - Store: the backend contract (batch upsert, similarity query, delete)
//   - Domain and Namespaces: the mapping from vector kind to partition key
//   - EncodeContent / DecodeContent: the codec that carries a record's
//     human-readable content through the backend's metadata side-channel
//
// # Constructor Return Type Pattern
//
// Backend packages (vector/pinecone) return the Store interface from their
// public constructors to enforce abstraction and keep the engine decoupled
// from any particular vector database:
//
//	store, err := pinecone.New(ctx, cfg)  // returns vector.Store
//
// # Thread Safety
//
// Store implementations must be safe for concurrent use. A Store is bound
// to a single partition for its whole lifetime.
package vector
