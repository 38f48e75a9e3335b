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


// Package pinecone implements vector.Store on the Pinecone vector database.
//
// Each Store is bound to a single Pinecone namespace for its lifetime and
// owns its own index connection; partitions never share a handle. Writes
// are batched to the service's accepted request size and each batch commits
// independently - a failed batch propagates its error after earlier batches
// have already landed, so upserts are not atomic across the whole input.
//
// Reads degrade rather than fail: a remote error during Query is logged and
// surfaces as an empty result set, and Delete is fire-and-forget. Ingestion
// failures must be operator-visible while read-path failures must not take
// down answer generation, hence the asymmetry.
//
// The Pinecone SDK is confined to client.go behind the indexConn interface;
// store logic and tests never touch SDK types.
package pinecone
