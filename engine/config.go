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


package engine

import (
	"github.com/poiesic/kgraph/ai"
	"github.com/poiesic/kgraph/vector"
	"github.com/poiesic/kgraph/vector/pinecone"
)

// Config holds everything required to construct an Engine. All required
// values are checked by Validate before any connection is attempted;
// missing configuration blocks the uninitialized-to-ready transition.
type Config struct {
	// Workdir is the filesystem location for local graph-topology
	// persistence. Must survive restarts for the index to stay usable.
	Workdir string

	// PineconeAPIKey and PineconeIndex identify the remote vector index.
	PineconeAPIKey string
	PineconeIndex  string

	// Namespaces maps vector domains to index partitions. Zero-value
	// fields fall back to the defaults.
	Namespaces vector.Namespaces

	// BatchSize caps vectors per upsert request. Defaults to
	// pinecone.DefaultBatchSize when non-positive.
	BatchSize int

	// AI configures the language-model and embedding services.
	// Nil falls back to ai.DefaultConfig().
	AI *ai.Config

	// ChunkSize and ChunkOverlap control document splitting, in runes.
	ChunkSize    int
	ChunkOverlap int

	// TopK bounds per-partition similarity results during queries.
	TopK int
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.Workdir == "" {
		return ErrWorkdirRequired
	}
	if c.PineconeAPIKey == "" {
		return pinecone.ErrAPIKeyRequired
	}
	if c.PineconeIndex == "" {
		return pinecone.ErrIndexNameRequired
	}

	defaults := vector.DefaultNamespaces()
	if c.Namespaces.Entities == "" {
		c.Namespaces.Entities = defaults.Entities
	}
	if c.Namespaces.Relationships == "" {
		c.Namespaces.Relationships = defaults.Relationships
	}
	if c.Namespaces.Chunks == "" {
		c.Namespaces.Chunks = defaults.Chunks
	}
	if err := c.Namespaces.Validate(); err != nil {
		return err
	}

	if c.AI == nil {
		c.AI = ai.DefaultConfig()
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}

	if c.BatchSize <= 0 {
		c.BatchSize = pinecone.DefaultBatchSize
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = defaultChunkOverlap
	}
	if c.TopK <= 0 {
		c.TopK = 10
	}
	return nil
}
