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


// Package kgraph is a document ingestion and query service built on a
// knowledge-graph engine. Documents are chunked, embedded, and mined for
// entities and relations; the resulting vectors live in a remote index
// partitioned by domain, while graph topology is kept locally. Queries
// retrieve context from the relevant partitions and answer with a
// language model.
package kgraph
