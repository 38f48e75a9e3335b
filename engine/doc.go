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


// Package engine implements the knowledge-graph engine and its lifecycle.
//
// The Engine indexes documents three ways at once: original text chunks,
// extracted entities, and extracted relations each get their own vector
// partition, while the graph topology and document records persist locally
// under the working directory. Queries embed the question, retrieve context
// from the partitions the query mode selects (local = entities, global =
// relationships, hybrid = both; chunks always), and synthesize an answer
// with the completion model.
//
// The Manager owns the process-wide engine handle. Construction is lazy and
// guarded: the first successful build transitions the manager to ready,
// which is terminal for the process lifetime; a failed build leaves it
// uninitialized and the next request tries again, since causes like missing
// environment state are not distinguished from permanent ones.
package engine
