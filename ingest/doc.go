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


// Package ingest accepts documents for asynchronous indexing. Accepted
// documents are enriched with caller-supplied summary and keyword metadata
// and handed to a bounded worker pool; indexing failures are logged with
// the document's source and filename rather than surfaced to the caller,
// since the caller has already been told the document was accepted.
package ingest
