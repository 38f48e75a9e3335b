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


package core

import "strings"

// minIngestLength is the minimum trimmed length for ingestable text.
const minIngestLength = 10

// ValidateIngestText checks that text is substantial enough to index.
// Returns ErrTextTooShort if the trimmed text is below the minimum length.
func ValidateIngestText(text string) error {
	if len(strings.TrimSpace(text)) < minIngestLength {
		return ErrTextTooShort
	}
	return nil
}

// ValidateQueryText checks that a query string is non-empty after trimming.
func ValidateQueryText(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}
